package subscription

import "context"

// Client defines an interface for submitting a notify-me signup to the
// external subscription service. Only success or failure is reported;
// the response body is not interpreted.
type Client interface {
	Subscribe(ctx context.Context, email string) error
}

// internal/infra/subscription/http_client.go
package subscription

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPClient implements subscription.Client against the storefront's
// subscription endpoint. The payload is a form-encoded email plus a fixed
// tag; the response body is discarded and only the status class matters.
// No client-side timeout is set: the submission relies on the transport's
// own behavior, and callers guard their UI state separately.
type HTTPClient struct {
	endpoint string
	tag      string
	http     *http.Client
}

func NewHTTPClient(endpoint, tag string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		tag:      tag,
		http:     &http.Client{},
	}
}

// Subscribe posts the email to the subscription endpoint. Any non-2xx
// response is a transport failure.
func (c *HTTPClient) Subscribe(ctx context.Context, email string) error {
	form := url.Values{}
	form.Set("email", email)
	form.Set("tag", c.tag)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("error building subscription request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error submitting subscription: %w", err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused; the body itself is ignored.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("subscription endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// internal/domain/drop/drop.go
package drop

import (
	"database/sql"
	"time"
)

// Drop represents a time-boxed product release.
type Drop struct {
	ID        int64
	Slug      string // short identifier used in commands, unique
	Name      string
	StartAt   sql.NullTime // drop goes live at this instant; NULL means live from the start
	EndAt     sql.NullTime // drop ends at this instant; NULL means it never ends
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window converts the stored boundaries into a countdown window.
func (d *Drop) Window() Window {
	var w Window
	if d.StartAt.Valid {
		t := d.StartAt.Time
		w.StartAt = &t
	}
	if d.EndAt.Valid {
		t := d.EndAt.Time
		w.EndAt = &t
	}
	return w
}

// StatusChange is the event published when a drop crosses a boundary.
// Status carries the state the drop is transitioning into, which is only
// ever Live or Ended.
type StatusChange struct {
	DropID int64
	Slug   string
	Status Status
}

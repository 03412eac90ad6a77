package calendar

import (
	"context"
	"fmt"
	"time"
)

// Booking is the provider-agnostic shape of a calendar entry. Start and End
// are local datetimes in the configured timezone, formatted as
// "2006-01-02T15:04:05" without an offset; the provider attaches the zone.
type Booking struct {
	Summary     string
	Description string
	Location    string
	Start       string
	End         string
}

// Entry is a Booking as it exists on the remote calendar.
type Entry struct {
	ID string
	Booking
}

// Provider pushes bookings to an external calendar. Implementations must be
// safe for concurrent use.
type Provider interface {
	// Enabled reports whether the provider is configured to perform writes.
	Enabled() bool
	// Insert creates a new entry and returns the remote event ID.
	Insert(ctx context.Context, booking *Booking) (string, error)
	// Patch updates an existing entry in place.
	Patch(ctx context.Context, eventID string, booking *Booking) error
	// List returns entries between from and to, soonest first.
	List(ctx context.Context, from, to time.Time, maxResults int64) ([]*Entry, error)
}

// LocalDateTime combines an event date ("2006-01-02") with a wall-clock time
// ("15:04") into the datetime format the providers expect.
func LocalDateTime(date, hhmm string) string {
	return fmt.Sprintf("%sT%s:00", date, hhmm)
}

// disabledProvider is used when no calendar credentials are configured.
// Writes report success-without-sync upstream, never an error.
type disabledProvider struct{}

// NewDisabledProvider returns a provider that performs no remote calls.
func NewDisabledProvider() Provider {
	return disabledProvider{}
}

func (disabledProvider) Enabled() bool { return false }

func (disabledProvider) Insert(ctx context.Context, booking *Booking) (string, error) {
	return "", fmt.Errorf("calendar provider is disabled")
}

func (disabledProvider) Patch(ctx context.Context, eventID string, booking *Booking) error {
	return fmt.Errorf("calendar provider is disabled")
}

func (disabledProvider) List(ctx context.Context, from, to time.Time, maxResults int64) ([]*Entry, error) {
	return nil, fmt.Errorf("calendar provider is disabled")
}

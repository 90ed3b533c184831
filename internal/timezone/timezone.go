// Package timezone resolves and persists the per-user timezone selection.
package timezone

import (
	"context"
	"fmt"

	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
)

// zones is the fixed list served to clients. Enumerating the full IANA
// database is not portable across platforms, so a curated list of common
// zones is used instead; Set still accepts any id the zone database knows.
var zones = []string{
	"UTC",
	"America/New_York",
	"America/Los_Angeles",
	"America/Chicago",
	"America/Halifax",
	"America/Toronto",
	"America/Denver",
	"America/Phoenix",
	"America/Anchorage",
	"Pacific/Honolulu",
	"America/Sao_Paulo",
	"America/Mexico_City",
	"Europe/London",
	"Europe/Paris",
	"Europe/Berlin",
	"Europe/Rome",
	"Europe/Madrid",
	"Europe/Moscow",
	"Asia/Tokyo",
	"Asia/Shanghai",
	"Asia/Dubai",
	"Asia/Kolkata",
	"Asia/Hong_Kong",
	"Asia/Singapore",
	"Australia/Sydney",
	"Australia/Melbourne",
	"Pacific/Auckland",
}

// Store is the persistence the resolver needs from the user store.
type Store interface {
	UserTimezone(ctx context.Context, userID string) (string, error)
	SetUserTimezone(ctx context.Context, userID, zone string) error
}

// Resolver reads and writes a user's timezone selection, falling back to a
// configured default when the user has not chosen one.
type Resolver struct {
	store     Store
	defaultTZ string
}

func NewResolver(store Store, defaultTZ string) (*Resolver, error) {
	if _, err := schedule.LoadZone(defaultTZ); err != nil {
		return nil, fmt.Errorf("default timezone: %w", err)
	}
	return &Resolver{store: store, defaultTZ: defaultTZ}, nil
}

// Available returns the selectable zone list.
func Available() []string {
	out := make([]string, len(zones))
	copy(out, zones)
	return out
}

// Current returns the user's selected zone, or the default if none is set.
func (r *Resolver) Current(ctx context.Context, userID string) (string, error) {
	zone, err := r.store.UserTimezone(ctx, userID)
	if err != nil {
		return "", err
	}
	if zone == "" {
		return r.defaultTZ, nil
	}
	return zone, nil
}

// Set validates and persists the selection. Unknown ids are rejected; the
// selection never silently falls back to UTC.
func (r *Resolver) Set(ctx context.Context, userID, zone string) error {
	if _, err := schedule.LoadZone(zone); err != nil {
		return err
	}
	return r.store.SetUserTimezone(ctx, userID, zone)
}

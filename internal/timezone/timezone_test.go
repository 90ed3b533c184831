package timezone

import (
	"context"
	"errors"
	"testing"

	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
)

type fakeStore struct {
	zones map[string]string
}

func (f *fakeStore) UserTimezone(_ context.Context, userID string) (string, error) {
	return f.zones[userID], nil
}

func (f *fakeStore) SetUserTimezone(_ context.Context, userID, zone string) error {
	f.zones[userID] = zone
	return nil
}

func TestAvailableContainsUTC(t *testing.T) {
	found := false
	for _, z := range Available() {
		if z == "UTC" {
			found = true
		}
		if _, err := schedule.LoadZone(z); err != nil {
			t.Errorf("listed zone %q does not load: %v", z, err)
		}
	}
	if !found {
		t.Error("UTC missing from zone list")
	}
}

func TestResolverDefaultFallback(t *testing.T) {
	r, err := NewResolver(&fakeStore{zones: map[string]string{}}, "Europe/Berlin")
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	zone, err := r.Current(context.Background(), "u1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if zone != "Europe/Berlin" {
		t.Errorf("got %s", zone)
	}
}

func TestResolverSetAndCurrent(t *testing.T) {
	st := &fakeStore{zones: map[string]string{}}
	r, err := NewResolver(st, "UTC")
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}

	if err := r.Set(context.Background(), "u1", "Asia/Tokyo"); err != nil {
		t.Fatalf("set: %v", err)
	}
	zone, err := r.Current(context.Background(), "u1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if zone != "Asia/Tokyo" {
		t.Errorf("got %s", zone)
	}
}

func TestResolverRejectsUnknownZone(t *testing.T) {
	st := &fakeStore{zones: map[string]string{}}
	r, err := NewResolver(st, "UTC")
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	if err := r.Set(context.Background(), "u1", "Atlantis/Capital"); !errors.Is(err, schedule.ErrUnknownTimezone) {
		t.Fatalf("expected ErrUnknownTimezone, got %v", err)
	}
	if len(st.zones) != 0 {
		t.Error("invalid zone persisted")
	}
}

func TestResolverRejectsBadDefault(t *testing.T) {
	if _, err := NewResolver(&fakeStore{}, "Bad/Zone"); err == nil {
		t.Fatal("expected error")
	}
}

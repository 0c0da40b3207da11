package selection

import (
	"errors"
	"testing"
	"time"

	"github.com/junovet/booking-engine/internal/availability"
)

func newTestManager(t *testing.T, now *time.Time, ttl time.Duration) *Manager {
	t.Helper()
	oracle := availability.NewOracle(nil, nil, func() time.Time { return *now })
	svc := availability.NewService(oracle, time.Sunday)
	return NewManager(svc, AnchorFirstAvailable, ttl)
}

func TestManagerCreateAndDo(t *testing.T) {
	now := testNow
	m := newTestManager(t, &now, time.Hour)

	sess := m.Create()
	if sess.ID == "" {
		t.Fatal("expected a session id")
	}

	err := m.Do(sess.ID, func(cur *Selection) error {
		if got := cur.SelectTime("10:00"); got != OutcomeApplied {
			t.Fatalf("expected applied, got %s", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	err = m.Do(sess.ID, func(cur *Selection) error {
		if cur.SelectedTime() != "10:00" {
			t.Fatalf("state not retained across Do calls, got %q", cur.SelectedTime())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestManagerUnknownSession(t *testing.T) {
	now := testNow
	m := newTestManager(t, &now, time.Hour)

	err := m.Do("missing", func(*Selection) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerExpiry(t *testing.T) {
	now := testNow
	m := newTestManager(t, &now, 30*time.Minute)

	sess := m.Create()
	now = now.Add(31 * time.Minute)

	err := m.Do(sess.ID, func(*Selection) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected no live sessions, got %d", m.Len())
	}
}

func TestManagerTouchExtendsSession(t *testing.T) {
	now := testNow
	m := newTestManager(t, &now, 30*time.Minute)

	sess := m.Create()
	now = now.Add(20 * time.Minute)
	if err := m.Do(sess.ID, func(*Selection) error { return nil }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	now = now.Add(20 * time.Minute)
	// 40 minutes since creation but only 20 since last touch.
	if err := m.Do(sess.ID, func(*Selection) error { return nil }); err != nil {
		t.Fatalf("expected touched session to survive, got %v", err)
	}
}

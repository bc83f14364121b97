package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"promptstudio/internal/users"
)

type fakeUsers map[string]users.User

func (f fakeUsers) GetByID(_ context.Context, id string) (users.User, error) {
	u, ok := f[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

type fakeCounter map[string]int

func (f fakeCounter) CountForUser(_ context.Context, id string) (int, error) {
	return f[id], nil
}

func TestFreeTierCap(t *testing.T) {
	svc := NewService(fakeUsers{"u": {ID: "u", Tier: users.TierFree}}, fakeCounter{"u": 10}, 10)

	u, err := svc.CanCreatePrompt(context.Background(), "u")
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if u.Plan != PlanFree || u.Used != 10 || u.Remaining != 0 {
		t.Fatalf("unexpected usage %+v", u)
	}

	svc.Prompts = fakeCounter{"u": 9}
	if _, err := svc.CanCreatePrompt(context.Background(), "u"); err != nil {
		t.Fatalf("expected room for one more, got %v", err)
	}
}

func TestDefaultLimitWhenUnset(t *testing.T) {
	svc := NewService(fakeUsers{}, fakeCounter{}, 0)
	if svc.FreeLimit != 10 {
		t.Fatalf("expected default limit 10, got %d", svc.FreeLimit)
	}
}

func TestPremiumUnlimitedAndExpiry(t *testing.T) {
	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	svc := NewService(fakeUsers{
		"active":  {ID: "active", Tier: users.TierPremium, SubscriptionExpiresAt: &future},
		"lapsed":  {ID: "lapsed", Tier: users.TierPremium, SubscriptionExpiresAt: &past},
		"forever": {ID: "forever", Tier: users.TierPremium},
	}, fakeCounter{"active": 500, "lapsed": 12}, 10)
	svc.Now = func() time.Time { return now }
	ctx := context.Background()

	u, err := svc.CanCreatePrompt(ctx, "active")
	if err != nil {
		t.Fatalf("premium should save freely: %v", err)
	}
	if u.Limit != Unlimited || !u.CanExport || !u.CanSaveCriteria {
		t.Fatalf("unexpected premium usage %+v", u)
	}
	if err := svc.RequirePremium(ctx, "forever"); err != nil {
		t.Fatalf("no-expiry premium should pass: %v", err)
	}

	if _, err := svc.CanCreatePrompt(ctx, "lapsed"); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("lapsed premium should fall back to the free cap, got %v", err)
	}
	if err := svc.RequirePremium(ctx, "lapsed"); !errors.Is(err, ErrPremiumRequired) {
		t.Fatalf("expected ErrPremiumRequired, got %v", err)
	}
}

func TestGuestsCannotSave(t *testing.T) {
	svc := NewService(fakeUsers{}, fakeCounter{}, 10)
	u, err := svc.CanCreatePrompt(context.Background(), "guest:abc")
	if !errors.Is(err, ErrLoginRequired) || u.Plan != PlanGuest {
		t.Fatalf("expected guest login error, got %+v %v", u, err)
	}
	if err := svc.RequirePremium(context.Background(), "guest:abc"); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
}

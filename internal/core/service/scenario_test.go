package service

import (
	"context"
	"errors"
	"testing"

	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

// TestLifecycleScenario walks an event from submission to a full house.
func TestLifecycleScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	orgA := f.seedUser("a@example.com", domain.RoleOrganizer)
	orgB := f.seedUser("b@example.com", domain.RoleOrganizer)
	admin := f.seedUser("admin@example.com", domain.RoleAdmin)
	userU := f.seedUser("u@example.com", domain.RoleUser)
	userV := f.seedUser("v@example.com", domain.RoleUser)

	// 1. Organizer submits with capacity 1 and no status.
	in := validInput()
	in.Capacity = intPtr(1)
	e, err := f.events.Create(ctx, in, orgA)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Status != domain.StatusPending || e.OrganizerID != orgA.UserID {
		t.Fatalf("create: unexpected event %+v", e)
	}

	// 2. Admin approves once; the second approval is refused.
	approved, err := f.events.Approve(ctx, e.ID, admin)
	if err != nil || approved.Status != domain.StatusApproved {
		t.Fatalf("approve: %+v (%v)", approved, err)
	}
	if _, err := f.events.Approve(ctx, e.ID, admin); !errors.Is(err, domain.ErrNotPending) {
		t.Fatalf("second approve: expected not_pending, got %v", err)
	}

	// 3. U takes the only seat; V finds it full.
	if _, err := f.regs.Register(ctx, e.ID, userU); err != nil {
		t.Fatalf("register U: %v", err)
	}
	if _, err := f.regs.Register(ctx, e.ID, userV); !errors.Is(err, domain.ErrEventFull) {
		t.Fatalf("register V: expected event_full, got %v", err)
	}

	// 4. U registering again is refused and the count stays at one.
	if _, err := f.regs.Register(ctx, e.ID, userU); !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Fatalf("register U again: expected already_registered, got %v", err)
	}
	if n := f.regCount(e.ID); n != 1 {
		t.Fatalf("expected 1 active registration, got %d", n)
	}

	// 5. Another organizer cannot retitle the event.
	if _, err := f.events.Update(ctx, e.ID, domain.EventPatch{Title: strPtr("x")}, orgB); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("update by B: expected not_owner, got %v", err)
	}
	current, _ := f.events.GetByID(ctx, e.ID)
	if current.Title != in.Title {
		t.Fatalf("title changed to %q", current.Title)
	}

	// 6. Signing up with a held email is refused and adds no row.
	before := len(f.db.users)
	_, err = f.auth.Register(ctx, ports.RegisterInput{Email: "U@example.com", Name: "Dup", Password: "pw"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("duplicate sign-up: expected email_taken, got %v", err)
	}
	if len(f.db.users) != before {
		t.Fatalf("user count changed from %d to %d", before, len(f.db.users))
	}
}

// TestRoleGatingDoesNotMutate checks that every gated operation refuses a
// plain user before touching the store.
func TestRoleGatingDoesNotMutate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	org := f.seedUser("org@example.com", domain.RoleOrganizer)
	user := f.seedUser("u@example.com", domain.RoleUser)
	e := f.seedEvent(org, domain.StatusPending, nil)
	snapshot := *f.db.events[e.ID]

	calls := map[string]func() error{
		"create":    func() error { _, err := f.events.Create(ctx, validInput(), user); return err },
		"list mine": func() error { _, err := f.events.ListMine(ctx, user); return err },
		"list all":  func() error { _, err := f.events.ListAll(ctx, user, ""); return err },
		"update": func() error {
			_, err := f.events.Update(ctx, e.ID, domain.EventPatch{Title: strPtr("hijack")}, user)
			return err
		},
		"delete":      func() error { return f.events.Delete(ctx, e.ID, user) },
		"approve":     func() error { _, err := f.events.Approve(ctx, e.ID, user); return err },
		"reject":      func() error { _, err := f.events.Reject(ctx, e.ID, user); return err },
		"list users":  func() error { _, err := f.users.ListAll(ctx, user); return err },
		"delete user": func() error { return f.users.Delete(ctx, org.UserID, user) },
	}

	for name, call := range calls {
		if err := call(); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s: expected forbidden, got %v", name, err)
		}
	}

	after := f.db.events[e.ID]
	if after == nil || after.Title != snapshot.Title || after.Status != snapshot.Status || !after.UpdatedAt.Equal(snapshot.UpdatedAt) {
		t.Fatalf("event mutated: %+v", after)
	}
	if len(f.db.events) != 1 || len(f.db.users) != 2 {
		t.Fatalf("store mutated: %d events, %d users", len(f.db.events), len(f.db.users))
	}
}

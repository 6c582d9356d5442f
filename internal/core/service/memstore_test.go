package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/communityhub/events-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory store shared by the service tests. It keeps the same atomicity
// promises as the real repositories by holding one lock per call.
// ---------------------------------------------------------------------------

type memDB struct {
	mu       sync.Mutex
	seq      int
	users    map[string]*domain.User
	events   map[string]*domain.Event
	regs     map[string]*domain.Registration // key: userID|eventID
	activity []*domain.Activity
}

func newMemDB() *memDB {
	return &memDB{
		users:  make(map[string]*domain.User),
		events: make(map[string]*domain.Event),
		regs:   make(map[string]*domain.Registration),
	}
}

func (db *memDB) nextID(prefix string) string {
	db.seq++
	return fmt.Sprintf("%s-%04d", prefix, db.seq)
}

func regKey(userID, eventID string) string { return userID + "|" + eventID }

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	if e.Capacity != nil {
		v := *e.Capacity
		c.Capacity = &v
	}
	if e.ImageURL != nil {
		v := *e.ImageURL
		c.ImageURL = &v
	}
	return &c
}

func (db *memDB) activeCount(eventID string) int64 {
	var n int64
	for _, r := range db.regs {
		if r.EventID == eventID {
			n++
		}
	}
	return n
}

// --- users ---

type memUsers struct{ db *memDB }

func (r memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	c := cloneUser(u)
	c.ID = r.db.nextID("u")
	r.db.users[c.ID] = c
	return cloneUser(c), nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r memUsers) List(_ context.Context) ([]*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*domain.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memUsers) UpdateProfile(_ context.Context, id string, p domain.ProfilePatch, at time.Time) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Email != nil {
		for _, other := range r.db.users {
			if other.ID != id && other.Email == *p.Email {
				return nil, domain.ErrEmailTaken
			}
		}
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	u.UpdatedAt = at
	return cloneUser(u), nil
}

func (r memUsers) UpdateRole(_ context.Context, id string, role domain.Role, at time.Time) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = at
	return cloneUser(u), nil
}

func (r memUsers) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.db.users, id)
	for k, reg := range r.db.regs {
		if reg.UserID == id {
			delete(r.db.regs, k)
		}
	}
	return nil
}

// --- events ---

type memEvents struct{ db *memDB }

func (r memEvents) Create(_ context.Context, e *domain.Event) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e.ID = r.db.nextID("e")
	r.db.events[e.ID] = cloneEvent(e)
	return nil
}

func (r memEvents) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return cloneEvent(e), nil
}

func (r memEvents) List(_ context.Context, f domain.EventFilter) ([]*domain.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*domain.Event{}
	for _, e := range r.db.events {
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.OrganizerID != "" && e.OrganizerID != f.OrganizerID {
			continue
		}
		out = append(out, cloneEvent(e))
	}
	if f.ByStartTime {
		sort.Slice(out, func(i, j int) bool {
			return out[i].Date+out[i].Time < out[j].Date+out[j].Time
		})
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}
	return out, nil
}

func (r memEvents) Update(_ context.Context, id string, p domain.EventPatch, at time.Time) (*domain.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	p.Apply(e, at)
	return cloneEvent(e), nil
}

func (r memEvents) TransitionStatus(_ context.Context, id string, from, to domain.EventStatus, at time.Time) (*domain.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	if e.Status != from {
		return nil, domain.ErrNotPending
	}
	e.Status = to
	e.UpdatedAt = at
	return cloneEvent(e), nil
}

func (r memEvents) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.db.events, id)
	for k, reg := range r.db.regs {
		if reg.EventID == id {
			delete(r.db.regs, k)
		}
	}
	return nil
}

func (r memEvents) CountByOrganizer(_ context.Context, organizerID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, e := range r.db.events {
		if e.OrganizerID == organizerID {
			n++
		}
	}
	return n, nil
}

// --- registrations ---

type memRegs struct{ db *memDB }

func (r memRegs) Create(_ context.Context, reg *domain.Registration) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.events[reg.EventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	if e.Status != domain.StatusApproved {
		return domain.ErrEventNotApproved
	}
	key := regKey(reg.UserID, reg.EventID)
	if _, dup := r.db.regs[key]; dup {
		return domain.ErrAlreadyRegistered
	}
	if !e.HasRoom(r.db.activeCount(reg.EventID)) {
		return domain.ErrEventFull
	}
	reg.ID = r.db.nextID("r")
	c := *reg
	r.db.regs[key] = &c
	return nil
}

func (r memRegs) Delete(_ context.Context, userID, eventID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key := regKey(userID, eventID)
	if _, ok := r.db.regs[key]; !ok {
		return domain.ErrNotRegistered
	}
	delete(r.db.regs, key)
	return nil
}

func (r memRegs) Exists(_ context.Context, userID, eventID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.regs[regKey(userID, eventID)]
	return ok, nil
}

func (r memRegs) CountActive(_ context.Context, eventID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.activeCount(eventID), nil
}

func (r memRegs) list(match func(*domain.Registration) bool) []*domain.Registration {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*domain.Registration{}
	for _, reg := range r.db.regs {
		if match(reg) {
			c := *reg
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memRegs) ListByUser(_ context.Context, userID string) ([]*domain.Registration, error) {
	return r.list(func(reg *domain.Registration) bool { return reg.UserID == userID }), nil
}

func (r memRegs) ListByEvent(_ context.Context, eventID string) ([]*domain.Registration, error) {
	return r.list(func(reg *domain.Registration) bool { return reg.EventID == eventID }), nil
}

// --- activity ---

type memActivity struct{ db *memDB }

func (r memActivity) Record(_ context.Context, a *domain.Activity) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := *a
	r.db.activity = append(r.db.activity, &c)
	return nil
}

func (r memActivity) ListByEvent(_ context.Context, eventID string) ([]*domain.Activity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*domain.Activity{}
	for _, a := range r.db.activity {
		if a.EventID == eventID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

// recordingPublisher writes straight through to the activity repository so
// tests can assert on the trail without running the dispatcher.
type recordingPublisher struct {
	mu   sync.Mutex
	sink memActivity
	seen []domain.Activity
}

func (p *recordingPublisher) Publish(a domain.Activity) {
	p.mu.Lock()
	p.seen = append(p.seen, a)
	p.mu.Unlock()
	_ = p.sink.Record(context.Background(), &a)
}

func (p *recordingPublisher) types() []domain.ActivityType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ActivityType, len(p.seen))
	for i, a := range p.seen {
		out[i] = a.Type
	}
	return out
}

// ---------------------------------------------------------------------------
// Fixture wiring every service onto one memDB.
// ---------------------------------------------------------------------------

type fixture struct {
	db     *memDB
	pub    *recordingPublisher
	tokens *TokenManager
	auth   *AuthService
	events *EventService
	regs   *RegistrationService
	users  *UserService
}

func newFixture() *fixture {
	db := newMemDB()
	pub := &recordingPublisher{sink: memActivity{db}}
	tokens := NewTokenManager("test-secret", time.Hour, nil)
	log := zerolog.Nop()
	return &fixture{
		db:     db,
		pub:    pub,
		tokens: tokens,
		auth:   NewAuthService(memUsers{db}, tokens, NewRoleBootstrap(nil, nil), log),
		events: NewEventService(memEvents{db}, memActivity{db}, pub, log),
		regs:   NewRegistrationService(memEvents{db}, memRegs{db}, pub, log),
		users:  NewUserService(memUsers{db}, memEvents{db}, log),
	}
}

// seedUser stores a user directly and returns the identity its token would carry.
func (f *fixture) seedUser(email string, role domain.Role) *domain.Identity {
	u, err := memUsers{f.db}.Create(context.Background(), &domain.User{
		Email: email,
		Name:  email,
		Role:  role,
	})
	if err != nil {
		panic(err)
	}
	return &domain.Identity{UserID: u.ID, Role: u.Role, Email: u.Email, Name: u.Name}
}

// seedEvent stores an event with the given owner, status and capacity.
func (f *fixture) seedEvent(owner *domain.Identity, status domain.EventStatus, capacity *int) *domain.Event {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	e := &domain.Event{
		Title:       "Meetup",
		Date:        "2025-03-01",
		Time:        "18:00",
		Location:    "Library",
		OrganizerID: owner.UserID,
		Capacity:    capacity,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := (memEvents{f.db}).Create(context.Background(), e); err != nil {
		panic(err)
	}
	return e
}

func (f *fixture) regCount(eventID string) int64 {
	n, _ := memRegs{f.db}.CountActive(context.Background(), eventID)
	return n
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func statusPtr(v domain.EventStatus) *domain.EventStatus { return &v }

package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appointmentRepo "washbook/database/repository/appointment"
	catalogRepo "washbook/database/repository/catalog"
	"washbook/models"
	"washbook/services/account"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// testNow is a Monday morning.
var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

type fakeCatalog struct {
	vendors  map[string]*models.Vendor
	services map[string]*models.Service
	offers   map[string][]models.Offer
	err      error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		vendors: map[string]*models.Vendor{
			"v1": {
				ID:   "v1",
				Name: "Kiilto Pesu",
				OperatingHours: models.OperatingHours{
					"sunday": {Open: models.ClosedHours, Close: models.ClosedHours},
				},
			},
		},
		services: map[string]*models.Service{
			"s1": {ID: "s1", VendorID: "v1", Name: "Basic wash", Price: 100},
			"s2": {ID: "s2", VendorID: "v2", Name: "Other vendor", Price: 50},
		},
		offers: map[string][]models.Offer{
			"v1": {{
				ID: "o1", VendorID: "v1", ServiceID: "s1", DiscountPercentage: 20, IsActive: true,
				StartDate: testNow.AddDate(0, -1, 0), EndDate: testNow.AddDate(0, 1, 0),
			}},
		},
	}
}

func (f *fakeCatalog) GetVendor(_ context.Context, id string) (*models.Vendor, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.vendors[id]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeCatalog) GetService(_ context.Context, id string) (*models.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeCatalog) GetVendorOffers(_ context.Context, vendorID string) ([]models.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.offers[vendorID], nil
}

// fakeLedger stands in for both the user and appointment collections so a
// debit is visible to the next wallet read.
type fakeLedger struct {
	mu           sync.Mutex
	users        map[string]*models.User
	appointments []*models.Appointment
	userErr      error
	writeErr     error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "maija@example.com", Wallet: models.Wallet{Coins: 50}},
		"u2": {ID: "u2", Email: "pekka@example.com"},
	}}
}

func (f *fakeLedger) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userErr != nil {
		return nil, f.userErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeLedger) CreateWithDebit(_ context.Context, appt *models.Appointment, coins int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	if coins > 0 {
		u, ok := f.users[appt.CustomerID]
		if !ok || u.Wallet.Coins < coins {
			return appointmentRepo.ErrInsufficientCoins
		}
		u.Wallet.Coins -= coins
	}
	f.appointments = append(f.appointments, appt)
	return nil
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appointments)
}

func (f *fakeLedger) coins(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].Wallet.Coins
}

type fakeAccounts struct {
	mu      sync.Mutex
	emails  map[string]string
	err     error
	signups []account.SignUpInput
}

func newFakeAccounts(existing ...string) *fakeAccounts {
	f := &fakeAccounts{emails: map[string]string{}}
	for _, e := range existing {
		f.emails[e] = "existing-" + e
	}
	return f
}

func (f *fakeAccounts) SignUp(_ context.Context, in account.SignUpInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signups = append(f.signups, in)
	if f.err != nil {
		return "", f.err
	}
	if _, ok := f.emails[in.Email]; ok {
		return "", account.ErrEmailAlreadyInUse
	}
	id := "new-" + in.Email
	f.emails[in.Email] = id
	return id, nil
}

type recordingExits struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (r *recordingExits) ScheduleExit(_ context.Context, sessionID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, sessionID)
	return r.err
}

func fixedClock() time.Time { return testNow }

func completeDetails() models.CustomerDetails {
	return models.CustomerDetails{
		FirstName:    "Maija",
		LastName:     "Meikäläinen",
		Email:        "maija@example.com",
		Phone:        "+358401234567",
		LicensePlate: "abc-123",
	}
}

func newTestStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client, 30*time.Minute), mr
}

type testHarness struct {
	svc      *DefaultBookingSessionService
	catalog  *fakeCatalog
	ledger   *fakeLedger
	accounts *fakeAccounts
	exits    *recordingExits
	store    *RedisSessionStore
	mr       *miniredis.Miniredis
}

func newHarness(t *testing.T, existingEmails ...string) *testHarness {
	t.Helper()
	store, mr := newTestStore(t)
	h := &testHarness{
		catalog:  newFakeCatalog(),
		ledger:   newFakeLedger(),
		accounts: newFakeAccounts(existingEmails...),
		exits:    &recordingExits{},
		store:    store,
		mr:       mr,
	}
	seq := NewSequencer(h.ledger, h.ledger, h.accounts)
	seq.Now = fixedClock
	h.svc = NewBookingSessionService(h.catalog, h.ledger, store, seq, h.exits)
	h.svc.Now = fixedClock
	return h
}

var errBoom = errors.New("boom")

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"garagepro-backend/models"
	"garagepro-backend/utils"

	"github.com/google/uuid"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(utils.DayLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func datePtr(t *testing.T, s string) *time.Time {
	d := day(t, s)
	return &d
}

func intPtr(n int) *int { return &n }

type fakeTenants struct {
	byID map[uuid.UUID]models.Tenant
}

func (f *fakeTenants) Get(ctx context.Context, id uuid.UUID) (models.Tenant, error) {
	t, ok := f.byID[id]
	if !ok {
		return models.Tenant{}, ErrTenantNotFound
	}
	return t, nil
}

func (f *fakeTenants) ListActive(ctx context.Context) ([]models.Tenant, error) {
	var out []models.Tenant
	for _, t := range f.byID {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeCustomers struct{ rows []models.Customer }

func (f *fakeCustomers) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range f.rows {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeVehicles struct{ rows []models.Vehicle }

func (f *fakeVehicles) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Vehicle, error) {
	var out []models.Vehicle
	for _, v := range f.rows {
		if v.TenantID == tenantID {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeTemplates struct{ rows []models.ReminderTemplate }

func (f *fakeTemplates) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.ReminderTemplate, error) {
	var out []models.ReminderTemplate
	for _, r := range f.rows {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTemplates) Upsert(ctx context.Context, tpl *models.ReminderTemplate) error {
	tpl.UpdatedAt = time.Now()
	for i, r := range f.rows {
		if r.TenantID == tpl.TenantID && r.Type == tpl.Type {
			tpl.ID = r.ID
			f.rows[i] = *tpl
			return nil
		}
	}
	tpl.ID = uuid.New()
	f.rows = append(f.rows, *tpl)
	return nil
}

func (f *fakeTemplates) Delete(ctx context.Context, tenantID uuid.UUID, category models.Category) (bool, error) {
	for i, r := range f.rows {
		if r.TenantID == tenantID && r.Type == category {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeSentLogs mimics ON CONFLICT DO NOTHING on the natural key.
type fakeSentLogs struct {
	mu        sync.Mutex
	rows      []models.SentLog
	batches   int
	insertErr error
}

func (f *fakeSentLogs) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.SentLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SentLog
	for _, r := range f.rows {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSentLogs) InsertBatch(ctx context.Context, rows []models.SentLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.batches++
	for _, r := range rows {
		if !f.contains(r) {
			f.rows = append(f.rows, r)
		}
	}
	return nil
}

func (f *fakeSentLogs) contains(r models.SentLog) bool {
	for _, e := range f.rows {
		if e.TenantID == r.TenantID && keyOf(e.CustomerID, e.CarID) == keyOf(r.CustomerID, r.CarID) &&
			e.Date.Equal(r.Date) && e.Category == r.Category {
			return true
		}
	}
	return false
}

type sentMessage struct {
	recipient string
	text      string
}

// recordingGateway records every attempt and fails for listed recipients.
type recordingGateway struct {
	mu       sync.Mutex
	attempts []sentMessage
	failFor  map[string]bool
}

func (g *recordingGateway) Send(ctx context.Context, recipient, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attempts = append(g.attempts, sentMessage{recipient: recipient, text: text})
	if g.failFor[recipient] {
		return errors.New("gateway unavailable")
	}
	return nil
}

func (g *recordingGateway) recipients() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.attempts))
	for i, a := range g.attempts {
		out[i] = a.recipient
	}
	return out
}

// fixture is one tenant with in-memory stores.
type fixture struct {
	tenant    models.Tenant
	tenants   *fakeTenants
	customers *fakeCustomers
	vehicles  *fakeVehicles
	templates *fakeTemplates
	sentLogs  *fakeSentLogs
	gateway   *recordingGateway
}

func newFixture() *fixture {
	tenant := models.Tenant{ID: uuid.New(), Name: "山田モータース", IsActive: true}
	return &fixture{
		tenant:    tenant,
		tenants:   &fakeTenants{byID: map[uuid.UUID]models.Tenant{tenant.ID: tenant}},
		customers: &fakeCustomers{},
		vehicles:  &fakeVehicles{},
		templates: &fakeTemplates{},
		sentLogs:  &fakeSentLogs{},
		gateway:   &recordingGateway{failFor: map[string]bool{}},
	}
}

func (f *fixture) addCustomer(last, messagingID string, birthday *time.Time) models.Customer {
	c := models.Customer{
		ID:          uuid.New(),
		TenantID:    f.tenant.ID,
		LastName:    last,
		FirstName:   "太郎",
		Birthday:    birthday,
		MessagingID: messagingID,
	}
	f.customers.rows = append(f.customers.rows, c)
	return c
}

func (f *fixture) addVehicle(owner models.Customer, name string, mutate func(v *models.Vehicle)) models.Vehicle {
	v := models.Vehicle{
		ID:                 uuid.New(),
		TenantID:           f.tenant.ID,
		CustomerID:         owner.ID,
		Name:               name,
		RegistrationNumber: "品川 300 あ 12-34",
	}
	if mutate != nil {
		mutate(&v)
	}
	f.vehicles.rows = append(f.vehicles.rows, v)
	return v
}

func (f *fixture) service(workers int) *ReminderService {
	return NewReminderService(Stores{
		Tenants:   f.tenants,
		Customers: f.customers,
		Vehicles:  f.vehicles,
		Templates: f.templates,
		SentLogs:  f.sentLogs,
	}, f.gateway, Options{
		BookingBaseURL: "https://booking.example.jp/reserve",
		MonthWorkers:   workers,
		Logger:         utils.NopLogger(),
	})
}

func (f *fixture) scope(role models.Role) models.Scope {
	return models.Scope{UserID: "u-1", TenantID: f.tenant.ID, Role: role}
}

// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"garagepro-backend/metrics"
	"garagepro-backend/models"
	"garagepro-backend/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Stores struct {
	Tenants   TenantStore
	Customers CustomerStore
	Vehicles  VehicleStore
	Templates TemplateStore
	SentLogs  SentLogStore
}

type Options struct {
	BookingBaseURL string
	// MonthWorkers bounds the concurrent day replays of a month scan.
	MonthWorkers int
	Logger       zerolog.Logger
}

// ReminderService previews and dispatches reminders for one tenant at a time.
type ReminderService struct {
	stores   Stores
	gateway  MessagingGateway
	renderer *Renderer
	workers  int
	logger   zerolog.Logger
}

func NewReminderService(stores Stores, gateway MessagingGateway, opts Options) *ReminderService {
	workers := opts.MonthWorkers
	if workers <= 0 {
		workers = 1
	}
	return &ReminderService{
		stores:   stores,
		gateway:  gateway,
		renderer: NewRenderer(opts.BookingBaseURL),
		workers:  workers,
		logger:   opts.Logger,
	}
}

// RunResult is a day preview plus whether the send and log phase ran.
type RunResult struct {
	DayHits
	Sent bool `json:"sent"`
}

type BulkSendResult struct {
	Month         string    `json:"month"`
	TenantID      uuid.UUID `json:"tenantId"`
	TotalSelected int       `json:"totalSelected"`
	SentCount     int       `json:"sentCount"`
	Sent          bool      `json:"sent"`
}

// tenantData is everything a scan needs, read once per call.
type tenantData struct {
	tenant    models.Tenant
	roster    Roster
	templates TemplateSet
}

func (s *ReminderService) load(ctx context.Context, tenantID uuid.UUID) (tenantData, error) {
	if tenantID == uuid.Nil {
		return tenantData{}, ErrNoTenantScope
	}
	tenant, err := s.stores.Tenants.Get(ctx, tenantID)
	if err != nil {
		return tenantData{}, err
	}
	customers, err := s.stores.Customers.ListByTenant(ctx, tenantID)
	if err != nil {
		return tenantData{}, fmt.Errorf("load customers: %w", err)
	}
	vehicles, err := s.stores.Vehicles.ListByTenant(ctx, tenantID)
	if err != nil {
		return tenantData{}, fmt.Errorf("load vehicles: %w", err)
	}
	templates, err := s.stores.Templates.ListByTenant(ctx, tenantID)
	if err != nil {
		return tenantData{}, fmt.Errorf("load templates: %w", err)
	}
	return tenantData{
		tenant:    tenant,
		roster:    NewRoster(tenantID, customers, vehicles),
		templates: NewTemplateSet(templates),
	}, nil
}

// previewDay scans and renders one day. It is pure given data.
func (s *ReminderService) previewDay(data tenantData, day time.Time) DayHits {
	hits := ScanDay(data.roster, day)
	for _, c := range models.Categories {
		list := hits.list(c)
		for i := range *list {
			hit := &(*list)[i]
			hit.Message = s.renderer.Render(data.templates, c, s.renderer.ContextFor(data.tenant, *hit))
		}
	}
	return hits
}

// PreviewDay returns the rendered hits for day without side effects.
func (s *ReminderService) PreviewDay(ctx context.Context, scope models.Scope, day time.Time) (DayHits, error) {
	data, err := s.load(ctx, scope.TenantID)
	if err != nil {
		return DayHits{}, err
	}
	return s.previewDay(data, day), nil
}

// RunDay previews day, sends every hit that has a messaging identifier and
// then logs every hit in one batch. Read-only callers get the preview only.
//
// Sends happen before the log write, so a crash in between can resend the
// same reminders on retry.
func (s *ReminderService) RunDay(ctx context.Context, scope models.Scope, day time.Time) (RunResult, error) {
	data, err := s.load(ctx, scope.TenantID)
	if err != nil {
		return RunResult{}, err
	}
	hits := s.previewDay(data, day)
	if scope.ReadOnly() {
		return RunResult{DayHits: hits}, nil
	}

	logger := s.logger.With().Str("tenant_id", scope.TenantID.String()).Str("date", utils.FormatDay(day)).Logger()
	var rows []models.SentLog
	for _, hit := range hits.All() {
		s.send(ctx, logger, hit.Category, hit.MessagingID, hit.Message, &hit.CustomerID, hit.CarID)

		customerID := hit.CustomerID
		rows = append(rows, models.SentLog{
			TenantID:   scope.TenantID,
			CustomerID: &customerID,
			CarID:      hit.CarID,
			Date:       utils.DateOf(day),
			Category:   hit.Category,
		})
	}
	if err := s.writeLog(ctx, rows); err != nil {
		return RunResult{}, err
	}
	logger.Info().Int("hits", len(rows)).Msg("daily reminders dispatched")
	return RunResult{DayHits: hits, Sent: true}, nil
}

// PreviewMonth replays every day of month and marks items whose
// customer/vehicle pair already has a sent-log row.
func (s *ReminderService) PreviewMonth(ctx context.Context, scope models.Scope, month string) (MonthPreview, error) {
	first, err := parseMonth(month)
	if err != nil {
		return MonthPreview{}, err
	}
	data, err := s.load(ctx, scope.TenantID)
	if err != nil {
		return MonthPreview{}, err
	}
	return s.previewMonth(ctx, data, month, first)
}

func (s *ReminderService) previewMonth(ctx context.Context, data tenantData, month string, first time.Time) (MonthPreview, error) {
	start := time.Now()
	days, items, err := aggregateMonth(ctx, first, s.workers, func(day time.Time) DayHits {
		return s.previewDay(data, day)
	})
	if err != nil {
		return MonthPreview{}, err
	}

	logs, err := s.stores.SentLogs.ListByTenant(ctx, data.tenant.ID)
	if err != nil {
		return MonthPreview{}, fmt.Errorf("load sent logs: %w", err)
	}
	markSent(items, logs)
	metrics.ObserveMonthScan(time.Since(start))

	return MonthPreview{
		Month:    month,
		TenantID: data.tenant.ID,
		Days:     days,
		Items:    items,
	}, nil
}

// BulkSend dispatches the items of month whose ids appear in itemIDs. The
// month is recomputed here; ids missing from the fresh result are ignored,
// and nothing but the ids is taken from the caller.
func (s *ReminderService) BulkSend(ctx context.Context, scope models.Scope, month string, itemIDs []int) (BulkSendResult, error) {
	first, err := parseMonth(month)
	if err != nil {
		return BulkSendResult{}, err
	}
	result := BulkSendResult{Month: month, TenantID: scope.TenantID}
	if scope.ReadOnly() {
		return result, nil
	}

	data, err := s.load(ctx, scope.TenantID)
	if err != nil {
		return BulkSendResult{}, err
	}
	preview, err := s.previewMonth(ctx, data, month, first)
	if err != nil {
		return BulkSendResult{}, err
	}

	wanted := make(map[int]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	var selected []ReminderItem
	for _, item := range preview.Items {
		if _, ok := wanted[item.ID]; ok {
			selected = append(selected, item)
		}
	}
	result.TotalSelected = len(selected)

	logger := s.logger.With().Str("tenant_id", scope.TenantID.String()).Str("month", month).Logger()
	rows := make([]models.SentLog, 0, len(selected))
	for _, item := range selected {
		if s.send(ctx, logger, item.Category, item.MessagingID, item.Message, item.CustomerID, item.CarID) {
			result.SentCount++
		}
		day, err := utils.ParseDay(item.Date)
		if err != nil {
			return BulkSendResult{}, fmt.Errorf("item %d: %w", item.ID, err)
		}
		rows = append(rows, models.SentLog{
			TenantID:   scope.TenantID,
			CustomerID: item.CustomerID,
			CarID:      item.CarID,
			Date:       day,
			Category:   item.Category,
		})
	}
	if err := s.writeLog(ctx, rows); err != nil {
		return BulkSendResult{}, err
	}
	result.Sent = true
	logger.Info().Int("selected", result.TotalSelected).Int("sent", result.SentCount).Msg("bulk reminders dispatched")
	return result, nil
}

// send delivers one message. Failures are logged and reported as false; they
// never stop the caller's loop.
func (s *ReminderService) send(ctx context.Context, logger zerolog.Logger, category models.Category, recipient, text string, customerID, carID *uuid.UUID) bool {
	if recipient == "" {
		metrics.RecordDispatch(string(category), "skipped")
		return false
	}
	if err := s.gateway.Send(ctx, recipient, text); err != nil {
		event := logger.Warn().Err(err).Str("category", string(category))
		if customerID != nil {
			event = event.Str("customer_id", customerID.String())
		}
		if carID != nil {
			event = event.Str("car_id", carID.String())
		}
		event.Msg("failed to send reminder")
		metrics.RecordDispatch(string(category), "failed")
		return false
	}
	metrics.RecordDispatch(string(category), "sent")
	return true
}

func (s *ReminderService) writeLog(ctx context.Context, rows []models.SentLog) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.stores.SentLogs.InsertBatch(ctx, rows); err != nil {
		return fmt.Errorf("write sent log: %w", err)
	}
	metrics.AddSentLogRows(len(rows))
	return nil
}

// RunAllTenants runs today's reminders for every active tenant. A failing
// tenant is logged and does not stop the others.
func (s *ReminderService) RunAllTenants(ctx context.Context, day time.Time) error {
	tenants, err := s.stores.Tenants.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list tenants: %w", err)
	}
	var failed int
	for _, t := range tenants {
		scope := models.Scope{UserID: "scheduler", TenantID: t.ID, Role: models.RoleOwner}
		if _, err := s.RunDay(ctx, scope, day); err != nil {
			failed++
			s.logger.Error().Err(err).Str("tenant_id", t.ID.String()).Msg("daily reminder run failed")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tenants failed", failed, len(tenants))
	}
	return nil
}

func parseMonth(month string) (time.Time, error) {
	first, err := utils.ParseMonth(month)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidMonth, err)
	}
	return first, nil
}

// ParseDate validates a YYYY-MM-DD request token.
func ParseDate(date string) (time.Time, error) {
	day, err := utils.ParseDay(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return day, nil
}

// IsValidation reports whether err was caused by malformed input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidMonth) || errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidCategory) || errors.Is(err, models.ErrCustomReminderPair)
}

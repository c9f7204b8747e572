package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"garagepro-backend/models"
	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

type memTenants map[uuid.UUID]models.Tenant

func (m memTenants) Get(ctx context.Context, id uuid.UUID) (models.Tenant, error) {
	if t, ok := m[id]; ok {
		return t, nil
	}
	return models.Tenant{}, services.ErrTenantNotFound
}

func (m memTenants) ListActive(ctx context.Context) ([]models.Tenant, error) { return nil, nil }

type memCustomers []models.Customer

func (m memCustomers) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range m {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memVehicles []models.Vehicle

func (m memVehicles) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Vehicle, error) {
	return nil, nil
}

type memTemplates struct{ rows []models.ReminderTemplate }

func (m *memTemplates) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.ReminderTemplate, error) {
	return m.rows, nil
}

func (m *memTemplates) Upsert(ctx context.Context, tpl *models.ReminderTemplate) error {
	tpl.ID = uuid.New()
	m.rows = append(m.rows, *tpl)
	return nil
}

func (m *memTemplates) Delete(ctx context.Context, tenantID uuid.UUID, category models.Category) (bool, error) {
	return false, nil
}

type memSentLogs struct{ rows []models.SentLog }

func (m *memSentLogs) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.SentLog, error) {
	return m.rows, nil
}

func (m *memSentLogs) InsertBatch(ctx context.Context, rows []models.SentLog) error {
	m.rows = append(m.rows, rows...)
	return nil
}

type countingGateway struct{ sends int }

func (g *countingGateway) Send(ctx context.Context, recipient, text string) error {
	g.sends++
	return nil
}

type harness struct {
	router   *gin.Engine
	tenantID uuid.UUID
	logs     *memSentLogs
	gateway  *countingGateway
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tenant := models.Tenant{ID: uuid.New(), Name: "山田モータース", IsActive: true}
	birthday := time.Date(1990, 7, 4, 0, 0, 0, 0, time.UTC)
	h := &harness{tenantID: tenant.ID, logs: &memSentLogs{}, gateway: &countingGateway{}}

	svc := services.NewReminderService(services.Stores{
		Tenants: memTenants{tenant.ID: tenant},
		Customers: memCustomers{{
			ID: uuid.New(), TenantID: tenant.ID, LastName: "佐藤", MessagingID: "line-sato", Birthday: &birthday,
		}},
		Vehicles:  memVehicles{},
		Templates: &memTemplates{},
		SentLogs:  h.logs,
	}, h.gateway, services.Options{BookingBaseURL: "https://booking.example.jp/reserve", Logger: utils.NopLogger()})

	rc := &ReminderController{Service: svc}
	r := gin.New()
	api := r.Group("/api", utils.AuthMiddleware(testSecret))
	api.GET("/reminders/day", rc.PreviewDay)
	api.GET("/reminders/month", rc.PreviewMonth)
	api.POST("/reminders/run", rc.Run)
	api.POST("/reminders/bulk-send", rc.BulkSend)
	api.GET("/reminders/templates", rc.GetTemplates)
	api.PUT("/reminders/templates", rc.UpsertTemplate)
	api.DELETE("/reminders/templates/:type", rc.ResetTemplate)
	h.router = r
	return h
}

func (h *harness) do(t *testing.T, role models.Role, tenantID, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := utils.GenerateToken(testSecret, "u-1", tenantID, string(role), time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestPreviewDay_Shape(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, models.RoleViewer, h.tenantID.String(), http.MethodGet, "/api/reminders/day?date=2025-07-04", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, key := range []string{"birthday", "shakenTwoMonths", "shakenOneWeek", "inspectionOneMonth", "custom"} {
		_, ok := body[key]
		assert.True(t, ok, key)
	}
	require.Len(t, body["birthday"], 1)
	assert.Equal(t, "BIRTHDAY", body["birthday"][0]["category"])
}

func TestPreviewDay_BadDate(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodGet, "/api/reminders/day?date=2025-02-30", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewMonth_Validation(t *testing.T) {
	h := newHarness(t)
	for _, month := range []string{"2025-13", "2025-1", "bogus"} {
		w := h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodGet, "/api/reminders/month?month="+month, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, month)
	}

	w := h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodGet, "/api/reminders/month?month=2025-07", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var preview services.MonthPreview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	require.Len(t, preview.Days, 1)
	assert.Equal(t, "2025-07-04", preview.Days[0].Date)
	require.Len(t, preview.Items, 1)
	assert.Equal(t, 1, preview.Items[0].ID)
}

func TestScopeResolution(t *testing.T) {
	h := newHarness(t)
	other := uuid.New().String()

	w := h.do(t, "", "", http.MethodGet, "/api/reminders/month?month=2025-07", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(t, "intern", h.tenantID.String(), http.MethodGet, "/api/reminders/month?month=2025-07", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodGet, "/api/reminders/month?month=2025-07&tenantId="+other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(t, models.RolePlatformAdmin, "", http.MethodGet, "/api/reminders/month?month=2025-07", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, models.RolePlatformAdmin, "", http.MethodGet, "/api/reminders/month?month=2025-07&tenantId="+other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(t, models.RolePlatformAdmin, "", http.MethodGet, "/api/reminders/month?month=2025-07&tenantId="+h.tenantID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRun(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, models.RoleViewer, h.tenantID.String(), http.MethodPost, "/api/reminders/run", gin.H{"date": "2025-07-04"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sent":false`)
	assert.Zero(t, h.gateway.sends)

	w = h.do(t, models.RoleStaff, h.tenantID.String(), http.MethodPost, "/api/reminders/run", gin.H{"date": "2025-07-04"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sent":true`)
	assert.Equal(t, 1, h.gateway.sends)
	assert.Len(t, h.logs.rows, 1)

	w = h.do(t, models.RoleStaff, h.tenantID.String(), http.MethodPost, "/api/reminders/run", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkSend(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, models.RoleViewer, h.tenantID.String(), http.MethodPost, "/api/reminders/bulk-send",
		gin.H{"month": "2025-07", "itemIds": []int{1}})
	require.Equal(t, http.StatusOK, w.Code)
	var result services.BulkSendResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Zero(t, result.SentCount)
	assert.False(t, result.Sent)
	assert.Empty(t, h.logs.rows)

	w = h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodPost, "/api/reminders/bulk-send",
		gin.H{"month": "2025-07", "itemIds": []int{1, 42}})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.TotalSelected)
	assert.Equal(t, 1, result.SentCount)
	assert.True(t, result.Sent)
	assert.Equal(t, h.tenantID, result.TenantID)
	assert.Equal(t, "2025-07", result.Month)

	w = h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodPost, "/api/reminders/bulk-send",
		gin.H{"month": "2025-7", "itemIds": []int{1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplates(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodPut, "/api/reminders/templates",
		gin.H{"type": "OIL_CHANGE", "body": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, models.RoleViewer, h.tenantID.String(), http.MethodPut, "/api/reminders/templates",
		gin.H{"type": "BIRTHDAY", "body": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodPut, "/api/reminders/templates",
		gin.H{"type": "BIRTHDAY", "title": "誕生日", "body": "{{customerName}}様おめでとうございます"})
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodGet, "/api/reminders/day?date=2025-07-04", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "佐藤様おめでとうございます")

	w = h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodGet, "/api/reminders/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var views []services.TemplateView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, len(models.Categories))

	w = h.do(t, models.RoleOwner, h.tenantID.String(), http.MethodDelete, "/api/reminders/templates/CUSTOM", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

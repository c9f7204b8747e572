package services

import (
	"net/url"
	"strconv"
	"strings"

	"garagepro-backend/models"

	"github.com/google/uuid"
)

// Placeholder tokens. Each may be written {token} or {{token}}.
const (
	TokenCustomerName       = "customerName"
	TokenCarName            = "carName"
	TokenRegistrationNumber = "registrationNumber"
	TokenMainDate           = "mainDate"
	TokenBookingURL         = "bookingUrl"
	TokenDaysBefore         = "daysBefore"
	TokenShopName           = "shopName"
)

// RenderContext carries the substitution values for one hit. Empty fields
// render as empty strings.
type RenderContext struct {
	CustomerName       string
	CarName            string
	RegistrationNumber string
	MainDate           string
	BookingURL         string
	DaysBefore         string
	ShopName           string
}

func (rc RenderContext) lookup(token string) (string, bool) {
	switch token {
	case TokenCustomerName:
		return rc.CustomerName, true
	case TokenCarName:
		return rc.CarName, true
	case TokenRegistrationNumber:
		return rc.RegistrationNumber, true
	case TokenMainDate:
		return rc.MainDate, true
	case TokenBookingURL:
		return rc.BookingURL, true
	case TokenDaysBefore:
		return rc.DaysBefore, true
	case TokenShopName:
		return rc.ShopName, true
	}
	return "", false
}

// TemplateSet maps a category to the tenant's template body.
type TemplateSet map[models.Category]string

func NewTemplateSet(rows []models.ReminderTemplate) TemplateSet {
	set := make(TemplateSet, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Body) != "" {
			set[row.Type] = row.Body
		}
	}
	return set
}

// Renderer produces message text for hits.
type Renderer struct {
	bookingBaseURL string
}

func NewRenderer(bookingBaseURL string) *Renderer {
	return &Renderer{bookingBaseURL: bookingBaseURL}
}

// Render uses the tenant template for category when present and the
// built-in default otherwise.
func (r *Renderer) Render(templates TemplateSet, category models.Category, rc RenderContext) string {
	if body, ok := templates[category]; ok {
		return RenderBody(body, rc)
	}
	return renderDefault(category, rc)
}

// ContextFor builds the substitution values for a hit.
func (r *Renderer) ContextFor(tenant models.Tenant, hit Hit) RenderContext {
	rc := RenderContext{
		CustomerName:       hit.CustomerName,
		CarName:            hit.CarName,
		RegistrationNumber: hit.RegistrationNumber,
		MainDate:           hit.Date,
		ShopName:           tenant.Name,
		BookingURL:         r.BookingURL(tenant.ID, hit.CustomerID, hit.CarID, hit.Date),
	}
	if hit.Category == models.CategoryCustom {
		rc.DaysBefore = strconv.Itoa(hit.DaysBefore)
	}
	return rc
}

// BookingURL links to the public booking form for a vehicle. It is empty
// when no vehicle is involved.
func (r *Renderer) BookingURL(tenantID, customerID uuid.UUID, carID *uuid.UUID, date string) string {
	if carID == nil || r.bookingBaseURL == "" {
		return ""
	}
	q := url.Values{}
	q.Set("tenantId", tenantID.String())
	q.Set("customerId", customerID.String())
	q.Set("carId", carID.String())
	q.Set("date", date)

	sep := "?"
	if strings.Contains(r.bookingBaseURL, "?") {
		sep = "&"
	}
	return r.bookingBaseURL + sep + q.Encode()
}

// RenderBody substitutes placeholders in a single pass. {{token}} and
// {token} are the same placeholder; braces around anything that is not a
// known token are copied through untouched.
func RenderBody(body string, rc RenderContext) string {
	var b strings.Builder
	b.Grow(len(body))

	for i := 0; i < len(body); {
		if body[i] != '{' {
			b.WriteByte(body[i])
			i++
			continue
		}
		if value, width, ok := matchToken(body[i:], rc); ok {
			b.WriteString(value)
			i += width
			continue
		}
		b.WriteByte('{')
		i++
	}
	return b.String()
}

// matchToken recognises a placeholder at the start of s and returns its value
// and the number of bytes it spans.
func matchToken(s string, rc RenderContext) (string, int, bool) {
	left, right := "{", "}"
	if strings.HasPrefix(s, "{{") {
		left, right = "{{", "}}"
	}
	end := strings.Index(s[len(left):], right)
	if end < 0 {
		return "", 0, false
	}
	name := strings.TrimSpace(s[len(left) : len(left)+end])
	value, ok := rc.lookup(name)
	if !ok {
		return "", 0, false
	}
	return value, len(left) + end + len(right), true
}

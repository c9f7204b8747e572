package services

import (
	"time"

	"garagepro-backend/models"
	"garagepro-backend/utils"

	"github.com/google/uuid"
)

// Day offsets between the target date and the vehicle's due date.
const (
	shakenTwoMonthsDays    = 60
	shakenOneWeekDays      = 7
	inspectionOneMonthDays = 30
)

// Hit is one customer or vehicle due for a reminder on a given day.
type Hit struct {
	Category           models.Category `json:"category"`
	CustomerID         uuid.UUID       `json:"customerId"`
	CarID              *uuid.UUID      `json:"carId,omitempty"`
	CustomerName       string          `json:"customerName"`
	MessagingID        string          `json:"messagingId,omitempty"`
	CarName            string          `json:"carName,omitempty"`
	RegistrationNumber string          `json:"registrationNumber,omitempty"`
	// Date is the triggering date: the vehicle's due date, or the target day
	// for birthdays.
	Date       string `json:"date"`
	DaysBefore int    `json:"daysBefore,omitempty"`
	Message    string `json:"message"`
}

// DayHits holds the five category lists for one day.
type DayHits struct {
	Birthday           []Hit `json:"birthday"`
	ShakenTwoMonths    []Hit `json:"shakenTwoMonths"`
	ShakenOneWeek      []Hit `json:"shakenOneWeek"`
	InspectionOneMonth []Hit `json:"inspectionOneMonth"`
	Custom             []Hit `json:"custom"`
}

func newDayHits() DayHits {
	return DayHits{
		Birthday:           []Hit{},
		ShakenTwoMonths:    []Hit{},
		ShakenOneWeek:      []Hit{},
		InspectionOneMonth: []Hit{},
		Custom:             []Hit{},
	}
}

func (d *DayHits) list(c models.Category) *[]Hit {
	switch c {
	case models.CategoryBirthday:
		return &d.Birthday
	case models.CategoryShakenTwoMonth:
		return &d.ShakenTwoMonths
	case models.CategoryShakenOneWeek:
		return &d.ShakenOneWeek
	case models.CategoryInspection:
		return &d.InspectionOneMonth
	case models.CategoryCustom:
		return &d.Custom
	}
	return nil
}

// Of returns the hits of one category.
func (d DayHits) Of(c models.Category) []Hit {
	if l := d.list(c); l != nil {
		return *l
	}
	return nil
}

// All flattens the lists in category order.
func (d DayHits) All() []Hit {
	var all []Hit
	for _, c := range models.Categories {
		all = append(all, d.Of(c)...)
	}
	return all
}

func (d DayHits) Total() int {
	n := 0
	for _, c := range models.Categories {
		n += len(d.Of(c))
	}
	return n
}

// Roster is one tenant's customers and vehicles, loaded once per request.
type Roster struct {
	Customers []models.Customer
	Vehicles  []models.Vehicle
	byID      map[uuid.UUID]*models.Customer
}

// NewRoster indexes customers by id. Records of other tenants are dropped.
func NewRoster(tenantID uuid.UUID, customers []models.Customer, vehicles []models.Vehicle) Roster {
	r := Roster{byID: make(map[uuid.UUID]*models.Customer, len(customers))}
	for _, c := range customers {
		if c.TenantID == tenantID {
			r.Customers = append(r.Customers, c)
		}
	}
	for i := range r.Customers {
		r.byID[r.Customers[i].ID] = &r.Customers[i]
	}
	for _, v := range vehicles {
		if v.TenantID == tenantID {
			r.Vehicles = append(r.Vehicles, v)
		}
	}
	return r
}

// ScanDay computes the hits for target. It has no side effects and is safe to
// call concurrently for different days on the same roster.
func ScanDay(r Roster, target time.Time) DayHits {
	target = utils.DateOf(target)
	hits := newDayHits()

	for _, c := range r.Customers {
		if c.Birthday == nil {
			continue
		}
		_, bm, bd := c.Birthday.Date()
		if bm == target.Month() && bd == target.Day() {
			hits.Birthday = append(hits.Birthday, Hit{
				Category:     models.CategoryBirthday,
				CustomerID:   c.ID,
				CustomerName: c.DisplayName(),
				MessagingID:  c.MessagingID,
				Date:         utils.FormatDay(target),
			})
		}
	}

	for _, v := range r.Vehicles {
		owner, ok := r.byID[v.CustomerID]
		if !ok {
			continue
		}
		if v.ShakenDate != nil {
			switch utils.DaysBetween(target, *v.ShakenDate) {
			case shakenTwoMonthsDays:
				hits.ShakenTwoMonths = append(hits.ShakenTwoMonths, vehicleHit(models.CategoryShakenTwoMonth, owner, v, *v.ShakenDate, shakenTwoMonthsDays))
			case shakenOneWeekDays:
				hits.ShakenOneWeek = append(hits.ShakenOneWeek, vehicleHit(models.CategoryShakenOneWeek, owner, v, *v.ShakenDate, shakenOneWeekDays))
			}
		}
		if v.InspectionDate != nil && utils.DaysBetween(target, *v.InspectionDate) == inspectionOneMonthDays {
			hits.InspectionOneMonth = append(hits.InspectionOneMonth, vehicleHit(models.CategoryInspection, owner, v, *v.InspectionDate, inspectionOneMonthDays))
		}
		if v.HasCustomReminder() && utils.DaysBetween(target, *v.CustomReminderDate) == *v.CustomDaysBefore {
			hits.Custom = append(hits.Custom, vehicleHit(models.CategoryCustom, owner, v, *v.CustomReminderDate, *v.CustomDaysBefore))
		}
	}

	return hits
}

func vehicleHit(c models.Category, owner *models.Customer, v models.Vehicle, due time.Time, daysBefore int) Hit {
	carID := v.ID
	return Hit{
		Category:           c,
		CustomerID:         owner.ID,
		CarID:              &carID,
		CustomerName:       owner.DisplayName(),
		MessagingID:        owner.MessagingID,
		CarName:            v.Name,
		RegistrationNumber: v.RegistrationNumber,
		Date:               utils.FormatDay(due),
		DaysBefore:         daysBefore,
	}
}

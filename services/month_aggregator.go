package services

import (
	"context"
	"time"

	"garagepro-backend/models"
	"garagepro-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DaySummary counts one day's hits by category.
type DaySummary struct {
	Date                    string `json:"date"`
	BirthdayCount           int    `json:"birthdayCount"`
	ShakenTwoMonthsCount    int    `json:"shakenTwoMonthsCount"`
	ShakenOneWeekCount      int    `json:"shakenOneWeekCount"`
	InspectionOneMonthCount int    `json:"inspectionOneMonthCount"`
	CustomCount             int    `json:"customCount"`
	TotalCount              int    `json:"totalCount"`
}

// ReminderItem is a flattened hit. ID is an index into one aggregation call
// and means nothing outside it.
type ReminderItem struct {
	ID           int             `json:"id"`
	Date         string          `json:"date"`
	Category     models.Category `json:"category"`
	CustomerID   *uuid.UUID      `json:"customerId,omitempty"`
	CarID        *uuid.UUID      `json:"carId,omitempty"`
	CustomerName string          `json:"customerName"`
	CarName      string          `json:"carName,omitempty"`
	MessagingID  string          `json:"messagingId,omitempty"`
	Message      string          `json:"message"`
	Sent         bool            `json:"sent"`
}

// MonthPreview is the month aggregation result. Days only lists days with at
// least one hit; Items lists every hit of the month.
type MonthPreview struct {
	Month    string         `json:"month"`
	TenantID uuid.UUID      `json:"tenantId"`
	Days     []DaySummary   `json:"days"`
	Items    []ReminderItem `json:"items"`
}

// dayFunc yields the rendered hits for one day.
type dayFunc func(day time.Time) DayHits

// aggregateMonth replays dayFn for every day of the month. Days run
// concurrently, up to workers at a time; IDs are assigned afterwards in
// day, category, record order so the result does not depend on scheduling.
func aggregateMonth(ctx context.Context, first time.Time, workers int, dayFn dayFunc) ([]DaySummary, []ReminderItem, error) {
	n := utils.DaysInMonth(first)
	perDay := make([]DayHits, n)

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perDay[i] = dayFn(first.AddDate(0, 0, i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	days := []DaySummary{}
	items := []ReminderItem{}
	nextID := 1
	for i, hits := range perDay {
		date := utils.FormatDay(first.AddDate(0, 0, i))
		summary := DaySummary{
			Date:                    date,
			BirthdayCount:           len(hits.Birthday),
			ShakenTwoMonthsCount:    len(hits.ShakenTwoMonths),
			ShakenOneWeekCount:      len(hits.ShakenOneWeek),
			InspectionOneMonthCount: len(hits.InspectionOneMonth),
			CustomCount:             len(hits.Custom),
		}
		summary.TotalCount = hits.Total()
		if summary.TotalCount > 0 {
			days = append(days, summary)
		}

		for _, hit := range hits.All() {
			customerID := hit.CustomerID
			items = append(items, ReminderItem{
				ID:           nextID,
				Date:         date,
				Category:     hit.Category,
				CustomerID:   &customerID,
				CarID:        hit.CarID,
				CustomerName: hit.CustomerName,
				CarName:      hit.CarName,
				MessagingID:  hit.MessagingID,
				Message:      hit.Message,
			})
			nextID++
		}
	}
	return days, items, nil
}

// sentKey identifies a customer/vehicle pair. Date and category are not part
// of it: once a pair has any sent-log row, every item for that pair is
// reported as sent.
type sentKey struct {
	customer uuid.UUID
	car      uuid.UUID
}

func keyOf(customerID, carID *uuid.UUID) sentKey {
	var k sentKey
	if customerID != nil {
		k.customer = *customerID
	}
	if carID != nil {
		k.car = *carID
	}
	return k
}

func markSent(items []ReminderItem, logs []models.SentLog) {
	sent := make(map[sentKey]struct{}, len(logs))
	for _, l := range logs {
		sent[keyOf(l.CustomerID, l.CarID)] = struct{}{}
	}
	for i := range items {
		if _, ok := sent[keyOf(items[i].CustomerID, items[i].CarID)]; ok {
			items[i].Sent = true
		}
	}
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"garagepro-backend/models"

	"github.com/google/uuid"
)

type TemplateInput struct {
	Type  string
	Title string
	Body  string
	Note  string
}

// TemplateView is the effective template for one category.
type TemplateView struct {
	Type      models.Category `json:"type"`
	Title     string          `json:"title,omitempty"`
	Body      string          `json:"body"`
	Note      string          `json:"note,omitempty"`
	IsDefault bool            `json:"isDefault"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

// Templates lists one entry per category, falling back to the built-in body
// where the tenant has none.
func (s *ReminderService) Templates(ctx context.Context, scope models.Scope) ([]TemplateView, error) {
	if err := s.requireTenant(ctx, scope); err != nil {
		return nil, err
	}
	rows, err := s.stores.Templates.ListByTenant(ctx, scope.TenantID)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	byType := make(map[models.Category]models.ReminderTemplate, len(rows))
	for _, row := range rows {
		byType[row.Type] = row
	}

	views := make([]TemplateView, 0, len(models.Categories))
	for _, c := range models.Categories {
		row, ok := byType[c]
		if !ok || strings.TrimSpace(row.Body) == "" {
			views = append(views, TemplateView{Type: c, Body: DefaultBody(c), IsDefault: true})
			continue
		}
		updated := row.UpdatedAt
		views = append(views, TemplateView{
			Type:      c,
			Title:     row.Title,
			Body:      row.Body,
			Note:      row.Note,
			UpdatedAt: &updated,
		})
	}
	return views, nil
}

// UpsertTemplate stores the caller tenant's template for one category.
func (s *ReminderService) UpsertTemplate(ctx context.Context, scope models.Scope, in TemplateInput) (models.ReminderTemplate, error) {
	category, err := models.ParseCategory(in.Type)
	if err != nil {
		return models.ReminderTemplate{}, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}
	if scope.ReadOnly() {
		return models.ReminderTemplate{}, ErrReadOnly
	}
	if err := s.requireTenant(ctx, scope); err != nil {
		return models.ReminderTemplate{}, err
	}

	tpl := models.ReminderTemplate{
		TenantID: scope.TenantID,
		Type:     category,
		Title:    in.Title,
		Body:     in.Body,
		Note:     in.Note,
	}
	if err := s.stores.Templates.Upsert(ctx, &tpl); err != nil {
		return models.ReminderTemplate{}, fmt.Errorf("save template: %w", err)
	}
	return tpl, nil
}

// ResetTemplate removes the tenant's template so the default applies again.
func (s *ReminderService) ResetTemplate(ctx context.Context, scope models.Scope, categoryToken string) (bool, error) {
	category, err := models.ParseCategory(categoryToken)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}
	if scope.ReadOnly() {
		return false, ErrReadOnly
	}
	if err := s.requireTenant(ctx, scope); err != nil {
		return false, err
	}
	deleted, err := s.stores.Templates.Delete(ctx, scope.TenantID, category)
	if err != nil {
		return false, fmt.Errorf("delete template: %w", err)
	}
	return deleted, nil
}

func (s *ReminderService) requireTenant(ctx context.Context, scope models.Scope) error {
	if scope.TenantID == uuid.Nil {
		return ErrNoTenantScope
	}
	_, err := s.stores.Tenants.Get(ctx, scope.TenantID)
	return err
}

package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"backoffice-service/internal/model"
	"backoffice-service/internal/store"
	"backoffice-service/pkg/apperr"
	"backoffice-service/pkg/config"
	"backoffice-service/pkg/pagination"
)

// SchoolYearCreate is the payload for opening a school year.
type SchoolYearCreate struct {
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Status    *int
}

// SchoolYearUpdate is a partial payload; nil fields keep their stored value.
type SchoolYearUpdate struct {
	Title     *string
	StartDate *time.Time
	EndDate   *time.Time
	Status    *int
}

func (in SchoolYearUpdate) fields() map[string]any {
	f := map[string]any{}
	if in.Title != nil {
		f["title"] = *in.Title
	}
	if in.StartDate != nil {
		f["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		f["end_date"] = *in.EndDate
	}
	if in.Status != nil {
		f["status"] = *in.Status
	}
	return f
}

// SchoolYearListQuery carries the supported list filters.
type SchoolYearListQuery struct {
	Page   int
	Limit  int
	Status *int
	Search string
}

// SchoolYearService manages academic years scoped to a company.
type SchoolYearService struct {
	res *Resource[model.SchoolYear]
}

// NewSchoolYearService wires the school year resource over db.
func NewSchoolYearService(db *gorm.DB, pg config.PaginationConfig) *SchoolYearService {
	st := store.New[model.SchoolYear](db, store.Scope{TenantColumn: "company_id"})
	res := NewResource(st, Options{
		Relations:    []string{"Company"},
		DefaultOrder: "id DESC",
		DefaultLimit: pg.DefaultLimit,
		MaxLimit:     pg.MaxLimit,
	}, Hooks[model.SchoolYear]{
		AssignTenant: func(rec *model.SchoolYear, tenantID uint) { rec.CompanyID = tenantID },
		ID:           func(rec *model.SchoolYear) uint { return rec.ID },
		BeforeCreate: func(ctx context.Context, tx *store.Store[model.SchoolYear], rec *model.SchoolYear, tenantID uint) error {
			return validateYearDates(rec.StartDate, rec.EndDate)
		},
		BeforeUpdate: func(ctx context.Context, tx *store.Store[model.SchoolYear], existing *model.SchoolYear, fields map[string]any, tenantID uint) error {
			// Validate against the merged values so a payload updating only
			// one bound cannot slip an inverted range past the check.
			start, end := existing.StartDate, existing.EndDate
			if v, ok := fields["start_date"].(time.Time); ok {
				start = v
			}
			if v, ok := fields["end_date"].(time.Time); ok {
				end = v
			}
			return validateYearDates(start, end)
		},
	})
	return &SchoolYearService{res: res}
}

func validateYearDates(start, end time.Time) error {
	if !end.After(start) {
		return apperr.Validation("end_date must be greater than start_date")
	}
	return nil
}

// Create validates the date range and persists a new school year.
func (s *SchoolYearService) Create(ctx context.Context, in SchoolYearCreate, tenantID uint) (*model.SchoolYear, error) {
	rec := &model.SchoolYear{
		Title:     in.Title,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    1,
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	return s.res.Create(ctx, rec, tenantID)
}

// List returns the company's school years, newest first.
func (s *SchoolYearService) List(ctx context.Context, q SchoolYearListQuery, tenantID uint) (pagination.Envelope[model.SchoolYear], error) {
	return s.res.List(ctx, ListQuery{
		Page:  q.Page,
		Limit: q.Limit,
		Filter: func(tx *gorm.DB) *gorm.DB {
			if q.Status != nil {
				tx = tx.Where("status = ?", *q.Status)
			}
			if q.Search != "" {
				tx = tx.Where("title LIKE ?", "%"+q.Search+"%")
			}
			return tx
		},
	}, tenantID)
}

// Get fetches one school year with its company.
func (s *SchoolYearService) Get(ctx context.Context, id, tenantID uint) (*model.SchoolYear, error) {
	return s.res.Get(ctx, id, tenantID)
}

// Update merges the supplied fields and returns the merged instance.
func (s *SchoolYearService) Update(ctx context.Context, id uint, in SchoolYearUpdate, tenantID uint) (*model.SchoolYear, error) {
	return s.res.Update(ctx, id, in.fields(), tenantID)
}

// Remove deletes the school year permanently.
func (s *SchoolYearService) Remove(ctx context.Context, id, tenantID uint) error {
	return s.res.Remove(ctx, id, tenantID)
}

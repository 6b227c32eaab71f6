package service

import (
	"context"

	"gorm.io/gorm"

	"backoffice-service/internal/model"
	"backoffice-service/internal/store"
	"backoffice-service/pkg/apperr"
	"backoffice-service/pkg/config"
	"backoffice-service/pkg/pagination"
)

// PlanningSessionTypeCreate is the payload for adding a session type.
type PlanningSessionTypeCreate struct {
	Title       string
	Type        string
	Coefficient *float64
	Status      *string
}

// PlanningSessionTypeUpdate is a partial payload; nil fields keep their
// stored value.
type PlanningSessionTypeUpdate struct {
	Title       *string
	Type        *string
	Coefficient *float64
	Status      *string
}

func (in PlanningSessionTypeUpdate) fields() map[string]any {
	f := map[string]any{}
	if in.Title != nil {
		f["title"] = *in.Title
	}
	if in.Type != nil {
		f["type"] = *in.Type
	}
	if in.Coefficient != nil {
		f["coefficient"] = *in.Coefficient
	}
	if in.Status != nil {
		f["status"] = *in.Status
	}
	return f
}

// PlanningSessionTypeListQuery carries the supported list filters.
type PlanningSessionTypeListQuery struct {
	Page   int
	Limit  int
	Status string
	Type   string
	Search string
}

// PlanningSessionTypeService manages the session type catalog. There is no
// soft delete here: removal drops the row.
type PlanningSessionTypeService struct {
	res *Resource[model.PlanningSessionType]
}

// NewPlanningSessionTypeService wires the session type resource over db.
func NewPlanningSessionTypeService(db *gorm.DB, pg config.PaginationConfig) *PlanningSessionTypeService {
	st := store.New[model.PlanningSessionType](db, store.Scope{TenantColumn: "company_id"})
	res := NewResource(st, Options{
		DefaultOrder:       "title ASC",
		RefetchAfterUpdate: true,
		DefaultLimit:       pg.DefaultLimit,
		MaxLimit:           pg.MaxLimit,
	}, Hooks[model.PlanningSessionType]{
		AssignTenant: func(rec *model.PlanningSessionType, tenantID uint) { rec.CompanyID = tenantID },
		ID:           func(rec *model.PlanningSessionType) uint { return rec.ID },
		BeforeCreate: func(ctx context.Context, tx *store.Store[model.PlanningSessionType], rec *model.PlanningSessionType, tenantID uint) error {
			return validateSessionTypeStatus(rec.Status)
		},
		BeforeUpdate: func(ctx context.Context, tx *store.Store[model.PlanningSessionType], existing *model.PlanningSessionType, fields map[string]any, tenantID uint) error {
			if v, ok := fields["status"].(string); ok {
				return validateSessionTypeStatus(v)
			}
			return nil
		},
	})
	return &PlanningSessionTypeService{res: res}
}

func validateSessionTypeStatus(status string) error {
	if status != model.PlanningSessionTypeStatusActive && status != model.PlanningSessionTypeStatusInactive {
		return apperr.Validation("status must be either 'active' or 'inactive'")
	}
	return nil
}

// Create applies the status default and persists a new session type.
func (s *PlanningSessionTypeService) Create(ctx context.Context, in PlanningSessionTypeCreate, tenantID uint) (*model.PlanningSessionType, error) {
	rec := &model.PlanningSessionType{
		Title:       in.Title,
		Type:        in.Type,
		Coefficient: in.Coefficient,
		Status:      model.PlanningSessionTypeStatusActive,
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	return s.res.Create(ctx, rec, tenantID)
}

// List returns the company's session types ordered by title.
func (s *PlanningSessionTypeService) List(ctx context.Context, q PlanningSessionTypeListQuery, tenantID uint) (pagination.Envelope[model.PlanningSessionType], error) {
	return s.res.List(ctx, ListQuery{
		Page:  q.Page,
		Limit: q.Limit,
		Filter: func(tx *gorm.DB) *gorm.DB {
			if q.Status != "" {
				tx = tx.Where("status = ?", q.Status)
			}
			if q.Type != "" {
				tx = tx.Where("type = ?", q.Type)
			}
			if q.Search != "" {
				tx = tx.Where("title LIKE ?", "%"+q.Search+"%")
			}
			return tx
		},
	}, tenantID)
}

// Get fetches one session type.
func (s *PlanningSessionTypeService) Get(ctx context.Context, id, tenantID uint) (*model.PlanningSessionType, error) {
	return s.res.Get(ctx, id, tenantID)
}

// Update merges the supplied fields and returns the fresh record.
func (s *PlanningSessionTypeService) Update(ctx context.Context, id uint, in PlanningSessionTypeUpdate, tenantID uint) (*model.PlanningSessionType, error) {
	return s.res.Update(ctx, id, in.fields(), tenantID)
}

// Remove deletes the session type permanently.
func (s *PlanningSessionTypeService) Remove(ctx context.Context, id, tenantID uint) error {
	return s.res.Remove(ctx, id, tenantID)
}

package service

import (
	"context"

	"gorm.io/gorm"

	"backoffice-service/internal/model"
	"backoffice-service/internal/store"
	"backoffice-service/pkg/config"
	"backoffice-service/pkg/pagination"
)

// LevelCreate is the payload for adding a teaching level.
type LevelCreate struct {
	Title  string
	Status *int
}

// LevelUpdate is a partial payload; nil fields keep their stored value.
type LevelUpdate struct {
	Title  *string
	Status *int
}

func (in LevelUpdate) fields() map[string]any {
	f := map[string]any{}
	if in.Title != nil {
		f["title"] = *in.Title
	}
	if in.Status != nil {
		f["status"] = *in.Status
	}
	return f
}

// LevelListQuery carries the supported list filters.
type LevelListQuery struct {
	Page   int
	Limit  int
	Status *int
	Search string
}

// LevelService manages the teaching levels pricing plans point at.
type LevelService struct {
	res *Resource[model.Level]
}

// NewLevelService wires the level resource over db.
func NewLevelService(db *gorm.DB, pg config.PaginationConfig) *LevelService {
	st := store.New[model.Level](db, store.Scope{TenantColumn: "company_id"})
	res := NewResource(st, Options{
		DefaultOrder:       "title ASC",
		RefetchAfterUpdate: true,
		DefaultLimit:       pg.DefaultLimit,
		MaxLimit:           pg.MaxLimit,
	}, Hooks[model.Level]{
		AssignTenant: func(rec *model.Level, tenantID uint) { rec.CompanyID = tenantID },
		ID:           func(rec *model.Level) uint { return rec.ID },
	})
	return &LevelService{res: res}
}

// Create persists a new level under the caller's company.
func (s *LevelService) Create(ctx context.Context, in LevelCreate, tenantID uint) (*model.Level, error) {
	rec := &model.Level{
		Title:  in.Title,
		Status: 1,
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	return s.res.Create(ctx, rec, tenantID)
}

// List returns the company's levels ordered by title.
func (s *LevelService) List(ctx context.Context, q LevelListQuery, tenantID uint) (pagination.Envelope[model.Level], error) {
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

// Get fetches one level.
func (s *LevelService) Get(ctx context.Context, id, tenantID uint) (*model.Level, error) {
	return s.res.Get(ctx, id, tenantID)
}

// Update merges the supplied fields and returns the fresh record.
func (s *LevelService) Update(ctx context.Context, id uint, in LevelUpdate, tenantID uint) (*model.Level, error) {
	return s.res.Update(ctx, id, in.fields(), tenantID)
}

// Remove deletes the level permanently.
func (s *LevelService) Remove(ctx context.Context, id, tenantID uint) error {
	return s.res.Remove(ctx, id, tenantID)
}

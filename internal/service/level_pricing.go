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

// LevelPricingCreate is the payload for attaching a pricing plan to a level.
type LevelPricingCreate struct {
	LevelID     uint
	Title       string
	Amount      float64
	Occurrences *int
	EveryMonth  *int
	Status      *int
}

// LevelPricingUpdate is a partial payload; nil fields keep their stored value.
type LevelPricingUpdate struct {
	LevelID     *uint
	Title       *string
	Amount      *float64
	Occurrences *int
	EveryMonth  *int
	Status      *int
}

func (in LevelPricingUpdate) fields() map[string]any {
	f := map[string]any{}
	if in.LevelID != nil {
		f["level_id"] = *in.LevelID
	}
	if in.Title != nil {
		f["title"] = *in.Title
	}
	if in.Amount != nil {
		f["amount"] = *in.Amount
	}
	if in.Occurrences != nil {
		f["occurrences"] = *in.Occurrences
	}
	if in.EveryMonth != nil {
		f["every_month"] = *in.EveryMonth
	}
	if in.Status != nil {
		f["status"] = *in.Status
	}
	return f
}

// LevelPricingListQuery carries the supported list filters.
type LevelPricingListQuery struct {
	Page    int
	Limit   int
	Status  *int
	LevelID *uint
	Search  string
}

// LevelPricingService manages pricing plans. Plans soft-delete: a removed
// plan keeps its row with status -2 and vanishes from scoped reads.
type LevelPricingService struct {
	res *Resource[model.LevelPricing]
}

// NewLevelPricingService wires the pricing resource over db.
func NewLevelPricingService(db *gorm.DB, pg config.PaginationConfig) *LevelPricingService {
	st := store.New[model.LevelPricing](db, store.Scope{
		TenantColumn: "company_id",
		SoftDelete:   true,
		DeletedValue: model.LevelPricingStatusDeleted,
	})
	res := NewResource(st, Options{
		Relations:          []string{"Level"},
		DefaultOrder:       "created_at DESC",
		RefetchAfterUpdate: true,
		DefaultLimit:       pg.DefaultLimit,
		MaxLimit:           pg.MaxLimit,
	}, Hooks[model.LevelPricing]{
		AssignTenant: func(rec *model.LevelPricing, tenantID uint) { rec.CompanyID = tenantID },
		ID:           func(rec *model.LevelPricing) uint { return rec.ID },
		BeforeCreate: func(ctx context.Context, tx *store.Store[model.LevelPricing], rec *model.LevelPricing, tenantID uint) error {
			if err := validatePricing(rec.Amount, rec.Occurrences, rec.EveryMonth, rec.Status); err != nil {
				return err
			}
			return assertSameTenant[model.Level](ctx, tx.DB(), rec.LevelID, tenantID, "level")
		},
		BeforeUpdate: func(ctx context.Context, tx *store.Store[model.LevelPricing], existing *model.LevelPricing, fields map[string]any, tenantID uint) error {
			// The reference is re-validated only when the payload touches it;
			// an absent level_id keeps the current reference untouched.
			if levelID, ok := fields["level_id"].(uint); ok {
				if err := assertSameTenant[model.Level](ctx, tx.DB(), levelID, tenantID, "level"); err != nil {
					return err
				}
			}

			amount, occurrences := existing.Amount, existing.Occurrences
			everyMonth, status := existing.EveryMonth, existing.Status
			if v, ok := fields["amount"].(float64); ok {
				amount = v
			}
			if v, ok := fields["occurrences"].(int); ok {
				occurrences = v
			}
			if v, ok := fields["every_month"].(int); ok {
				everyMonth = v
			}
			if v, ok := fields["status"].(int); ok {
				status = v
			}
			return validatePricing(amount, occurrences, everyMonth, status)
		},
	})
	return &LevelPricingService{res: res}
}

func validatePricing(amount float64, occurrences, everyMonth, status int) error {
	if amount <= 0 {
		return apperr.Validation("amount must be greater than 0")
	}
	if occurrences < 1 {
		return apperr.Validation("occurrences must be at least 1")
	}
	if everyMonth != 0 && everyMonth != 1 {
		return apperr.Validation("every_month must be 0 or 1")
	}
	if status < model.LevelPricingStatusDeleted || status > model.LevelPricingStatusActive {
		return apperr.Validation("status must be between -2 and 2")
	}
	return nil
}

// Create applies the defaulting stage (status 2, occurrences 1, every_month 0),
// validates the plan and the level reference, and persists.
func (s *LevelPricingService) Create(ctx context.Context, in LevelPricingCreate, tenantID uint) (*model.LevelPricing, error) {
	rec := &model.LevelPricing{
		LevelID:     in.LevelID,
		Title:       in.Title,
		Amount:      in.Amount,
		Occurrences: 1,
		EveryMonth:  0,
		Status:      model.LevelPricingStatusActive,
	}
	if in.Occurrences != nil {
		rec.Occurrences = *in.Occurrences
	}
	if in.EveryMonth != nil {
		rec.EveryMonth = *in.EveryMonth
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	return s.res.Create(ctx, rec, tenantID)
}

// List returns the company's pricing plans, most recent first, excluding
// soft-deleted rows.
func (s *LevelPricingService) List(ctx context.Context, q LevelPricingListQuery, tenantID uint) (pagination.Envelope[model.LevelPricing], error) {
	return s.res.List(ctx, ListQuery{
		Page:  q.Page,
		Limit: q.Limit,
		Filter: func(tx *gorm.DB) *gorm.DB {
			if q.Status != nil {
				tx = tx.Where("status = ?", *q.Status)
			}
			if q.LevelID != nil {
				tx = tx.Where("level_id = ?", *q.LevelID)
			}
			if q.Search != "" {
				tx = tx.Where("title LIKE ?", "%"+q.Search+"%")
			}
			return tx
		},
	}, tenantID)
}

// Get fetches one pricing plan with its level.
func (s *LevelPricingService) Get(ctx context.Context, id, tenantID uint) (*model.LevelPricing, error) {
	return s.res.Get(ctx, id, tenantID)
}

// Update merges the supplied fields and returns the fresh record with its
// level preloaded.
func (s *LevelPricingService) Update(ctx context.Context, id uint, in LevelPricingUpdate, tenantID uint) (*model.LevelPricing, error) {
	return s.res.Update(ctx, id, in.fields(), tenantID)
}

// Remove soft-deletes the plan. Removing it a second time yields NotFound,
// since the scoped lookup no longer sees the row.
func (s *LevelPricingService) Remove(ctx context.Context, id, tenantID uint) error {
	return s.res.Remove(ctx, id, tenantID)
}

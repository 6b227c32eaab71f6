package service

import (
	"context"

	"gorm.io/gorm"

	"backoffice-service/internal/model"
	"backoffice-service/internal/store"
	"backoffice-service/pkg/config"
	"backoffice-service/pkg/pagination"
)

// CompanyCreate is the payload for registering a company.
type CompanyCreate struct {
	Name    string
	Email   string
	Logo    string
	Phone   string
	Website string
	Status  *int
}

// CompanyUpdate is a partial payload; nil fields keep their stored value.
type CompanyUpdate struct {
	Name    *string
	Email   *string
	Logo    *string
	Phone   *string
	Website *string
	Status  *int
}

func (in CompanyUpdate) fields() map[string]any {
	f := map[string]any{}
	if in.Name != nil {
		f["name"] = *in.Name
	}
	if in.Email != nil {
		f["email"] = *in.Email
	}
	if in.Logo != nil {
		f["logo"] = *in.Logo
	}
	if in.Phone != nil {
		f["phone"] = *in.Phone
	}
	if in.Website != nil {
		f["website"] = *in.Website
	}
	if in.Status != nil {
		f["status"] = *in.Status
	}
	return f
}

// CompanyListQuery carries the supported list filters.
type CompanyListQuery struct {
	Page   int
	Limit  int
	Status *int
	Search string
}

// CompanyService manages the root tenant entity. A company row is its own
// tenant: scoped operations match the row id against the caller's tenant id.
type CompanyService struct {
	res *Resource[model.Company]
}

// NewCompanyService wires the company resource over db.
func NewCompanyService(db *gorm.DB, pg config.PaginationConfig) *CompanyService {
	st := store.New[model.Company](db, store.Scope{TenantColumn: "id"})
	res := NewResource(st, Options{
		DefaultOrder: "id ASC",
		SelfScoped:   true,
		DefaultLimit: pg.DefaultLimit,
		MaxLimit:     pg.MaxLimit,
	}, Hooks[model.Company]{
		// Company rows carry no separate tenant column; the id assigned on
		// insert is the tenant.
		AssignTenant: func(rec *model.Company, tenantID uint) {},
		ID:           func(rec *model.Company) uint { return rec.ID },
	})
	return &CompanyService{res: res}
}

// Create registers a new company.
func (s *CompanyService) Create(ctx context.Context, in CompanyCreate, tenantID uint) (*model.Company, error) {
	rec := &model.Company{
		Name:    in.Name,
		Email:   in.Email,
		Logo:    in.Logo,
		Phone:   in.Phone,
		Website: in.Website,
		Status:  1,
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	return s.res.Create(ctx, rec, tenantID)
}

// List returns the caller's company inside the standard paginated envelope.
func (s *CompanyService) List(ctx context.Context, q CompanyListQuery, tenantID uint) (pagination.Envelope[model.Company], error) {
	return s.res.List(ctx, ListQuery{
		Page:  q.Page,
		Limit: q.Limit,
		Filter: func(tx *gorm.DB) *gorm.DB {
			if q.Status != nil {
				tx = tx.Where("status = ?", *q.Status)
			}
			if q.Search != "" {
				like := "%" + q.Search + "%"
				tx = tx.Where("name LIKE ? OR email LIKE ?", like, like)
			}
			return tx
		},
	}, tenantID)
}

// Get fetches the caller's company by id.
func (s *CompanyService) Get(ctx context.Context, id, tenantID uint) (*model.Company, error) {
	return s.res.Get(ctx, id, tenantID)
}

// Update merges the supplied fields and returns the merged instance.
func (s *CompanyService) Update(ctx context.Context, id uint, in CompanyUpdate, tenantID uint) (*model.Company, error) {
	return s.res.Update(ctx, id, in.fields(), tenantID)
}

// Remove deletes the company permanently.
func (s *CompanyService) Remove(ctx context.Context, id, tenantID uint) error {
	return s.res.Remove(ctx, id, tenantID)
}

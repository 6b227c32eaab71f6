// Package service implements the tenant-scoped CRUD core shared by every
// back-office resource. The five standard operations are implemented once on
// Resource; each resource contributes its scope, defaults, ordering and
// validation through a thin configuration on top of it.
package service

import (
	"context"

	"gorm.io/gorm"

	"backoffice-service/internal/store"
	"backoffice-service/pkg/apperr"
	"backoffice-service/pkg/pagination"
)

// Options configures the generic behavior of one resource.
type Options struct {
	// Relations are preloaded on every single-record read and on the
	// re-fetch after create.
	Relations []string

	// DefaultOrder is the stable ordering applied to list queries.
	DefaultOrder string

	// RefetchAfterUpdate re-reads the row (with Relations) after a merge
	// instead of returning the merged instance. Pricing plans and planning
	// session types do; school years and companies do not.
	RefetchAfterUpdate bool

	// SelfScoped marks the company resource, whose rows are their own
	// tenant: the re-fetch after create scopes by the freshly assigned id.
	SelfScoped bool

	DefaultLimit int
	MaxLimit     int
}

// Hooks are the resource-specific extension points of the generic algorithm.
type Hooks[T any] struct {
	// AssignTenant stamps the caller's tenant onto a new record. Runs after
	// BeforeCreate so a payload-supplied tenant value can never survive.
	AssignTenant func(rec *T, tenantID uint)

	// ID reads the record's identity after insert.
	ID func(rec *T) uint

	// BeforeCreate applies defaults and validates the payload (including
	// cross-entity references) before anything is written.
	BeforeCreate func(ctx context.Context, tx *store.Store[T], rec *T, tenantID uint) error

	// BeforeUpdate validates a partial payload against the existing record.
	// Foreign keys are re-validated only when present in fields.
	BeforeUpdate func(ctx context.Context, tx *store.Store[T], existing *T, fields map[string]any, tenantID uint) error
}

// ListQuery is a normalized list request built by a resource service from
// its own query fields.
type ListQuery struct {
	Page   int
	Limit  int
	Filter func(tx *gorm.DB) *gorm.DB
}

// Resource implements create/list/get/update/remove for one record type.
type Resource[T any] struct {
	store *store.Store[T]
	opts  Options
	hooks Hooks[T]
}

// NewResource assembles the generic service from a store, options and hooks.
func NewResource[T any](st *store.Store[T], opts Options, hooks Hooks[T]) *Resource[T] {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	return &Resource[T]{store: st, opts: opts, hooks: hooks}
}

// Store exposes the underlying store, mainly for tests and seed tooling.
func (r *Resource[T]) Store() *store.Store[T] {
	return r.store
}

// Create validates the payload, stamps the tenant, inserts and re-fetches the
// record with its relations for a consistent return shape.
func (r *Resource[T]) Create(ctx context.Context, rec *T, tenantID uint) (*T, error) {
	if tenantID == 0 {
		return nil, apperr.ErrMissingTenant
	}

	if r.hooks.BeforeCreate != nil {
		if err := r.hooks.BeforeCreate(ctx, r.store, rec, tenantID); err != nil {
			return nil, err
		}
	}

	r.hooks.AssignTenant(rec, tenantID)
	if err := r.store.Insert(ctx, rec); err != nil {
		return nil, err
	}

	scope := tenantID
	if r.opts.SelfScoped {
		scope = r.hooks.ID(rec)
	}
	return r.store.GetOneScoped(ctx, r.hooks.ID(rec), scope, r.opts.Relations...)
}

// List returns one page of the tenant's records inside a paginated envelope.
func (r *Resource[T]) List(ctx context.Context, q ListQuery, tenantID uint) (pagination.Envelope[T], error) {
	if tenantID == 0 {
		return pagination.Envelope[T]{}, apperr.ErrMissingTenant
	}

	p := pagination.Paginate(q.Page, q.Limit, r.opts.DefaultLimit, r.opts.MaxLimit)
	records, total, err := r.store.FindScoped(ctx, tenantID, store.Query{
		Filter:    q.Filter,
		Relations: r.opts.Relations,
		OrderBy:   r.opts.DefaultOrder,
		Offset:    p.Offset,
		Limit:     p.Limit,
	})
	if err != nil {
		return pagination.Envelope[T]{}, err
	}
	return pagination.NewEnvelope(records, p.Page, p.Limit, total), nil
}

// Get fetches one record within the caller's tenant scope.
func (r *Resource[T]) Get(ctx context.Context, id, tenantID uint) (*T, error) {
	if tenantID == 0 {
		return nil, apperr.ErrMissingTenant
	}
	return r.store.GetOneScoped(ctx, id, tenantID, r.opts.Relations...)
}

// Update re-fetches the record under tenant scope, validates the partial
// payload, merges only the supplied fields and persists, all in one
// transaction. The tenant can never change, whatever the payload carries.
func (r *Resource[T]) Update(ctx context.Context, id uint, fields map[string]any, tenantID uint) (*T, error) {
	if tenantID == 0 {
		return nil, apperr.ErrMissingTenant
	}

	var out *T
	err := r.store.Transaction(ctx, func(tx *store.Store[T]) error {
		existing, err := tx.GetOneScoped(ctx, id, tenantID, r.opts.Relations...)
		if err != nil {
			return err
		}

		if r.hooks.BeforeUpdate != nil {
			if err := r.hooks.BeforeUpdate(ctx, tx, existing, fields, tenantID); err != nil {
				return err
			}
		}

		if err := tx.MergeAndSave(ctx, existing, fields, tenantID); err != nil {
			return err
		}

		if r.opts.RefetchAfterUpdate {
			out, err = tx.GetOneScoped(ctx, id, tenantID, r.opts.Relations...)
			return err
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes the record: a status stamp for soft-deleting resources, a
// permanent row removal otherwise. Removing an already soft-deleted record
// yields NotFound, since the scoped lookup excludes deleted rows.
func (r *Resource[T]) Remove(ctx context.Context, id, tenantID uint) error {
	if tenantID == 0 {
		return apperr.ErrMissingTenant
	}

	return r.store.Transaction(ctx, func(tx *store.Store[T]) error {
		rec, err := tx.GetOneScoped(ctx, id, tenantID)
		if err != nil {
			return err
		}
		if tx.SoftDeletes() {
			return tx.SoftDelete(ctx, rec)
		}
		return tx.HardDelete(ctx, rec)
	})
}

// Package store implements the tenant-scoped entity store shared by every
// back-office resource. Each resource instantiates a Store with its own
// scope: which column carries the tenant, and whether rows are soft-deleted
// through a status sentinel instead of being removed.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"backoffice-service/pkg/apperr"
	"backoffice-service/prometheus"
)

// Scope describes how a resource's rows are partitioned and deleted.
type Scope struct {
	// TenantColumn is the column matched against the caller's tenant id.
	// "company_id" for most resources, "id" for companies themselves.
	TenantColumn string

	// SoftDelete marks resources whose rows are never removed on delete.
	// When set, DeletedValue is written to StatusColumn instead, and all
	// scoped reads exclude rows carrying it.
	SoftDelete   bool
	StatusColumn string
	DeletedValue int
}

// Query carries the optional knobs of a scoped list query.
type Query struct {
	// Filter appends caller-supplied predicates (status, FK equality,
	// substring search) to the scoped base query.
	Filter func(tx *gorm.DB) *gorm.DB

	Relations []string
	OrderBy   string
	Offset    int
	Limit     int
}

// Store is a GORM-backed collection of T rows partitioned by tenant.
type Store[T any] struct {
	db    *gorm.DB
	scope Scope
}

// New builds a store for T over db with the given scope.
func New[T any](db *gorm.DB, scope Scope) *Store[T] {
	if scope.StatusColumn == "" {
		scope.StatusColumn = "status"
	}
	return &Store[T]{db: db, scope: scope}
}

// DB exposes the underlying handle for cross-entity lookups (referential
// validation) that are not tied to this store's row type.
func (s *Store[T]) DB() *gorm.DB {
	return s.db
}

// scoped returns a query constrained to the tenant partition, with
// soft-deleted rows excluded where applicable.
func (s *Store[T]) scoped(tx *gorm.DB, tenantID uint) *gorm.DB {
	tx = tx.Where(fmt.Sprintf("%s = ?", s.scope.TenantColumn), tenantID)
	if s.scope.SoftDelete {
		tx = tx.Where(fmt.Sprintf("%s <> ?", s.scope.StatusColumn), s.scope.DeletedValue)
	}
	return tx
}

// Insert persists a new row. The identity is assigned by the database.
func (s *Store[T]) Insert(ctx context.Context, rec *T) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return apperr.ClassifyStorage(err)
	}
	return nil
}

// FindScoped returns one page of rows matching the tenant partition plus the
// caller's filter, together with the total count over the unpaginated set.
func (s *Store[T]) FindScoped(ctx context.Context, tenantID uint, q Query) ([]T, int64, error) {
	defer prometheus.TrackDBOperation("find")(time.Now())

	base := s.scoped(s.db.WithContext(ctx).Model(new(T)), tenantID)
	if q.Filter != nil {
		base = q.Filter(base)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := base.Session(&gorm.Session{})
	for _, rel := range q.Relations {
		rows = rows.Preload(rel)
	}
	if q.OrderBy != "" {
		rows = rows.Order(q.OrderBy)
	}
	if q.Limit > 0 {
		rows = rows.Offset(q.Offset).Limit(q.Limit)
	}

	var records []T
	if err := rows.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// GetOneScoped fetches one row by id within the tenant partition. A row that
// exists under another tenant (or is soft-deleted) yields apperr.ErrNotFound,
// indistinguishable from a genuinely absent one.
func (s *Store[T]) GetOneScoped(ctx context.Context, id, tenantID uint, relations ...string) (*T, error) {
	defer prometheus.TrackDBOperation("get")(time.Now())

	tx := s.db.WithContext(ctx)
	for _, rel := range relations {
		tx = tx.Preload(rel)
	}

	var rec T
	err := s.scoped(tx, tenantID).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// MergeAndSave applies only the keys present in fields onto existing and
// persists the result. Any id or tenant key in the payload is dropped, and
// the authoritative tenant value re-asserted, so an update can never move a
// row across tenants.
func (s *Store[T]) MergeAndSave(ctx context.Context, existing *T, fields map[string]any, tenantID uint) error {
	delete(fields, "id")
	delete(fields, s.scope.TenantColumn)
	if s.scope.TenantColumn != "id" {
		fields[s.scope.TenantColumn] = tenantID
	}
	if len(fields) == 0 {
		return nil
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := s.db.WithContext(ctx).Model(existing).Updates(fields).Error; err != nil {
		return apperr.ClassifyStorage(err)
	}
	return nil
}

// HardDelete removes the row permanently.
func (s *Store[T]) HardDelete(ctx context.Context, rec *T) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Delete(rec).Error
}

// SoftDelete stamps the row with the deleted sentinel. The row persists but
// disappears from all scoped reads.
func (s *Store[T]) SoftDelete(ctx context.Context, rec *T) error {
	if !s.scope.SoftDelete {
		return fmt.Errorf("store: soft delete not configured for this resource")
	}

	defer prometheus.TrackDBOperation("soft_delete")(time.Now())

	return s.db.WithContext(ctx).Model(rec).Update(s.scope.StatusColumn, s.scope.DeletedValue).Error
}

// SoftDeletes reports whether this resource soft-deletes its rows.
func (s *Store[T]) SoftDeletes() bool {
	return s.scope.SoftDelete
}

// Transaction runs fn against a transaction-bound copy of the store, so a
// read-merge-write sequence commits or rolls back as one unit.
func (s *Store[T]) Transaction(ctx context.Context, fn func(tx *Store[T]) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store[T]{db: tx, scope: s.scope})
	})
}

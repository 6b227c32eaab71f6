package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"backoffice-service/pkg/apperr"
)

// assertSameTenant confirms that the referenced R row exists and belongs to
// the caller's company. Absent and cross-tenant rows are reported with the
// same message so nothing leaks about other tenants' data.
func assertSameTenant[R any](ctx context.Context, db *gorm.DB, id, tenantID uint, label string) error {
	var count int64
	err := db.WithContext(ctx).
		Model(new(R)).
		Where("id = ? AND company_id = ?", id, tenantID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.Validation(fmt.Sprintf("%s not found or does not belong to your company", label))
	}
	return nil
}

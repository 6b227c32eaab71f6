package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"backoffice-service/internal/model"
	"backoffice-service/pkg/apperr"
	"backoffice-service/pkg/config"
)

var dbSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Company{},
		&model.SchoolYear{},
		&model.Level{},
		&model.LevelPricing{},
		&model.PlanningSessionType{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type ServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	companies    *CompanyService
	schoolYears  *SchoolYearService
	levels       *LevelService
	pricings     *LevelPricingService
	sessionTypes *PlanningSessionTypeService
}

func (s *ServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.ctx = context.Background()

	pg := config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100}
	s.companies = NewCompanyService(s.db, pg)
	s.schoolYears = NewSchoolYearService(s.db, pg)
	s.levels = NewLevelService(s.db, pg)
	s.pricings = NewLevelPricingService(s.db, pg)
	s.sessionTypes = NewPlanningSessionTypeService(s.db, pg)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// seedCompany inserts a company row with a fixed id so tests can use it as a
// tenant.
func (s *ServiceSuite) seedCompany(id uint, name string) {
	s.Require().NoError(s.db.Create(&model.Company{
		ID: id, Name: name, Email: fmt.Sprintf("%s@example.com", name), Status: 1,
	}).Error)
}

func (s *ServiceSuite) seedLevel(id, companyID uint, title string) {
	s.Require().NoError(s.db.Create(&model.Level{
		ID: id, Title: title, Status: 1, CompanyID: companyID,
	}).Error)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func (s *ServiceSuite) TestMissingTenant() {
	_, err := s.levels.Create(s.ctx, LevelCreate{Title: "CE1"}, 0)
	s.Require().ErrorIs(err, apperr.ErrMissingTenant)

	_, err = s.levels.List(s.ctx, LevelListQuery{}, 0)
	s.Require().ErrorIs(err, apperr.ErrMissingTenant)

	_, err = s.levels.Get(s.ctx, 1, 0)
	s.Require().ErrorIs(err, apperr.ErrMissingTenant)

	_, err = s.levels.Update(s.ctx, 1, LevelUpdate{}, 0)
	s.Require().ErrorIs(err, apperr.ErrMissingTenant)

	err = s.levels.Remove(s.ctx, 1, 0)
	s.Require().ErrorIs(err, apperr.ErrMissingTenant)

	// Nothing was written along the way.
	var count int64
	s.Require().NoError(s.db.Model(&model.Level{}).Count(&count).Error)
	s.Zero(count)
}

func (s *ServiceSuite) TestTenantIsolation() {
	s.seedCompany(1, "alpha")
	s.seedCompany(2, "beta")

	created, err := s.levels.Create(s.ctx, LevelCreate{Title: "CE1"}, 1)
	s.Require().NoError(err)

	s.Run("get under another tenant is NotFound", func() {
		_, err := s.levels.Get(s.ctx, created.ID, 2)
		s.Require().ErrorIs(err, apperr.ErrNotFound)
	})

	s.Run("list under another tenant never returns it", func() {
		env, err := s.levels.List(s.ctx, LevelListQuery{}, 2)
		s.Require().NoError(err)
		s.Empty(env.Data)
		s.Zero(env.Meta.Total)
	})

	s.Run("update under another tenant is NotFound", func() {
		_, err := s.levels.Update(s.ctx, created.ID, LevelUpdate{Title: strPtr("stolen")}, 2)
		s.Require().ErrorIs(err, apperr.ErrNotFound)
	})

	s.Run("remove under another tenant is NotFound", func() {
		err := s.levels.Remove(s.ctx, created.ID, 2)
		s.Require().ErrorIs(err, apperr.ErrNotFound)
	})
}

func (s *ServiceSuite) TestLevelPricingCreateScenario() {
	s.seedCompany(7, "alpha")
	s.seedCompany(8, "beta")
	s.seedLevel(3, 7, "CE1")

	s.Run("same-tenant level succeeds with defaults", func() {
		pricing, err := s.pricings.Create(s.ctx, LevelPricingCreate{
			LevelID: 3, Title: "Monthly", Amount: 500,
		}, 7)
		s.Require().NoError(err)
		s.Equal(model.LevelPricingStatusActive, pricing.Status)
		s.Equal(1, pricing.Occurrences)
		s.Equal(0, pricing.EveryMonth)
		s.Equal(uint(7), pricing.CompanyID)
		s.Equal("CE1", pricing.Level.Title)
	})

	s.Run("cross-tenant level fails and writes nothing", func() {
		var before int64
		s.Require().NoError(s.db.Model(&model.LevelPricing{}).Count(&before).Error)

		_, err := s.pricings.Create(s.ctx, LevelPricingCreate{
			LevelID: 3, Title: "Monthly", Amount: 500,
		}, 8)
		s.Require().Error(err)
		s.True(apperr.IsValidation(err))
		s.Contains(err.Error(), "does not belong to your company")

		var after int64
		s.Require().NoError(s.db.Model(&model.LevelPricing{}).Count(&after).Error)
		s.Equal(before, after)
	})

	s.Run("non-positive amount is rejected", func() {
		_, err := s.pricings.Create(s.ctx, LevelPricingCreate{
			LevelID: 3, Title: "Free", Amount: 0,
		}, 7)
		s.Require().Error(err)
		s.True(apperr.IsValidation(err))
		s.Contains(err.Error(), "amount must be greater than 0")
	})
}

func (s *ServiceSuite) TestLevelPricingUpdate() {
	s.seedCompany(7, "alpha")
	s.seedCompany(8, "beta")
	s.seedLevel(3, 7, "CE1")
	s.seedLevel(4, 7, "CE2")
	s.seedLevel(5, 8, "other")

	created, err := s.pricings.Create(s.ctx, LevelPricingCreate{
		LevelID: 3, Title: "Monthly", Amount: 500,
	}, 7)
	s.Require().NoError(err)

	s.Run("omitted fields retain their value", func() {
		updated, err := s.pricings.Update(s.ctx, created.ID, LevelPricingUpdate{
			Amount: func() *float64 { v := 600.0; return &v }(),
		}, 7)
		s.Require().NoError(err)
		s.Equal(600.0, updated.Amount)
		s.Equal("Monthly", updated.Title)
		s.Equal(uint(3), updated.LevelID)
		s.Equal("CE1", updated.Level.Title)
	})

	s.Run("foreign key re-validated when present", func() {
		_, err := s.pricings.Update(s.ctx, created.ID, LevelPricingUpdate{
			LevelID: func() *uint { v := uint(5); return &v }(),
		}, 7)
		s.Require().Error(err)
		s.True(apperr.IsValidation(err))
	})

	s.Run("foreign key switch within tenant succeeds", func() {
		updated, err := s.pricings.Update(s.ctx, created.ID, LevelPricingUpdate{
			LevelID: func() *uint { v := uint(4); return &v }(),
		}, 7)
		s.Require().NoError(err)
		s.Equal(uint(4), updated.LevelID)
		s.Equal("CE2", updated.Level.Title)
	})

	s.Run("tenant never changes on update", func() {
		var raw model.LevelPricing
		s.Require().NoError(s.db.First(&raw, created.ID).Error)
		s.Equal(uint(7), raw.CompanyID)
	})
}

func (s *ServiceSuite) TestLevelPricingSoftDelete() {
	s.seedCompany(7, "alpha")
	s.seedLevel(3, 7, "CE1")

	created, err := s.pricings.Create(s.ctx, LevelPricingCreate{
		LevelID: 3, Title: "Monthly", Amount: 500,
	}, 7)
	s.Require().NoError(err)

	s.Require().NoError(s.pricings.Remove(s.ctx, created.ID, 7))

	s.Run("row persists with the deleted sentinel", func() {
		var raw model.LevelPricing
		s.Require().NoError(s.db.First(&raw, created.ID).Error)
		s.Equal(model.LevelPricingStatusDeleted, raw.Status)
	})

	s.Run("gone from get and list", func() {
		_, err := s.pricings.Get(s.ctx, created.ID, 7)
		s.Require().ErrorIs(err, apperr.ErrNotFound)

		env, err := s.pricings.List(s.ctx, LevelPricingListQuery{}, 7)
		s.Require().NoError(err)
		s.Empty(env.Data)
	})

	s.Run("second remove is NotFound", func() {
		err := s.pricings.Remove(s.ctx, created.ID, 7)
		s.Require().ErrorIs(err, apperr.ErrNotFound)
	})
}

func (s *ServiceSuite) TestSchoolYearDates() {
	s.seedCompany(7, "alpha")

	s.Run("inverted range rejected with no write", func() {
		_, err := s.schoolYears.Create(s.ctx, SchoolYearCreate{
			Title:     "2024",
			StartDate: date(2024, time.September, 1),
			EndDate:   date(2024, time.June, 1),
		}, 7)
		s.Require().Error(err)
		s.True(apperr.IsValidation(err))
		s.Contains(err.Error(), "end_date must be greater than start_date")

		var count int64
		s.Require().NoError(s.db.Model(&model.SchoolYear{}).Count(&count).Error)
		s.Zero(count)
	})

	created, err := s.schoolYears.Create(s.ctx, SchoolYearCreate{
		Title:     "2024/2025",
		StartDate: date(2024, time.September, 1),
		EndDate:   date(2025, time.June, 30),
	}, 7)
	s.Require().NoError(err)
	s.Equal("alpha", created.Company.Name)

	s.Run("merged values validated on partial update", func() {
		// Only the end date moves, before the stored start date.
		end := date(2024, time.August, 1)
		_, err := s.schoolYears.Update(s.ctx, created.ID, SchoolYearUpdate{EndDate: &end}, 7)
		s.Require().Error(err)
		s.True(apperr.IsValidation(err))
	})

	s.Run("valid partial update keeps omitted fields", func() {
		updated, err := s.schoolYears.Update(s.ctx, created.ID, SchoolYearUpdate{
			Title: strPtr("2024-2025"),
		}, 7)
		s.Require().NoError(err)
		s.Equal("2024-2025", updated.Title)
		s.Equal(created.StartDate, updated.StartDate)
		s.Equal(created.EndDate, updated.EndDate)
	})
}

func (s *ServiceSuite) TestPaginationEnvelope() {
	s.seedCompany(7, "alpha")
	s.seedLevel(3, 7, "CE1")

	for i := 0; i < 12; i++ {
		_, err := s.pricings.Create(s.ctx, LevelPricingCreate{
			LevelID: 3, Title: fmt.Sprintf("Plan %02d", i), Amount: 100,
		}, 7)
		s.Require().NoError(err)
	}

	env, err := s.pricings.List(s.ctx, LevelPricingListQuery{Page: 1, Limit: 5}, 7)
	s.Require().NoError(err)
	s.Equal(int64(12), env.Meta.Total)
	s.Equal(1, env.Meta.Page)
	s.Equal(5, env.Meta.Limit)
	s.Equal(3, env.Meta.LastPage)
	s.Len(env.Data, 5)

	s.Run("last page holds the remainder", func() {
		env, err := s.pricings.List(s.ctx, LevelPricingListQuery{Page: 3, Limit: 5}, 7)
		s.Require().NoError(err)
		s.Len(env.Data, 2)
	})

	s.Run("empty tenant still reports last page 1", func() {
		s.seedCompany(9, "empty")
		env, err := s.pricings.List(s.ctx, LevelPricingListQuery{}, 9)
		s.Require().NoError(err)
		s.Zero(env.Meta.Total)
		s.Equal(1, env.Meta.LastPage)
	})
}

func (s *ServiceSuite) TestPlanningSessionTypes() {
	s.seedCompany(7, "alpha")

	s.Run("defaults to active", func() {
		st, err := s.sessionTypes.Create(s.ctx, PlanningSessionTypeCreate{
			Title: "Course", Type: "lesson",
		}, 7)
		s.Require().NoError(err)
		s.Equal(model.PlanningSessionTypeStatusActive, st.Status)
	})

	s.Run("invalid status rejected", func() {
		_, err := s.sessionTypes.Create(s.ctx, PlanningSessionTypeCreate{
			Title: "Exam", Type: "exam", Status: strPtr("archived"),
		}, 7)
		s.Require().Error(err)
		s.True(apperr.IsValidation(err))
	})

	s.Run("ordered by title", func() {
		_, err := s.sessionTypes.Create(s.ctx, PlanningSessionTypeCreate{
			Title: "Assessment", Type: "exam",
		}, 7)
		s.Require().NoError(err)

		env, err := s.sessionTypes.List(s.ctx, PlanningSessionTypeListQuery{}, 7)
		s.Require().NoError(err)
		s.Require().Len(env.Data, 2)
		s.Equal("Assessment", env.Data[0].Title)
		s.Equal("Course", env.Data[1].Title)
	})

	s.Run("remove hard-deletes the row", func() {
		st, err := s.sessionTypes.Create(s.ctx, PlanningSessionTypeCreate{
			Title: "Workshop", Type: "lesson",
		}, 7)
		s.Require().NoError(err)

		s.Require().NoError(s.sessionTypes.Remove(s.ctx, st.ID, 7))

		var count int64
		s.Require().NoError(s.db.Model(&model.PlanningSessionType{}).Where("id = ?", st.ID).Count(&count).Error)
		s.Zero(count)
	})
}

func (s *ServiceSuite) TestCompanySelfScope() {
	created, err := s.companies.Create(s.ctx, CompanyCreate{
		Name: "Acme School", Email: "contact@acme.test",
	}, 1)
	s.Require().NoError(err)
	s.Equal(1, created.Status)

	s.Run("company reads itself by id", func() {
		got, err := s.companies.Get(s.ctx, created.ID, created.ID)
		s.Require().NoError(err)
		s.Equal("Acme School", got.Name)
	})

	s.Run("another tenant cannot read it", func() {
		_, err := s.companies.Get(s.ctx, created.ID, created.ID+100)
		s.Require().ErrorIs(err, apperr.ErrNotFound)
	})

	s.Run("update cannot disturb identity", func() {
		updated, err := s.companies.Update(s.ctx, created.ID, CompanyUpdate{
			Phone: strPtr("+33123456789"),
		}, created.ID)
		s.Require().NoError(err)
		s.Equal(created.ID, updated.ID)
		s.Equal("+33123456789", updated.Phone)
		s.Equal("Acme School", updated.Name)
	})

	s.Run("list is scoped to the caller's company", func() {
		_, err := s.companies.Create(s.ctx, CompanyCreate{
			Name: "Beta School", Email: "contact@beta.test",
		}, 1)
		s.Require().NoError(err)

		env, err := s.companies.List(s.ctx, CompanyListQuery{}, created.ID)
		s.Require().NoError(err)
		s.Require().Len(env.Data, 1)
		s.Equal(created.ID, env.Data[0].ID)
	})
}

func (s *ServiceSuite) TestLevelPricingStatusFilter() {
	s.seedCompany(7, "alpha")
	s.seedLevel(3, 7, "CE1")

	_, err := s.pricings.Create(s.ctx, LevelPricingCreate{
		LevelID: 3, Title: "Active plan", Amount: 100,
	}, 7)
	s.Require().NoError(err)
	_, err = s.pricings.Create(s.ctx, LevelPricingCreate{
		LevelID: 3, Title: "Draft plan", Amount: 100, Status: intPtr(model.LevelPricingStatusDraft),
	}, 7)
	s.Require().NoError(err)

	env, err := s.pricings.List(s.ctx, LevelPricingListQuery{Status: intPtr(model.LevelPricingStatusDraft)}, 7)
	s.Require().NoError(err)
	s.Require().Len(env.Data, 1)
	s.Equal("Draft plan", env.Data[0].Title)

	s.Run("search filters by substring", func() {
		env, err := s.pricings.List(s.ctx, LevelPricingListQuery{Search: "Draft"}, 7)
		s.Require().NoError(err)
		s.Require().Len(env.Data, 1)
		s.Equal("Draft plan", env.Data[0].Title)
	})
}

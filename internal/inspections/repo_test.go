package inspections

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kosherspect/kosherspect-backend/internal/factories"
	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
)

func setupInspectionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:inspections_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS inspections (
  id TEXT PRIMARY KEY,
  factory_name TEXT NOT NULL,
  inspector TEXT NOT NULL,
  factory_address TEXT NOT NULL,
  map_link TEXT,
  hebrew_date TEXT,
  gregorian_date TEXT NOT NULL,
  contact_name TEXT,
  contact_position TEXT,
  contact_email TEXT,
  contact_phone TEXT,
  current_products TEXT,
  employee_count INTEGER,
  shifts_per_day INTEGER,
  working_days INTEGER,
  kashrut TEXT,
  documents TEXT,
  document_files TEXT,
  category TEXT,
  ingredients TEXT,
  boiler_details TEXT,
  cleaning_protocols TEXT,
  bishul_yisrael INTEGER NOT NULL DEFAULT 0,
  afiyat_yisrael INTEGER NOT NULL DEFAULT 0,
  chalav_yisrael INTEGER NOT NULL DEFAULT 0,
  linat_laila INTEGER NOT NULL DEFAULT 0,
  kavush INTEGER NOT NULL DEFAULT 0,
  chadash INTEGER NOT NULL DEFAULT 0,
  hafrashat_challa INTEGER NOT NULL DEFAULT 0,
  kashrut_pesach INTEGER NOT NULL DEFAULT 0,
  photos TEXT,
  attachments TEXT,
  summary TEXT,
  recommendations TEXT,
  inspector_opinion TEXT,
  status TEXT NOT NULL DEFAULT 'draft',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedInspection(t *testing.T, db *gorm.DB, mutate func(*models.Inspection)) *models.Inspection {
	t.Helper()
	inspection := &models.Inspection{
		FactoryName:    "Galil Dairy",
		Inspector:      "R. Cohen",
		FactoryAddress: "Kibbutz Sde Eliyahu",
		GregorianDate:  "2026-03-15",
		Status:         enums.InspectionStatusDraft,
	}
	if mutate != nil {
		mutate(inspection)
	}
	require.NoError(t, db.Create(inspection).Error)
	return inspection
}

func TestInspectionRepositoryCreateAndFind(t *testing.T) {
	db := setupInspectionsTestDB(t)
	repo := NewRepository(db)

	inspection := &models.Inspection{
		FactoryName:    "Galil Dairy",
		Inspector:      "R. Cohen",
		FactoryAddress: "Kibbutz Sde Eliyahu",
		GregorianDate:  "2026-03-15",
	}
	require.NoError(t, repo.Create(context.Background(), inspection))
	assert.NotEqual(t, uuid.Nil, inspection.ID)
	assert.Equal(t, enums.InspectionStatusDraft, inspection.Status)

	loaded, err := repo.FindByID(context.Background(), inspection.ID)
	require.NoError(t, err)
	assert.Equal(t, "Galil Dairy", loaded.FactoryName)
}

func TestInspectionRepositoryListNewestFirst(t *testing.T) {
	db := setupInspectionsTestDB(t)
	repo := NewRepository(db)

	older := seedInspection(t, db, func(i *models.Inspection) {
		i.FactoryName = "Older Plant"
	})
	require.NoError(t, db.Model(older).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	seedInspection(t, db, func(i *models.Inspection) {
		i.FactoryName = "Newer Plant"
	})

	inspections, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, inspections, 2)
	assert.Equal(t, "Newer Plant", inspections[0].FactoryName)
}

func TestInspectionRepositorySearchMatchesAllTextFields(t *testing.T) {
	db := setupInspectionsTestDB(t)
	repo := NewRepository(db)

	seedInspection(t, db, nil)
	seedInspection(t, db, func(i *models.Inspection) {
		i.FactoryName = "Aviv Bakery"
		i.Inspector = "R. Levi"
		i.FactoryAddress = "Bnei Brak"
	})

	byInspector, err := repo.Search(context.Background(), "LEVI")
	require.NoError(t, err)
	require.Len(t, byInspector, 1)
	assert.Equal(t, "Aviv Bakery", byInspector[0].FactoryName)

	byAddress, err := repo.Search(context.Background(), "sde eliyahu")
	require.NoError(t, err)
	require.Len(t, byAddress, 1)
	assert.Equal(t, "Galil Dairy", byAddress[0].FactoryName)
}

func TestInspectionRepositoryFilter(t *testing.T) {
	db := setupInspectionsTestDB(t)
	repo := NewRepository(db)

	seedInspection(t, db, func(i *models.Inspection) {
		i.GregorianDate = "2026-01-10"
		i.Status = enums.InspectionStatusCompleted
	})
	seedInspection(t, db, func(i *models.Inspection) {
		i.GregorianDate = "2026-02-20"
		i.Status = enums.InspectionStatusPending
		i.Inspector = "R. Levi"
	})
	seedInspection(t, db, func(i *models.Inspection) {
		i.GregorianDate = "2026-03-05"
		i.Status = enums.InspectionStatusPending
	})

	pending := enums.InspectionStatusPending
	byStatus, err := repo.Filter(context.Background(), FilterParams{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	from := "2026-02-01"
	to := "2026-02-28"
	byRange, err := repo.Filter(context.Background(), FilterParams{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, "2026-02-20", byRange[0].GregorianDate)

	inspector := "levi"
	byInspector, err := repo.Filter(context.Background(), FilterParams{Inspector: &inspector})
	require.NoError(t, err)
	require.Len(t, byInspector, 1)
	assert.Equal(t, "2026-02-20", byInspector[0].GregorianDate)

	// Inclusive bound: a record exactly on DateFrom matches.
	edge := "2026-03-05"
	onEdge, err := repo.Filter(context.Background(), FilterParams{DateFrom: &edge})
	require.NoError(t, err)
	assert.Len(t, onEdge, 1)
}

func TestInspectionRepositoryUpdateColumnsPartial(t *testing.T) {
	db := setupInspectionsTestDB(t)
	repo := NewRepository(db)

	inspection := seedInspection(t, db, func(i *models.Inspection) {
		i.BishulYisrael = true
	})

	err := repo.UpdateColumns(context.Background(), inspection.ID, map[string]any{
		"summary": "all clear",
		"status":  enums.InspectionStatusCompleted,
	})
	require.NoError(t, err)

	loaded, err := repo.FindByID(context.Background(), inspection.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Summary)
	assert.Equal(t, "all clear", *loaded.Summary)
	assert.Equal(t, enums.InspectionStatusCompleted, loaded.Status)
	// Untouched columns keep their stored values.
	assert.True(t, loaded.BishulYisrael)
	assert.Equal(t, "Galil Dairy", loaded.FactoryName)
}

func TestInspectionRepositoryUpdateColumnsMissingRow(t *testing.T) {
	db := setupInspectionsTestDB(t)
	repo := NewRepository(db)

	err := repo.UpdateColumns(context.Background(), uuid.New(), map[string]any{"summary": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInspectionRepositoryDelete(t *testing.T) {
	db := setupInspectionsTestDB(t)
	repo := NewRepository(db)

	inspection := seedInspection(t, db, nil)
	require.NoError(t, repo.Delete(context.Background(), inspection.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), inspection.ID), gorm.ErrRecordNotFound)
}

func TestInspectionSurvivesFactoryDelete(t *testing.T) {
	db := setupInspectionsTestDB(t)
	require.NoError(t, db.Exec(`
CREATE TABLE IF NOT EXISTS factories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT NOT NULL,
  map_link TEXT,
  contact_name TEXT,
  contact_position TEXT,
  contact_email TEXT,
  contact_phone TEXT,
  current_products TEXT,
  employee_count INTEGER,
  shifts_per_day INTEGER,
  working_days INTEGER,
  kashrut TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	factoryRepo := factories.NewRepository(db)
	repo := NewRepository(db)

	kashrut := "OU"
	factory := &models.Factory{Name: "Galil Dairy", Address: "Kibbutz Sde Eliyahu", Kashrut: &kashrut}
	require.NoError(t, factoryRepo.Create(context.Background(), factory))

	// The inspection copies the factory's fields; no foreign key ties the rows.
	inspection := &models.Inspection{
		FactoryName:    factory.Name,
		FactoryAddress: factory.Address,
		Kashrut:        factory.Kashrut,
		Inspector:      "R. Cohen",
		GregorianDate:  "2026-03-15",
		Status:         enums.InspectionStatusDraft,
	}
	require.NoError(t, repo.Create(context.Background(), inspection))

	require.NoError(t, factoryRepo.Delete(context.Background(), factory.ID))
	_, err := factoryRepo.FindByID(context.Background(), factory.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	loaded, err := repo.FindByID(context.Background(), inspection.ID)
	require.NoError(t, err)
	assert.Equal(t, "Galil Dairy", loaded.FactoryName)
	assert.Equal(t, "Kibbutz Sde Eliyahu", loaded.FactoryAddress)
	require.NotNil(t, loaded.Kashrut)
	assert.Equal(t, "OU", *loaded.Kashrut)
}

func TestInspectionRepositoryCounts(t *testing.T) {
	db := setupInspectionsTestDB(t)
	repo := NewRepository(db)

	old := seedInspection(t, db, func(i *models.Inspection) {
		i.Status = enums.InspectionStatusCompleted
	})
	require.NoError(t, db.Model(old).
		Update("created_at", time.Now().AddDate(0, -2, 0)).Error)
	seedInspection(t, db, func(i *models.Inspection) {
		i.Status = enums.InspectionStatusPending
	})

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	recent, err := repo.CountCreatedSince(context.Background(), time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), recent)

	pending, err := repo.CountByStatus(context.Background(), enums.InspectionStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)
}

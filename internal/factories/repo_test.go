package factories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
)

func setupFactoriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:factories_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
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
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedFactory(t *testing.T, db *gorm.DB, name, address string) *models.Factory {
	t.Helper()
	factory := &models.Factory{Name: name, Address: address}
	require.NoError(t, db.Create(factory).Error)
	return factory
}

func TestFactoryRepositoryCreateAssignsID(t *testing.T) {
	db := setupFactoriesTestDB(t)
	repo := NewRepository(db)

	factory := &models.Factory{Name: "Galil Dairy", Address: "Kibbutz Sde Eliyahu"}
	require.NoError(t, repo.Create(context.Background(), factory))
	assert.NotEqual(t, uuid.Nil, factory.ID)

	loaded, err := repo.FindByID(context.Background(), factory.ID)
	require.NoError(t, err)
	assert.Equal(t, "Galil Dairy", loaded.Name)
}

func TestFactoryRepositoryFindByIDMissing(t *testing.T) {
	db := setupFactoriesTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFactoryRepositoryListOrdersByName(t *testing.T) {
	db := setupFactoriesTestDB(t)
	repo := NewRepository(db)

	seedFactory(t, db, "Zeta Oils", "Haifa Bay")
	seedFactory(t, db, "Aviv Bakery", "Bnei Brak")

	factories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, factories, 2)
	assert.Equal(t, "Aviv Bakery", factories[0].Name)
	assert.Equal(t, "Zeta Oils", factories[1].Name)
}

func TestFactoryRepositorySearchCaseInsensitive(t *testing.T) {
	db := setupFactoriesTestDB(t)
	repo := NewRepository(db)

	seedFactory(t, db, "Galil Dairy", "Kibbutz Sde Eliyahu")
	seedFactory(t, db, "Aviv Bakery", "Bnei Brak")

	byName, err := repo.Search(context.Background(), "GALIL")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Galil Dairy", byName[0].Name)

	byAddress, err := repo.Search(context.Background(), "bnei")
	require.NoError(t, err)
	require.Len(t, byAddress, 1)
	assert.Equal(t, "Aviv Bakery", byAddress[0].Name)
}

func TestFactoryRepositoryUpdatePersists(t *testing.T) {
	db := setupFactoriesTestDB(t)
	repo := NewRepository(db)

	factory := seedFactory(t, db, "Galil Dairy", "Kibbutz Sde Eliyahu")
	factory.Address = "New Industrial Zone"
	require.NoError(t, repo.Update(context.Background(), factory))

	loaded, err := repo.FindByID(context.Background(), factory.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Industrial Zone", loaded.Address)
}

func TestFactoryRepositoryDelete(t *testing.T) {
	db := setupFactoriesTestDB(t)
	repo := NewRepository(db)

	factory := seedFactory(t, db, "Galil Dairy", "Kibbutz Sde Eliyahu")
	require.NoError(t, repo.Delete(context.Background(), factory.ID))

	_, err := repo.FindByID(context.Background(), factory.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), factory.ID), gorm.ErrRecordNotFound)
}

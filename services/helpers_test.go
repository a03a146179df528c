package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/barrelborn/digital-menu/database"
	"github.com/barrelborn/digital-menu/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *database.SQLStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := database.NewSQLStore(db, time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func seedItem(t *testing.T, store database.Store, collection, name, description string, veg bool) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, store.InsertMenuItem(context.Background(), collection, &models.MenuItem{
		Name:        name,
		Description: description,
		Price:       models.NumberPrice(250),
		Category:    collection,
		IsVeg:       veg,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
}

func names(items []models.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

// clock returns a now func that advances by step on every call.
func clock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(step)
		return t
	}
}

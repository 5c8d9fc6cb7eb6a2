package services

import (
	"testing"

	"boulder-session-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB builds SQL without a server. Page views passed to Create are
// collected so tests can check what would have been stored; reads return no rows.
func dryRunDB(t *testing.T) (*gorm.DB, *[]models.PageView) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=boulder dbname=boulder sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	views := []models.PageView{}
	err = db.Callback().Create().After("gorm:create").Register("test:collect_page_views", func(tx *gorm.DB) {
		if pv, ok := tx.Statement.Dest.(*models.PageView); ok {
			views = append(views, *pv)
		}
	})
	require.NoError(t, err)
	return db, &views
}

// withoutGyms makes every lookup on the gyms table come back not found.
func withoutGyms(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Callback().Query().After("gorm:query").Register("test:no_gyms", func(tx *gorm.DB) {
		if tx.Statement.Table == "gyms" {
			_ = tx.AddError(gorm.ErrRecordNotFound)
		}
	})
	require.NoError(t, err)
}

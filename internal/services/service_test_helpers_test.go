package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/models"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Organization{},
		&models.User{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func newTestServices(t *testing.T) (*OrganizationService, *UserService) {
	t.Helper()

	db := openServiceTestDB(t)

	orgSvc, err := NewOrganizationService(db)
	require.NoError(t, err)

	userSvc, err := NewUserService(db)
	require.NoError(t, err)

	return orgSvc, userSvc
}

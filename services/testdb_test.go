package services

import (
	"testing"

	"github.com/georgewhite997/noot-slide-sub001/models"

	"github.com/glebarez/sqlite"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// a single connection so every session sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Upgrade{},
		&models.UpgradeLevel{},
		&models.UserUpgrade{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, wallet string, fishes, score int64) *models.User {
	t.Helper()
	user := &models.User{Wallet: wallet, Fishes: fishes, HighestScore: score}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", wallet, err)
	}
	return user
}

// createTestUpgrade builds an upgrade whose level N carries prices[N-1]; a nil
// price marks a level with nothing to buy beyond it.
func createTestUpgrade(t *testing.T, db *gorm.DB, name string, prices []*int64) *models.Upgrade {
	t.Helper()
	up := &models.Upgrade{Name: name, Slug: slug.Make(name)}
	for i, p := range prices {
		up.Levels = append(up.Levels, models.UpgradeLevel{
			Level:        i + 1,
			Value:        float64(i + 1),
			UpgradePrice: p,
		})
	}
	if err := db.Create(up).Error; err != nil {
		t.Fatalf("create upgrade %s: %v", name, err)
	}
	return up
}

func setOwnedLevel(t *testing.T, db *gorm.DB, userID, upgradeID uint, level int) {
	t.Helper()
	row := &models.UserUpgrade{UserID: userID, UpgradeID: upgradeID, Level: level}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("create user upgrade: %v", err)
	}
}

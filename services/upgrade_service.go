// services/upgrade_service.go
package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/georgewhite997/noot-slide-sub001/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpgradeService struct {
	DB *gorm.DB
}

func NewUpgradeService(db *gorm.DB) *UpgradeService {
	return &UpgradeService{DB: db}
}

// Catalog returns every upgrade with its levels in ascending order.
func (s *UpgradeService) Catalog() ([]models.Upgrade, error) {
	var upgrades []models.Upgrade
	err := s.DB.
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		Order("id ASC").
		Find(&upgrades).Error
	return upgrades, err
}

// PurchaseOutcome is returned on a successful purchase.
type PurchaseOutcome struct {
	User     *models.User         `json:"user"`
	Upgrades []models.UserUpgrade `json:"upgrades"`
}

// Purchase advances the user one level on the given upgrade, spending fishes.
//
// The baseline level-1 row is ensured BEFORE the atomic section — it is the
// only mutation that survives a failed purchase, and repeating it is safe.
// Inside the transaction both writes are conditional on the values read, so
// two concurrent purchases for the same user/upgrade pair can never both
// apply the same step: the loser sees zero rows affected and rolls back.
func (s *UpgradeService) Purchase(userID, upgradeID uint) (*PurchaseOutcome, error) {
	var upgrade models.Upgrade
	err := s.DB.
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level ASC") }).
		First(&upgrade, upgradeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Ensure the baseline row exists before the purchase check. Idempotent
	// even under concurrent first purchases: a losing insert is a no-op and
	// the re-read picks up whichever row won.
	owned := models.UserUpgrade{UserID: user.ID, UpgradeID: upgrade.ID, Level: 1}
	if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&owned).Error; err != nil {
		return nil, err
	}
	if err := s.DB.
		Where("user_id = ? AND upgrade_id = ?", user.ID, upgrade.ID).
		First(&owned).Error; err != nil {
		return nil, err
	}

	currentLevel := owned.Level
	if currentLevel+1 > len(upgrade.Levels) {
		return nil, ErrMaxLevelReached
	}

	// The price to advance FROM level N lives ON level N's spec.
	spec := findLevel(upgrade.Levels, currentLevel)
	if spec == nil {
		return nil, fmt.Errorf("upgrade %d has no spec for level %d", upgrade.ID, currentLevel)
	}
	if spec.UpgradePrice == nil {
		// Priceless non-final levels are malformed catalog data; never let
		// them through as a free purchase.
		return nil, ErrMaxLevelReached
	}
	price := *spec.UpgradePrice

	if user.Fishes < price {
		return nil, ErrInsufficientFunds
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserUpgrade{}).
			Where("id = ? AND level = ?", owned.ID, currentLevel).
			Update("level", currentLevel+1)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// another request advanced the level after our read
			return ErrPurchaseConflict
		}

		res = tx.Model(&models.User{}).
			Where("id = ? AND fishes >= ?", user.ID, price).
			Update("fishes", gorm.Expr("fishes - ?", price))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// balance moved underneath us; rollback undoes the level bump
			return ErrInsufficientFunds
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🛒 Purchase: user=%d upgrade=%s level %d→%d price=%d",
		user.ID, upgrade.Slug, currentLevel, currentLevel+1, price)

	var refreshed models.User
	if err := s.DB.Preload("Upgrades").First(&refreshed, userID).Error; err != nil {
		return nil, err
	}
	return &PurchaseOutcome{User: &refreshed, Upgrades: refreshed.Upgrades}, nil
}

func findLevel(levels []models.UpgradeLevel, level int) *models.UpgradeLevel {
	for i := range levels {
		if levels[i].Level == level {
			return &levels[i]
		}
	}
	return nil
}

// services/user_service.go
package services

import (
	"errors"
	"log"
	"strings"

	"github.com/georgewhite997/noot-slide-sub001/models"

	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// LoginOrRegister resolves a wallet to its user row, creating the row with
// zeroed balances on first sight. Idempotent.
func (s *UserService) LoginOrRegister(wallet string) (*models.User, error) {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return nil, ErrInvalidInput
	}

	var user models.User
	err := s.DB.Where("wallet = ?", wallet).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Wallet: wallet}
		if err := s.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		log.Printf("🐧 New player registered: %s (id=%d)", wallet, user.ID)
		return &user, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Get fetches the bare user record.
func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetWithUpgrades fetches the user record together with its owned upgrades.
func (s *UserService) GetWithUpgrades(userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Upgrades").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RunResult is the recorder's outcome.
type RunResult struct {
	UserID       uint  `json:"userId"`
	NewFishes    int64 `json:"newFishes"`
	NewHighScore int64 `json:"newHighScore"`
}

// RecordRunResult applies a client-reported run. The fish delta is trusted as
// reported but the balance floors at zero; the score only replaces the stored
// high score when strictly greater.
func (s *UserService) RecordRunResult(userID uint, fishDelta, score int64) (*RunResult, error) {
	var out RunResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		user.Fishes += fishDelta
		if user.Fishes < 0 {
			user.Fishes = 0
		}
		if score > user.HighestScore {
			user.HighestScore = score
		}

		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		out = RunResult{
			UserID:       user.ID,
			NewFishes:    user.Fishes,
			NewHighScore: user.HighestScore,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// services/leaderboard_service.go
package services

import (
	"github.com/georgewhite997/noot-slide-sub001/models"

	"gorm.io/gorm"
)

// LeaderboardSize is the number of entries returned by the global board.
const LeaderboardSize = 15

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// LeaderboardEntry annotates a user with its 1-based position.
type LeaderboardEntry struct {
	Wallet       string `json:"wallet"`
	HighestScore int64  `json:"highestScore"`
	Position     int    `json:"position"`
}

// Top returns the best LeaderboardSize users by descending high score. Ties
// resolve by id ascending so the ordering is stable.
func (s *LeaderboardService) Top() ([]LeaderboardEntry, error) {
	var users []models.User
	err := s.DB.
		Order("highest_score DESC, id ASC").
		Limit(LeaderboardSize).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = LeaderboardEntry{
			Wallet:       u.Wallet,
			HighestScore: u.HighestScore,
			Position:     i + 1,
		}
	}
	return entries, nil
}

// PositionOf is 1 + the number of users with a strictly greater high score.
func (s *LeaderboardService) PositionOf(user *models.User) (int, error) {
	var greater int64
	err := s.DB.Model(&models.User{}).
		Where("highest_score > ?", user.HighestScore).
		Count(&greater).Error
	if err != nil {
		return 0, err
	}
	return int(greater) + 1, nil
}

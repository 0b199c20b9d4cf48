package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the durable player record, keyed by wallet. Created on first login,
// never deleted in normal operation.
type User struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Wallet       string        `gorm:"uniqueIndex;not null" json:"wallet"`
	Fishes       int64         `gorm:"not null;default:0" json:"fishes"`
	HighestScore int64         `gorm:"not null;default:0" json:"highestScore"`
	Upgrades     []UserUpgrade `gorm:"foreignKey:UserID" json:"upgrades,omitempty"`

	Timestamps
}

// UserUpgrade is the level a user holds for one upgrade. Level 1 is the
// baseline (nothing bought yet); the row is created lazily on the user's
// first purchase attempt for that upgrade and only the purchase handler
// mutates it afterwards.
type UserUpgrade struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_upgrade" json:"userId"`
	UpgradeID uint `gorm:"not null;uniqueIndex:idx_user_upgrade" json:"upgradeId"`
	Level     int  `gorm:"not null;default:1" json:"level"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

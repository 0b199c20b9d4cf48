package models

// Upgrade is an immutable catalog entry, seeded once at startup.
type Upgrade struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `json:"description"`
	Levels      []UpgradeLevel `gorm:"foreignKey:UpgradeID" json:"levels"`

	Timestamps
}

// UpgradeLevel defines one tier of an upgrade. UpgradePrice is the cost of
// advancing FROM this level to the next one — the final level carries no
// price because there is nothing beyond it to buy.
type UpgradeLevel struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	UpgradeID    uint    `gorm:"not null;uniqueIndex:idx_upgrade_level" json:"upgradeId"`
	Level        int     `gorm:"not null;uniqueIndex:idx_upgrade_level" json:"level"`
	Value        float64 `gorm:"not null" json:"value"`
	UpgradePrice *int64  `json:"upgradePrice,omitempty"`
}

// services/catalog.go
package services

import (
	"log"

	"github.com/georgewhite997/noot-slide-sub001/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type seedLevel struct {
	Value float64
	Price *int64
}

type seedUpgrade struct {
	Name        string
	Description string
	Levels      []seedLevel
}

func price(v int64) *int64 { return &v }

// defaultCatalog is the shipped upgrade set. Five levels each, ascending
// prices, and the last level is priceless — nothing beyond it to buy.
var defaultCatalog = []seedUpgrade{
	{
		Name:        "Fish Magnet",
		Description: "Pulls nearby fishes into your slide path.",
		Levels: []seedLevel{
			{Value: 2, Price: price(50)},
			{Value: 3, Price: price(150)},
			{Value: 4.5, Price: price(400)},
			{Value: 6, Price: price(900)},
			{Value: 8, Price: nil},
		},
	},
	{
		Name:        "Speed Boost",
		Description: "Raises your top sliding speed.",
		Levels: []seedLevel{
			{Value: 1.1, Price: price(75)},
			{Value: 1.2, Price: price(200)},
			{Value: 1.35, Price: price(500)},
			{Value: 1.5, Price: price(1100)},
			{Value: 1.7, Price: nil},
		},
	},
	{
		Name:        "Fish Value",
		Description: "Each collected fish is worth more.",
		Levels: []seedLevel{
			{Value: 1, Price: price(100)},
			{Value: 1.5, Price: price(300)},
			{Value: 2, Price: price(700)},
			{Value: 3, Price: price(1500)},
			{Value: 5, Price: nil},
		},
	},
	{
		Name:        "Head Start",
		Description: "Begin each run further down the slope.",
		Levels: []seedLevel{
			{Value: 0, Price: price(60)},
			{Value: 100, Price: price(180)},
			{Value: 250, Price: price(450)},
			{Value: 500, Price: price(1000)},
			{Value: 900, Price: nil},
		},
	},
}

// SeedCatalog populates the upgrade catalog once. Safe to call on every boot:
// an already-populated table is left untouched.
func (s *UpgradeService) SeedCatalog() error {
	var count int64
	if err := s.DB.Model(&models.Upgrade{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, def := range defaultCatalog {
			upgrade := models.Upgrade{
				Name:        def.Name,
				Slug:        slug.Make(def.Name),
				Description: def.Description,
			}
			for i, lvl := range def.Levels {
				upgrade.Levels = append(upgrade.Levels, models.UpgradeLevel{
					Level:        i + 1,
					Value:        lvl.Value,
					UpgradePrice: lvl.Price,
				})
			}
			if err := tx.Create(&upgrade).Error; err != nil {
				return err
			}
		}
		log.Printf("✅ Seeded upgrade catalog (%d upgrades)", len(defaultCatalog))
		return nil
	})
}

package config

import (
	"log"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
)

// SeedEquipmentTypes seeds the equipment catalog. Catalog entries are
// reference data; seeding is idempotent and skips when rows already exist.
func SeedEquipmentTypes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.EquipmentType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	equipmentTypes := []models.EquipmentType{
		{
			Name:        "M4A1 Carbine",
			Category:    "weapons",
			Unit:        "unit",
			Description: "5.56mm carbine, standard issue",
		},
		{
			Name:        "5.56mm Ammunition",
			Category:    "ammunition",
			Unit:        "round",
			Description: "Ball ammunition for 5.56mm weapons",
		},
		{
			Name:        "HMMWV",
			Category:    "vehicles",
			Unit:        "unit",
			Description: "High mobility multipurpose wheeled vehicle",
		},
		{
			Name:        "Body Armor",
			Category:    "protective",
			Unit:        "set",
			Description: "Ballistic plate carrier with plates",
		},
		{
			Name:        "Field Radio",
			Category:    "communications",
			Unit:        "unit",
			Description: "Portable tactical radio set",
		},
		{
			Name:        "MRE Ration",
			Category:    "sustenance",
			Unit:        "case",
			Description: "Meals ready to eat, 12 per case",
		},
	}

	if err := db.Create(&equipmentTypes).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d equipment types", len(equipmentTypes))
	return nil
}

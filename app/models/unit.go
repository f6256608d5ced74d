package models

import (
	"time"
)

// UnitFamily groups units that can be converted between each other
type UnitFamily string

const (
	FamilyWeight UnitFamily = "weight"
	FamilyVolume UnitFamily = "volume"
	FamilyCount  UnitFamily = "count"
	FamilyLength UnitFamily = "length"
)

// MeasurementUnit represents a unit of measure (g, kg, ml, l, un...)
// ConversionFactor converts a quantity in this unit to the base unit of its
// family (grams for weight, milliliters for volume). Must be > 0.
type MeasurementUnit struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	Name             string     `gorm:"not null" json:"name"`
	Abbreviation     string     `gorm:"not null" json:"abbreviation"`
	Family           UnitFamily `gorm:"not null" json:"family"`
	ConversionFactor float64    `gorm:"not null;default:1" json:"conversion_factor"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName specifies the table name for MeasurementUnit
func (MeasurementUnit) TableName() string {
	return "measurement_units"
}

// ValidFamily reports whether f is one of the known unit families
func ValidFamily(f UnitFamily) bool {
	switch f {
	case FamilyWeight, FamilyVolume, FamilyCount, FamilyLength:
		return true
	}
	return false
}

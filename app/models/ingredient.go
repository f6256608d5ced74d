package models

import (
	"time"

	"gorm.io/gorm"
)

// Ingredient represents a raw material consumed by productions.
// CurrentStock is always kept in the base unit of the ingredient's unit family
// and is mutated only through stock movements.
type Ingredient struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Name         string         `gorm:"not null;index" json:"name"`
	UnitID       uint           `gorm:"not null" json:"unit_id"`
	CurrentStock float64        `gorm:"default:0" json:"current_stock"`
	MinStock     float64        `gorm:"default:0" json:"min_stock"`
	PricePerUnit float64        `gorm:"default:0" json:"price_per_unit"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Unit *MeasurementUnit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementEntrada MovementType = "entrada" // stock in
	MovementSaida   MovementType = "saida"   // stock out
)

// StockMovement tracks a single ingredient stock change. Rows are written only
// inside the same transaction that updates the owning ingredient's balance, so
// CurrentStock always equals sum(entrada) - sum(saida).
type StockMovement struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	IngredientID uint         `gorm:"not null;index" json:"ingredient_id"`
	Type         MovementType `gorm:"not null" json:"type"`
	Quantity     float64      `gorm:"not null" json:"quantity"` // always > 0, direction comes from Type
	Reason       string       `json:"reason"`                   // e.g. "Production - <batch>"
	Reference    string       `json:"reference"`                // batch number or external id
	CreatedAt    time.Time    `json:"created_at"`

	// Relations
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// Delta returns the signed effect of the movement on the ingredient balance
func (m *StockMovement) Delta() float64 {
	if m.Type == MovementEntrada {
		return m.Quantity
	}
	return -m.Quantity
}

// TableName specifies the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

// TableName specifies the table name for StockMovement
func (StockMovement) TableName() string {
	return "stock_movements"
}

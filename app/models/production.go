package models

import (
	"time"
)

// ProductionStatus is the lifecycle state of a production run
type ProductionStatus string

const (
	ProductionPlanned    ProductionStatus = "planned"
	ProductionInProgress ProductionStatus = "in_progress"
	ProductionCompleted  ProductionStatus = "completed"
	ProductionCancelled  ProductionStatus = "cancelled"
)

// ConsumesStock reports whether entering this status deducts ingredient stock
func (s ProductionStatus) ConsumesStock() bool {
	return s == ProductionInProgress || s == ProductionCompleted
}

// Terminal reports whether the status admits no further automatic transitions
func (s ProductionStatus) Terminal() bool {
	return s == ProductionCompleted || s == ProductionCancelled
}

// Production represents one production run of a recipe. Rows are hard-deleted;
// stock movements they triggered are kept (deletion does not reverse them).
type Production struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"not null;uniqueIndex:idx_user_batch" json:"user_id"`
	RecipeID         uint             `gorm:"not null;index" json:"recipe_id"`
	ProductID        uint             `gorm:"not null;index" json:"product_id"`
	BatchNumber      string           `gorm:"not null;uniqueIndex:idx_user_batch" json:"batch_number"`
	QuantityPlanned  float64          `gorm:"not null" json:"quantity_planned"`
	QuantityProduced *float64         `json:"quantity_produced"`
	LossPercentage   float64          `gorm:"default:0" json:"loss_percentage"`
	LossWeight       float64          `gorm:"default:0" json:"loss_weight"`
	Status           ProductionStatus `gorm:"not null;default:planned" json:"status"`
	ProductionDate   *time.Time       `json:"production_date"`
	ExpirationDate   *time.Time       `json:"expiration_date"`
	Notes            string           `json:"notes"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	// Relations
	Recipe  *Recipe  `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name for Production
func (Production) TableName() string {
	return "productions"
}

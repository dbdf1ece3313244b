package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockAddition is one production batch added to a product's stock.
// Rows are append-only: BatchCost captures quantity * cost_price as it was
// at addition time and is never recomputed.
type StockAddition struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date" validate:"date_required"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	BatchCost int64     `gorm:"not null" json:"batch_cost"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (StockAddition) TableName() string {
	return "stock_additions"
}

func (s *StockAddition) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

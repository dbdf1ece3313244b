package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale is one sale event. Rows are append-only: Revenue captures
// quantity * selling_price as it was at sale time.
type Sale struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Date       time.Time `gorm:"type:date;not null;index" json:"date" validate:"date_required"`
	Quantity   int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Revenue    int64     `gorm:"not null" json:"revenue"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty" validate:"-"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Sale) TableName() string {
	return "sales"
}

func (s *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

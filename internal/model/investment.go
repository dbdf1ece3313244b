package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Investment is capital put into the company. Append-only.
// Amount is in integer minor units (paise).
type Investment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date" validate:"date_required"`
	Amount    int64     `gorm:"not null" json:"amount" validate:"gte=0"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (Investment) TableName() string {
	return "investments"
}

func (i *Investment) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

package model

import "github.com/google/uuid"

// Product is one sellable item of a flavor. Prices are stored in integer
// minor units (paise) to keep financial aggregates exact.
//
// Stock must always equal initial stock + sum of stock addition quantities
// - sum of sale quantities. Every mutation of it happens inside a single
// transaction together with the row that explains it.
type Product struct {
	BaseModel
	FlavorID     *uuid.UUID `gorm:"type:uuid;index" json:"flavor_id" validate:"required"`
	Flavor       *Flavor    `gorm:"foreignKey:FlavorID" json:"flavor,omitempty" validate:"-"`
	CostPrice    int64      `gorm:"not null;default:0" json:"cost_price" validate:"gte=0"`
	SellingPrice int64      `gorm:"not null;default:0" json:"selling_price" validate:"gte=0"`
	Stock        int        `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
}

func (Product) TableName() string {
	return "products"
}

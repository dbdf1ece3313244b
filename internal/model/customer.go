package model

// Customer is a buyer, usually a shop. Only the name is required; customers
// can be created inline while recording a sale.
type Customer struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	ShopName string `gorm:"type:varchar(255)" json:"shop_name"`
	Area     string `gorm:"type:varchar(255)" json:"area"`
}

func (Customer) TableName() string {
	return "customers"
}

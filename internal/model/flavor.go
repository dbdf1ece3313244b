package model

// Flavor is a soda flavor. Flavor names are unique across the table;
// duplicates are rejected before insert with a case-sensitive match.
type Flavor struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
}

func (Flavor) TableName() string {
	return "flavors"
}

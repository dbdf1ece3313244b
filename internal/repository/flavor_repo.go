package repository

import (
	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FlavorRepository interface {
	Create(tx *gorm.DB, flavor *model.Flavor) error
	FindAll() ([]model.Flavor, error)
	FindByID(id uuid.UUID) (*model.Flavor, error)
	FindByName(name string) (*model.Flavor, error)
	Update(tx *gorm.DB, flavor *model.Flavor) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	HasProducts(id uuid.UUID) (bool, error)
}

type flavorRepo struct {
	db *gorm.DB
}

func NewFlavorRepo(db *gorm.DB) FlavorRepository {
	return &flavorRepo{db}
}

func (r *flavorRepo) Create(tx *gorm.DB, flavor *model.Flavor) error {
	return tx.Create(flavor).Error
}

func (r *flavorRepo) FindAll() ([]model.Flavor, error) {
	var flavors []model.Flavor
	err := r.db.Order("name ASC").Find(&flavors).Error
	return flavors, err
}

func (r *flavorRepo) FindByID(id uuid.UUID) (*model.Flavor, error) {
	var flavor model.Flavor
	if err := r.db.First(&flavor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &flavor, nil
}

// FindByName matches the stored value exactly (case-sensitive).
func (r *flavorRepo) FindByName(name string) (*model.Flavor, error) {
	var flavor model.Flavor
	if err := r.db.First(&flavor, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &flavor, nil
}

func (r *flavorRepo) Update(tx *gorm.DB, flavor *model.Flavor) error {
	return tx.Save(flavor).Error
}

func (r *flavorRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Flavor{}, "id = ?", id).Error
}

// HasProducts reports whether any product still references the flavor.
// Deletion is blocked while references exist.
func (r *flavorRepo) HasProducts(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("flavor_id = ?", id).Count(&count).Error
	return count > 0, err
}

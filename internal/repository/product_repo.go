package repository

import (
	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(tx *gorm.DB, product *model.Product) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	IncrementStock(tx *gorm.DB, id uuid.UUID, quantity int, updatedBy string) error
	DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int, updatedBy string) (int64, error)
	HasHistory(id uuid.UUID) (bool, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Flavor").
		Joins("LEFT JOIN flavors ON flavors.id = products.flavor_id").
		Order("flavors.name ASC, products.created_at ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Flavor").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}

// IncrementStock runs inside the stock-addition transaction so the counter
// and the batch row commit together.
func (r *productRepo) IncrementStock(tx *gorm.DB, id uuid.UUID, quantity int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", quantity),
			"updated_by": updatedBy,
		}).Error
}

// DecrementStock performs the check-and-decrement as one statement and
// returns the affected row count. Zero rows means the stock guard failed
// and the surrounding sale transaction must roll back.
func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int, updatedBy string) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_by": updatedBy,
		})
	return res.RowsAffected, res.Error
}

// HasHistory reports whether stock additions or sales reference the product.
func (r *productRepo) HasHistory(id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&model.StockAddition{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Model(&model.Sale{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

package repository

import (
	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(tx *gorm.DB, customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	Update(tx *gorm.DB, customer *model.Customer) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	HasSales(id uuid.UUID) (bool, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(tx *gorm.DB, customer *model.Customer) error {
	return tx.Create(customer).Error
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) Update(tx *gorm.DB, customer *model.Customer) error {
	return tx.Save(customer).Error
}

func (r *customerRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Customer{}, "id = ?", id).Error
}

// HasSales reports whether any sale references the customer.
func (r *customerRepo) HasSales(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Where("customer_id = ?", id).Count(&count).Error
	return count > 0, err
}

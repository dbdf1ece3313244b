package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/repository"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/ws"
	"github.com/Akhileshkolipakula/soda-business-manager/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService holds every mutating business operation. Each operation is
// one transaction: the ledger row, the stock counter and the activity log
// entry commit together or not at all.
type LedgerService interface {
	AddFlavor(name, actor string) (*model.Flavor, error)
	UpdateFlavor(id uuid.UUID, name, actor string) (*model.Flavor, error)
	DeleteFlavor(id uuid.UUID, actor string) error
	GetFlavors() ([]model.Flavor, error)

	AddProduct(req *model.Product, actor string) error
	UpdateProduct(id uuid.UUID, req *model.Product, actor string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor string) error
	GetProducts() ([]model.Product, error)

	AddStock(productID uuid.UUID, quantity int, date time.Time, actor string) (*model.StockAddition, error)
	RecordSale(req *SaleRequest, actor string) (*model.Sale, error)
	AddInvestment(amount int64, note string, date time.Time, actor string) (*model.Investment, error)

	AddCustomer(req *model.Customer, actor string) error
	UpdateCustomer(id uuid.UUID, req *model.Customer, actor string) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID, actor string) error
	GetCustomers() ([]model.Customer, error)
}

// SaleRequest carries one sale. A nil CustomerID means the customer in
// Customer is created inline; otherwise Customer (when present) updates the
// contact fields of the referenced customer.
type SaleRequest struct {
	ProductID  uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity   int             `json:"quantity" validate:"required,gt=0"`
	Date       time.Time       `json:"date"`
	CustomerID *uuid.UUID      `json:"customer_id"`
	Customer   *model.Customer `json:"customer"`
}

type ledgerService struct {
	flavorRepo   repository.FlavorRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewLedgerService(
	fRepo repository.FlavorRepository,
	pRepo repository.ProductRepository,
	cRepo repository.CustomerRepository,
	db *gorm.DB,
	hub *ws.Hub,
) LedgerService {
	return &ledgerService{
		flavorRepo:   fRepo,
		productRepo:  pRepo,
		customerRepo: cRepo,
		db:           db,
		wsHub:        hub,
	}
}

// validateRow runs struct validation on a ledger row before insert.
func validateRow(row interface{}) error {
	if errs := validator.ValidateStruct(row); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}
	return nil
}

// logActivity appends the audit row inside the caller's transaction.
func logActivity(tx *gorm.DB, actor, action string) error {
	if actor == "" {
		return nil
	}
	entry := model.ActivityLog{
		Username: actor,
		Action:   action,
		Date:     today(),
	}
	return tx.Create(&entry).Error
}

// today is the local calendar date. Ledger dates carry no time of day, so
// truncation must happen in local time, not at UTC day boundaries.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ---------------- Flavors ----------------

func (s *ledgerService) AddFlavor(name, actor string) (*model.Flavor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}

	// Case-sensitive match on the stored value
	existing, _ := s.flavorRepo.FindByName(name)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateName
	}

	flavor := &model.Flavor{Name: name}
	flavor.CreatedBy = actor
	flavor.UpdatedBy = actor

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.flavorRepo.Create(tx, flavor); err != nil {
			return err
		}
		return logActivity(tx, actor, fmt.Sprintf("Added flavor %s", flavor.Name))
	})
	if err != nil {
		return nil, mapDuplicate(err, ErrDuplicateName)
	}

	s.wsHub.Publish(map[string]interface{}{
		"type":    "ledger_update",
		"action":  "flavor_added",
		"flavor":  flavor,
		"message": fmt.Sprintf("%s added flavor '%s'", actor, flavor.Name),
	})
	return flavor, nil
}

func (s *ledgerService) UpdateFlavor(id uuid.UUID, name, actor string) (*model.Flavor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}

	flavor, err := s.flavorRepo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if other, _ := s.flavorRepo.FindByName(name); other != nil && other.ID != flavor.ID {
		return nil, ErrDuplicateName
	}

	flavor.Name = name
	flavor.UpdatedBy = actor

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.flavorRepo.Update(tx, flavor); err != nil {
			return err
		}
		return logActivity(tx, actor, fmt.Sprintf("Updated flavor %s", flavor.Name))
	})
	if err != nil {
		return nil, mapDuplicate(err, ErrDuplicateName)
	}
	return flavor, nil
}

func (s *ledgerService) DeleteFlavor(id uuid.UUID, actor string) error {
	flavor, err := s.flavorRepo.FindByID(id)
	if err != nil {
		return ErrNotFound
	}

	referenced, err := s.flavorRepo.HasProducts(id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrReferencedEntity
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.flavorRepo.Delete(tx, id); err != nil {
			return err
		}
		return logActivity(tx, actor, fmt.Sprintf("Deleted flavor %s", flavor.Name))
	})
}

func (s *ledgerService) GetFlavors() ([]model.Flavor, error) {
	return s.flavorRepo.FindAll()
}

// ---------------- Products ----------------

func (s *ledgerService) AddProduct(req *model.Product, actor string) error {
	if err := validateRow(req); err != nil {
		return err
	}

	flavor, err := s.flavorRepo.FindByID(*req.FlavorID)
	if err != nil {
		return ErrInvalidReference
	}

	req.CreatedBy = actor
	req.UpdatedBy = actor

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, req); err != nil {
			return err
		}
		return logActivity(tx, actor, fmt.Sprintf("Added product for flavor %s", flavor.Name))
	})
	if err != nil {
		return err
	}

	s.wsHub.Publish(map[string]interface{}{
		"type":    "ledger_update",
		"action":  "product_added",
		"product": req,
		"message": fmt.Sprintf("%s added product for flavor '%s'", actor, flavor.Name),
	})
	return nil
}

func (s *ledgerService) UpdateProduct(id uuid.UUID, req *model.Product, actor string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.CostPrice < 0 || req.SellingPrice < 0 || req.Stock < 0 {
		return nil, ErrValidation
	}

	flavorName := ""
	if req.FlavorID != nil {
		flavor, err := s.flavorRepo.FindByID(*req.FlavorID)
		if err != nil {
			return nil, ErrInvalidReference
		}
		flavorName = flavor.Name
		existing.FlavorID = req.FlavorID
		existing.Flavor = nil
	}

	existing.CostPrice = req.CostPrice
	existing.SellingPrice = req.SellingPrice
	existing.Stock = req.Stock
	existing.UpdatedBy = actor

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Update(tx, existing); err != nil {
			return err
		}
		return logActivity(tx, actor, fmt.Sprintf("Updated product %s", flavorName))
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(map[string]interface{}{
		"type":    "ledger_update",
		"action":  "product_updated",
		"product": existing,
		"message": fmt.Sprintf("%s updated product '%s'", actor, flavorName),
	})
	return existing, nil
}

func (s *ledgerService) DeleteProduct(id uuid.UUID, actor string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrNotFound
	}

	referenced, err := s.productRepo.HasHistory(id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrReferencedEntity
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Delete(tx, id); err != nil {
			return err
		}
		return logActivity(tx, actor, "Deleted product")
	})
}

func (s *ledgerService) GetProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

// ---------------- Stock additions ----------------

func (s *ledgerService) AddStock(productID uuid.UUID, quantity int, date time.Time, actor string) (*model.StockAddition, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if date.IsZero() {
		date = today()
	}

	var addition *model.StockAddition
	var productName string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Preload("Flavor").First(&product, "id = ?", productID).Error; err != nil {
			return ErrInvalidReference
		}
		if product.Flavor != nil {
			productName = product.Flavor.Name
		}

		// Batch cost is captured now and never recomputed, even if the
		// product's cost price changes later.
		addition = &model.StockAddition{
			ProductID: product.ID,
			Date:      date,
			Quantity:  quantity,
			BatchCost: int64(quantity) * product.CostPrice,
			CreatedBy: actor,
		}
		if err := validateRow(addition); err != nil {
			return err
		}
		if err := tx.Create(addition).Error; err != nil {
			return err
		}

		if err := s.productRepo.IncrementStock(tx, product.ID, quantity, actor); err != nil {
			return err
		}

		return logActivity(tx, actor, fmt.Sprintf("Added %d stock to %s", quantity, productName))
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(map[string]interface{}{
		"type":    "ledger_update",
		"action":  "stock_added",
		"stock":   addition,
		"message": fmt.Sprintf("%s added %d units of '%s'", actor, quantity, productName),
	})
	return addition, nil
}

// ---------------- Sales ----------------

func (s *ledgerService) RecordSale(req *SaleRequest, actor string) (*model.Sale, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if req.ProductID == uuid.Nil {
		return nil, ErrInvalidReference
	}
	if req.Date.IsZero() {
		req.Date = today()
	}

	var sale *model.Sale
	var productName, customerName string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Preload("Flavor").First(&product, "id = ?", req.ProductID).Error; err != nil {
			return ErrInvalidReference
		}
		if product.Flavor != nil {
			productName = product.Flavor.Name
		}

		// Validate before any write so a failed sale leaves nothing behind
		if req.Quantity > product.Stock {
			return ErrInsufficientStock
		}

		customerID, name, err := s.upsertCustomer(tx, req, actor)
		if err != nil {
			return err
		}
		customerName = name

		sale = &model.Sale{
			ProductID:  product.ID,
			Date:       req.Date,
			Quantity:   req.Quantity,
			Revenue:    int64(req.Quantity) * product.SellingPrice,
			CustomerID: customerID,
			CreatedBy:  actor,
		}
		if err := validateRow(sale); err != nil {
			return err
		}
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		// Check-and-decrement as one statement so two concurrent sales
		// cannot both pass the stock check.
		rows, err := s.productRepo.DecrementStock(tx, product.ID, req.Quantity, actor)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrInsufficientStock
		}

		return logActivity(tx, actor, fmt.Sprintf("Sold %d of %s to %s", req.Quantity, productName, customerName))
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(map[string]interface{}{
		"type":    "ledger_update",
		"action":  "sale_recorded",
		"sale":    sale,
		"message": fmt.Sprintf("%s sold %d units of '%s' to %s", actor, req.Quantity, productName, customerName),
	})
	return sale, nil
}

// upsertCustomer creates the inline customer or refreshes the contact
// fields of an existing one, inside the sale transaction.
func (s *ledgerService) upsertCustomer(tx *gorm.DB, req *SaleRequest, actor string) (uuid.UUID, string, error) {
	if req.CustomerID == nil {
		if req.Customer == nil || strings.TrimSpace(req.Customer.Name) == "" {
			return uuid.Nil, "", ErrValidation
		}
		customer := &model.Customer{
			Name:     strings.TrimSpace(req.Customer.Name),
			Phone:    strings.TrimSpace(req.Customer.Phone),
			ShopName: strings.TrimSpace(req.Customer.ShopName),
			Area:     strings.TrimSpace(req.Customer.Area),
		}
		customer.CreatedBy = actor
		customer.UpdatedBy = actor
		if err := tx.Create(customer).Error; err != nil {
			return uuid.Nil, "", err
		}
		return customer.ID, customer.Name, nil
	}

	var customer model.Customer
	if err := tx.First(&customer, "id = ?", *req.CustomerID).Error; err != nil {
		return uuid.Nil, "", ErrInvalidReference
	}

	if req.Customer != nil {
		if strings.TrimSpace(req.Customer.Name) != "" {
			customer.Name = strings.TrimSpace(req.Customer.Name)
		}
		customer.Phone = strings.TrimSpace(req.Customer.Phone)
		customer.ShopName = strings.TrimSpace(req.Customer.ShopName)
		customer.Area = strings.TrimSpace(req.Customer.Area)
		customer.UpdatedBy = actor
		if err := tx.Save(&customer).Error; err != nil {
			return uuid.Nil, "", err
		}
	}
	return customer.ID, customer.Name, nil
}

// ---------------- Investments ----------------

func (s *ledgerService) AddInvestment(amount int64, note string, date time.Time, actor string) (*model.Investment, error) {
	if amount < 0 {
		return nil, ErrValidation
	}
	if date.IsZero() {
		date = today()
	}

	investment := &model.Investment{
		Date:      date,
		Amount:    amount,
		Note:      strings.TrimSpace(note),
		CreatedBy: actor,
	}
	if err := validateRow(investment); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(investment).Error; err != nil {
			return err
		}
		return logActivity(tx, actor, fmt.Sprintf("Added investment of %d", amount))
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(map[string]interface{}{
		"type":       "ledger_update",
		"action":     "investment_added",
		"investment": investment,
		"message":    fmt.Sprintf("%s recorded an investment", actor),
	})
	return investment, nil
}

// ---------------- Customers ----------------

func (s *ledgerService) AddCustomer(req *model.Customer, actor string) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return ErrValidation
	}
	req.CreatedBy = actor
	req.UpdatedBy = actor

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.customerRepo.Create(tx, req); err != nil {
			return err
		}
		return logActivity(tx, actor, fmt.Sprintf("Added customer %s", req.Name))
	})
}

func (s *ledgerService) UpdateCustomer(id uuid.UUID, req *model.Customer, actor string) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, ErrValidation
	}

	customer.Name = req.Name
	customer.Phone = strings.TrimSpace(req.Phone)
	customer.ShopName = strings.TrimSpace(req.ShopName)
	customer.Area = strings.TrimSpace(req.Area)
	customer.UpdatedBy = actor

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.customerRepo.Update(tx, customer); err != nil {
			return err
		}
		return logActivity(tx, actor, fmt.Sprintf("Updated customer %s", customer.Name))
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *ledgerService) DeleteCustomer(id uuid.UUID, actor string) error {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return ErrNotFound
	}

	referenced, err := s.customerRepo.HasSales(id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrReferencedEntity
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.customerRepo.Delete(tx, id); err != nil {
			return err
		}
		return logActivity(tx, actor, fmt.Sprintf("Deleted customer %s", customer.Name))
	})
}

func (s *ledgerService) GetCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

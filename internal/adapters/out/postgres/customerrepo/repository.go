// Package customerrepo reads customers from the customers table.
package customerrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerDTO represents the database structure of a customer.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	FirstName string    `gorm:"type:varchar(128)"`
	LastName  string    `gorm:"type:varchar(128)"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Add stores a new customer. Customers are owned by another service; Add
// exists for seeding local and test databases.
func (r *GormCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := CustomerDTO{
		ID:        c.ID().Value().Bytes(),
		Username:  c.Username(),
		FirstName: c.FirstName(),
		LastName:  c.LastName(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a customer by id.
func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.CustomerID) (*customer.Customer, error) {
	if id.IsZero() {
		return nil, errs.NewValueIsRequiredError("customer id")
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Value().Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, err
	}

	return customer.NewCustomer(id, dto.Username, dto.FirstName, dto.LastName)
}

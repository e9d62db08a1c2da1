// Package restaurantrepo reads restaurants and their catalogs. Products belong
// to exactly one restaurant.
package restaurantrepo

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestaurantDTO represents the database structure of a restaurant.
type RestaurantDTO struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name     string       `gorm:"type:varchar(255);not null"`
	Active   bool         `gorm:"not null"`
	Products []ProductDTO `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// ProductDTO is one catalog entry of a restaurant.
type ProductDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Available    bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(r *restaurant.Restaurant, name string) RestaurantDTO {
	restaurantID := r.ID().Value().Bytes()

	products := make([]ProductDTO, 0, len(r.Products()))
	for _, p := range r.Products() {
		products = append(products, ProductDTO{
			ID:           p.ID().Value().Bytes(),
			RestaurantID: restaurantID,
			Name:         p.Name(),
			Price:        p.Price().Amount(),
			Available:    true,
		})
	}

	return RestaurantDTO{
		ID:       restaurantID,
		Name:     name,
		Active:   r.IsActive(),
		Products: products,
	}
}

func toDomain(id kernel.RestaurantID, dto RestaurantDTO, products []ProductDTO) (*restaurant.Restaurant, error) {
	catalog := make([]*restaurant.Product, 0, len(products))
	for _, p := range products {
		u, err := kernel.UUIDFromBytes(p.ID[:])
		if err != nil {
			return nil, err
		}
		productID, err := kernel.ProductIDFrom(u)
		if err != nil {
			return nil, err
		}
		product, err := restaurant.NewProduct(productID, p.Name, kernel.NewMoney(p.Price))
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, product)
	}

	return restaurant.NewRestaurant(id, catalog, dto.Active)
}

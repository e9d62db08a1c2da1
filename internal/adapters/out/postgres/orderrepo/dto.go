// Package orderrepo persists order aggregates with GORM. An order maps to the
// orders table with its delivery address embedded; items live in order_items
// keyed by (order_id, id).
package orderrepo

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by tracking id for customer lookups and by status and creation time
// for the stale order sweep.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid;not null"`
	TrackingID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status          string          `gorm:"type:varchar(16);not null;index:idx_orders_status_created_at,priority:1"`
	FailureMessages pq.StringArray  `gorm:"type:text[]"`
	Address         AddressDTO      `gorm:"embedded;embeddedPrefix:delivery_"`
	Items           []OrderItemDTO  `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `gorm:"not null;index:idx_orders_status_created_at,priority:2"`
	UpdatedAt       time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the delivery address embedded in the orders table.
type AddressDTO struct {
	Street     string `gorm:"type:varchar(255);not null"`
	PostalCode string `gorm:"type:varchar(16);not null"`
	City       string `gorm:"type:varchar(128);not null"`
}

// OrderItemDTO is one line of an order. The product name is kept so the
// confirmed catalog entry can be restored without joining the catalog.
type OrderItemDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ID          int64           `gorm:"primaryKey;autoIncrement:false"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255)"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	SubTotal    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Value().Bytes()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:     orderID,
			ID:          item.ID().Value(),
			ProductID:   item.Product().ID().Value().Bytes(),
			ProductName: item.Product().Name(),
			Quantity:    item.Quantity(),
			Price:       item.Price().Amount(),
			SubTotal:    item.SubTotal().Amount(),
		})
	}

	address := aggregate.DeliveryAddress()
	return OrderDTO{
		ID:              orderID,
		CustomerID:      aggregate.CustomerID().Value().Bytes(),
		RestaurantID:    aggregate.RestaurantID().Value().Bytes(),
		TrackingID:      aggregate.TrackingID().Value().Bytes(),
		Price:           aggregate.Price().Amount(),
		Status:          aggregate.Status().String(),
		FailureMessages: pq.StringArray(aggregate.FailureMessages()),
		Address: AddressDTO{
			Street:     address.Street(),
			PostalCode: address.PostalCode(),
			City:       address.City(),
		},
		Items: items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, errID := orderIDFrom(dto.ID)
	customerID, errCustomer := customerIDFrom(dto.CustomerID)
	restaurantID, errRestaurant := restaurantIDFrom(dto.RestaurantID)
	trackingID, errTracking := trackingIDFrom(dto.TrackingID)
	status, errStatus := order.ParseStatus(dto.Status)
	address, errAddress := order.NewStreetAddress(dto.Address.Street, dto.Address.PostalCode, dto.Address.City)
	if err := errors.Join(errID, errCustomer, errRestaurant, errTracking, errStatus, errAddress); err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := itemToDomain(id, itemDTO)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:              id,
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		DeliveryAddress: address,
		Price:           kernel.NewMoney(dto.Price),
		Items:           items,
		TrackingID:      trackingID,
		Status:          status,
		FailureMessages: dto.FailureMessages,
	})
}

func itemToDomain(orderID kernel.OrderID, dto OrderItemDTO) (*order.OrderItem, error) {
	productUUID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.ProductIDFrom(productUUID)
	if err != nil {
		return nil, err
	}
	itemID, err := order.NewItemID(dto.ID)
	if err != nil {
		return nil, err
	}

	price := kernel.NewMoney(dto.Price)
	product, err := restaurant.NewProduct(productID, dto.ProductName, price)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrderItem(itemID, orderID, product, dto.Quantity, price, kernel.NewMoney(dto.SubTotal))
}

func orderIDFrom(raw uuid.UUID) (kernel.OrderID, error) {
	u, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.OrderID{}, err
	}
	return kernel.OrderIDFrom(u)
}

func customerIDFrom(raw uuid.UUID) (kernel.CustomerID, error) {
	u, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.CustomerID{}, err
	}
	return kernel.CustomerIDFrom(u)
}

func restaurantIDFrom(raw uuid.UUID) (kernel.RestaurantID, error) {
	u, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.RestaurantID{}, err
	}
	return kernel.RestaurantIDFrom(u)
}

func trackingIDFrom(raw uuid.UUID) (kernel.TrackingID, error) {
	u, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.TrackingID{}, err
	}
	return kernel.TrackingIDFrom(u)
}

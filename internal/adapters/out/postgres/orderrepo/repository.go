package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save inserts the order with its items on first save. Later saves only
// write the status and failure messages, the only parts of an order that
// change after placement.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	if aggregate.ID().IsZero() {
		return nil, errs.NewValueIsRequiredError("order id")
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":           dto.Status,
			"failure_messages": dto.FailureMessages,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return nil, err
		}
	}

	return aggregate, nil
}

// Get retrieves an order by id and locks its row for the rest of the transaction.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if id.IsZero() {
		return nil, errs.NewValueIsRequiredError("order id")
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", orderedItems).
		First(&dto, "id = ?", id.Value().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByTrackingID retrieves an order by its tracking id without locking.
func (r *GormOrderRepository) FindByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error) {
	if trackingID.IsZero() {
		return nil, errs.NewValueIsRequiredError("tracking id")
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&dto, "tracking_id = ?", trackingID.Value().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking id", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindPendingCreatedBefore returns ids of pending orders older than before, oldest first.
func (r *GormOrderRepository) FindPendingCreatedBefore(ctx context.Context, before time.Time, limit int) ([]kernel.OrderID, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ? AND created_at < ?", order.Pending.String(), before).
		Order("created_at").
		Limit(limit).
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.OrderID, 0, len(raw))
	for _, id := range raw {
		orderID, err := orderIDFrom(id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, orderID)
	}

	return ids, nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

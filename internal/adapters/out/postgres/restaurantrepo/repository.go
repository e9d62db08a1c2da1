package restaurantrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRestaurantRepository implements ports.RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db *gorm.DB
}

func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// Add stores a restaurant with its whole catalog. Used for seeding.
func (r *GormRestaurantRepository) Add(ctx context.Context, aggregate *restaurant.Restaurant, name string) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if name == "" {
		return errs.NewValueIsRequiredError("restaurant name")
	}

	dto := fromDomain(aggregate, name)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// FindWithProducts loads the restaurant and the available products among
// productIDs. Unknown or unavailable products are left out of the catalog.
func (r *GormRestaurantRepository) FindWithProducts(
	ctx context.Context,
	id kernel.RestaurantID,
	productIDs []kernel.ProductID,
) (*restaurant.Restaurant, error) {
	if id.IsZero() {
		return nil, errs.NewValueIsRequiredError("restaurant id")
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Value().Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, err
	}

	var products []ProductDTO
	if len(productIDs) > 0 {
		raw := make([]uuid.UUID, 0, len(productIDs))
		for _, productID := range productIDs {
			raw = append(raw, productID.Value().Bytes())
		}

		err := r.db.WithContext(ctx).
			Where("restaurant_id = ? AND id IN ? AND available", dto.ID, raw).
			Order("name").
			Find(&products).Error
		if err != nil {
			return nil, err
		}
	}

	return toDomain(id, dto, products)
}

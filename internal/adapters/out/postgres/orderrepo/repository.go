package orderrepo

import (
	"context"
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
// Uses a column map so a cleared revision actually nulls out the stored
// document instead of being skipped as a zero value.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"shopper_id":         dto.ShopperID,
		"status":             dto.Status,
		"items":              dto.Items,
		"original_total":     dto.OriginalTotal,
		"total":              dto.Total,
		"delivery_fee":       dto.DeliveryFee,
		"shopper_commission": dto.ShopperCommission,
		"revision":           dto.Revision,
		"timeline":           dto.Timeline,
		"version":            dto.Version,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves every order still waiting for a shopper,
// oldest first.
func (r *GormOrderRepository) GetAllPending(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", order.PendingShopper).
		Order("created_at asc").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetActiveByShopper retrieves all non-terminal orders assigned to a shopper,
// oldest first.
func (r *GormOrderRepository) GetActiveByShopper(ctx context.Context, shopperID kernel.UUID) ([]*order.Order, error) {
	if err := shopperID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("shopper_id = ?", shopperID.Bytes()).
		Where("status NOT IN ?", []order.Status{order.Delivered, order.Cancelled}).
		Order("created_at asc").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetDeliveredByShopper retrieves the shopper's delivered orders, newest
// first, capped at limit.
func (r *GormOrderRepository) GetDeliveredByShopper(ctx context.Context, shopperID kernel.UUID, limit int) ([]*order.Order, error) {
	if err := shopperID.Validate(); err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, 1000)
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("shopper_id = ?", shopperID.Bytes()).
		Where("status = ?", order.Delivered).
		Order("updated_at desc").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

package shopperrepo

import (
	"context"
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/shopper"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShopperRepository implements ShopperRepository using GORM.
type GormShopperRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShopperRepository creates a new GORM shopper repository.
func NewGormShopperRepository(db *gorm.DB, tracker aggregateTracker) *GormShopperRepository {
	return &GormShopperRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shopper to the database.
func (r *GormShopperRepository) Add(ctx context.Context, aggregate *shopper.Shopper) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shopper to the database.
// Uses a column map so availability flags dropping back to false and a
// position that was never set are written out instead of skipped.
func (r *GormShopperRepository) Update(ctx context.Context, aggregate *shopper.Shopper) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShopperDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":           dto.Name,
		"phone":          dto.Phone,
		"is_online":      dto.IsOnline,
		"forced_offline": dto.ForcedOffline,
		"active_orders":  dto.ActiveOrders,
		"last_lat":       dto.LastLat,
		"last_lon":       dto.LastLon,
		"last_heading":   dto.LastHeading,
		"last_speed":     dto.LastSpeed,
		"last_taken_at":  dto.LastTakenAt,
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

// Get retrieves a shopper by ID.
func (r *GormShopperRepository) Get(ctx context.Context, id kernel.UUID) (*shopper.Shopper, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShopperDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shopper", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOnline retrieves every shopper currently marked online.
func (r *GormShopperRepository) GetAllOnline(ctx context.Context) ([]*shopper.Shopper, error) {
	var dtos []ShopperDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "is_online = ?", true).Error; err != nil {
		return nil, err
	}

	shoppers := make([]*shopper.Shopper, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shoppers = append(shoppers, s)
	}

	return shoppers, nil
}

// Package shopperrepo provides data transfer objects and mapping functions for
// shopper persistence. This package implements the repository pattern for the
// shopper domain aggregate, handling the conversion between domain entities and
// database representations.
package shopperrepo

import (
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/shopper"

	"github.com/google/uuid"
)

// ShopperDTO represents the database structure for persisting shopper
// aggregates. The last reported GPS sample is flattened into nullable columns;
// all of them are set together or not at all.
type ShopperDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	Phone         string
	IsOnline      bool `gorm:"index"`
	ForcedOffline bool
	ActiveOrders  int
	LastLat       *float64
	LastLon       *float64
	LastHeading   *float64
	LastSpeed     *float64
	LastTakenAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for shopper entities.
func (ShopperDTO) TableName() string {
	return "shoppers"
}

// fromDomain converts a shopper domain aggregate to its database representation.
func fromDomain(aggregate *shopper.Shopper) ShopperDTO {
	dto := ShopperDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		Phone:         aggregate.Phone(),
		IsOnline:      aggregate.IsOnline(),
		ForcedOffline: aggregate.IsForcedOffline(),
		ActiveOrders:  aggregate.ActiveOrders(),
	}

	if pos := aggregate.LastPosition(); pos != nil {
		lat := pos.Latitude()
		lon := pos.Longitude()
		heading := pos.Heading()
		speed := pos.Speed()
		takenAt := pos.TakenAt()
		dto.LastLat = &lat
		dto.LastLon = &lon
		dto.LastHeading = &heading
		dto.LastSpeed = &speed
		dto.LastTakenAt = &takenAt
	}

	return dto
}

// toDomain converts a database DTO back into a shopper domain aggregate.
func toDomain(dto ShopperDTO) (*shopper.Shopper, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var lastPosition *kernel.GeoPosition
	if dto.LastLat != nil && dto.LastLon != nil && dto.LastTakenAt != nil {
		heading, speed := -1.0, -1.0
		if dto.LastHeading != nil {
			heading = *dto.LastHeading
		}
		if dto.LastSpeed != nil {
			speed = *dto.LastSpeed
		}
		pos, posErr := kernel.NewGeoPosition(*dto.LastLat, *dto.LastLon, heading, speed, *dto.LastTakenAt)
		if posErr != nil {
			return nil, posErr
		}
		lastPosition = &pos
	}

	return shopper.RestoreShopper(
		id,
		dto.Name,
		dto.Phone,
		dto.IsOnline,
		dto.ForcedOffline,
		lastPosition,
		dto.ActiveOrders,
	)
}

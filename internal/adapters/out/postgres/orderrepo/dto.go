// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Scalar attributes map to plain columns for efficient filtering by status and
// shopper; the item list, timeline, and in-flight revision are stored as JSONB
// documents in the same wire shapes the channel and queries serve, so one
// mapping covers persistence and transport.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber       string     `gorm:"uniqueIndex"`
	ShopperID         *uuid.UUID `gorm:"type:uuid;index"`
	Status            string     `gorm:"index"`
	Items             []byte     `gorm:"type:jsonb"`
	OriginalTotal     int64
	Total             int64
	DeliveryFee       int64
	ShopperCommission int64
	Address           AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Revision          []byte     `gorm:"type:jsonb"`
	Timeline          []byte     `gorm:"type:jsonb"`
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery destination within the order table.
type AddressDTO struct {
	Street       string
	City         string
	ZipCode      string
	Instructions string
	ContactPhone string
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	snapshot := wire.SnapshotOrder(aggregate)

	items, err := json.Marshal(snapshot.Items)
	if err != nil {
		return OrderDTO{}, err
	}
	timeline, err := json.Marshal(snapshot.Timeline)
	if err != nil {
		return OrderDTO{}, err
	}

	var revision []byte
	if snapshot.Revision != nil {
		revision, err = json.Marshal(snapshot.Revision)
		if err != nil {
			return OrderDTO{}, err
		}
	}

	var shopperID *uuid.UUID
	if id := aggregate.Shopper(); id != nil {
		raw := id.Bytes()
		shopperID = &raw
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		OrderNumber:       aggregate.OrderNumber(),
		ShopperID:         shopperID,
		Status:            snapshot.Status,
		Items:             items,
		OriginalTotal:     snapshot.OriginalTotal,
		Total:             snapshot.Total,
		DeliveryFee:       snapshot.DeliveryFee,
		ShopperCommission: snapshot.ShopperCommission,
		Address: AddressDTO{
			Street:       snapshot.Address.Street,
			City:         snapshot.Address.City,
			ZipCode:      snapshot.Address.ZipCode,
			Instructions: snapshot.Address.Instructions,
			ContactPhone: snapshot.Address.ContactPhone,
		},
		Revision: revision,
		Timeline: timeline,
		Version:  snapshot.Version,
	}, nil
}

// toDomain converts a database DTO back into an order domain aggregate.
// Reconstructs the complete aggregate including timeline and any in-flight
// revision using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var shopperID *kernel.UUID
	if dto.ShopperID != nil {
		sID, shopperErr := kernel.UUIDFromBytes((*dto.ShopperID)[:])
		if shopperErr != nil {
			return nil, shopperErr
		}
		shopperID = &sID
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}
	timeline, err := timelineToDomain(dto.Timeline)
	if err != nil {
		return nil, err
	}
	revision, err := revisionToDomain(dto.Revision)
	if err != nil {
		return nil, err
	}

	originalTotal, err := kernel.NewMoney(dto.OriginalTotal)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	commission, err := kernel.NewMoney(dto.ShopperCommission)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(
		dto.Address.Street,
		dto.Address.City,
		dto.Address.ZipCode,
		dto.Address.Instructions,
		dto.Address.ContactPhone,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		items,
		order.RestorePricing(originalTotal, total, deliveryFee, commission),
		address,
		shopperID,
		order.Status(dto.Status),
		timeline,
		revision,
		dto.Version,
	)
}

func itemsToDomain(raw []byte) ([]order.LineItem, error) {
	var snapshots []wire.ItemSnapshot
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(snapshots))
	for _, s := range snapshots {
		itemID, err := kernel.UUIDFromString(s.ID)
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(s.Price)
		if err != nil {
			return nil, err
		}
		item, err := order.NewLineItem(itemID, s.Name, s.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func timelineToDomain(raw []byte) ([]order.TimelineEntry, error) {
	var snapshots []wire.TimelineEntrySnapshot
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		return nil, err
	}

	entries := make([]order.TimelineEntry, 0, len(snapshots))
	for _, s := range snapshots {
		entry, err := order.NewTimelineEntry(order.Status(s.Status), s.Timestamp, s.Note, s.Actor)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func revisionToDomain(raw []byte) (*order.Revision, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var snapshot wire.RevisionSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}

	items := make([]order.RevisedItem, 0, len(snapshot.Items))
	for _, s := range snapshot.Items {
		itemID, err := kernel.UUIDFromString(s.ItemID)
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(s.Price)
		if err != nil {
			return nil, err
		}
		item, err := order.NewRevisedItem(itemID, s.Name, s.Quantity, price, s.IsAvailable, s.Note)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	revision, err := order.NewRevision(items, snapshot.Note, snapshot.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &revision, nil
}

package wire

import (
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
)

// SnapshotOrder converts an order aggregate into its wire form. The snapshot
// is self-contained: channel payloads, query responses, and the
// reconciliation poll all serve the same shape.
func SnapshotOrder(o *order.Order) OrderSnapshot {
	items := make([]ItemSnapshot, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemSnapshot{
			ID:       item.ID().String(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price().Paise(),
		})
	}

	timeline := make([]TimelineEntrySnapshot, 0, len(o.Timeline()))
	for _, entry := range o.Timeline() {
		timeline = append(timeline, TimelineEntrySnapshot{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Note:      entry.Note(),
			Actor:     entry.Actor(),
		})
	}

	snapshot := OrderSnapshot{
		ID:                o.ID().String(),
		OrderNumber:       o.OrderNumber(),
		Status:            o.Status().String(),
		DisplayStatus:     o.Status().DisplayName(),
		Items:             items,
		OriginalTotal:     o.Pricing().OriginalTotal().Paise(),
		Total:             o.Pricing().Total().Paise(),
		DeliveryFee:       o.Pricing().DeliveryFee().Paise(),
		ShopperCommission: o.Pricing().ShopperCommission().Paise(),
		Address: AddressSnapshot{
			Street:       o.Address().Street(),
			City:         o.Address().City(),
			ZipCode:      o.Address().ZipCode(),
			Instructions: o.Address().Instructions(),
			ContactPhone: o.Address().ContactPhone(),
		},
		Timeline: timeline,
		Version:  o.Version(),
	}

	if shopperID := o.Shopper(); shopperID != nil {
		snapshot.ShopperID = shopperID.String()
	}
	if rev := o.Revision(); rev != nil {
		snapshot.Revision = snapshotRevision(rev)
	}

	return snapshot
}

func snapshotRevision(rev *order.Revision) *RevisionSnapshot {
	items := make([]RevisedItemSnapshot, 0, len(rev.Items()))
	for _, item := range rev.Items() {
		items = append(items, RevisedItemSnapshot{
			ItemID:      item.ItemID().String(),
			Name:        item.Name(),
			Quantity:    item.Quantity(),
			Price:       item.Price().Paise(),
			IsAvailable: item.IsAvailable(),
			Note:        item.Note(),
		})
	}

	return &RevisionSnapshot{
		Items:         items,
		Note:          rev.Note(),
		ProposedTotal: rev.ProposedTotal().Paise(),
		CreatedAt:     rev.CreatedAt(),
	}
}

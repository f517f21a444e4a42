package wire

import "time"

// ItemSnapshot is the wire form of one ordered line item.
type ItemSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// RevisedItemSnapshot is the wire form of one revised line item verdict.
type RevisedItemSnapshot struct {
	ItemID      string `json:"itemId"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
	IsAvailable bool   `json:"isAvailable"`
	Note        string `json:"note,omitempty"`
}

// RevisionSnapshot is the wire form of an in-flight revision.
type RevisionSnapshot struct {
	Items         []RevisedItemSnapshot `json:"items"`
	Note          string                `json:"note,omitempty"`
	ProposedTotal int64                 `json:"proposedTotal"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// TimelineEntrySnapshot is the wire form of one status history entry.
type TimelineEntrySnapshot struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
	Actor     string    `json:"actor"`
}

// AddressSnapshot is the wire form of the delivery destination.
type AddressSnapshot struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	ZipCode      string `json:"zipCode,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

// OrderSnapshot is the full wire form of an order as queries, channel
// payloads, and the reconciliation poll transport it. All money amounts are
// integer paise. Version is the aggregate version the snapshot was taken
// at; the client store uses it to merge without overwriting newer local
// state.
type OrderSnapshot struct {
	ID                string                  `json:"id"`
	OrderNumber       string                  `json:"orderNumber"`
	Status            string                  `json:"status"`
	DisplayStatus     string                  `json:"displayStatus"`
	Items             []ItemSnapshot          `json:"items"`
	OriginalTotal     int64                   `json:"originalTotal"`
	Total             int64                   `json:"total"`
	DeliveryFee       int64                   `json:"deliveryFee"`
	ShopperCommission int64                   `json:"shopperCommission"`
	Address           AddressSnapshot         `json:"address"`
	ShopperID         string                  `json:"shopperId,omitempty"`
	Revision          *RevisionSnapshot       `json:"revision,omitempty"`
	Timeline          []TimelineEntrySnapshot `json:"timeline"`
	Version           int64                   `json:"version"`
}

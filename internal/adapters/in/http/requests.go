package http

import "time"

// NewOrderRequest is the body for registering an order. All money amounts
// are integer paise.
type NewOrderRequest struct {
	ID                string            `json:"id"`
	OrderNumber       string            `json:"orderNumber"`
	Items             []NewItemRequest  `json:"items"`
	OriginalTotal     int64             `json:"originalTotal"`
	DeliveryFee       int64             `json:"deliveryFee"`
	ShopperCommission int64             `json:"shopperCommission"`
	Address           NewAddressRequest `json:"address"`
}

// NewItemRequest is one line item in an order registration.
type NewItemRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// NewAddressRequest is the delivery destination in an order registration.
type NewAddressRequest struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	ZipCode      string `json:"zipCode"`
	Instructions string `json:"instructions"`
	ContactPhone string `json:"contactPhone"`
}

// NewShopperRequest is the body for registering a shopper.
type NewShopperRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// AcceptOrderRequest names the shopper accepting an offered order.
type AcceptOrderRequest struct {
	ShopperID string `json:"shopperId"`
}

// UpdateStatusRequest moves an order to a new lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
	Note   string `json:"note"`
}

// RevisionRequest proposes item substitutions found during shopping.
type RevisionRequest struct {
	Items []RevisedItemRequest `json:"items"`
	Note  string               `json:"note"`
}

// RevisedItemRequest is one item verdict inside a revision.
type RevisedItemRequest struct {
	ItemID      string `json:"itemId"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
	IsAvailable bool   `json:"isAvailable"`
	Note        string `json:"note"`
}

// ResolveRevisionRequest records the customer's verdict on a revision.
type ResolveRevisionRequest struct {
	Approved   bool  `json:"approved"`
	FinalTotal int64 `json:"finalTotal"`
}

// CancelOrderRequest cancels an order with a mandatory reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
	Actor  string `json:"actor"`
}

// AvailabilityRequest is a shopper's explicit availability toggle.
type AvailabilityRequest struct {
	IsOnline bool `json:"isOnline"`
}

// ForceAvailabilityRequest is an admin availability override.
type ForceAvailabilityRequest struct {
	IsOnline bool   `json:"isOnline"`
	Reason   string `json:"reason"`
}

// LocationRequest is a GPS sample submitted over HTTP when the channel is
// down.
type LocationRequest struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Heading   float64   `json:"heading"`
	Speed     float64   `json:"speed"`
	TakenAt   time.Time `json:"takenAt"`
}

// CreatedResponse confirms a registration with the assigned identifier.
type CreatedResponse struct {
	ID string `json:"id"`
}

package order

import (
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

// Pricing is the order's monetary breakdown. OriginalTotal is what the
// customer ordered; Total is what applies now (it diverges from
// OriginalTotal once a revision is approved). DeliveryFee and
// ShopperCommission are fixed at dispatch time.
type Pricing struct {
	originalTotal     kernel.Money
	total             kernel.Money
	deliveryFee       kernel.Money
	shopperCommission kernel.Money
	guard             guard.ConstructorGuard
}

// NewPricing creates the monetary breakdown for a freshly dispatched order,
// with Total starting equal to OriginalTotal.
func NewPricing(originalTotal, deliveryFee, shopperCommission kernel.Money) Pricing {
	return Pricing{
		originalTotal:     originalTotal,
		total:             originalTotal,
		deliveryFee:       deliveryFee,
		shopperCommission: shopperCommission,
		guard:             guard.NewConstructorGuard(),
	}
}

// RestorePricing reconstructs a Pricing from persistence, preserving a
// revised total that differs from the original.
func RestorePricing(originalTotal, total, deliveryFee, shopperCommission kernel.Money) Pricing {
	p := NewPricing(originalTotal, deliveryFee, shopperCommission)
	p.total = total
	return p
}

// Validate ensures the pricing was created via a constructor.
func (p Pricing) Validate() error {
	return p.guard.Validate(nil)
}

// OriginalTotal returns the total as originally ordered.
func (p Pricing) OriginalTotal() kernel.Money { return p.originalTotal }

// Total returns the currently applicable total.
func (p Pricing) Total() kernel.Money { return p.total }

// DeliveryFee returns the delivery fee.
func (p Pricing) DeliveryFee() kernel.Money { return p.deliveryFee }

// ShopperCommission returns the shopper's earnings for this order.
func (p Pricing) ShopperCommission() kernel.Money { return p.shopperCommission }

// IsRevised reports whether the applicable total diverged from the original.
func (p Pricing) IsRevised() bool {
	return !p.total.IsEqual(p.originalTotal)
}

// withTotal returns a copy with the applicable total replaced.
func (p Pricing) withTotal(total kernel.Money) Pricing {
	p.total = total
	return p
}

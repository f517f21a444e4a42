package order

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address was not created via
// NewAddress.
var ErrAddressIsNotConstructed = errors.New(
	"Address must be created via NewAddress constructor")

// Address describes the delivery destination as the shopper sees it.
type Address struct {
	street       string
	city         string
	zipCode      string
	instructions string
	contactPhone string
	guard        guard.ConstructorGuard
}

// NewAddress creates a validated address. Street and city are required;
// zip code, delivery instructions, and contact phone are optional.
func NewAddress(street, city, zipCode, instructions, contactPhone string) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}

	return Address{
		street:       street,
		city:         city,
		zipCode:      zipCode,
		instructions: instructions,
		contactPhone: contactPhone,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was created via NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a Address) Street() string { return a.street }

// City returns the city.
func (a Address) City() string { return a.city }

// ZipCode returns the postal code, possibly empty.
func (a Address) ZipCode() string { return a.zipCode }

// Instructions returns delivery instructions, possibly empty.
func (a Address) Instructions() string { return a.instructions }

// ContactPhone returns the customer contact phone, possibly empty.
func (a Address) ContactPhone() string { return a.contactPhone }

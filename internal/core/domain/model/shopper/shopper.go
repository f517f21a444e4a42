package shopper

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

// maxActiveOrders is the maximum number of orders a shopper may work
// concurrently. An offer is never dispatched to a shopper at capacity.
const maxActiveOrders = 3

// Domain errors for shopper operations.
var (
	// ErrNameIsRequired is returned when attempting to create a shopper without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrShopperIsNotConstructed is returned when using an improperly initialized Shopper.
	ErrShopperIsNotConstructed = errors.New("Shopper must be created via NewShopper constructor")
	// ErrShopperAtCapacity is returned when assigning an order to a shopper already at capacity.
	ErrShopperAtCapacity = errors.New("shopper is already working the maximum number of orders")
	// ErrNoActiveOrders is returned when releasing an order from a shopper with none active.
	ErrNoActiveOrders = errors.New("shopper has no active orders to release")
)

// Shopper represents a personal shopper in the dispatch system.
// It is an aggregate root that manages shopper identity, availability, and
// position telemetry.
//
// Key responsibilities:
//   - Managing shopper identity (ID, name, phone)
//   - Tracking availability: a shopper receives offers only while online
//   - Distinguishing a voluntary offline state from an admin-forced one;
//     a force-disconnected shopper must not be brought back online by
//     automatic reconnect logic, only by an explicit resume
//   - Keeping the last known GPS position with last-write-wins semantics:
//     a stale sample never overwrites a newer one
//   - Enforcing the concurrent order capacity before dispatch
//
// Business rules:
//   - Shopper must have a valid UUID and a non-empty name
//   - GoOnline is refused while the admin force-offline flag is set
//   - Position updates carry their own capture time and are dropped when
//     older than the stored position
type Shopper struct {
	// id uniquely identifies the shopper
	id kernel.UUID
	// name is the human-readable name of the shopper
	name string
	// phone is the shopper's contact number, optional
	phone string
	// isOnline reports whether the shopper currently receives offers
	isOnline bool
	// forcedOffline is set by an admin disconnect and cleared only by Resume
	forcedOffline bool
	// lastPosition is the most recent accepted GPS sample, nil before the first
	lastPosition *kernel.GeoPosition
	// activeOrders counts orders currently assigned to the shopper
	activeOrders int
	// guard ensures the shopper was properly constructed
	guard guard.ConstructorGuard
}

// NewShopper creates a new Shopper with the specified parameters.
// This is the only way to create a valid fresh Shopper instance.
//
// A new shopper starts offline with no position and no active orders.
//
// Parameters:
//   - id: Unique identifier for the shopper (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - phone: Contact number, may be empty
//
// Returns:
//   - *Shopper: A fully initialized shopper ready for operations
//   - error: Validation error if any parameter is invalid
func NewShopper(id kernel.UUID, name, phone string) (*Shopper, error) {
	shopper := &Shopper{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shopper.setID(id),
		shopper.setName(name),
	); err != nil {
		return nil, err
	}

	shopper.phone = phone
	return shopper, nil
}

// RestoreShopper reconstructs a Shopper aggregate from persistent storage,
// including availability flags, the last accepted position, and the active
// order count. The restored shopper behaves identically to one built up
// through normal domain operations.
func RestoreShopper(
	id kernel.UUID,
	name string,
	phone string,
	isOnline bool,
	forcedOffline bool,
	lastPosition *kernel.GeoPosition,
	activeOrders int,
) (*Shopper, error) {
	shopper := &Shopper{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shopper.setID(id),
		shopper.setName(name),
		shopper.setActiveOrders(activeOrders),
	); err != nil {
		return nil, err
	}
	if lastPosition != nil {
		if err := lastPosition.Validate(); err != nil {
			return nil, err
		}
	}

	shopper.phone = phone
	shopper.isOnline = isOnline
	shopper.forcedOffline = forcedOffline
	shopper.lastPosition = lastPosition
	return shopper, nil
}

// IsEqual compares two shoppers for equality based on their unique identifiers.
func (s *Shopper) IsEqual(other *Shopper) bool {
	if other == nil {
		return false
	}
	return s.id.IsEqual(other.id)
}

// Validate checks if the Shopper was properly constructed.
// The zero value of Shopper is invalid and will fail this validation.
func (s *Shopper) Validate() error {
	if s == nil {
		return ErrShopperIsNotConstructed
	}
	return s.guard.Validate(ErrShopperIsNotConstructed)
}

// ID returns the unique identifier of the shopper.
func (s *Shopper) ID() kernel.UUID {
	return s.id
}

// Name returns the human-readable name of the shopper.
func (s *Shopper) Name() string {
	return s.name
}

// Phone returns the shopper's contact number, possibly empty.
func (s *Shopper) Phone() string {
	return s.phone
}

// IsOnline reports whether the shopper currently receives offers.
func (s *Shopper) IsOnline() bool {
	return s.isOnline
}

// IsForcedOffline reports whether an admin force-disconnected the shopper.
// While set, automatic reconnects must not bring the shopper back online.
func (s *Shopper) IsForcedOffline() bool {
	return s.forcedOffline
}

// ActiveOrders returns the number of orders currently assigned to the shopper.
func (s *Shopper) ActiveOrders() int {
	return s.activeOrders
}

// LastPosition returns the most recent accepted GPS sample, or nil if the
// shopper has never reported one.
func (s *Shopper) LastPosition() *kernel.GeoPosition {
	return s.lastPosition
}

// GoOnline marks the shopper as available for offers. Refused while the
// admin force-offline flag is set: an automatic reconnect must not undo an
// admin disconnect.
func (s *Shopper) GoOnline() error {
	if s.forcedOffline {
		return errs.NewValueIsInvalidErrorWithCause("availability",
			errors.New("shopper was force-disconnected by an admin and must resume explicitly"))
	}
	s.isOnline = true
	return nil
}

// GoOffline marks the shopper as voluntarily unavailable.
func (s *Shopper) GoOffline() {
	s.isOnline = false
}

// ForceOffline applies an admin disconnect: the shopper goes offline and
// stays blocked from automatic reconnection until Resume is called.
func (s *Shopper) ForceOffline() {
	s.isOnline = false
	s.forcedOffline = true
}

// Resume clears the admin force-offline flag and brings the shopper back
// online. Only an explicit user action should call this.
func (s *Shopper) Resume() {
	s.forcedOffline = false
	s.isOnline = true
}

// UpdatePosition stores a GPS sample with last-write-wins semantics: a
// sample older than the stored position is silently dropped. Returns true
// when the sample was accepted.
func (s *Shopper) UpdatePosition(position kernel.GeoPosition) (bool, error) {
	if err := position.Validate(); err != nil {
		return false, err
	}
	if s.lastPosition != nil && !position.IsNewerThan(*s.lastPosition) {
		return false, nil
	}
	s.lastPosition = &position
	return true, nil
}

// CanTakeOrder reports whether the shopper may be offered another order:
// online, not force-disconnected, and below the concurrent capacity.
func (s *Shopper) CanTakeOrder() bool {
	return s.isOnline && !s.forcedOffline && s.activeOrders < maxActiveOrders
}

// TakeOrder assigns one more order to the shopper.
func (s *Shopper) TakeOrder() error {
	if s.activeOrders >= maxActiveOrders {
		return ErrShopperAtCapacity
	}
	s.activeOrders++
	return nil
}

// ReleaseOrder frees one order slot after delivery or cancellation.
func (s *Shopper) ReleaseOrder() error {
	if s.activeOrders == 0 {
		return ErrNoActiveOrders
	}
	s.activeOrders--
	return nil
}

func (s *Shopper) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shopper) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Shopper) setActiveOrders(activeOrders int) error {
	if activeOrders < 0 || activeOrders > maxActiveOrders {
		return errs.NewValueIsOutOfRangeError("activeOrders", activeOrders, 0, maxActiveOrders)
	}
	s.activeOrders = activeOrders
	return nil
}

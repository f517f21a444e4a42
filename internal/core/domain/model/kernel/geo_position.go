package kernel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

// Latitude/longitude bounds in decimal degrees.
const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

const earthRadiusMeters = 6371000.0

// ErrGeoPositionIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPosition. Positions must be created via NewGeoPosition.
var ErrGeoPositionIsNotConstructed = errs.NewValueIsRequiredError(
	"geo position must be created via NewGeoPosition constructor")

// GeoPosition is an immutable value object representing one GPS telemetry
// sample from a shopper's device: coordinates, heading, speed, and the moment
// the sample was taken. Samples are last-write-wins telemetry; the newest
// sample for a shopper supersedes all older ones.
//
// Example:
//
//	pos, err := kernel.NewGeoPosition(28.6139, 77.2090, 45, 3.2, time.Now())
//	if err != nil {
//	    // handle validation error
//	}
type GeoPosition struct {
	latitude  float64
	longitude float64
	heading   float64
	speed     float64
	takenAt   time.Time
	guard     guard.ConstructorGuard
}

// NewGeoPosition creates a validated GeoPosition.
//
// Parameters:
//   - latitude: decimal degrees in [-90, 90]
//   - longitude: decimal degrees in [-180, 180]
//   - heading: compass degrees; negative means unknown (devices without a compass)
//   - speed: meters per second; negative means unknown
//   - takenAt: sample timestamp, must not be zero
//
// Returns a validation error if any parameter is out of bounds.
func NewGeoPosition(latitude, longitude, heading, speed float64, takenAt time.Time) (GeoPosition, error) {
	pos := GeoPosition{
		heading: heading,
		speed:   speed,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pos.setLatitude(latitude),
		pos.setLongitude(longitude),
		pos.setTakenAt(takenAt),
	); err != nil {
		return GeoPosition{}, err
	}

	return pos, nil
}

// Validate checks that the position was created via NewGeoPosition.
func (p GeoPosition) Validate() error {
	return p.guard.Validate(ErrGeoPositionIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPosition) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPosition) Longitude() float64 {
	return p.longitude
}

// Heading returns the compass heading in degrees, or a negative value when unknown.
func (p GeoPosition) Heading() float64 {
	return p.heading
}

// Speed returns the ground speed in meters per second, or a negative value when unknown.
func (p GeoPosition) Speed() float64 {
	return p.speed
}

// TakenAt returns the moment the sample was recorded.
func (p GeoPosition) TakenAt() time.Time {
	return p.takenAt
}

// IsNewerThan reports whether this sample was taken after other.
// Used to enforce last-write-wins telemetry ordering.
func (p GeoPosition) IsNewerThan(other GeoPosition) bool {
	return p.takenAt.After(other.takenAt)
}

// DistanceTo computes the great-circle distance in meters between two samples.
// Both positions must be properly constructed.
func (p GeoPosition) DistanceTo(other GeoPosition) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLon := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)), nil
}

// String returns a human-readable representation, e.g. "GeoPosition(28.6139,77.2090)".
func (p GeoPosition) String() string {
	return fmt.Sprintf("GeoPosition(%.4f,%.4f)", p.latitude, p.longitude)
}

func (p *GeoPosition) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPosition) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	p.longitude = longitude
	return nil
}

func (p *GeoPosition) setTakenAt(takenAt time.Time) error {
	if takenAt.IsZero() {
		return errs.NewValueIsRequiredError("takenAt")
	}
	p.takenAt = takenAt.UTC()
	return nil
}

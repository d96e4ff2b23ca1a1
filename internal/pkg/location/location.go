// Package location defines the device location collaborator boundary. The
// server never acquires a GPS fix itself; coordinates arrive from the device
// with each request, so no Provider implementation lives in this repository.
// Device-side clients (kiosk terminals, CLI clients) implement Provider
// against their platform API and report failures with the sentinel errors
// below so every caller classifies them the same way.
package location

import (
	"context"
	"errors"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/pkg/geo"
)

// Acquisition failure kinds. All four mean the same thing to the attendance
// workflow: the pending action aborts with nothing written.
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("device position unavailable")
	ErrTimeout             = errors.New("timed out waiting for a location fix")
	ErrUnsupported         = errors.New("device does not support location services")
)

// DefaultTimeout bounds how long a Provider may wait for a fresh fix.
const DefaultTimeout = 10 * time.Second

// Provider acquires the device's current position. Implementations must
// request a high-accuracy fix and must not serve a cached one.
type Provider interface {
	Current(ctx context.Context) (geo.Coordinates, error)
}

// IsAcquisitionError reports whether err is one of the four acquisition
// failure kinds, collapsed into the single "cannot verify location" class.
func IsAcquisitionError(err error) bool {
	return errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrPositionUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrUnsupported)
}

package site

import (
	"errors"
	"fmt"
)

// Resolution errors are spoken to the user by the dialogue layer, so their
// messages are full German sentences matching the voice model.
var (
	// ErrRequesterUnknown is returned when the requesting site has never
	// published a topology snapshot.
	ErrRequesterUnknown = errors.New("Dieser Raum hier wurde noch nicht konfiguriert.")

	// ErrNoSites is returned when "alle" is requested but no site is known.
	ErrNoSites = errors.New("Es wurden noch keine Räume konfiguriert.")

	// ErrSingleRoomOnly is returned when an action that accepts exactly one
	// room resolves to several.
	ErrSingleRoomOnly = errors.New("Diese Funktion gibt es nicht.")

	// ErrOneDevicePerRoom is returned when "alle" is given as device slot
	// for an action that accepts one device.
	ErrOneDevicePerRoom = errors.New("Es geht nur ein Gerät pro Raum.")
)

// RoomNotFoundError is returned when a named room is not configured.
type RoomNotFoundError struct {
	Room string
}

func (e *RoomNotFoundError) Error() string {
	return fmt.Sprintf("Der Raum %s wurde noch nicht konfiguriert.", e.Room)
}

// AreaNotFoundError is returned when an area slot matches no site.
type AreaNotFoundError struct {
	Area string
}

func (e *AreaNotFoundError) Error() string {
	return fmt.Sprintf("Im Bereich %s gibt es keine Räume.", e.Area)
}

// DeviceNotFoundError is returned when a device slot (or the site's default
// device name) matches no configured device of the site. The readiness
// orchestrator catches it with errors.As to attempt on-the-fly attachment
// before giving up.
type DeviceNotFoundError struct {
	Room string
	Name string
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("Dieses Gerät gibt es im Raum %s nicht.", e.Room)
}

package readiness

import "errors"

// User-facing errors of the bring-up orchestrator. The texts are spoken
// verbatim by the voice assistant.
var (
	// ErrServerUnreachable is returned when the media server does not
	// answer; no bring-up can succeed without it.
	ErrServerUnreachable = errors.New("Es konnte keine Verbindung zum Musik Server hergestellt werden.")

	// ErrDeviceNotConnected is returned for a device that is not
	// registered on the media server and declares no soundcard, so no
	// service start could ever register it.
	ErrDeviceNotConnected = errors.New("Das Gerät ist nicht mit dem Medien Server verbunden.")

	// ErrBringUpInFlight is returned when a site requests playback while
	// its previous bring-up cycle is still waiting for satellite answers.
	ErrBringUpInFlight = errors.New("Einen Moment bitte, die Geräte werden hier noch vorbereitet.")
)

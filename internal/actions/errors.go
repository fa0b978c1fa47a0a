package actions

import "errors"

// User-facing errors. Each text is a sentence spoken by the voice assistant.
var (
	// ErrServerDown is returned by playback operations when the media
	// server does not answer.
	ErrServerDown = errors.New("Der Server ist nicht erreichbar.")

	// ErrServerUnavailable is the track-info variant of the same
	// condition.
	ErrServerUnavailable = errors.New("Der Server kann nicht erreicht werden.")

	// ErrDeviceInactive is returned when no active, ready device exists
	// for the target site.
	ErrDeviceInactive = errors.New("Das gewünschte Gerät ist nicht aktiv.")

	// ErrUnknownGenre is returned when the requested genre is not part of
	// the music library.
	ErrUnknownGenre = errors.New("Zu dieser Stilrichtung gibt es noch keine Musik.")

	// ErrBothRoomsNeeded is returned when a sync request lacks the master
	// or the slave room slot.
	ErrBothRoomsNeeded = errors.New("Ich habe nicht beide Orte verstanden.")

	// Podcast lookup errors.
	ErrNoSuchPodcast   = errors.New("Es gibt keinen solchen Podcast.")
	ErrOnlyRadios      = errors.New("Es gibt nur Radios mit so einem Namen.")
	ErrNoEpisodes      = errors.New("Es gibt keine Episoden von diesem Podcast.")
	ErrNoAudioEpisodes = errors.New("Es gibt keine Audio Episoden zu diesem Podcast.")

	// Radio lookup errors.
	ErrNoSuchStation = errors.New("Es gibt keinen solchen Radiosender.")
	ErrOnlyPodcasts  = errors.New("Es gibt nur Podcasts mit so einem Namen.")
	ErrNoStations    = errors.New("Es wurde kein Sender genannt und es gibt keine Sender in den Favoriten.")

	// Entity injection errors.
	ErrCatalogUnavailable = errors.New("Die Namen konnten nicht gesammelt werden. Es besteht keine Verbindung zum Medien Server.")
	ErrNothingToInject    = errors.New("Es gibt nichts hinzuzufügen.")
)

package actions

import (
	"github.com/tonraum/tonraum-core/internal/hermes"
)

// Voice-model entity names fed by injection.
const (
	entityTitles    = "tonraum_titles"
	entityArtists   = "tonraum_artists"
	entityAlbums    = "tonraum_albums"
	entityGenres    = "tonraum_genres"
	entityPlaylists = "tonraum_playlists"
	entityRadios    = "tonraum_radios"
	entityPodcasts  = "tonraum_podcasts"
	entityDevices   = "audio_devices"
	entityRooms     = "tonraum_rooms"
	entityAreas     = "tonraum_areas"
)

// injectionGroups expands the spoken type word into concrete catalogue
// kinds. An empty type injects everything.
var injectionGroups = map[string][]string{
	"music":    {"album", "artist", "title", "playlist", "genre"},
	"favorite": {"radio", "podcast"},
	"": {"device", "room", "area", "album", "artist",
		"title", "playlist", "genre", "radio", "podcast"},
}

// InjectionOperations collects the requested catalogue and topology names
// as injection operations for the voice model. A type word restricts the
// collection; unknown type words are taken as a single kind.
func (h *Handlers) InjectionOperations(requestedType string) ([]hermes.InjectionOperation, error) {
	if !h.library.Connected() {
		return nil, ErrCatalogUnavailable
	}
	kinds, ok := injectionGroups[requestedType]
	if !ok {
		kinds = []string{requestedType}
	}

	var operations []hermes.InjectionOperation
	add := func(entity string, values []string, err error) {
		if err != nil {
			h.logger.Warn("catalogue collection failed", "entity", entity, "err", err)
			return
		}
		if len(values) > 0 {
			operations = append(operations, hermes.InjectionOperation{
				Kind:     hermes.InjectionAddFromVanilla,
				Entities: map[string][]string{entity: values},
			})
		}
	}

	for _, kind := range kinds {
		switch kind {
		case "title":
			values, err := h.library.MusicTitles()
			add(entityTitles, values, err)
		case "artist":
			values, err := h.library.MusicArtists()
			add(entityArtists, values, err)
		case "album":
			values, err := h.library.MusicAlbums()
			add(entityAlbums, values, err)
		case "genre":
			values, err := h.library.MusicGenres()
			add(entityGenres, values, err)
		case "playlist":
			values, err := h.library.MusicPlaylists()
			add(entityPlaylists, values, err)
		case "radio":
			values, err := h.library.RadioStations()
			add(entityRadios, values, err)
		case "podcast":
			values, err := h.library.PodcastTitles()
			add(entityPodcasts, values, err)
		case "device":
			add(entityDevices, h.registry.DeviceNames(), nil)
		case "room":
			add(entityRooms, h.registry.RoomNames(), nil)
		case "area":
			add(entityAreas, h.registry.Areas(), nil)
		}
	}

	if len(operations) == 0 {
		return nil, ErrNothingToInject
	}
	return operations, nil
}

package actions

import "github.com/tonraum/tonraum-core/internal/hermes"

// playRadio plays the named radio station, or a random favorite station
// when no name was given.
//
// The search result mixes stations and podcasts; stations are the leaf
// items (no sub-items).
func (h *Handlers) playRadio(slots hermes.Slots, requestSiteID string) error {
	if !h.library.Connected() {
		return ErrServerDown
	}
	player, err := h.playerForSites(slots, requestSiteID)
	if err != nil {
		return err
	}

	station := slots.Str(slotRadio)
	if station == "" {
		stations, err := h.library.RadioStations()
		if err != nil || len(stations) == 0 {
			return ErrNoStations
		}
		station = stations[h.pick(len(stations))]
	}

	results := player.Search(station, searchWindow)
	if len(results) == 0 {
		return ErrNoSuchStation
	}
	for _, item := range results {
		if !item.HasItems {
			player.PlayFavorite(item.ID)
			h.logger.Info("radio playback started", "site", requestSiteID, "station", item.Name)
			return nil
		}
	}
	return ErrOnlyPodcasts
}

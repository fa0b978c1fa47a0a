package actions

import "github.com/tonraum/tonraum-core/internal/hermes"

// searchWindow bounds search and browse result sets.
const searchWindow = 50

// playPodcast searches the named podcast and plays its first episode.
//
// The search result mixes podcasts and radio stations; only container items
// (those with sub-items) are podcasts. Episode selection takes the first
// audio item of the podcast's item list.
func (h *Handlers) playPodcast(slots hermes.Slots, requestSiteID string) error {
	if !h.library.Connected() {
		return ErrServerDown
	}
	player, err := h.playerForSites(slots, requestSiteID)
	if err != nil {
		return err
	}

	results := player.Search(slots.Str(slotPodcast), searchWindow)
	if len(results) == 0 {
		return ErrNoSuchPodcast
	}
	podcastID := ""
	for _, item := range results {
		if item.HasItems {
			podcastID = item.ID
			break
		}
	}
	if podcastID == "" {
		return ErrOnlyRadios
	}

	episodes := player.BrowseItem(podcastID, searchWindow)
	if len(episodes) == 0 {
		return ErrNoEpisodes
	}
	// TODO: let the user pick an episode instead of always playing the
	// newest one.
	for _, episode := range episodes {
		if episode.IsAudio {
			player.PlayFavorite(episode.ID)
			h.logger.Info("podcast playback started", "site", requestSiteID, "episode", episode.Name)
			return nil
		}
	}
	return ErrNoAudioEpisodes
}

package actions

import (
	"slices"

	"github.com/tonraum/tonraum-core/internal/hermes"
	"github.com/tonraum/tonraum-core/internal/lms"
)

// playMusic starts library playback once the target devices are ready.
//
// Selection precedence follows the voice model: a named album or title
// plays those tracks in order; an artist alone shuffles the artist's
// tracks; a genre alone starts genre-restricted random play; nothing at
// all starts unrestricted random play.
func (h *Handlers) playMusic(slots hermes.Slots, requestSiteID string) error {
	if !h.library.Connected() {
		return ErrServerDown
	}
	player, err := h.playerForSites(slots, requestSiteID)
	if err != nil {
		return err
	}

	artist := slots.Str(slotArtist)
	album := slots.Str(slotAlbum)
	title := slots.Str(slotTitle)
	genre := slots.Str(slotGenre)

	switch {
	case album != "" || title != "":
		var query []string
		if artist != "" {
			query = append(query, "contributor.namesearch="+lms.SearchTerm(artist))
		}
		if album != "" {
			query = append(query, "album.titlesearch="+lms.SearchTerm(album))
		}
		if title != "" {
			query = append(query, "track.titlesearch="+lms.SearchTerm(title))
		}
		if genre != "" {
			query = append(query, "genre.namesearch="+lms.SearchTerm(genre))
		}
		player.LoadTracks(query, false)

	case artist != "":
		player.LoadTracks([]string{"contributor.namesearch=" + lms.SearchTerm(artist)}, true)

	case genre != "":
		genres, err := h.library.MusicGenres()
		if err != nil {
			return ErrServerDown
		}
		if !slices.Contains(genres, genre) {
			return ErrUnknownGenre
		}
		player.RandomPlayGenre(genre)

	default:
		player.RandomPlayAll()
	}

	h.logger.Info("music playback started", "site", requestSiteID,
		"artist", artist, "album", album, "title", title, "genre", genre)
	return nil
}

package lms

import (
	"strconv"
	"strings"

	"github.com/tonraum/tonraum-core/internal/site"
)

// Player is the capability facade for one squeezelite endpoint.
// It implements site.Player.
//
// Command methods are fire-and-forget: an unreachable server swallows the
// command. Read methods return zero values in that case. This matches the
// orchestration contract — readiness is established before commands are
// issued, and a command lost to a transient outage is not worth a spoken
// error.
type Player struct {
	mac    string
	name   string
	server *Server
}

// Player returns the capability facade for a player MAC. The site registry
// calls this once per MAC and keeps the instance for the process lifetime.
func (s *Server) Player(mac, name string) *Player {
	return &Player{mac: mac, name: name, server: s}
}

// MAC returns the player's stable identity.
func (p *Player) MAC() string { return p.mac }

// Name returns the server-side player name.
func (p *Player) Name() string { return p.name }

// request sends a player-scoped command, discarding the result.
func (p *Player) request(cmd ...string) {
	_, _ = p.server.Request(p.mac, cmd...)
}

// query sends a player-scoped command and returns its result, or nil when
// the server is unreachable.
func (p *Player) query(cmd ...string) Result {
	res, err := p.server.Request(p.mac, cmd...)
	if err != nil {
		return nil
	}
	return res
}

// Connected reports whether the player is registered and reachable on the
// media server.
func (p *Player) Connected() bool {
	return p.query("connected", "?").Int("_connected") == 1
}

// Mode returns the playback mode: "play", "pause" or "stop". Empty when the
// server is unreachable.
func (p *Player) Mode() string {
	return p.query("mode", "?").Str("_mode")
}

// Play starts playback of the current item, fading in over fadeInSeconds.
func (p *Player) Play(fadeInSeconds float64) {
	p.request("play", strconv.FormatFloat(fadeInSeconds, 'f', -1, 64))
}

// Pause pauses the player. Does not toggle: pausing a paused player is a
// no-op.
func (p *Player) Pause() {
	p.request("pause", "1")
}

// Next skips to the next playlist item.
func (p *Player) Next() {
	p.request("playlist", "index", "+1")
}

// Previous skips to the previous playlist item.
func (p *Player) Previous() {
	p.request("playlist", "index", "-1")
}

// RestartPlaylist jumps back to the first playlist item.
func (p *Player) RestartPlaylist() {
	p.request("playlist", "index", "0")
}

// SetVolume sets the absolute volume, clamped to 0..100.
func (p *Player) SetVolume(level int) {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	p.request("mixer", "volume", strconv.Itoa(level))
}

// AdjustVolume changes the volume by delta; negative values lower it.
func (p *Player) AdjustVolume(delta int) {
	if delta == 0 {
		return
	}
	arg := strconv.Itoa(delta)
	if delta > 0 {
		arg = "+" + arg
	}
	p.request("mixer", "volume", arg)
}

// SyncTo makes this player the synchronisation master of other.
func (p *Player) SyncTo(other site.Player) {
	p.request("sync", other.MAC())
}

// Unsync removes this player from its synchronisation group.
func (p *Player) Unsync() {
	p.request("unsync")
}

// CurrentTrack returns a best-effort snapshot of the playing track.
func (p *Player) CurrentTrack() site.Track {
	return site.Track{
		Artist: p.query("artist", "?").Str("_artist"),
		Album:  p.query("album", "?").Str("_album"),
		Title:  p.query("title", "?").Str("_title"),
	}
}

// LoadTracks replaces the playlist with the tracks matching the library
// query terms (e.g. "album.titlesearch=kind+of+blue"), with shuffle on or
// off.
func (p *Player) LoadTracks(query []string, shuffle bool) {
	if shuffle {
		p.request("playlist", "shuffle", "1")
	} else {
		p.request("playlist", "shuffle", "0")
	}
	p.request("playlist", "loadtracks", strings.Join(query, "&"))
}

// RandomPlayGenre starts random playback restricted to one genre.
func (p *Player) RandomPlayGenre(genre string) {
	p.request("randomplaygenreselectall", "0")
	p.request("randomplaychoosegenre", genre, "1")
	p.request("randomplay", "tracks")
}

// RandomPlayAll starts unrestricted random playback.
func (p *Player) RandomPlayAll() {
	p.request("randomplaygenreselectall", "1")
	p.request("randomplay", "tracks")
}

// Search queries favorites and remote catalogues for term. An unreachable
// server yields an empty result.
func (p *Player) Search(term string, window int) []site.SearchItem {
	res := p.query("search", "items", "0", strconv.Itoa(window), "search:"+SearchTerm(term))
	return searchItems(res)
}

// BrowseItem lists the sub-items of a container search result (podcast
// episodes, station lists).
func (p *Player) BrowseItem(itemID string, window int) []site.SearchItem {
	res := p.query("search", "items", "0", strconv.Itoa(window), "item_id:"+itemID+".0")
	return searchItems(res)
}

// PlayFavorite starts playback of a favorites item by its item ID.
func (p *Player) PlayFavorite(itemID string) {
	p.request("podcast", "playlist", "play", "item_id:"+itemID)
}

// SearchTerm converts a spoken phrase into the server's query-term form
// (spaces become plus signs).
func SearchTerm(phrase string) string {
	return strings.ReplaceAll(phrase, " ", "+")
}

func searchItems(res Result) []site.SearchItem {
	if res.Int("count") < 1 {
		return nil
	}
	var items []site.SearchItem
	for _, entry := range res.Loop("loop_loop") {
		items = append(items, site.SearchItem{
			ID:       entry.Str("id"),
			Name:     entry.Str("name"),
			HasItems: entry.Int("hasitems") > 0,
			IsAudio:  entry.Int("isaudio") > 0,
		})
	}
	return items
}

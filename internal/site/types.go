package site

// Bluetooth describes a device's bluetooth pairing need. Devices without a
// bluetooth capability carry a nil descriptor.
type Bluetooth struct {
	Addr      string `json:"addr"`
	Connected bool   `json:"is_connected"`
}

// Device is a controllable audio endpoint within a site.
//
// A device with a non-empty Soundcard is backed by a squeezelite service
// that the site's satellite agent starts on demand; a device with a
// Bluetooth descriptor additionally needs its bluetooth link connected
// before audio can reach it.
type Device struct {
	// MAC is the squeezelite player MAC, the stable device identity.
	MAC string

	// SiteID is the owning site. Kept on the device because bring-up
	// answers are correlated by the device-owning site, not the requester.
	SiteID string

	Name     string
	Names    []string // alias set used for slot matching
	Synonyms []string

	Bluetooth *Bluetooth
	Soundcard string

	// AutoPause marks a device paused by the session auto-pause policy,
	// to be resumed when the session ends.
	AutoPause bool

	// OnTheFly marks a device attached ad-hoc from the media server's
	// visible players rather than from configured topology. Such devices
	// are detached again when they disconnect or fail bring-up.
	OnTheFly bool

	// Player is the capability facade. Exactly one instance exists per MAC
	// for the process lifetime; topology updates must not replace it.
	Player Player
}

// HasAlias reports whether name matches one of the device's aliases.
// Matching is case-sensitive: the alias list comes from the same voice
// model that produces the slot values.
func (d *Device) HasAlias(name string) bool {
	for _, alias := range d.Names {
		if alias == name {
			return true
		}
	}
	return false
}

// Site is a configured physical location participating in the system.
type Site struct {
	ID                string
	RoomName          string
	Area              string
	AutoPause         bool
	DefaultDeviceName string

	// Devices maps squeezelite MAC to device. Entries are merged in from
	// topology snapshots and never removed by snapshots (stale entries
	// persist); only on-the-fly devices are detached again.
	Devices map[string]*Device

	// ActiveDevice is the device currently representing "the player" of
	// this site, at most one at a time. Nil until a first successful
	// readiness cycle selects one.
	ActiveDevice *Device
}

// Track is a best-effort snapshot of what a player is currently playing.
type Track struct {
	Artist string
	Album  string
	Title  string
}

// SearchItem is one result of a favorites/search query on the media server.
type SearchItem struct {
	ID       string
	Name     string
	HasItems bool // container result (podcast-like), has sub-items
	IsAudio  bool // leaf audio result (radio station, episode)
}

// PlayerInfo identifies a player visible on the media server, used for
// on-the-fly device attachment.
type PlayerInfo struct {
	MAC  string
	Name string
}

// Player is the capability surface of one audio endpoint as exposed by the
// media server. Implemented by internal/lms; faked in tests.
//
// All command methods are fire-and-forget: a disconnected or unreachable
// media server must not surface as a failure here. Callers gate on
// Connected() and treat command loss as a no-op. Reads return best-effort
// snapshots (zero values when unreachable).
type Player interface {
	// MAC returns the player's stable identity.
	MAC() string

	// Connected reports whether the endpoint is registered and reachable
	// on the media server. Never panics or blocks indefinitely.
	Connected() bool

	// Mode returns the playback mode: "play", "pause" or "stop".
	Mode() string

	Play(fadeInSeconds float64)
	Pause()
	Next()
	Previous()
	RestartPlaylist()

	// SetVolume sets the absolute volume, clamped to 0..100.
	SetVolume(level int)
	// AdjustVolume changes the volume by delta (negative lowers).
	AdjustVolume(delta int)

	// SyncTo makes this player the synchronisation master of other.
	SyncTo(other Player)
	Unsync()

	CurrentTrack() Track

	// LoadTracks replaces the playlist with the tracks matching the given
	// library query terms, with shuffle on or off.
	LoadTracks(query []string, shuffle bool)
	// RandomPlayGenre starts genre-restricted random playback.
	RandomPlayGenre(genre string)
	// RandomPlayAll starts unrestricted random playback.
	RandomPlayAll()

	// Search queries favorites and remote catalogues for term, returning
	// at most window results. Unreachable server yields an empty slice.
	Search(term string, window int) []SearchItem
	// BrowseItem lists the sub-items of a container search result.
	BrowseItem(itemID string, window int) []SearchItem
	// PlayFavorite starts playback of a favorites item by its item ID.
	PlayFavorite(itemID string)
}

// Snapshot is the wire format of a siteInfo topology message, published by a
// site's satellite agent.
type Snapshot struct {
	SiteID        string           `json:"site_id"`
	RoomName      string           `json:"room_name"`
	Area          string           `json:"area"`
	AutoPause     bool             `json:"auto_pause"`
	DefaultDevice string           `json:"default_device"`
	Devices       []DeviceSnapshot `json:"devices"`
}

// DeviceSnapshot is one device entry of a topology snapshot.
type DeviceSnapshot struct {
	MAC       string     `json:"squeezelite_mac"`
	Name      string     `json:"name"`
	Names     []string   `json:"names_list"`
	Synonyms  []string   `json:"synonyms"`
	Bluetooth *Bluetooth `json:"bluetooth,omitempty"`
	Soundcard string     `json:"soundcard,omitempty"`
}

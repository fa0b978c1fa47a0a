package actions

import (
	"fmt"
	"math/rand"

	"github.com/tonraum/tonraum-core/internal/hermes"
	"github.com/tonraum/tonraum-core/internal/readiness"
	"github.com/tonraum/tonraum-core/internal/site"
)

// Slot names of the playback intents, as produced by the voice model.
const (
	slotArtist         = "artist"
	slotAlbum          = "album"
	slotTitle          = "title"
	slotGenre          = "genre"
	slotPodcast        = "podcast"
	slotRadio          = "radio"
	slotVolumeAbsolute = "volume_absolute"
	slotVolumeChange   = "volume_change"
	slotDirection      = "direction"
	slotMaster         = "master"
	slotSlave          = "slave"
	slotInjectType     = "type"
)

// volume presets for the spoken direction words.
const (
	volumeStep    = 10
	volumeLow     = 30
	volumeHigh    = 70
	volumeLowest  = 10
	volumeHighest = 100
)

// resumeFadeSeconds is the fade-in used when playback resumes.
const resumeFadeSeconds = 1.1

// Readier starts a bring-up cycle. Implemented by the readiness
// orchestrator.
type Readier interface {
	MakeReady(target readiness.Target, action readiness.Action) error
}

// Library is the media-server catalogue surface the handlers consult.
// Implemented by the lms server client.
type Library interface {
	Connected() bool
	MusicAlbums() ([]string, error)
	MusicTitles() ([]string, error)
	MusicArtists() ([]string, error)
	MusicGenres() ([]string, error)
	MusicPlaylists() ([]string, error)
	RadioStations() ([]string, error)
	PodcastTitles() ([]string, error)
}

// Logger is the logging interface consumed by the handlers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Handlers implements the playback operations. It is the
// readiness.Dispatcher of the orchestrator and the intent surface of the
// assistant.
type Handlers struct {
	registry *site.Registry
	library  Library
	readier  Readier
	logger   Logger

	// pick selects a random index, swapped out in tests.
	pick func(n int) int
}

// NewHandlers creates the playback handlers.
func NewHandlers(registry *site.Registry, library Library, readier Readier) *Handlers {
	return &Handlers{
		registry: registry,
		library:  library,
		readier:  readier,
		logger:   noopLogger{},
		pick:     rand.Intn,
	}
}

// SetLogger installs a logger.
func (h *Handlers) SetLogger(l Logger) {
	if l != nil {
		h.logger = l
	}
}

// Dispatch runs a deferred action once its bring-up cycle is ready.
func (h *Handlers) Dispatch(a readiness.Action) error {
	switch a.Kind {
	case readiness.KindMusic:
		return h.playMusic(a.Slots, a.RequestSiteID)
	case readiness.KindPodcast:
		return h.playPodcast(a.Slots, a.RequestSiteID)
	case readiness.KindRadio:
		return h.playRadio(a.Slots, a.RequestSiteID)
	case readiness.KindResume:
		return h.resume(a.Slots, a.RequestSiteID)
	case readiness.KindSyncSlave:
		return h.syncSlaveStage(a.Slots, a.RequestSiteID)
	case readiness.KindSyncPair:
		return h.syncPairStage(a.Slots, a.RequestSiteID)
	default:
		return fmt.Errorf("actions: unknown action kind %q", a.Kind)
	}
}

// Music handles the music intent: bring the target devices up, then start
// library playback.
func (h *Handlers) Music(slots hermes.Slots, requestSiteID string) error {
	return h.readier.MakeReady(
		readiness.Target{Slots: slots, RequestSiteID: requestSiteID},
		readiness.Action{Kind: readiness.KindMusic, Slots: slots, RequestSiteID: requestSiteID},
	)
}

// Podcast handles the podcast intent.
func (h *Handlers) Podcast(slots hermes.Slots, requestSiteID string) error {
	return h.readier.MakeReady(
		readiness.Target{Slots: slots, RequestSiteID: requestSiteID},
		readiness.Action{Kind: readiness.KindPodcast, Slots: slots, RequestSiteID: requestSiteID},
	)
}

// Radio handles the radio intent.
func (h *Handlers) Radio(slots hermes.Slots, requestSiteID string) error {
	return h.readier.MakeReady(
		readiness.Target{Slots: slots, RequestSiteID: requestSiteID},
		readiness.Action{Kind: readiness.KindRadio, Slots: slots, RequestSiteID: requestSiteID},
	)
}

// Play handles the resume intent: bring the target devices up, then resume
// paused or stopped playback.
func (h *Handlers) Play(slots hermes.Slots, requestSiteID string) error {
	return h.readier.MakeReady(
		readiness.Target{Slots: slots, RequestSiteID: requestSiteID},
		readiness.Action{Kind: readiness.KindResume, Slots: slots, RequestSiteID: requestSiteID},
	)
}

// Sync handles the synchronisation intent. Master and slave rooms are
// brought up one after the other; the final stage links their players.
func (h *Handlers) Sync(slots hermes.Slots, requestSiteID string) error {
	if slots.Str(slotMaster) == "" || slots.Str(slotSlave) == "" {
		return ErrBothRoomsNeeded
	}
	return h.readier.MakeReady(
		readiness.Target{Slots: slots, RequestSiteID: requestSiteID, RoomSlot: slotMaster, Single: true},
		readiness.Action{Kind: readiness.KindSyncSlave, Slots: slots, RequestSiteID: requestSiteID},
	)
}

// syncSlaveStage runs once the master room is ready and brings the slave
// room up.
func (h *Handlers) syncSlaveStage(slots hermes.Slots, requestSiteID string) error {
	return h.readier.MakeReady(
		readiness.Target{Slots: slots, RequestSiteID: requestSiteID, RoomSlot: slotSlave, Single: true},
		readiness.Action{Kind: readiness.KindSyncPair, Slots: slots, RequestSiteID: requestSiteID},
	)
}

// syncPairStage runs once both rooms are ready and links the players.
func (h *Handlers) syncPairStage(slots hermes.Slots, requestSiteID string) error {
	master, err := h.activeSite(slots, requestSiteID, slotMaster)
	if err != nil {
		return err
	}
	slave, err := h.activeSite(slots, requestSiteID, slotSlave)
	if err != nil {
		return err
	}
	if !h.library.Connected() {
		return ErrServerDown
	}
	master.ActiveDevice.Player.SyncTo(slave.ActiveDevice.Player)
	h.logger.Info("players synchronised", "master", master.ID, "slave", slave.ID)
	return nil
}

// Pause pauses the active devices of the target sites. Resolution problems
// and a dead server are silent no-ops: pausing nothing is what the user
// asked for.
func (h *Handlers) Pause(slots hermes.Slots, requestSiteID string) {
	sites, err := h.registry.Resolve(slots, requestSiteID, site.ResolveOptions{})
	if err != nil || !h.library.Connected() {
		return
	}
	for _, s := range sites {
		d := s.ActiveDevice
		if d != nil && d.Player.Connected() {
			h.registry.SetAutoPause(d, false)
			d.Player.Pause()
		}
	}
}

// resume restarts paused or stopped playback on the active devices.
func (h *Handlers) resume(slots hermes.Slots, requestSiteID string) error {
	sites, err := h.registry.Resolve(slots, requestSiteID, site.ResolveOptions{})
	if err != nil || !h.library.Connected() {
		return nil
	}
	for _, s := range sites {
		d := s.ActiveDevice
		if d == nil || !d.Player.Connected() {
			continue
		}
		if mode := d.Player.Mode(); mode == "pause" || mode == "stop" {
			h.registry.SetAutoPause(d, false)
			d.Player.Play(resumeFadeSeconds)
		}
	}
	return nil
}

// Volume adjusts the volume of the active devices. Precedence: an absolute
// value wins; then lower/higher with an optional magnitude; then the preset
// words low, high, lowest and highest.
func (h *Handlers) Volume(slots hermes.Slots, requestSiteID string) {
	sites, err := h.registry.Resolve(slots, requestSiteID, site.ResolveOptions{})
	if err != nil || !h.library.Connected() {
		return
	}
	for _, s := range sites {
		d := s.ActiveDevice
		if d == nil || !d.Player.Connected() {
			continue
		}
		switch {
		case slots.Has(slotVolumeAbsolute):
			level, _ := slots.Int(slotVolumeAbsolute)
			d.Player.SetVolume(level)
		case slots.Str(slotDirection) == "lower":
			d.Player.AdjustVolume(-h.volumeChange(slots))
		case slots.Str(slotDirection) == "higher":
			d.Player.AdjustVolume(h.volumeChange(slots))
		case slots.Str(slotDirection) == "low":
			d.Player.SetVolume(volumeLow)
		case slots.Str(slotDirection) == "high":
			d.Player.SetVolume(volumeHigh)
		case slots.Str(slotDirection) == "lowest":
			d.Player.SetVolume(volumeLowest)
		case slots.Str(slotDirection) == "highest":
			d.Player.SetVolume(volumeHighest)
		}
	}
}

func (h *Handlers) volumeChange(slots hermes.Slots) int {
	if change, ok := slots.Int(slotVolumeChange); ok {
		return change
	}
	return volumeStep
}

// Next skips to the next queue entry on the target site's active device.
func (h *Handlers) Next(slots hermes.Slots, requestSiteID string) {
	if d := h.controlDevice(slots, requestSiteID); d != nil {
		d.Player.Next()
	}
}

// Previous skips to the previous queue entry.
func (h *Handlers) Previous(slots hermes.Slots, requestSiteID string) {
	if d := h.controlDevice(slots, requestSiteID); d != nil {
		d.Player.Previous()
	}
}

// Restart jumps back to the first queue entry.
func (h *Handlers) Restart(slots hermes.Slots, requestSiteID string) {
	if d := h.controlDevice(slots, requestSiteID); d != nil {
		d.Player.RestartPlaylist()
	}
}

// Info returns the spoken description of the currently playing track.
func (h *Handlers) Info(slots hermes.Slots, requestSiteID string) (string, error) {
	if !h.library.Connected() {
		return "", ErrServerUnavailable
	}
	sites, err := h.registry.Resolve(slots, requestSiteID, site.ResolveOptions{Single: true})
	if err != nil {
		return "", err
	}
	d := sites[0].ActiveDevice
	if d == nil || !d.Player.Connected() {
		return "", ErrDeviceInactive
	}
	track := d.Player.CurrentTrack()
	return fmt.Sprintf("Gerade wird von %s aus %s der Titel %s gespielt.",
		track.Artist, track.Album, track.Title), nil
}

// controlDevice resolves the single target site of a queue-control intent
// and returns its active, connected device, or nil when the intent cannot
// be served. Control intents fail silently.
func (h *Handlers) controlDevice(slots hermes.Slots, requestSiteID string) *site.Device {
	sites, err := h.registry.Resolve(slots, requestSiteID, site.ResolveOptions{Single: true})
	if err != nil || !h.library.Connected() {
		return nil
	}
	d := sites[0].ActiveDevice
	if d == nil || !d.Player.Connected() {
		return nil
	}
	return d
}

// activeSite resolves one room slot to its site and requires an active
// device on it.
func (h *Handlers) activeSite(slots hermes.Slots, requestSiteID, roomSlot string) (*site.Site, error) {
	sites, err := h.registry.Resolve(slots, requestSiteID, site.ResolveOptions{Single: true, RoomSlot: roomSlot})
	if err != nil {
		return nil, err
	}
	if sites[0].ActiveDevice == nil {
		return nil, ErrDeviceInactive
	}
	return sites[0], nil
}

// playerForSites returns the player serving a playback action. Multi-room
// targets are synchronised first: one player (preferring the requester's)
// leaves its old sync group and becomes the master of the others.
func (h *Handlers) playerForSites(slots hermes.Slots, requestSiteID string) (site.Player, error) {
	sites, err := h.registry.Resolve(slots, requestSiteID, site.ResolveOptions{})
	if err != nil {
		return nil, err
	}
	var active []*site.Site
	for _, s := range sites {
		if s.ActiveDevice != nil {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return nil, ErrDeviceInactive
	}

	primary := active[0]
	if req := h.registry.Lookup(requestSiteID); req != nil {
		for _, s := range active {
			if s == req {
				primary = req
				break
			}
		}
	}
	player := primary.ActiveDevice.Player
	if len(active) > 1 {
		player.Unsync()
		for _, s := range active {
			if s != primary {
				player.SyncTo(s.ActiveDevice.Player)
			}
		}
	}
	return player, nil
}

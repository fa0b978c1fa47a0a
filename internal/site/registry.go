package site

import (
	"sort"
	"sync"
)

// Logger defines the logging interface used by the Registry.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// PlayerFactory creates the capability facade for a newly seen device MAC.
// Called at most once per MAC; the returned Player persists across topology
// updates.
type PlayerFactory func(mac, name string) Player

// Registry is the in-memory catalogue of sites and their devices.
//
// Snapshots are merged with UpsertSite; sites are never removed. Lookup
// methods never fail — an unknown key yields nil or an empty slice.
type Registry struct {
	mu        sync.RWMutex
	sites     map[string]*Site
	newPlayer PlayerFactory
	logger    Logger
}

// NewRegistry creates an empty registry. factory is used to attach a Player
// to every device seen for the first time.
func NewRegistry(factory PlayerFactory) *Registry {
	return &Registry{
		sites:     make(map[string]*Site),
		newPlayer: factory,
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// UpsertSite merges a topology snapshot into the registry.
//
// Unseen device MACs get a fresh Device with a newly created Player; known
// MACs keep their Device (and Player) identity and have their mutable
// fields updated. Devices absent from the snapshot are not removed.
func (r *Registry) UpsertSite(snap Snapshot) *Site {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sites[snap.SiteID]
	if !ok {
		s = &Site{ID: snap.SiteID, Devices: make(map[string]*Device)}
		r.sites[snap.SiteID] = s
	}

	s.RoomName = snap.RoomName
	s.Area = snap.Area
	s.AutoPause = snap.AutoPause
	s.DefaultDeviceName = snap.DefaultDevice

	for _, ds := range snap.Devices {
		d, known := s.Devices[ds.MAC]
		if !known {
			d = &Device{
				MAC:    ds.MAC,
				Player: r.newPlayer(ds.MAC, ds.Name),
			}
			s.Devices[ds.MAC] = d
		}
		d.SiteID = snap.SiteID
		d.Name = ds.Name
		d.Names = ds.Names
		d.Synonyms = ds.Synonyms
		d.Bluetooth = ds.Bluetooth
		d.Soundcard = ds.Soundcard
		d.OnTheFly = false
	}

	r.logger.Debug("site topology updated",
		"site_id", snap.SiteID,
		"room", snap.RoomName,
		"devices", len(snap.Devices),
	)
	return s
}

// Lookup returns the site with the given ID, or nil.
func (r *Registry) Lookup(siteID string) *Site {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sites[siteID]
}

// LookupByRoom returns the site configured with the given room name, or nil.
func (r *Registry) LookupByRoom(room string) *Site {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sites {
		if s.RoomName == room {
			return s
		}
	}
	return nil
}

// LookupByArea returns all sites in the given area, ordered by site ID.
func (r *Registry) LookupByArea(area string) []*Site {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sites []*Site
	for _, s := range r.sites {
		if s.Area == area {
			sites = append(sites, s)
		}
	}
	sortSites(sites)
	return sites
}

// AllSites returns every known site, ordered by site ID.
func (r *Registry) AllSites() []*Site {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sites := make([]*Site, 0, len(r.sites))
	for _, s := range r.sites {
		sites = append(sites, s)
	}
	sortSites(sites)
	return sites
}

// OwnerOf returns the site owning a device with the given bluetooth address,
// plus the device itself. Returns nils when no site has such a device.
func (r *Registry) OwnerOf(btAddr string) (*Site, *Device) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sites {
		for _, d := range s.Devices {
			if d.Bluetooth != nil && d.Bluetooth.Addr == btAddr {
				return s, d
			}
		}
	}
	return nil, nil
}

// Areas returns the distinct areas of all sites, ordered.
func (r *Registry) Areas() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var areas []string
	for _, s := range r.sites {
		if s.Area != "" && !seen[s.Area] {
			seen[s.Area] = true
			areas = append(areas, s.Area)
		}
	}
	sort.Strings(areas)
	return areas
}

// RoomNames returns the distinct room names of all sites, ordered.
func (r *Registry) RoomNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var rooms []string
	for _, s := range r.sites {
		if s.RoomName != "" && !seen[s.RoomName] {
			seen[s.RoomName] = true
			rooms = append(rooms, s.RoomName)
		}
	}
	sort.Strings(rooms)
	return rooms
}

// DeviceNames returns the distinct device aliases across all sites, ordered.
// Used for entity injection into the voice model.
func (r *Registry) DeviceNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var names []string
	for _, s := range r.sites {
		for _, d := range s.Devices {
			for _, alias := range d.Names {
				if alias != "" && !seen[alias] {
					seen[alias] = true
					names = append(names, alias)
				}
			}
		}
	}
	sort.Strings(names)
	return names
}

// HasPlayer reports whether any site owns a device with the given MAC.
// On-the-fly attachment must not steal a player that already belongs to a
// configured site.
func (r *Registry) HasPlayer(mac string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sites {
		if _, ok := s.Devices[mac]; ok {
			return true
		}
	}
	return false
}

// SetActiveDevice makes d the active device of s and returns the device it
// displaced, or nil. The displaced device loses its auto-pause flag; pausing
// its playback is up to the caller, outside the registry lock.
func (r *Registry) SetActiveDevice(s *Site, d *Device) *Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := s.ActiveDevice
	s.ActiveDevice = d
	if prev != nil && prev != d {
		prev.AutoPause = false
		return prev
	}
	return nil
}

// ClearActiveDevice clears s's active device when it currently is d.
func (r *Registry) ClearActiveDevice(s *Site, d *Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ActiveDevice == d {
		s.ActiveDevice = nil
	}
}

// SetBluetoothConnected updates a device's bluetooth link state. A device
// without a bluetooth descriptor is left alone.
func (r *Registry) SetBluetoothConnected(d *Device, connected bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.Bluetooth != nil {
		d.Bluetooth.Connected = connected
	}
}

// SetAutoPause flags or unflags a device as paused by the session
// auto-pause policy.
func (r *Registry) SetAutoPause(d *Device, v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.AutoPause = v
}

// AttachOnTheFly adds an ad-hoc device to a site, drawn from the media
// server's visible players rather than configured topology. The device is
// matched by its server-side player name and removed again once it
// disconnects or fails bring-up.
func (r *Registry) AttachOnTheFly(siteID, mac, name string) *Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.sites[siteID]
	if s == nil {
		return nil
	}
	d := &Device{
		MAC:      mac,
		SiteID:   siteID,
		Name:     name,
		Names:    []string{name},
		OnTheFly: true,
		Player:   r.newPlayer(mac, name),
	}
	s.Devices[mac] = d
	r.logger.Info("on-the-fly device attached", "site_id", siteID, "device", name, "mac", mac)
	return d
}

// DetachOnTheFly removes an ad-hoc device from its site again. Configured
// devices are never detached.
func (r *Registry) DetachOnTheFly(d *Device) {
	if d == nil || !d.OnTheFly {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.sites[d.SiteID]
	if s == nil {
		return
	}
	if s.ActiveDevice == d {
		s.ActiveDevice = nil
	}
	delete(s.Devices, d.MAC)
	r.logger.Info("on-the-fly device detached", "site_id", d.SiteID, "device", d.Name, "mac", d.MAC)
}

func sortSites(sites []*Site) {
	sort.Slice(sites, func(i, j int) bool { return sites[i].ID < sites[j].ID })
}

package site

import "sort"

// SiteView is a copy of one site's state, safe to read without holding the
// registry lock. Registry mutations after the copy are not reflected.
// Player references are shared: the facade itself carries no mutable state.
type SiteView struct {
	ID                string
	RoomName          string
	Area              string
	AutoPause         bool
	DefaultDeviceName string

	// ActiveDeviceMAC is the MAC of the site's active device, or "".
	ActiveDeviceMAC string

	// Devices is ordered by MAC.
	Devices []DeviceView
}

// DeviceView is the copy of one device within a SiteView.
type DeviceView struct {
	MAC       string
	Name      string
	Names     []string
	Synonyms  []string
	Soundcard string
	Bluetooth *Bluetooth
	OnTheFly  bool
	Player    Player
}

// Views returns a copy of every known site, ordered by site ID. The HTTP API
// reads through here; handing out live *Site pointers across goroutines
// would race with topology updates.
func (r *Registry) Views() []SiteView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	views := make([]SiteView, 0, len(r.sites))
	for _, s := range r.sites {
		views = append(views, viewOf(s))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

// View returns a copy of one site, or false when the site is unknown.
func (r *Registry) View(siteID string) (SiteView, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sites[siteID]
	if !ok {
		return SiteView{}, false
	}
	return viewOf(s), true
}

// viewOf copies a site. Callers must hold the registry lock.
func viewOf(s *Site) SiteView {
	v := SiteView{
		ID:                s.ID,
		RoomName:          s.RoomName,
		Area:              s.Area,
		AutoPause:         s.AutoPause,
		DefaultDeviceName: s.DefaultDeviceName,
		Devices:           make([]DeviceView, 0, len(s.Devices)),
	}
	if s.ActiveDevice != nil {
		v.ActiveDeviceMAC = s.ActiveDevice.MAC
	}
	for _, d := range s.Devices {
		dv := DeviceView{
			MAC:       d.MAC,
			Name:      d.Name,
			Names:     append([]string(nil), d.Names...),
			Synonyms:  append([]string(nil), d.Synonyms...),
			Soundcard: d.Soundcard,
			OnTheFly:  d.OnTheFly,
			Player:    d.Player,
		}
		if d.Bluetooth != nil {
			bt := *d.Bluetooth
			dv.Bluetooth = &bt
		}
		v.Devices = append(v.Devices, dv)
	}
	sort.Slice(v.Devices, func(i, j int) bool { return v.Devices[i].MAC < v.Devices[j].MAC })
	return v
}

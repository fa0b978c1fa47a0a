package site

import (
	"sort"

	"github.com/tonraum/tonraum-core/internal/hermes"
)

// Slot keywords produced by the voice model. The model is German; these
// literals are part of the wire contract with the intent engine.
const (
	// SlotRoom is the default room slot name.
	SlotRoom = "room"
	// SlotDevice is the device slot name.
	SlotDevice = "device"
	// SlotArea is the area slot name.
	SlotArea = "area"

	// KeywordHere selects the requester's own room.
	KeywordHere = "hier"
	// KeywordAll selects every room (or every area, in the area slot).
	KeywordAll = "alle"
)

// ResolveOptions controls target resolution.
type ResolveOptions struct {
	// Single rejects a multi-site resolution as an error.
	Single bool

	// RoomSlot overrides the slot name consulted for the room value.
	// Synchronisation intents resolve "master" and "slave" independently.
	// Empty means SlotRoom.
	RoomSlot string
}

// Resolve maps the room/area slots of an intent onto concrete sites.
//
// Rules, in order: an absent or "hier" room slot resolves to the requester's
// own site; "alle" to every known site; any other value to the uniquely
// named room. An area slot (other than "alle") narrows the result to sites
// of that area — or, when no room slot is given, selects by area directly
// instead of defaulting to the requester.
//
// The returned slice is never empty when err is nil.
func (r *Registry) Resolve(slots hermes.Slots, requestSiteID string, opts ResolveOptions) ([]*Site, error) {
	roomSlot := opts.RoomSlot
	if roomSlot == "" {
		roomSlot = SlotRoom
	}
	room := slots.Str(roomSlot)
	area := slots.Str(SlotArea)
	areaFilter := area != "" && area != KeywordAll

	var sites []*Site
	switch {
	case room == KeywordAll:
		if opts.Single {
			return nil, ErrSingleRoomOnly
		}
		sites = r.AllSites()
		if len(sites) == 0 {
			return nil, ErrNoSites
		}

	case room != "" && room != KeywordHere:
		s := r.LookupByRoom(room)
		if s == nil {
			return nil, &RoomNotFoundError{Room: room}
		}
		sites = []*Site{s}

	case room == "" && areaFilter:
		// Area-only selection: every room of the area.
		if opts.Single {
			return nil, ErrSingleRoomOnly
		}
		sites = r.LookupByArea(area)
		if len(sites) == 0 {
			return nil, &AreaNotFoundError{Area: area}
		}
		return sites, nil

	default: // absent or "hier"
		s := r.Lookup(requestSiteID)
		if s == nil {
			return nil, ErrRequesterUnknown
		}
		sites = []*Site{s}
	}

	if areaFilter {
		filtered := sites[:0:0]
		for _, s := range sites {
			if s.Area == area {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) == 0 {
			return nil, &AreaNotFoundError{Area: area}
		}
		sites = filtered
	}

	if opts.Single && len(sites) > 1 {
		return nil, ErrSingleRoomOnly
	}
	return sites, nil
}

// DeviceFor selects the candidate device of a site for an intent.
//
// An explicit device slot is matched against device aliases ("alle" is
// rejected, one device per room). Without a device slot the current active
// device is reused when set; otherwise the site's default device name is
// matched against aliases. A site with a single device and no configured
// default falls back to that device. Matching is deterministic: devices are
// tried in MAC order.
func (s *Site) DeviceFor(slots hermes.Slots) (*Device, error) {
	name := slots.Str(SlotDevice)
	if name == KeywordAll {
		return nil, ErrOneDevicePerRoom
	}
	if name == "" {
		// No explicit device named: the current active device stays "the
		// player" of this site.
		if s.ActiveDevice != nil {
			return s.ActiveDevice, nil
		}
		name = s.DefaultDeviceName
		if name == "" {
			if devices := s.devicesByMAC(); len(devices) == 1 {
				return devices[0], nil
			}
		}
	}
	for _, d := range s.devicesByMAC() {
		if d.HasAlias(name) {
			return d, nil
		}
	}
	return nil, &DeviceNotFoundError{Room: s.RoomName, Name: name}
}

func (s *Site) devicesByMAC() []*Device {
	devices := make([]*Device, 0, len(s.Devices))
	for _, d := range s.Devices {
		devices = append(devices, d)
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].MAC < devices[j].MAC })
	return devices
}

package assistant

import "encoding/json"

// The auto-pause policy: while a voice session is open in a room, that
// room's playing devices are paused so the microphone hears the user, and
// resumed once the session ends. Devices paused this way carry the
// AutoPause flag; a playback intent issued during the session clears the
// flags so the old playback does not restart over the new one.

func (a *Assistant) handleSessionStarted(topic string, payload []byte) error {
	var event struct {
		SiteID string `json:"siteId"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}
	s := a.registry.Lookup(event.SiteID)
	if s == nil || !s.AutoPause {
		return nil
	}
	for _, d := range s.Devices {
		if d.Player.Connected() && d.Player.Mode() == "play" {
			a.registry.SetAutoPause(d, true)
			d.Player.Pause()
		}
	}
	return nil
}

func (a *Assistant) handleSessionEnded(topic string, payload []byte) error {
	var event struct {
		SiteID string `json:"siteId"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}
	s := a.registry.Lookup(event.SiteID)
	if s == nil {
		return nil
	}
	for _, d := range s.Devices {
		if d.AutoPause && d.Player.Connected() && d.Player.Mode() == "pause" {
			a.registry.SetAutoPause(d, false)
			d.Player.Play(resumeFadeSeconds)
		}
	}
	return nil
}

// resumeFadeSeconds matches the fade used by the resume intent.
const resumeFadeSeconds = 1.1

// noAutostartAfterSession clears the auto-pause flags of a site before a
// new playback intent takes over its devices.
func (a *Assistant) noAutostartAfterSession(siteID string) {
	s := a.registry.Lookup(siteID)
	if s == nil || !s.AutoPause {
		return
	}
	for _, d := range s.Devices {
		a.registry.SetAutoPause(d, false)
	}
}

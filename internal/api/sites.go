package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tonraum/tonraum-core/internal/site"
)

// siteResponse is the wire representation of one site.
type siteResponse struct {
	ID            string           `json:"id"`
	Room          string           `json:"room"`
	Area          string           `json:"area"`
	AutoPause     bool             `json:"auto_pause"`
	DefaultDevice string           `json:"default_device,omitempty"`
	ActiveDevice  string           `json:"active_device,omitempty"`
	Devices       []deviceResponse `json:"devices"`
}

// deviceResponse is the wire representation of one device within a site.
type deviceResponse struct {
	MAC       string   `json:"mac"`
	Name      string   `json:"name"`
	Names     []string `json:"names,omitempty"`
	Synonyms  []string `json:"synonyms,omitempty"`
	Soundcard string   `json:"soundcard,omitempty"`
	Bluetooth *btState `json:"bluetooth,omitempty"`
	Connected bool     `json:"connected"`
	OnTheFly  bool     `json:"on_the_fly,omitempty"`
}

// btState reports a device's bluetooth link.
type btState struct {
	Addr      string `json:"addr"`
	Connected bool   `json:"connected"`
}

// handleListSites returns every known site with its devices.
func (s *Server) handleListSites(w http.ResponseWriter, _ *http.Request) {
	views := s.registry.Views()

	resp := make([]siteResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, buildSiteResponse(v))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sites": resp,
		"count": len(resp),
	})
}

// handleGetSite returns one site by its ID.
func (s *Server) handleGetSite(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	v, ok := s.registry.View(siteID)
	if !ok {
		writeNotFound(w, "site not found: "+siteID)
		return
	}

	writeJSON(w, http.StatusOK, buildSiteResponse(v))
}

// buildSiteResponse flattens a site view into its wire form. The view is a
// registry-lock copy, so topology updates on the MQTT side cannot race the
// reads here. The player liveness probe runs outside the lock.
func buildSiteResponse(v site.SiteView) siteResponse {
	resp := siteResponse{
		ID:            v.ID,
		Room:          v.RoomName,
		Area:          v.Area,
		AutoPause:     v.AutoPause,
		DefaultDevice: v.DefaultDeviceName,
		ActiveDevice:  v.ActiveDeviceMAC,
		Devices:       make([]deviceResponse, 0, len(v.Devices)),
	}

	for _, d := range v.Devices {
		dev := deviceResponse{
			MAC:       d.MAC,
			Name:      d.Name,
			Names:     d.Names,
			Synonyms:  d.Synonyms,
			Soundcard: d.Soundcard,
			Connected: d.Player != nil && d.Player.Connected(),
			OnTheFly:  d.OnTheFly,
		}
		if d.Bluetooth != nil {
			dev.Bluetooth = &btState{
				Addr:      d.Bluetooth.Addr,
				Connected: d.Bluetooth.Connected,
			}
		}
		resp.Devices = append(resp.Devices, dev)
	}

	return resp
}

package readiness

// Wire payloads exchanged with the site satellites. Field names follow the
// satellite protocol and must not change.

// ConnectRequest asks a site's bluetooth agent to connect a device.
type ConnectRequest struct {
	Addr  string `json:"addr"`
	Tries int    `json:"tries"`
}

// ServiceStartRequest asks a site host to start a squeezelite service for
// one device.
type ServiceStartRequest struct {
	Server     string `json:"server"`
	SqueezeMAC string `json:"squeeze_mac"`
	Soundcard  string `json:"soundcard"`
	Name       string `json:"name"`
}

// BringUpResult is the answer to a connect or service-start request,
// carrying the site that performed the work.
type BringUpResult struct {
	SiteID string `json:"siteId"`
	Result bool   `json:"result"`
}

// DisconnectEvent announces an unsolicited bluetooth disconnect.
type DisconnectEvent struct {
	SiteID string `json:"siteId"`
	Addr   string `json:"addr"`
}

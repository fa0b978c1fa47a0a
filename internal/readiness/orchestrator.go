package readiness

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tonraum/tonraum-core/internal/hermes"
	"github.com/tonraum/tonraum-core/internal/infrastructure/mqtt"
	"github.com/tonraum/tonraum-core/internal/site"
)

// connectTries is handed to the bluetooth agent; the agent performs the
// retries, the orchestrator sees only the final result.
const connectTries = 3

// Notification texts spoken at the requesting site when an asynchronous
// bring-up step fails.
const (
	textBluetoothFailed      = "Das Bluetooth Gerät im Raum %s konnte nicht verbunden werden."
	textServiceNotRegistered = "Das Abspielprogramm wurde im Raum %s nicht richtig gestartet."
	textServiceFailed        = "Das Abspielprogramm konnte im Raum %s nicht gestartet werden."
)

// MediaServer is the slice of the media-server client the orchestrator
// needs: a liveness probe and a player directory for on-the-fly devices.
type MediaServer interface {
	Connected() bool
	Host() string
	FindPlayer(name string) (site.PlayerInfo, bool)
}

// Publisher sends satellite requests.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Notifier speaks a text at a site, used for asynchronous failure reports.
type Notifier interface {
	Notify(siteID, text string) error
}

// Logger is the logging interface consumed by the orchestrator.
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

// cycle is one in-flight bring-up, keyed by the requesting site.
type cycle struct {
	target     Target
	action     Action
	candidates []*site.Device
	connect    []*site.Device
	service    []*site.Device
}

// pendingBringUp correlates a satellite answer, keyed by the device-owning
// site. Multi-room cycles queue at most one device per owning site, so the
// key is unique.
type pendingBringUp struct {
	requestSiteID string
	device        *site.Device
}

// Orchestrator drives device bring-up cycles. All exported methods are safe
// for concurrent use; every MQTT delivery enters through one of them and
// serialises on the internal mutex.
type Orchestrator struct {
	registry   *site.Registry
	server     MediaServer
	pub        Publisher
	notifier   Notifier
	topics     mqtt.Topics
	qos        byte
	logger     Logger
	dispatcher Dispatcher

	mu      sync.Mutex
	cycles  map[string]*cycle
	pending map[string]*pendingBringUp
}

// NewOrchestrator creates an orchestrator. The dispatcher is set separately
// because the action handlers it points at need the orchestrator in turn.
func NewOrchestrator(registry *site.Registry, server MediaServer, pub Publisher, notifier Notifier, qos byte) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		server:   server,
		pub:      pub,
		notifier: notifier,
		qos:      qos,
		logger:   noopLogger{},
		cycles:   make(map[string]*cycle),
		pending:  make(map[string]*pendingBringUp),
	}
}

// SetLogger installs a logger. Must be called before Start-up traffic.
func (o *Orchestrator) SetLogger(l Logger) {
	if l != nil {
		o.logger = l
	}
}

// SetDispatcher installs the action dispatcher. Must be called before the
// first MakeReady.
func (o *Orchestrator) SetDispatcher(d Dispatcher) {
	o.dispatcher = d
}

// MakeReady resolves the target, brings its devices up and runs action once
// every device is ready. When all devices are ready already the action runs
// synchronously and its error is returned; otherwise MakeReady returns nil
// and the cycle continues as satellite answers arrive.
//
// A site whose request is already in flight keeps its existing cycle; the
// new request is rejected with ErrBringUpInFlight so the user hears why
// nothing happened, and later the outcome of the first request.
func (o *Orchestrator) MakeReady(target Target, action Action) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.makeReady(target, action)
}

func (o *Orchestrator) makeReady(target Target, action Action) error {
	if !o.server.Connected() {
		return ErrServerUnreachable
	}
	if o.registry.Lookup(target.RequestSiteID) == nil {
		return site.ErrRequesterUnknown
	}
	if existing := o.cycles[target.RequestSiteID]; existing != nil {
		o.logger.Warn("bring-up already in flight, rejecting new action",
			"site", target.RequestSiteID, "kind", action.Kind)
		return ErrBringUpInFlight
	}

	sites, err := o.registry.Resolve(target.Slots, target.RequestSiteID, site.ResolveOptions{
		Single:   target.Single,
		RoomSlot: target.RoomSlot,
	})
	if err != nil {
		return err
	}

	c := &cycle{target: target, action: action}
	var firstErr error
	for _, s := range sites {
		device, err := o.candidateFor(s, target.Slots)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if device.Bluetooth != nil && !device.Bluetooth.Connected {
			c.connect = append(c.connect, device)
		}
		if !device.Player.Connected() {
			if device.Soundcard == "" {
				if device.OnTheFly {
					o.registry.DetachOnTheFly(device)
				}
				if firstErr == nil {
					firstErr = ErrDeviceNotConnected
				}
				continue
			}
			c.service = append(c.service, device)
		}
		c.candidates = append(c.candidates, device)
	}
	if len(c.candidates) == 0 {
		return firstErr
	}
	if firstErr != nil {
		o.logger.Warn("bring-up skipping sites", "site", target.RequestSiteID, "err", firstErr)
	}

	if len(c.connect) > 0 {
		o.cycles[target.RequestSiteID] = c
		o.issueConnectRequests(c)
		return nil
	}
	if len(c.service) > 0 {
		o.cycles[target.RequestSiteID] = c
		o.issueServiceRequests(c)
		return nil
	}
	return o.finish(c)
}

// candidateFor picks the device that will serve the request in s. A device
// name that is unknown in the topology but visible on the media server is
// attached on the fly.
func (o *Orchestrator) candidateFor(s *site.Site, slots hermes.Slots) (*site.Device, error) {
	device, err := s.DeviceFor(slots)
	if err == nil {
		return device, nil
	}
	var notFound *site.DeviceNotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}
	info, ok := o.server.FindPlayer(notFound.Name)
	if !ok || o.registry.HasPlayer(info.MAC) {
		return nil, err
	}
	attached := o.registry.AttachOnTheFly(s.ID, info.MAC, notFound.Name)
	if attached == nil {
		return nil, err
	}
	o.logger.Info("attached on-the-fly device", "site", s.ID, "name", notFound.Name, "mac", info.MAC)
	return attached, nil
}

// HandleConnectResult processes a bluetooth connect answer from the site
// that owns the device. It always refreshes the owning site's topology;
// cycle bookkeeping only happens when an answer is actually awaited.
func (o *Orchestrator) HandleConnectResult(ownerSiteID string, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.publish(o.topics.SiteRequest(ownerSiteID, mqtt.OpSiteInfo), nil)

	p := o.pending[ownerSiteID]
	if p == nil {
		return
	}
	delete(o.pending, ownerSiteID)
	o.registry.SetBluetoothConnected(p.device, ok)

	c := o.cycles[p.requestSiteID]
	if c == nil {
		return
	}
	c.connect = removeDevice(c.connect, p.device)

	if !ok {
		o.logger.Warn("bluetooth connect failed", "site", ownerSiteID, "device", p.device.Name)
		o.abandon(p.requestSiteID, p.device, fmt.Sprintf(textBluetoothFailed, o.roomName(ownerSiteID)))
		return
	}
	if len(c.connect) > 0 {
		return
	}

	o.logger.Debug("connection queue drained", "site", p.requestSiteID)
	if len(c.service) > 0 {
		o.issueServiceRequests(c)
		return
	}
	o.finishAsync(c)
}

// HandleServiceResult processes a squeezelite service-start answer from the
// site that owns the device.
func (o *Orchestrator) HandleServiceResult(ownerSiteID string, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p := o.pending[ownerSiteID]
	if p == nil {
		return
	}
	delete(o.pending, ownerSiteID)

	c := o.cycles[p.requestSiteID]
	if c == nil {
		return
	}
	c.service = removeDevice(c.service, p.device)

	if !ok {
		o.logger.Warn("service start failed", "site", ownerSiteID, "device", p.device.Name)
		o.abandon(p.requestSiteID, p.device, fmt.Sprintf(textServiceFailed, o.roomName(ownerSiteID)))
		return
	}
	if !p.device.Player.Connected() {
		o.logger.Warn("service started but player not registered", "site", ownerSiteID, "device", p.device.Name)
		o.abandon(p.requestSiteID, p.device, fmt.Sprintf(textServiceNotRegistered, o.roomName(ownerSiteID)))
		return
	}
	if owner := o.registry.Lookup(ownerSiteID); owner != nil {
		o.activate(owner, p.device)
	}
	if len(c.service) > 0 {
		return
	}

	o.logger.Debug("service queue drained", "site", p.requestSiteID)
	o.finishAsync(c)
}

// HandleBluetoothDisconnect processes an unsolicited disconnect event. The
// site's squeezelite service is stopped and its topology refreshed; an
// on-the-fly device disappears from the registry.
func (o *Orchestrator) HandleBluetoothDisconnect(siteID, addr string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.publish(o.topics.SiteRequest(siteID, mqtt.OpSiteInfo), nil)
	o.publish(o.topics.SiteRequest(siteID, mqtt.OpServiceStop), nil)

	s := o.registry.Lookup(siteID)
	if s == nil {
		return
	}
	_, device := o.registry.OwnerOf(addr)
	if device == nil || device.SiteID != siteID {
		return
	}
	o.logger.Info("bluetooth device disconnected", "site", siteID, "device", device.Name)
	o.registry.SetBluetoothConnected(device, false)
	o.registry.ClearActiveDevice(s, device)
	if device.OnTheFly {
		o.registry.DetachOnTheFly(device)
	}
}

// issueConnectRequests publishes one connect request per queued device and
// records the pending answer under the owning site.
func (o *Orchestrator) issueConnectRequests(c *cycle) {
	for _, device := range c.connect {
		o.pending[device.SiteID] = &pendingBringUp{
			requestSiteID: c.target.RequestSiteID,
			device:        device,
		}
		o.publishJSON(o.topics.BluetoothRequest(device.SiteID, mqtt.OpDeviceConnect), ConnectRequest{
			Addr:  device.Bluetooth.Addr,
			Tries: connectTries,
		})
		o.logger.Debug("requested bluetooth connect", "site", device.SiteID, "device", device.Name)
	}
}

// issueServiceRequests publishes one service-start request per queued
// device.
func (o *Orchestrator) issueServiceRequests(c *cycle) {
	for _, device := range c.service {
		o.pending[device.SiteID] = &pendingBringUp{
			requestSiteID: c.target.RequestSiteID,
			device:        device,
		}
		o.publishJSON(o.topics.SiteRequest(device.SiteID, mqtt.OpServiceStart), ServiceStartRequest{
			Server:     o.server.Host(),
			SqueezeMAC: device.MAC,
			Soundcard:  device.Soundcard,
			Name:       o.clientName(device),
		})
		o.logger.Debug("requested service start", "site", device.SiteID, "device", device.Name)
	}
}

// clientName builds the server-side player name: room, area when the
// installation spans more than one area, and the device's first synonym or
// its name.
func (o *Orchestrator) clientName(device *site.Device) string {
	name := ""
	if s := o.registry.Lookup(device.SiteID); s != nil {
		name = s.RoomName
		if len(o.registry.Areas()) > 1 {
			name += "-" + s.Area
		}
	}
	if len(device.Synonyms) > 0 {
		return name + "-" + device.Synonyms[0]
	}
	return name + "-" + device.Name
}

// finish activates the candidate devices and dispatches the deferred
// action. The cycle is over either way.
func (o *Orchestrator) finish(c *cycle) error {
	delete(o.cycles, c.target.RequestSiteID)
	for _, device := range c.candidates {
		if s := o.registry.Lookup(device.SiteID); s != nil {
			o.activate(s, device)
		}
	}
	if o.dispatcher == nil {
		return errors.New("readiness: no dispatcher configured")
	}
	o.logger.Debug("dispatching deferred action", "site", c.target.RequestSiteID, "kind", c.action.Kind)
	return o.dispatcher.Dispatch(c.action)
}

// finishAsync is finish for cycles completed by a satellite answer: there
// is no caller to return the error to, so it is spoken at the requesting
// site.
func (o *Orchestrator) finishAsync(c *cycle) {
	if err := o.finish(c); err != nil {
		o.notify(c.target.RequestSiteID, err.Error())
	}
}

// activate makes device the site's active device. A previously active
// device that was playing is paused and loses its auto-pause flag. The
// player calls happen outside the registry lock.
func (o *Orchestrator) activate(s *site.Site, device *site.Device) {
	prev := o.registry.SetActiveDevice(s, device)
	if prev != nil && prev.Player.Connected() && prev.Player.Mode() == "play" {
		prev.Player.Pause()
	}
}

// abandon tears the requester's cycle down after an unrecoverable bring-up
// failure and reports it. An on-the-fly device that never became ready is
// detached again.
func (o *Orchestrator) abandon(requestSiteID string, device *site.Device, text string) {
	delete(o.cycles, requestSiteID)
	if device.OnTheFly {
		o.registry.DetachOnTheFly(device)
	}
	o.notify(requestSiteID, text)
}

func (o *Orchestrator) notify(siteID, text string) {
	if err := o.notifier.Notify(siteID, text); err != nil {
		o.logger.Error("notification failed", "site", siteID, "err", err)
	}
}

func (o *Orchestrator) roomName(siteID string) string {
	if s := o.registry.Lookup(siteID); s != nil {
		return s.RoomName
	}
	return siteID
}

func (o *Orchestrator) publishJSON(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		o.logger.Error("encoding request failed", "topic", topic, "err", err)
		return
	}
	o.publish(topic, data)
}

func (o *Orchestrator) publish(topic string, payload []byte) {
	if err := o.pub.Publish(topic, payload, o.qos, false); err != nil {
		o.logger.Error("publish failed", "topic", topic, "err", err)
	}
}

func removeDevice(queue []*site.Device, device *site.Device) []*site.Device {
	for i, d := range queue {
		if d == device {
			return append(queue[:i], queue[i+1:]...)
		}
	}
	return queue
}

package assistant

import (
	"context"
	"fmt"
	"sync"

	"github.com/tonraum/tonraum-core/internal/actions"
	"github.com/tonraum/tonraum-core/internal/hermes"
	"github.com/tonraum/tonraum-core/internal/infrastructure/mqtt"
	"github.com/tonraum/tonraum-core/internal/site"
)

// Short intent names handled by the assistant. On the wire they carry the
// configured voice-model username as prefix ("{username}:tonraumMusic").
const (
	intentMusic         = "tonraumMusic"
	intentPodcast       = "tonraumPodcast"
	intentRadio         = "tonraumRadio"
	intentPlayerPlay    = "tonraumPlayerPlay"
	intentPlayerPause   = "tonraumPlayerPause"
	intentPlayerVolume  = "tonraumPlayerVolume"
	intentPlayerSync    = "tonraumPlayerSync"
	intentPlayerInfo    = "tonraumPlayerInfo"
	intentQueueNext     = "tonraumQueueNext"
	intentQueuePrevious = "tonraumQueuePrevious"
	intentQueueRestart  = "tonraumQueueRestart"
	intentInjectNames   = "tonraumInjectNames"
)

// MQTTClient is the transport surface the assistant needs.
// Satisfied by *mqtt.Client.
type MQTTClient interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Orchestrator consumes satellite bring-up answers.
// Satisfied by *readiness.Orchestrator.
type Orchestrator interface {
	HandleConnectResult(siteID string, ok bool)
	HandleServiceResult(siteID string, ok bool)
	HandleBluetoothDisconnect(siteID, addr string)
}

// Dialog is the dialogue-manager surface the assistant needs.
// Satisfied by *hermes.Dialogue.
type Dialog interface {
	EndSession(sessionID, text string) error
	Notify(siteID, text string) error
	PerformInjection(requestID string, operations []hermes.InjectionOperation) error
}

// EventRecorder receives domain events for history storage. Implementations
// must not block. Satisfied by *influxdb.Recorder.
type EventRecorder interface {
	RecordIntent(intent, siteID string)
	RecordBringUp(siteID, op string, ok bool)
}

type noopRecorder struct{}

func (noopRecorder) RecordIntent(string, string)       {}
func (noopRecorder) RecordBringUp(string, string, bool) {}

// Logger is the logging interface consumed by the assistant.
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

// Config holds the assistant settings.
type Config struct {
	// Username is the voice-model username prefixing every intent name.
	Username string

	// QoS is the quality-of-service level for subscriptions and publishes.
	QoS byte
}

// newRequestID produces injection correlation IDs, swapped out in tests.
var newRequestID = defaultRequestID

// Assistant routes voice intents and satellite answers. Create with New,
// then call Start once the MQTT client is connected.
type Assistant struct {
	cfg      Config
	client   MQTTClient
	topics   mqtt.Topics
	registry *site.Registry
	orch     Orchestrator
	handlers *actions.Handlers
	dialogue Dialog
	repo     site.Repository
	events   EventRecorder
	logger   Logger

	mu         sync.Mutex
	injections map[string]string // injection request ID -> requesting site
}

// New creates an assistant. repo may be nil (no snapshot persistence) and
// events may be nil (no history recording).
func New(cfg Config, client MQTTClient, registry *site.Registry, orch Orchestrator, handlers *actions.Handlers, dialogue Dialog, repo site.Repository, events EventRecorder) *Assistant {
	if events == nil {
		events = noopRecorder{}
	}
	return &Assistant{
		cfg:        cfg,
		client:     client,
		registry:   registry,
		orch:       orch,
		handlers:   handlers,
		dialogue:   dialogue,
		repo:       repo,
		events:     events,
		logger:     noopLogger{},
		injections: make(map[string]string),
	}
}

// SetLogger installs a logger. Must be called before Start.
func (a *Assistant) SetLogger(l Logger) {
	if l != nil {
		a.logger = l
	}
}

// Start restores persisted topology, subscribes to all inbound topics and
// asks every satellite for a fresh topology snapshot.
func (a *Assistant) Start(ctx context.Context) error {
	if a.repo != nil {
		snapshots, err := a.repo.LoadAll(ctx)
		if err != nil {
			a.logger.Warn("restoring topology snapshots failed", "err", err)
		}
		for _, snap := range snapshots {
			a.registry.UpsertSite(snap)
		}
		if len(snapshots) > 0 {
			a.logger.Info("topology restored from snapshots", "sites", len(snapshots))
		}
	}

	subscriptions := map[string]mqtt.MessageHandler{
		a.topics.AllIntents():                              a.handleIntent,
		a.topics.SessionStarted():                          a.handleSessionStarted,
		a.topics.SessionEnded():                            a.handleSessionEnded,
		a.topics.InjectionComplete():                       a.handleInjectionComplete,
		a.topics.SqueezeboxAnswer(mqtt.OpSiteInfo):         a.handleSiteInfo,
		a.topics.SqueezeboxAnswer(mqtt.OpServiceStart):     a.handleServiceStart,
		a.topics.BluetoothAnswer(mqtt.OpDeviceConnect):     a.handleDeviceConnect,
		a.topics.BluetoothAnswer(mqtt.OpDeviceDisconnect):  a.handleDeviceDisconnect,
		a.topics.BluetoothAnswer(mqtt.OpDeviceRemove):      a.handleDeviceDisconnect,
	}
	for topic, handler := range subscriptions {
		if err := a.client.Subscribe(topic, a.cfg.QoS, handler); err != nil {
			return fmt.Errorf("assistant: subscribing %s: %w", topic, err)
		}
	}

	if err := a.client.Publish(a.topics.AllSitesRequest(mqtt.OpSiteInfo), nil, a.cfg.QoS, false); err != nil {
		return fmt.Errorf("assistant: requesting site info: %w", err)
	}
	a.logger.Info("assistant started", "username", a.cfg.Username)
	return nil
}

// handleIntent parses and routes one recognised intent.
func (a *Assistant) handleIntent(topic string, payload []byte) error {
	msg, err := hermes.ParseIntent(payload)
	if err != nil {
		return err
	}
	if a.cfg.Username != "" && hermes.Username(msg.Intent.Name) != a.cfg.Username {
		return nil
	}
	name := hermes.ShortName(msg.Intent.Name)
	slots := msg.ExtractSlots()
	a.logger.Debug("intent received", "intent", name, "site", msg.SiteID)
	a.events.RecordIntent(name, msg.SiteID)

	switch name {
	case intentMusic:
		a.noAutostartAfterSession(msg.SiteID)
		a.endSession(msg.SessionID, a.handlers.Music(slots, msg.SiteID))

	case intentPodcast:
		a.noAutostartAfterSession(msg.SiteID)
		a.endSession(msg.SessionID, a.handlers.Podcast(slots, msg.SiteID))

	case intentRadio:
		a.noAutostartAfterSession(msg.SiteID)
		a.endSession(msg.SessionID, a.handlers.Radio(slots, msg.SiteID))

	case intentPlayerPlay:
		a.noAutostartAfterSession(msg.SiteID)
		a.endSession(msg.SessionID, a.handlers.Play(slots, msg.SiteID))

	case intentPlayerPause:
		a.handlers.Pause(slots, msg.SiteID)
		a.endSession(msg.SessionID, nil)

	case intentPlayerVolume:
		a.handlers.Volume(slots, msg.SiteID)
		a.endSession(msg.SessionID, nil)

	case intentPlayerSync:
		a.endSession(msg.SessionID, a.handlers.Sync(slots, msg.SiteID))

	case intentPlayerInfo:
		text, err := a.handlers.Info(slots, msg.SiteID)
		if err != nil {
			a.endSession(msg.SessionID, err)
		} else {
			a.speak(msg.SessionID, text)
		}

	case intentQueueNext:
		a.handlers.Next(slots, msg.SiteID)
		a.endSession(msg.SessionID, nil)

	case intentQueuePrevious:
		a.handlers.Previous(slots, msg.SiteID)
		a.endSession(msg.SessionID, nil)

	case intentQueueRestart:
		a.handlers.Restart(slots, msg.SiteID)
		a.endSession(msg.SessionID, nil)

	case intentInjectNames:
		a.handleInjectNames(msg, slots)
	}
	return nil
}

// endSession closes the intent's session, speaking err when non-nil.
func (a *Assistant) endSession(sessionID string, err error) {
	text := ""
	if err != nil {
		text = err.Error()
	}
	if err := a.dialogue.EndSession(sessionID, text); err != nil {
		a.logger.Error("ending session failed", "err", err)
	}
}

// speak closes the session with a spoken text.
func (a *Assistant) speak(sessionID, text string) {
	if err := a.dialogue.EndSession(sessionID, text); err != nil {
		a.logger.Error("ending session failed", "err", err)
	}
}

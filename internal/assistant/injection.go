package assistant

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/tonraum/tonraum-core/internal/hermes"
)

// injectionDone is spoken at the requesting site once the voice model has
// learned the new names.
const injectionDone = "Das Einlesen wurde erfolgreich abgeschlossen."

func defaultRequestID() string {
	return uuid.NewString()
}

// handleInjectNames collects the requested catalogue and topology names and
// asks the intent engine to learn them. Injection takes a while; the
// session ends immediately and completion arrives as a notification.
func (a *Assistant) handleInjectNames(msg *hermes.IntentMessage, slots hermes.Slots) {
	a.endSession(msg.SessionID, nil)

	operations, err := a.handlers.InjectionOperations(slots.Str("type"))
	if err != nil {
		if nerr := a.dialogue.Notify(msg.SiteID, err.Error()); nerr != nil {
			a.logger.Error("notification failed", "err", nerr)
		}
		return
	}

	requestID := newRequestID()
	a.mu.Lock()
	a.injections[requestID] = msg.SiteID
	a.mu.Unlock()

	if err := a.dialogue.PerformInjection(requestID, operations); err != nil {
		a.logger.Error("injection request failed", "err", err)
		a.mu.Lock()
		delete(a.injections, requestID)
		a.mu.Unlock()
		return
	}
	a.logger.Info("injection requested", "site", msg.SiteID, "operations", len(operations))
}

// handleInjectionComplete notifies the requesting site that its injection
// finished. Completions for requests this process never issued are ignored.
func (a *Assistant) handleInjectionComplete(topic string, payload []byte) error {
	var complete hermes.InjectionComplete
	if err := json.Unmarshal(payload, &complete); err != nil {
		return err
	}

	a.mu.Lock()
	siteID, ok := a.injections[complete.RequestID]
	delete(a.injections, complete.RequestID)
	a.mu.Unlock()
	if !ok {
		return nil
	}
	return a.dialogue.Notify(siteID, injectionDone)
}

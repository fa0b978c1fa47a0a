package assistant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tonraum/tonraum-core/internal/infrastructure/mqtt"
	"github.com/tonraum/tonraum-core/internal/readiness"
	"github.com/tonraum/tonraum-core/internal/site"
)

// persistTimeout bounds one snapshot write. Persistence is best effort; a
// slow disk must not back up the MQTT handler.
const persistTimeout = 5 * time.Second

// handleSiteInfo merges a topology snapshot from a satellite into the
// registry and persists it.
func (a *Assistant) handleSiteInfo(topic string, payload []byte) error {
	var snap site.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return err
	}
	if snap.SiteID == "" {
		return nil
	}
	a.registry.UpsertSite(snap)

	if a.repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := a.repo.Save(ctx, snap); err != nil {
			a.logger.Warn("persisting topology snapshot failed", "site", snap.SiteID, "err", err)
		}
	}
	return nil
}

// handleServiceStart feeds a squeezelite service-start answer to the
// orchestrator.
func (a *Assistant) handleServiceStart(topic string, payload []byte) error {
	var result readiness.BringUpResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return err
	}
	a.events.RecordBringUp(result.SiteID, mqtt.OpServiceStart, result.Result)
	a.orch.HandleServiceResult(result.SiteID, result.Result)
	return nil
}

// handleDeviceConnect feeds a bluetooth connect answer to the orchestrator.
func (a *Assistant) handleDeviceConnect(topic string, payload []byte) error {
	var result readiness.BringUpResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return err
	}
	a.events.RecordBringUp(result.SiteID, mqtt.OpDeviceConnect, result.Result)
	a.orch.HandleConnectResult(result.SiteID, result.Result)
	return nil
}

// handleDeviceDisconnect feeds an unsolicited bluetooth disconnect (or
// device removal) to the orchestrator.
func (a *Assistant) handleDeviceDisconnect(topic string, payload []byte) error {
	var event readiness.DisconnectEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}
	a.orch.HandleBluetoothDisconnect(event.SiteID, event.Addr)
	return nil
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"creativerse-backend/application/ports"
	"creativerse-backend/pkg/utils"
)

// settingsPrefix namespaces setting keys inside the shared snapshot store
const settingsPrefix = "settings:"

// SettingsHandler persists small client preference blobs (mute state,
// volume, accessibility, tutorial progress) in the snapshot store.
type SettingsHandler struct {
	snapshots ports.SnapshotStore
	logger    *zap.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(snapshots ports.SnapshotStore, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{snapshots: snapshots, logger: logger}
}

// ListSettings handles GET /settings
func (h *SettingsHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	keys, err := h.snapshots.Keys(r.Context())
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	settings := map[string]json.RawMessage{}
	for _, key := range keys {
		if !strings.HasPrefix(key, settingsPrefix) {
			continue
		}
		var value json.RawMessage
		if _, err := h.snapshots.Get(r.Context(), key, &value); err != nil {
			respondAppError(h.logger, w, err)
			return
		}
		settings[strings.TrimPrefix(key, settingsPrefix)] = value
	}
	respondJSON(w, http.StatusOK, settings)
}

// GetSetting handles GET /settings/{key}
func (h *SettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var value json.RawMessage
	found, err := h.snapshots.Get(r.Context(), settingsPrefix+key, &value)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	if !found {
		respondJSON(w, http.StatusOK, map[string]interface{}{"key": key, "value": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"key": key, "value": value})
}

// PutSetting handles PUT /settings/{key}. The body is stored verbatim as
// the setting value.
func (h *SettingsHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var value json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		respondBadRequest(w, "invalid JSON value: "+err.Error())
		return
	}

	if err := h.snapshots.Put(r.Context(), settingsPrefix+key, value); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"key":       key,
		"value":     value,
		"updatedAt": utils.NowRFC3339(),
	})
}

// DeleteSetting handles DELETE /settings/{key}
func (h *SettingsHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.snapshots.Delete(r.Context(), settingsPrefix+key); err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

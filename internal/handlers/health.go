package handlers

import (
	"net/http"

	"github.com/cetadcco/carwash-pos/internal/outbox"
	log "github.com/sirupsen/logrus"
)

// HealthHandler reports liveness and the replication backlog.
type HealthHandler struct {
	outbox *outbox.Store
}

// NewHealthHandler creates a new health handler. The outbox may be nil when
// replication is disabled.
func NewHealthHandler(ob *outbox.Store) *HealthHandler {
	return &HealthHandler{outbox: ob}
}

// Health serves /health with the number of orders still waiting to be
// copied to the replica store.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := map[string]interface{}{"status": "ok"}
	if h.outbox != nil {
		n, err := h.outbox.PendingCount(r.Context())
		if err != nil {
			log.WithError(err).Warn("failed to count pending replications")
		} else {
			resp["pending_replication"] = n
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

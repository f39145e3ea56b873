package travelhandlers

import (
	"context"
	"net/http"
	"time"

	"travelbook/logger"
	"travelbook/models"
	"travelbook/mq"
	"travelbook/travel"
	"travelbook/travelpdf"
	"travelbook/utils"
)

// Handlers serves the travel API. The twin partition always comes from the
// authenticated request, never from the path.
type Handlers struct {
	Repo      *travel.Repository
	Editor    *travel.Editor
	Queries   *travel.Queries
	Documents *travel.Documents
	PDF       *travelpdf.Renderer
	Events    mq.Emitter
	Log       *logger.Logger
}

func twinOrReject(w http.ResponseWriter, r *http.Request) (string, bool) {
	twinID := utils.GetTwinIDFromRequest(r)
	if twinID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing twin id")
		return "", false
	}
	return twinID, true
}

// fail answers with the mapped status and logs store failures.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if utils.StatusFor(err) == http.StatusInternalServerError {
		h.Log.Error("travel request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	utils.RespondWithTravelError(w, err)
}

// emit publishes a change event after the write has committed. Publishing
// never fails the request.
func (h *Handlers) emit(r *http.Request, method, entity, entityID, travelID, itineraryID, twinID string) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 2*time.Second)
	defer cancel()
	evt := models.TravelEvent{
		Method:      method,
		EntityType:  entity,
		EntityID:    entityID,
		TravelID:    travelID,
		ItineraryID: itineraryID,
		TwinID:      twinID,
		At:          time.Now().UTC(),
	}
	if err := h.Events.Emit(ctx, evt); err != nil {
		h.Log.Warn("travel event not published", "entity", entity, "entityId", entityID, "error", err)
	}
}

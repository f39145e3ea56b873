package travelhandlers

import (
	"bytes"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"travelbook/models"
	"travelbook/travel"
	"travelbook/utils"
)

// POST /api/travels
func (h *Handlers) CreateTravel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	var in models.TravelInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	t, err := h.Repo.Create(r.Context(), twinID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventCreated, travel.EntityTravel, t.ID, t.ID, "", twinID)
	utils.RespondWithData(w, http.StatusCreated, t)
}

// GET /api/travels
func (h *Handlers) ListTravels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	q, err := utils.ParseTravelQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := h.Queries.List(r.Context(), twinID, q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, page)
}

// GET /api/travel-stats
func (h *Handlers) TravelStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	q, err := utils.ParseTravelQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	stats, err := h.Queries.Stats(r.Context(), twinID, q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, stats)
}

// GET /api/travels/:travelId
func (h *Handlers) GetTravel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	t, err := h.Repo.Get(r.Context(), ps.ByName("travelId"), twinID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, t)
}

// PUT /api/travels/:travelId
func (h *Handlers) UpdateTravel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	var patch models.TravelPatch
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}
	t, err := h.Repo.Update(r.Context(), ps.ByName("travelId"), twinID, patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventUpdated, travel.EntityTravel, t.ID, t.ID, "", twinID)
	utils.RespondWithData(w, http.StatusOK, t)
}

// DELETE /api/travels/:travelId
func (h *Handlers) DeleteTravel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	t, err := h.Repo.Delete(r.Context(), ps.ByName("travelId"), twinID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventDeleted, travel.EntityTravel, t.ID, t.ID, "", twinID)
	utils.RespondWithData(w, http.StatusOK, t)
}

// GET /api/travels/:travelId/export.pdf
func (h *Handlers) ExportTravelPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	t, err := h.Repo.Get(r.Context(), ps.ByName("travelId"), twinID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := h.PDF.Render(t, &buf); err != nil {
		h.Log.Error("travel pdf failed", "travelId", t.ID, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=travel-"+t.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

package travelhandlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"travelbook/models"
	"travelbook/travel"
	"travelbook/utils"
)

// GET /api/travels/:travelId/itineraries
func (h *Handlers) ListItineraries(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	its, err := h.Editor.ListItineraries(r.Context(), ps.ByName("travelId"), twinID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, its)
}

// GET /api/travels/:travelId/itineraries/:itineraryId
func (h *Handlers) GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	it, err := h.Editor.GetItinerary(r.Context(), ps.ByName("travelId"), twinID, ps.ByName("itineraryId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, it)
}

// POST /api/travels/:travelId/itineraries
func (h *Handlers) AddItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	var in models.ItineraryInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	travelID := ps.ByName("travelId")
	res, err := h.Editor.AddItinerary(r.Context(), travelID, twinID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventCreated, travel.EntityItinerary, res.Itinerary.ID, travelID, res.Itinerary.ID, twinID)
	utils.RespondWithData(w, http.StatusCreated, res)
}

// PUT /api/travels/:travelId/itineraries/:itineraryId
func (h *Handlers) UpdateItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	var patch models.ItineraryPatch
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}
	travelID, itineraryID := ps.ByName("travelId"), ps.ByName("itineraryId")
	res, err := h.Editor.UpdateItinerary(r.Context(), travelID, twinID, itineraryID, patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventUpdated, travel.EntityItinerary, itineraryID, travelID, itineraryID, twinID)
	utils.RespondWithData(w, http.StatusOK, res)
}

// DELETE /api/travels/:travelId/itineraries/:itineraryId
func (h *Handlers) DeleteItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	travelID, itineraryID := ps.ByName("travelId"), ps.ByName("itineraryId")
	res, err := h.Editor.DeleteItinerary(r.Context(), travelID, twinID, itineraryID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventDeleted, travel.EntityItinerary, itineraryID, travelID, itineraryID, twinID)
	utils.RespondWithData(w, http.StatusOK, res)
}

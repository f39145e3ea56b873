package travelhandlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"travelbook/models"
	"travelbook/travel"
	"travelbook/utils"
)

// GET .../itineraries/:itineraryId/activities
func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	activities, err := h.Editor.ListActivities(r.Context(), ps.ByName("travelId"), twinID, ps.ByName("itineraryId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, activities)
}

// GET .../activities/:activityId
func (h *Handlers) GetActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	a, err := h.Editor.GetActivity(r.Context(), ps.ByName("travelId"), twinID, ps.ByName("itineraryId"), ps.ByName("activityId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, a)
}

// POST .../itineraries/:itineraryId/activities
func (h *Handlers) AddActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	var in models.ActivityInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	travelID, itineraryID := ps.ByName("travelId"), ps.ByName("itineraryId")
	res, err := h.Editor.AddActivity(r.Context(), travelID, twinID, itineraryID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventCreated, travel.EntityActivity, res.Activity.ID, travelID, itineraryID, twinID)
	utils.RespondWithData(w, http.StatusCreated, res)
}

// PUT .../activities/:activityId
func (h *Handlers) UpdateActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	var patch models.ActivityPatch
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}
	travelID, itineraryID, activityID := ps.ByName("travelId"), ps.ByName("itineraryId"), ps.ByName("activityId")
	res, err := h.Editor.UpdateActivity(r.Context(), travelID, twinID, itineraryID, activityID, patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventUpdated, travel.EntityActivity, activityID, travelID, itineraryID, twinID)
	utils.RespondWithData(w, http.StatusOK, res)
}

// DELETE .../activities/:activityId
func (h *Handlers) DeleteActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	travelID, itineraryID, activityID := ps.ByName("travelId"), ps.ByName("itineraryId"), ps.ByName("activityId")
	res, err := h.Editor.DeleteActivity(r.Context(), travelID, twinID, itineraryID, activityID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventDeleted, travel.EntityActivity, activityID, travelID, itineraryID, twinID)
	utils.RespondWithData(w, http.StatusOK, res)
}

package travelhandlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"travelbook/models"
	"travelbook/travel"
	"travelbook/utils"
)

// GET .../itineraries/:itineraryId/bookings
func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	bookings, err := h.Editor.ListBookings(r.Context(), ps.ByName("travelId"), twinID, ps.ByName("itineraryId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, bookings)
}

// GET .../bookings/:bookingId
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	b, err := h.Editor.GetBooking(r.Context(), ps.ByName("travelId"), twinID, ps.ByName("itineraryId"), ps.ByName("bookingId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, b)
}

// POST .../itineraries/:itineraryId/bookings
func (h *Handlers) AddBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	var in models.BookingInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	travelID, itineraryID := ps.ByName("travelId"), ps.ByName("itineraryId")
	res, err := h.Editor.AddBooking(r.Context(), travelID, twinID, itineraryID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventCreated, travel.EntityBooking, res.Booking.ID, travelID, itineraryID, twinID)
	utils.RespondWithData(w, http.StatusCreated, res)
}

// PUT .../bookings/:bookingId
func (h *Handlers) UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	var patch models.BookingPatch
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}
	travelID, itineraryID, bookingID := ps.ByName("travelId"), ps.ByName("itineraryId"), ps.ByName("bookingId")
	res, err := h.Editor.UpdateBooking(r.Context(), travelID, twinID, itineraryID, bookingID, patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventUpdated, travel.EntityBooking, bookingID, travelID, itineraryID, twinID)
	utils.RespondWithData(w, http.StatusOK, res)
}

// DELETE .../bookings/:bookingId
func (h *Handlers) DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	travelID, itineraryID, bookingID := ps.ByName("travelId"), ps.ByName("itineraryId"), ps.ByName("bookingId")
	res, err := h.Editor.DeleteBooking(r.Context(), travelID, twinID, itineraryID, bookingID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventDeleted, travel.EntityBooking, bookingID, travelID, itineraryID, twinID)
	utils.RespondWithData(w, http.StatusOK, res)
}

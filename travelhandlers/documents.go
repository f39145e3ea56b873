package travelhandlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"travelbook/models"
	"travelbook/travel"
	"travelbook/utils"
)

// POST /api/travels/:travelId/documents
func (h *Handlers) AddDocument(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	var in models.DocumentInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	travelID := ps.ByName("travelId")
	doc, err := h.Documents.Add(r.Context(), twinID, travelID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.emit(r, models.EventCreated, travel.EntityDocument, doc.ID, travelID, "", twinID)
	utils.RespondWithData(w, http.StatusCreated, doc)
}

// GET /api/travels/:travelId/documents
func (h *Handlers) ListDocuments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	docs, err := h.Documents.List(r.Context(), twinID, ps.ByName("travelId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, docs)
}

// GET /api/travel-documents/stats?travelId=
func (h *Handlers) DocumentStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	twinID, ok := twinOrReject(w, r)
	if !ok {
		return
	}
	stats, err := h.Documents.Stats(r.Context(), twinID, r.URL.Query().Get("travelId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, stats)
}

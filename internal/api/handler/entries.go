package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gildedernacht/olymp/internal/api/apierr"
	"github.com/gildedernacht/olymp/internal/api/middleware"
	"github.com/gildedernacht/olymp/internal/api/request"
	"github.com/gildedernacht/olymp/internal/api/response"
	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/services/entries"
)

// EntryHandler handles resource and entry endpoints
type EntryHandler struct {
	service *entries.Service
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(service *entries.Service) *EntryHandler {
	return &EntryHandler{service: service}
}

// Resources handles GET /resources
func (h *EntryHandler) Resources(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.Resources(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ResourcesFromModel(summaries))
}

// List handles GET /resources/{uid}/entries
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	log, err := h.service.List(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EntriesFromModel(log, middleware.IsAdmin(r.Context())))
}

// Add handles POST /resources/{uid}/entries
func (h *EntryHandler) Add(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, apierr.NewPayloadTooLargeError())
			return
		}
		WriteError(w, NewInvalidRequestError("unreadable request body"))
		return
	}

	var req request.AddEntryRequest
	if err := json.Unmarshal(data, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	meta := model.EntryMeta{
		URL:       r.Header.Get("Referer"),
		UserAgent: r.UserAgent(),
	}

	entry, err := h.service.Append(r.Context(), mux.Vars(r)["uid"], req.PublicBody, req.PrivateBody, meta)
	if err != nil {
		WriteError(w, err)
		return
	}

	location := "/resources/" + entry.ResourceUID + "/entries/" + entry.EntryUID
	response.Created(w, location, response.EntryCreated{
		EntryUID: entry.EntryUID,
		Sequence: entry.Sequence,
	})
}

// Get handles GET /resources/{uid}/entries/{entryUid}
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entry, err := h.service.Get(r.Context(), vars["uid"], vars["entryUid"])
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EntryFromModel(entry, true))
}

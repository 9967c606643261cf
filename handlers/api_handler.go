package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"leetStats/services"
)

// APIHandler exposes the same lookups as JSON.
type APIHandler struct {
	profiles  StatsLookup
	assistant Assistant
}

func NewAPIHandler(profiles StatsLookup, assistant Assistant) *APIHandler {
	return &APIHandler{
		profiles:  profiles,
		assistant: assistant,
	}
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	HTML string `json:"html"`
}

func (h *APIHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), lookupTimeout)
	defer cancel()

	record, err := h.profiles.Lookup(ctx, mux.Vars(r)["username"])
	if err != nil {
		respondWithError(w, lookupStatus(err), services.UserMessage(err))
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

func (h *APIHandler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), askTimeout)
	defer cancel()

	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := h.assistant.Ask(ctx, req.Question)
	switch {
	case err == nil:
		respondWithJSON(w, http.StatusOK, askResponse{HTML: string(answer)})
	case errors.Is(err, services.ErrEmptyQuestion):
		respondWithError(w, http.StatusBadRequest, services.UserMessage(err))
	case errors.Is(err, services.ErrAssistantDisabled):
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
	default:
		respondWithError(w, http.StatusBadGateway, "Gemini error: "+err.Error())
	}
}

func lookupStatus(err error) int {
	var fetchErr *services.FetchError
	var normErr *services.NormalizeError
	switch {
	case errors.Is(err, services.ErrEmptyUsername):
		return http.StatusBadRequest
	case errors.As(err, &normErr):
		return http.StatusNotFound
	case errors.As(err, &fetchErr) && fetchErr.Kind == services.FetchExhausted:
		return http.StatusServiceUnavailable
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

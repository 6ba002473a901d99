package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"rentvsbuy/domain"
	"rentvsbuy/service"
)

const defaultHistoryLimit = 20

type SimulationHandler struct {
	service *service.SimulationService
	log     zerolog.Logger
}

func NewSimulationHandler(service *service.SimulationService, log zerolog.Logger) *SimulationHandler {
	return &SimulationHandler{
		service: service,
		log:     log.With().Str("component", "http").Logger(),
	}
}

// simulateResponse is the wire shape of a result: the comparison plus the
// formatted verdict line clients print as-is.
type simulateResponse struct {
	domain.SimulationResult
	Verdict string `json:"verdict"`
}

// Simulate runs a rent-vs-buy comparison for the posted parameter set.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var params domain.SimulationParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Simulate(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, simulateResponse{
		SimulationResult: result,
		Verdict:          result.Verdict(),
	})
}

// Defaults returns the reference parameter set for clients to edit, since
// JSON cannot distinguish an omitted rate from an explicit zero.
func (h *SimulationHandler) Defaults(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, service.DefaultParameters())
}

// History lists recent runs, newest first. Accepts ?limit=N.
func (h *SimulationHandler) History(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records := h.service.History(limit)
	if records == nil {
		records = []domain.SimulationRecord{}
	}
	h.writeJSON(w, records)
}

func (h *SimulationHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
	}
}

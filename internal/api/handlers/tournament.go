package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/casey/kickball-cup/internal/api/middleware"
	"github.com/casey/kickball-cup/internal/domain"
	"github.com/casey/kickball-cup/internal/metrics"
	"github.com/casey/kickball-cup/internal/service"
	"github.com/casey/kickball-cup/internal/websocket"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	tournaments *service.TournamentService
	sessions    *service.SessionService
	hub         *websocket.Hub
	log         *slog.Logger
}

func NewTournamentHandler(tournaments *service.TournamentService, sessions *service.SessionService, hub *websocket.Hub, log *slog.Logger) *TournamentHandler {
	return &TournamentHandler{
		tournaments: tournaments,
		sessions:    sessions,
		hub:         hub,
		log:         log,
	}
}

// StateResponse is returned by every tournament endpoint: the snapshot plus
// the phase the client should route to.
type StateResponse struct {
	Phase domain.Phase            `json:"phase"`
	State *domain.TournamentState `json:"state"`
}

type RegisterPlayerRequest struct {
	Name string `json:"name"`
}

type CastVoteRequest struct {
	ChoiceA string `json:"choiceA"`
	ChoiceB string `json:"choiceB"`
}

type TeamNamesRequest struct {
	Name1 string `json:"name1"`
	Name2 string `json:"name2"`
}

type DraftPickRequest struct {
	Player string `json:"player"`
}

type SavePairingsRequest struct {
	Captain int        `json:"captain"` // 1 or 2
	Groups  [][]string `json:"groups"`
}

type CreateMatchesRequest struct {
	Pairs []service.MatchPairInput `json:"pairs"`
}

type RecordResultRequest struct {
	Result string `json:"result"`
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.tournaments.Snapshot(r.Context())
	if err != nil {
		h.log.Error("failed to load snapshot", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeState(w, state)
}

func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.tournaments.ComputeStandings(r.Context())
	if err != nil {
		h.log.Error("failed to compute standings", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(standings)
}

func (h *TournamentHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return
	}

	var req RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.Name)

	state, err := h.tournaments.RegisterPlayer(r.Context(), caller, name)
	if err == nil {
		// Bind the session to its player so later votes carry the identity.
		bound := h.sessions.BindPlayer(caller, name)
		if cookieErr := middleware.SetSessionCookie(w, h.sessions, bound); cookieErr != nil {
			h.log.Error("failed to rebind session", "error", cookieErr)
		}
	}

	h.finish(w, "register_player", state, err)
}

func (h *TournamentHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetCaller(r.Context())
	name := chi.URLParam(r, "name")

	state, err := h.tournaments.RemovePlayer(r.Context(), caller, name)
	h.finish(w, "remove_player", state, err)
}

func (h *TournamentHandler) CompleteRegistration(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetCaller(r.Context())

	state, err := h.tournaments.CompleteRegistration(r.Context(), caller)
	h.finish(w, "complete_registration", state, err)
}

func (h *TournamentHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return
	}

	var req CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.tournaments.CastVote(r.Context(), caller, req.ChoiceA, req.ChoiceB)
	h.finish(w, "cast_vote", state, err)
}

func (h *TournamentHandler) FinalizeCaptains(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetCaller(r.Context())

	state, err := h.tournaments.FinalizeCaptains(r.Context(), caller)
	h.finish(w, "finalize_captains", state, err)
}

func (h *TournamentHandler) SaveTeamNames(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetCaller(r.Context())

	var req TeamNamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.tournaments.SaveTeamNames(r.Context(), caller, strings.TrimSpace(req.Name1), strings.TrimSpace(req.Name2))
	h.finish(w, "save_team_names", state, err)
}

func (h *TournamentHandler) DraftPick(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetCaller(r.Context())

	var req DraftPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.tournaments.DraftPick(r.Context(), caller, req.Player)
	h.finish(w, "draft_pick", state, err)
}

func (h *TournamentHandler) SavePairings(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetCaller(r.Context())

	var req SavePairingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.tournaments.SavePairings(r.Context(), caller, req.Captain, req.Groups)
	h.finish(w, "save_pairings", state, err)
}

func (h *TournamentHandler) CreateMatches(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetCaller(r.Context())

	var req CreateMatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.tournaments.CreateMatches(r.Context(), caller, req.Pairs)
	h.finish(w, "create_matches", state, err)
}

func (h *TournamentHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetCaller(r.Context())

	matchID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid match id", http.StatusBadRequest)
		return
	}

	var req RecordResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.tournaments.RecordResult(r.Context(), caller, matchID, domain.MatchResult(req.Result))
	h.finish(w, "record_result", state, err)
}

func (h *TournamentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetCaller(r.Context())

	state, err := h.tournaments.Reset(r.Context(), caller)
	h.finish(w, "reset", state, err)
}

// finish maps the engine result onto the wire. Rejections stay silent: the
// caller gets the unchanged snapshot and routes back to the same view, while
// the reason lands in metrics and the service log. Only infrastructure
// failures surface as errors.
func (h *TournamentHandler) finish(w http.ResponseWriter, action string, state *domain.TournamentState, err error) {
	if err != nil {
		if domain.IsRejection(err) && state != nil {
			metrics.RejectionsTotal.WithLabelValues(action, domain.RejectionReason(err)).Inc()
			writeState(w, state)
			return
		}
		h.log.Error("action failed", "action", action, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	metrics.ActionsTotal.WithLabelValues(action).Inc()
	h.hub.BroadcastState(state)
	writeState(w, state)
}

func writeState(w http.ResponseWriter, state *domain.TournamentState) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StateResponse{
		Phase: state.Phase,
		State: state,
	})
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"weddingWager/models"
	"weddingWager/services/betService"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type handler struct {
	router *mux.Router
	db     *gorm.DB
	logger *logrus.Logger
}

func (h *handler) initRouter(m *middleware) {
	api := h.router.PathPrefix("/api").Subrouter()
	api.Use(m.populate()...)

	api.HandleFunc("/bets", h.listBets).Methods("GET")
	api.HandleFunc("/bets", h.createBet).Methods("POST")
	api.HandleFunc("/bets/seed", h.seedBets).Methods("POST")
	api.HandleFunc("/bets/{id:[0-9]+}", h.getBet).Methods("GET")
	api.HandleFunc("/bets/{id:[0-9]+}/settle", h.settleBet).Methods("POST")
	api.HandleFunc("/bets/{id:[0-9]+}/wagers", h.placeWager).Methods("POST")
	api.HandleFunc("/bets/{id:[0-9]+}/wagers", h.cancelWager).Methods("DELETE")
	api.HandleFunc("/parlays", h.placeParlay).Methods("POST")
	api.HandleFunc("/me", h.me).Methods("GET")
	api.HandleFunc("/me/wagers", h.myWagers).Methods("GET")
	api.HandleFunc("/me/parlays", h.myParlays).Methods("GET")

	h.router.PathPrefix("/").HandlerFunc(h.defaultHandler)
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *handler) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

func betIDFrom(r *http.Request) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id)
}

func (h *handler) listBets(w http.ResponseWriter, r *http.Request) {
	var bets []models.Bet
	err := h.db.Preload("Options").Order("created_at DESC").Find(&bets).Error
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, bets, http.StatusOK)
}

func (h *handler) getBet(w http.ResponseWriter, r *http.Request) {
	var bet models.Bet
	result := h.db.Preload("Options").Limit(1).Find(&bet, betIDFrom(r))
	if result.Error != nil {
		sendServiceError(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(w, "bet not found", http.StatusNotFound)
		return
	}
	sendJSON(w, bet, http.StatusOK)
}

type createBetRequest struct {
	Question    string     `json:"question"`
	OutcomeType string     `json:"type"`
	Options     []string   `json:"options"`
	RangeMin    *int64     `json:"rangeMin"`
	RangeMax    *int64     `json:"rangeMax"`
	Icon        string     `json:"icon"`
	LocksAt     *time.Time `json:"locksAt"`
}

func (h *handler) createBet(w http.ResponseWriter, r *http.Request) {
	if !userFrom(r).IsAdmin {
		sendErrorResponse(w, "admin only", http.StatusForbidden)
		return
	}
	var req createBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	bet, err := betService.CreateBet(h.db, betService.BetInput{
		Question:    req.Question,
		OutcomeType: req.OutcomeType,
		Options:     req.Options,
		RangeMin:    req.RangeMin,
		RangeMax:    req.RangeMax,
		Icon:        req.Icon,
		LocksAt:     req.LocksAt,
	})
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, bet, http.StatusCreated)
}

func (h *handler) seedBets(w http.ResponseWriter, r *http.Request) {
	if !userFrom(r).IsAdmin {
		sendErrorResponse(w, "admin only", http.StatusForbidden)
		return
	}
	if err := betService.SeedInitialBets(h.db); err != nil {
		sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type settleBetRequest struct {
	WinningOutcome any `json:"winningOutcome"`
}

func (h *handler) settleBet(w http.ResponseWriter, r *http.Request) {
	if !userFrom(r).IsAdmin {
		sendErrorResponse(w, "admin only", http.StatusForbidden)
		return
	}
	var req settleBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WinningOutcome == nil {
		sendErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	summary, err := betService.ResolveBet(h.db, h.logger, betIDFrom(r), req.WinningOutcome)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, summary, http.StatusOK)
}

type placeWagerRequest struct {
	Outcome any   `json:"outcome"`
	Amount  int64 `json:"amount"`
}

func (h *handler) placeWager(w http.ResponseWriter, r *http.Request) {
	var req placeWagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Outcome == nil {
		sendErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	wager, err := betService.PlaceWager(h.db, userFrom(r).ID, betIDFrom(r), req.Outcome, req.Amount)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, wager, http.StatusCreated)
}

func (h *handler) cancelWager(w http.ResponseWriter, r *http.Request) {
	if err := betService.CancelWager(h.db, userFrom(r).ID, betIDFrom(r)); err != nil {
		sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type placeParlayRequest struct {
	Legs   []betService.ParlayLegInput `json:"legs"`
	Amount int64                       `json:"amount"`
}

func (h *handler) placeParlay(w http.ResponseWriter, r *http.Request) {
	var req placeParlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	parlay, err := betService.PlaceParlay(h.db, userFrom(r).ID, req.Legs, req.Amount)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, parlay, http.StatusCreated)
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, userFrom(r), http.StatusOK)
}

func (h *handler) myWagers(w http.ResponseWriter, r *http.Request) {
	var wagers []models.Wager
	err := h.db.Preload("Bet").Preload("Bet.Options").
		Where("user_id = ?", userFrom(r).ID).
		Order("created_at DESC").
		Find(&wagers).Error
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, wagers, http.StatusOK)
}

func (h *handler) myParlays(w http.ResponseWriter, r *http.Request) {
	var parlays []models.Parlay
	err := h.db.Preload("Legs").Preload("Legs.Bet").
		Where("user_id = ?", userFrom(r).ID).
		Order("created_at DESC").
		Find(&parlays).Error
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, parlays, http.StatusOK)
}

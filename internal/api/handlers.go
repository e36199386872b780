package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/portfolio-service/internal/charts"
	"github.com/cryptofolio/portfolio-service/internal/database"
	"github.com/cryptofolio/portfolio-service/internal/models"
	"github.com/cryptofolio/portfolio-service/internal/notify"
	"github.com/cryptofolio/portfolio-service/internal/portfolio"
	"github.com/cryptofolio/portfolio-service/internal/prices"
	"github.com/cryptofolio/portfolio-service/internal/recommendation"
	"github.com/cryptofolio/portfolio-service/internal/report"
)

const defaultHistoryLimit = 100

// Handler holds dependencies for HTTP handlers
type Handler struct {
	db          *database.DB
	portfolio   *portfolio.Service
	recommender *recommendation.Service
	prices      *prices.Service
	charts      *charts.Renderer
	publisher   *notify.Publisher
	log         zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(
	db *database.DB,
	portfolioSvc *portfolio.Service,
	recommender *recommendation.Service,
	priceSvc *prices.Service,
	chartRenderer *charts.Renderer,
	publisher *notify.Publisher,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		db:          db,
		portfolio:   portfolioSvc,
		recommender: recommender,
		prices:      priceSvc,
		charts:      chartRenderer,
		publisher:   publisher,
		log:         log.With().Str("component", "api").Logger(),
	}
}

// CreateTransaction handles POST /users/{id}/transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		CoinName string          `json:"coin_name"`
		Symbol   string          `json:"symbol"`
		Amount   decimal.Decimal `json:"amount"`
		Price    decimal.Decimal `json:"price"`
		Type     string          `json:"type"`
		Exchange string          `json:"exchange"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Symbol == "" || req.CoinName == "" {
		http.Error(w, "coin_name and symbol are required", http.StatusBadRequest)
		return
	}
	if req.Type != models.TransactionTypeBuy && req.Type != models.TransactionTypeSell {
		http.Error(w, "type must be buy or sell", http.StatusBadRequest)
		return
	}
	if req.Amount.Sign() <= 0 || req.Price.Sign() <= 0 {
		http.Error(w, "amount and price must be positive", http.StatusBadRequest)
		return
	}

	if err := h.db.EnsureUser(userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	transaction := &models.Transaction{
		UserID:   userID,
		CoinName: req.CoinName,
		Symbol:   req.Symbol,
		Amount:   req.Amount,
		Price:    req.Price,
		Type:     req.Type,
		Exchange: req.Exchange,
	}
	if err := h.db.CreateTransaction(transaction); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishTransactionRecorded(r.Context(), transaction); err != nil {
			h.log.Warn().Err(err).Int64("user", userID).Msg("failed to publish transaction event")
		}
	}

	respondJSON(w, http.StatusCreated, transaction)
}

// GetTransactions handles GET /users/{id}/transactions
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	transactions, err := h.db.GetTransactionsByUser(userID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}

	respondJSON(w, http.StatusOK, transactions)
}

// GetPortfolio handles GET /users/{id}/portfolio
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	valuation, err := h.portfolio.Valuate(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, valuation)
}

// GetPortfolioChart handles GET /users/{id}/portfolio/chart
func (h *Handler) GetPortfolioChart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	valuation, err := h.portfolio.Valuate(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	png, err := h.charts.RenderPie(report.ChartData(valuation))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// GetRecommendations handles POST /recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount        decimal.Decimal `json:"amount"`
		DesiredProfit decimal.Decimal `json:"desired_profit"`
		Days          int             `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Amount.Sign() <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if req.Days <= 0 {
		http.Error(w, "days must be positive", http.StatusBadRequest)
		return
	}

	recommendations := h.recommender.Recommend(r.Context(), req.Amount, req.DesiredProfit, req.Days)
	if recommendations == nil {
		recommendations = []models.Recommendation{}
	}

	respondJSON(w, http.StatusOK, recommendations)
}

// SearchCoin handles GET /coins/search?query=
func (h *Handler) SearchCoin(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	coin := h.prices.Search(r.Context(), query)
	if coin == nil {
		http.Error(w, "coin not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, coin)
}

// SetCurrency handles PUT /users/{id}/currency
func (h *Handler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Currency == "" {
		http.Error(w, "currency is required", http.StatusBadRequest)
		return
	}

	if err := h.db.EnsureUser(userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := h.db.SetUserCurrency(userID, req.Currency); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"currency": req.Currency})
}

// ToggleDailyReport handles POST /users/{id}/notifications/daily
func (h *Handler) ToggleDailyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	enabled, err := h.db.ToggleDailyReport(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"daily_report": enabled})
}

// ToggleWeeklyReport handles POST /users/{id}/notifications/weekly
func (h *Handler) ToggleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	enabled, err := h.db.ToggleWeeklyReport(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"weekly_report": enabled})
}

// CreateReminder handles POST /users/{id}/reminders
func (h *Handler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		Coin        string          `json:"coin"`
		TargetPrice decimal.Decimal `json:"target_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Coin == "" || req.TargetPrice.Sign() <= 0 {
		http.Error(w, "coin and a positive target_price are required", http.StatusBadRequest)
		return
	}

	if err := h.db.EnsureUser(userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	reminder := &models.Reminder{
		UserID:      userID,
		Coin:        req.Coin,
		TargetPrice: req.TargetPrice,
	}
	if err := h.db.CreateReminder(reminder); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, reminder)
}

// GetReminders handles GET /users/{id}/reminders
func (h *Handler) GetReminders(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	reminders, err := h.db.GetActiveReminders(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if reminders == nil {
		reminders = []*models.Reminder{}
	}

	respondJSON(w, http.StatusOK, reminders)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func userIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return 0, false
	}
	return userID, true
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Trades and portfolio
	api.HandleFunc("/users/{id}/transactions", handler.CreateTransaction).Methods("POST")
	api.HandleFunc("/users/{id}/transactions", handler.GetTransactions).Methods("GET")
	api.HandleFunc("/users/{id}/portfolio", handler.GetPortfolio).Methods("GET")
	api.HandleFunc("/users/{id}/portfolio/chart", handler.GetPortfolioChart).Methods("GET")

	// User settings
	api.HandleFunc("/users/{id}/currency", handler.SetCurrency).Methods("PUT")
	api.HandleFunc("/users/{id}/notifications/daily", handler.ToggleDailyReport).Methods("POST")
	api.HandleFunc("/users/{id}/notifications/weekly", handler.ToggleWeeklyReport).Methods("POST")

	// Reminders
	api.HandleFunc("/users/{id}/reminders", handler.CreateReminder).Methods("POST")
	api.HandleFunc("/users/{id}/reminders", handler.GetReminders).Methods("GET")

	// Market data and recommendations
	api.HandleFunc("/coins/search", handler.SearchCoin).Methods("GET")
	api.HandleFunc("/recommendations", handler.GetRecommendations).Methods("POST")

	return r
}

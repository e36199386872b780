package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

// CreateTransaction inserts a new trade record
func (db *DB) CreateTransaction(t *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, coin_name, symbol, amount, price, type, exchange, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	now := time.Now()
	var exchange interface{}
	if t.Exchange != "" {
		exchange = t.Exchange
	}

	err := db.conn.QueryRow(query,
		t.UserID, t.CoinName, t.Symbol, t.Amount, t.Price, t.Type, exchange, now,
	).Scan(&t.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	t.CreatedAt = now
	return nil
}

// GetTransactionsByUser retrieves a user's trade history, newest first
func (db *DB) GetTransactionsByUser(userID int64, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, user_id, coin_name, symbol, amount, price, type, exchange, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := db.conn.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		var exchange sql.NullString

		err := rows.Scan(
			&t.ID, &t.UserID, &t.CoinName, &t.Symbol, &t.Amount, &t.Price, &t.Type, &exchange, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if exchange.Valid {
			t.Exchange = exchange.String
		}
		transactions = append(transactions, &t)
	}

	return transactions, nil
}

// GetBuyLegs retrieves the buy side of a user's history in insertion order,
// the shape consumed by position aggregation. Sell rows are deliberately
// not included.
func (db *DB) GetBuyLegs(userID int64) ([]models.BuyLeg, error) {
	query := `
		SELECT symbol, amount, price
		FROM transactions
		WHERE user_id = $1 AND type = $2
		ORDER BY id
	`
	rows, err := db.conn.Query(query, userID, models.TransactionTypeBuy)
	if err != nil {
		return nil, fmt.Errorf("failed to query buy legs: %w", err)
	}
	defer rows.Close()

	var legs []models.BuyLeg
	for rows.Next() {
		var leg models.BuyLeg
		if err := rows.Scan(&leg.Symbol, &leg.Amount, &leg.Price); err != nil {
			return nil, fmt.Errorf("failed to scan buy leg: %w", err)
		}
		legs = append(legs, leg)
	}

	return legs, nil
}

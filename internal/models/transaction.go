package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned when a confirmed transaction arrives without
// a category.
const DefaultCategory = "Uncategorized"

// Transaction is a confirmed, persisted financial record. Candidates from
// the extraction pipeline only become Transactions after user review.
type Transaction struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Date        time.Time `db:"date"`
	Type        string    `db:"type"`
	Category    string    `db:"category"`
	Description string    `db:"description"`
	Amount      float64   `db:"amount"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

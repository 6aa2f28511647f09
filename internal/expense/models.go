package expense

import (
	"errors"
	"time"

	"github.com/unigasto/unigasto-server/internal/parsing"
)

// ErrNotFound marks lookups for entities that do not exist.
var ErrNotFound = errors.New("not found")

// ErrUnsupportedFileType marks uploads whose MIME type is not an image.
var ErrUnsupportedFileType = errors.New("only images are allowed")

// Transaction represents one income or expense entry. A negative amount is
// an expense, a positive amount income.
type Transaction struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Notification is an in-app alert raised when a threshold is crossed.
type Notification struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Type    string    `json:"type"` // "budget", "goal", or "info"
	Date    time.Time `json:"date"`
	IsRead  bool      `json:"is_read"`
}

// Settings holds the user's monthly budget and savings figures.
type Settings struct {
	Budget      float64 `json:"budget"`
	SavingsGoal float64 `json:"savings_goal"`
	TotalSaved  float64 `json:"total_saved"`
}

// DefaultSettings mirrors the figures a fresh installation starts with.
func DefaultSettings() *Settings {
	return &Settings{
		Budget:      1200.00,
		SavingsGoal: 5000.00,
		TotalSaved:  2500.00,
	}
}

// Summary is a derived snapshot of the user's finances.
type Summary struct {
	Balance       float64 `json:"balance"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Budget        float64 `json:"budget"`
	BudgetUsage   float64 `json:"budget_usage"`
}

// ScanResponse is the wire response of the receipt scan endpoint. Message
// is present only when Items is empty.
type ScanResponse struct {
	Items   []parsing.ExpenseItem `json:"items"`
	Message string                `json:"message,omitempty"`
}

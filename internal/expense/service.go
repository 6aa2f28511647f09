package expense

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unigasto/unigasto-server/internal/parsing"
	"github.com/unigasto/unigasto-server/internal/scanning"
)

// IDGenerator generates unique IDs for stored entities
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles receipt scanning and the expense ledger
type Service struct {
	db          DB
	recognizer  scanning.Recognizer
	staging     Staging
	parser      *parsing.Parser
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, recognizer scanning.Recognizer, staging Staging, parser *parsing.Parser) *Service {
	return &Service{
		db:          db,
		recognizer:  recognizer,
		staging:     staging,
		parser:      parser,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, recognizer scanning.Recognizer, staging Staging, parser *parsing.Parser, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		recognizer:  recognizer,
		staging:     staging,
		parser:      parser,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	// Get the extension
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	// Remove special characters, keep only alphanumeric, spaces, hyphens, and underscores
	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	// Replace multiple spaces with single space
	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	// Trim spaces
	base = strings.TrimSpace(base)

	// Truncate to reasonable length (50 chars for base, plus extension)
	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	// If base is empty after sanitization, use a default
	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// ScanReceipt stages an uploaded image, transcribes it, and parses the
// transcription into draft expense items. The staged file is removed on
// every exit path. An empty item list is a valid result: OCR found no
// usable text, or a detected merchant had no usable amount.
func (s *Service) ScanReceipt(filename string, data []byte, contentType string) ([]parsing.ExpenseItem, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}

	// Time-prefixed name keeps concurrent requests from colliding in the
	// shared staging directory.
	stagedName := fmt.Sprintf("%d-%s", s.timeSource.Now().UnixNano(), sanitizeFilename(filepath.Base(filename)))
	staged, err := s.staging.Stage(stagedName, data)
	if err != nil {
		return nil, fmt.Errorf("staging file: %w", err)
	}
	defer func() {
		if removeErr := s.staging.Remove(staged); removeErr != nil {
			slog.Warn("Failed to remove staged file", "path", staged, "error", removeErr)
		}
	}()

	imageData, err := s.staging.Read(staged)
	if err != nil {
		return nil, fmt.Errorf("reading staged file: %w", err)
	}

	text, err := s.recognizer.RecognizeText(imageData, contentType)
	if err != nil {
		slog.Error("Failed to recognize text",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("recognizing text: %w", err)
	}
	if text == "" {
		slog.Info("No usable text recognized", "filename", filename)
		return nil, nil
	}

	return s.parser.Parse(text), nil
}

// CreateTransaction stores a new transaction. An empty category gets a
// keyword-based suggestion; an empty date defaults to now.
func (s *Service) CreateTransaction(transaction *Transaction) (*Transaction, error) {
	if strings.TrimSpace(transaction.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	if transaction.Amount == 0 {
		return nil, fmt.Errorf("amount must be non-zero")
	}

	now := s.timeSource.Now()
	transaction.ID = s.idGenerator.Generate()
	if transaction.Date.IsZero() {
		transaction.Date = now
	}
	if transaction.Category == "" {
		transaction.Category = SuggestCategory(transaction.Description)
	}
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	if err := s.db.SaveTransaction(transaction); err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}

	s.checkBudgetAlerts()
	return transaction, nil
}

// UpdateTransaction replaces an existing transaction's fields
func (s *Service) UpdateTransaction(transaction *Transaction) (*Transaction, error) {
	existing, err := s.db.GetTransaction(transaction.ID)
	if err != nil {
		return nil, fmt.Errorf("getting transaction for update: %w", err)
	}

	transaction.CreatedAt = existing.CreatedAt
	transaction.UpdatedAt = s.timeSource.Now()
	if transaction.Date.IsZero() {
		transaction.Date = existing.Date
	}

	if err := s.db.SaveTransaction(transaction); err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}

	s.checkBudgetAlerts()
	return transaction, nil
}

// DeleteTransaction removes a transaction
func (s *Service) DeleteTransaction(id string) error {
	if err := s.db.DeleteTransaction(id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	s.checkBudgetAlerts()
	return nil
}

// ListTransactions returns all transactions, newest first
func (s *Service) ListTransactions() ([]*Transaction, error) {
	transactions, err := s.db.ListTransactions()
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	sort.Slice(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Date.After(transactions[j].Date)
		}
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions, nil
}

// GetSummary derives the current balance and budget usage
func (s *Service) GetSummary() (*Summary, error) {
	transactions, err := s.db.ListTransactions()
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	settings, err := s.getSettings()
	if err != nil {
		return nil, err
	}

	var income, expenses float64
	for _, t := range transactions {
		if t.Amount > 0 {
			income += t.Amount
		} else {
			expenses += -t.Amount
		}
	}

	return &Summary{
		Balance:       income - expenses + settings.TotalSaved,
		TotalIncome:   income,
		TotalExpenses: expenses,
		Budget:        settings.Budget,
		BudgetUsage:   budgetUsage(expenses, settings.Budget),
	}, nil
}

// GetSettings returns the stored settings, falling back to defaults
func (s *Service) GetSettings() (*Settings, error) {
	return s.getSettings()
}

// UpdateSettings stores new budget and savings figures and raises a goal
// notification when the savings goal is reached
func (s *Service) UpdateSettings(settings *Settings) (*Settings, error) {
	if settings.Budget < 0 || settings.SavingsGoal < 0 || settings.TotalSaved < 0 {
		return nil, fmt.Errorf("settings values must not be negative")
	}

	if err := s.db.SaveSettings(settings); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}

	if settings.SavingsGoal > 0 && settings.TotalSaved >= settings.SavingsGoal {
		s.addNotification("Savings goal reached",
			fmt.Sprintf("You have saved %.2f and reached your goal of %.2f.", settings.TotalSaved, settings.SavingsGoal),
			"goal")
	}
	s.checkBudgetAlerts()
	return settings, nil
}

// ListNotifications returns all notifications, newest first
func (s *Service) ListNotifications() ([]*Notification, error) {
	notifications, err := s.db.ListNotifications()
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].Date.After(notifications[j].Date)
	})
	return notifications, nil
}

// MarkNotificationRead marks one notification as read
func (s *Service) MarkNotificationRead(id string) error {
	notifications, err := s.db.ListNotifications()
	if err != nil {
		return fmt.Errorf("listing notifications: %w", err)
	}
	for _, n := range notifications {
		if n.ID == id {
			n.IsRead = true
			if err := s.db.SaveNotification(n); err != nil {
				return fmt.Errorf("saving notification: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id, ErrNotFound)
}

// MarkAllNotificationsRead marks every notification as read
func (s *Service) MarkAllNotificationsRead() error {
	notifications, err := s.db.ListNotifications()
	if err != nil {
		return fmt.Errorf("listing notifications: %w", err)
	}
	for _, n := range notifications {
		if n.IsRead {
			continue
		}
		n.IsRead = true
		if err := s.db.SaveNotification(n); err != nil {
			return fmt.Errorf("saving notification: %w", err)
		}
	}
	return nil
}

func (s *Service) getSettings() (*Settings, error) {
	settings, err := s.db.GetSettings()
	if errors.Is(err, ErrNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}
	return settings, nil
}

func budgetUsage(expenses, budget float64) float64 {
	if budget == 0 {
		return 0
	}
	return expenses / budget * 100
}

// checkBudgetAlerts raises a notification when monthly budget usage crosses
// 90% or 100%. Failures here never fail the triggering mutation.
func (s *Service) checkBudgetAlerts() {
	summary, err := s.GetSummary()
	if err != nil {
		slog.Warn("Failed to compute summary for budget alerts", "error", err)
		return
	}

	switch {
	case summary.BudgetUsage >= 100:
		s.addNotification("Budget exceeded",
			"You have passed 100% of your monthly budget.", "budget")
	case summary.BudgetUsage >= 90:
		s.addNotification("Budget warning",
			fmt.Sprintf("You have used %.0f%% of your monthly budget.", summary.BudgetUsage), "budget")
	}
}

// addNotification stores a notification unless an identical one already
// exists (same title and message)
func (s *Service) addNotification(title, message, kind string) {
	notifications, err := s.db.ListNotifications()
	if err != nil {
		slog.Warn("Failed to list notifications", "error", err)
		return
	}
	for _, n := range notifications {
		if n.Title == title && n.Message == message {
			return
		}
	}

	notification := &Notification{
		ID:      s.idGenerator.Generate(),
		Title:   title,
		Message: message,
		Type:    kind,
		Date:    s.timeSource.Now(),
	}
	if err := s.db.SaveNotification(notification); err != nil {
		slog.Warn("Failed to save notification", "error", err)
	}
}

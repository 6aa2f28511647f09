// Package parsing turns raw receipt transcriptions into expense items.
package parsing

// CandidateItem is a provisionally parsed (description, amount) pair
// extracted from one transcription line, before any merchant aggregation.
type CandidateItem struct {
	Description string
	Amount      float64
}

// ExpenseItem is a final output unit offered to the caller as an editable
// draft expense.
type ExpenseItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Note        string  `json:"note,omitempty"`
}

// Merchant is a recognized chain: a canonical display name plus the
// lowercase keyword substrings that attribute a transcription to it.
type Merchant struct {
	Name     string
	Keywords []string
}

// Config holds the keyword tables the parser consults. Zero-value fields
// fall back to the built-in defaults.
type Config struct {
	// Merchants is checked in order; the first keyword hit wins.
	Merchants []Merchant
	// NoiseWords disqualify a line from product parsing when the line
	// starts with one of them (lowercase).
	NoiseWords []string
	// ReceiptWords mark a transcription as an official point-of-sale
	// receipt when any of them occurs anywhere in the text (lowercase).
	ReceiptWords []string
	// MaxPlausibleTotal is the ceiling above which bare numeric tokens are
	// treated as OCR noise (phone numbers, receipt IDs) when hunting for a
	// grand total.
	MaxPlausibleTotal float64
}

// Parser extracts expense items from receipt text. It is a pure function of
// the transcription plus its immutable keyword tables, so a single Parser is
// safe for concurrent use.
type Parser struct {
	merchants         []Merchant
	noiseWords        []string
	receiptWords      []string
	maxPlausibleTotal float64
}

// NewParser creates a Parser, filling unset Config fields with defaults.
func NewParser(cfg Config) *Parser {
	p := &Parser{
		merchants:         cfg.Merchants,
		noiseWords:        cfg.NoiseWords,
		receiptWords:      cfg.ReceiptWords,
		maxPlausibleTotal: cfg.MaxPlausibleTotal,
	}
	if p.merchants == nil {
		p.merchants = DefaultMerchants
	}
	if p.noiseWords == nil {
		p.noiseWords = DefaultNoiseWords
	}
	if p.receiptWords == nil {
		p.receiptWords = DefaultReceiptWords
	}
	if p.maxPlausibleTotal <= 0 {
		p.maxPlausibleTotal = DefaultMaxPlausibleTotal
	}
	return p
}

// Parse runs the full pipeline on a transcription: line parsing, merchant
// detection, and the aggregation decision. An empty slice is a valid result,
// not an error.
func (p *Parser) Parse(text string) []ExpenseItem {
	candidates := p.parseLines(text)

	merchant, found := p.detectMerchant(text)
	if !found {
		// Inventory mode: each recognized line becomes its own item.
		items := make([]ExpenseItem, 0, len(candidates))
		for _, c := range candidates {
			items = append(items, ExpenseItem{Description: c.Description, Amount: c.Amount})
		}
		return items
	}

	return p.collapseForMerchant(merchant, candidates, text)
}

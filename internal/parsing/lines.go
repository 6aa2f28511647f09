package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// priceRe matches a trailing numeric token anchored to end of line,
	// optionally preceded by a space or currency symbol: "12.50", "15",
	// "$20,00".
	priceRe = regexp.MustCompile(`(?:[\s$]|^)(\d+(?:[,.]\d{1,2})?)\s*$`)

	// quantityRe matches a leading small item count ("2 Hamburguesa")
	// without touching numeric SKUs embedded elsewhere in the line.
	quantityRe = regexp.MustCompile(`^\d{1,3}\s+(\pL.*)$`)

	// Symbol trimming preserves accented Latin letters and the percent
	// sign so entries like "Desc. 10%" keep their meaning.
	leadingSymbolsRe  = regexp.MustCompile(`^[^a-zA-Z0-9\x{00C0}-\x{00FC}%]+`)
	trailingSymbolsRe = regexp.MustCompile(`[^a-zA-Z0-9\x{00C0}-\x{00FC}%\s]+$`)
)

// parseLines classifies each transcription line and extracts one
// CandidateItem per qualifying product line, preserving line order.
func (p *Parser) parseLines(text string) []CandidateItem {
	var items []CandidateItem
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if utf8.RuneCountInString(line) < 3 || p.isNoise(line) {
			continue
		}
		if item, ok := p.extractItem(line); ok {
			items = append(items, item)
		}
	}
	return items
}

// isNoise reports whether a line starts with one of the denylisted tokens
// (totals, taxes, payment words, column headers).
func (p *Parser) isNoise(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range p.noiseWords {
		if strings.HasPrefix(lower, word) {
			return true
		}
	}
	return false
}

// extractItem attempts to split a line into a description and a trailing
// price. A line yields at most one item; lines without a trailing numeric
// token are non-product text.
func (p *Parser) extractItem(line string) (CandidateItem, bool) {
	loc := priceRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return CandidateItem{}, false
	}

	amount, ok := parseAmount(line[loc[2]:loc[3]])
	if !ok {
		return CandidateItem{}, false
	}

	desc := cleanDescription(line[:loc[0]])
	if utf8.RuneCountInString(desc) < 2 || p.isNoise(desc) {
		return CandidateItem{}, false
	}

	return CandidateItem{Description: desc, Amount: amount}, true
}

// parseAmount normalizes a captured numeric token (comma decimal separator
// allowed) and rejects anything that is not a finite positive value.
func parseAmount(token string) (float64, bool) {
	normalized := strings.Replace(strings.TrimSpace(token), ",", ".", 1)
	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// cleanDescription trims surrounding symbols and a leading quantity count
// from the text preceding the price token.
func cleanDescription(s string) string {
	s = strings.TrimSpace(s)
	s = leadingSymbolsRe.ReplaceAllString(s, "")
	s = trailingSymbolsRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if m := quantityRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	return s
}

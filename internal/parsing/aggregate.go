package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// amountTokenRe finds currency-shaped tokens (two fractional digits) in the
// full transcription. Standalone-ness is verified separately because Go
// regexps have no lookaround.
var amountTokenRe = regexp.MustCompile(`\d+[.,]\d{2}`)

// collapseForMerchant applies the merchant aggregation policy: the item
// list collapses into a single merchant-level expense whose amount is
// either the largest currency-shaped figure on the receipt (official
// receipts carry an explicit grand total) or the sum of the recognized
// items (terse lists without a total line).
func (p *Parser) collapseForMerchant(m Merchant, candidates []CandidateItem, text string) []ExpenseItem {
	var total float64
	if p.hasReceiptSignal(text) {
		for _, c := range candidates {
			if c.Amount > total {
				total = c.Amount
			}
		}
		for _, v := range standaloneAmounts(text) {
			if v < p.maxPlausibleTotal && v > total {
				total = v
			}
		}
	} else {
		for _, c := range candidates {
			total += c.Amount
		}
	}

	// Merchant detected but no usable amount: empty result, not an error
	// and not a synthetic zero-amount entry.
	if total <= 0 {
		return []ExpenseItem{}
	}

	return []ExpenseItem{{
		Description: m.Name,
		Amount:      round2(total),
		Note:        buildNote(m, candidates),
	}}
}

// hasReceiptSignal reports whether the transcription contains vocabulary
// typical of an official point-of-sale receipt.
func (p *Parser) hasReceiptSignal(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range p.receiptWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// standaloneAmounts extracts every two-decimal numeric token that is not
// embedded in a longer number, in transcription order.
func standaloneAmounts(text string) []float64 {
	var amounts []float64
	for _, loc := range amountTokenRe.FindAllStringIndex(text, -1) {
		if !isTokenBoundary(text, loc[0], loc[1]) {
			continue
		}
		normalized := strings.Replace(text[loc[0]:loc[1]], ",", ".", 1)
		if v, err := strconv.ParseFloat(normalized, 64); err == nil {
			amounts = append(amounts, v)
		}
	}
	return amounts
}

// isTokenBoundary verifies that the match at [start,end) is not glued to
// surrounding digits or decimal separators (e.g. half of "1234.567" or the
// tail of a phone number).
func isTokenBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsDigit(r) || r == '.' || r == ',' {
			return false
		}
	}
	if end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if unicode.IsDigit(r) {
			return false
		}
		// A separator glues the token to a following digit ("15.03.2025");
		// plain trailing punctuation ("TOTAL 12.00.") does not.
		if r == '.' || r == ',' {
			next, _ := utf8.DecodeRuneInString(text[end+size:])
			if unicode.IsDigit(next) {
				return false
			}
		}
	}
	return true
}

// buildNote joins the candidate descriptions into a single note, stripping
// literal merchant-name occurrences from each entry when enough text
// remains to still be meaningful.
func buildNote(m Merchant, candidates []CandidateItem) string {
	nameRe := merchantNamePattern(m.Name)
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		stripped := nameRe.ReplaceAllString(c.Description, "")
		stripped = strings.Join(strings.Fields(stripped), " ")
		if utf8.RuneCountInString(stripped) >= 2 {
			parts = append(parts, stripped)
		} else {
			parts = append(parts, c.Description)
		}
	}
	return strings.Join(parts, ", ")
}

// merchantNamePattern builds a case-insensitive matcher for a merchant
// name with apostrophes treated as wildcards, so "McDonald's" also strips
// "MCDONALDS" and "McDonald´s" as recognized by the OCR.
func merchantNamePattern(name string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?i)`)
	for _, r := range name {
		if r == '\'' || r == '’' {
			b.WriteString(`.?`)
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	return regexp.MustCompile(b.String())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

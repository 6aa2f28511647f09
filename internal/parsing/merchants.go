package parsing

import "strings"

// detectMerchant scans the full transcription for known merchant keywords.
// The table is checked in declaration order and the first merchant with any
// keyword present wins; earlier entries take precedence over later ones.
// No match is a common, valid outcome (generic supermarket receipts).
func (p *Parser) detectMerchant(text string) (Merchant, bool) {
	lower := strings.ToLower(text)
	for _, m := range p.merchants {
		for _, keyword := range m.Keywords {
			if strings.Contains(lower, keyword) {
				return m, true
			}
		}
	}
	return Merchant{}, false
}

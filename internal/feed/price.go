package feed

import (
	"bytes"
	"encoding/json"
	"regexp"

	"github.com/shopspring/decimal"
)

// HoursPerMonth converts a monthly reserved charge to an hourly rate.
const HoursPerMonth = 730

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

var hoursPerMonth = decimal.NewFromInt(HoursPerMonth)

// Token is a raw price string. Feeds occasionally emit bare numbers; both decode.
type Token string

func (t *Token) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Token(s)
		return nil
	}
	*t = Token(b)
	return nil
}

// Prices maps a currency code to its price token.
type Prices map[string]Token

// In returns the parsed price for currency, or nil when missing or unparseable.
func (p Prices) In(currency string) *float64 {
	tok, ok := p[currency]
	if !ok {
		return nil
	}
	return ParseToken(string(tok))
}

// ParseToken strips everything except digits and '.' and parses the rest.
// "$0.012 per Hrs" is 0.012, "N/A" is nil, "0" is 0.
func ParseToken(s string) *float64 {
	d, ok := parseDecimal(s)
	if !ok {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// MonthlyToHourly divides a monthly charge by HoursPerMonth. nil stays nil.
func MonthlyToHourly(monthly *float64) *float64 {
	if monthly == nil {
		return nil
	}
	f := decimal.NewFromFloat(*monthly).Div(hoursPerMonth).InexactFloat64()
	return &f
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	clean := nonNumeric.ReplaceAllString(s, "")
	if clean == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

package formatter

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nyaruka/phonenumbers"
	"github.com/shopspring/decimal"
)

// CallingCode returns the international dialling prefix for an ISO alpha-2 region,
// e.g. "FR" -> "+33". Unknown regions yield an empty string.
func CallingCode(regionCode string) string {
	code := phonenumbers.GetCountryCodeForRegion(strings.ToUpper(strings.TrimSpace(regionCode)))
	if code == 0 {
		return ""
	}
	return "+" + strconv.Itoa(code)
}

// FormatPhone formats a phone number to E164 format
func FormatPhone(phone, regionCode string) (string, error) {
	num, err := phonenumbers.Parse(phone, strings.ToUpper(regionCode))
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Population renders n with thousands separators: 67391582 -> "67,391,582".
func Population(n int64) string {
	return humanize.Comma(n)
}

// Area renders square kilometres with separators.
func Area(km2 float64) string {
	return humanize.CommafWithDigits(km2, 2) + " km²"
}

// Density is people per square kilometre rounded to two places. Zero area yields zero.
func Density(population int64, areaKm2 float64) decimal.Decimal {
	area := decimal.NewFromFloat(areaKm2)
	if area.Sign() <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(population).DivRound(area, 2)
}

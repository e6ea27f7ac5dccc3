package usecase

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/shopspring/decimal"
)

const (
	minNameLen        = 3
	maxNameLen        = 255
	maxDescriptionLen = 255
	minPasswordLen    = 8
	minRating         = 1
	maxRating         = 5
)

// parsePriceToCents converts a string like "599.99" or "600" to int64 cents.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds reasonable limit
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrBadRequest
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrBadRequest
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrBadRequest
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrBadRequest
	}

	// Check decimal places
	if d.Exponent() < -2 {
		return 0, e.ErrBadRequest
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// validEmail проверяет синтаксис адреса электронной почты.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// validURL проверяет, что строка — абсолютный http(s)-URL.
func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

package reconciliation

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// isoDatePattern es el patrón 4-2-2 de una fecha calendario ISO 8601.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const isoDateLayout = "2006-01-02"

var (
	maxQuantity = decimal.NewFromInt(math.MaxInt)
	minQuantity = decimal.NewFromInt(math.MinInt)
)

// parseDecimal interpreta el texto crudo de una cantidad sin pérdida de formato.
func parseDecimal(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseQuantity convierte el texto a entero truncando hacia cero ("77.00" → 77, "-5.9" → -5).
// Devuelve (0, false) si el texto está vacío, no es numérico o no cabe en un int.
func ParseQuantity(raw string) (int, bool) {
	d, ok := parseDecimal(raw)
	if !ok {
		return 0, false
	}
	d = d.Truncate(0)
	if d.GreaterThan(maxQuantity) || d.LessThan(minQuantity) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// IsNegativeQuantity es true sólo para texto numérico estrictamente menor que cero.
func IsNegativeQuantity(raw string) bool {
	d, ok := parseDecimal(raw)
	return ok && d.IsNegative()
}

// IsISODate valida únicamente la forma YYYY-MM-DD, no el calendario.
func IsISODate(raw string) bool {
	return isoDatePattern.MatchString(strings.TrimSpace(raw))
}

// ParseISODate valida forma y calendario (rechaza 2024-02-30).
func ParseISODate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if !isoDatePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

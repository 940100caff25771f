package stockledger

import (
	"fmt"
	"time"

	"github.com/jhoicas/bev-flow/internal/domain"
)

// DateLayout formato ISO 8601 de los días del libro (sin hora).
const DateLayout = "2006-01-02"

// ParseDate interpreta "YYYY-MM-DD" como día calendario en UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}

// FormatDate devuelve el día en formato "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day trunca t al inicio de su día calendario conservando la fecha local de t, expresada en UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PreviousDate día calendario anterior.
func PreviousDate(t time.Time) time.Time {
	return Day(t).AddDate(0, 0, -1)
}

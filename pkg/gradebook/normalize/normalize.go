// Package normalize converts raw workbook cells into JSON-safe values.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/models"
)

// Date layouts used for date cells.
const (
	DateLayout     = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04:05"
)

// Value normalizes one cell. The result is a string, int64, float64 or bool,
// and is never NaN or a zero time.
func Value(c models.Cell) models.Value {
	switch c.Kind {
	case models.KindEmpty, models.KindError:
		return ""
	case models.KindDate:
		return formatDate(c.Time)
	case models.KindInt:
		return c.Int
	case models.KindFloat:
		return number(c.Float)
	case models.KindBool:
		return c.Bool
	case models.KindText:
		return String(c.Text)
	}
	return String(c.Text)
}

// Text normalizes one cell and renders the result as a string. It is used for
// columns that must stay textual, such as the identifier.
func Text(c models.Cell) string {
	return models.FormatValue(Value(c))
}

// String trims s and maps a case-insensitive "nan" to "".
func String(s string) string {
	s = strings.TrimSpace(s)
	if IsNaN(s) {
		return ""
	}
	return s
}

// IsNaN reports whether s reads as "nan" in any case.
func IsNaN(s string) bool {
	return strings.EqualFold(s, "nan")
}

// Blank reports whether an identifier is unusable: empty after trimming or "nan".
func Blank(id string) bool {
	id = strings.TrimSpace(id)
	return id == "" || IsNaN(id)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.Round(time.Second)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format(DateTimeLayout)
}

func number(f float64) models.Value {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 0):
		// Not representable in JSON; fall back to the text rule.
		return String(strconv.FormatFloat(f, 'f', -1, 64))
	case f == math.Trunc(f) && math.Abs(f) < 1<<63:
		return int64(f)
	}
	return f
}

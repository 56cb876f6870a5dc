package validate

import (
	"time"

	depictio "github.com/depictio/depictio-models"
)

// TimeLayout is the single textual datetime format every time-valued field
// is normalized to.
const TimeLayout = "2006-01-02 15:04:05"

// datetime input shapes accepted on top of native time.Time values.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	TimeLayout,
	"2006-01-02",
}

// ParseDatetime accepts a native time.Time or an ISO-8601 string and
// returns the parsed time.
func ParseDatetime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range datetimeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, depictio.NewFieldError(depictio.KindInvalidDatetime,
			"invalid datetime format %q", v)
	default:
		return time.Time{}, depictio.NewFieldError(depictio.KindInvalidDatetime,
			"expected a datetime, got %T", value)
	}
}

// Datetime normalizes a native time.Time or ISO-8601 string to TimeLayout.
func Datetime(value any) (any, error) {
	t, err := ParseDatetime(value)
	if err != nil {
		return nil, err
	}
	return t.Format(TimeLayout), nil
}

// FutureDatetime is Datetime with the additional construction-time check
// that the value lies in the future. The check is not re-evaluated later.
func FutureDatetime(value any) (any, error) {
	t, err := ParseDatetime(value)
	if err != nil {
		return nil, err
	}
	if !t.After(time.Now()) {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue,
			"expiration datetime must be in the future")
	}
	return t.Format(TimeLayout), nil
}

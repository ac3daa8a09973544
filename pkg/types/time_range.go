package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTimeRange возвращается для строк рабочих часов не в формате "HH:MM-HH:MM"
var ErrInvalidTimeRange = errors.New("invalid time range format")

// TimeRange полуоткрытый интервал [Start, End) внутри одних суток
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseTimeRange разбирает строку вида "09:00-17:00".
// Допускаются пробелы вокруг каждой части ("09:00 - 17:00").
// Ровно один разделитель '-'; конец не проверяется относительно начала,
// это решает вызывающий код.
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}

	start, err := ParseTimeOfDay(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: start: %v", ErrInvalidTimeRange, err)
	}

	end, err := ParseTimeOfDay(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: end: %v", ErrInvalidTimeRange, err)
	}

	return TimeRange{Start: start, End: end}, nil
}

// IsEmpty возвращает true, если интервал пустой или перевёрнутый
func (r TimeRange) IsEmpty() bool {
	return r.End <= r.Start
}

// String возвращает интервал в формате "HH:MM-HH:MM"
func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

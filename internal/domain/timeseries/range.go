package timeseries

import (
	"errors"
	"fmt"
	"strings"
)

// Range names a chart range selectable from the dashboard.
type Range string

// Supported ranges.
const (
	Range24h Range = "24h"
	Range7d  Range = "7d"
	Range30d Range = "30d"
	RangeAll Range = "all"
)

// ErrUnknownRange reports an unsupported range selector.
var ErrUnknownRange = errors.New("unknown range")

// ParseRange parses a range selector. An empty selector means "all".
func ParseRange(s string) (Range, error) {
	switch Range(strings.ToLower(strings.TrimSpace(s))) {
	case Range24h:
		return Range24h, nil
	case Range7d:
		return Range7d, nil
	case Range30d:
		return Range30d, nil
	case RangeAll, Range(""):
		return RangeAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRange, s)
	}
}

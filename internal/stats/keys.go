package stats

import (
	"fmt"
	"strings"
)

// Item is a selectable statistic.
type Item struct {
	Key   string
	Label string
}

// GeneralItems lists the capture-wide statistics in report order.
var GeneralItems = []Item{
	{"total", "Total records"},
	{"service", "Service records"},
	{"useful", "Useful records"},
	{"unknown", "Unknown-type records"},
	{"long", "Long (0)"},
	{"double", "Double (1)"},
	{"code", "Code (2)"},
	{"point", "Point (3)"},
	{"unique", "Unique parameters"},
	{"point_lt4", "Point < 4 bytes"},
	{"point_ge4", "Point >= 4 bytes"},
	{"code_lt8", "Code < 8 bits"},
	{"code_ge8", "Code >= 8 bits"},
}

// ParamItems lists the per-parameter statistics in report order. Keys are
// selected with a "param." prefix.
var ParamItems = []Item{
	{"total", "Records"},
	{"long", "Long"},
	{"double", "Double"},
	{"code", "Code"},
	{"point", "Point"},
	{"unknown", "Unknown type"},
	{"point_lt4", "Point < 4 bytes"},
	{"point_ge4", "Point >= 4 bytes"},
	{"code_lt8", "Code < 8 bits"},
	{"code_ge8", "Code >= 8 bits"},
}

// ParamPrefix marks a per-parameter selection key.
const ParamPrefix = "param."

// Value returns the counter named by key.
func (s Statistics) Value(key string) (int, bool) {
	switch key {
	case "total":
		return s.TotalRecords, true
	case "service":
		return s.ServiceRecords, true
	case "useful":
		return s.UsefulRecords, true
	case "unknown":
		return s.UnknownRecords, true
	case "long":
		return s.TypeCounts[0], true
	case "double":
		return s.TypeCounts[1], true
	case "code":
		return s.TypeCounts[2], true
	case "point":
		return s.TypeCounts[3], true
	case "unique":
		return s.UniqueParameters, true
	case "point_lt4":
		return s.PointLess4, true
	case "point_ge4":
		return s.PointGreater4, true
	case "code_lt8":
		return s.CodeLess8, true
	case "code_ge8":
		return s.CodeGreater8, true
	default:
		return 0, false
	}
}

// Value returns the per-parameter counter named by key (without prefix).
func (p ParamStats) Value(key string) (int, bool) {
	switch key {
	case "total":
		return p.Total, true
	case "long":
		return p.Long, true
	case "double":
		return p.Double, true
	case "code":
		return p.Code, true
	case "point":
		return p.Point, true
	case "unknown":
		return p.Unknown, true
	case "point_lt4":
		return p.PointLess4, true
	case "point_ge4":
		return p.PointGreater4, true
	case "code_lt8":
		return p.CodeLess8, true
	case "code_ge8":
		return p.CodeGreater8, true
	default:
		return 0, false
	}
}

// Selection splits and validates selection keys. General and per-parameter
// keys are returned in report order regardless of input order.
func Selection(keys []string) (general, param []Item, err error) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if !knownKey(k) {
			return nil, nil, fmt.Errorf("unknown statistic %q", k)
		}
		want[k] = true
	}
	for _, it := range GeneralItems {
		if want[it.Key] {
			general = append(general, it)
		}
	}
	for _, it := range ParamItems {
		if want[ParamPrefix+it.Key] {
			param = append(param, it)
		}
	}
	return general, param, nil
}

func knownKey(k string) bool {
	if strings.HasPrefix(k, ParamPrefix) {
		_, ok := ParamStats{}.Value(strings.TrimPrefix(k, ParamPrefix))
		return ok
	}
	_, ok := Statistics{}.Value(k)
	return ok
}

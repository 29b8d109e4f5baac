package records

import (
	"fmt"
	"sort"
	"strings"
)

// Render formats the value of a record for display. Point payload bytes are
// never rendered.
func Render(r Record) string {
	switch v := r.(type) {
	case Long:
		return fmt.Sprintf("%d %s", v.Value, v.Dimension)
	case Double:
		return fmt.Sprintf("%.6f %s", v.Value, v.Dimension)
	case Code:
		return fmt.Sprintf("Code(len=%d): %d %s", v.LengthBits, v.Value, v.Dimension)
	case Point:
		return fmt.Sprintf("Point array: %d bytes (element size %d)", v.DataLength, v.ElementSize)
	case Unknown:
		return fmt.Sprintf("Unknown type (%d), data: %d bytes", v.RawValueType, len(v.RawData))
	case Service:
		if v.SessionStart {
			return "Session start"
		}
		return fmt.Sprintf("Service message 0x%02X", v.MessageType)
	default:
		panic(fmt.Sprintf("records: unhandled record type %T", r))
	}
}

// FormatTime renders milliseconds since start of day as HH:MM:SS,mmm.
func FormatTime(ms uint32) string {
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	seconds := (ms % 60_000) / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms%1000)
}

// SortByTime returns a copy of rs ordered by time. Records sharing a time
// keep their arrival order.
func SortByTime(rs []Record) []Record {
	out := make([]Record, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Meta().Time < out[j].Meta().Time
	})
	return out
}

// Listing renders the records of one parameter sorted by time, preceded by a
// short header.
func Listing(name string, rs []Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Parameter: %s\n", name)
	fmt.Fprintf(&b, "Records: %d\n", len(rs))
	b.WriteString(strings.Repeat("-", 50))
	b.WriteByte('\n')
	for _, r := range SortByTime(rs) {
		fmt.Fprintf(&b, "%s  %s\n", FormatTime(r.Meta().Time), Render(r))
	}
	return b.String()
}

package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Dimensions maps dimension codes to unit labels. Line N of the source file
// (counting from 1) holds the unit for code N; blank lines are skipped but
// still advance the count.
type Dimensions struct {
	units map[int]string
}

// LoadDimensions reads a dimension line file.
func LoadDimensions(path string) (*Dimensions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer f.Close()
	return ParseDimensions(f)
}

// ParseDimensions reads dimension lines from r.
func ParseDimensions(r io.Reader) (*Dimensions, error) {
	d := &Dimensions{units: make(map[int]string)}
	scanner := bufio.NewScanner(r)
	line := 1
	for scanner.Scan() {
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			d.units[line] = text
		}
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: dimensions: %v", ErrMalformed, err)
	}
	return d, nil
}

// Dimension returns the unit for code, or "[<code>]" when absent.
func (d *Dimensions) Dimension(code uint8) string {
	if d != nil {
		if unit, ok := d.units[int(code)]; ok {
			return unit
		}
	}
	return "[" + strconv.Itoa(int(code)) + "]"
}

// Len returns the number of known units.
func (d *Dimensions) Len() int {
	if d == nil {
		return 0
	}
	return len(d.units)
}

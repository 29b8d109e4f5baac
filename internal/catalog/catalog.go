// Package catalog loads the lookup tables that give capture parameters their
// names and dimension codes their units. A missing or unreadable table never
// stops decoding: callers fall back to an empty catalog whose lookups return
// the documented defaults.
package catalog

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrMalformed reports a catalog file that is missing or cannot be parsed.
var ErrMalformed = errors.New("malformed catalog")

// ParametersOrEmpty loads the parameter catalog at path, logging and
// returning an empty catalog when it cannot be used.
func ParametersOrEmpty(path string, log *logrus.Entry) *Parameters {
	p, err := LoadParameters(path)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{"catalog": "parameters", "path": path}).
			Warn("parameter catalog unavailable, names fall back to UNKNOWN_<number>")
		return &Parameters{}
	}
	return p
}

// DimensionsOrEmpty loads the dimension catalog at path, logging and
// returning an empty catalog when it cannot be used.
func DimensionsOrEmpty(path string, log *logrus.Entry) *Dimensions {
	d, err := LoadDimensions(path)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{"catalog": "dimensions", "path": path}).
			Warn("dimension catalog unavailable, units fall back to [<code>]")
		return &Dimensions{}
	}
	return d
}

package tmi

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Thg-prog/laba8sem/internal/catalog"
	"github.com/Thg-prog/laba8sem/internal/decoder"
	"github.com/Thg-prog/laba8sem/internal/metrics"
	internalopts "github.com/Thg-prog/laba8sem/internal/options"
)

// DecodeOptions configures decoding.
type DecodeOptions struct {
	// ParametersPath and DimensionsPath name catalog files. A catalog that
	// cannot be loaded falls back to defaults with a warning.
	ParametersPath string
	DimensionsPath string

	// Parameters and Dimensions take precedence over the paths.
	Parameters decoder.ParameterCatalog
	Dimensions decoder.DimensionCatalog

	Logger  *logrus.Entry
	Metrics *metrics.Decode
}

func (opts DecodeOptions) toInternal(ctx context.Context) (context.Context, decoder.ParameterCatalog, decoder.DimensionCatalog) {
	ctx = internalopts.WithLogger(ctx, opts.Logger)
	log := internalopts.Logger(ctx)

	params := opts.Parameters
	if params == nil {
		if opts.ParametersPath != "" {
			params = catalog.ParametersOrEmpty(opts.ParametersPath, log)
		} else {
			params = &catalog.Parameters{}
		}
	}
	dims := opts.Dimensions
	if dims == nil {
		if opts.DimensionsPath != "" {
			dims = catalog.DimensionsOrEmpty(opts.DimensionsPath, log)
		} else {
			dims = &catalog.Dimensions{}
		}
	}
	return ctx, params, dims
}

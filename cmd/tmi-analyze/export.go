package main

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Thg-prog/laba8sem/internal/config"
	"github.com/Thg-prog/laba8sem/internal/export"
	"github.com/Thg-prog/laba8sem/pkg/tmi"
)

func runExport(ctx context.Context, stdout io.Writer, ec config.ExportConfig, result tmi.Result) error {
	log := logrus.WithFields(logrus.Fields{"format": ec.Format, "path": ec.Output})
	if ec.Format == "sqlite" {
		store, err := export.OpenStore(ec.Output)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(ctx, result.Document()); err != nil {
			return err
		}
		log.Info("capture exported")
		return nil
	}

	w := stdout
	var f *os.File
	if ec.Output != "" {
		var err error
		f, err = os.Create(ec.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	var err error
	switch ec.Format {
	case "json":
		err = export.WriteJSON(w, result.Document())
	case "cbor":
		err = export.WriteCBOR(w, result.Document())
	default:
		err = export.WriteSummary(w, result.Meta(), result.Stream)
	}
	if err != nil {
		return err
	}
	if f != nil {
		if err := f.Close(); err != nil {
			return err
		}
		log.Info("capture exported")
	}
	return nil
}

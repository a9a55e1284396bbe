package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yumyai/orthoxml/internal/config"
	"github.com/yumyai/orthoxml/internal/util"
	"github.com/yumyai/orthoxml/logger"
	"github.com/yumyai/orthoxml/pkg/model"
	"github.com/yumyai/orthoxml/pkg/oxerr"
)

const Version = "0.1.0"

var (
	cfg   config.Config
	runID string

	infile  string
	outfile string
	outdir  string
	xrefTag string
)

var rootCmd = &cobra.Command{
	Use:           "orthoxml",
	Short:         "Inspect, filter, split and convert OrthoXML files",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if err := logger.InitLogger(cfg.LogLevel); err != nil {
			return err
		}
		runID = uuid.New().String()
		logger.With(zap.String("run_id", runID))
		for _, note := range cfg.Notes {
			logger.Debug(note)
		}
		logger.Debug("Start:", zap.String("command", cmd.CommandPath()), zap.String("Version", Version))
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync() // stderr cannot always be synced
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// describe renders err as "<kind>: <message>". Errors outside the oxerr
// kinds, such as flag errors, are reported as "Error".
func describe(err error) string {
	kind := oxerr.Kind(err)
	if kind == nil {
		return "Error: " + err.Error()
	}
	var e *oxerr.Error
	if errors.As(err, &e) {
		return e.Error()
	}
	if msg := err.Error(); strings.HasPrefix(msg, kind.Error()) {
		return msg
	}
	return kind.Error() + ": " + err.Error()
}

// loadDocument reads and parses an OrthoXML file, logging recovered problems.
func loadDocument(path string) (*model.Document, error) {
	if path == "" {
		return nil, errors.New("--infile is required")
	}
	text, err := util.ReadText(path)
	if err != nil {
		return nil, err
	}
	doc, err := model.Parse(text)
	if err != nil {
		logger.Error("Cannot parse document", zap.String("file", path), zap.Error(err))
		return nil, err
	}
	for _, w := range doc.Warnings {
		logger.Warn(w, zap.String("file", path))
	}
	logger.Info("Loaded document", zap.String("file", path),
		zap.Int("genes", len(doc.Genes)), zap.Int("roothogs", len(doc.RootHOGs)))
	return doc, nil
}

// emit writes data to --outfile, or to the command output when unset.
func emit(cmd *cobra.Command, data []byte) error {
	if outfile != "" {
		if err := util.WriteText(outfile, data); err != nil {
			return err
		}
		logger.Info("Written", zap.String("file", outfile), zap.Int("bytes", len(data)))
		return nil
	}
	_, err := cmd.OutOrStdout().Write(data)
	return err
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// labelAttr is --xref-tag, falling back to the configured tag.
func labelAttr() string {
	if xrefTag != "" {
		return xrefTag
	}
	if cfg.XrefTag != "" {
		return cfg.XrefTag
	}
	return config.DefaultXrefTag
}

// forEach runs fn for 0..n-1 on at most cfg.Workers goroutines and
// returns the first error.
func forEach(ctx context.Context, n int, fn func(i int) error) error {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return g.Wait()
}

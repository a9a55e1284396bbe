package cmd

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/orthoxml/internal/util"
	"github.com/yumyai/orthoxml/logger"
	"github.com/yumyai/orthoxml/pkg/model"
	"github.com/yumyai/orthoxml/pkg/split"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Write one OrthoXML file per rootHOG",
	RunE:  runSplit,
}

func init() {
	splitCmd.Flags().StringVar(&infile, "infile", "", "Path to the OrthoXML file")
	splitCmd.Flags().StringVar(&outdir, "outdir", "", "Directory for the split files (required)")
	_ = splitCmd.MarkFlagRequired("outdir")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	if outdir == "" {
		return errors.New("--outdir is required")
	}
	doc, err := loadDocument(infile)
	if err != nil {
		return err
	}
	if err := util.EnsureDir(outdir); err != nil {
		return err
	}

	parts := split.ByRootHOG(doc)
	base := filepath.Base(infile)
	err = forEach(contextOf(cmd), len(parts), func(i int) error {
		data, err := model.Marshal(parts[i])
		if err != nil {
			return err
		}
		path := filepath.Join(outdir, split.FileName(i+1, base))
		logger.Debug("Writing split", zap.String("file", path))
		return util.WriteText(path, data)
	})
	if err != nil {
		return err
	}
	logger.Info("Split written", zap.Int("files", len(parts)), zap.String("outdir", outdir))
	return nil
}

package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/orthoxml/logger"
	"github.com/yumyai/orthoxml/pkg/filter"
	"github.com/yumyai/orthoxml/pkg/model"
)

var (
	scoreName string
	threshold float64
	strategy  string
	strict    bool
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Drop groups whose score is below a threshold",
	RunE:  runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&infile, "infile", "", "Path to the OrthoXML file")
	filterCmd.Flags().StringVar(&outfile, "outfile", "", "Write to this file instead of stdout")
	filterCmd.Flags().StringVar(&scoreName, "score-name", "", "Score id to filter on (required)")
	filterCmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum score value to keep a group (required)")
	filterCmd.Flags().StringVar(&strategy, "strategy", "topdown", "Filtering strategy: topdown or bottomup")
	filterCmd.Flags().BoolVar(&strict, "strict", false, "Fail when no group carries the score (default from ORTHOXML_STRICT_SCORES)")
	_ = filterCmd.MarkFlagRequired("score-name")
	_ = filterCmd.MarkFlagRequired("threshold")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	if scoreName == "" {
		return errors.New("--score-name is required")
	}
	s, err := filter.ParseStrategy(strategy)
	if err != nil {
		return err
	}
	opts := filter.Options{
		ScoreName: scoreName,
		Threshold: threshold,
		Strategy:  s,
		Strict:    strict || cfg.StrictScores,
	}

	doc, err := loadDocument(infile)
	if err != nil {
		return err
	}
	if !filter.HasScore(doc, scoreName) && !opts.Strict {
		logger.Warn("No group carries the score, nothing is filtered", zap.String("score", scoreName))
	}

	out, err := filter.Apply(doc, opts)
	if err != nil {
		return err
	}
	logger.Info("Filtered", zap.String("strategy", s.String()), zap.Float64("threshold", threshold),
		zap.Int("roothogs_before", len(doc.RootHOGs)), zap.Int("roothogs_after", len(out.RootHOGs)))

	data, err := model.Marshal(out)
	if err != nil {
		return err
	}
	return emit(cmd, data)
}

package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/orthoxml/internal/util"
	"github.com/yumyai/orthoxml/logger"
	"github.com/yumyai/orthoxml/pkg/convert"
	"github.com/yumyai/orthoxml/pkg/model"
)

var nhxInfiles []string

var fromNHXCmd = &cobra.Command{
	Use:   "from-nhx",
	Short: "Combine Newick/NHX gene trees into one OrthoXML file",
	RunE:  runFromNHX,
}

func init() {
	fromNHXCmd.Flags().StringSliceVar(&nhxInfiles, "infile", nil, "Newick/NHX files, repeat or comma separate for several")
	fromNHXCmd.Flags().StringVar(&outfile, "outfile", "", "Write to this file instead of stdout")
	fromNHXCmd.Flags().StringVar(&xrefTag, "xref-tag", "", "Gene attribute that stores the leaf label (default from ORTHOXML_XREF_TAG)")
	rootCmd.AddCommand(fromNHXCmd)
}

func runFromNHX(cmd *cobra.Command, args []string) error {
	files := append(append([]string(nil), nhxInfiles...), args...)
	if len(files) == 0 {
		return errors.New("--infile is required")
	}

	texts := make([]string, 0, len(files))
	for _, f := range files {
		b, err := util.ReadText(f)
		if err != nil {
			return err
		}
		texts = append(texts, string(b))
	}

	doc, err := convert.FromNewick(texts, convert.FromOptions{LabelAttr: labelAttr(), Origin: "newick_tree_import"})
	if err != nil {
		logger.Error("Cannot convert trees", zap.Strings("files", files), zap.Error(err))
		return err
	}
	doc.OriginVersion = "orthoxml-tools:" + Version
	logger.Info("Converted trees", zap.Int("files", len(files)), zap.Int("roothogs", len(doc.RootHOGs)),
		zap.Int("genes", len(doc.Genes)), zap.Int("taxa", doc.Taxonomy.Len()))

	data, err := model.Marshal(doc)
	if err != nil {
		return err
	}
	return emit(cmd, data)
}

package cmd

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/orthoxml/internal/util"
	"github.com/yumyai/orthoxml/logger"
	"github.com/yumyai/orthoxml/pkg/convert"
)

var toNHXCmd = &cobra.Command{
	Use:   "to-nhx",
	Short: "Write every rootHOG as a Newick/NHX gene tree",
	RunE:  runToNHX,
}

func init() {
	toNHXCmd.Flags().StringVar(&infile, "infile", "", "Path to the OrthoXML file")
	toNHXCmd.Flags().StringVar(&outdir, "outdir", "", "Directory for the tree files (required)")
	toNHXCmd.Flags().StringVar(&xrefTag, "xref-tag", "", "Gene attribute used as leaf label (default from ORTHOXML_XREF_TAG)")
	_ = toNHXCmd.MarkFlagRequired("outdir")
	rootCmd.AddCommand(toNHXCmd)
}

func runToNHX(cmd *cobra.Command, args []string) error {
	if outdir == "" {
		return errors.New("--outdir is required")
	}
	doc, err := loadDocument(infile)
	if err != nil {
		return err
	}
	trees, err := convert.ToNewick(doc, convert.ToOptions{LabelAttr: labelAttr()})
	if err != nil {
		return err
	}
	if err := util.EnsureDir(outdir); err != nil {
		return err
	}

	err = forEach(contextOf(cmd), len(trees), func(i int) error {
		path := filepath.Join(outdir, treeFileName(i, trees[i].RootID))
		logger.Debug("Writing tree", zap.String("file", path))
		return util.WriteText(path, []byte(trees[i].Text+"\n"))
	})
	if err != nil {
		return err
	}
	logger.Info("Trees written", zap.Int("trees", len(trees)), zap.String("outdir", outdir))
	return nil
}

// treeFileName is tree_<rootHOG id>.nwk, or the 1-based position when the
// rootHOG has no id.
func treeFileName(i int, rootID string) string {
	id := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(rootID)
	if id == "" {
		id = strconv.Itoa(i + 1)
	}
	return "tree_" + id + ".nwk"
}

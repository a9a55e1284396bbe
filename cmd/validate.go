package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/orthoxml/internal/util"
	"github.com/yumyai/orthoxml/logger"
	"github.com/yumyai/orthoxml/pkg/model"
	"github.com/yumyai/orthoxml/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an OrthoXML file against the schema structure",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&infile, "infile", "", "Path to the OrthoXML file")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if infile == "" {
		return errors.New("--infile is required")
	}
	text, err := util.ReadText(infile)
	if err != nil {
		return err
	}
	if err := validate.Check(text); err != nil {
		logger.Error("Validation failed", zap.String("file", infile), zap.Error(err))
		return err
	}
	// references are only checked by building the document
	if _, err := model.Parse(text); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", infile)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Print the species taxonomy as a tree",
	RunE:  runTaxonomy,
}

func init() {
	taxonomyCmd.Flags().StringVar(&infile, "infile", "", "Path to the OrthoXML file")
	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomy(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(infile)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), doc.Taxonomy.Render())
	return err
}

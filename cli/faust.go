package cli

import (
	"os"

	"github.com/spf13/cobra"

	"uqbar/faust"
)

var faustOpts faust.Options

var faustCmd = &cobra.Command{
	Use:   "faust",
	Short: "search directories, files, contents, and metadata",
	Long: "Matches wildcard or regex queries against directory names, file " +
		"names, file contents, or file metadata and prints TSV rows.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return faust.Run(os.Stdout, faustOpts)
	},
}

func init() {
	f := faustCmd.Flags()
	f.StringSliceVarP(&faustOpts.Locations, "location", "l", []string{"."}, "directories to search")
	f.StringSliceVarP(&faustOpts.Queries, "query", "q", nil, "wildcard or /regex/ search strings")
	f.StringSliceVarP(&faustOpts.Types, "type", "t", nil, "search types: dir, file, content, metadata, all")
	f.StringSliceVarP(&faustOpts.Outputs, "output", "o", nil, "output columns: absdir, reldir, filename, fileline, fullline, trim50, trim100, trim250, all")
	f.BoolVarP(&faustOpts.Recursive, "recursive", "r", false, "descend into subdirectories")
	f.BoolVar(&faustOpts.Colour, "colour", false, "highlight matches in the output")
	_ = faustCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(faustCmd)
}

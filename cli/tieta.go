package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"uqbar/tieta"
)

var (
	tietaOut        string
	tietaChunkWords int
)

var tietaCmd = &cobra.Command{
	Use:   "tieta <book.pdf>",
	Short: "extract a PDF's first chapter into study-note prompts",
	Long: "Locates the first chapter of a PDF, cleans and chunks its text, " +
		"and writes one scaffolded study-notes prompt per chunk.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := tietaOut
		if out == "" {
			out = strings.TrimSuffix(args[0], ".pdf") + "_prompts.txt"
		}
		return tieta.Run(args[0], out, tietaChunkWords)
	},
}

func init() {
	tietaCmd.Flags().StringVar(&tietaOut, "out", "", "output file (default <book>_prompts.txt)")
	tietaCmd.Flags().IntVar(&tietaChunkWords, "chunk-words", tieta.DefaultChunkWords, "words per prompt chunk")
	rootCmd.AddCommand(tietaCmd)
}

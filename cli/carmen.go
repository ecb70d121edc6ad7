package cli

import (
	"time"

	"github.com/spf13/cobra"

	"uqbar/carmen"
)

var (
	carmenCards string
	carmenBase  []int64
	carmenWait  time.Duration
)

var carmenCmd = &cobra.Command{
	Use:   "carmen",
	Short: "draw a seven-card tarot reading",
	Long: "Walks the seven positions of a reading in a terminal UI. Each " +
		"position asks for a number, mixes it with the base numbers, and " +
		"opens the drawn card in the system image viewer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, err := carmen.OpenDeck(carmenCards)
		if err != nil {
			return err
		}
		return carmen.Run(deck, carmenBase, carmenWait)
	},
}

var carmenRenameCmd = &cobra.Command{
	Use:   "rename <dir>",
	Short: "rename card scans to the sequential 0.jpg..N.jpg layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return carmen.RenameSequential(args[0])
	},
}

func init() {
	carmenCmd.Flags().StringVar(&carmenCards, "cards", "cards", "deck directory holding 0.jpg..77.jpg")
	carmenCmd.Flags().Int64SliceVar(&carmenBase, "base", nil, "base mixer numbers (defaults to the built-in base)")
	carmenCmd.Flags().DurationVar(&carmenWait, "wait", 2*time.Second, "pause before revealing each card")
	carmenCmd.AddCommand(carmenRenameCmd)
	rootCmd.AddCommand(carmenCmd)
}

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"uqbar/quincas"
)

var (
	quincasStart time.Duration
	quincasEnd   time.Duration
	quincasRatio float64
)

var quincasCmd = &cobra.Command{
	Use:   "quincas",
	Short: "sample, stretch, and remix audio",
}

var quincasCutCmd = &cobra.Command{
	Use:   "cut <in> <out>",
	Short: "cut a [start, end) span out of an audio file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return quincas.Cut(args[0], args[1], quincasStart, quincasEnd)
	},
}

var quincasStretchCmd = &cobra.Command{
	Use:   "stretch <in> <out>",
	Short: "scale an audio file's tempo",
	RunE: func(cmd *cobra.Command, args []string) error {
		return quincas.Stretch(args[0], args[1], quincasRatio)
	},
	Args: cobra.ExactArgs(2),
}

var quincasRenderCmd = &cobra.Command{
	Use:   "render <score.toml> <out.mp3>",
	Short: "overlay the score's samples onto silence and render mp3",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tl, err := quincas.LoadScore(args[0])
		if err != nil {
			return err
		}
		return tl.Render(args[1])
	},
}

func init() {
	quincasCutCmd.Flags().DurationVar(&quincasStart, "start", 0, "span start (e.g. 1.5s, 880ms)")
	quincasCutCmd.Flags().DurationVar(&quincasEnd, "end", 0, "span end, exclusive")
	_ = quincasCutCmd.MarkFlagRequired("end")

	quincasStretchCmd.Flags().Float64Var(&quincasRatio, "ratio", 1.0, "tempo ratio; above 1 speeds up")

	quincasCmd.AddCommand(quincasCutCmd, quincasStretchCmd, quincasRenderCmd)
	rootCmd.AddCommand(quincasCmd)
}

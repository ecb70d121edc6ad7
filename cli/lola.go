package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"uqbar/lola"
)

var (
	lolaFrom   string
	lolaUntil  string
	lolaRules  string
	lolaInputs string
	lolaOut    string
)

var lolaCmd = &cobra.Command{
	Use:   "lola",
	Short: "generate todo lists over a date range",
}

var lolaTodoCmd = &cobra.Command{
	Use:   "todo",
	Short: "write one todo block per day",
	Long: "Writes a dated todo block for every day between --from and " +
		"--until, tagged with the holiday rules and filled from the " +
		"recurring meetings, appointments, birthdays, and bills.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var rules []lola.Rule
		if lolaRules != "" {
			var err error
			if rules, err = lola.LoadRules(lolaRules); err != nil {
				return err
			}
		}

		var in lola.Inputs
		if lolaInputs != "" {
			var err error
			if in, err = lola.LoadInputs(lolaInputs); err != nil {
				return err
			}
		}

		w, closeOut, err := outWriter(lolaOut)
		if err != nil {
			return err
		}
		defer closeOut()
		return lola.Generate(w, lolaFrom, lolaUntil, rules, in)
	},
}

var lolaMondaysCmd = &cobra.Command{
	Use:   "mondays",
	Short: "list the Mondays in the range",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, closeOut, err := outWriter(lolaOut)
		if err != nil {
			return err
		}
		defer closeOut()
		return lola.Mondays(w, lolaFrom, lolaUntil)
	},
}

func init() {
	pf := lolaCmd.PersistentFlags()
	pf.StringVar(&lolaFrom, "from", "", "start date (DD.MM.YYYY or YYYY-MM-DD)")
	pf.StringVar(&lolaUntil, "until", "", "end date, inclusive")
	pf.StringVar(&lolaOut, "out", "", "output file (default stdout)")
	_ = lolaCmd.MarkPersistentFlagRequired("from")
	_ = lolaCmd.MarkPersistentFlagRequired("until")

	lolaTodoCmd.Flags().StringVar(&lolaRules, "rules", "", "holiday rules TOML file")
	lolaTodoCmd.Flags().StringVar(&lolaInputs, "inputs", "", "recurring entries TOML file")

	lolaCmd.AddCommand(lolaTodoCmd, lolaMondaysCmd)
	rootCmd.AddCommand(lolaCmd)
}

// outWriter opens path for writing, or returns stdout when path is empty.
func outWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

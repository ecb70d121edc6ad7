package cli

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"uqbar/acta/archive"
	"uqbar/acta/images"
	"uqbar/acta/llm"
	"uqbar/acta/runner"
	"uqbar/acta/trends"
	"uqbar/acta/upload"
	"uqbar/config"
	"uqbar/internal/s3"
	"uqbar/serve/events"
)

var (
	actaFrom   int
	actaUntil  int
	actaStages string
)

var actaCmd = &cobra.Command{
	Use:   "acta",
	Short: "run the news-video pipeline",
	Long: "Runs the thirteen-stage pipeline from trend fetch to upload. " +
		"Stages before --from load their checkpoints from the work directory; " +
		"a TOML toggle file overrides individual stages.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		toggles, err := actaToggles()
		if err != nil {
			return err
		}

		deps, closers, err := buildDeps(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closers.close()

		return runner.New(cfg, deps).Run(cmd.Context(), toggles)
	},
}

func init() {
	actaCmd.Flags().IntVar(&actaFrom, "from", 1, "first stage to execute; earlier stages load checkpoints")
	actaCmd.Flags().IntVar(&actaUntil, "until", runner.NumStages, "last stage to execute")
	actaCmd.Flags().StringVar(&actaStages, "stages", "", "TOML stage-toggle file (overrides --from/--until)")
	rootCmd.AddCommand(actaCmd)
}

func actaToggles() (runner.Toggles, error) {
	if actaStages != "" {
		return runner.FromTOML(actaStages)
	}
	return runner.FromRange(actaFrom, actaUntil)
}

// closerList collects the optional connections a run opened.
type closerList []func() error

func (cl closerList) close() {
	for _, fn := range cl {
		if err := fn(); err != nil {
			log.Warn("close failed", "err", err)
		}
	}
}

// buildDeps assembles the optional pipeline collaborators from the
// configuration. Anything unconfigured stays nil and its stage degrades
// to the documented fallback.
func buildDeps(ctx context.Context, cfg *config.Config) (runner.Deps, closerList, error) {
	var deps runner.Deps
	var closers closerList

	if cfg.OpenRouterAPIKey != "" {
		client, err := llm.New(cfg)
		if err != nil {
			return deps, closers, err
		}
		deps.LLM = client
	} else {
		log.Warn("OPENROUTER_API_KEY not set; LLM stages will use fallbacks")
	}

	if cfg.RedisAddr != "" {
		seen, err := trends.NewSeenFilter(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return deps, closers, err
		}
		deps.Seen = seen
		closers = append(closers, seen.Close)
	}

	if cfg.CohereAPIKey != "" {
		deps.Embedder = images.NewCohereImages(cfg.CohereAPIKey)
	}

	if _, err := os.Stat(cfg.ServiceAccountFile); err == nil {
		uploader, err := upload.New(ctx, cfg.ServiceAccountFile, cfg.PrivacyStatus)
		if err != nil {
			return deps, closers, err
		}
		deps.Uploader = uploader
	} else {
		log.Warn("no service account file; uploads disabled", "path", cfg.ServiceAccountFile)
	}

	if cfg.S3Bucket != "" {
		client, err := s3.New(ctx, s3.Config{Region: cfg.S3Region})
		if err != nil {
			return deps, closers, err
		}
		deps.Archive = archive.NewStore(client)
	}

	if cfg.KafkaBrokers != "" {
		producer, err := events.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		if err != nil {
			return deps, closers, err
		}
		deps.Publisher = producer
		closers = append(closers, producer.Close)
	}

	return deps, closers, nil
}

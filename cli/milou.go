package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"uqbar/milou"
)

var milouOut string

var milouCmd = &cobra.Command{
	Use:   "milou",
	Short: "download audio, books, and repositories",
}

var milouAudioCmd = &cobra.Command{
	Use:   "audio <url>...",
	Short: "download YouTube audio as m4a via yt-dlp",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := milou.DownloadAudioList(cmd.Context(), args, milouOut)
		if err != nil {
			return err
		}
		if ok < len(args) {
			return fmt.Errorf("downloaded %d of %d urls", ok, len(args))
		}
		return nil
	},
}

var milouBookCmd = &cobra.Command{
	Use:   "book <url>...",
	Short: "download files over HTTP, fixing names and extensions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := milou.NewDownloader()
		failed := 0
		for _, url := range args {
			// GitHub blob pages hold HTML; fetch the raw file instead.
			if blob, ok := milou.ParseBlobURL(url); ok {
				url = blob.RawURL()
			}
			path, note, err := d.Fetch(cmd.Context(), url, milouOut)
			if err != nil {
				log.Error("download failed", "url", url, "err", err)
				failed++
				continue
			}
			if note != "" {
				log.Warn(note, "path", path)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d downloads failed", failed, len(args))
		}
		return nil
	},
}

var milouRepoCmd = &cobra.Command{
	Use:   "repo <url>",
	Short: "shallow-clone a git repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, err := milou.CloneRepo(cmd.Context(), args[0], milouOut)
		if err != nil {
			return err
		}
		log.Info("cloned", "dest", dest)
		return nil
	},
}

func init() {
	milouCmd.PersistentFlags().StringVar(&milouOut, "out", ".", "output directory")
	milouCmd.AddCommand(milouAudioCmd, milouBookCmd, milouRepoCmd)
	rootCmd.AddCommand(milouCmd)
}

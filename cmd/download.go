package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/s3clone-cli/internal/utils"
)

var (
	downloadDir        string
	downloadNoProgress bool
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <bucket> <key>",
	Short: "Download a file to the local filesystem",
	Long: `Download a file into a local directory (default ~/Downloads). An
existing local file is never overwritten; a numbered name is used instead.

Examples:
  s3clone-cli download photos cat.png
  s3clone-cli download docs notes/a.txt -o .`,
	Args: cobra.ExactArgs(2),
	RunE: downloadFile,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadDir, "output", "o", "", "destination directory (default ~/Downloads)")
	downloadCmd.Flags().BoolVar(&downloadNoProgress, "no-progress", false, "disable progress bar")
}

func downloadFile(cmd *cobra.Command, args []string) error {
	bucket, key := args[0], args[1]

	client, err := newClient()
	if err != nil {
		return err
	}

	downloader, err := utils.NewFileDownloader(client, downloadDir)
	if err != nil {
		return err
	}

	var callback utils.ProgressCallback
	if !downloadNoProgress && !quiet {
		printer := utils.NewProgressPrinter(cmd.ErrOrStderr(), fmt.Sprintf("Downloading %s", key))
		defer printer.Close()
		callback = printer.Update
	}

	path, err := downloader.DownloadFile(context.Background(), bucket, key, callback)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", key, err)
	}

	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", path, humanize.IBytes(uint64(info.Size())))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}

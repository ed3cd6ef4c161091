package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/s3clone-cli/internal/utils"
)

var (
	urlCopy bool
	urlOpen bool
)

// urlCmd represents the url command
var urlCmd = &cobra.Command{
	Use:   "url <bucket> <key>",
	Short: "Print the download URL of a file",
	Long: `Print the retrieval URL of a file, optionally copying it to the
clipboard or opening it in the browser.

Examples:
  s3clone-cli url photos cat.png
  s3clone-cli url photos cat.png --copy
  s3clone-cli url photos cat.png --open`,
	Args: cobra.ExactArgs(2),
	RunE: printURL,
}

func init() {
	rootCmd.AddCommand(urlCmd)

	urlCmd.Flags().BoolVar(&urlCopy, "copy", false, "copy the URL to the clipboard")
	urlCmd.Flags().BoolVar(&urlOpen, "open", false, "open the URL in the default browser")
}

func printURL(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	url := client.DownloadURL(args[0], args[1])
	fmt.Fprintln(cmd.OutOrStdout(), url)

	if urlCopy {
		if err := utils.CopyToClipboard(url); err != nil {
			return fmt.Errorf("failed to copy URL: %w", err)
		}
		logrus.Debugf("Copied %s to clipboard", url)
	}

	if urlOpen {
		if err := utils.OpenURL(url); err != nil {
			return fmt.Errorf("failed to open URL: %w", err)
		}
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/s3clone-cli/internal/utils"
)

var (
	listPrefix   string
	showCategory bool
	showURL      bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <bucket>",
	Short: "List files in a bucket",
	Long: `List the object keys of a bucket as a table.

Examples:
  s3clone-cli list photos
  s3clone-cli list photos --prefix 2024/
  s3clone-cli list photos --url`,
	Args: cobra.ExactArgs(1),
	RunE: listFiles,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listPrefix, "prefix", "p", "", "only show keys with this prefix")
	listCmd.Flags().BoolVar(&showCategory, "category", true, "show file categories")
	listCmd.Flags().BoolVar(&showURL, "url", false, "show download URLs")
}

func listFiles(cmd *cobra.Command, args []string) error {
	bucket := args[0]

	client, err := newClient()
	if err != nil {
		return err
	}

	logrus.Debugf("Listing objects in bucket %s with prefix %s", bucket, listPrefix)

	keys, err := client.ListObjects(context.Background(), bucket)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if listPrefix != "" {
		filtered := keys[:0]
		for _, k := range keys {
			if strings.HasPrefix(k, listPrefix) {
				filtered = append(filtered, k)
			}
		}
		keys = filtered
	}

	return outputTable(cmd.OutOrStdout(), keys, func(key string) string {
		return client.DownloadURL(bucket, key)
	})
}

func outputTable(out io.Writer, keys []string, urlFor func(string) string) error {
	if len(keys) == 0 {
		fmt.Fprintln(out, "No files in this bucket")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := "NAME"
	if showCategory {
		header += "\tCATEGORY"
	}
	if showURL {
		header += "\tURL"
	}
	fmt.Fprintln(w, header)

	for _, key := range keys {
		row := key
		if showCategory {
			row += "\t" + utils.KeyCategory(key)
		}
		if showURL {
			row += "\t" + urlFor(key)
		}
		fmt.Fprintln(w, row)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTotal: %d files\n", len(keys))
	return nil
}

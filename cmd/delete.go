package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallelDeletes bounds concurrent delete requests
const maxParallelDeletes = 4

var deleteForce bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <bucket> <key>...",
	Short: "Delete files from a bucket",
	Long: `Delete one or more files from a bucket.

Examples:
  s3clone-cli delete photos cat.png                 # Delete a single file
  s3clone-cli delete docs a.txt notes/b.txt         # Delete several files
  s3clone-cli delete photos cat.png --force         # Delete without confirmation`,
	Args: cobra.MinimumNArgs(2),
	RunE: deleteFiles,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "force delete without confirmation")
}

func deleteFiles(cmd *cobra.Command, args []string) error {
	bucket, keys := args[0], args[1:]
	out := cmd.OutOrStdout()

	if len(keys) > 1 {
		fmt.Fprintf(out, "The following %d files will be deleted:\n", len(keys))
		for _, k := range keys {
			fmt.Fprintf(out, "  - %s\n", k)
		}
	}

	if !deleteForce {
		prompt := fmt.Sprintf("Are you sure you want to delete '%s'? (y/N): ", keys[0])
		if len(keys) > 1 {
			prompt = "\nAre you sure you want to delete all these files? This cannot be undone! (y/N): "
		}
		if !confirm(cmd, prompt) {
			fmt.Fprintln(out, "Delete cancelled.")
			return nil
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	var (
		mu     sync.Mutex
		failed []error
	)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(maxParallelDeletes)

	for _, key := range keys {
		key := key
		g.Go(func() error {
			logrus.Infof("Deleting file: %s/%s", bucket, key)
			if err := client.DeleteObject(ctx, bucket, key); err != nil {
				logrus.Errorf("Failed to delete %s: %v", key, err)
				mu.Lock()
				failed = append(failed, fmt.Errorf("failed to delete %s: %w", key, err))
				mu.Unlock()
				// keep going; every key gets its own attempt
				return nil
			}
			logrus.Debugf("Deleted: %s", key)
			return nil
		})
	}
	_ = g.Wait()

	deleted := len(keys) - len(failed)
	if len(failed) > 0 {
		fmt.Fprintf(out, "Deleted %d files successfully, %d failed:\n", deleted, len(failed))
		for _, err := range failed {
			fmt.Fprintf(out, "  Error: %v\n", err)
		}
		return fmt.Errorf("some files could not be deleted")
	}

	fmt.Fprintf(out, "Successfully deleted %d files\n", deleted)
	return nil
}

// confirm asks a y/N question on the command's input
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

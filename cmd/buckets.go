package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var bucketsDeleteForce bool

// bucketsCmd represents the buckets command
var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List, create and delete buckets",
	Long: `List the buckets on the server, or manage them with the create and
delete subcommands.

Examples:
  s3clone-cli buckets
  s3clone-cli buckets create photos
  s3clone-cli buckets delete photos --force`,
	Args: cobra.NoArgs,
	RunE: listBuckets,
}

var bucketsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a bucket",
	Args:  cobra.ExactArgs(1),
	RunE:  createBucket,
}

var bucketsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a bucket",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteBucket,
}

func init() {
	rootCmd.AddCommand(bucketsCmd)
	bucketsCmd.AddCommand(bucketsCreateCmd)
	bucketsCmd.AddCommand(bucketsDeleteCmd)

	bucketsDeleteCmd.Flags().BoolVarP(&bucketsDeleteForce, "force", "f", false, "delete without confirmation")
}

func listBuckets(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	buckets, err := client.ListBuckets(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(buckets) == 0 {
		fmt.Fprintln(out, "No buckets found")
		return nil
	}
	for _, b := range buckets {
		fmt.Fprintln(out, b)
	}
	return nil
}

func createBucket(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("please enter a bucket name")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.CreateBucket(context.Background(), name); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", name, err)
	}

	logrus.Infof("Created bucket %s", name)
	fmt.Fprintf(cmd.OutOrStdout(), "Bucket '%s' created successfully\n", name)
	return nil
}

func deleteBucket(cmd *cobra.Command, args []string) error {
	name := args[0]

	if !bucketsDeleteForce && !confirm(cmd, fmt.Sprintf("Are you sure you want to delete bucket '%s'? (y/N): ", name)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled.")
		return nil
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.DeleteBucket(context.Background(), name); err != nil {
		return fmt.Errorf("failed to delete bucket %s: %w", name, err)
	}

	logrus.Infof("Deleted bucket %s", name)
	fmt.Fprintf(cmd.OutOrStdout(), "Bucket '%s' deleted successfully\n", name)
	return nil
}

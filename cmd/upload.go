package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/s3clone-cli/internal/config"
	"github.com/HaiFongPan/s3clone-cli/internal/utils"
)

// progressThreshold is the smallest file that gets a progress bar
const progressThreshold = 100 * 1024

var (
	uploadKey         string
	uploadContentType string
	uploadCompress    string
	uploadNoProgress  bool
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <bucket> <file-path>",
	Short: "Upload a file to a bucket",
	Long: `Upload a local file to a bucket. Without --key the server picks the
object key.

Examples:
  s3clone-cli upload photos cat.png                  # Server-generated key
  s3clone-cli upload docs a.txt --key notes/a.txt    # Custom key
  s3clone-cli upload photos cat.png --compress high  # Re-encode image before upload
  s3clone-cli upload photos big.mov --no-progress    # Upload without progress bar`,
	Args: cobra.ExactArgs(2),
	RunE: uploadFile,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&uploadKey, "key", "k", "", "custom object key")
	uploadCmd.Flags().StringVarP(&uploadContentType, "content-type", "t", "", "specify content type")
	uploadCmd.Flags().StringVarP(&uploadCompress, "compress", "z", "", "image compression level (high, fine, normal, low)")
	uploadCmd.Flags().BoolVar(&uploadNoProgress, "no-progress", false, "disable progress bar")
}

func uploadFile(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	bucket, filePath := args[0], args[1]

	// CLI flag > config > default
	compressionLevel := uploadCompress
	if !cmd.Flags().Changed("compress") {
		compressionLevel = cfg.Upload.DefaultCompress
	}
	if compressionLevel != "" && !config.IsCompressionLevel(compressionLevel) {
		return fmt.Errorf("invalid compression level: %s (use: high, fine, normal, low)", compressionLevel)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to access file %s: %w", filePath, err)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	uploader := utils.NewFileUploader(client, &cfg.Upload)

	var callback utils.ProgressCallback
	if !uploadNoProgress && !quiet && info.Size() > progressThreshold {
		printer := utils.NewProgressPrinter(cmd.ErrOrStderr(), fmt.Sprintf("Uploading %s", filepath.Base(filePath)))
		defer printer.Close()
		callback = printer.Update
	}

	logrus.Infof("Uploading %s (%s) to %s", filePath, humanize.IBytes(uint64(info.Size())), bucket)

	result, err := uploader.UploadFileWithProgress(context.Background(), bucket, filePath, uploadKey, &utils.UploadOptions{
		ContentType:      uploadContentType,
		CompressionLevel: compressionLevel,
	}, callback)
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "File uploaded successfully as %s (%s)\n", result.Key, humanize.IBytes(uint64(result.Size)))
	fmt.Fprintln(cmd.OutOrStdout(), client.DownloadURL(bucket, result.Key))
	return nil
}

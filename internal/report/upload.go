package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
)

// Upload copies a local results file to the given bucket. The object name
// is prefix + the file's base name. Credentials come from the ambient
// environment (application default credentials).
func Upload(ctx context.Context, bucket, prefix, localPath string) (string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating storage client: %w", err)
	}
	defer client.Close()

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("opening results file: %w", err)
	}
	defer f.Close()

	object := prefix + filepath.Base(localPath)
	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("uploading %s: %w", localPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing upload of %s: %w", localPath, err)
	}
	return fmt.Sprintf("gs://%s/%s", bucket, object), nil
}

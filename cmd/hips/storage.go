package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// openBucket opens the output location. Anything with a URL scheme is
// passed to the blob registry as-is; a plain path is created on disk and
// opened through the file driver.
func openBucket(ctx context.Context, out string) (*blob.Bucket, error) {
	if strings.Contains(out, "://") {
		return blob.OpenBucket(ctx, out)
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return nil, err
	}
	// Skip metadata sidecar files so the tree stays directly servable.
	return blob.OpenBucket(ctx, "file://"+abs+"?metadata=skip")
}

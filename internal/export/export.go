// Package export turns opaque backend blobs into files on disk. Nothing
// here parses the payload; CSV, Excel and PDF bytes pass through as-is.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
)

// SuggestedFilename derives the reproducible download name
// <entity>_<ISO date>.<ext>, e.g. orders_2026-08-30.csv.
func SuggestedFilename(entity, ext string) string {
	return suggestedFilenameAt(entity, ext, time.Now().UTC())
}

func suggestedFilenameAt(entity, ext string, at time.Time) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s_%s.%s", entity, at.Format("2006-01-02"), ext)
}

// FormatExt maps an export format to its file extension. The excel
// endpoint ships xlsx payloads.
func FormatExt(format string) string {
	if format == "excel" {
		return "xlsx"
	}
	return format
}

// Save writes a blob to dir/filename, creating dir if needed, and returns
// the full path. A progress bar tracks the write for large exports.
func Save(dir, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	target := filepath.Join(dir, filepath.Base(filename))
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", filename, err)
	}
	defer out.Close()

	bar := progressbar.DefaultBytes(int64(len(data)), "saving "+filename)
	if _, err := io.Copy(io.MultiWriter(out, bar), bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return target, nil
}

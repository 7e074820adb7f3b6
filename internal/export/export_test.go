package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSuggestedFilename(t *testing.T) {
	at := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	cases := []struct {
		entity, ext, want string
	}{
		{"orders", "csv", "orders_2026-08-30.csv"},
		{"orders", "xlsx", "orders_2026-08-30.xlsx"},
		{"selection_list", ".pdf", "selection_list_2026-08-30.pdf"},
	}
	for _, tc := range cases {
		if got := suggestedFilenameAt(tc.entity, tc.ext, at); got != tc.want {
			t.Fatalf("suggestedFilenameAt(%q, %q) = %q, want %q", tc.entity, tc.ext, got, tc.want)
		}
	}
}

func TestFormatExt(t *testing.T) {
	if got := FormatExt("excel"); got != "xlsx" {
		t.Fatalf("excel format must map to xlsx, got %q", got)
	}
	if got := FormatExt("csv"); got != "csv" {
		t.Fatalf("csv must pass through, got %q", got)
	}
	if got := FormatExt("pdf"); got != "pdf" {
		t.Fatalf("pdf must pass through, got %q", got)
	}
}

func TestSaveWritesBlobAndReturnsPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	payload := []byte{0x25, 0x50, 0x44, 0x46, 0x00}

	path, err := Save(dir, "orders_2026-08-30.pdf", payload)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "orders_2026-08-30.pdf" {
		t.Fatalf("unexpected path: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != string(payload) {
		t.Fatalf("payload must be written unmodified")
	}
}

func TestSaveStripsDirectoryComponentsFromFilename(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(dir, "../escape.csv", []byte("a,b\n"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("file must stay inside the download dir: %s", path)
	}
}

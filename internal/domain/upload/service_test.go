package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deckgenhq/deckgen/internal/infra/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db, t.TempDir())
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	svc := newTestService(t)

	body := "문서 내용입니다."
	up, err := svc.Save(context.Background(), "제안서.txt", "text/plain", int64(len(body)), strings.NewReader(body))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if up.ID == "" || up.OriginalName != "제안서.txt" || up.Extension != ".txt" {
		t.Errorf("upload = %+v", up)
	}
	if !strings.HasSuffix(up.SavedName, ".txt") || strings.Contains(up.SavedName, "제안서") {
		t.Errorf("saved name must be generated: %q", up.SavedName)
	}

	data, err := os.ReadFile(up.StoragePath)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != body {
		t.Errorf("stored content = %q", data)
	}

	got, err := svc.Get(context.Background(), up.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.OriginalName != up.OriginalName || got.StoragePath != up.StoragePath || got.SizeBytes != int64(len(body)) {
		t.Errorf("got = %+v", got)
	}
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Save(context.Background(), "malware.exe", "application/octet-stream", 4, strings.NewReader("data"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}
}

func TestSaveRejectsDeclaredOversize(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Save(context.Background(), "big.pdf", "application/pdf", MaxFileSize+1, strings.NewReader("x"))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got %v, want ErrTooLarge", err)
	}
}

func TestSaveRejectsActualOversize(t *testing.T) {
	svc := newTestService(t)
	// Declared size lies; the byte count decides.
	big := strings.NewReader(strings.Repeat("a", MaxFileSize+10))
	_, err := svc.Save(context.Background(), "big.txt", "text/plain", 10, big)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got %v, want ErrTooLarge", err)
	}
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Get(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestAllowedExtension(t *testing.T) {
	for _, name := range []string{"a.txt", "b.DOCX", "c.doc", "d.pdf", "e.hwp"} {
		if !AllowedExtension(name) {
			t.Errorf("%s must be allowed", name)
		}
	}
	for _, name := range []string{"a.exe", "b.csv", "noext", "c.txt.zip"} {
		if AllowedExtension(name) {
			t.Errorf("%s must be rejected", name)
		}
	}
}

func TestSaveCleansUpOnOversize(t *testing.T) {
	svc := newTestService(t)
	big := strings.NewReader(strings.Repeat("a", MaxFileSize+10))
	_, _ = svc.Save(context.Background(), "big.txt", "text/plain", 10, big)

	entries, err := os.ReadDir(svc.dir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	for _, e := range entries {
		t.Errorf("leftover file %s", filepath.Join(svc.dir, e.Name()))
	}
}

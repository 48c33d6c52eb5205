package backup

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "redundancy.txt")
	source := filepath.Join(dir, "notes.txt")

	write(t, archive,
		"2024-01-01 09:00:00--old::kept",
		"2024-01-02 09:00:00--work::edited later",
	)
	write(t, source,
		"2024-01-03 09:00:00--work::new one",
		"2024-01-02 09:00:00--work::edited",
		"",
		"2024-01-01 09:00:00--old::kept",
	)

	added, err := Merge(archive, source)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 appended line, got %d", added)
	}
	want := "2024-01-01 09:00:00--old::kept\n" +
		"2024-01-02 09:00:00--work::edited later\n" +
		"2024-01-03 09:00:00--work::new one\n"
	if got := read(t, archive); got != want {
		t.Fatalf("unexpected archive:\n%s\nwant:\n%s", got, want)
	}
}

func TestMergeIdempotent(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "redundancy.txt")
	source := filepath.Join(dir, "notes.txt")
	write(t, source,
		"2024-01-03 09:00:00--a::x",
		"2024-01-02 09:00:00--b::y",
	)

	if _, err := Merge(archive, source); err != nil {
		t.Fatal(err)
	}
	once := read(t, archive)

	added, err := Merge(archive, source)
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 {
		t.Fatalf("second merge appended %d lines", added)
	}
	if twice := read(t, archive); twice != once {
		t.Fatalf("archive changed on second merge:\n%s\nvs\n%s", twice, once)
	}
}

func TestMergeMissingFiles(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "redundancy.txt")
	added, err := Merge(archive, filepath.Join(dir, "missing.txt"))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if added != 0 {
		t.Fatalf("expected nothing appended, got %d", added)
	}
	if got := read(t, archive); got != "" {
		t.Fatalf("expected empty archive, got %q", got)
	}
}

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mynotes.txt")

	if _, err := Copy(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	write(t, path, "2024-01-01 09:00:00--a::b")
	dst, err := Copy(path)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if want := filepath.Join(dir, "COPY - mynotes.txt"); dst != want {
		t.Fatalf("expected %s, got %s", want, dst)
	}
	if read(t, dst) != read(t, path) {
		t.Fatal("backup differs from original")
	}
}

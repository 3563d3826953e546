package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	arc, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("zip.OpenReader() error = %v", err)
	}
	defer arc.Close()

	out := make(map[string]string)
	for _, f := range arc.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Open(%s) error = %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("ReadAll(%s) error = %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(dir, "input.html")
	if err := os.WriteFile(src, []byte("<p>before</p>"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := r.StoreCopy("input.html", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// copy is not affected by later changes
	if err := os.WriteFile(src, []byte("<p>after</p>"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	r.Store("live.html", src)
	r.StoreData("dump.txt", []byte("one"))
	r.StoreData("dump.txt", []byte("two"))
	r.Store("absent", filepath.Join(dir, "absent"))

	copies := append([]string(nil), r.copies...)
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}

	files := readArchive(t, conf.Destination)
	if files["input.html"] != "<p>before</p>" {
		t.Errorf("copied file = %q", files["input.html"])
	}
	if files["live.html"] != "<p>after</p>" {
		t.Errorf("stored file = %q", files["live.html"])
	}
	if files["dump.txt"] != "one" {
		t.Errorf("data = %q", files["dump.txt"])
	}
	dumps := 0
	for name := range files {
		if strings.HasPrefix(name, "dump.txt") {
			dumps++
		}
	}
	if dumps != 2 {
		t.Errorf("expected 2 versioned data entries, got %d", dumps)
	}
	if _, ok := files["absent"]; ok {
		t.Errorf("absent file archived")
	}
	if !strings.Contains(files["MANIFEST"], "live.html") {
		t.Errorf("MANIFEST = %q", files["MANIFEST"])
	}

	for _, c := range copies {
		if _, err := os.Stat(c); !os.IsNotExist(err) {
			t.Errorf("temporary copy %s was not removed", c)
		}
	}
}

func TestReportStoreDirectory(t *testing.T) {
	dir := t.TempDir()
	r, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	src := filepath.Join(dir, "in")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "a.html"), []byte("a"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := r.StoreCopy("inputs", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := readArchive(t, r.Name())["inputs/sub/a.html"]; got != "a" {
		t.Fatalf("directory entry = %q", got)
	}
}

func TestReportNil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report error = %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name on nil report = %q", r.Name())
	}
	if err := (&Report{entries: make(map[string]entry)}).Close(); err != nil {
		t.Errorf("Close with nil file error = %v", err)
	}
}

package jsonfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	in := []item{{"a", 1}, {"b", 2}}
	if err := Write(path, in, FileModeReadOnly); err != nil {
		t.Fatalf("Write err=%v", err)
	}

	var out []item
	exists, err := Read(path, &out)
	if err != nil || !exists {
		t.Fatalf("Read exists=%v err=%v", exists, err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("got=%+v want=%+v", out, in)
	}

	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "\n"+Indent+"{") {
		t.Fatalf("output is not indented:\n%s", raw)
	}
}

func TestWriteOverwritesLongerContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	if err := Write(path, []item{{"long-name-long-name", 1}, {"x", 2}, {"y", 3}}, FileModeReadOnly); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, []item{}, FileModeReadOnly); err != nil {
		t.Fatal(err)
	}
	var out []item
	if _, err := Read(path, &out); err != nil {
		t.Fatalf("leftover bytes after truncate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d items want 0", len(out))
	}
}

func TestReadMissingFile(t *testing.T) {
	var out []item
	exists, err := Read(filepath.Join(t.TempDir(), "nope.json"), &out)
	if exists || err != nil {
		t.Fatalf("exists=%v err=%v, want false/nil", exists, err)
	}
}

func TestReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[{"name": "a",`), FileModeReadOnly); err != nil {
		t.Fatal(err)
	}
	var out []item
	exists, err := Read(path, &out)
	if !exists || err == nil {
		t.Fatalf("exists=%v err=%v, want true/non-nil", exists, err)
	}
}

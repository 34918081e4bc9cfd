// file: cmd/d88tool/main_test.go

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunWorkflow(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "work.d88")
	hostPath := filepath.Join(dir, "data.txt")
	outPath := filepath.Join(dir, "extracted.txt")
	content := []byte("line one\r\nline two\r\n")

	if err := os.WriteFile(hostPath, content, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	steps := []struct {
		name string
		args []string
		want int
	}{
		{"create", []string{"create", imagePath, "--name", "WORK", "--quiet"}, 0},
		{"add", []string{"add", imagePath, hostPath, "--quiet"}, 0},
		{"add duplicate", []string{"add", imagePath, hostPath, "--quiet"}, 2},
		{"list", []string{"list", imagePath}, 0},
		{"info", []string{"info", imagePath, "--json"}, 0},
		{"extract", []string{"extract", imagePath, "data.txt", "--out", outPath, "--quiet"}, 0},
		{"unknown file", []string{"extract", imagePath, "gone.txt", "--out", outPath, "--force"}, 1},
	}
	for _, s := range steps {
		if got := run(s.args); got != s.want {
			t.Fatalf("%s: exit %d, want %d", s.name, got, s.want)
		}
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got) != 128 {
		t.Fatalf("extracted %d bytes, want one full record", len(got))
	}
	if !bytes.Equal(got[:len(content)], content) {
		t.Error("extracted content does not match source")
	}
	if got[len(content)] != 0x1A {
		t.Error("record padding is not soft-EOF bytes")
	}
}

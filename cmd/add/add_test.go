// file: cmd/add/add_test.go

package add

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cpmadd88/pkg/cpmfs"
	"cpmadd88/pkg/d88"
)

func newImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disk.d88")
	img, err := d88.Create(path, d88.DefaultGeometry(), "TEST")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	img.Close()
	return path
}

func writeHostFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestAdd(t *testing.T) {
	imagePath := newImage(t)
	content := []byte("10 PRINT \"HELLO\"\r\n20 GOTO 10\r\n")
	hostPath := writeHostFile(t, "hello.bas", content)

	if err := Add(imagePath, hostPath, &AddOptions{Quiet: true}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	img, err := d88.OpenReadOnly(imagePath)
	if err != nil {
		t.Fatalf("OpenReadOnly failed: %v", err)
	}
	defer img.Close()

	name, err := cpmfs.EncodeName("hello.bas")
	if err != nil {
		t.Fatalf("EncodeName failed: %v", err)
	}
	got, err := cpmfs.ReadFile(img, name)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(got[:len(content)], content) {
		t.Error("stored content does not match host file")
	}
}

func TestAddDuplicate(t *testing.T) {
	imagePath := newImage(t)
	hostPath := writeHostFile(t, "dup.dat", []byte("payload"))

	if err := Add(imagePath, hostPath, &AddOptions{Quiet: true}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	err := Add(imagePath, hostPath, &AddOptions{Quiet: true})
	if !errors.Is(err, cpmfs.ErrNameExists) {
		t.Errorf("second Add = %v, want ErrNameExists", err)
	}
}

func TestAddNoExtension(t *testing.T) {
	imagePath := newImage(t)
	hostPath := writeHostFile(t, "noext", []byte("payload"))

	err := Add(imagePath, hostPath, &AddOptions{Quiet: true})
	if !errors.Is(err, cpmfs.ErrInvalidFilename) {
		t.Errorf("Add = %v, want ErrInvalidFilename", err)
	}
}

func TestAddMissingSource(t *testing.T) {
	imagePath := newImage(t)
	err := Add(imagePath, filepath.Join(t.TempDir(), "gone.dat"), &AddOptions{Quiet: true})
	if err == nil {
		t.Error("Add with missing source should fail")
	}
}

func TestAddMissingImage(t *testing.T) {
	hostPath := writeHostFile(t, "some.dat", []byte("payload"))
	err := Add(filepath.Join(t.TempDir(), "gone.d88"), hostPath, &AddOptions{Quiet: true})
	if err == nil {
		t.Error("Add with missing image should fail")
	}
}

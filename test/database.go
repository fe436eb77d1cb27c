package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns the path for a throwaway sqlite database, unique to
// the calling test. The file is removed together with the test's
// temporary directory.
func TmpFile(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), uuid.New().String()+".db")
}

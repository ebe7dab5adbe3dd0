// Package testutil provides a small sample corpus shared by tests.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/spf13/afero"
)

// CorpusDir is where CorpusFs places the sample corpus.
const CorpusDir = "config/original_chunked"

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	p := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// CorpusFs returns an in-memory filesystem with every file of the sample
// corpus copied into CorpusDir.
func CorpusFs() (afero.Fs, error) {
	fsys := afero.NewMemMapFs()
	entries, err := fs.ReadDir(TestdataFS, "testdata/corpus")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		data, err := ReadTestData("corpus/" + e.Name())
		if err != nil {
			return nil, err
		}
		if err := afero.WriteFile(fsys, path.Join(CorpusDir, e.Name()), data, 0o644); err != nil {
			return nil, err
		}
	}
	return fsys, nil
}

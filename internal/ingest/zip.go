package ingest

import (
	"archive/zip"
	"io"

	"github.com/rotisserie/eris"
)

// readZIPSingle returns the name and content of the one file inside a ZIP
// archive. Directory entries are ignored.
func readZIPSingle(path string) (string, []byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", nil, eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	var files []*zip.File
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}
	if len(files) != 1 {
		return "", nil, eris.Errorf("zip: expected exactly 1 file, got %d", len(files))
	}

	rc, err := files[0].Open()
	if err != nil {
		return "", nil, eris.Wrap(err, "zip: open entry")
	}
	defer rc.Close() //nolint:errcheck

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", nil, eris.Wrap(err, "zip: read entry")
	}
	return files[0].Name, data, nil
}

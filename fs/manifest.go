package fs

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/obrtools/obrdocs"
)

// WriteManifest serializes the run manifest to path as indented JSON. HTML
// escaping is disabled so URLs and titles with &, < or > stay readable.
func WriteManifest(path string, manifest *obrdocs.RunManifest) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return obrdocs.Errorf(obrdocs.EINTERNAL, "encoding manifest: %v", err)
	}
	return WriteFileAtomic(path, buf.Bytes())
}

// ReadManifest loads a run manifest written by WriteManifest.
func ReadManifest(path string) (*obrdocs.RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, obrdocs.Errorf(obrdocs.ENOTFOUND, "manifest not found at %s", path)
		}
		return nil, obrdocs.Errorf(obrdocs.EINTERNAL, "reading manifest: %v", err)
	}
	var manifest obrdocs.RunManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, obrdocs.Errorf(obrdocs.EINVALID, "decoding manifest: %v", err)
	}
	return &manifest, nil
}

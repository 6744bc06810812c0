// Package output serializes conversion payloads.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/models"
)

// ToJSON encodes the payload. Non-ASCII text and HTML characters are kept
// verbatim; pretty output uses a two-space indent.
func ToJSON(p *models.Payload, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteJSON writes the payload to path, creating parent directories.
// The file is replaced atomically so readers never see a partial document.
func WriteJSON(path string, p *models.Payload, pretty bool) error {
	data, err := ToJSON(p, pretty)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadJSON loads a payload previously written by WriteJSON. WriteJSON never
// emits null; a null value in a hand-edited file reads back as "", the same
// as an empty cell. Nested objects and arrays are rejected.
func ReadJSON(path string) (*models.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p models.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if p.Records == nil {
		p.Records = models.NewRecordSet()
	}
	return &p, nil
}

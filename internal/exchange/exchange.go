// Package exchange reads and writes the notebook JSON exchange file.
package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

// DefaultFilename is the suggested export file name.
const DefaultFilename = "cuaderno-practicas.json"

// ErrInvalidFormat is returned for documents that are not a notebook.
var ErrInvalidFormat = errors.New("invalid notebook file")

type document struct {
	Config *model.NotebookConfig `json:"config"`
	Days   json.RawMessage       `json:"dias"`
}

// Marshal encodes the notebook as indented JSON.
func Marshal(nb model.Notebook) ([]byte, error) {
	if nb.Days == nil {
		nb.Days = []model.Day{}
	}
	data, err := json.MarshalIndent(nb, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode notebook: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes and validates an exchange document. The result is
// normalized. Documents without a "dias" array are rejected with
// ErrInvalidFormat.
func Unmarshal(data []byte) (model.Notebook, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Notebook{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	raw := bytes.TrimSpace(doc.Days)
	if len(raw) == 0 || raw[0] != '[' {
		return model.Notebook{}, fmt.Errorf("%w: \"dias\" must be an array", ErrInvalidFormat)
	}
	var inputs []model.DayInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		return model.Notebook{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if err := Validate(doc.Config, inputs); err != nil {
		return model.Notebook{}, err
	}
	return model.Notebook{
		Config: doc.Config,
		Days:   model.NormalizeDays(inputs, doc.Config),
	}, nil
}

// Read decodes a notebook from r.
func Read(r io.Reader) (model.Notebook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Notebook{}, fmt.Errorf("failed to read notebook: %w", err)
	}
	return Unmarshal(data)
}

// Write encodes the notebook to w.
func Write(w io.Writer, nb model.Notebook) error {
	data, err := Marshal(nb)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write notebook: %w", err)
	}
	return nil
}

// Import loads a notebook file from disk.
func Import(path string) (model.Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Notebook{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	nb, err := Unmarshal(data)
	if err != nil {
		return model.Notebook{}, fmt.Errorf("failed to import %s: %w", path, err)
	}
	return nb, nil
}

// Export writes the notebook to path, replacing any existing file.
func Export(path string, nb model.Notebook) error {
	return WriteFileAtomic(path, "cuaderno-*.json", func(w io.Writer) error {
		return Write(w, nb)
	})
}

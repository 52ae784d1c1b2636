// Package dataset loads a named transcript and its ground-truth speaker labels
// from the raw and processed data directories.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"speaker-linker/pkg/linker"
	"speaker-linker/pkg/transcript"
)

// ErrMissingInput marks a required transcript or label file that is absent or
// empty.
var ErrMissingInput = errors.New("missing input")

type Data struct {
	Name     string
	Document transcript.Document
	Labels   *linker.Mapping
}

type Loader struct {
	RawDir       string
	ProcessedDir string
}

// Load reads <RawDir>/<name>.txt (or .pdf) and <ProcessedDir>/<name>.json.
func (l Loader) Load(name string) (*Data, error) {
	zap.S().Infof("Loading dataset %q", name)

	rawPath, err := l.rawPath(name)
	if err != nil {
		return nil, err
	}
	text, err := ReadText(rawPath)
	if err != nil {
		return nil, err
	}

	labels, err := ReadLabels(filepath.Join(l.ProcessedDir, name+".json"))
	if err != nil {
		return nil, err
	}

	zap.S().Infof("Loaded dataset %q: %d characters, %d labels", name, len(text), labels.Len())
	return &Data{Name: name, Document: transcript.NewDocument(text), Labels: labels}, nil
}

func (l Loader) rawPath(name string) (string, error) {
	for _, ext := range []string{".txt", ".pdf"} {
		p := filepath.Join(l.RawDir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: no transcript %q (.txt or .pdf) in %s", ErrMissingInput, name, l.RawDir)
}

// ReadText returns the plain text of a transcript file. PDF files are
// converted with their text layer; anything else is read as UTF-8.
func ReadText(path string) (string, error) {
	var text string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = readPDF(path)
	} else {
		var b []byte
		b, err = os.ReadFile(path)
		text = string(b)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %v", ErrMissingInput, err)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrMissingInput, path)
	}
	return text, nil
}

func readPDF(path string) (string, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return buf.String(), nil
}

// ReadLabels decodes a ground-truth JSON object of label to name.
func ReadLabels(path string) (*linker.Mapping, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	labels := linker.NewMapping()
	if err := json.Unmarshal(b, labels); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return labels, nil
}

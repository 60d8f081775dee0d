package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"fieldsync/cmd/fieldsync/options"
	"fieldsync/internal/dom"
)

// loadDocument parses the HTML file at path. An empty path yields a nil
// document.
func loadDocument(path string) (*dom.Document, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}

	return doc, nil
}

// writeDocument renders doc to path, or to stdout for "-".
func writeDocument(doc *dom.Document, path string, stdout io.Writer) error {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	if options.IsStdout(path) {
		_, err := buf.WriteTo(stdout)
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}

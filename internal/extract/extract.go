package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"proposal-backend/internal/shared/telemetry"
)

// ErrNoText signals that no usable text could be obtained from a
// document: the file could not be read, the format parser failed, or
// every page/paragraph was empty. Callers must treat it as "cannot
// proceed", never as an empty document that analyzed clean.
var ErrNoText = errors.New("no extractable text")

// Extract pulls normalized plain text from a document on disk,
// dispatching by file extension (.pdf, .docx, .doc).
// Libraries used: github.com/ledongthuc/pdf (PDF); DOCX bodies are
// read straight from the word/document.xml zip entry.
func Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		telemetry.Error("document read failed", map[string]any{"path": path, "err": err.Error()})
		return "", fmt.Errorf("extract %s: %w", path, ErrNoText)
	}
	return ExtractBytes(data, filepath.Ext(path))
}

// ExtractBytes extracts normalized text from an in-memory payload.
// The extension (with or without leading dot) selects the reader.
func ExtractBytes(data []byte, ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))

	var raw string
	var err error
	switch ext {
	case "pdf":
		raw, err = extractPDF(data)
	case "docx":
		raw, err = extractDOCX(data)
	case "doc":
		// Legacy .doc has no dedicated reader; files with this
		// extension are frequently OOXML in disguise, so try the
		// DOCX path before giving up.
		raw, err = extractDOCX(data)
	default:
		err = fmt.Errorf("unsupported extension %q", ext)
	}
	if err != nil {
		telemetry.Error("text extraction failed", map[string]any{"ext": ext, "err": err.Error()})
		return "", fmt.Errorf("extract .%s: %w", ext, ErrNoText)
	}

	text := Normalize(raw)
	if text == "" {
		return "", fmt.Errorf("extract .%s: %w", ext, ErrNoText)
	}
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	// ledongthuc/pdf can panic on malformed content streams; fold
	// that into the ordinary extraction-failure path.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			pages = append(pages, pageText)
		}
	}
	if len(pages) == 0 {
		return "", errors.New("no non-empty pages")
	}
	return strings.Join(pages, "\n"), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	paragraphs := docxParagraphs(string(raw))
	if len(paragraphs) == 0 {
		return "", errors.New("no non-empty paragraphs")
	}
	return strings.Join(paragraphs, "\n"), nil
}

// docxParagraphs walks the WordprocessingML body and collects the
// character data of each paragraph, including table cell text.
func docxParagraphs(raw string) []string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var paragraphs []string
	var current strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil
		}
		switch t := tok.(type) {
		case xml.CharData:
			current.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if text := current.String(); strings.TrimSpace(text) != "" {
					paragraphs = append(paragraphs, text)
				}
				current.Reset()
			}
		}
	}
	if text := current.String(); strings.TrimSpace(text) != "" {
		paragraphs = append(paragraphs, text)
	}
	return paragraphs
}

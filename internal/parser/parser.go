package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/exitsurvey/internal/survey"
)

var (
	// ErrUnsupportedFormat is returned for file types no parser handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNoTable is returned when a document carries no table to read rows from.
	ErrNoTable = errors.New("no table found")
)

// Parser converts raw file bytes into survey rows. The first table row is
// the header; every data row carries every header.
type Parser interface {
	Parse(r io.Reader, filename string) (*survey.Sheet, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".xlsx":     true,
	".xlsm":     true,
	".xls":      true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		return &XLSXParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm", ".xls":
		return &HTMLParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Format returns the lowercase extension without the dot, for labels.
func Format(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// sheetName strips the extension from a filename.
func sheetName(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}

package parser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dgallion1/exitsurvey/internal/survey"
)

// XLSXParser reads the first worksheet of an Office Open XML workbook.
type XLSXParser struct{}

func (p *XLSXParser) Parse(r io.Reader, filename string) (*survey.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: %w", ErrNoTable)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	sheet := buildSheet(sheets[0], rows)
	return sheet, nil
}

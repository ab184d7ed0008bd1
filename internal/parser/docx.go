package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/exitsurvey/internal/survey"
)

// DOCXParser reads the first table of a Word document.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*survey.Sheet, error) {
	// go-docx needs a ReaderAt and size.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var table *docx.Table
	for _, item := range doc.Document.Body.Items {
		if t, ok := item.(*docx.Table); ok {
			table = t
			break
		}
	}
	if table == nil {
		return nil, fmt.Errorf("docx: %w", ErrNoTable)
	}

	records := make([][]string, 0, len(table.TableRows))
	for _, row := range table.TableRows {
		rec := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			paras := make([]string, 0, len(cell.Paragraphs))
			for _, para := range cell.Paragraphs {
				paras = append(paras, docxParagraphText(para))
			}
			rec = append(rec, joinLines(strings.Join(paras, "\n")))
		}
		records = append(records, rec)
	}

	return buildSheet(sheetName(filename), records), nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			switch c := rc.(type) {
			case *docx.Text:
				buf.WriteString(c.Text)
			case *docx.BarterRabbet:
				buf.WriteByte('\n')
			case *docx.Tab:
				buf.WriteByte(' ')
			}
		}
	}
	return buf.String()
}

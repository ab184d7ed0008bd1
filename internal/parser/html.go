package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/exitsurvey/internal/survey"
)

// ole2Magic opens a Compound File Binary document, the legacy .xls format.
var ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// HTMLParser reads the first <table> of an HTML document. Spreadsheet
// exports saved as .xls are usually HTML and go through here too.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*survey.Sheet, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(ole2Magic)); bytes.Equal(head, ole2Magic) {
		return nil, fmt.Errorf("binary excel workbook: %w", ErrUnsupportedFormat)
	}

	doc, err := html.Parse(br)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := findElement(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("html: %w", ErrNoTable)
	}

	var records [][]string
	for _, tr := range tableRows(table) {
		var rec []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				rec = append(rec, cellText(c))
			}
		}
		records = append(records, rec)
	}

	return buildSheet(sheetName(filename), records), nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// tableRows returns the <tr> elements of table in document order,
// without descending into nested tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "tr":
				rows = append(rows, c)
			case "thead", "tbody", "tfoot":
				walk(c)
			}
		}
	}
	walk(table)
	return rows
}

// Line breaks in markup source are layout, not content.
var sourceBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// cellText flattens a cell to text. <br> and block boundaries become line
// breaks; other whitespace collapses to single spaces.
func cellText(cell *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(sourceBreaks.Replace(n.Data))
			return
		case html.ElementNode:
			switch n.Data {
			case "br":
				buf.WriteByte('\n')
				return
			case "script", "style":
				return
			case "p", "div", "li", "tr":
				buf.WriteByte('\n')
				defer buf.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	for c := cell.FirstChild; c != nil; c = c.NextSibling {
		extract(c)
	}
	return joinLines(buf.String())
}

// joinLines collapses spaces within each line and drops empty lines.
func joinLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

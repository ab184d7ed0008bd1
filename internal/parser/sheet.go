package parser

import (
	"strconv"
	"strings"

	"github.com/dgallion1/exitsurvey/internal/survey"
)

// buildSheet turns a table of records into a sheet. The first record is the
// header row. Blank headers become __EMPTY, __EMPTY_1, ...; repeated headers
// get _1, _2 suffixes; data rows whose cells are all blank are dropped.
func buildSheet(name string, records [][]string) *survey.Sheet {
	sheet := &survey.Sheet{Name: name, Rows: []survey.Row{}}
	if len(records) == 0 {
		return sheet
	}

	width := 0
	for _, rec := range records {
		width = max(width, len(rec))
	}
	sheet.Headers = uniqueHeaders(records[0], width)

	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		sheet.Rows = append(sheet.Rows, survey.NewRow(sheet.Headers, rec))
	}
	return sheet
}

func uniqueHeaders(raw []string, width int) []string {
	headers := make([]string, width)
	used := make(map[string]bool, width)
	suffix := make(map[string]int)
	for i := range width {
		base := ""
		if i < len(raw) {
			base = strings.TrimSpace(raw[i])
		}
		if base == "" {
			base = "__EMPTY"
		}
		name := base
		for used[name] {
			suffix[base]++
			name = base + "_" + strconv.Itoa(suffix[base])
		}
		used[name] = true
		headers[i] = name
	}
	return headers
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

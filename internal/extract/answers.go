package extract

import (
	"iter"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/exitsurvey/internal/survey"
)

// QuestionAnswer is one numbered sub-answer taken from a survey cell.
type QuestionAnswer struct {
	Question string `json:"questionColumn"`
	Ordinal  int    `json:"ordinal"`
	Text     string `json:"text"`
}

// Numerals of one to three digits followed by "." or ")". Boundaries are
// checked by hand since RE2 has no lookaround.
var markerPattern = regexp.MustCompile(`\d{1,3}[.)]`)

// Answers yields every answer in the recognized question columns of row.
// The sequence is a pure function of its inputs and may be ranged over again.
func Answers(row survey.Row, rec *survey.Recognizer) iter.Seq[QuestionAnswer] {
	return func(yield func(QuestionAnswer) bool) {
		for _, col := range rec.QuestionColumns(row) {
			cell, _ := row.Get(col)
			for a := range SplitCell(col, cell) {
				if !yield(a) {
					return
				}
			}
		}
	}
}

// SplitCell breaks a cell into its sub-answers. Lines and "<n>." markers
// both start a new segment. A cell without any marker is a single answer
// with ordinal 1; a blank cell yields nothing.
func SplitCell(question, cell string) iter.Seq[QuestionAnswer] {
	return func(yield func(QuestionAnswer) bool) {
		if strings.TrimSpace(cell) == "" {
			return
		}
		cell = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(cell)

		lines := strings.Split(cell, "\n")
		markers := make([][]marker, len(lines))
		numbered := false
		for i, line := range lines {
			markers[i] = findMarkers(line)
			if len(markers[i]) > 0 {
				numbered = true
			}
		}

		if !numbered {
			if text := cleanSegment(cell); text != "" {
				yield(QuestionAnswer{Question: question, Ordinal: 1, Text: text})
			}
			return
		}

		prev := 0
		for i, line := range lines {
			for _, seg := range segments(line, markers[i]) {
				text := cleanSegment(seg.text)
				if seg.ordinal != 0 {
					prev = seg.ordinal
				}
				if text == "" {
					continue
				}
				ordinal := seg.ordinal
				if ordinal == 0 {
					ordinal = prev + 1
					prev = ordinal
				}
				if !yield(QuestionAnswer{Question: question, Ordinal: ordinal, Text: text}) {
					return
				}
			}
		}
	}
}

type marker struct {
	start, end int
	ordinal    int
}

type segment struct {
	ordinal int // 0 when the segment carried no numeral
	text    string
}

// findMarkers returns the "<n>." and "<n>)" markers of line. A marker that
// opens the line is taken whatever follows it, so "1.- sueldo" and
// "1.sueldo" both count. Inside the line it needs whitespace before it and
// whitespace or a dash after it. A digit right after the marker is a
// decimal, never a marker.
func findMarkers(line string) []marker {
	var out []marker
	for _, loc := range markerPattern.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]
		next, _ := utf8.DecodeRuneInString(line[end:])
		if end < len(line) && unicode.IsDigit(next) {
			continue
		}
		if strings.TrimSpace(line[:start]) != "" {
			prev, _ := utf8.DecodeLastRuneInString(line[:start])
			if !unicode.IsSpace(prev) {
				continue
			}
			if end < len(line) && !unicode.IsSpace(next) && !unicode.Is(unicode.Pd, next) {
				continue
			}
		}
		n, err := strconv.Atoi(line[start : end-1])
		if err != nil {
			continue
		}
		out = append(out, marker{start: start, end: end, ordinal: n})
	}
	return out
}

func segments(line string, markers []marker) []segment {
	if len(markers) == 0 {
		return []segment{{text: line}}
	}
	var out []segment
	if lead := line[:markers[0].start]; strings.TrimSpace(lead) != "" {
		out = append(out, segment{text: lead})
	}
	for i, m := range markers {
		end := len(line)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		out = append(out, segment{ordinal: m.ordinal, text: line[m.end:end]})
	}
	return out
}

// cleanSegment strips leading punctuation and collapses whitespace.
func cleanSegment(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return strings.Join(strings.Fields(s), " ")
}

// Package source loads the records shown by the vlist program.
package source

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/tidwall/gjson"
)

// DefaultTextField is the field displayed for JSON records when no other
// field is configured.
const DefaultTextField = "text"

// Record is one item of the data source.
type Record struct {
	// Index is the position of the record in the loaded source. It is kept
	// when the records are filtered.
	Index int
	// Text is the displayed text.
	Text string
	// Raw is the JSON object the record was read from, if any.
	Raw string
}

// IsJSON reports whether the record was read from a JSON document.
func (r Record) IsJSON() bool {
	return r.Raw != ""
}

// Field reads a gjson path from a JSON record.
func (r Record) Field(path string) (string, bool) {
	if !r.IsJSON() || path == "" {
		return "", false
	}
	v := gjson.Get(r.Raw, path)
	if !v.Exists() {
		return "", false
	}
	return v.String(), true
}

// Render returns a render callback that displays textField for JSON records
// and the record text otherwise.
func Render(textField string) func(Record) string {
	return func(r Record) string {
		if v, ok := r.Field(textField); ok {
			return v
		}
		return r.Text
	}
}

// KeyFunc returns the item key callback. Records with the given field are
// keyed by its value, all others by their source index.
func KeyFunc(field string) func(Record, int) string {
	return func(r Record, _ int) string {
		if v, ok := r.Field(field); ok {
			return field + ":" + v
		}
		return strconv.Itoa(r.Index)
	}
}

// Load reads records from path. Files with a .json extension must hold an
// array; every element becomes a record. Any other file is split into
// paragraphs separated by blank lines.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		records, err := ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return records, nil
	}
	return ParseParagraphs(string(data)), nil
}

// ParseJSON turns a JSON array into records.
func ParseJSON(data []byte) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errors.New("expected an array of records")
	}

	var records []Record
	root.ForEach(func(_, value gjson.Result) bool {
		r := Record{Index: len(records)}
		switch {
		case value.IsObject():
			r.Raw = value.Raw
			if text := value.Get(DefaultTextField); text.Exists() {
				r.Text = text.String()
			} else {
				r.Text = value.Raw
			}
		default:
			r.Text = value.String()
		}
		records = append(records, r)
		return true
	})
	return records, nil
}

// ParseParagraphs splits text on blank lines.
func ParseParagraphs(text string) []Record {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var records []Record
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		records = append(records, Record{
			Index: len(records),
			Text:  strings.Join(current, "\n"),
		})
		current = current[:0]
	}
	for line := range strings.SplitSeq(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return records
}

var words = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit
sed do eiusmod tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam
quis nostrud exercitation ullamco laboris nisi aliquip ex ea commodo consequat`)

// Generate returns n synthetic records of one to four lines. The same seed
// always yields the same records.
func Generate(n int, seed uint64) []Record {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	records := make([]Record, max(0, n))
	for i := range records {
		lines := []string{fmt.Sprintf("Record %d", i)}
		for range rng.IntN(4) {
			sentence := make([]string, 3+rng.IntN(6))
			for j := range sentence {
				sentence[j] = words[rng.IntN(len(words))]
			}
			lines = append(lines, "  "+strings.Join(sentence, " "))
		}
		records[i] = Record{Index: i, Text: strings.Join(lines, "\n")}
	}
	return records
}

type recordSource []Record

func (s recordSource) String(i int) string {
	return s[i].Text
}

func (s recordSource) Len() int {
	return len(s)
}

// Filter returns the records fuzzily matching query, in their original
// order. An empty query matches everything.
func Filter(records []Record, query string) []Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}
	matches := fuzzy.FindFrom(query, recordSource(records))
	indexes := make([]int, len(matches))
	for i, m := range matches {
		indexes[i] = m.Index
	}
	slices.Sort(indexes)

	filtered := make([]Record, len(indexes))
	for i, idx := range indexes {
		filtered[i] = records[idx]
	}
	return filtered
}

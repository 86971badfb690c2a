package translation

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultSeparator splits the obfuscated token from its readable name.
const DefaultSeparator = " -> "

// Entry is one parsed "old -> new" line.
type Entry struct {
	Old string
	New string
}

// Entries is an ordered sequence of parsed translations.
type Entries []Entry

// Table folds the entries into a table. Later duplicates win.
func (es Entries) Table() Table {
	t := make(Table, len(es))
	for _, e := range es {
		t[e.Old] = e.New
	}
	return t
}

// Parse reads a line-oriented translation file. Only lines containing sep are
// used; they are split at the first sep. Old is kept verbatim, New has its
// trailing whitespace removed. Lines without sep, or with an empty Old, are
// skipped.
func Parse(r io.Reader, sep string) (Entries, error) {
	if sep == "" {
		sep = DefaultSeparator
	}

	var out Entries
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if e, ok := parseLine(line, sep); ok {
			out = append(out, e)
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read translations: %w", err)
		}
	}
}

// ParseString parses translations held in memory.
func ParseString(s, sep string) Entries {
	out, _ := Parse(strings.NewReader(s), sep)
	return out
}

func parseLine(line, sep string) (Entry, bool) {
	old, rest, found := strings.Cut(line, sep)
	if !found || old == "" {
		return Entry{}, false
	}
	return Entry{Old: old, New: strings.TrimRight(rest, " \t\r\n")}, true
}

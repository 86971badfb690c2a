package packets

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"packetgen/core/apperr"
)

// PacketEntry binds a packet id to its symbolic name.
type PacketEntry struct {
	ID   uint16
	Name string
}

// Table is an immutable packet id table in source order.
type Table struct {
	entries []PacketEntry
	names   map[uint16]string
}

// NewTable builds a table from entries. Duplicate ids are rejected.
func NewTable(entries ...PacketEntry) (*Table, error) {
	t := &Table{
		entries: make([]PacketEntry, 0, len(entries)),
		names:   make(map[uint16]string, len(entries)),
	}
	for _, e := range entries {
		if err := t.add(e); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(e PacketEntry) error {
	if prev, ok := t.names[e.ID]; ok {
		return fmt.Errorf("duplicate packet id %d (%s, %s)", e.ID, prev, e.Name)
	}
	t.names[e.ID] = e.Name
	t.entries = append(t.entries, e)
	return nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns the name bound to id.
func (t *Table) Lookup(id uint16) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// Entries returns a copy of the table sorted by order.
func (t *Table) Entries(order Ordering) []PacketEntry {
	out := slices.Clone(t.entries)
	switch order {
	case OrderByName:
		slices.SortStableFunc(out, func(a, b PacketEntry) int {
			if c := cmp.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
	case OrderByID:
		slices.SortFunc(out, func(a, b PacketEntry) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}
	return out
}

// ReadTable loads a packet table from a JSON file.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.SourceRead(path, err)
	}
	defer f.Close()
	return decodeTable(path, f)
}

// LoadTable decodes a JSON object of the form {"<id>": "<name>"} keeping the
// order of its keys.
func LoadTable(r io.Reader) (*Table, error) {
	return decodeTable("", r)
}

func decodeTable(source string, r io.Reader) (*Table, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, apperr.Parsef(source, "empty packet table")
	}
	if err != nil {
		return nil, apperr.Parse(source, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, apperr.Parsef(source, "packet table must be a JSON object")
	}

	t := &Table{names: make(map[uint16]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, apperr.Parse(source, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, apperr.Parsef(source, "unexpected token %v", tok)
		}

		var name *string
		if err := dec.Decode(&name); err != nil {
			return nil, apperr.Parsef(source, "value for id %q: %v", key, err)
		}
		if name == nil {
			return nil, apperr.Parsef(source, "value for id %q must be a string, got null", key)
		}

		id, err := strconv.ParseUint(key, 10, 16)
		if err != nil {
			return nil, apperr.Parsef(source, "packet id %q is not an unsigned 16-bit integer", key)
		}
		if err := t.add(PacketEntry{ID: uint16(id), Name: *name}); err != nil {
			return nil, apperr.Parse(source, err)
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, apperr.Parse(source, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, apperr.Parsef(source, "unexpected data after packet table")
	}
	return t, nil
}

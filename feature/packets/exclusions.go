package packets

import (
	"encoding/json"
	"io"
	"os"
	"slices"

	"packetgen/core/apperr"
)

// DefaultVersionKey is the exclusion table entry used for versions without
// their own list.
const DefaultVersionKey = "default"

// defaultExcluded lists the commands whose messages are missing or mapped
// incorrectly in the translated schema.
var defaultExcluded = []uint16{5638, 4745, 4720, 4711, 42, 83, 2828}

// ExclusionSet is a set of packet ids left out of the message registry.
type ExclusionSet struct {
	ids map[uint16]struct{}
}

// NewExclusionSet builds a set from ids.
func NewExclusionSet(ids ...uint16) ExclusionSet {
	s := ExclusionSet{ids: make(map[uint16]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// DefaultExclusions returns the built-in exclusion set.
func DefaultExclusions() ExclusionSet {
	return NewExclusionSet(defaultExcluded...)
}

// Contains reports whether id is excluded.
func (s ExclusionSet) Contains(id uint16) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of excluded ids.
func (s ExclusionSet) Len() int {
	return len(s.ids)
}

// IDs returns the excluded ids in ascending order.
func (s ExclusionSet) IDs() []uint16 {
	out := make([]uint16, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// ReadExclusions loads the exclusion list for version from a JSON file of the
// form {"<version>": [ids...], "default": [ids...]}.
func ReadExclusions(path, version string) (ExclusionSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return ExclusionSet{}, apperr.SourceRead(path, err)
	}
	defer f.Close()
	return decodeExclusions(path, f, version)
}

// LoadExclusions decodes an exclusion table and selects the list for version.
func LoadExclusions(r io.Reader, version string) (ExclusionSet, error) {
	return decodeExclusions("", r, version)
}

func decodeExclusions(source string, r io.Reader, version string) (ExclusionSet, error) {
	var table map[string][]uint16
	if err := json.NewDecoder(r).Decode(&table); err != nil {
		return ExclusionSet{}, apperr.Parse(source, err)
	}

	if ids, ok := table[version]; ok && version != "" {
		return NewExclusionSet(ids...), nil
	}
	if ids, ok := table[DefaultVersionKey]; ok {
		return NewExclusionSet(ids...), nil
	}
	return ExclusionSet{}, apperr.Configuration("packets.exclusions", "no exclusion list for version %q in %s", version, source)
}

package translation

import "packetgen/core/apperr"

// Precedence decides which side wins when a key is present in both the
// persisted override table and the fresh parse.
type Precedence string

const (
	// PersistedWins keeps hand-maintained overrides across regenerations.
	PersistedWins Precedence = "persisted"
	// FreshWins lets the translation file replace persisted values.
	FreshWins Precedence = "fresh"
)

// ParsePrecedence validates a precedence name. Empty selects PersistedWins.
func ParsePrecedence(s string) (Precedence, error) {
	switch Precedence(s) {
	case "":
		return PersistedWins, nil
	case PersistedWins, FreshWins:
		return Precedence(s), nil
	default:
		return "", apperr.Configuration("remap.precedence", "unknown precedence %q (want persisted or fresh)", s)
	}
}

// MergeReport counts how each key of a merge was resolved.
type MergeReport struct {
	// Added keys were only in the fresh parse.
	Added int `json:"added"`
	// Carried keys were only in the persisted table.
	Carried int `json:"carried"`
	// Agreed keys were in both with the same value.
	Agreed int `json:"agreed"`
	// Conflicts lists keys present in both with different values, sorted.
	Conflicts []string `json:"conflicts"`
}

// Merge combines the persisted override table with freshly parsed entries.
// Keys only in persisted are carried forward, keys only in fresh are added,
// and conflicting keys are resolved by p. Neither input is modified.
func Merge(persisted Table, fresh Entries, p Precedence) (Table, MergeReport) {
	freshTable := fresh.Table()
	merged := persisted.Clone()
	var report MergeReport

	for _, k := range freshTable.Keys() {
		v := freshTable[k]
		prev, ok := persisted[k]
		switch {
		case !ok:
			merged[k] = v
			report.Added++
		case prev == v:
			report.Agreed++
		default:
			report.Conflicts = append(report.Conflicts, k)
			if p == FreshWins {
				merged[k] = v
			}
		}
	}

	for k := range persisted {
		if _, ok := freshTable[k]; !ok {
			report.Carried++
		}
	}

	return merged, report
}

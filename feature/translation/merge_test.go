package translation

import (
	"testing"

	"packetgen/core/apperr"

	"github.com/stretchr/testify/assert"
)

func TestMerge_PersistedWins(t *testing.T) {
	persisted := Table{"a": "x"}
	fresh := Entries{{Old: "a", New: "y"}, {Old: "b", New: "z"}}

	merged, report := Merge(persisted, fresh, PersistedWins)
	assert.Equal(t, Table{"a": "x", "b": "z"}, merged)
	assert.Equal(t, MergeReport{Added: 1, Conflicts: []string{"a"}}, report)
}

func TestMerge_FreshWins(t *testing.T) {
	persisted := Table{"a": "x", "keep": "manual"}
	fresh := Entries{{Old: "a", New: "y"}, {Old: "b", New: "z"}}

	merged, report := Merge(persisted, fresh, FreshWins)
	assert.Equal(t, Table{"a": "y", "b": "z", "keep": "manual"}, merged)
	assert.Equal(t, MergeReport{Added: 1, Carried: 1, Conflicts: []string{"a"}}, report)
}

func TestMerge_CarryForwardAndAgreement(t *testing.T) {
	persisted := Table{"hand": "Added", "same": "Value"}
	fresh := Entries{{Old: "same", New: "Value"}}

	merged, report := Merge(persisted, fresh, PersistedWins)
	assert.Equal(t, Table{"hand": "Added", "same": "Value"}, merged)
	assert.Equal(t, MergeReport{Carried: 1, Agreed: 1}, report)
}

func TestMerge_FirstRun(t *testing.T) {
	merged, report := Merge(Table{}, Entries{{Old: "a", New: "b"}}, PersistedWins)
	assert.Equal(t, Table{"a": "b"}, merged)
	assert.Equal(t, 1, report.Added)

	merged, _ = Merge(nil, nil, PersistedWins)
	assert.Empty(t, merged)
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	persisted := Table{"a": "x"}
	Merge(persisted, Entries{{Old: "a", New: "y"}, {Old: "b", New: "z"}}, FreshWins)
	assert.Equal(t, Table{"a": "x"}, persisted)
}

func TestMerge_Idempotent(t *testing.T) {
	fresh := Entries{{Old: "a", New: "y"}, {Old: "b", New: "z"}}
	first, _ := Merge(Table{"a": "x"}, fresh, PersistedWins)
	second, report := Merge(first, fresh, PersistedWins)
	assert.Equal(t, first, second)
	assert.Zero(t, report.Added)
}

func TestParsePrecedence(t *testing.T) {
	p, err := ParsePrecedence("")
	assert.NoError(t, err)
	assert.Equal(t, PersistedWins, p)

	p, err = ParsePrecedence("fresh")
	assert.NoError(t, err)
	assert.Equal(t, FreshWins, p)

	_, err = ParsePrecedence("newest")
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

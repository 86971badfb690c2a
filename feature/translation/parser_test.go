package translation

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := "# nameTranslation 2.7.0\n" +
		"ABCDEFGHIJK -> PlayerLoginCsReq\n" +
		"this line has no separator\n" +
		"\n" +
		"LMNOPQRSTUV -> PlayerLoginScRsp  \r\n" +
		"WXYZ -> Spaced -> Name\n" +
		"Tail -> NoNewline"

	entries, err := Parse(strings.NewReader(input), DefaultSeparator)
	require.NoError(t, err)
	assert.Equal(t, Entries{
		{Old: "ABCDEFGHIJK", New: "PlayerLoginCsReq"},
		{Old: "LMNOPQRSTUV", New: "PlayerLoginScRsp"},
		{Old: "WXYZ", New: "Spaced -> Name"},
		{Old: "Tail", New: "NoNewline"},
	}, entries)
}

func TestParse_SkipRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entries
	}{
		{"CommentOnly", "// translations\n", nil},
		{"ArrowWithoutSpaces", "a->b\n", nil},
		{"EmptyOld", " -> b\n", nil},
		{"OldKeptVerbatim", "  a -> b\n", Entries{{Old: "  a", New: "b"}}},
		{"EmptyNew", "a -> \n", Entries{{Old: "a", New: ""}}},
		{"CommentDoesNotStopParsing", "header\na -> b\n# note\nc -> d\n", Entries{{Old: "a", New: "b"}, {Old: "c", New: "d"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseString(tt.input, DefaultSeparator))
		})
	}
}

func TestParse_CustomSeparator(t *testing.T) {
	assert.Equal(t, Entries{{Old: "a", New: "b"}}, ParseString("a=b\nc\n", "="))
	assert.Equal(t, Entries{{Old: "a", New: "b"}}, ParseString("a -> b\n", ""))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParse_ReadError(t *testing.T) {
	_, err := Parse(io.MultiReader(strings.NewReader("a -> b\n"), failingReader{}), DefaultSeparator)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestEntries_Table(t *testing.T) {
	table := Entries{{Old: "a", New: "1"}, {Old: "b", New: "2"}, {Old: "a", New: "3"}}.Table()
	assert.Equal(t, Table{"a": "3", "b": "2"}, table)
	assert.Equal(t, []string{"a", "b"}, table.Keys())
}

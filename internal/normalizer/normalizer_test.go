package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordbook-backend/internal/domain"
)

const fencedPayload = "```json\n" +
	`{"main": {"word":"move","meaning":"動く、移動する","pos":"動詞","pronunciation":"/muːv/","example":"He moved the table.","translation":"彼はテーブルを移動した。"}}` +
	"\n```"

func TestNormalize_FencedPayload(t *testing.T) {
	t.Parallel()

	parsed, err := Normalize(fencedPayload)
	require.NoError(t, err)

	assert.Equal(t, "move", parsed.Main.Word)
	assert.Equal(t, []domain.PartOfSpeech{domain.PartOfSpeechVerb}, parsed.Main.PartOfSpeech)
	assert.Equal(t, "動く、移動する", parsed.Main.Meaning)
	assert.Equal(t, "/muːv/", parsed.Main.Pronunciation)
	assert.Equal(t, "He moved the table.", parsed.Main.Example)
	assert.Equal(t, "彼はテーブルを移動した。", parsed.Main.Translation)
	assert.Nil(t, parsed.Synonym)
	assert.Nil(t, parsed.Antonym)
	assert.True(t, parsed.Main.Usable())
}

func TestNormalize_RelatedSlots(t *testing.T) {
	t.Parallel()

	raw := `{
		"main": {"word":"move","meaning":"動く","pos":"動詞"},
		"synonyms": {"word":"shift","meaning":"移す","pos":"動詞"},
		"antonyms": {"word":"stay","meaning":"留まる","pos":"動詞"}
	}`

	parsed, err := Normalize(raw)
	require.NoError(t, err)

	require.NotNil(t, parsed.Synonym)
	assert.Equal(t, "shift", parsed.Synonym.Word)
	require.NotNil(t, parsed.Antonym)
	assert.Equal(t, "stay", parsed.Antonym.Word)
}

func TestNormalize_POSShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []domain.PartOfSpeech
	}{
		{
			name: "array",
			raw:  `{"main": {"word":"fast","meaning":"速い","pos":["形容詞","副詞"]}}`,
			want: []domain.PartOfSpeech{domain.PartOfSpeechAdjective, domain.PartOfSpeechAdverb},
		},
		{
			name: "comma delimited string",
			raw:  `{"main": {"word":"fast","meaning":"速い","pos":"形容詞,副詞"}}`,
			want: []domain.PartOfSpeech{domain.PartOfSpeechAdjective, domain.PartOfSpeechAdverb},
		},
		{
			name: "japanese comma delimited string",
			raw:  `{"main": {"word":"fast","meaning":"速い","pos":"形容詞、副詞"}}`,
			want: []domain.PartOfSpeech{domain.PartOfSpeechAdjective, domain.PartOfSpeechAdverb},
		},
		{
			name: "space delimited string",
			raw:  `{"main": {"word":"fast","meaning":"速い","pos":"noun verb"}}`,
			want: []domain.PartOfSpeech{domain.PartOfSpeechNoun, domain.PartOfSpeechVerb},
		},
		{
			name: "unknown tokens dropped",
			raw:  `{"main": {"word":"fast","meaning":"速い","pos":"動詞,gerund"}}`,
			want: []domain.PartOfSpeech{domain.PartOfSpeechVerb},
		},
		{
			name: "missing pos",
			raw:  `{"main": {"word":"fast","meaning":"速い"}}`,
			want: nil,
		},
		{
			name: "repeated tokens deduplicated",
			raw:  `{"main": {"word":"run","meaning":"走る","pos":"動詞、名詞 verb"}}`,
			want: []domain.PartOfSpeech{domain.PartOfSpeechVerb, domain.PartOfSpeechNoun},
		},
		{
			name: "mixed language duplicates in array",
			raw:  `{"main": {"word":"run","meaning":"走る","pos":["verb","動詞","名詞"]}}`,
			want: []domain.PartOfSpeech{domain.PartOfSpeechVerb, domain.PartOfSpeechNoun},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.Main.PartOfSpeech)
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "```json\n```", "```\n\n```"} {
		_, err := Normalize(raw)
		assert.True(t, errors.Is(err, ErrEmpty), "raw %q", raw)
	}
}

func TestNormalize_InvalidShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "I could not find that word, sorry!"},
		{"missing main", `{"synonyms": {"word":"shift"}}`},
		{"blank main word", `{"main": {"word":"  ","meaning":"x"}}`},
		{"wrong pos type", `{"main": {"word":"move","pos":42}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			assert.True(t, errors.Is(err, ErrInvalidShape))
		})
	}
}

func TestParsedWord_Usable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		word ParsedWord
		want bool
	}{
		{"normal", ParsedWord{Word: "move", Meaning: "動く"}, true},
		{"none marker", ParsedWord{Word: "None"}, false},
		{"not found meaning", ParsedWord{Word: "qzx", Meaning: "Not Found"}, false},
		{"japanese not found", ParsedWord{Word: "qzx", Meaning: "該当なし"}, false},
		{"na meaning", ParsedWord{Word: "qzx", Meaning: "N/A"}, false},
		{"empty word", ParsedWord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.word.Usable())
		})
	}

	var nilWord *ParsedWord
	assert.False(t, nilWord.Usable())
}

func TestParsedWord_Bare(t *testing.T) {
	t.Parallel()

	bare := ParsedWord{Word: "shift"}
	assert.True(t, bare.Bare())

	full := ParsedWord{Word: "shift", Meaning: "移す"}
	assert.False(t, full.Bare())

	none := ParsedWord{Word: "None"}
	assert.False(t, none.Bare())
}

func TestParsedWord_Record(t *testing.T) {
	t.Parallel()

	w := ParsedWord{
		Word:          "move",
		Meaning:       "動く",
		PartOfSpeech:  []domain.PartOfSpeech{domain.PartOfSpeechVerb},
		Pronunciation: "/muːv/",
		Example:       "He moved.",
		Translation:   "彼は動いた。",
	}

	rec := w.Record()
	assert.Equal(t, "move", rec.Word)
	assert.Equal(t, "VERB", rec.POSSignature())
	assert.Equal(t, "動く", rec.Meaning)
	require.NoError(t, rec.Validate())
}

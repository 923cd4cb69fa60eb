// Package normalizer turns raw language-model output into canonical word
// records. It is the single place that tolerates the model's loose output
// shape: markdown code fences, part-of-speech as either a string or an
// array, and semantically empty "not found" answers.
package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/wordbook-backend/internal/domain"
)

var (
	// ErrEmpty is returned when the cleaned response text is empty.
	ErrEmpty = errors.New("empty model response")

	// ErrInvalidShape is returned when the response cannot be parsed, or
	// parses but the required main.word field is missing or blank.
	ErrInvalidShape = errors.New("invalid response shape")
)

// posSplitRe splits a delimited part-of-speech string on runs of commas,
// Japanese commas, and whitespace.
var posSplitRe = regexp.MustCompile(`[,、\s]+`)

// notFoundMeanings are the markers the model uses in the meaning field when
// it explicitly reports that a word does not exist.
var notFoundMeanings = map[string]struct{}{
	"not found": {},
	"n/a":       {},
	"none":      {},
	"該当なし":      {},
	"なし":        {},
}

// ParsedWord is one normalized word slot from a model response.
type ParsedWord struct {
	Word          string
	Meaning       string
	PartOfSpeech  []domain.PartOfSpeech
	Pronunciation string
	Example       string
	Translation   string
}

// Usable reports whether the slot carries a real word. The model marks empty
// slots with the literal word "None" or a not-found meaning; such slots
// parse fine but yield no usable record.
func (w *ParsedWord) Usable() bool {
	if w == nil || w.Word == "" || strings.EqualFold(w.Word, "None") {
		return false
	}
	if _, ok := notFoundMeanings[strings.ToLower(w.Meaning)]; ok {
		return false
	}
	return true
}

// Bare reports whether the slot names a word but carries no lexical detail,
// meaning the caller must hydrate it with its own lookup.
func (w *ParsedWord) Bare() bool {
	return w.Usable() && w.Meaning == ""
}

// Record converts the parsed slot into a dictionary candidate.
func (w *ParsedWord) Record() domain.WordRecord {
	return domain.WordRecord{
		Word:          w.Word,
		PartOfSpeech:  w.PartOfSpeech,
		Pronunciation: w.Pronunciation,
		Meaning:       w.Meaning,
		Example:       w.Example,
		Translation:   w.Translation,
	}
}

// ParsedLookup is a full normalized model response: the required main slot
// plus optional synonym and antonym slots.
type ParsedLookup struct {
	Main    ParsedWord
	Synonym *ParsedWord
	Antonym *ParsedWord
}

// posField accepts part-of-speech as either a JSON string or a JSON array
// of strings, the two shapes the model actually produces.
type posField []string

func (f *posField) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*f = splitPOS(single)
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("pos must be a string or an array of strings")
	}

	var out []string
	for _, s := range many {
		out = append(out, splitPOS(s)...)
	}
	*f = out
	return nil
}

func splitPOS(s string) []string {
	var out []string
	for _, tok := range posSplitRe.Split(s, -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// rawWord mirrors the JSON field names the prompt hard-codes; they are the
// one bit-exact contract with the model and must not change.
type rawWord struct {
	Word          string   `json:"word"`
	Meaning       string   `json:"meaning"`
	POS           posField `json:"pos"`
	Pronunciation string   `json:"pronunciation"`
	Example       string   `json:"example"`
	Translation   string   `json:"translation"`
}

type rawLookup struct {
	Main     *rawWord `json:"main"`
	Synonyms *rawWord `json:"synonyms"`
	Antonyms *rawWord `json:"antonyms"`
}

// Normalize parses a raw model response into a ParsedLookup. It strips
// markdown code fences and surrounding whitespace before parsing. Pure
// function over text; no side effects.
func Normalize(raw string) (*ParsedLookup, error) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return nil, ErrEmpty
	}

	var payload rawLookup
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	if payload.Main == nil || strings.TrimSpace(payload.Main.Word) == "" {
		return nil, fmt.Errorf("%w: main.word is missing", ErrInvalidShape)
	}

	parsed := &ParsedLookup{Main: toParsedWord(payload.Main)}
	if payload.Synonyms != nil {
		w := toParsedWord(payload.Synonyms)
		parsed.Synonym = &w
	}
	if payload.Antonyms != nil {
		w := toParsedWord(payload.Antonyms)
		parsed.Antonym = &w
	}

	return parsed, nil
}

// Clean strips markdown code-fence markers and trims whitespace. Exposed so
// the orchestrator can log the cleaned payload on parse failures.
func Clean(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

func toParsedWord(r *rawWord) ParsedWord {
	w := ParsedWord{
		Word:          strings.TrimSpace(r.Word),
		Meaning:       strings.TrimSpace(r.Meaning),
		Pronunciation: strings.TrimSpace(r.Pronunciation),
		Example:       strings.TrimSpace(r.Example),
		Translation:   strings.TrimSpace(r.Translation),
	}

	// The POS list is an ordered set: the model repeating a category (for
	// example in both Japanese and English) must not produce duplicates.
	seen := make(map[domain.PartOfSpeech]struct{}, len(r.POS))
	for _, tok := range r.POS {
		p, ok := domain.ParsePartOfSpeech(tok)
		if !ok {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		w.PartOfSpeech = append(w.PartOfSpeech, p)
	}

	return w
}

package domain

import "strings"

// PartOfSpeech represents the grammatical category of a word.
type PartOfSpeech string

const (
	PartOfSpeechNoun           PartOfSpeech = "NOUN"
	PartOfSpeechVerb           PartOfSpeech = "VERB"
	PartOfSpeechAdjective      PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb         PartOfSpeech = "ADVERB"
	PartOfSpeechPronoun        PartOfSpeech = "PRONOUN"
	PartOfSpeechPreposition    PartOfSpeech = "PREPOSITION"
	PartOfSpeechConjunction    PartOfSpeech = "CONJUNCTION"
	PartOfSpeechInterjection   PartOfSpeech = "INTERJECTION"
	PartOfSpeechParticle       PartOfSpeech = "PARTICLE"
	PartOfSpeechAuxiliary      PartOfSpeech = "AUXILIARY"
	PartOfSpeechArticle        PartOfSpeech = "ARTICLE"
	PartOfSpeechAdjectivalNoun PartOfSpeech = "ADJECTIVAL_NOUN"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPronoun, PartOfSpeechPreposition, PartOfSpeechConjunction,
		PartOfSpeechInterjection, PartOfSpeechParticle, PartOfSpeechAuxiliary,
		PartOfSpeechArticle, PartOfSpeechAdjectivalNoun:
		return true
	}
	return false
}

// posAliases maps the tokens the language model actually emits to the enum.
// The model answers in Japanese, so the Japanese grammar labels are first-class.
var posAliases = map[string]PartOfSpeech{
	"noun":            PartOfSpeechNoun,
	"名詞":              PartOfSpeechNoun,
	"verb":            PartOfSpeechVerb,
	"動詞":              PartOfSpeechVerb,
	"adjective":       PartOfSpeechAdjective,
	"形容詞":             PartOfSpeechAdjective,
	"adverb":          PartOfSpeechAdverb,
	"副詞":              PartOfSpeechAdverb,
	"pronoun":         PartOfSpeechPronoun,
	"代名詞":             PartOfSpeechPronoun,
	"preposition":     PartOfSpeechPreposition,
	"前置詞":             PartOfSpeechPreposition,
	"conjunction":     PartOfSpeechConjunction,
	"接続詞":             PartOfSpeechConjunction,
	"interjection":    PartOfSpeechInterjection,
	"感動詞":             PartOfSpeechInterjection,
	"間投詞":             PartOfSpeechInterjection,
	"particle":        PartOfSpeechParticle,
	"助詞":              PartOfSpeechParticle,
	"auxiliary":       PartOfSpeechAuxiliary,
	"助動詞":             PartOfSpeechAuxiliary,
	"article":         PartOfSpeechArticle,
	"冠詞":              PartOfSpeechArticle,
	"adjectival noun": PartOfSpeechAdjectivalNoun,
	"adjectival_noun": PartOfSpeechAdjectivalNoun,
	"adjectival-noun": PartOfSpeechAdjectivalNoun,
	"形容動詞":            PartOfSpeechAdjectivalNoun,
}

// ParsePartOfSpeech resolves a raw token (English name, Japanese label, or
// enum value) to a PartOfSpeech. Returns false for unrecognized tokens.
func ParsePartOfSpeech(token string) (PartOfSpeech, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	if p := PartOfSpeech(strings.ToUpper(token)); p.IsValid() {
		return p, true
	}

	p, ok := posAliases[strings.ToLower(token)]
	if !ok {
		// Japanese labels are not lowercased by ToLower; try the raw token.
		p, ok = posAliases[token]
	}
	return p, ok
}

// SavedStatus represents the state of a saved-word row. Absence of a row
// means "not saved"; there is no soft-delete state.
type SavedStatus string

const (
	SavedStatusSaved SavedStatus = "saved"
)

func (s SavedStatus) String() string { return string(s) }

func (s SavedStatus) IsValid() bool {
	return s == SavedStatusSaved
}

// RelatedWordLabel identifies the slot a word occupies in a lookup result.
type RelatedWordLabel string

const (
	RelatedWordMain    RelatedWordLabel = "main"
	RelatedWordSynonym RelatedWordLabel = "synonym"
	RelatedWordAntonym RelatedWordLabel = "antonym"
)

func (l RelatedWordLabel) String() string { return string(l) }

func (l RelatedWordLabel) IsValid() bool {
	switch l {
	case RelatedWordMain, RelatedWordSynonym, RelatedWordAntonym:
		return true
	}
	return false
}

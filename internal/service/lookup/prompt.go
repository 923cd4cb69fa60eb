package lookup

import "fmt"

// The JSON field names below (main/synonyms/antonyms, word/meaning/pos/
// pronunciation/example/translation) are the wire contract with the model;
// the normalizer parses exactly this shape. Do not rename them.

func lookupPrompt(term string) string {
	return fmt.Sprintf(`You are an English-Japanese dictionary. For the English word "%s", return ONLY a JSON string in the exact shape below — no markdown, no explanations.
"main" is the looked-up word itself, "synonyms" is one related word, "antonyms" is one word with the opposite meaning.
{
  "main": {
    "word": "the word",
    "meaning": "meaning in Japanese",
    "pos": "part of speech in Japanese",
    "pronunciation": "IPA pronunciation",
    "example": "an English example sentence",
    "translation": "Japanese translation of the example"
  },
  "synonyms": { same shape as main },
  "antonyms": { same shape as main }
}
Rules:
- If no synonym or antonym exists, set its "word" to "None".
- If "%s" is not a real English word, set main.meaning to "Not found".`, term, term)
}

func hydrationPrompt(term string) string {
	return fmt.Sprintf(`You are an English-Japanese dictionary. For the English word "%s", return ONLY a JSON string in the exact shape below — no markdown, no explanations.
{
  "main": {
    "word": "the word",
    "meaning": "meaning in Japanese",
    "pos": "part of speech in Japanese",
    "pronunciation": "IPA pronunciation",
    "example": "an English example sentence",
    "translation": "Japanese translation of the example"
  }
}
If "%s" is not a real English word, set main.meaning to "Not found".`, term, term)
}

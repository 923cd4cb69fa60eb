package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive (got %v)", c.LLM.Timeout)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive (got %d)", c.LLM.MaxTokens)
	}

	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	return nil
}

func (d *DictionaryConfig) validate() error {
	// Observed ceilings in this domain ranged 5-500; anything outside that
	// band is a configuration mistake, not a product decision.
	if d.MaxSavedWords < 5 || d.MaxSavedWords > 500 {
		return fmt.Errorf("max_saved_words must be within [5, 500] (got %d)", d.MaxSavedWords)
	}
	if d.MaxTagsPerWord <= 0 {
		return fmt.Errorf("max_tags_per_word must be positive (got %d)", d.MaxTagsPerWord)
	}
	if d.MaxTagNameLength <= 0 {
		return fmt.Errorf("max_tag_name_length must be positive (got %d)", d.MaxTagNameLength)
	}
	return nil
}

package core

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var languagesYAML []byte

// Language describes one entry of the language selector.
type Language struct {
	// ID is the value sent to the gateway, e.g. "cpp".
	ID string `yaml:"id"`
	// Name is the label shown to users, e.g. "C++".
	Name string `yaml:"name"`
	// Lexer is the syntax highlighter name for this language.
	Lexer string `yaml:"lexer"`
	// Extensions are file suffixes (with leading dot) mapped to this language.
	Extensions []string `yaml:"extensions"`
}

// Catalog is an ordered set of languages with a default entry.
type Catalog struct {
	DefaultID string     `yaml:"default"`
	Entries   []Language `yaml:"languages"`
}

var loadDefaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(languagesYAML)
})

// DefaultCatalog returns the embedded language catalog.
func DefaultCatalog() (*Catalog, error) {
	return loadDefaultCatalog()
}

// MustCatalog is like DefaultCatalog but panics if the embedded file is broken.
func MustCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCatalog decodes and validates a YAML language catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse language catalog: %w", err)
	}
	if len(c.Entries) == 0 {
		return nil, fmt.Errorf("language catalog is empty")
	}

	seen := make(map[string]struct{}, len(c.Entries))
	for i, l := range c.Entries {
		if l.ID == "" {
			return nil, fmt.Errorf("language at index %d has no id", i)
		}
		if _, ok := seen[l.ID]; ok {
			return nil, fmt.Errorf("duplicate language id %q", l.ID)
		}
		seen[l.ID] = struct{}{}
	}

	if c.DefaultID == "" {
		c.DefaultID = c.Entries[0].ID
	}
	if _, ok := seen[c.DefaultID]; !ok {
		return nil, fmt.Errorf("default language %q is not in the catalog", c.DefaultID)
	}
	return &c, nil
}

// All returns the languages in display order.
func (c *Catalog) All() []Language {
	return c.Entries
}

// Default returns the catalog's default language.
func (c *Catalog) Default() Language {
	l, _ := c.Lookup(c.DefaultID)
	return l
}

// Lookup finds a language by id, case-insensitively.
func (c *Catalog) Lookup(id string) (Language, bool) {
	id = strings.TrimSpace(id)
	for _, l := range c.Entries {
		if strings.EqualFold(l.ID, id) {
			return l, true
		}
	}
	return Language{}, false
}

// ForFile guesses the language of a file from its extension.
func (c *Catalog) ForFile(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Language{}, false
	}
	for _, l := range c.Entries {
		for _, e := range l.Extensions {
			if strings.EqualFold(e, ext) {
				return l, true
			}
		}
	}
	return Language{}, false
}

// Next returns the language after id, wrapping around. Unknown ids yield the
// first entry.
func (c *Catalog) Next(id string) Language {
	for i, l := range c.Entries {
		if l.ID == id {
			return c.Entries[(i+1)%len(c.Entries)]
		}
	}
	return c.Entries[0]
}

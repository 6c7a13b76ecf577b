package gift

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout of a catalog, shared by JSON and YAML.
type catalogFile struct {
	Name  string     `json:"name" yaml:"name"`
	Gifts []giftFile `json:"gifts" yaml:"gifts"`
}

type giftFile struct {
	Gift        `yaml:",inline"`
	UnlockAfter *string `json:"unlock_after,omitempty" yaml:"unlock_after,omitempty"` // Go duration string, e.g. "3h"
}

// LoadCatalog reads and validates a catalog file. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	parse := ParseCatalog
	if IsYAML(path) {
		parse = ParseCatalogYAML
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", filepath.Base(path), err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// ParseCatalog decodes a catalog strictly (unknown fields are rejected) and validates it.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return f.build()
}

// ParseCatalogYAML is ParseCatalog for YAML documents. Unknown keys are rejected.
func ParseCatalogYAML(data []byte) (*Catalog, error) {
	var f catalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to unmarshal catalog: empty document")
		}
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return f.build()
}

// IsYAML reports whether path names a YAML catalog.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (f catalogFile) build() (*Catalog, error) {
	gifts := make([]Gift, 0, len(f.Gifts))
	intervals := make(map[int]time.Duration)
	for i, gf := range f.Gifts {
		gifts = append(gifts, gf.Gift)
		if gf.UnlockAfter == nil {
			continue
		}
		d, err := time.ParseDuration(*gf.UnlockAfter)
		if err != nil {
			return nil, fmt.Errorf("gift %d: invalid unlock_after %q: %w", i+1, *gf.UnlockAfter, err)
		}
		intervals[i+1] = d
	}

	c := NewCatalog(f.Name, gifts, intervals)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the catalog can drive a hunt from start to finish.
// Every problem found is reported, joined into a single error.
func (c *Catalog) Validate() error {
	var errs []error
	if len(c.gifts) == 0 {
		errs = append(errs, errors.New("catalog has no gifts"))
	}

	for _, g := range c.gifts {
		if strings.TrimSpace(g.Name) == "" {
			errs = append(errs, fmt.Errorf("gift %d: name is required", g.Ordinal))
		}
		if strings.TrimSpace(g.Question) == "" {
			errs = append(errs, fmt.Errorf("gift %d: question is required", g.Ordinal))
		}
		if len(g.Answers) == 0 {
			errs = append(errs, fmt.Errorf("gift %d: at least one answer is required", g.Ordinal))
		}
		seen := make(map[string]bool, len(g.Answers))
		for _, a := range g.Answers {
			n := NormalizeAnswer(a)
			if n == "" {
				errs = append(errs, fmt.Errorf("gift %d: empty answer", g.Ordinal))
				continue
			}
			if seen[n] {
				errs = append(errs, fmt.Errorf("gift %d: duplicate answer %q", g.Ordinal, a))
			}
			seen[n] = true
		}
		if g.Customizable && strings.TrimSpace(g.CustomizationPrompt) == "" {
			errs = append(errs, fmt.Errorf("gift %d: customizable gifts need a customization_prompt", g.Ordinal))
		}
		if g.Ordinal > 1 {
			if _, ok := c.unlockIntervals[g.Ordinal]; !ok {
				errs = append(errs, fmt.Errorf("gift %d: unlock_after is required", g.Ordinal))
			}
		}
	}

	for ordinal, d := range c.unlockIntervals {
		if d < 0 {
			errs = append(errs, fmt.Errorf("gift %d: unlock_after cannot be negative", ordinal))
		}
		if ordinal < 1 || ordinal > len(c.gifts) {
			errs = append(errs, fmt.Errorf("unlock interval for unknown gift %d", ordinal))
		}
	}

	return errors.Join(errs...)
}

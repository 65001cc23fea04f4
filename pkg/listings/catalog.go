// Package listings holds the rental catalog the resident branch matches against.
package listings

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/intake/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed listings.yaml
var defaultCatalog []byte

// Catalog is an immutable set of listings.
type Catalog struct {
	listings []domain.Listing
}

// Default returns the built-in four-listing catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("listings: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML (or JSON) file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML list of listings and checks that IDs are unique.
func Parse(data []byte) (*Catalog, error) {
	var items []domain.Listing
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	seen := make(map[int]bool, len(items))
	for _, l := range items {
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate listing id %d", l.ID)
		}
		seen[l.ID] = true
	}
	return &Catalog{listings: items}, nil
}

// All returns a copy of the listings.
func (c *Catalog) All() []domain.Listing {
	out := make([]domain.Listing, len(c.listings))
	copy(out, c.listings)
	return out
}

// Len returns the number of listings.
func (c *Catalog) Len() int {
	return len(c.listings)
}

// JSON renders the catalog as indented JSON for inclusion in prompts.
func (c *Catalog) JSON() string {
	data, err := json.MarshalIndent(c.listings, "", "  ")
	if err != nil {
		// Listings hold only strings and ints.
		panic(err)
	}
	return string(data)
}

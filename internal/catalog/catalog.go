package catalog

import "fmt"

// Catalog is the immutable reference list of instruments. Order is the
// order entries were given in and is preserved by every accessor.
type Catalog struct {
	entries []Instrument
	index   map[string]int
}

// New validates the entries and builds a catalog.
func New(entries []Instrument) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Instrument, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.index[e.Symbol]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, e.Symbol)
		}
		c.index[e.Symbol] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// All returns a copy of every instrument.
func (c *Catalog) All() []Instrument {
	out := make([]Instrument, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByCategory returns the instruments of one category.
func (c *Catalog) ByCategory(category Category) []Instrument {
	var out []Instrument
	for _, e := range c.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds an instrument by symbol.
func (c *Catalog) Lookup(symbol string) (Instrument, bool) {
	i, ok := c.index[symbol]
	if !ok {
		return Instrument{}, false
	}
	return c.entries[i], true
}

// Contains reports whether symbol is in the catalog.
func (c *Catalog) Contains(symbol string) bool {
	_, ok := c.index[symbol]
	return ok
}

// Symbols lists the symbols of one category.
func (c *Catalog) Symbols(category Category) []string {
	var out []string
	for _, e := range c.entries {
		if e.Category == category {
			out = append(out, e.Symbol)
		}
	}
	return out
}

// Len returns the number of instruments.
func (c *Catalog) Len() int {
	return len(c.entries)
}

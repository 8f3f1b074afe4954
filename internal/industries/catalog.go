package industries

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("industry not found")

// Industry is one selectable industry and its allowed specializations.
type Industry struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	SubIndustries []string `json:"subIndustries"`
}

// Catalog is an immutable, ordered set of industries.
type Catalog struct {
	list []Industry
	byID map[string]Industry
	subs map[string]map[string]struct{}
}

// NewCatalog indexes items. Duplicate ids keep the first occurrence.
func NewCatalog(items []Industry) *Catalog {
	c := &Catalog{
		byID: make(map[string]Industry, len(items)),
		subs: make(map[string]map[string]struct{}, len(items)),
	}
	for _, it := range items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			continue
		}
		if _, dup := c.byID[id]; dup {
			continue
		}
		it.ID = id
		it.SubIndustries = append([]string(nil), it.SubIndustries...)
		set := make(map[string]struct{}, len(it.SubIndustries))
		for _, s := range it.SubIndustries {
			set[s] = struct{}{}
		}
		c.list = append(c.list, it)
		c.byID[id] = it
		c.subs[id] = set
	}
	return c
}

// List returns every industry in catalog order.
func (c *Catalog) List() []Industry {
	out := make([]Industry, len(c.list))
	for i, it := range c.list {
		it.SubIndustries = append([]string(nil), it.SubIndustries...)
		out[i] = it
	}
	return out
}

// Get returns one industry by id.
func (c *Catalog) Get(id string) (Industry, error) {
	it, ok := c.byID[id]
	if !ok {
		return Industry{}, ErrNotFound
	}
	it.SubIndustries = append([]string(nil), it.SubIndustries...)
	return it, nil
}

// Has reports whether id is a known industry.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Allows reports whether sub is a specialization of industry id.
func (c *Catalog) Allows(id, sub string) bool {
	set, ok := c.subs[id]
	if !ok {
		return false
	}
	_, ok = set[sub]
	return ok
}

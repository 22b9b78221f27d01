package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// maxSuggestions bounds the "did you mean" list on unknown plant names
const maxSuggestions = 3

// itemOrder is the fixed set of purchasable items, in shop order
var itemOrder = []string{
	domain.ItemRevivalToken,
	domain.ItemRefreshToken,
	domain.ItemImmortalPlantJuice,
}

// Catalog is the read-only registry of plant types, items and artists.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	plants  map[string]domain.PlantType
	ordered []domain.PlantType
	items   map[string]domain.Item
	artists map[string]domain.Artist
}

// New builds a catalog from already-decoded plant types.
// itemPrices maps item names to prices; missing items cost 0.
func New(plants []domain.PlantType, artists []domain.Artist, itemPrices map[string]int) (*Catalog, error) {
	c := &Catalog{
		plants:  make(map[string]domain.PlantType, len(plants)),
		ordered: make([]domain.PlantType, 0, len(plants)),
		items:   make(map[string]domain.Item, len(itemOrder)+1),
		artists: make(map[string]domain.Artist, len(artists)),
	}

	for _, p := range plants {
		if _, dup := c.plants[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate plant type %q", domain.ErrFatal, p.Name)
		}
		c.plants[p.Name] = p
		c.ordered = append(c.ordered, p)
	}
	sort.Slice(c.ordered, func(i, j int) bool {
		a, b := c.ordered[i], c.ordered[j]
		if a.RequiredExperience != b.RequiredExperience {
			return a.RequiredExperience < b.RequiredExperience
		}
		return a.Name < b.Name
	})

	for _, name := range itemOrder {
		c.items[name] = domain.Item{Name: name, DisplayName: DisplayName(name), Price: itemPrices[name]}
	}
	c.items[domain.ItemPlantPot] = domain.Item{Name: domain.ItemPlantPot, DisplayName: DisplayName(domain.ItemPlantPot)}

	for _, a := range artists {
		c.artists[a.ID] = a
	}
	return c, nil
}

// Get returns the plant type with the given name. Unknown names yield
// ErrUnknownPlantType with up to three close suggestions in the message.
func (c *Catalog) Get(name string) (domain.PlantType, error) {
	if p, ok := c.plants[name]; ok {
		return p, nil
	}
	if suggestions := c.Suggest(name, maxSuggestions); len(suggestions) > 0 {
		return domain.PlantType{}, fmt.Errorf("%w: %q (did you mean %s?)", domain.ErrUnknownPlantType, name, strings.Join(suggestions, ", "))
	}
	return domain.PlantType{}, fmt.Errorf("%w: %q", domain.ErrUnknownPlantType, name)
}

// Lookup is Get without the error
func (c *Catalog) Lookup(name string) (domain.PlantType, bool) {
	p, ok := c.plants[name]
	return p, ok
}

// ListAvailable returns plants that may appear in a shop roster
func (c *Catalog) ListAvailable() []domain.PlantType {
	return c.filter(func(p domain.PlantType) bool { return p.Available })
}

// ListVisible returns plants shown in the herbiary
func (c *Catalog) ListVisible() []domain.PlantType {
	return c.filter(func(p domain.PlantType) bool { return p.Visible })
}

// All returns every plant type in catalog order
func (c *Catalog) All() []domain.PlantType {
	return c.filter(func(domain.PlantType) bool { return true })
}

func (c *Catalog) filter(keep func(domain.PlantType) bool) []domain.PlantType {
	out := make([]domain.PlantType, 0, len(c.ordered))
	for _, p := range c.ordered {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Items returns the purchasable items in shop order
func (c *Catalog) Items() []domain.Item {
	out := make([]domain.Item, 0, len(itemOrder))
	for _, name := range itemOrder {
		out = append(out, c.items[name])
	}
	return out
}

// Item resolves a purchasable item or the virtual plant_pot
func (c *Catalog) Item(name string) (domain.Item, error) {
	item, ok := c.items[name]
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: %q", domain.ErrUnknownItem, name)
	}
	return item, nil
}

// Artist looks up sprite credits
func (c *Catalog) Artist(id string) (domain.Artist, bool) {
	a, ok := c.artists[id]
	return a, ok
}

// Suggest returns up to n visible plant names closest to name by edit distance
func (c *Catalog) Suggest(name string, n int) []string {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" || n <= 0 {
		return nil
	}
	threshold := max(2, len(query)/2)

	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate
	for _, p := range c.ordered {
		if !p.Visible {
			continue
		}
		d := levenshtein.ComputeDistance(query, p.Name)
		if dn := levenshtein.ComputeDistance(query, strings.ToLower(p.DisplayName)); dn < d {
			d = dn
		}
		if d <= threshold {
			candidates = append(candidates, candidate{name: p.Name, distance: d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	out := make([]string, 0, min(n, len(candidates)))
	for _, cand := range candidates[:min(n, len(candidates))] {
		out = append(out, cand.name)
	}
	return out
}

// DisplayName turns a snake_case identifier into a title-cased label
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"go-structura/types"
)

// Entry holds the reference data for one damage kind: the per-occurrence score
// penalty, the severity tier a single occurrence of this kind alone implies,
// and the recommended precautions.
type Entry struct {
	Kind        types.DamageKind `json:"kind"`
	Weight      int              `json:"weight"`
	TierHint    types.Severity   `json:"tierHint"`
	Precautions []string         `json:"precautions"`
}

// Structural kinds (major cracking, spalling) carry a Critical tier hint so a
// single occurrence outranks any count-based threshold. The set is data here,
// not logic: override it with a custom catalog file instead of editing code.
var defaultEntries = []Entry{
	{types.MajorCrack, 15, types.Critical, []string{"Immediate structural inspection required."}},
	{types.Crack, 12, types.Moderate, []string{"Seal cracks early to prevent expansion."}},
	{types.MinorCrack, 8, types.Moderate, []string{"Monitor and seal if needed."}},
	{types.Spalling, 20, types.Critical, []string{"Repair damaged concrete immediately."}},
	{types.Peeling, 10, types.Moderate, []string{"Remove loose paint and repaint."}},
	{types.Algae, 5, types.Moderate, []string{"Clean surface and improve drainage."}},
	{types.Stain, 5, types.Moderate, []string{"Check for moisture leakage."}},
	{types.Normal, 0, types.Good, nil},
}

// Catalog is static reference data about damage kinds. Lookups for unknown
// kinds degrade gracefully so an unrecognized detector label never crashes the
// pipeline.
type Catalog struct {
	entries []Entry
	index   map[types.DamageKind]int
}

func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		index:   make(map[types.DamageKind]int, len(entries)),
	}
	for i, e := range entries {
		if _, exists := c.index[e.Kind]; !exists {
			c.index[e.Kind] = i
		}
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultEntries)
}

// Load reads a catalog override from a JSON file, a list of Entry objects.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no entries", path)
	}

	return New(entries), nil
}

// WeightOf returns the score penalty per occurrence. Unknown kinds weigh 0.
func (c *Catalog) WeightOf(kind types.DamageKind) int {
	if i, ok := c.index[kind]; ok {
		return c.entries[i].Weight
	}
	return 0
}

// TierHintOf returns the severity a single occurrence of the kind implies on
// its own. Unknown kinds imply Good.
func (c *Catalog) TierHintOf(kind types.DamageKind) types.Severity {
	if i, ok := c.index[kind]; ok {
		return c.entries[i].TierHint
	}
	return types.Good
}

// PrecautionsFor returns the recommended actions for a kind, empty for
// unknown kinds.
func (c *Catalog) PrecautionsFor(kind types.DamageKind) []string {
	if i, ok := c.index[kind]; ok {
		return c.entries[i].Precautions
	}
	return nil
}

// Kinds lists every cataloged kind in declaration order. Declaration order is
// the canonical ordering for advisor output and report rows.
func (c *Catalog) Kinds() []types.DamageKind {
	kinds := make([]types.DamageKind, 0, len(c.entries))
	for _, e := range c.entries {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

package compass

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

//go:embed content.json
var defaultContent []byte

// Table is the static content data set: one Direction and one Pool for each
// of the four directions. It is immutable once built.
type Table struct {
	version    string
	directions map[DirectionID]Direction
	pools      map[DirectionID]Pool
}

type tableDoc struct {
	Version    string      `json:"version"`
	Directions []Direction `json:"directions"`
	Pools      []Pool      `json:"pools"`
}

// DefaultTable returns the content table compiled into the binary.
func DefaultTable() (*Table, error) {
	return ParseTable(bytes.NewReader(defaultContent))
}

// LoadTable reads a JSON content table from path.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening content table: %w", err)
	}
	defer f.Close()
	return ParseTable(f)
}

func ParseTable(r io.Reader) (*Table, error) {
	var doc tableDoc
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding content table: %w", err)
	}
	return NewTable(doc.Version, doc.Directions, doc.Pools)
}

// NewTable validates directions and pools and copies them into a Table.
// Every direction needs exactly one pool with at least two spots and at
// least one scenario, tip and hidden gem.
func NewTable(version string, directions []Direction, pools []Pool) (*Table, error) {
	t := &Table{
		version:    version,
		directions: make(map[DirectionID]Direction, len(Order)),
		pools:      make(map[DirectionID]Pool, len(Order)),
	}

	for _, d := range directions {
		if !d.ID.Valid() {
			return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidTable, d.ID)
		}
		if _, dup := t.directions[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate direction %q", ErrInvalidTable, d.ID)
		}
		t.directions[d.ID] = d
	}

	for _, p := range pools {
		if !p.DirectionID.Valid() {
			return nil, fmt.Errorf("%w: pool for unknown direction %q", ErrInvalidTable, p.DirectionID)
		}
		if _, dup := t.pools[p.DirectionID]; dup {
			return nil, fmt.Errorf("%w: duplicate pool for %q", ErrInvalidTable, p.DirectionID)
		}
		if err := validatePool(p); err != nil {
			return nil, err
		}
		t.pools[p.DirectionID] = Pool{
			DirectionID: p.DirectionID,
			Spots:       slices.Clone(p.Spots),
			Scenarios:   slices.Clone(p.Scenarios),
			Tips:        slices.Clone(p.Tips),
			HiddenGems:  slices.Clone(p.HiddenGems),
		}
	}

	for _, id := range Order {
		if _, ok := t.directions[id]; !ok {
			return nil, fmt.Errorf("%w: missing direction %q", ErrInvalidTable, id)
		}
		if _, ok := t.pools[id]; !ok {
			return nil, fmt.Errorf("%w: missing pool for %q", ErrInvalidTable, id)
		}
	}

	return t, nil
}

func validatePool(p Pool) error {
	switch {
	case len(p.Spots) < 2:
		return fmt.Errorf("%w: pool %q has %d spots, need at least 2", ErrInvalidTable, p.DirectionID, len(p.Spots))
	case len(p.Scenarios) == 0:
		return fmt.Errorf("%w: pool %q has no scenarios", ErrInvalidTable, p.DirectionID)
	case len(p.Tips) == 0:
		return fmt.Errorf("%w: pool %q has no tips", ErrInvalidTable, p.DirectionID)
	case len(p.HiddenGems) == 0:
		return fmt.Errorf("%w: pool %q has no hidden gems", ErrInvalidTable, p.DirectionID)
	}
	return nil
}

func (t *Table) Version() string { return t.version }

func (t *Table) Direction(id DirectionID) (Direction, bool) {
	d, ok := t.directions[id]
	return d, ok
}

// Directions returns the four directions clockwise from north.
func (t *Table) Directions() []Direction {
	out := make([]Direction, 0, len(t.directions))
	for _, d := range t.directions {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b Direction) int { return a.Angle - b.Angle })
	return out
}

// Pool returns a copy of the pool for id; callers may not mutate the table.
func (t *Table) Pool(id DirectionID) (Pool, bool) {
	p, ok := t.pools[id]
	if !ok {
		return Pool{}, false
	}
	return Pool{
		DirectionID: p.DirectionID,
		Spots:       slices.Clone(p.Spots),
		Scenarios:   slices.Clone(p.Scenarios),
		Tips:        slices.Clone(p.Tips),
		HiddenGems:  slices.Clone(p.HiddenGems),
	}, true
}

package compass

import (
	"strings"
	"time"
)

// Resolver derives a Result from an identity and a date key. It holds only
// the immutable table and is safe for concurrent use.
type Resolver struct {
	table *Table
}

func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

func (r *Resolver) Table() *Table { return r.table }

// Resolve returns the travel content for identity on date (YYYY-MM-DD).
// The same inputs always produce the same Result.
func (r *Resolver) Resolve(identity, date string) (Result, error) {
	if identity == "" {
		return Result{}, ErrEmptyIdentity
	}
	if !ValidDate(date) {
		return Result{}, ErrInvalidDate
	}

	seed := identity + "@" + date

	dirID := Order[Hash(seed)%uint32(len(Order))]
	dir := r.table.directions[dirID]
	pool := r.table.pools[dirID]

	n := uint32(len(pool.Spots))
	mainIdx := int(Hash(seed+":spot") % n)
	subIdx := int(Hash(seed+":sub") % (n - 1))
	if subIdx >= mainIdx {
		subIdx++
	}
	mainSpot, subSpot := pool.Spots[mainIdx], pool.Spots[subIdx]

	tmpl := pool.Scenarios[Hash(seed+":scenario")%uint32(len(pool.Scenarios))]
	scenario := strings.Replace(tmpl, "{main}", mainSpot.Name, 1)
	scenario = strings.Replace(scenario, "{sub}", subSpot.Name, 1)

	return Result{
		Direction: dir,
		Scenario:  scenario,
		MainSpot:  mainSpot,
		SubSpot:   subSpot,
		Tip:       pool.Tips[Hash(seed+":tip")%uint32(len(pool.Tips))],
		HiddenGem: pool.HiddenGems[Hash(seed+":gem")%uint32(len(pool.HiddenGems))],
		Date:      date,
		MainIndex: mainIdx,
		SubIndex:  subIdx,
	}, nil
}

// ValidDate reports whether date is a real calendar day in zero-padded
// YYYY-MM-DD form.
func ValidDate(date string) bool {
	if len(date) != len(time.DateOnly) {
		return false
	}
	_, err := time.Parse(time.DateOnly, date)
	return err == nil
}

// Package compass resolves a device's travel direction and content for a
// given day. Everything here is pure and free of I/O.
package compass

import "errors"

var (
	// ErrInvalidTable reports a content table that breaks a pool invariant.
	ErrInvalidTable = errors.New("invalid content table")
	// ErrEmptyIdentity is returned when Resolve gets an empty identity.
	ErrEmptyIdentity = errors.New("identity is required")
	// ErrInvalidDate is returned when the date key is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")
)

type DirectionID string

const (
	North DirectionID = "north"
	East  DirectionID = "east"
	South DirectionID = "south"
	West  DirectionID = "west"
)

// Order maps Hash(seed) % 4 to a direction. Already-shown results depend on
// it, so it must never be reordered.
var Order = [4]DirectionID{East, West, South, North}

func (id DirectionID) Valid() bool {
	switch id {
	case North, East, South, West:
		return true
	}
	return false
}

type Direction struct {
	ID    DirectionID `json:"id"`
	Name  string      `json:"name"`
	Label string      `json:"label"`
	Theme string      `json:"theme"`
	Color string      `json:"color"`
	Angle int         `json:"angle"`
}

type Spot struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

type HiddenGem struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// Pool is the content available for one direction. Scenario templates
// contain the {main} and {sub} placeholders.
type Pool struct {
	DirectionID DirectionID `json:"directionId"`
	Spots       []Spot      `json:"spots"`
	Scenarios   []string    `json:"scenarios"`
	Tips        []string    `json:"narinTips"`
	HiddenGems  []HiddenGem `json:"hiddenGems"`
}

// Result is the travel content chosen for one identity on one date.
type Result struct {
	Direction Direction `json:"direction"`
	Scenario  string    `json:"scenario"`
	MainSpot  Spot      `json:"mainSpot"`
	SubSpot   Spot      `json:"subSpot"`
	Tip       string    `json:"narinTip"`
	HiddenGem HiddenGem `json:"hiddenGem"`
	Date      string    `json:"date"`

	MainIndex int `json:"-"`
	SubIndex  int `json:"-"`
}

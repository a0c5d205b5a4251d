package compass_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wheretogo/compass/internal/compass"
)

func validContent() ([]compass.Direction, []compass.Pool) {
	dirs := []compass.Direction{
		{ID: compass.North, Name: "북", Angle: 0},
		{ID: compass.East, Name: "동", Angle: 90},
		{ID: compass.South, Name: "남", Angle: 180},
		{ID: compass.West, Name: "서", Angle: 270},
	}
	var pools []compass.Pool
	for _, id := range compass.Order {
		pools = append(pools, compass.Pool{
			DirectionID: id,
			Spots:       []compass.Spot{{Name: "one"}, {Name: "two"}, {Name: "three"}},
			Scenarios:   []string{"{main} then {sub}"},
			Tips:        []string{"tip"},
			HiddenGems:  []compass.HiddenGem{{Name: "gem"}},
		})
	}
	return dirs, pools
}

func TestDefaultTable(t *testing.T) {
	table, err := compass.DefaultTable()
	if err != nil {
		t.Fatalf("DefaultTable: %v", err)
	}
	if table.Version() == "" {
		t.Error("expected a content version")
	}

	dirs := table.Directions()
	want := []compass.DirectionID{compass.North, compass.East, compass.South, compass.West}
	if len(dirs) != len(want) {
		t.Fatalf("got %d directions, want %d", len(dirs), len(want))
	}
	for i, d := range dirs {
		if d.ID != want[i] {
			t.Errorf("directions[%d] = %q, want %q", i, d.ID, want[i])
		}
		if d.Angle != i*90 {
			t.Errorf("%s angle = %d, want %d", d.ID, d.Angle, i*90)
		}
	}
}

func TestNewTableRejectsBadPools(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(dirs []compass.Direction, pools []compass.Pool) ([]compass.Direction, []compass.Pool)
		msg    string
	}{
		{
			name: "one spot",
			mutate: func(d []compass.Direction, p []compass.Pool) ([]compass.Direction, []compass.Pool) {
				p[2].Spots = p[2].Spots[:1]
				return d, p
			},
			msg: "need at least 2",
		},
		{
			name: "no scenarios",
			mutate: func(d []compass.Direction, p []compass.Pool) ([]compass.Direction, []compass.Pool) {
				p[0].Scenarios = nil
				return d, p
			},
			msg: "no scenarios",
		},
		{
			name: "no tips",
			mutate: func(d []compass.Direction, p []compass.Pool) ([]compass.Direction, []compass.Pool) {
				p[1].Tips = []string{}
				return d, p
			},
			msg: "no tips",
		},
		{
			name: "no hidden gems",
			mutate: func(d []compass.Direction, p []compass.Pool) ([]compass.Direction, []compass.Pool) {
				p[3].HiddenGems = nil
				return d, p
			},
			msg: "no hidden gems",
		},
		{
			name: "missing pool",
			mutate: func(d []compass.Direction, p []compass.Pool) ([]compass.Direction, []compass.Pool) {
				return d, p[:3]
			},
			msg: "missing pool",
		},
		{
			name: "duplicate pool",
			mutate: func(d []compass.Direction, p []compass.Pool) ([]compass.Direction, []compass.Pool) {
				p[1].DirectionID = p[0].DirectionID
				return d, p
			},
			msg: "duplicate pool",
		},
		{
			name: "unknown direction",
			mutate: func(d []compass.Direction, p []compass.Pool) ([]compass.Direction, []compass.Pool) {
				d[0].ID = "up"
				return d, p
			},
			msg: "unknown direction",
		},
		{
			name: "missing direction",
			mutate: func(d []compass.Direction, p []compass.Pool) ([]compass.Direction, []compass.Pool) {
				return d[1:], p
			},
			msg: "missing direction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs, pools := tt.mutate(validContent())
			_, err := compass.NewTable("test", dirs, pools)
			if !errors.Is(err, compass.ErrInvalidTable) {
				t.Fatalf("err = %v, want ErrInvalidTable", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.msg)
			}
		})
	}
}

func TestTablePoolIsCopy(t *testing.T) {
	dirs, pools := validContent()
	table, err := compass.NewTable("test", dirs, pools)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	pools[0].Spots[0].Name = "changed by caller"
	p, _ := table.Pool(pools[0].DirectionID)
	if p.Spots[0].Name != "one" {
		t.Fatalf("table shares caller slice: spot = %q", p.Spots[0].Name)
	}

	p.Spots[0].Name = "changed via getter"
	again, _ := table.Pool(pools[0].DirectionID)
	if again.Spots[0].Name != "one" {
		t.Fatalf("Pool returned shared slice: spot = %q", again.Spots[0].Name)
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	doc := `{
		"version": "v-test",
		"directions": [
			{"id": "north", "name": "북", "angle": 0},
			{"id": "east", "name": "동", "angle": 90},
			{"id": "south", "name": "남", "angle": 180},
			{"id": "west", "name": "서", "angle": 270}
		],
		"pools": [
			{"directionId": "north", "spots": [{"name": "a"}, {"name": "b"}], "scenarios": ["{main} {sub}"], "narinTips": ["t"], "hiddenGems": [{"name": "g"}]},
			{"directionId": "east", "spots": [{"name": "a"}, {"name": "b"}], "scenarios": ["{main} {sub}"], "narinTips": ["t"], "hiddenGems": [{"name": "g"}]},
			{"directionId": "south", "spots": [{"name": "a"}, {"name": "b"}], "scenarios": ["{main} {sub}"], "narinTips": ["t"], "hiddenGems": [{"name": "g"}]},
			{"directionId": "west", "spots": [{"name": "a"}], "scenarios": ["{main} {sub}"], "narinTips": ["t"], "hiddenGems": [{"name": "g"}]}
		]
	}`
	if err := os.WriteFile(good, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := compass.LoadTable(good)
	if !errors.Is(err, compass.ErrInvalidTable) {
		t.Fatalf("one-spot west pool: err = %v, want ErrInvalidTable", err)
	}

	fixed := strings.Replace(doc, `"directionId": "west", "spots": [{"name": "a"}]`, `"directionId": "west", "spots": [{"name": "a"}, {"name": "b"}]`, 1)
	if err := os.WriteFile(good, []byte(fixed), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := compass.LoadTable(good)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if table.Version() != "v-test" {
		t.Errorf("version = %q, want v-test", table.Version())
	}

	if _, err := compass.LoadTable(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseTableUnknownField(t *testing.T) {
	_, err := compass.ParseTable(strings.NewReader(`{"version": "x", "colour": "red"}`))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

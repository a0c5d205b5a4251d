package visit

import (
	"context"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wheretogo/compass/internal/compass"
)

const maxJournalEntries = 60

type JournalEntry struct {
	Date          string              `json:"date"`
	DirectionID   compass.DirectionID `json:"directionId"`
	DirectionName string              `json:"directionName"`
	MainSpot      string              `json:"mainSpot"`
	SubSpot       string              `json:"subSpot"`
	Attempt       int                 `json:"attempt"`
	Timestamp     int64               `json:"timestamp"`
}

// Journal lists a device's past trips, newest first, one per day.
type Journal struct {
	Entries     []JournalEntry
	Total       int
	TotalLabel  string
	ByDirection map[compass.DirectionID]int
}

// StampCollection holds the distinct directions collected in one month, in
// the order they were first collected.
type StampCollection struct {
	Month     string                `json:"month"`
	Collected []compass.DirectionID `json:"collected"`
}

func (c StampCollection) Complete() bool {
	return len(c.Collected) == len(compass.Order)
}

var koPrinter = message.NewPrinter(language.Korean)

func (s *Service) Journal(ctx context.Context, deviceID string) (Journal, error) {
	if err := s.requireDevice(ctx, deviceID); err != nil {
		return Journal{}, err
	}
	entries, err := s.loadJournal(ctx, deviceID)
	if err != nil {
		return Journal{}, err
	}

	j := Journal{
		Entries:     entries,
		Total:       len(entries),
		TotalLabel:  koPrinter.Sprintf("총 %d번의 여행", len(entries)),
		ByDirection: make(map[compass.DirectionID]int, len(compass.Order)),
	}
	for _, id := range compass.Order {
		j.ByDirection[id] = 0
	}
	for _, e := range entries {
		j.ByDirection[e.DirectionID]++
	}
	return j, nil
}

// Stamps returns this month's stamp collection. A collection left over from
// an earlier month reads as empty.
func (s *Service) Stamps(ctx context.Context, deviceID string) (StampCollection, error) {
	if err := s.requireDevice(ctx, deviceID); err != nil {
		return StampCollection{}, err
	}
	return s.loadStamps(ctx, deviceID)
}

func (s *Service) loadJournal(ctx context.Context, deviceID string) ([]JournalEntry, error) {
	var entries []JournalEntry
	if _, err := s.loadJSON(ctx, deviceKey(deviceID, keyJournal), &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []JournalEntry{}
	}
	return entries, nil
}

func (s *Service) loadStamps(ctx context.Context, deviceID string) (StampCollection, error) {
	month := s.cal.Month()
	var c StampCollection
	if _, err := s.loadJSON(ctx, deviceKey(deviceID, keyStamps), &c); err != nil {
		return StampCollection{}, err
	}
	if c.Month != month || c.Collected == nil {
		return StampCollection{Month: month, Collected: []compass.DirectionID{}}, nil
	}
	return c, nil
}

// appendJournal records sp, replacing any entry for the same date.
func (s *Service) appendJournal(ctx context.Context, deviceID string, sp Spin) error {
	entries, err := s.loadJournal(ctx, deviceID)
	if err != nil {
		return err
	}

	res := sp.Result
	entries = slices.DeleteFunc(entries, func(e JournalEntry) bool { return e.Date == res.Date })
	entries = append(entries, JournalEntry{
		Date:          res.Date,
		DirectionID:   res.Direction.ID,
		DirectionName: res.Direction.Name,
		MainSpot:      res.MainSpot.Name,
		SubSpot:       res.SubSpot.Name,
		Attempt:       sp.Attempt,
		Timestamp:     s.cal.Now().UnixMilli(),
	})
	slices.SortStableFunc(entries, func(a, b JournalEntry) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		}
		return 0
	})
	if len(entries) > maxJournalEntries {
		entries = entries[:maxJournalEntries]
	}

	return s.saveJSON(ctx, deviceKey(deviceID, keyJournal), entries)
}

func (s *Service) collectStamp(ctx context.Context, deviceID string, dir compass.DirectionID) error {
	c, err := s.loadStamps(ctx, deviceID)
	if err != nil {
		return err
	}
	if slices.Contains(c.Collected, dir) {
		return nil
	}
	c.Collected = append(c.Collected, dir)
	return s.saveJSON(ctx, deviceKey(deviceID, keyStamps), c)
}

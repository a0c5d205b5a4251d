// Package visit runs the compass flow for one device: provisioning its
// identity, reopening the app on the same day, spinning (and rerolling),
// unlocking the hidden gem and keeping the travel journal.
//
// The resolver stays pure. Everything stateful lives here and goes through
// the kv.Store.
package visit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wheretogo/compass/internal/ads"
	"github.com/wheretogo/compass/internal/calendar"
	"github.com/wheretogo/compass/internal/compass"
	"github.com/wheretogo/compass/internal/kv"
)

var (
	ErrUnknownDevice  = errors.New("unknown device")
	ErrInvalidAttempt = errors.New("attempt must not be negative")
)

const (
	keyRegistered = "registered"
	keyFirstVisit = "first-visit"
	keyToday      = "today"
	keyJournal    = "journal"
	keyStamps     = "stamps"
)

func deviceKey(deviceID, name string) string {
	return "where-to-go:" + deviceID + ":" + name
}

// Identity is the resolver identity for a device's attempt. Attempt 0 is
// the device itself; each reroll appends its counter.
func Identity(deviceID string, attempt int) string {
	if attempt == 0 {
		return deviceID
	}
	return fmt.Sprintf("%s:r%d", deviceID, attempt)
}

type Device struct {
	ID         string
	FirstVisit bool
}

// Visit is what a device sees when it opens the app.
type Visit struct {
	DeviceID string
	Today    string
	Greeting string
	// TomorrowDate is the day Tomorrow teases.
	TomorrowDate string
	Tomorrow     compass.Direction
	// Revisit holds today's result when the device already spun today.
	Revisit *Spin
}

type Spin struct {
	Attempt int
	Result  compass.Result
	Message string
}

type todayMarker struct {
	Date    string `json:"date"`
	Attempt int    `json:"attempt"`
}

type Options struct {
	AdGroupID string
	ShareLink string
	// NewID generates device identities. Defaults to random UUIDs.
	NewID func() string
}

type Service struct {
	logger   *slog.Logger
	store    kv.Store
	resolver *compass.Resolver
	cal      *calendar.Calendar
	ads      ads.Service

	adGroupID string
	shareLink string
	newID     func() string

	// mu serializes read-modify-write of journal and stamp entries.
	mu sync.Mutex
}

func NewService(logger *slog.Logger, store kv.Store, resolver *compass.Resolver, cal *calendar.Calendar, ad ads.Service, opts Options) *Service {
	if ad == nil {
		ad = ads.Unsupported{}
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Service{
		logger:    logger,
		store:     store,
		resolver:  resolver,
		cal:       cal,
		ads:       ad,
		adGroupID: opts.AdGroupID,
		shareLink: opts.ShareLink,
		newID:     newID,
	}
}

func (s *Service) Resolver() *compass.Resolver { return s.resolver }

// Lookup returns ErrUnknownDevice unless deviceID has been provisioned.
func (s *Service) Lookup(ctx context.Context, deviceID string) error {
	return s.requireDevice(ctx, deviceID)
}

// Provision returns the device for existing when it is registered, and
// registers a fresh identity otherwise. FirstVisit is only ever set for a
// fresh identity whose welcome flow has not been shown.
func (s *Service) Provision(ctx context.Context, existing string) (Device, error) {
	if existing != "" {
		err := s.requireDevice(ctx, existing)
		if err == nil {
			return Device{ID: existing}, nil
		}
		if !errors.Is(err, ErrUnknownDevice) {
			return Device{}, err
		}
	}

	id := s.newID()
	registered := s.cal.Now().UTC().Format(time.RFC3339)
	if err := s.store.Set(ctx, deviceKey(id, keyRegistered), registered); err != nil {
		return Device{}, fmt.Errorf("registering device: %w", err)
	}

	d := Device{ID: id}
	_, err := s.store.Get(ctx, deviceKey(id, keyFirstVisit))
	switch {
	case errors.Is(err, kv.ErrNotFound):
		d.FirstVisit = true
		if err := s.store.Set(ctx, deviceKey(id, keyFirstVisit), "true"); err != nil {
			s.logger.Error("saving first-visit marker", "device", id, "error", err)
		}
	case err != nil:
		s.logger.Warn("reading first-visit marker", "device", id, "error", err)
	}

	s.logger.Info("device provisioned", "device", id, "first_visit", d.FirstVisit)
	return d, nil
}

// Open returns the landing state for a device. A device that already spun
// today gets the same result back in Revisit without spinning again.
func (s *Service) Open(ctx context.Context, deviceID string) (Visit, error) {
	if err := s.requireDevice(ctx, deviceID); err != nil {
		return Visit{}, err
	}

	now := s.cal.Now()
	today := now.Format(calendar.DayLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(calendar.DayLayout)
	v := Visit{
		DeviceID:     deviceID,
		Today:        today,
		Greeting:     Greeting(now.Hour()),
		TomorrowDate: tomorrow,
		Tomorrow:     s.hintDirection(tomorrow),
	}

	m, ok := s.loadMarker(ctx, deviceID)
	if !ok || m.Date != today {
		return v, nil
	}
	sp, err := s.resolve(deviceID, m.Attempt, today)
	if err != nil {
		s.logger.Warn("re-deriving today's result", "device", deviceID, "error", err)
		return v, nil
	}
	v.Revisit = &sp
	return v, nil
}

// Spin resolves today's result for the given attempt and remembers it.
func (s *Service) Spin(ctx context.Context, deviceID string, attempt int) (Spin, error) {
	if err := s.requireDevice(ctx, deviceID); err != nil {
		return Spin{}, err
	}
	sp, err := s.resolve(deviceID, attempt, s.cal.Today())
	if err != nil {
		return Spin{}, err
	}
	s.remember(ctx, deviceID, sp)
	return sp, nil
}

// UnlockGem plays an ad and returns the hidden gem of today's attempt. The
// gem is returned whether or not the ad could be shown.
func (s *Service) UnlockGem(ctx context.Context, deviceID string, attempt int) (compass.HiddenGem, error) {
	if err := s.requireDevice(ctx, deviceID); err != nil {
		return compass.HiddenGem{}, err
	}
	sp, err := s.resolve(deviceID, attempt, s.cal.Today())
	if err != nil {
		return compass.HiddenGem{}, err
	}

	err = s.ads.Show(ctx, s.adGroupID)
	switch {
	case errors.Is(err, ads.ErrUnsupported):
		s.logger.Debug("ads unsupported, unlocking directly", "device", deviceID)
	case err != nil:
		s.logger.Warn("showing ad", "device", deviceID, "error", err)
	}
	return sp.Result.HiddenGem, nil
}

// Share returns the share message for today's attempt.
func (s *Service) Share(ctx context.Context, deviceID string, attempt int) (string, error) {
	if err := s.requireDevice(ctx, deviceID); err != nil {
		return "", err
	}
	sp, err := s.resolve(deviceID, attempt, s.cal.Today())
	if err != nil {
		return "", err
	}
	return ShareMessage(sp.Result, s.shareLink), nil
}

// TomorrowHint returns tomorrow's teaser direction.
func (s *Service) TomorrowHint() (string, compass.Direction) {
	tomorrow := s.cal.Tomorrow()
	return tomorrow, s.hintDirection(tomorrow)
}

func (s *Service) hintDirection(date string) compass.Direction {
	d, _ := s.resolver.Table().Direction(TomorrowHint(date))
	return d
}

func (s *Service) resolve(deviceID string, attempt int, date string) (Spin, error) {
	if attempt < 0 {
		return Spin{}, ErrInvalidAttempt
	}
	res, err := s.resolver.Resolve(Identity(deviceID, attempt), date)
	if err != nil {
		return Spin{}, fmt.Errorf("resolving travel: %w", err)
	}
	return Spin{
		Attempt: attempt,
		Result:  res,
		Message: FoundMessage(res.Direction),
	}, nil
}

func (s *Service) requireDevice(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return ErrUnknownDevice
	}
	_, err := s.store.Get(ctx, deviceKey(deviceID, keyRegistered))
	if errors.Is(err, kv.ErrNotFound) {
		return ErrUnknownDevice
	}
	if err != nil {
		return fmt.Errorf("looking up device: %w", err)
	}
	return nil
}

func (s *Service) loadMarker(ctx context.Context, deviceID string) (todayMarker, bool) {
	var m todayMarker
	ok, err := s.loadJSON(ctx, deviceKey(deviceID, keyToday), &m)
	if err != nil {
		s.logger.Warn("reading today marker", "device", deviceID, "error", err)
		return todayMarker{}, false
	}
	return m, ok
}

// remember stores the same-day marker, journal entry and month stamp for a
// spin. Failures are logged; the spin itself already succeeded.
func (s *Service) remember(ctx context.Context, deviceID string, sp Spin) {
	if err := s.saveJSON(ctx, deviceKey(deviceID, keyToday), todayMarker{Date: sp.Result.Date, Attempt: sp.Attempt}); err != nil {
		s.logger.Error("saving today marker", "device", deviceID, "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendJournal(ctx, deviceID, sp); err != nil {
		s.logger.Error("saving journal entry", "device", deviceID, "error", err)
	}
	if err := s.collectStamp(ctx, deviceID, sp.Result.Direction.ID); err != nil {
		s.logger.Error("saving stamp", "device", deviceID, "error", err)
	}
}

// loadJSON decodes the value at key into dest. It reports false when the
// key is absent.
func (s *Service) loadJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (s *Service) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.store.Set(ctx, key, string(data))
}

package services

import (
	"errors"
	"time"

	"go.uber.org/atomic"

	"swtd/internal/models"
	"swtd/internal/structures"
)

// UnknownChannel is the sentinel identifier used when a probe cannot resolve
// the channel name. It is treated like any other channel.
const UnknownChannel = "unknown"

var (
	ErrEmptyChannel = errors.New("empty channel identifier")
	ErrInvalidDelta = errors.New("delta must be a positive number of seconds")
)

type TrackerServiceInterface interface {
	Accumulate(channel string, seconds int64, now time.Time) error
	SweepIfNeeded(now time.Time) (days, weeks int, swept bool)
	ReadTotals(channel string, now time.Time) models.ChannelTotals
	ReadAllChannels(now time.Time) []models.ChannelTotals
	GetChannels() []string
	GetSnapshot() *models.Snapshot
	ImportSnapshot(snap *models.Snapshot)
	Clear()
	TrackMuted() bool
	SetTrackMuted(v bool)
	BucketCount() int
	TickCount() int64
}

type TrackerService struct {
	conf     *structures.Config
	store    *models.BucketStore
	resolver models.Resolver
	ticks    atomic.Int64
}

func NewTrackerService(conf *structures.Config) TrackerServiceInterface {
	weekStart, err := models.ParseWeekday(conf.Tracking.WeekStart)
	if err != nil {
		weekStart = time.Sunday
	}
	return &TrackerService{
		conf:     conf,
		store:    models.NewBucketStore(),
		resolver: models.NewResolver(weekStart),
	}
}

// Accumulate folds one elapsed-time increment into the channel's day, week,
// month and all-time buckets for now. The four updates are applied as a
// single unit. Replay is not deduplicated: callers report each elapsed
// second at most once.
func (ts *TrackerService) Accumulate(channel string, seconds int64, now time.Time) error {
	if channel == "" {
		return ErrEmptyChannel
	}
	if seconds <= 0 {
		return ErrInvalidDelta
	}

	dayMs := ts.resolver.DayStart(now).UnixMilli()
	weekMs := ts.resolver.WeekStart(now).UnixMilli()
	monthMs := ts.resolver.MonthStart(now).UnixMilli()

	ts.store.AddAll(
		models.BucketKey{Kind: models.KindDay, Channel: channel, StartMs: dayMs},
		models.BucketKey{Kind: models.KindWeek, Channel: channel, StartMs: weekMs},
		models.BucketKey{Kind: models.KindMonth, Channel: channel, StartMs: monthMs},
		channel, seconds,
	)
	ts.ticks.Add(1)
	return nil
}

// SweepIfNeeded runs the daily retention pass at most once per calendar day.
// Day buckets older than the day retention and week buckets older than the
// week retention are deleted; buckets exactly at a cutoff survive. Month and
// all-time buckets are never pruned.
func (ts *TrackerService) SweepIfNeeded(now time.Time) (days, weeks int, swept bool) {
	today := ts.resolver.DayStart(now)
	if !ts.store.BeginSweep(today.UnixMilli()) {
		return 0, 0, false
	}

	dayCutoff := today.AddDate(0, 0, -ts.conf.Tracking.DayRetentionDays).UnixMilli()
	weekCutoff := today.AddDate(0, 0, -ts.conf.Tracking.WeekRetentionDays).UnixMilli()

	days, weeks = ts.store.Sweep(dayCutoff, weekCutoff)
	return days, weeks, true
}

func (ts *TrackerService) ReadTotals(channel string, now time.Time) models.ChannelTotals {
	dayMs, weekMs, monthMs := ts.periodKeys(now)
	return ts.store.Totals(channel, dayMs, weekMs, monthMs)
}

func (ts *TrackerService) ReadAllChannels(now time.Time) []models.ChannelTotals {
	dayMs, weekMs, monthMs := ts.periodKeys(now)
	return ts.store.Rows(dayMs, weekMs, monthMs)
}

func (ts *TrackerService) periodKeys(now time.Time) (dayMs, weekMs, monthMs int64) {
	return ts.resolver.DayStart(now).UnixMilli(),
		ts.resolver.WeekStart(now).UnixMilli(),
		ts.resolver.MonthStart(now).UnixMilli()
}

func (ts *TrackerService) GetChannels() []string {
	return ts.store.Channels()
}

func (ts *TrackerService) GetSnapshot() *models.Snapshot {
	return ts.store.Snapshot()
}

func (ts *TrackerService) ImportSnapshot(snap *models.Snapshot) {
	ts.store.Merge(snap)
}

func (ts *TrackerService) Clear() {
	ts.store.Clear()
}

func (ts *TrackerService) TrackMuted() bool {
	return ts.store.TrackMuted()
}

func (ts *TrackerService) SetTrackMuted(v bool) {
	ts.store.SetTrackMuted(v)
}

func (ts *TrackerService) BucketCount() int {
	return ts.store.Len()
}

// TickCount reports accumulations applied since boot.
func (ts *TrackerService) TickCount() int64 {
	return ts.ticks.Load()
}

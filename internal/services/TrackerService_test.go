package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swtd/internal/models"
	"swtd/internal/structures"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Tracking: structures.TrackingConfig{
			WeekStart:            "sunday",
			DayRetentionDays:     7,
			WeekRetentionDays:    30,
			CleanupCheckInterval: time.Minute,
		},
	}
}

func newTestService() TrackerServiceInterface {
	return NewTrackerService(testConfig())
}

func TestAccumulate_SingleDayAdditivity(t *testing.T) {
	svc := newTestService()
	now := time.Date(2024, 5, 15, 14, 0, 0, 0, time.Local)

	for i := 0; i < 125; i++ {
		require.NoError(t, svc.Accumulate("alice", 1, now.Add(time.Duration(i)*time.Second)))
	}

	totals := svc.ReadTotals("alice", now)
	assert.Equal(t, int64(125), totals.Today)
	assert.Equal(t, int64(125), totals.ThisWeek)
	assert.Equal(t, int64(125), totals.ThisMonth)
	assert.Equal(t, int64(125), totals.AllTime)
}

func TestAccumulate_RejectsBadInput(t *testing.T) {
	svc := newTestService()
	now := time.Now()

	assert.ErrorIs(t, svc.Accumulate("", 1, now), ErrEmptyChannel)
	assert.ErrorIs(t, svc.Accumulate("alice", 0, now), ErrInvalidDelta)
	assert.ErrorIs(t, svc.Accumulate("alice", -5, now), ErrInvalidDelta)
}

func TestAccumulate_UnknownIsOrdinaryChannel(t *testing.T) {
	svc := newTestService()
	now := time.Now()

	require.NoError(t, svc.Accumulate(UnknownChannel, 1, now))
	assert.Equal(t, int64(1), svc.ReadTotals(UnknownChannel, now).AllTime)
}

func TestAccumulate_ArbitraryPositiveDelta(t *testing.T) {
	svc := newTestService()
	now := time.Now()

	require.NoError(t, svc.Accumulate("alice", 90, now))
	assert.Equal(t, int64(90), svc.ReadTotals("alice", now).Today)
}

func TestReadTotals_AllTimeMonotonic(t *testing.T) {
	svc := newTestService()
	now := time.Date(2024, 5, 15, 23, 59, 59, 0, time.Local)

	var last int64
	for i := 0; i < 50; i++ {
		require.NoError(t, svc.Accumulate("alice", 1, now))
		allTime := svc.ReadTotals("alice", now).AllTime
		assert.GreaterOrEqual(t, allTime, last)
		last = allTime
		// All-time survives day boundaries
		now = now.Add(time.Hour)
	}
	assert.Equal(t, int64(50), last)
}

func TestReadTotals_NewDayStartsAtZero(t *testing.T) {
	svc := newTestService()
	day1 := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)

	require.NoError(t, svc.Accumulate("alice", 100, day1))

	totals := svc.ReadTotals("alice", day2)
	assert.Zero(t, totals.Today)
	assert.Equal(t, int64(100), totals.AllTime)
}

func TestReadAllChannels_OrderedByAllTime(t *testing.T) {
	svc := newTestService()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)

	require.NoError(t, svc.Accumulate("bob", 100, now))
	require.NoError(t, svc.Accumulate("alice", 300, now))

	rows := svc.ReadAllChannels(now)
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0].Channel)
	assert.Equal(t, int64(300), rows[0].AllTime)
	assert.Equal(t, "bob", rows[1].Channel)
	assert.Equal(t, int64(100), rows[1].AllTime)
}

func TestReadAllChannels_ReadOnly(t *testing.T) {
	svc := newTestService()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	require.NoError(t, svc.Accumulate("alice", 1, now))
	before := svc.BucketCount()

	// Reading under a different now must not create buckets
	svc.ReadAllChannels(now.AddDate(0, 0, 3))
	svc.ReadTotals("alice", now.AddDate(0, 1, 0))

	assert.Equal(t, before, svc.BucketCount())
}

func TestSweepIfNeeded_DeletesExpiredBuckets(t *testing.T) {
	svc := newTestService()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)

	// A day bucket from 8 days ago and a month bucket from ~60 days ago
	require.NoError(t, svc.Accumulate("alice", 10, now.AddDate(0, 0, -8)))
	require.NoError(t, svc.Accumulate("alice", 20, now.AddDate(0, 0, -60)))
	require.NoError(t, svc.Accumulate("alice", 30, now))

	days, weeks, swept := svc.SweepIfNeeded(now)
	require.True(t, swept)
	assert.Equal(t, 2, days) // the -8d and -60d day buckets
	assert.Equal(t, 1, weeks) // only the -60d week bucket is past 30 days

	snap := svc.GetSnapshot()
	dayStart := time.Date(2024, 5, 7, 0, 0, 0, 0, time.Local).UnixMilli()
	_, stale := snap.Buckets[models.BucketKey{Kind: models.KindDay, Channel: "alice", StartMs: dayStart}]
	assert.False(t, stale)

	// Month buckets survive no matter how old
	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local).UnixMilli()
	assert.Equal(t, int64(20), snap.Buckets[models.BucketKey{Kind: models.KindMonth, Channel: "alice", StartMs: monthStart}])

	// All-time untouched
	assert.Equal(t, int64(60), svc.ReadTotals("alice", now).AllTime)
}

func TestSweepIfNeeded_IdempotentPerDay(t *testing.T) {
	svc := newTestService()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)

	_, _, swept := svc.SweepIfNeeded(now)
	require.True(t, swept)

	// Same day, later hour: no-op
	_, _, swept = svc.SweepIfNeeded(now.Add(5 * time.Hour))
	assert.False(t, swept)

	// Next day sweeps again
	_, _, swept = svc.SweepIfNeeded(now.AddDate(0, 0, 1))
	assert.True(t, swept)
}

func TestSweepIfNeeded_KeepsBucketExactlyAtBoundary(t *testing.T) {
	svc := newTestService()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)

	// Exactly 7 days before today: kept (cutoff is exclusive-below)
	require.NoError(t, svc.Accumulate("alice", 10, now.AddDate(0, 0, -7)))

	_, _, swept := svc.SweepIfNeeded(now)
	require.True(t, swept)

	dayStart := time.Date(2024, 5, 8, 0, 0, 0, 0, time.Local).UnixMilli()
	snap := svc.GetSnapshot()
	assert.Equal(t, int64(10), snap.Buckets[models.BucketKey{Kind: models.KindDay, Channel: "alice", StartMs: dayStart}])
}

func TestSweep_ConfigurableWeekRetention(t *testing.T) {
	conf := testConfig()
	conf.Tracking.WeekRetentionDays = 10
	svc := NewTrackerService(conf)
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)

	// Week bucket started ~2 weeks ago: outside a 10-day retention
	require.NoError(t, svc.Accumulate("alice", 5, now.AddDate(0, 0, -14)))

	days, weeks, swept := svc.SweepIfNeeded(now)
	require.True(t, swept)
	assert.Equal(t, 1, days)
	assert.Equal(t, 1, weeks)
}

func TestExportClearImport_RoundTrip(t *testing.T) {
	svc := newTestService()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	require.NoError(t, svc.Accumulate("alice", 300, now))
	require.NoError(t, svc.Accumulate("bob", 100, now))
	svc.SetTrackMuted(true)
	svc.SweepIfNeeded(now)

	exported := svc.GetSnapshot()
	data, err := exported.Encode()
	require.NoError(t, err)

	svc.Clear()
	assert.Empty(t, svc.GetChannels())

	imported, err := models.DecodeSnapshot(data)
	require.NoError(t, err)
	svc.ImportSnapshot(imported)

	assert.Equal(t, exported, svc.GetSnapshot())
	assert.True(t, svc.TrackMuted())
}

func TestTrackMuted_Flag(t *testing.T) {
	svc := newTestService()
	assert.False(t, svc.TrackMuted())
	svc.SetTrackMuted(true)
	assert.True(t, svc.TrackMuted())
}

func TestTickCount(t *testing.T) {
	svc := newTestService()
	now := time.Now()
	require.NoError(t, svc.Accumulate("alice", 1, now))
	require.NoError(t, svc.Accumulate("bob", 1, now))
	assert.Equal(t, int64(2), svc.TickCount())
}

func TestNewTrackerService_FallsBackToSundayOnBadWeekStart(t *testing.T) {
	conf := testConfig()
	conf.Tracking.WeekStart = "caturday"
	svc := NewTrackerService(conf)

	// Still operational
	now := time.Now()
	require.NoError(t, svc.Accumulate("alice", 1, now))
	assert.Equal(t, int64(1), svc.ReadTotals("alice", now).ThisWeek)
}

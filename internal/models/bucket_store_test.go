package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDayMs   = int64(1715731200000)
	testWeekMs  = int64(1715472000000)
	testMonthMs = int64(1714521600000)
)

func addSeconds(bs *BucketStore, channel string, delta int64) {
	bs.AddAll(
		BucketKey{Kind: KindDay, Channel: channel, StartMs: testDayMs},
		BucketKey{Kind: KindWeek, Channel: channel, StartMs: testWeekMs},
		BucketKey{Kind: KindMonth, Channel: channel, StartMs: testMonthMs},
		channel, delta,
	)
}

func TestBucketStore_AddAll_UpdatesFourBuckets(t *testing.T) {
	bs := NewBucketStore()
	addSeconds(bs, "alice", 1)
	addSeconds(bs, "alice", 1)

	assert.Equal(t, int64(2), bs.Get(BucketKey{KindDay, "alice", testDayMs}))
	assert.Equal(t, int64(2), bs.Get(BucketKey{KindWeek, "alice", testWeekMs}))
	assert.Equal(t, int64(2), bs.Get(BucketKey{KindMonth, "alice", testMonthMs}))
	assert.Equal(t, int64(2), bs.AllTime("alice"))
}

func TestBucketStore_Additivity(t *testing.T) {
	bs := NewBucketStore()
	for i := 0; i < 125; i++ {
		addSeconds(bs, "alice", 1)
	}
	assert.Equal(t, int64(125), bs.Get(BucketKey{KindDay, "alice", testDayMs}))
	assert.Equal(t, int64(125), bs.AllTime("alice"))
}

func TestBucketStore_Totals_AbsentBucketsReadZero(t *testing.T) {
	bs := NewBucketStore()
	totals := bs.Totals("ghost", testDayMs, testWeekMs, testMonthMs)
	assert.Equal(t, ChannelTotals{Channel: "ghost"}, totals)
	// Reads never create buckets
	assert.Equal(t, 0, bs.Len())
}

func TestBucketStore_Rows_OrderedByAllTimeDesc(t *testing.T) {
	bs := NewBucketStore()
	addSeconds(bs, "bob", 100)
	addSeconds(bs, "alice", 300)
	addSeconds(bs, "carol", 100)

	rows := bs.Rows(testDayMs, testWeekMs, testMonthMs)
	require.Len(t, rows, 3)
	assert.Equal(t, "alice", rows[0].Channel)
	// Tie between bob and carol breaks by name
	assert.Equal(t, "bob", rows[1].Channel)
	assert.Equal(t, "carol", rows[2].Channel)
}

func TestBucketStore_BeginSweep_OncePerDay(t *testing.T) {
	bs := NewBucketStore()
	assert.True(t, bs.BeginSweep(testDayMs))
	assert.False(t, bs.BeginSweep(testDayMs))
	assert.Equal(t, testDayMs, bs.LastCleanUp())

	nextDay := testDayMs + 86400000
	assert.True(t, bs.BeginSweep(nextDay))
	assert.Equal(t, nextDay, bs.LastCleanUp())
}

func TestBucketStore_Sweep_Boundaries(t *testing.T) {
	bs := NewBucketStore()
	day := int64(86400000)
	today := int64(100) * day
	dayCutoff := today - 7*day
	weekCutoff := today - 30*day

	bs.AddAll(
		BucketKey{KindDay, "alice", dayCutoff - 1},
		BucketKey{KindWeek, "alice", weekCutoff - 1},
		BucketKey{KindMonth, "alice", today - 60*day},
		"alice", 10,
	)
	bs.AddAll(
		BucketKey{KindDay, "alice", dayCutoff},
		BucketKey{KindWeek, "alice", weekCutoff},
		BucketKey{KindMonth, "alice", today - 90*day},
		"alice", 20,
	)

	days, weeks := bs.Sweep(dayCutoff, weekCutoff)
	assert.Equal(t, 1, days)
	assert.Equal(t, 1, weeks)

	// Strictly-older buckets are gone
	assert.Zero(t, bs.Get(BucketKey{KindDay, "alice", dayCutoff - 1}))
	assert.Zero(t, bs.Get(BucketKey{KindWeek, "alice", weekCutoff - 1}))
	// Exactly-at-cutoff buckets survive
	assert.Equal(t, int64(20), bs.Get(BucketKey{KindDay, "alice", dayCutoff}))
	assert.Equal(t, int64(20), bs.Get(BucketKey{KindWeek, "alice", weekCutoff}))
	// Month buckets and all-time totals are never pruned
	assert.Equal(t, int64(10), bs.Get(BucketKey{KindMonth, "alice", today - 60*day}))
	assert.Equal(t, int64(30), bs.AllTime("alice"))
}

func TestBucketStore_SnapshotMerge_RoundTrip(t *testing.T) {
	bs := NewBucketStore()
	addSeconds(bs, "alice", 300)
	addSeconds(bs, "bob", 100)
	bs.BeginSweep(testDayMs)
	bs.SetTrackMuted(true)

	snap := bs.Snapshot()

	restored := NewBucketStore()
	restored.Merge(snap)

	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, testDayMs, restored.LastCleanUp())
	assert.True(t, restored.TrackMuted())
}

func TestBucketStore_Snapshot_IsDeepCopy(t *testing.T) {
	bs := NewBucketStore()
	addSeconds(bs, "alice", 5)

	snap := bs.Snapshot()
	snap.Buckets[BucketKey{KindDay, "alice", testDayMs}] = 999
	snap.AllTime["alice"] = 999

	assert.Equal(t, int64(5), bs.Get(BucketKey{KindDay, "alice", testDayMs}))
	assert.Equal(t, int64(5), bs.AllTime("alice"))
}

func TestBucketStore_Clear(t *testing.T) {
	bs := NewBucketStore()
	addSeconds(bs, "alice", 5)
	bs.BeginSweep(testDayMs)
	bs.SetTrackMuted(true)

	bs.Clear()

	assert.Equal(t, 0, bs.Len())
	assert.Zero(t, bs.LastCleanUp())
	assert.False(t, bs.TrackMuted())
	assert.Empty(t, bs.Channels())
}

func TestBucketStore_ConcurrentAdds(t *testing.T) {
	bs := NewBucketStore()
	var wg sync.WaitGroup
	channels := []string{"alice", "bob"}
	for _, ch := range channels {
		wg.Add(1)
		go func(ch string) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				addSeconds(bs, ch, 1)
			}
		}(ch)
	}
	wg.Wait()

	assert.Equal(t, int64(500), bs.AllTime("alice"))
	assert.Equal(t, int64(500), bs.AllTime("bob"))
}

package models

import (
	"sort"
	"sync"
)

// ChannelTotals is one row of the aggregation view: the four current rollup
// windows for a channel.
type ChannelTotals struct {
	Channel   string `json:"channel"`
	Today     int64  `json:"today"`
	ThisWeek  int64  `json:"this_week"`
	ThisMonth int64  `json:"this_month"`
	AllTime   int64  `json:"all_time"`
}

// BucketStore holds all accumulation buckets, the sweep marker and the
// tracking flag under a single lock. Period buckets and all-time totals are
// kept separately; both are covered by every snapshot.
type BucketStore struct {
	mu          sync.RWMutex
	buckets     map[BucketKey]int64
	allTime     map[string]int64
	lastCleanUp int64
	trackMuted  bool
}

func NewBucketStore() *BucketStore {
	return &BucketStore{
		buckets: make(map[BucketKey]int64),
		allTime: make(map[string]int64),
	}
}

// AddAll applies one accumulation as a single unit: the day, week and month
// buckets plus the channel's all-time total are incremented under one lock.
func (bs *BucketStore) AddAll(day, week, month BucketKey, channel string, delta int64) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	bs.buckets[day] += delta
	bs.buckets[week] += delta
	bs.buckets[month] += delta
	bs.allTime[channel] += delta
}

func (bs *BucketStore) Get(key BucketKey) int64 {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.buckets[key]
}

func (bs *BucketStore) AllTime(channel string) int64 {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.allTime[channel]
}

func (bs *BucketStore) Channels() []string {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	channels := make([]string, 0, len(bs.allTime))
	for ch := range bs.allTime {
		channels = append(channels, ch)
	}
	sort.Strings(channels)
	return channels
}

// Totals reads the four windows for one channel against the given period
// starts. Absent buckets read as zero; nothing is created.
func (bs *BucketStore) Totals(channel string, dayMs, weekMs, monthMs int64) ChannelTotals {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.totalsLocked(channel, dayMs, weekMs, monthMs)
}

func (bs *BucketStore) totalsLocked(channel string, dayMs, weekMs, monthMs int64) ChannelTotals {
	return ChannelTotals{
		Channel:   channel,
		Today:     bs.buckets[BucketKey{KindDay, channel, dayMs}],
		ThisWeek:  bs.buckets[BucketKey{KindWeek, channel, weekMs}],
		ThisMonth: bs.buckets[BucketKey{KindMonth, channel, monthMs}],
		AllTime:   bs.allTime[channel],
	}
}

// Rows returns one ChannelTotals per known channel, sorted by all-time total
// descending with ties broken by channel name.
func (bs *BucketStore) Rows(dayMs, weekMs, monthMs int64) []ChannelTotals {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	rows := make([]ChannelTotals, 0, len(bs.allTime))
	for ch := range bs.allTime {
		rows = append(rows, bs.totalsLocked(ch, dayMs, weekMs, monthMs))
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AllTime != rows[j].AllTime {
			return rows[i].AllTime > rows[j].AllTime
		}
		return rows[i].Channel < rows[j].Channel
	})
	return rows
}

// BeginSweep commits the cleanup marker for today and reports whether a sweep
// should run. A second call with the same day is a no-op. The marker moves
// before any deletion happens, so a crash mid-sweep skips the remainder of
// that day's sweep; the next day's run picks the stragglers up.
func (bs *BucketStore) BeginSweep(todayMs int64) bool {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if bs.lastCleanUp == todayMs {
		return false
	}
	bs.lastCleanUp = todayMs
	return true
}

// Sweep deletes day buckets starting before dayCutoffMs and week buckets
// starting before weekCutoffMs. Buckets exactly at a cutoff are kept. Month
// buckets and all-time totals are never touched.
func (bs *BucketStore) Sweep(dayCutoffMs, weekCutoffMs int64) (days, weeks int) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	for key := range bs.buckets {
		switch {
		case key.Kind == KindDay && key.StartMs < dayCutoffMs:
			delete(bs.buckets, key)
			days++
		case key.Kind == KindWeek && key.StartMs < weekCutoffMs:
			delete(bs.buckets, key)
			weeks++
		}
	}
	return days, weeks
}

func (bs *BucketStore) LastCleanUp() int64 {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastCleanUp
}

func (bs *BucketStore) TrackMuted() bool {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.trackMuted
}

func (bs *BucketStore) SetTrackMuted(v bool) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.trackMuted = v
}

// Len reports the number of period buckets plus all-time totals.
func (bs *BucketStore) Len() int {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return len(bs.buckets) + len(bs.allTime)
}

// Snapshot returns a deep copy of the full store contents.
func (bs *BucketStore) Snapshot() *Snapshot {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	snap := &Snapshot{
		Buckets:     make(map[BucketKey]int64, len(bs.buckets)),
		AllTime:     make(map[string]int64, len(bs.allTime)),
		LastCleanUp: bs.lastCleanUp,
	}
	for k, v := range bs.buckets {
		snap.Buckets[k] = v
	}
	for ch, v := range bs.allTime {
		snap.AllTime[ch] = v
	}
	muted := bs.trackMuted
	snap.TrackMuted = &muted
	return snap
}

// Merge overwrites store entries with the snapshot's, key by key. Entries not
// present in the snapshot are left alone.
func (bs *BucketStore) Merge(snap *Snapshot) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	for k, v := range snap.Buckets {
		bs.buckets[k] = v
	}
	for ch, v := range snap.AllTime {
		bs.allTime[ch] = v
	}
	if snap.LastCleanUp != 0 {
		bs.lastCleanUp = snap.LastCleanUp
	}
	if snap.TrackMuted != nil {
		bs.trackMuted = *snap.TrackMuted
	}
}

// Clear wipes everything, the marker and flag included.
func (bs *BucketStore) Clear() {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	bs.buckets = make(map[BucketKey]int64)
	bs.allTime = make(map[string]int64)
	bs.lastCleanUp = 0
	bs.trackMuted = false
}

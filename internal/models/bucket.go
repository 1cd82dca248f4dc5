package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type PeriodKind string

const (
	KindDay   PeriodKind = "day"
	KindWeek  PeriodKind = "week"
	KindMonth PeriodKind = "month"
)

// allTimePrefix marks per-channel all-time totals, which carry no period.
const allTimePrefix = "channel_"

// BucketKey identifies one accumulation bucket: a period kind, a channel and
// the period-start instant in epoch milliseconds.
type BucketKey struct {
	Kind    PeriodKind
	Channel string
	StartMs int64
}

func (k BucketKey) String() string {
	return fmt.Sprintf("%s_%s_%d", k.Kind, k.Channel, k.StartMs)
}

var ErrNotBucketKey = errors.New("not a bucket key")

// ParseBucketKey parses the wire form <kind>_<channel>_<startMs>. The kind is
// everything before the first underscore and the timestamp everything after
// the last one, so channel names containing underscores survive the round
// trip.
func ParseBucketKey(s string) (BucketKey, error) {
	sep := strings.IndexByte(s, '_')
	if sep < 0 {
		return BucketKey{}, ErrNotBucketKey
	}

	kind := PeriodKind(s[:sep])
	switch kind {
	case KindDay, KindWeek, KindMonth:
	default:
		return BucketKey{}, ErrNotBucketKey
	}

	rest := s[sep+1:]
	last := strings.LastIndexByte(rest, '_')
	if last <= 0 {
		return BucketKey{}, ErrNotBucketKey
	}

	startMs, err := strconv.ParseInt(rest[last+1:], 10, 64)
	if err != nil || startMs < 0 {
		return BucketKey{}, ErrNotBucketKey
	}

	return BucketKey{Kind: kind, Channel: rest[:last], StartMs: startMs}, nil
}

func AllTimeKey(channel string) string {
	return allTimePrefix + channel
}

func ParseAllTimeKey(s string) (string, bool) {
	if !strings.HasPrefix(s, allTimePrefix) || len(s) == len(allTimePrefix) {
		return "", false
	}
	return s[len(allTimePrefix):], true
}

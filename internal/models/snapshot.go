package models

import (
	"fmt"

	json "github.com/goccy/go-json"
)

const (
	keyLastCleanUp = "lastCleanUp"
	keyTrackMuted  = "trackMutedStreams"
)

// Snapshot is the full store contents in structured form. On the wire it is a
// flat JSON object keyed by the storage key scheme:
//
//	day_<channel>_<startMs>   integer seconds
//	week_<channel>_<startMs>  integer seconds
//	month_<channel>_<startMs> integer seconds
//	channel_<channel>         integer seconds (all-time)
//	lastCleanUp               integer day-start ms
//	trackMutedStreams         bool
type Snapshot struct {
	Buckets     map[BucketKey]int64
	AllTime     map[string]int64
	LastCleanUp int64
	TrackMuted  *bool
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Buckets: make(map[BucketKey]int64),
		AllTime: make(map[string]int64),
	}
}

// Encode serializes the snapshot to its flat wire form.
func (s *Snapshot) Encode() ([]byte, error) {
	flat := make(map[string]any, len(s.Buckets)+len(s.AllTime)+2)
	for k, v := range s.Buckets {
		flat[k.String()] = v
	}
	for ch, v := range s.AllTime {
		flat[AllTimeKey(ch)] = v
	}
	if s.LastCleanUp != 0 {
		flat[keyLastCleanUp] = s.LastCleanUp
	}
	if s.TrackMuted != nil {
		flat[keyTrackMuted] = *s.TrackMuted
	}
	return json.Marshal(flat)
}

// DecodeSnapshot parses and validates a flat wire-form snapshot. Validation
// is strict: a key that matches no known pattern, or a value of the wrong
// type, rejects the whole payload so a failed import leaves the store
// untouched.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("invalid snapshot payload: %w", err)
	}

	snap := NewSnapshot()
	for key, raw := range flat {
		switch {
		case key == keyLastCleanUp:
			v, err := decodeSeconds(key, raw)
			if err != nil {
				return nil, err
			}
			snap.LastCleanUp = v

		case key == keyTrackMuted:
			var b bool
			if err := json.Unmarshal(raw, &b); err != nil {
				return nil, fmt.Errorf("key %q: expected bool", key)
			}
			snap.TrackMuted = &b

		default:
			if ch, ok := ParseAllTimeKey(key); ok {
				v, err := decodeSeconds(key, raw)
				if err != nil {
					return nil, err
				}
				snap.AllTime[ch] = v
				continue
			}
			bk, err := ParseBucketKey(key)
			if err != nil {
				return nil, fmt.Errorf("unrecognized key %q", key)
			}
			v, err := decodeSeconds(key, raw)
			if err != nil {
				return nil, err
			}
			snap.Buckets[bk] = v
		}
	}
	return snap, nil
}

func decodeSeconds(key string, raw json.RawMessage) (int64, error) {
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("key %q: expected integer", key)
	}
	if v < 0 {
		return 0, fmt.Errorf("key %q: negative value %d", key, v)
	}
	return v, nil
}

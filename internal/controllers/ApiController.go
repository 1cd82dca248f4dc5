package controllers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"swtd/internal/models"
	"swtd/internal/providers"
	"swtd/internal/services"
	"swtd/internal/watcher"
)

const maxRequestBodySize = 10 << 20 // 10 MB, imports carry full snapshots

const exportFileName = "watchtime_data.json"

type ApiController struct {
	logger  providers.Logger
	service services.TrackerServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	watcher watcher.WatcherInterface
}

func NewApiController(logger providers.Logger, service services.TrackerServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, watcher watcher.WatcherInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
		watcher: watcher,
	}
}

type tickPayload struct {
	Channel string `json:"channel"`
	Seconds int64  `json:"seconds"`
}

// channelRow is a ChannelTotals plus the HH:MM:SS renderings display clients
// show directly.
type channelRow struct {
	models.ChannelTotals
	TodayHMS     string `json:"today_hms"`
	ThisWeekHMS  string `json:"this_week_hms"`
	ThisMonthHMS string `json:"this_month_hms"`
	AllTimeHMS   string `json:"all_time_hms"`
}

type channelsResponse struct {
	Channels []channelRow `json:"channels"`
	Totals   channelRow   `json:"totals"`
}

func newChannelRow(t models.ChannelTotals) channelRow {
	return channelRow{
		ChannelTotals: t,
		TodayHMS:      formatHMS(t.Today),
		ThisWeekHMS:   formatHMS(t.ThisWeek),
		ThisMonthHMS:  formatHMS(t.ThisMonth),
		AllTimeHMS:    formatHMS(t.AllTime),
	}
}

func formatHMS(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		ac.metrics.IncCacheHits()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	ac.metrics.IncCacheMisses()

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// ReceiveTick accepts one watch-time increment from an external tick source.
func (ac *ApiController) ReceiveTick(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload tickPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Channel == "" {
		payload.Channel = services.UnknownChannel
	}
	if payload.Seconds == 0 {
		payload.Seconds = 1
	}
	if err := ac.service.Accumulate(payload.Channel, payload.Seconds, time.Now()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ac.metrics.IncTicks(payload.Channel)
	w.WriteHeader(http.StatusCreated)
}

// GetChannels returns one row per channel, ordered by all-time watch time
// descending, plus a grand-total row across all channels.
func (ac *ApiController) GetChannels(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "channels", func() (any, error) {
		rows := ac.service.ReadAllChannels(time.Now())

		resp := channelsResponse{Channels: make([]channelRow, 0, len(rows))}
		var total models.ChannelTotals
		total.Channel = "total"
		for _, row := range rows {
			resp.Channels = append(resp.Channels, newChannelRow(row))
			total.Today += row.Today
			total.ThisWeek += row.ThisWeek
			total.ThisMonth += row.ThisMonth
			total.AllTime += row.AllTime
		}
		resp.Totals = newChannelRow(total)
		return resp, nil
	})
}

// GetTotals returns the four rollup windows for a single channel.
func (ac *ApiController) GetTotals(w http.ResponseWriter, r *http.Request) {
	ch := r.URL.Query().Get("ch")
	if ch == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, "totals:"+ch, func() (any, error) {
		return newChannelRow(ac.service.ReadTotals(ch, time.Now())), nil
	})
}

// ExportData serves the full store as a downloadable JSON snapshot.
func (ac *ApiController) ExportData(w http.ResponseWriter, r *http.Request) {
	data, err := ac.service.GetSnapshot().Encode()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportData merges a snapshot payload into the store. A malformed payload is
// rejected wholesale and the store left unmodified.
func (ac *ApiController) ImportData(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	data, err := readAll(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		ac.logger.Warnf(providers.TypePost, "Rejected import: %s", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ac.service.ImportSnapshot(snap)
	ac.logger.Infof(providers.TypePost, "Imported %d buckets, %d channels", len(snap.Buckets), len(snap.AllTime))
	w.WriteHeader(http.StatusOK)
}

// ClearData wipes the entire store.
func (ac *ApiController) ClearData(w http.ResponseWriter, r *http.Request) {
	ac.service.Clear()
	ac.logger.Infof(providers.TypePost, "All watch-time data deleted")
	w.WriteHeader(http.StatusOK)
}

type settingsPayload struct {
	TrackMutedStreams bool `json:"trackMutedStreams"`
}

// Settings reads (GET) or updates (POST) the tracking settings.
func (ac *ApiController) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, settingsPayload{TrackMutedStreams: ac.service.TrackMuted()})

	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var payload settingsPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		ac.service.SetTrackMuted(payload.TrackMutedStreams)
		writeJSON(w, settingsPayload{TrackMutedStreams: ac.service.TrackMuted()})

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

type watchPayload struct {
	Url string `json:"url"`
}

type watchStatus struct {
	Running bool   `json:"running"`
	Target  string `json:"target,omitempty"`
}

// Watch controls the probe poll loop: GET reports it, POST retargets it,
// DELETE stops it.
func (ac *ApiController) Watch(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:

	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var payload watchPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Url == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		ac.watcher.Watch(payload.Url)

	case http.MethodDelete:
		ac.watcher.Stop()

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, watchStatus{Running: ac.watcher.Running(), Target: ac.watcher.Target()})
}

func readAll(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

func writeJSON(w http.ResponseWriter, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

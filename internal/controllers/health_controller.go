package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"swtd/internal/services"
)

type HealthController struct {
	service   services.TrackerServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Buckets       int     `json:"buckets"`
	Channels      int     `json:"channels"`
	Ticks         int64   `json:"ticks"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatHMS(int64(uptime.Seconds())),
		UptimeSeconds: uptime.Seconds(),
		Buckets:       hc.service.BucketCount(),
		Channels:      len(hc.service.GetChannels()),
		Ticks:         hc.service.TickCount(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func NewHealthController(service services.TrackerServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}

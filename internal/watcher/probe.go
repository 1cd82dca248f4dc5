package watcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"swtd/internal/services"
)

// ChannelInfo is a probe's report on the monitored stream: which channel is
// on screen and whether it is currently playing muted. A probe that cannot
// resolve the channel name reports it as "unknown".
type ChannelInfo struct {
	Channel string `json:"channel"`
	Playing bool   `json:"playing"`
	Muted   bool   `json:"muted"`
}

type ProbeClient interface {
	ChannelInfo(ctx context.Context, url string) (*ChannelInfo, error)
}

type HTTPProbe struct {
	client *http.Client
}

func NewHTTPProbe(timeout time.Duration) *HTTPProbe {
	if timeout <= 0 {
		timeout = 800 * time.Millisecond
	}
	return &HTTPProbe{client: &http.Client{Timeout: timeout}}
}

func (p *HTTPProbe) ChannelInfo(ctx context.Context, url string) (*ChannelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("probe returned status %d", resp.StatusCode)
	}

	var info ChannelInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Channel == "" {
		info.Channel = services.UnknownChannel
	}
	return &info, nil
}

package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swtd/internal/controllers"
	"swtd/internal/providers"
	"swtd/internal/services"
	"swtd/internal/structures"
	"swtd/internal/testutil"
	"swtd/internal/watcher"
)

func TestInitRoutes(t *testing.T) {
	conf := &structures.Config{
		Tracking: structures.TrackingConfig{
			WeekStart:         "sunday",
			DayRetentionDays:  7,
			WeekRetentionDays: 30,
		},
	}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	service := services.NewTrackerService(conf)
	cache := providers.NewCacheProvider(conf, logger)
	watch := watcher.NewWatcher(conf, logger, service, metrics)
	api := controllers.NewApiController(logger, service, cache, metrics, watch)

	router := InitRoutes(api, conf)

	routes := router.GetRoutes()
	require.Len(t, routes, 8)

	urls := make([]string, 0, len(routes))
	for _, route := range routes {
		urls = append(urls, route.Url)
		assert.NotNil(t, route.Handler, route.Url)
	}
	assert.Equal(t, []string{"/tick", "/channels", "/totals", "/export", "/import", "/clear", "/settings", "/watch"}, urls)
}

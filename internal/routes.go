package internal

import (
	"net/http"

	"swtd/internal/controllers"
	"swtd/internal/providers"
	"swtd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/tick", http.HandlerFunc(apiController.ReceiveTick))
	routers.Get("/channels", http.HandlerFunc(apiController.GetChannels))
	routers.Get("/totals", http.HandlerFunc(apiController.GetTotals))
	routers.Get("/export", http.HandlerFunc(apiController.ExportData))
	routers.Post("/import", http.HandlerFunc(apiController.ImportData))
	routers.Post("/clear", http.HandlerFunc(apiController.ClearData))
	routers.Handle("/settings", http.HandlerFunc(apiController.Settings))
	routers.Handle("/watch", http.HandlerFunc(apiController.Watch))
	return routers
}

package handlers

import (
	"github.com/labstack/echo/v4"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/api/handlers/common"
	"github/chapool/sol-explorer/internal/api/handlers/explorer"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetMetricsRoute(s),
		common.GetReadyRoute(s),
		explorer.GetAccountRoute(s),
		explorer.GetOverviewRoute(s),
		explorer.GetTransactionRoute(s),
		explorer.GetTransactionsRoute(s),
	}
}

package explorer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/util"
)

func GetAccountRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Accounts.GET("/:address", getAccountHandler(s))
}

func getAccountHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		address := c.Param("address")
		log := util.LogFromContext(ctx).With().Str("address", address).Logger()

		snapshot, err := s.Accounts.Fetch(ctx, address)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to fetch account")
			if httpErr := accountError(err); httpErr != nil {
				return httpErr
			}
			return err
		}

		return c.JSON(http.StatusOK, toAccountResponse(snapshot))
	}
}

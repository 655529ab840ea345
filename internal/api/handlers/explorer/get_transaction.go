package explorer

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/api/httperrors"
	"github/chapool/sol-explorer/internal/wallet/history"
)

func GetTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transactions.GET("/:signature", getTransactionHandler(s))
}

func getTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		summary, err := s.History.Resolve(ctx, c.Param("signature"))
		if err != nil {
			if errors.Is(err, history.ErrInvalidSignature) {
				return httperrors.ErrBadRequestInvalidSignature.WithDetail(err.Error())
			}
			return err
		}

		return c.JSON(http.StatusOK, toTransactionResponse(summary))
	}
}

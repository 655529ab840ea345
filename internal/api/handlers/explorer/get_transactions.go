package explorer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/api/httperrors"
	"github/chapool/sol-explorer/internal/wallet/keys"
)

func GetTransactionsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Accounts.GET("/:address/transactions", getTransactionsHandler(s))
}

// History never fails: unreachable providers yield an empty list and
// unresolved transactions are reported with status Unknown.
func getTransactionsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		address := c.Param("address")

		if _, err := keys.ParseSolanaAddress(address); err != nil {
			return httperrors.ErrBadRequestInvalidAddress.WithDetail(err.Error())
		}

		summaries := s.History.Fetch(ctx, address)

		return c.JSON(http.StatusOK, &TransactionsResponse{
			Address:      address,
			Transactions: toTransactionResponses(summaries),
		})
	}
}

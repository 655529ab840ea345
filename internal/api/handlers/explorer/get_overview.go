package explorer

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/api/httperrors"
	"github/chapool/sol-explorer/internal/wallet/keys"
	"github/chapool/sol-explorer/internal/wallet/overview"
)

func GetOverviewRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Accounts.GET("/:address/overview", getOverviewHandler(s))
}

// Account info and history are loaded concurrently. A failing account fetch
// does not fail the request, it is reported inline next to the history.
func getOverviewHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		// each request is its own page, superseding only happens within a loader
		view, err := overview.NewLoader(s.Accounts, s.History).Load(ctx, c.Param("address"))
		if err != nil {
			if errors.Is(err, keys.ErrInvalidAddress) {
				return httperrors.ErrBadRequestInvalidAddress.WithDetail(err.Error())
			}
			return err
		}

		res := &OverviewResponse{
			LoadID:       view.LoadID,
			Address:      view.Address,
			Transactions: toTransactionResponses(view.Transactions),
			LoadedAt:     view.LoadedAt.UTC(),
		}
		if view.Snapshot != nil {
			res.Account = toAccountResponse(view.Snapshot)
		}
		if view.SnapshotErr != nil {
			res.AccountError = accountError(view.SnapshotErr)
			if res.AccountError == nil {
				res.AccountError = httperrors.NewHTTPError(http.StatusInternalServerError, httperrors.TypeGeneric, view.SnapshotErr.Error())
			}
		}

		return c.JSON(http.StatusOK, res)
	}
}

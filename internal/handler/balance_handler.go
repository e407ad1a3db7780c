package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eaglebank/ledger-service/internal/apperrors"
	"github.com/eaglebank/ledger-service/internal/middleware"
)

// BalanceQuerier defines the read-side operations used by BalanceHandler.
type BalanceQuerier interface {
	GetBalance(ctx context.Context, accountID string) (float64, error)
}

type BalanceHandler struct {
	queries BalanceQuerier
}

func NewBalanceHandler(queries BalanceQuerier) *BalanceHandler {
	return &BalanceHandler{queries: queries}
}

// GetBalance serves GET /balance?account_id=<id>. The response body is the
// bare numeric balance. An unknown account is a 404, never a zero balance.
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		middleware.RespondWithError(c, http.StatusBadRequest, "account_id is required")
		return
	}

	balance, err := h.queries.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, balance)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wanderlens/backend/internal/application/wallet"
	"github.com/wanderlens/backend/internal/domain/ledger"
)

// WalletHandler handles wallet and transaction endpoints
type WalletHandler struct {
	BaseHandler
	svc *wallet.Service
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(svc *wallet.Service) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// RegisterRoutes registers wallet routes
func (h *WalletHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/wallet")
	{
		group.GET("", h.Summary)
		group.POST("/redeem", h.Redeem)
	}
}

// RedeemRequest carries a redemption amount in whole wallet units
type RedeemRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=500"`
}

// Summary returns the caller's balance and a page of their transactions
func (h *WalletHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := ledger.Filter{}
	if raw := c.Query("type"); raw != "" {
		txType := ledger.TransactionType(raw)
		if !txType.IsValid() {
			h.BadRequest(c, "Query parameter 'type' must be reward, refund, or redemption")
			return
		}
		filter.Type = &txType
	}
	if raw := c.Query("status"); raw != "" {
		txStatus := ledger.TransactionStatus(raw)
		if !txStatus.IsValid() {
			h.BadRequest(c, "Query parameter 'status' must be pending, completed, or failed")
			return
		}
		filter.Status = &txStatus
	}
	filter.Page, filter.PageSize = parsePagination(c)

	summary, err := h.svc.GetSummary(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Redeem debits the caller's wallet and records a redemption transaction
func (h *WalletHandler) Redeem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.svc.Redeem(c.Request.Context(), userID, decimal.NewFromFloat(req.Amount), req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tx)
}

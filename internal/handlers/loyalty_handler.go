package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/loyalty"
)

type LoyaltyHandler struct {
	ledger *loyalty.Ledger
}

func NewLoyaltyHandler(ledger *loyalty.Ledger) *LoyaltyHandler {
	return &LoyaltyHandler{ledger: ledger}
}

// ======================================================
// REQUESTS
// ======================================================

type JoinRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

type RedeemRequest struct {
	CustomerID uint `json:"customer_id" binding:"required"`
	RewardID   uint `json:"reward_id" binding:"required"`
}

type PointsRequest struct {
	CustomerID  uint   `json:"customer_id" binding:"required"`
	Points      int    `json:"points" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	ReferenceID *uint  `json:"reference_id"`
}

type CreateRewardRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	PointsCost  int             `json:"points_cost" binding:"required"`
	RewardType  string          `json:"reward_type"`
	RewardValue decimal.Decimal `json:"reward_value"`
	MinTier     string          `json:"min_tier"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *LoyaltyHandler) Lookup(c *gin.Context) {
	customer, err := h.ledger.LookupByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, customer)
}

func (h *LoyaltyHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name and phone are required.")
		return
	}

	customer, err := h.ledger.Join(c.Request.Context(), loyalty.JoinInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *LoyaltyHandler) Transactions(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	txs, err := h.ledger.History(c.Request.Context(), id, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, txs)
}

func (h *LoyaltyHandler) Redemptions(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	reds, err := h.ledger.Redemptions(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, reds)
}

func (h *LoyaltyHandler) Rewards(c *gin.Context) {
	rewards, err := h.ledger.Rewards(c.Request.Context(), true)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rewards)
}

func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "customer_id and reward_id are required.")
		return
	}

	res, err := h.ledger.Redeem(c.Request.Context(), req.CustomerID, req.RewardID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ======================================================
// ADMIN
// ======================================================

func (h *LoyaltyHandler) Customers(c *gin.Context) {
	customers, err := h.ledger.Customers(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, customers)
}

func (h *LoyaltyHandler) AddPoints(c *gin.Context) {
	var req PointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "customer_id, points, type and reason are required.")
		return
	}

	customer, err := h.ledger.Append(c.Request.Context(), loyalty.EntryInput{
		CustomerID:  req.CustomerID,
		Points:      req.Points,
		Type:        req.Type,
		Reason:      req.Reason,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, customer)
}

func (h *LoyaltyHandler) Rebuild(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	customer, err := h.ledger.Rebuild(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, customer)
}

func (h *LoyaltyHandler) CreateReward(c *gin.Context) {
	var req CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name and points_cost are required.")
		return
	}

	reward, err := h.ledger.CreateReward(c.Request.Context(), loyalty.RewardInput{
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		RewardType:  req.RewardType,
		RewardValue: req.RewardValue,
		MinTier:     req.MinTier,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, reward)
}

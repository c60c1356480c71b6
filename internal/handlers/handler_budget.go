package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
	"github.com/civicdsi/budget_engagement_app/internal/utils/budgeting"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests for the authorization / credit / line
// hierarchy.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers routes for the budget structure.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	authorizations := rg.Group("/authorizations")
	{
		authorizations.POST("", h.createAuthorization)
		authorizations.GET("", h.listAuthorizations)
		authorizations.GET("/:id", h.getAuthorization)
		authorizations.POST("/:id/credits", h.createAnnualCredit)
	}

	credits := rg.Group("/credits")
	{
		credits.GET("/:id", h.getAnnualCredit)
		credits.POST("/:id/vote", h.voteAnnualCredit)
		credits.POST("/:id/lines", h.createBudgetLine)
		credits.GET("/:id/lines", h.listBudgetLines)
	}

	lines := rg.Group("/lines")
	{
		lines.GET("/:id", h.getBudgetLine)
		lines.POST("/:id/vote", h.voteBudgetLine)
		lines.POST("/:id/freeze", h.freezeBudgetLine)
		lines.POST("/:id/close", h.closeBudgetLine)
	}
}

func (h *budgetHandler) createAuthorization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAuthorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAuthorization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	authorization, err := h.budgetService.CreateAuthorization(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create authorization")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAuthorizationResponse(authorization))
}

func (h *budgetHandler) getAuthorization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authorizationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	authorization, err := h.budgetService.GetAuthorization(c.Request.Context(), authorizationID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve authorization")
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthorizationResponse(authorization))
}

func (h *budgetHandler) listAuthorizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAuthorizationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	authorizations, err := h.budgetService.ListAuthorizations(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list authorizations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"authorizations": dto.ToListAuthorizationResponse(authorizations)})
}

func (h *budgetHandler) createAnnualCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authorizationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateAnnualCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAnnualCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	credit, err := h.budgetService.CreateAnnualCredit(c.Request.Context(), authorizationID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create annual credit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAnnualCreditResponse(credit))
}

func (h *budgetHandler) getAnnualCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creditID, ok := pathID(c, "id")
	if !ok {
		return
	}

	credit, err := h.budgetService.GetAnnualCredit(c.Request.Context(), creditID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve annual credit")
		return
	}

	c.JSON(http.StatusOK, dto.ToAnnualCreditResponse(credit))
}

func (h *budgetHandler) voteAnnualCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creditID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.VoteAnnualCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VoteAnnualCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	credit, err := h.budgetService.VoteAnnualCredit(c.Request.Context(), creditID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to vote annual credit")
		return
	}

	c.JSON(http.StatusOK, dto.ToAnnualCreditResponse(credit))
}

func (h *budgetHandler) createBudgetLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creditID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateBudgetLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudgetLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	line, err := h.budgetService.CreateBudgetLine(c.Request.Context(), creditID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create budget line")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetLineResponse(line, budgeting.EngagementRate(line.VotedAmount, line.EngagedAmount)))
}

func (h *budgetHandler) getBudgetLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	budgetLineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	line, err := h.budgetService.GetBudgetLine(c.Request.Context(), budgetLineID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve budget line")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetLineResponse(line, budgeting.EngagementRate(line.VotedAmount, line.EngagedAmount)))
}

func (h *budgetHandler) listBudgetLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creditID, ok := pathID(c, "id")
	if !ok {
		return
	}

	lines, err := h.budgetService.ListBudgetLines(c.Request.Context(), creditID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list budget lines")
		return
	}

	responses := make([]dto.BudgetLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = dto.ToBudgetLineResponse(&line, budgeting.EngagementRate(line.VotedAmount, line.EngagedAmount))
	}
	c.JSON(http.StatusOK, gin.H{"lines": responses})
}

func (h *budgetHandler) voteBudgetLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	budgetLineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.VoteBudgetLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VoteBudgetLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	line, err := h.budgetService.VoteBudgetLine(c.Request.Context(), budgetLineID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to vote budget line")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetLineResponse(line, budgeting.EngagementRate(line.VotedAmount, line.EngagedAmount)))
}

func (h *budgetHandler) freezeBudgetLine(c *gin.Context) {
	h.transitionBudgetLine(c, h.budgetService.FreezeBudgetLine, "Failed to freeze budget line")
}

func (h *budgetHandler) closeBudgetLine(c *gin.Context) {
	h.transitionBudgetLine(c, h.budgetService.CloseBudgetLine, "Failed to close budget line")
}

func (h *budgetHandler) transitionBudgetLine(c *gin.Context, op func(context.Context, int64) (*domain.BudgetLine, error), fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	budgetLineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	line, err := op(c.Request.Context(), budgetLineID)
	if err != nil {
		respondServiceError(c, logger, err, fallback)
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetLineResponse(line, budgeting.EngagementRate(line.VotedAmount, line.EngagedAmount)))
}

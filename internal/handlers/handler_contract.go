package handlers

import (
	"log/slog"
	"net/http"

	"github.com/civicdsi/budget_engagement_app/internal/core/domain"
	portsrepo "github.com/civicdsi/budget_engagement_app/internal/core/ports/repositories"
	portssvc "github.com/civicdsi/budget_engagement_app/internal/core/ports/services"
	"github.com/civicdsi/budget_engagement_app/internal/dto"
	"github.com/civicdsi/budget_engagement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// contractHandler handles HTTP requests for the contract lifecycle.
type contractHandler struct {
	contractService portssvc.ContractSvcFacade
}

func newContractHandler(cs portssvc.ContractSvcFacade) *contractHandler {
	return &contractHandler{contractService: cs}
}

// registerContractRoutes registers routes for contracts.
func registerContractRoutes(rg *gin.RouterGroup, contractService portssvc.ContractSvcFacade) {
	h := newContractHandler(contractService)

	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.createContract)
		contracts.GET("", h.listContracts)
		contracts.GET("/:id", h.getContract)
		contracts.POST("/:id/activate", h.activateContract)
		contracts.POST("/:id/renew", h.renewContract)
		contracts.POST("/:id/terminate", h.terminateContract)
	}
}

func (h *contractHandler) createContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateContract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create contract")
		return
	}

	logger.Info("Contract created", slog.Int64("contract_id", contract.ContractID), slog.String("number", contract.Number))
	c.JSON(http.StatusCreated, dto.ToContractResponse(contract))
}

func (h *contractHandler) getContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}

	contract, err := h.contractService.GetContract(c.Request.Context(), contractID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve contract")
		return
	}

	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}

func (h *contractHandler) listContracts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListContractsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	contracts, err := h.contractService.ListContracts(c.Request.Context(), portsrepo.ListContractsFilter{
		Status:     domain.ContractStatus(params.Status),
		SupplierID: params.SupplierID,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list contracts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"contracts": dto.ToListContractResponse(contracts)})
}

func (h *contractHandler) activateContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}

	contract, err := h.contractService.ActivateContract(c.Request.Context(), contractID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to activate contract")
		return
	}

	logger.Info("Contract activated", slog.Int64("contract_id", contractID))
	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}

func (h *contractHandler) renewContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RenewContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RenewContract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	contract, err := h.contractService.RenewContract(c.Request.Context(), contractID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to renew contract")
		return
	}

	logger.Info("Contract renewed",
		slog.Int64("contract_id", contractID),
		slog.Int("renewal_count", contract.RenewalCount))
	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}

func (h *contractHandler) terminateContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}

	contract, err := h.contractService.TerminateContract(c.Request.Context(), contractID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to terminate contract")
		return
	}

	logger.Info("Contract terminated", slog.Int64("contract_id", contractID))
	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"homeserve.backend/internal/domain/entities"
	domainerrors "homeserve.backend/internal/domain/errors"
	"homeserve.backend/internal/interfaces/http/middleware"
	"homeserve.backend/internal/interfaces/http/response"
	"homeserve.backend/internal/usecases"
)

// AdminHandler handles administrative provider management endpoints
type AdminHandler struct {
	verificationUsecase *usecases.VerificationUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(verificationUsecase *usecases.VerificationUsecase) *AdminHandler {
	return &AdminHandler{verificationUsecase: verificationUsecase}
}

// ListProviders lists providers, optionally filtered by verification status
// GET /api/v1/admin/providers?status=pending
func (h *AdminHandler) ListProviders(c *gin.Context) {
	providers, err := h.verificationUsecase.ListProviders(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"providers": providers,
		"count":     len(providers),
	})
}

// ListPendingProviders lists providers awaiting review
// GET /api/v1/admin/providers/pending
func (h *AdminHandler) ListPendingProviders(c *gin.Context) {
	providers, err := h.verificationUsecase.ListProviders(c.Request.Context(), string(entities.VerificationStatusPending))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"providers": providers,
		"count":     len(providers),
	})
}

// GetProviderDocuments returns one provider's verification view
// GET /api/v1/admin/providers/:id/documents
func (h *AdminHandler) GetProviderDocuments(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid provider id"))
		return
	}

	status, err := h.verificationUsecase.GetProviderStatus(c.Request.Context(), providerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// VerifyProvider applies an approve/reject decision
// POST /api/v1/admin/providers/verify
func (h *AdminHandler) VerifyProvider(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var input entities.ReviewProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	status, err := h.verificationUsecase.Review(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// SetProviderStatus enables or disables a provider account
// PUT /api/v1/admin/providers/:id/status
func (h *AdminHandler) SetProviderStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid provider id"))
		return
	}

	var input entities.ProviderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	provider, err := h.verificationUsecase.SetProviderActive(c.Request.Context(), actor, providerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":  "Provider status updated",
		"provider": provider,
	})
}

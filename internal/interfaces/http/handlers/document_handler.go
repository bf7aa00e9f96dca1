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

// DocumentHandler handles provider verification document endpoints
type DocumentHandler struct {
	verificationUsecase *usecases.VerificationUsecase
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(verificationUsecase *usecases.VerificationUsecase) *DocumentHandler {
	return &DocumentHandler{verificationUsecase: verificationUsecase}
}

// Upload handles a verification document upload
// POST /api/v1/documents/upload/:docType
func (h *DocumentHandler) Upload(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	docType := entities.DocumentType(c.Param("docType"))
	if !docType.Valid() {
		response.Error(c, domainerrors.BadRequest("Unknown document type"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("A file is required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Unable to read uploaded file"))
		return
	}
	defer f.Close()

	record, err := h.verificationUsecase.AddDocument(c.Request.Context(), actor, docType, usecases.FileUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Content:  f,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Document uploaded successfully",
		"file":    record,
	})
}

// Delete removes a previously uploaded document file
// DELETE /api/v1/documents/:docType/:fileId
func (h *DocumentHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	docType := entities.DocumentType(c.Param("docType"))
	if !docType.Valid() {
		response.Error(c, domainerrors.BadRequest("Unknown document type"))
		return
	}

	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid file id"))
		return
	}

	if err := h.verificationUsecase.DeleteDocument(c.Request.Context(), actor, docType, fileID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Document deleted successfully",
	})
}

// Submit sends the uploaded documents for review
// POST /api/v1/documents/submit
func (h *DocumentHandler) Submit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	status, err := h.verificationUsecase.SubmitForReview(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// Resubmit sends documents for review again after a rejection
// POST /api/v1/documents/resubmit
func (h *DocumentHandler) Resubmit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	status, err := h.verificationUsecase.Resubmit(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// Status returns the provider's own verification view
// GET /api/v1/documents/status
func (h *DocumentHandler) Status(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	status, err := h.verificationUsecase.GetStatus(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

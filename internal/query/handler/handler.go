// Package handler provides HTTP handlers for query endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditModel "github.com/festy23/evidence_bot/internal/audit/model"
	"github.com/festy23/evidence_bot/internal/llm"
	queryModel "github.com/festy23/evidence_bot/internal/query/model"
	"github.com/festy23/evidence_bot/internal/query/service"
)

// ReportFilename is the attachment name of POST /report responses.
const ReportFilename = "evidence_report.pdf"

// Handler handles HTTP requests for query endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new query handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Query handles POST /query request.
// @Summary Answer a question about the repository
// @Tags Query
// @Accept json
// @Produce json
// @Param request body queryModel.QueryRequest true "Request"
// @Success 200 {object} queryModel.QueryResponse
// @Failure 400 {object} ErrorResponse "Bad request (INVALID_REQUEST)"
// @Failure 502 {object} ErrorResponse "Upstream failure"
// @Failure 503 {object} ErrorResponse "Model not configured"
// @Router /query [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Query(c *gin.Context) {
	var req queryModel.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Query(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "error answering query", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Audit handles GET /audit request.
// @Summary Get the four pull request audit reports
// @Tags Query
// @Produce json
// @Success 200 {object} auditModel.AuditReport
// @Failure 502 {object} ErrorResponse "Upstream failure"
// @Router /audit [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Audit(c *gin.Context) {
	resp, err := h.service.Audit(c.Request.Context())
	if err != nil {
		h.handleError(c, "error building audit", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Report handles POST /report request.
// @Summary Answer a question and download the answer as a PDF report
// @Tags Query
// @Accept json
// @Produce application/pdf
// @Param request body queryModel.QueryRequest true "Request"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Bad request (INVALID_REQUEST)"
// @Failure 502 {object} ErrorResponse "Upstream failure"
// @Router /report [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Report(c *gin.Context) {
	var req queryModel.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	pdf, err := h.service.Report(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "error rendering report", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ReportFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExtractIntent handles POST /intent request.
// @Summary Classify the intent of a query
// @Tags Query
// @Accept json
// @Produce json
// @Param request body queryModel.QueryRequest true "Request"
// @Success 200 {object} queryModel.IntentResponse
// @Failure 400 {object} ErrorResponse "Bad request (INVALID_REQUEST)"
// @Router /intent [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ExtractIntent(c *gin.Context) {
	var req queryModel.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ExtractIntent(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "error extracting intent", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleError(c *gin.Context, msg string, err error) {
	var malformed *auditModel.MalformedRecordError

	switch {
	case errors.Is(err, queryModel.ErrEmptyQuery):
		errorResponse(c, "INVALID_REQUEST", "query is required", http.StatusBadRequest)
	case errors.As(err, &malformed):
		h.logger.Errorw(msg, "error", err, "pr_number", malformed.PRNumber, "field", malformed.Field)
		errorResponse(c, "MALFORMED_UPSTREAM_DATA", malformed.Error(), http.StatusBadGateway)
	case errors.Is(err, queryModel.ErrUpstream):
		h.logger.Errorw(msg, "error", err)
		errorResponse(c, "UPSTREAM_ERROR", "hosting API request failed", http.StatusBadGateway)
	case errors.Is(err, llm.ErrMissingAPIKey):
		h.logger.Errorw(msg, "error", err)
		errorResponse(c, "LLM_NOT_CONFIGURED", "LLM API key is not configured", http.StatusServiceUnavailable)
	case errors.Is(err, queryModel.ErrCompletion):
		h.logger.Errorw(msg, "error", err)
		errorResponse(c, "LLM_ERROR", "model completion failed", http.StatusBadGateway)
	default:
		h.logger.Errorw(msg, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

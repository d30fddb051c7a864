package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SamSnead85/ProjectApexHealth-sub002/middleware"
	"github.com/SamSnead85/ProjectApexHealth-sub002/model"
	"github.com/SamSnead85/ProjectApexHealth-sub002/pkg/logger"
	"github.com/SamSnead85/ProjectApexHealth-sub002/pkg/sla"
	"github.com/SamSnead85/ProjectApexHealth-sub002/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PriorAuthHandler struct {
	store *service.AuthStore
	vault *service.DocumentVault // nil when no object storage is configured
}

func NewPriorAuthHandler(store *service.AuthStore, vault *service.DocumentVault) *PriorAuthHandler {
	return &PriorAuthHandler{
		store: store,
		vault: vault,
	}
}

// requestView renders a request for the portal, attaching the remaining-time
// descriptor and SLA progress once the request has been submitted
func requestView(req *model.PriorAuth, now time.Time) gin.H {
	view := gin.H{
		"id":                   req.ID,
		"memberId":             req.MemberID,
		"memberName":           req.MemberName,
		"providerId":           req.ProviderID,
		"providerName":         req.ProviderName,
		"procedureCode":        req.ProcedureCode,
		"procedureDescription": req.ProcedureDescription,
		"diagnosisCodes":       req.DiagnosisCodes,
		"urgency":              req.Urgency,
		"status":               req.Status,
		"clinicalNotes":        req.ClinicalNotes,
		"documentsRequired":    req.DocumentsRequired,
		"documentsReceived":    req.DocumentsReceived,
		"missingDocuments":     req.MissingDocuments(),
	}

	if !req.SubmittedDate.IsZero() {
		remaining := sla.Remaining(req.DeadlineDate, now)
		view["submittedDate"] = req.SubmittedDate.Format(time.RFC3339)
		view["deadlineDate"] = req.DeadlineDate.Format(time.RFC3339)
		view["timeRemaining"] = gin.H{
			"overdue":  remaining.Overdue,
			"days":     remaining.Days,
			"hours":    remaining.Hours,
			"critical": remaining.Critical,
			"label":    remaining.String(),
		}
		view["slaProgress"] = sla.ProgressFraction(req.SubmittedDate, req.DeadlineDate, now)
	}
	if req.ReviewerNotes != "" {
		view["reviewerNotes"] = req.ReviewerNotes
	}
	if !req.DecidedAt.IsZero() {
		view["decidedAt"] = req.DecidedAt.Format(time.RFC3339)
	}

	return view
}

// List returns requests matching the optional status filter
func (h *PriorAuthHandler) List(c *gin.Context) {
	filter := c.DefaultQuery("status", service.StatusFilterAll)
	requests := h.store.List(filter)

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		if limit < len(requests) {
			requests = requests[:limit]
		}
	}

	now := time.Now()
	result := make([]gin.H, len(requests))
	for i, req := range requests {
		result[i] = requestView(req, now)
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// Get returns a single request
func (h *PriorAuthHandler) Get(c *gin.Context) {
	req := h.store.Get(c.Param("id"))
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	c.JSON(http.StatusOK, requestView(req, time.Now()))
}

type CreateRequest struct {
	MemberID             string   `json:"memberId" binding:"required"`
	MemberName           string   `json:"memberName" binding:"required"`
	ProviderID           string   `json:"providerId" binding:"required"`
	ProviderName         string   `json:"providerName" binding:"required"`
	ProcedureCode        string   `json:"procedureCode" binding:"required"`
	ProcedureDescription string   `json:"procedureDescription"`
	DiagnosisCodes       []string `json:"diagnosisCodes"`
	Urgency              string   `json:"urgency"`
	ClinicalNotes        string   `json:"clinicalNotes"`
	DocumentsRequired    []string `json:"documentsRequired"`
}

// Create registers a new draft request. The deadline is not computed here;
// it is stamped when the draft is submitted.
func (h *PriorAuthHandler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	urgency := model.Urgency(body.Urgency)
	if body.Urgency == "" {
		urgency = model.UrgencyStandard
	}
	if !urgency.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown urgency level"})
		return
	}

	now := time.Now()
	req := &model.PriorAuth{
		ID:                   newRequestID(now),
		MemberID:             body.MemberID,
		MemberName:           body.MemberName,
		ProviderID:           body.ProviderID,
		ProviderName:         body.ProviderName,
		ProcedureCode:        body.ProcedureCode,
		ProcedureDescription: body.ProcedureDescription,
		DiagnosisCodes:       body.DiagnosisCodes,
		Urgency:              urgency,
		Status:               model.StatusDraft,
		ClinicalNotes:        body.ClinicalNotes,
		DocumentsRequired:    body.DocumentsRequired,
	}
	h.store.Add(req)

	logger.Info(c.Request.Context(), "prior authorization draft created",
		"id", req.ID,
		"urgency", req.Urgency,
		"procedure_code", req.ProcedureCode,
	)

	c.JSON(http.StatusCreated, requestView(req, now))
}

func newRequestID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("PA-%d-%s", now.Year(), suffix)
}

type DecisionRequest struct {
	Notes string `json:"notes"`
}

// Submit moves a draft into the tracked system and starts its SLA clock
func (h *PriorAuthHandler) Submit(c *gin.Context) {
	h.applyTransition(c, model.StatusSubmitted, "")
}

// Claim assigns a submitted request to review
func (h *PriorAuthHandler) Claim(c *gin.Context) {
	h.applyTransition(c, model.StatusUnderReview, "")
}

// RequestInfo flags a request as blocked on missing documentation
func (h *PriorAuthHandler) RequestInfo(c *gin.Context) {
	h.applyTransition(c, model.StatusPendingInfo, "")
}

// Resume moves a pending_info request back under review. This is the
// explicit reviewer action the lifecycle requires; documentation becoming
// complete never resumes review on its own.
func (h *PriorAuthHandler) Resume(c *gin.Context) {
	h.applyTransition(c, model.StatusUnderReview, "")
}

// Approve records a terminal approval with optional reviewer notes
func (h *PriorAuthHandler) Approve(c *gin.Context) {
	h.decide(c, model.StatusApproved)
}

// Deny records a terminal denial with optional reviewer notes
func (h *PriorAuthHandler) Deny(c *gin.Context) {
	h.decide(c, model.StatusDenied)
}

func (h *PriorAuthHandler) decide(c *gin.Context, to model.Status) {
	var body DecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}
	h.applyTransition(c, to, body.Notes)
}

func (h *PriorAuthHandler) applyTransition(c *gin.Context, to model.Status, notes string) {
	id := c.Param("id")

	updated, err := h.store.ApplyTransition(id, to, notes)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	logger.Info(c.Request.Context(), "prior authorization transition applied",
		"id", id,
		"status", updated.Status,
		"actor", middleware.GetUsername(c),
	)

	c.JSON(http.StatusOK, requestView(updated, time.Now()))
}

// writeStoreError maps store and state-machine errors onto HTTP statuses so
// the portal can render inline feedback
func (h *PriorAuthHandler) writeStoreError(c *gin.Context, err error) {
	var invalid *service.InvalidTransitionError

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
	case errors.As(err, &invalid):
		c.JSON(http.StatusConflict, gin.H{
			"error": invalid.Error(),
			"from":  invalid.From,
			"to":    invalid.To,
		})
	case errors.Is(err, service.ErrDocumentsIncomplete),
		errors.Is(err, service.ErrDocumentsComplete),
		errors.Is(err, service.ErrTerminalRequest):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownDocumentType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// UploadDocument stores a supporting document in the vault and marks the
// matching document type as received
func (h *PriorAuthHandler) UploadDocument(c *gin.Context) {
	if h.vault == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Document storage is not configured"})
		return
	}

	id := c.Param("id")
	if h.store.Get(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	docType := c.PostForm("document_type")
	if docType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_type is required"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := h.vault.ObjectName(id, docType, header.Filename)
	if err := h.vault.Store(c.Request.Context(), objectName, file, header.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store document: " + err.Error()})
		return
	}

	updated, err := h.store.MarkDocumentReceived(id, docType)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	url, err := h.vault.PresignedURL(c.Request.Context(), objectName)
	if err != nil {
		// The document is stored and recorded; the download link is a nicety
		logger.Warn(c.Request.Context(), "failed to generate document URL", "object", objectName, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"request":      requestView(updated, time.Now()),
		"documentType": docType,
		"filename":     header.Filename,
		"url":          url,
	})
}

// Metrics summarizes the authorization workload for the portal dashboard
func (h *PriorAuthHandler) Metrics(c *gin.Context) {
	requests := h.store.List(service.StatusFilterAll)

	var pending, urgentActive, approved, denied int
	var turnaround time.Duration
	var decided int

	for _, req := range requests {
		switch req.Status {
		case model.StatusSubmitted, model.StatusPendingInfo, model.StatusUnderReview:
			pending++
			if req.Urgency == model.UrgencyUrgent || req.Urgency == model.UrgencyEmergent {
				urgentActive++
			}
		case model.StatusApproved:
			approved++
		case model.StatusDenied:
			denied++
		}

		if !req.DecidedAt.IsZero() && !req.SubmittedDate.IsZero() {
			turnaround += req.DecidedAt.Sub(req.SubmittedDate)
			decided++
		}
	}

	var approvalRate, avgTurnaroundDays float64
	if approved+denied > 0 {
		approvalRate = float64(approved) / float64(approved+denied) * 100
	}
	if decided > 0 {
		avgTurnaroundDays = (turnaround / time.Duration(decided)).Hours() / 24
	}

	c.JSON(http.StatusOK, gin.H{
		"pendingRequests":   pending,
		"urgentActive":      urgentActive,
		"approvalRate":      approvalRate,
		"avgTurnaroundDays": avgTurnaroundDays,
		"total":             len(requests),
	})
}

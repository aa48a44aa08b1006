package handlers

import (
	"errors"
	"net/http"

	"washbook/middleware"
	"washbook/models"
	"washbook/services/booking"
	"washbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes booking sessions over HTTP.
type BookingHandler struct {
	Service booking.BookingSessionService
}

func NewBookingHandler(svc booking.BookingSessionService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type openSessionRequest struct {
	VendorID  string `json:"vendorId" binding:"required"`
	ServiceID string `json:"serviceId" binding:"required"`
}

type resumeRequest struct {
	ResumeToken string `json:"resumeToken" binding:"required"`
}

// ConflictResponse tells the client to log in and resume the booking.
type ConflictResponse struct {
	Message     string `json:"message"`
	Code        string `json:"code"`
	Action      string `json:"action"`
	Email       string `json:"email"`
	ResumeToken string `json:"resumeToken"`
}

type submitResponse struct {
	Message     string              `json:"message"`
	Appointment *models.Appointment `json:"appointment"`
	Session     *booking.View       `json:"session"`
	ExitAfterMs int64               `json:"exitAfterMs"`
}

// OpenSession handles POST /api/booking/sessions.
func (h *BookingHandler) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_request", "Invalid request", err.Error())
		return
	}
	view, err := h.Service.OpenSession(c.Request.Context(), middleware.UserID(c), req.VendorID, req.ServiceID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSession handles GET /api/booking/sessions/:id.
func (h *BookingHandler) GetSession(c *gin.Context) {
	view, err := h.Service.GetSession(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateSession handles PATCH /api/booking/sessions/:id.
func (h *BookingHandler) UpdateSession(c *gin.Context) {
	var upd booking.SessionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_request", "Invalid request", err.Error())
		return
	}
	view, err := h.Service.UpdateSession(c.Request.Context(), middleware.UserID(c), c.Param("id"), upd)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Next handles POST /api/booking/sessions/:id/next.
func (h *BookingHandler) Next(c *gin.Context) {
	view, err := h.Service.Next(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Back handles POST /api/booking/sessions/:id/back.
func (h *BookingHandler) Back(c *gin.Context) {
	view, err := h.Service.Back(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit handles POST /api/booking/sessions/:id/submit.
func (h *BookingHandler) Submit(c *gin.Context) {
	conf, err := h.Service.Submit(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submitResponse{
		Message:     conf.Message,
		Appointment: conf.Appointment,
		Session:     conf.View,
		ExitAfterMs: conf.ExitAfter.Milliseconds(),
	})
}

// CloseSession handles DELETE /api/booking/sessions/:id.
func (h *BookingHandler) CloseSession(c *gin.Context) {
	if err := h.Service.CloseSession(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeBookingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Resume handles POST /api/booking/resume.
func (h *BookingHandler) Resume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_request", "Invalid request", err.Error())
		return
	}
	view, err := h.Service.Resume(c.Request.Context(), middleware.UserID(c), req.ResumeToken)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// writeBookingError maps booking errors to status codes. The message is
// always the customer-facing Finnish text.
func writeBookingError(c *gin.Context, err error) {
	msg := booking.Message(err)

	var conflict *booking.ConflictError
	switch {
	case errors.As(err, &conflict):
		getLogger(c).Info("Signup conflict", zap.String("path", c.FullPath()))
		c.JSON(http.StatusConflict, ConflictResponse{
			Message:     msg,
			Code:        "email_in_use",
			Action:      "login",
			Email:       conflict.Email,
			ResumeToken: conflict.ResumeToken,
		})
	case errors.Is(err, booking.ErrSessionNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "session_not_found", msg, "")
	case errors.Is(err, booking.ErrVendorNotFound), errors.Is(err, booking.ErrServiceNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "not_found", msg, "")
	case errors.Is(err, booking.ErrSubmissionPending):
		utils.JSONErrorCode(c, http.StatusConflict, "submission_pending", msg, "")
	case errors.Is(err, booking.ErrAlreadySubmitted):
		utils.JSONErrorCode(c, http.StatusConflict, "already_submitted", msg, "")
	case booking.IsValidation(err):
		utils.JSONErrorCode(c, http.StatusUnprocessableEntity, "validation", msg, err.Error())
	default:
		getLogger(c).Error("Booking request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONErrorCode(c, http.StatusInternalServerError, "booking_failed", msg, "")
	}
}

package http_api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/argab/lottery/internal/models"
)

// LoginForm is the body of the admin login form.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// ValidateTransactionRequest represents the JSON body for transaction validation
type ValidateTransactionRequest struct {
	TransactionID string `json:"transaction_id"`
	PaymentMethod string `json:"payment_method"`
}

func (s *HTTPServer) adminLoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", s.page(c, nil))
}

func (s *HTTPServer) adminLogin(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		s.logger.Debugw("Invalid admin login form", "error", err)
	}

	token, err := s.gate.Login(form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, models.ErrUnauthorized) {
			s.logger.Errorw("Admin login failed", "error", err)
		}
		s.logger.Infow("Rejected admin login", "username", form.Username, "ip", c.ClientIP())
		c.HTML(http.StatusUnauthorized, "admin_login.html", s.page(c, gin.H{
			"Flash": resolveFlash(flashBadCredentials, ""),
		}))
		return
	}

	s.setSessionCookie(c, token, int(s.sessionTTL.Seconds()))
	s.logger.Infow("Admin logged in", "username", form.Username)
	c.Redirect(http.StatusFound, flashURL("/admin", flashWelcome))
}

func (s *HTTPServer) adminLogout(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, flashURL("/admin-login", flashLoggedOut))
}

// adminPanel lists every application, most recent first.
func (s *HTTPServer) adminPanel(c *gin.Context) {
	apps, err := s.lottery.ListApplications(c.Request.Context())
	if err != nil {
		s.logger.Errorw("Failed to list applications", "error", err)
		c.String(http.StatusInternalServerError, "failed to list applications")
		return
	}
	c.HTML(http.StatusOK, "admin_panel.html", s.page(c, gin.H{"Applications": apps}))
}

func (s *HTTPServer) verifyPayment(c *gin.Context) {
	s.changeStatus(c, s.lottery.VerifyPayment, flashVerified)
}

func (s *HTTPServer) markPaid(c *gin.Context) {
	s.changeStatus(c, s.lottery.MarkPaid, flashPaid)
}

type statusChange func(ctx context.Context, id int64) (*models.Application, error)

// changeStatus applies an admin status change and returns to the panel with the outcome.
func (s *HTTPServer) changeStatus(c *gin.Context, change statusChange, successFlash string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.notFound(c)
		return
	}

	_, err = change(c.Request.Context(), id)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, flashURL("/admin", successFlash, id))
	case errors.Is(err, models.ErrNotFound):
		c.Redirect(http.StatusFound, flashURL("/admin", flashNotFound, id))
	case errors.Is(err, models.ErrIllegalTransition):
		c.Redirect(http.StatusFound, flashURL("/admin", flashIllegalTransition, id))
	default:
		c.Redirect(http.StatusFound, flashURL("/admin", flashActionFailed, id))
	}
}

// validateTransaction is a handler for the /validate-transaction endpoint.
func (s *HTTPServer) validateTransaction(c *gin.Context) {
	var req ValidateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debugw("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"valid":       false,
			"message":     "Invalid request body: " + err.Error(),
			"suggestions": []string{},
		})
		return
	}

	result := s.lottery.ValidateTransaction(c.Request.Context(), req.TransactionID, models.PaymentMethod(req.PaymentMethod))
	c.JSON(http.StatusOK, result)
}

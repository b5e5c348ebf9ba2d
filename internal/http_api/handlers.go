package http_api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/argab/lottery/internal/models"
	"github.com/argab/lottery/internal/receipt"
)

// ApplyForm is the body of the ticket application form.
type ApplyForm struct {
	FullName      string `form:"full_name"`
	Phone         string `form:"phone"`
	Draw          int    `form:"draw"`
	PaymentMethod string `form:"payment_method"`
	TransactionID string `form:"transaction_id"`
}

// drawOption is one entry of the draw select box.
type drawOption struct {
	ID   int
	Name string
}

// page returns the data every template expects, merged with extra.
func (s *HTTPServer) page(c *gin.Context, extra gin.H) gin.H {
	data := gin.H{
		"Organization":  s.issuer.Organization,
		"TelebirrOwner": s.issuer.TelebirrOwner,
		"TicketPrice":   models.TicketPrice,
		"Year":          time.Now().UTC().Year(),
		"Flash":         flashFromQuery(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (s *HTTPServer) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.page(c, nil))
}

// applyForm renders the application form with the draws still available.
func (s *HTTPServer) applyForm(c *gin.Context) {
	draws, err := s.lottery.AvailableDraws(c.Request.Context())
	if err != nil {
		s.logger.Errorw("Failed to get available draws", "error", err)
		c.HTML(http.StatusInternalServerError, "apply.html", s.page(c, gin.H{
			"Flash": resolveFlash(flashApplyFailed, ""),
		}))
		return
	}

	options := make([]drawOption, 0, len(draws))
	for _, d := range draws {
		options = append(options, drawOption{ID: d, Name: fmt.Sprintf("ዕጣ ቁጥር %d", d)})
	}
	c.HTML(http.StatusOK, "apply.html", s.page(c, gin.H{"Draws": options}))
}

// apply is a handler for the application form submission.
func (s *HTTPServer) apply(c *gin.Context) {
	var form ApplyForm
	if err := c.ShouldBind(&form); err != nil {
		s.logger.Debugw("Invalid application form", "error", err)
		c.Redirect(http.StatusFound, flashURL("/apply", flashInvalidInput))
		return
	}

	app, err := s.lottery.Apply(c.Request.Context(), models.ApplyRequest{
		FullName:      form.FullName,
		Phone:         form.Phone,
		Draw:          form.Draw,
		PaymentMethod: models.PaymentMethod(form.PaymentMethod),
		TransactionID: form.TransactionID,
	})
	if err != nil {
		c.Redirect(http.StatusFound, flashURL("/apply", applyErrorFlash(err)))
		return
	}

	c.HTML(http.StatusOK, "confirmation.html", s.page(c, gin.H{"Application": app}))
}

func applyErrorFlash(err error) string {
	switch {
	case errors.Is(err, models.ErrDrawTaken):
		return flashDrawTaken
	case errors.Is(err, models.ErrDuplicateCode):
		return flashDuplicateCode
	case models.IsValidation(err):
		return flashInvalidInput
	}
	return flashApplyFailed
}

func (s *HTTPServer) paymentInstructions(c *gin.Context) {
	c.HTML(http.StatusOK, "payment_instructions.html", s.page(c, nil))
}

// draws returns the available draws as JSON.
func (s *HTTPServer) draws(c *gin.Context) {
	draws, err := s.lottery.AvailableDraws(c.Request.Context())
	if err != nil {
		s.logger.Errorw("Failed to get available draws", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get available draws"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draws":        draws,
		"count":        len(draws),
		"ticket_price": models.TicketPrice,
	})
}

// receipt serves the PDF receipt of the application with the given confirmation code.
func (s *HTTPServer) receipt(c *gin.Context) {
	app, err := s.lottery.GetApplicationByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.notFound(c)
			return
		}
		s.logger.Errorw("Failed to get application for receipt", "error", err)
		c.String(http.StatusInternalServerError, "failed to load application")
		return
	}

	pdf, filename, err := receipt.Render(app, s.issuer)
	if err != nil {
		s.logger.Errorw("Failed to render receipt", "id", app.ID, "error", err)
		c.String(http.StatusInternalServerError, "failed to render receipt")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (s *HTTPServer) healthz(c *gin.Context) {
	if err := s.lottery.Ping(c.Request.Context()); err != nil {
		s.logger.Errorw("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", s.page(c, nil))
}

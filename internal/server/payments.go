package server

import (
	"io"
	"net/http"
	"strings"

	paymentdomain "github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
	"github.com/gin-gonic/gin"
)

// HandlePaymentWebhook acks duplicates and ignored kinds with the same 200
// body; providers only retry on non-2xx.
func (s *Server) HandlePaymentWebhook(c *gin.Context) {
	provider := strings.TrimSpace(c.Param("provider"))
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.paymentSvc.ProcessWebhook(c.Request.Context(), provider, payload, c.Request.Header); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (s *Server) CreateCheckout(c *gin.Context) {
	var req paymentdomain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	session, err := s.paymentSvc.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (s *Server) GetCheckoutSession(c *gin.Context) {
	summary, err := s.paymentSvc.GetSession(c.Request.Context(), c.Query("provider"), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DonationSuccess always redirects; the browser never sees an error body.
func (s *Server) DonationSuccess(c *gin.Context) {
	target := s.paymentSvc.ConfirmDonation(c.Request.Context(), c.Query("session_id"))
	c.Redirect(http.StatusFound, target)
}

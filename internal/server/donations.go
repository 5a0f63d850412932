package server

import (
	"net/http"

	donationdomain "github.com/Blits-planeet/driftv8.xyz/internal/donation/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateDonation(c *gin.Context) {
	var req donationdomain.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.donationSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListDonations is the donor wall, largest first.
func (s *Server) ListDonations(c *gin.Context) {
	items, err := s.donationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": items})
}

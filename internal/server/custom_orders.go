package server

import (
	"net/http"

	customorderdomain "github.com/Blits-planeet/driftv8.xyz/internal/customorder/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateCustomOrder(c *gin.Context) {
	var req customorderdomain.CreateCustomOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.customOrderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (s *Server) ListCustomOrders(c *gin.Context) {
	items, err := s.customOrderSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customOrders": items})
}

package server

import (
	"net/http"

	cartdomain "github.com/Blits-planeet/driftv8.xyz/internal/cart/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) AddCartItem(c *gin.Context) {
	var req cartdomain.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.cartSvc.Add(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (s *Server) ListCartItems(c *gin.Context) {
	items, err := s.cartSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) UpdateCartItem(c *gin.Context) {
	var req cartdomain.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.cartSvc.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (s *Server) RemoveCartItem(c *gin.Context) {
	if err := s.cartSvc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) ClearCart(c *gin.Context) {
	if err := s.cartSvc.Clear(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

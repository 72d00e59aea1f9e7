package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-auth/internal/auth/credentials"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Fullname string `json:"fullname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rec, err := h.credentialService.Register(
		c.Request.Context(),
		req.Email,
		req.Fullname,
		req.Password,
	)

	if err != nil {
		if errors.Is(err, credentials.ErrAlreadyRegistered) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := h.issueSession(c, rec); !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "registered"})
}

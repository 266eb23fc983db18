package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shdeco/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.CreateUser)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user payload")
		return
	}

	u, existed, err := h.service.RegisterUser(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
		return
	}

	if existed {
		response.Success(c, http.StatusOK, gin.H{"message": "User already exists", "user": u})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"products-api/internal/service"
	"products-api/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type registerIn struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/user/register
func (h *UserHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	errs, err := h.svc.Register(c.Request.Context(), in.Username, in.Email, in.Password)
	if err != nil {
		response.Internal(c, "An error occurred while registering the user", err)
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	response.OK(c, "Registered successfully, try login!!!")
}

// POST /api/user/add-role/:role
func (h *UserHandler) CreateRole(c *gin.Context) {
	role := c.Param("role")
	errs, err := h.svc.CreateRole(c.Request.Context(), role)
	if err != nil {
		response.Internal(c, "An error occurred while adding the role", err)
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	response.OK(c, fmt.Sprintf("%s Role added successfully", role))
}

type assignRoleIn struct {
	Username string `json:"username" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// POST /api/user/assign-role
func (h *UserHandler) AssignRole(c *gin.Context) {
	var in assignRoleIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	found, errs, err := h.svc.AssignRole(c.Request.Context(), in.Username, in.Role)
	if err != nil {
		response.Internal(c, fmt.Sprintf("An error occurred while adding the %s role to %s user", in.Role, in.Username), err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, response.Message{Message: fmt.Sprintf("%s user not exists!", in.Username)})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	response.OK(c, fmt.Sprintf("Successfully %s role assigned to %s user", in.Role, in.Username))
}

type loginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/user/login
func (h *UserHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, ok, err := h.svc.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		response.Internal(c, "An error occurred while logging-in", err)
		return
	}
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/models"
	"github.com/orgdesk/orgdesk/internal/services"
	"github.com/orgdesk/orgdesk/pkg/response"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(db *gorm.DB) (*UserHandler, error) {
	svc, err := services.NewUserService(db)
	if err != nil {
		return nil, err
	}
	return &UserHandler{svc: svc}, nil
}

type createUserRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=Admin Co-ordinator"`
}

type updateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role" validate:"omitempty,oneof=Admin Co-ordinator"`
}

// GET /api/users
// Global roster: every user annotated with its organization's name.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.ListAllWithOrganizationName(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Error(c, services.ErrUserNotFound)
		return
	}

	user, err := h.svc.GetByID(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Error(c, services.ErrUserNotFound)
		return
	}

	var body updateUserRequest
	if !bindAndValidate(c, &body) {
		return
	}

	input := services.UpdateUserInput{Name: body.Name}
	if body.Role != nil {
		role := models.UserRole(*body.Role)
		input.Role = &role
	}

	user, err := h.svc.Update(requestContext(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Error(c, services.ErrUserNotFound)
		return
	}

	if err := h.svc.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Ack(c, "User deleted successfully")
}

// GET /api/organizations/:id/users
func (h *UserHandler) ListByOrganization(c *gin.Context) {
	orgID, ok := parseID(c, "id")
	if !ok {
		response.Error(c, services.ErrOrganizationNotFound)
		return
	}

	users, err := h.svc.ListByOrganization(requestContext(c), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// POST /api/organizations/:id/users
// Adds a user to the organization named in the route; the body never carries
// the owning organization.
func (h *UserHandler) CreateInOrganization(c *gin.Context) {
	orgID, ok := parseID(c, "id")
	if !ok {
		response.Error(c, services.ErrOrganizationNotFound)
		return
	}

	var body createUserRequest
	if !bindAndValidate(c, &body) {
		return
	}

	user, err := h.svc.Create(requestContext(c), orgID, services.CreateUserInput{
		Name: body.Name,
		Role: models.UserRole(body.Role),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

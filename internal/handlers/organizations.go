package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/models"
	"github.com/orgdesk/orgdesk/internal/services"
	"github.com/orgdesk/orgdesk/pkg/response"
)

type OrganizationHandler struct {
	svc *services.OrganizationService
}

func NewOrganizationHandler(db *gorm.DB) (*OrganizationHandler, error) {
	svc, err := services.NewOrganizationService(db)
	if err != nil {
		return nil, err
	}
	return &OrganizationHandler{svc: svc}, nil
}

type createOrganizationRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Slug  string `json:"slug" validate:"omitempty,max=128"`

	Status          string `json:"status" validate:"omitempty,oneof=Active Inactive Blocked"`
	PendingRequests int    `json:"pendingRequests" validate:"omitempty,gte=0"`
	Img             string `json:"img"`

	Contact           string `json:"contact"`
	PrimaryAdminName  string `json:"primaryAdminName"`
	PrimaryAdminEmail string `json:"primaryAdminEmail" validate:"omitempty,email"`
	SupportEmail      string `json:"supportEmail" validate:"omitempty,email"`
	Phone             string `json:"phone"`
	AltPhone          string `json:"altPhone"`
	Website           string `json:"website"`
	Timezone          string `json:"timezone"`
	Language          string `json:"language"`
	Region            string `json:"region"`
	MaxCoordinators   int    `json:"maxCoordinators" validate:"omitempty,gte=0"`

	Settings map[string]any `json:"settings"`
}

type updateOrganizationRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Slug  *string `json:"slug" validate:"omitempty,max=128"`

	Status          *string `json:"status" validate:"omitempty,oneof=Active Inactive Blocked"`
	PendingRequests *int    `json:"pendingRequests" validate:"omitempty,gte=0"`
	Img             *string `json:"img"`

	Contact           *string `json:"contact"`
	PrimaryAdminName  *string `json:"primaryAdminName"`
	PrimaryAdminEmail *string `json:"primaryAdminEmail" validate:"omitempty,email"`
	SupportEmail      *string `json:"supportEmail" validate:"omitempty,email"`
	Phone             *string `json:"phone"`
	AltPhone          *string `json:"altPhone"`
	Website           *string `json:"website"`
	Timezone          *string `json:"timezone"`
	Language          *string `json:"language"`
	Region            *string `json:"region"`
	MaxCoordinators   *int    `json:"maxCoordinators" validate:"omitempty,gte=0"`

	Settings map[string]any `json:"settings"`
}

// GET /api/organizations
// Returns the summary projection for the dashboard list. `?id=N` keeps the
// legacy single-record lookup variant alive.
func (h *OrganizationHandler) List(c *gin.Context) {
	if raw := strings.TrimSpace(c.Query("id")); raw != "" {
		id, ok := parseQueryID(raw)
		if !ok {
			response.Error(c, services.ErrOrganizationNotFound)
			return
		}
		org, err := h.svc.GetByID(requestContext(c), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, org)
		return
	}

	summaries, err := h.svc.ListSummaries(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, summaries)
}

// GET /api/organizations/:id
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Error(c, services.ErrOrganizationNotFound)
		return
	}

	org, err := h.svc.GetByIDWithUsers(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, org)
}

// POST /api/organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	var body createOrganizationRequest
	if !bindAndValidate(c, &body) {
		return
	}

	org, err := h.svc.Create(requestContext(c), services.CreateOrganizationInput{
		Name:            body.Name,
		Email:           body.Email,
		Slug:            body.Slug,
		Status:          models.OrganizationStatus(body.Status),
		PendingRequests: body.PendingRequests,
		Img:             body.Img,

		Contact:           body.Contact,
		PrimaryAdminName:  body.PrimaryAdminName,
		PrimaryAdminEmail: body.PrimaryAdminEmail,
		SupportEmail:      body.SupportEmail,
		Phone:             body.Phone,
		AltPhone:          body.AltPhone,
		Website:           body.Website,
		Timezone:          body.Timezone,
		Language:          body.Language,
		Region:            body.Region,
		MaxCoordinators:   body.MaxCoordinators,

		Settings: body.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, org)
}

// PUT /api/organizations/:id
// Partial update with merge semantics; status changes flow through here.
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Error(c, services.ErrOrganizationNotFound)
		return
	}

	var body updateOrganizationRequest
	if !bindAndValidate(c, &body) {
		return
	}

	input := services.UpdateOrganizationInput{
		Name:            body.Name,
		Email:           body.Email,
		Slug:            body.Slug,
		PendingRequests: body.PendingRequests,
		Img:             body.Img,

		Contact:           body.Contact,
		PrimaryAdminName:  body.PrimaryAdminName,
		PrimaryAdminEmail: body.PrimaryAdminEmail,
		SupportEmail:      body.SupportEmail,
		Phone:             body.Phone,
		AltPhone:          body.AltPhone,
		Website:           body.Website,
		Timezone:          body.Timezone,
		Language:          body.Language,
		Region:            body.Region,
		MaxCoordinators:   body.MaxCoordinators,

		Settings: body.Settings,
	}
	if body.Status != nil {
		status := models.OrganizationStatus(*body.Status)
		input.Status = &status
	}

	org, err := h.svc.Update(requestContext(c), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, org)
}

// DELETE /api/organizations/:id
// Removes the organization and cascades to its users.
func (h *OrganizationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Error(c, services.ErrOrganizationNotFound)
		return
	}

	if err := h.svc.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Ack(c, "Organization deleted successfully")
}

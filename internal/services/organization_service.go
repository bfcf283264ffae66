package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/models"
	apperrors "github.com/orgdesk/orgdesk/pkg/errors"
	"github.com/orgdesk/orgdesk/pkg/metrics"
)

var (
	// ErrOrganizationNotFound indicates the requested organization does not exist.
	ErrOrganizationNotFound = apperrors.New("ORGANIZATION_NOT_FOUND", "Organization not found", http.StatusNotFound)
)

// CreateOrganizationInput captures the attributes accepted when registering an
// organization. Name and Email are required; everything else is optional.
type CreateOrganizationInput struct {
	Name            string
	Email           string
	Slug            string
	Status          models.OrganizationStatus
	PendingRequests int
	Img             string

	Contact           string
	PrimaryAdminName  string
	PrimaryAdminEmail string
	SupportEmail      string
	Phone             string
	AltPhone          string
	Website           string
	Timezone          string
	Language          string
	Region            string
	MaxCoordinators   int

	Settings map[string]any
}

// UpdateOrganizationInput represents mutable organization fields. Nil pointers
// leave the stored value untouched (merge semantics).
type UpdateOrganizationInput struct {
	Name            *string
	Email           *string
	Slug            *string
	Status          *models.OrganizationStatus
	PendingRequests *int
	Img             *string

	Contact           *string
	PrimaryAdminName  *string
	PrimaryAdminEmail *string
	SupportEmail      *string
	Phone             *string
	AltPhone          *string
	Website           *string
	Timezone          *string
	Language          *string
	Region            *string
	MaxCoordinators   *int

	Settings map[string]any
}

// OrganizationService manages lifecycle operations for organizations.
type OrganizationService struct {
	db *gorm.DB
}

// NewOrganizationService constructs an OrganizationService instance.
func NewOrganizationService(db *gorm.DB) (*OrganizationService, error) {
	if db == nil {
		return nil, errors.New("organization service: db is required")
	}
	return &OrganizationService{db: db}, nil
}

// ListSummaries returns the reduced projection of every organization ordered
// by identifier. Profile and user-list fields are never included.
func (s *OrganizationService) ListSummaries(ctx context.Context) ([]models.OrganizationSummary, error) {
	ctx = ensureContext(ctx)

	summaries := make([]models.OrganizationSummary, 0)
	err := s.db.WithContext(ctx).
		Model(&models.Organization{}).
		Select("id", "name", "pending_requests", "status").
		Order("id ASC").
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("organization service: list summaries: %w", err)
	}
	return summaries, nil
}

// GetByID loads the full organization record without its users.
func (s *OrganizationService) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	ctx = ensureContext(ctx)

	var org models.Organization
	err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("organization service: get organization: %w", err)
	}
	return &org, nil
}

// GetByIDWithUsers loads the full organization record plus its owned users.
func (s *OrganizationService) GetByIDWithUsers(ctx context.Context, id uint) (*models.Organization, error) {
	ctx = ensureContext(ctx)

	var org models.Organization
	err := s.db.WithContext(ctx).
		Preload("Users", func(db *gorm.DB) *gorm.DB {
			return db.Order("users.id ASC")
		}).
		First(&org, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("organization service: get organization with users: %w", err)
	}
	if org.Users == nil {
		org.Users = []models.User{}
	}
	return &org, nil
}

// Create registers a new organization, deriving the slug from the name when
// the caller omits one.
func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*models.Organization, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidation("name is required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.NewValidation("email is required")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = slugify(name)
	}

	status := input.Status
	if status == "" {
		status = models.StatusActive
	}
	if !status.Valid() {
		return nil, apperrors.NewValidation(fmt.Sprintf("status must be one of %v", models.OrganizationStatuses()))
	}

	if err := s.checkUnique(ctx, email, slug, 0); err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:            name,
		Email:           email,
		Slug:            slug,
		Status:          status,
		PendingRequests: input.PendingRequests,
		Img:             input.Img,

		Contact:           strings.TrimSpace(input.Contact),
		PrimaryAdminName:  strings.TrimSpace(input.PrimaryAdminName),
		PrimaryAdminEmail: strings.TrimSpace(input.PrimaryAdminEmail),
		SupportEmail:      strings.TrimSpace(input.SupportEmail),
		Phone:             strings.TrimSpace(input.Phone),
		AltPhone:          strings.TrimSpace(input.AltPhone),
		Website:           strings.TrimSpace(input.Website),
		Timezone:          strings.TrimSpace(input.Timezone),
		Language:          strings.TrimSpace(input.Language),
		Region:            strings.TrimSpace(input.Region),
		MaxCoordinators:   input.MaxCoordinators,
	}

	if input.Settings != nil {
		data, err := json.Marshal(input.Settings)
		if err != nil {
			return nil, fmt.Errorf("organization service: marshal settings: %w", err)
		}
		org.Settings = datatypes.JSON(data)
	}

	if err := s.db.WithContext(ctx).Create(org).Error; err != nil {
		metrics.EntityWrites.WithLabelValues("organization", "create", "failure").Inc()
		if isUniqueConstraintError(err) {
			// Backstop for races past the explicit uniqueness checks.
			return nil, apperrors.New("CONFLICT", "Email or slug already in use", http.StatusBadRequest).WithInternal(err)
		}
		return nil, fmt.Errorf("organization service: create organization: %w", err)
	}

	metrics.EntityWrites.WithLabelValues("organization", "create", "success").Inc()
	return org, nil
}

// Update merges the supplied fields onto the stored record; unspecified fields
// keep their prior value. Status changes flow through here as well.
func (s *OrganizationService) Update(ctx context.Context, id uint, input UpdateOrganizationInput) (*models.Organization, error) {
	ctx = ensureContext(ctx)

	var org models.Organization
	err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("organization service: load organization: %w", err)
	}

	updates := map[string]any{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidation("name must not be empty")
		}
		updates["name"] = name
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, apperrors.NewValidation("email must not be empty")
		}
		updates["email"] = email
	}
	if input.Slug != nil {
		updates["slug"] = strings.TrimSpace(*input.Slug)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidation(fmt.Sprintf("status must be one of %v", models.OrganizationStatuses()))
		}
		updates["status"] = *input.Status
	}
	if input.PendingRequests != nil {
		updates["pending_requests"] = *input.PendingRequests
	}
	if input.Img != nil {
		updates["img"] = *input.Img
	}
	if input.Contact != nil {
		updates["contact"] = strings.TrimSpace(*input.Contact)
	}
	if input.PrimaryAdminName != nil {
		updates["primary_admin_name"] = strings.TrimSpace(*input.PrimaryAdminName)
	}
	if input.PrimaryAdminEmail != nil {
		updates["primary_admin_email"] = strings.TrimSpace(*input.PrimaryAdminEmail)
	}
	if input.SupportEmail != nil {
		updates["support_email"] = strings.TrimSpace(*input.SupportEmail)
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.AltPhone != nil {
		updates["alt_phone"] = strings.TrimSpace(*input.AltPhone)
	}
	if input.Website != nil {
		updates["website"] = strings.TrimSpace(*input.Website)
	}
	if input.Timezone != nil {
		updates["timezone"] = strings.TrimSpace(*input.Timezone)
	}
	if input.Language != nil {
		updates["language"] = strings.TrimSpace(*input.Language)
	}
	if input.Region != nil {
		updates["region"] = strings.TrimSpace(*input.Region)
	}
	if input.MaxCoordinators != nil {
		updates["max_coordinators"] = *input.MaxCoordinators
	}
	if input.Settings != nil {
		data, err := json.Marshal(input.Settings)
		if err != nil {
			return nil, fmt.Errorf("organization service: marshal settings: %w", err)
		}
		updates["settings"] = datatypes.JSON(data)
	}

	if len(updates) == 0 {
		return &org, nil
	}

	email := org.Email
	if v, ok := updates["email"].(string); ok {
		email = v
	}
	slug := org.Slug
	if v, ok := updates["slug"].(string); ok {
		slug = v
	}
	if err := s.checkUnique(ctx, email, slug, org.ID); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&org).Updates(updates).Error; err != nil {
		metrics.EntityWrites.WithLabelValues("organization", "update", "failure").Inc()
		if isUniqueConstraintError(err) {
			return nil, apperrors.New("CONFLICT", "Email or slug already in use", http.StatusBadRequest).WithInternal(err)
		}
		return nil, fmt.Errorf("organization service: update organization: %w", err)
	}

	if err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("organization service: reload organization: %w", err)
	}

	metrics.EntityWrites.WithLabelValues("organization", "update", "success").Inc()
	return &org, nil
}

// Delete removes the organization and every user it owns inside a single
// transaction; no partial state may survive a failure.
func (s *OrganizationService) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	var org models.Organization
	err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrganizationNotFound
	}
	if err != nil {
		return fmt.Errorf("organization service: load organization: %w", err)
	}

	var removedUsers int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("organization_id = ?", org.ID).Delete(&models.User{})
		if res.Error != nil {
			return fmt.Errorf("delete owned users: %w", res.Error)
		}
		removedUsers = res.RowsAffected

		if err := tx.Delete(&org).Error; err != nil {
			return fmt.Errorf("delete organization: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.EntityWrites.WithLabelValues("organization", "delete", "failure").Inc()
		return fmt.Errorf("organization service: delete organization: %w", err)
	}

	metrics.EntityWrites.WithLabelValues("organization", "delete", "success").Inc()
	metrics.CascadeDeletedUsers.Add(float64(removedUsers))
	return nil
}

// checkUnique reports a conflict when email or slug collide with a different
// organization. excludeID skips the row being updated.
func (s *OrganizationService) checkUnique(ctx context.Context, email, slug string, excludeID uint) error {
	var count int64
	query := s.db.WithContext(ctx).Model(&models.Organization{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("organization service: check email uniqueness: %w", err)
	}
	if count > 0 {
		return apperrors.NewConflict("email")
	}

	if slug == "" {
		return nil
	}

	count = 0
	query = s.db.WithContext(ctx).Model(&models.Organization{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("organization service: check slug uniqueness: %w", err)
	}
	if count > 0 {
		return apperrors.NewConflict("slug")
	}

	return nil
}

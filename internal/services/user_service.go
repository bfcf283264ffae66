package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/models"
	apperrors "github.com/orgdesk/orgdesk/pkg/errors"
	"github.com/orgdesk/orgdesk/pkg/metrics"
)

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = apperrors.New("USER_NOT_FOUND", "User not found", http.StatusNotFound)
)

// CreateUserInput describes the fields accepted when adding a user to an
// organization. The owning organization comes from the route, never the body.
type CreateUserInput struct {
	Name string
	Role models.UserRole
}

// UpdateUserInput enumerates mutable user attributes; name and role only.
type UpdateUserInput struct {
	Name *string
	Role *models.UserRole
}

// UserService manages the CRUD lifecycle for users within their organization.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a UserService instance.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

// ListByOrganization returns every user owned by orgID ordered by identifier.
// A missing organization is an error; an existing organization with zero
// users yields an empty slice.
func (s *UserService) ListByOrganization(ctx context.Context, orgID uint) ([]models.User, error) {
	ctx = ensureContext(ctx)

	if err := s.organizationExists(ctx, orgID); err != nil {
		return nil, err
	}

	users := make([]models.User, 0)
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("user service: list users: %w", err)
	}
	return users, nil
}

// Create adds a user to an existing organization. The parent must exist
// before any write happens.
func (s *UserService) Create(ctx context.Context, orgID uint, input CreateUserInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	if err := s.organizationExists(ctx, orgID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidation("name is required")
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidation(fmt.Sprintf("role must be one of %v", models.UserRoles()))
	}

	user := &models.User{
		Name:           name,
		Role:           input.Role,
		OrganizationID: orgID,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		metrics.EntityWrites.WithLabelValues("user", "create", "failure").Inc()
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	metrics.EntityWrites.WithLabelValues("user", "create", "success").Inc()
	return user, nil
}

// GetByID loads a user together with its owning organization.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Organization").
		First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: get user: %w", err)
	}
	return &user, nil
}

// Update merges name and role changes onto the stored record. The owning
// organization is immutable for the user's lifetime.
func (s *UserService) Update(ctx context.Context, id uint, input UpdateUserInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: load user: %w", err)
	}

	updates := map[string]any{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidation("name must not be empty")
		}
		updates["name"] = name
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidation(fmt.Sprintf("role must be one of %v", models.UserRoles()))
		}
		updates["role"] = *input.Role
	}

	if len(updates) == 0 {
		return &user, nil
	}

	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		metrics.EntityWrites.WithLabelValues("user", "update", "failure").Inc()
		return nil, fmt.Errorf("user service: update user: %w", err)
	}

	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("user service: reload user: %w", err)
	}

	metrics.EntityWrites.WithLabelValues("user", "update", "success").Inc()
	return &user, nil
}

// Delete removes a user. Users own nothing, so there is no downstream cascade.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		metrics.EntityWrites.WithLabelValues("user", "delete", "failure").Inc()
		return fmt.Errorf("user service: delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	metrics.EntityWrites.WithLabelValues("user", "delete", "success").Inc()
	return nil
}

// ListAllWithOrganizationName returns every user in the system annotated with
// its owning organization's name only, for the global roster view.
func (s *UserService) ListAllWithOrganizationName(ctx context.Context) ([]models.UserWithOrganizationName, error) {
	ctx = ensureContext(ctx)

	rows := make([]models.UserWithOrganizationName, 0)
	err := s.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.name, users.role, users.organization_id, organizations.name AS organization_name, users.created_at, users.updated_at").
		Joins("JOIN organizations ON organizations.id = users.organization_id").
		Order("users.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("user service: list users with organization: %w", err)
	}
	return rows, nil
}

func (s *UserService) organizationExists(ctx context.Context, orgID uint) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Organization{}).
		Where("id = ?", orgID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("user service: check organization: %w", err)
	}
	if count == 0 {
		return ErrOrganizationNotFound
	}
	return nil
}

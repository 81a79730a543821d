package permissions

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"rewards_admin/internal/models"
)

// ErrUserNotFound is returned by write operations targeting a user id
// that does not resolve. Reads treat the same condition as empty access
// instead, consistent with deny-by-default.
var ErrUserNotFound = errors.New("admin user not found")

// Directory is the user storage the Store composes with.
type Directory interface {
	FindAdminUser(ctx context.Context, id string) (*models.AdminUser, error)
	SaveAdminUser(ctx context.Context, u *models.AdminUser) error
}

// Store owns the menu catalog, the role templates, and per-user
// permission materialization and editing.
type Store struct {
	dir    Directory
	logger *zap.Logger
	now    func() time.Time
}

func NewStore(dir Directory, logger *zap.Logger) *Store {
	return &Store{dir: dir, logger: logger, now: time.Now}
}

// MenuStructure returns the static module catalog.
func (s *Store) MenuStructure() []MenuEntry { return MenuStructure() }

// RoleTemplates returns the static role to defaults mapping.
func (s *Store) RoleTemplates() []RoleTemplate { return RoleTemplates() }

// GenerateForRole materializes fresh permission records from the role's
// template. Each call mints new ids so every generation event produces
// independently editable records.
func (s *Store) GenerateForRole(role models.Role) []models.Permission {
	return generateForRole(role)
}

// UserPermissions returns the stored permission list for a user. A
// missing user yields an empty list, not an error.
func (s *Store) UserPermissions(ctx context.Context, userID string) []models.Permission {
	u, err := s.dir.FindAdminUser(ctx, userID)
	if err != nil {
		return nil
	}
	return u.Permissions
}

// UpdateUserPermissions replaces the stored list wholesale. An empty list
// clears all access. Records are normalized on the way in: a record that
// cannot be viewed grants nothing else either.
func (s *Store) UpdateUserPermissions(ctx context.Context, userID string, perms []models.Permission) error {
	u, err := s.dir.FindAdminUser(ctx, userID)
	if err != nil {
		return err
	}
	u.Permissions = Normalize(perms)
	u.UpdatedAt = s.now()
	if err := s.dir.SaveAdminUser(ctx, u); err != nil {
		return err
	}
	s.logger.Info("replaced admin user permissions",
		zap.String("user_id", userID),
		zap.Int("count", len(u.Permissions)))
	return nil
}

// ResetToRoleDefaults regenerates the user's permissions from their
// current role's template and stores the result.
func (s *Store) ResetToRoleDefaults(ctx context.Context, userID string) ([]models.Permission, error) {
	u, err := s.dir.FindAdminUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	perms := generateForRole(u.Role)
	if err := s.UpdateUserPermissions(ctx, userID, perms); err != nil {
		return nil, err
	}
	return perms, nil
}

// Normalize clears the create/edit/delete/export flags of any record
// whose view flag is off, so an inconsistent record cannot reach storage.
func Normalize(perms []models.Permission) models.PermissionList {
	out := make(models.PermissionList, 0, len(perms))
	for _, p := range perms {
		if !p.CanView {
			p.CanCreate = false
			p.CanEdit = false
			p.CanDelete = false
			if p.CanExport != nil {
				p.CanExport = boolPtr(false)
			}
		}
		out = append(out, p)
	}
	return out
}

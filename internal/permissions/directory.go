package permissions

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rewards_admin/internal/models"
)

// GormDirectory backs the Store with the admin_users table.
type GormDirectory struct {
	DB *gorm.DB
}

func (d GormDirectory) FindAdminUser(ctx context.Context, id string) (*models.AdminUser, error) {
	var u models.AdminUser
	if err := d.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (d GormDirectory) SaveAdminUser(ctx context.Context, u *models.AdminUser) error {
	return d.DB.WithContext(ctx).Save(u).Error
}

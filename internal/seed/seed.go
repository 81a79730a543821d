package seed

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rewards_admin/internal/models"
	"rewards_admin/internal/permissions"
)

// FirstSetup ensures the records the dashboard cannot run without: a
// super admin account and the default conversion rate. Safe to call on
// every boot.
func FirstSetup(gdb *gorm.DB, store *permissions.Store) error {
	// -------------------------
	// 1) Ensure super admin user
	// -------------------------
	const adminEmail = "admin@example.com"
	const adminPass = "admin123" // change after first login

	var count int64
	if err := gdb.Model(&models.AdminUser{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		passHash, _ := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)

		admin := models.AdminUser{
			ID:           uuid.NewString(),
			Name:         "Admin User",
			Email:        adminEmail,
			PasswordHash: string(passHash),
			Role:         models.RoleSuperAdmin,
			IsActive:     true,
			Permissions:  store.GenerateForRole(models.RoleSuperAdmin),
		}
		if err := gdb.Create(&admin).Error; err != nil {
			return err
		}
	}

	// -------------------------
	// 2) Ensure default conversion rate
	// -------------------------
	if err := gdb.Model(&models.ConversionRate{}).Where("is_default = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		rate := models.ConversionRate{
			ID:        uuid.NewString(),
			Name:      "Standard",
			Rate:      1.0,
			IsDefault: true,
			Status:    models.StatusActive,
			StartDate: time.Now(),
			EndDate:   time.Now().AddDate(10, 0, 0),
			CreatedBy: "system",
		}
		if err := gdb.Create(&rate).Error; err != nil {
			return err
		}
	}

	// -------------------------
	// 3) Ensure starter variables
	// -------------------------
	starters := []models.Variable{
		{Name: "purchase_amount", ValueType: "number", InputType: "basic"},
		{Name: "store_id", ValueType: "string", InputType: "list"},
	}
	for _, v := range starters {
		if err := gdb.Model(&models.Variable{}).Where("name = ?", v.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		v.ID = uuid.NewString()
		v.CreatedBy = "system"
		if err := gdb.Create(&v).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seed OK | admin=%s pass=%s | roles=[super_admin,admin,moderator,viewer]",
		adminEmail, adminPass,
	)
	return nil
}

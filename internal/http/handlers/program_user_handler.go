package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rewards_admin/internal/models"
)

var programUserSortColumns = map[string]string{
	"email":        "email",
	"display_name": "display_name",
	"created_at":   "created_at",
}

// ListProgramUsers returns end users of the points program. The dashboard
// only reads this directory.
func ListProgramUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.ProgramUser{})

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + search + "%"
			query = query.Where("email LIKE ? OR display_name LIKE ?", like, like)
		}
		if active := c.Query("active"); active != "" {
			query = query.Where("active = ?", active == "true")
		}
		query = applySort(query, c, programUserSortColumns, "created_at")

		var users []models.ProgramUser
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// ExportProgramUsers streams the program user directory as CSV.
func ExportProgramUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.ProgramUser
		if err := db.Order("created_at ASC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{u.ID, u.Email, u.DisplayName, u.Role, strconv.FormatBool(u.Active)})
		}
		writeCSV(c, "users.csv",
			[]string{"id", "email", "display_name", "role", "active"},
			rows)
	}
}

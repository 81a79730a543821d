package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rewards_admin/internal/models"
)

// ListAdminLogs returns admin audit entries newest-first with cursor
// pagination (after_id) and a free-text search over action, entity and
// description.
func ListAdminLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		if limitStr := c.Query("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		var afterID int64
		if cursorStr := c.Query("after_id"); cursorStr != "" {
			if parsed, err := strconv.ParseInt(cursorStr, 10, 64); err == nil && parsed > 0 {
				afterID = parsed
			}
		}

		search := strings.TrimSpace(c.Query("q"))

		query := db.Model(&models.AdminLog{}).Order("id DESC")
		if afterID > 0 {
			query = query.Where("id < ?", afterID)
		}
		if search != "" {
			like := "%" + search + "%"
			query = query.Where("(action LIKE ? OR entity LIKE ? OR description LIKE ? OR user_id LIKE ?)",
				like, like, like, like)
		}
		if entity := c.Query("entity"); entity != "" {
			query = query.Where("entity = ?", entity)
		}

		var logs []models.AdminLog
		if err := query.Limit(limit + 1).Find(&logs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var nextCursor *int64
		if len(logs) > limit {
			next := logs[limit].ID
			logs = logs[:limit]
			nextCursor = &next
		}

		c.JSON(http.StatusOK, gin.H{
			"logs":        logs,
			"next_cursor": nextCursor,
		})
	}
}

// ExportAdminLogs streams the full audit trail as CSV.
func ExportAdminLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var logs []models.AdminLog
		if err := db.Order("id ASC").Find(&logs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rows := make([][]string, 0, len(logs))
		for _, l := range logs {
			rows = append(rows, []string{
				strconv.FormatInt(l.ID, 10),
				l.UserID,
				l.Action,
				l.Entity,
				l.EntityID,
				l.Description,
				l.IP,
				l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		writeCSV(c, "admin-logs.csv",
			[]string{"id", "user_id", "action", "entity", "entity_id", "description", "ip", "created_at"},
			rows)
	}
}

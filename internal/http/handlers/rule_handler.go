package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rewards_admin/internal/audit"
	"rewards_admin/internal/auth"
	"rewards_admin/internal/models"
)

var ruleSortColumns = map[string]string{
	"name":       "name",
	"status":     "status",
	"created_at": "created_at",
}

// ListRules returns rules, sortable and optionally filtered by status.
func ListRules(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Rule{})

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		query = applySort(query, c, ruleSortColumns, "created_at")

		var rules []models.Rule
		if err := query.Find(&rules).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rules": rules})
	}
}

type ruleInput struct {
	Name   string `json:"name" binding:"required"`
	Effect struct {
		Type  models.EffectType `json:"type" binding:"required"`
		Value float64           `json:"value"`
	} `json:"effect" binding:"required"`
	Conditions []models.Condition `json:"conditions"`
	Status     models.Status      `json:"status"`
}

func (in *ruleInput) validate() error {
	if !in.Effect.Type.Valid() {
		return fmt.Errorf("unknown effect type %q", in.Effect.Type)
	}
	for i, cond := range in.Conditions {
		if cond.Field == "" {
			return fmt.Errorf("condition %d: field is required", i)
		}
		if !cond.Operation.Valid() {
			return fmt.Errorf("condition %d: unknown operation %q", i, cond.Operation)
		}
	}
	if in.Status != "" && in.Status != models.StatusActive && in.Status != models.StatusInactive {
		return fmt.Errorf("unknown status %q", in.Status)
	}
	return nil
}

// CreateRule inserts a new points rule.
func CreateRule(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ruleInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := in.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status := in.Status
		if status == "" {
			status = models.StatusActive
		}

		actor := auth.CurrentUser(c)
		rule := models.Rule{
			ID:          uuid.NewString(),
			Name:        in.Name,
			EffectType:  in.Effect.Type,
			EffectValue: in.Effect.Value,
			Conditions:  in.Conditions,
			Status:      status,
			CreatedBy:   actor.Name,
		}

		if err := db.Create(&rule).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rec.Record(actor.ID, "rules.create", "rule", rule.ID,
			"created rule "+rule.Name, c.ClientIP(), nil, rule)

		c.JSON(http.StatusCreated, gin.H{"rule": rule})
	}
}

// UpdateRule replaces a rule's editable fields.
func UpdateRule(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ruleInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := in.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var rule models.Rule
		if err := db.First(&rule, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
			return
		}
		before := rule

		rule.Name = in.Name
		rule.EffectType = in.Effect.Type
		rule.EffectValue = in.Effect.Value
		rule.Conditions = in.Conditions
		if in.Status != "" {
			rule.Status = in.Status
		}

		if err := db.Save(&rule).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "rules.update", "rule", rule.ID,
			"updated rule "+rule.Name, c.ClientIP(), before, rule)

		c.JSON(http.StatusOK, gin.H{"rule": rule})
	}
}

// DeleteRule removes a rule.
func DeleteRule(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rule models.Rule
		if err := db.First(&rule, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
			return
		}

		if err := db.Delete(&rule).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "rules.delete", "rule", rule.ID,
			"deleted rule "+rule.Name, c.ClientIP(), rule, nil)

		c.JSON(http.StatusOK, gin.H{"message": "rule deleted"})
	}
}

// ExportRules streams all rules as CSV.
func ExportRules(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rules []models.Rule
		if err := db.Order("created_at ASC").Find(&rules).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rows := make([][]string, 0, len(rules))
		for _, r := range rules {
			rows = append(rows, []string{
				r.ID,
				r.Name,
				string(r.EffectType),
				strconv.FormatFloat(r.EffectValue, 'f', -1, 64),
				strconv.Itoa(len(r.Conditions)),
				string(r.Status),
				r.CreatedBy,
				r.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		writeCSV(c, "rules.csv",
			[]string{"id", "name", "effect_type", "effect_value", "conditions", "status", "created_by", "created_at"},
			rows)
	}
}

// applySort orders a list query by a whitelisted column plus limit/offset
// paging. Unknown columns fall back to the default.
func applySort(query *gorm.DB, c *gin.Context, columns map[string]string, defaultCol string) *gorm.DB {
	col, ok := columns[c.Query("order_by")]
	if !ok {
		col = defaultCol
	}
	dir := "ASC"
	if c.Query("order") == "desc" {
		dir = "DESC"
	}
	query = query.Order(col + " " + dir)

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 500 {
			query = query.Limit(limit)
			if offsetStr := c.Query("offset"); offsetStr != "" {
				if offset, err := strconv.Atoi(offsetStr); err == nil && offset > 0 {
					query = query.Offset(offset)
				}
			}
		}
	}
	return query
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rewards_admin/internal/audit"
	"rewards_admin/internal/auth"
	"rewards_admin/internal/models"
)

var variableSortColumns = map[string]string{
	"name":       "name",
	"value_type": "value_type",
	"created_at": "created_at",
}

// ListVariables returns the variables rules can reference.
func ListVariables(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := applySort(db.Model(&models.Variable{}), c, variableSortColumns, "name")

		var variables []models.Variable
		if err := query.Find(&variables).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"variables": variables})
	}
}

type variableInput struct {
	Name      string `json:"name" binding:"required"`
	ValueType string `json:"valueType" binding:"required,oneof=string number date datetime"`
	InputType string `json:"inputType" binding:"required,oneof=basic list"`
}

// CreateVariable registers a new variable.
func CreateVariable(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in variableInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var existing int64
		if err := db.Model(&models.Variable{}).Where("name = ?", in.Name).Count(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if existing > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "variable name already exists"})
			return
		}

		actor := auth.CurrentUser(c)
		variable := models.Variable{
			ID:        uuid.NewString(),
			Name:      in.Name,
			ValueType: in.ValueType,
			InputType: in.InputType,
			CreatedBy: actor.Name,
		}

		if err := db.Create(&variable).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rec.Record(actor.ID, "variables.create", "variable", variable.ID,
			"created variable "+variable.Name, c.ClientIP(), nil, variable)

		c.JSON(http.StatusCreated, gin.H{"variable": variable})
	}
}

// UpdateVariable replaces a variable's fields.
func UpdateVariable(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in variableInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var variable models.Variable
		if err := db.First(&variable, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "variable not found"})
			return
		}
		before := variable

		variable.Name = in.Name
		variable.ValueType = in.ValueType
		variable.InputType = in.InputType

		if err := db.Save(&variable).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "variables.update", "variable", variable.ID,
			"updated variable "+variable.Name, c.ClientIP(), before, variable)

		c.JSON(http.StatusOK, gin.H{"variable": variable})
	}
}

// DeleteVariable removes a variable.
func DeleteVariable(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var variable models.Variable
		if err := db.First(&variable, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "variable not found"})
			return
		}

		if err := db.Delete(&variable).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "variables.delete", "variable", variable.ID,
			"deleted variable "+variable.Name, c.ClientIP(), variable, nil)

		c.JSON(http.StatusOK, gin.H{"message": "variable deleted"})
	}
}

// ExportVariables streams all variables as CSV.
func ExportVariables(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var variables []models.Variable
		if err := db.Order("name ASC").Find(&variables).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rows := make([][]string, 0, len(variables))
		for _, v := range variables {
			rows = append(rows, []string{v.ID, v.Name, v.ValueType, v.InputType, v.CreatedBy})
		}
		writeCSV(c, "variables.csv",
			[]string{"id", "name", "value_type", "input_type", "created_by"},
			rows)
	}
}

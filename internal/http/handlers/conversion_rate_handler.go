package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rewards_admin/internal/audit"
	"rewards_admin/internal/auth"
	"rewards_admin/internal/models"
)

var rateSortColumns = map[string]string{
	"name":       "name",
	"rate":       "rate",
	"status":     "status",
	"start_date": "start_date",
	"created_at": "created_at",
}

// ListConversionRates returns conversion rates, sortable and optionally
// filtered by status.
func ListConversionRates(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.ConversionRate{})

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		query = applySort(query, c, rateSortColumns, "created_at")

		var rates []models.ConversionRate
		if err := query.Find(&rates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"conversionRates": rates})
	}
}

type conversionRateInput struct {
	Name      string        `json:"name" binding:"required"`
	Rate      float64       `json:"rate" binding:"required,gt=0"`
	IsDefault bool          `json:"default"`
	Status    models.Status `json:"status"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
}

// CreateConversionRate inserts a new rate. Marking it default demotes the
// previous default; there is exactly one default rate at any time.
func CreateConversionRate(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in conversionRateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status := in.Status
		if status == "" {
			status = models.StatusActive
		}

		actor := auth.CurrentUser(c)
		rate := models.ConversionRate{
			ID:        uuid.NewString(),
			Name:      in.Name,
			Rate:      in.Rate,
			IsDefault: in.IsDefault,
			Status:    status,
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			CreatedBy: actor.Name,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if rate.IsDefault {
				if err := tx.Model(&models.ConversionRate{}).
					Where("is_default = ?", true).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&rate).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rec.Record(actor.ID, "conversion_rates.create", "conversion_rate", rate.ID,
			"created conversion rate "+rate.Name, c.ClientIP(), nil, rate)

		c.JSON(http.StatusCreated, gin.H{"conversionRate": rate})
	}
}

// UpdateConversionRate replaces a rate's editable fields. The default
// flag can only move by promoting another rate, never by unsetting it,
// so the engine always has a fallback rate.
func UpdateConversionRate(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in conversionRateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var rate models.ConversionRate
		if err := db.First(&rate, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversion rate not found"})
			return
		}
		before := rate

		if rate.IsDefault && !in.IsDefault {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot unset the default rate; promote another rate instead"})
			return
		}

		rate.Name = in.Name
		rate.Rate = in.Rate
		rate.StartDate = in.StartDate
		rate.EndDate = in.EndDate
		if in.Status != "" {
			rate.Status = in.Status
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if in.IsDefault && !rate.IsDefault {
				if err := tx.Model(&models.ConversionRate{}).
					Where("is_default = ?", true).
					Update("is_default", false).Error; err != nil {
					return err
				}
				rate.IsDefault = true
			}
			return tx.Save(&rate).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "conversion_rates.update", "conversion_rate", rate.ID,
			"updated conversion rate "+rate.Name, c.ClientIP(), before, rate)

		c.JSON(http.StatusOK, gin.H{"conversionRate": rate})
	}
}

// DeleteConversionRate removes a rate. The default rate cannot be
// deleted.
func DeleteConversionRate(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rate models.ConversionRate
		if err := db.First(&rate, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversion rate not found"})
			return
		}
		if rate.IsDefault {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete the default rate"})
			return
		}

		if err := db.Delete(&rate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "conversion_rates.delete", "conversion_rate", rate.ID,
			"deleted conversion rate "+rate.Name, c.ClientIP(), rate, nil)

		c.JSON(http.StatusOK, gin.H{"message": "conversion rate deleted"})
	}
}

// ExportConversionRates streams all rates as CSV.
func ExportConversionRates(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rates []models.ConversionRate
		if err := db.Order("created_at ASC").Find(&rates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rows := make([][]string, 0, len(rates))
		for _, r := range rates {
			rows = append(rows, []string{
				r.ID,
				r.Name,
				strconv.FormatFloat(r.Rate, 'f', -1, 64),
				strconv.FormatBool(r.IsDefault),
				string(r.Status),
				r.StartDate.Format("2006-01-02"),
				r.EndDate.Format("2006-01-02"),
				r.CreatedBy,
			})
		}
		writeCSV(c, "conversion-rates.csv",
			[]string{"id", "name", "rate", "default", "status", "start_date", "end_date", "created_by"},
			rows)
	}
}

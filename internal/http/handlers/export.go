package handlers

import (
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
)

// writeCSV streams an export file. Exports go through the same permission
// gate as everything else; by the time this runs the decision was made.
func writeCSV(c *gin.Context, filename string, header []string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

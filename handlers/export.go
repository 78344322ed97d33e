package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"flipvault-web/models"
)

// GET /api/admin/export
// ExportUsers streams the user roster as an .xlsx workbook.
func (h *Handler) ExportUsers(c *gin.Context) {
	users, err := h.backend.GetUsers(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	f := excelize.NewFile()
	sheetName := "Users"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"No", "ID", "Username", "Plan", "Status", "Registered"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, hd)
	}

	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetCellStyle(sheetName, "A1", "F1", styleHeader)

	row := 2
	for i, u := range users {
		plan := u.Plan
		if plan == "" {
			plan = string(models.PlanFree)
		}
		status := string(models.StatusFree)
		if p, err := models.ParsePlan(plan); err == nil {
			status = string(p.Status())
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), u.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), u.Username)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), plan)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), status)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), u.CreatedAt.Format("02-01-2006"))

		// Paid rows in green, free rows in grey.
		if status == string(models.StatusPaid) {
			stylePaid, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#10B981"}})
			f.SetCellStyle(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), stylePaid)
		} else {
			styleFree, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#9CA3AF"}})
			f.SetCellStyle(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), styleFree)
		}

		row++
	}

	f.SetColWidth(sheetName, "A", "B", 6)
	f.SetColWidth(sheetName, "C", "C", 25)
	f.SetColWidth(sheetName, "D", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 15)

	fileName := fmt.Sprintf("flipvault_users_%s.xlsx", time.Now().Format("20060102"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate export"})
	}
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/services"
	"github.com/Max-Ratcliff/ShelfMates/utils"

	"github.com/gin-gonic/gin"
)

// ExcelHandler handles ledger export HTTP requests
type ExcelHandler struct {
	excelService *services.ExcelService
}

// NewExcelHandler creates a new Excel handler
func NewExcelHandler(excelService *services.ExcelService) *ExcelHandler {
	return &ExcelHandler{excelService: excelService}
}

// ExportHousehold handles POST /export and streams an .xlsx download
func (h *ExcelHandler) ExportHousehold(c *gin.Context) {
	var req models.GetBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	excelFile, filename, err := h.excelService.ExportHouseholdToExcel(req.HouseholdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := excelFile.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file: " + err.Error()})
		return
	}
}

package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/mfalgas/christmas-planner-backend/internal/app/service"
	"github.com/mfalgas/christmas-planner-backend/internal/errors"
	"github.com/mfalgas/christmas-planner-backend/internal/middleware"
)

type ExportController struct {
	exportService service.ExportService
}

func NewExportController(exportService service.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportWishes streams every member's wishlist as an xlsx workbook
// GET /api/v1/exports/wishes
func (ctrl *ExportController) ExportWishes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if _, exists := middleware.GetUserID(c); !exists {
		errors.Unauthorized(c, "")
		return
	}

	workbook, err := ctrl.exportService.BuildWishesWorkbook()
	if err != nil {
		log.Error("Failed to build wishes workbook", err)
		errors.InternalError(c, "")
		return
	}
	defer workbook.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="deseos-navidad.xlsx"`)

	if err := workbook.Write(c.Writer); err != nil {
		log.Error("Failed to write workbook response", err)
	}
}

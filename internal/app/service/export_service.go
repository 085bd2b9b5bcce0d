package service

import (
	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ExportService builds the spreadsheet the family organizer downloads to
// check nothing was forgotten: every member's wishes with their claim state.
type ExportService interface {
	BuildWishesWorkbook() (*excelize.File, error)
}

type exportService struct {
	userRepo       repository.UserRepository
	wishRepo       repository.WishRepository
	assignmentRepo repository.AssignmentRepository
}

func NewExportService(
	userRepo repository.UserRepository,
	wishRepo repository.WishRepository,
	assignmentRepo repository.AssignmentRepository,
) ExportService {
	return &exportService{
		userRepo:       userRepo,
		wishRepo:       wishRepo,
		assignmentRepo: assignmentRepo,
	}
}

var priorityLabels = map[model.WishPriority]string{
	model.PriorityLow:    "Baja",
	model.PriorityMedium: "Media",
	model.PriorityHigh:   "Alta",
}

func (s *exportService) BuildWishesWorkbook() (*excelize.File, error) {
	logger.Info("Building wishes export workbook")

	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Deseos"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Miembro", "Deseo", "Prioridad", "Descripción", "URL", "Estado"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, user := range users {
		wishes, err := s.wishRepo.FindByUserID(user.ID)
		if err != nil {
			return nil, err
		}

		wishIDs := make([]uint, len(wishes))
		for i, w := range wishes {
			wishIDs[i] = w.ID
		}
		assignments, err := s.assignmentRepo.FindByWishIDs(wishIDs)
		if err != nil {
			return nil, err
		}
		claimed := make(map[uint]*model.Assignment, len(assignments))
		for i := range assignments {
			claimed[assignments[i].WishID] = &assignments[i]
		}

		for _, wish := range wishes {
			status := "Libre"
			if a, ok := claimed[wish.ID]; ok {
				if a.IsExternal() {
					status = "Asignado (externo)"
				} else {
					status = "Asignado"
				}
			}

			values := []interface{}{
				user.Name,
				wish.Title,
				priorityLabels[wish.Priority],
				derefOrEmpty(wish.Description),
				derefOrEmpty(wish.URL),
				status,
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
			row++
		}
	}

	logger.Info("Wishes export workbook built", map[string]interface{}{
		"members": len(users),
		"rows":    row - 2,
	})
	return f, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

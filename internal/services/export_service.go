package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yukikurage/timesheet-api/internal/repository"
	"github.com/yukikurage/timesheet-api/internal/utils"
)

var logCSVHeader = []string{"ID", "Date", "User", "Project", "Task", "Spent Hours", "Status"}

// ExportService writes time logs in exchange formats.
type ExportService struct {
	logRepo repository.TimeLogRepository
}

// NewExportService creates a new ExportService.
func NewExportService(logRepo repository.TimeLogRepository) *ExportService {
	return &ExportService{logRepo: logRepo}
}

// WriteLogsCSV writes every time log, oldest first, as CSV to w.
func (s *ExportService) WriteLogsCSV(w io.Writer) error {
	logs, err := s.logRepo.ListAll()
	if err != nil {
		return fmt.Errorf("failed to load log entries: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(logCSVHeader); err != nil {
		return err
	}

	for _, l := range logs {
		username := l.User.Username
		if username == "" {
			username = "Unknown"
		}
		row := []string{
			strconv.FormatUint(l.ID, 10),
			utils.FormatDate(l.Date),
			username,
			l.ProjectName,
			l.TaskName,
			strconv.Itoa(l.SpentHour),
			string(l.TaskStatus),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

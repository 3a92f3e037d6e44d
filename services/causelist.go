package services

import (
	"fmt"

	"courtdesk/apperrors"
	"courtdesk/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportCauseList renders the day's hearing list as an .xlsx workbook for
// printing and posting at the registry.
func ExportCauseList(db *gorm.DB, date string) ([]byte, error) {
	hearings, err := NewHearingService(db).HearingsOn(date)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cause List"
	f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	f.SetCellValue(sheet, "A1", fmt.Sprintf("Cause List for %s", date))
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	headers := []string{"Case Number", "Title", "Type", "Status", "Court", "Judge", "Lawyer"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "G", 24)

	for row, hearing := range hearings {
		values := []interface{}{
			hearing.CaseNumber,
			hearing.Title,
			hearing.CaseType,
			hearing.Status,
			stringOrDash(hearing.Court),
			userNameOrDash(hearing.Judge),
			userNameOrDash(hearing.Lawyer),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+4)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.Server(err)
	}
	return buf.Bytes(), nil
}

func stringOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func userNameOrDash(u *models.User) string {
	if u == nil {
		return "-"
	}
	return u.Name
}

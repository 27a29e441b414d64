package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/unischedule/internal/app/models"
)

// SheetName is the name of the single timetable sheet
const SheetName = "Timetable"

var header = []string{"Date", "Day", "Time", "Subject", "Teacher", "Classroom", "Groups"}

// WriteTimetable renders day schedules as an .xlsx workbook: a title row,
// a header row, then one row per lecture ordered by start time. Days
// without lectures get a single row with a dash.
func WriteTimetable(w io.Writer, title string, schedules []*models.Schedule) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	widths := []float64{12, 11, 13, 24, 24, 12, 24}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellValue(SheetName, "A1", title); err != nil {
		return err
	}
	if err := f.MergeCell(SheetName, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("failed to merge title: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A2", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"2", headerStyle); err != nil {
		return err
	}

	row := 3
	for _, schedule := range schedules {
		date := schedule.Date.Format(models.DateLayout)
		day := schedule.Date.Weekday().String()

		lectures := append([]*models.Lecture(nil), schedule.Lectures...)
		sort.SliceStable(lectures, func(i, j int) bool { return startOf(lectures[i]) < startOf(lectures[j]) })

		if len(lectures) == 0 {
			values := []interface{}{date, day, "-"}
			if err := f.SetSheetRow(SheetName, cellName(row), &values); err != nil {
				return err
			}
			row++
			continue
		}
		for _, l := range lectures {
			values := []interface{}{date, day, timeRange(l), subjectName(l), teacherName(l), roomName(l), groupNames(l)}
			if err := f.SetSheetRow(SheetName, cellName(row), &values); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cellName(row int) string {
	name, _ := excelize.CoordinatesToCellName(1, row)
	return name
}

func startOf(l *models.Lecture) int {
	if l.StartTime == nil {
		return -1
	}
	return int(*l.StartTime)
}

func timeRange(l *models.Lecture) string {
	if l.StartTime == nil || l.EndTime == nil {
		return "-"
	}
	return l.StartTime.String() + "-" + l.EndTime.String()
}

func subjectName(l *models.Lecture) string {
	if l.Subject == nil {
		return ""
	}
	return l.Subject.Name
}

func teacherName(l *models.Lecture) string {
	if l.Teacher == nil {
		return ""
	}
	return strings.TrimSpace(l.Teacher.FirstName + " " + l.Teacher.LastName)
}

func roomName(l *models.Lecture) string {
	if l.ClassRoom == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d", l.ClassRoom.BuildingNumber, l.ClassRoom.RoomNumber)
}

func groupNames(l *models.Lecture) string {
	names := make([]string, 0, len(l.Groups))
	for _, g := range l.Groups {
		if g != nil {
			names = append(names, g.Name)
		}
	}
	return strings.Join(names, ", ")
}

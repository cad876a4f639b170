package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"attendtrack/backend/internal/catalog"
	"attendtrack/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoStudents   = errors.New("该课程该学期没有学生")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 考勤登记表：行 = 学生，列 = 日期，单元格为当日"出席节数/总节数"
//   - 成绩表：行 = 学生，列 = 课程表科目，附均分与评语
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportAttendance 导出某课程某学期的考勤登记表
	ExportAttendance(ctx context.Context, course string, semester int) (*bytes.Buffer, string, error)
	// ExportMarks 导出某课程某学期的成绩表
	ExportMarks(ctx context.Context, course string, semester int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportAttendance — 导出考勤登记表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 表头: | 学号 | 姓名 | <日期...> | 总节数 | 出席 | 出勤率 |
//   - 日期列单元格: "出席/当日总节数"，无记录为 "-"
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportAttendance(ctx context.Context, course string, semester int) (*bytes.Buffer, string, error) {
	students, err := s.repo.Student.ListByCourse(ctx, course, &semester)
	if err != nil {
		s.logger.Error("查询班级学生失败", zap.Error(err))
		return nil, "", err
	}
	if len(students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	slots, err := s.repo.Attendance.ListByCourseSemester(ctx, course, semester)
	if err != nil {
		s.logger.Error("扫描考勤台账失败", zap.Error(err))
		return nil, "", err
	}

	// 日期列按时间排序
	dateSet := make(map[string]bool)
	for _, slot := range slots {
		dateSet[slot.Date] = true
	}
	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "考勤登记表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	courseName := course
	if meta, ok := catalog.CourseByID(course); ok {
		courseName = meta.Name
	}

	// 标题行
	lastCol := colName(1 + len(dates) + 4)
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s 第 %d 学期 — 考勤登记表", courseName, semester))
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "学号")
	f.SetCellValue(sheetName, cell("B", row), "姓名")
	for i, date := range dates {
		f.SetCellValue(sheetName, cell(colName(2+i), row), date)
	}
	f.SetCellValue(sheetName, cell(colName(2+len(dates)), row), "总节数")
	f.SetCellValue(sheetName, cell(colName(3+len(dates)), row), "出席")
	f.SetCellValue(sheetName, cell(colName(4+len(dates)), row), "出勤率")

	// 数据行
	row = 3
	for i := range students {
		st := &students[i]
		f.SetCellValue(sheetName, cell("A", row), st.Roll)
		f.SetCellValue(sheetName, cell("B", row), st.Name)

		total, attended := 0, 0
		for di, date := range dates {
			dayTotal, dayPresent := 0, 0
			for _, slot := range slots {
				if slot.Date != date {
					continue
				}
				status, ok := slot.Statuses[st.StudentID]
				if !ok {
					continue
				}
				dayTotal++
				if status == "P" {
					dayPresent++
				}
			}
			if dayTotal == 0 {
				f.SetCellValue(sheetName, cell(colName(2+di), row), "-")
			} else {
				f.SetCellValue(sheetName, cell(colName(2+di), row), fmt.Sprintf("%d/%d", dayPresent, dayTotal))
			}
			total += dayTotal
			attended += dayPresent
		}

		f.SetCellValue(sheetName, cell(colName(2+len(dates)), row), total)
		f.SetCellValue(sheetName, cell(colName(3+len(dates)), row), attended)
		f.SetCellValue(sheetName, cell(colName(4+len(dates)), row), fmt.Sprintf("%.1f%%", percentage(attended, total)))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s_sem%d.xlsx", course, semester)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportMarks — 导出成绩表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 表头: | 学号 | 姓名 | <科目...> | 均分 | 评语 |
//   - 科目列单元格: "obtained/max"，未录入为 "-"

func (s *exportService) ExportMarks(ctx context.Context, course string, semester int) (*bytes.Buffer, string, error) {
	students, err := s.repo.Student.ListByCourse(ctx, course, &semester)
	if err != nil {
		s.logger.Error("查询班级学生失败", zap.Error(err))
		return nil, "", err
	}
	if len(students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	subjects := catalog.Subjects(course, semester)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "成绩表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 18)
	for i := range subjects {
		col := colName(2 + i)
		f.SetColWidth(sheetName, col, col, 20)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	courseName := course
	if meta, ok := catalog.CourseByID(course); ok {
		courseName = meta.Name
	}

	lastCol := colName(1 + len(subjects) + 3)
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s 第 %d 学期 — 成绩表", courseName, semester))
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, cell("A", row), "学号")
	f.SetCellValue(sheetName, cell("B", row), "姓名")
	for i, subject := range subjects {
		f.SetCellValue(sheetName, cell(colName(2+i), row), subject)
	}
	f.SetCellValue(sheetName, cell(colName(2+len(subjects)), row), "均分")
	f.SetCellValue(sheetName, cell(colName(3+len(subjects)), row), "评语")

	row = 3
	for i := range students {
		st := &students[i]
		f.SetCellValue(sheetName, cell("A", row), st.Roll)
		f.SetCellValue(sheetName, cell("B", row), st.Name)

		total, count := 0.0, 0
		for si, subject := range subjects {
			mark, ok := st.Marks[subject]
			if !ok || mark.MaxMarks <= 0 {
				f.SetCellValue(sheetName, cell(colName(2+si), row), "-")
				continue
			}
			f.SetCellValue(sheetName, cell(colName(2+si), row), fmt.Sprintf("%d/%d", mark.Obtained, mark.MaxMarks))
			total += float64(mark.Obtained) / float64(mark.MaxMarks) * 100
			count++
		}

		if count > 0 {
			avg := total / float64(count)
			f.SetCellValue(sheetName, cell(colName(2+len(subjects)), row), fmt.Sprintf("%.1f%%", avg))
			f.SetCellValue(sheetName, cell(colName(3+len(subjects)), row), GetRemark(avg).Text)
		} else {
			f.SetCellValue(sheetName, cell(colName(2+len(subjects)), row), "-")
			f.SetCellValue(sheetName, cell(colName(3+len(subjects)), row), "-")
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("marks_%s_sem%d.xlsx", course, semester)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

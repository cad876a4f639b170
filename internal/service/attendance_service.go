package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendtrack/backend/internal/dto"
	"attendtrack/backend/internal/model"
	"attendtrack/backend/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceDateRequired   = errors.New("请选择日期")
	ErrAttendanceCourseRequired = errors.New("课程与学期不能为空")
	ErrAttendanceNoStudents     = errors.New("没有可点名的学生")
	ErrAttendanceBadStatus      = errors.New("出勤状态只能为 P 或 A")
	ErrSlotNotFound             = errors.New("该节考勤尚未记录")
)

// AttendanceService 考勤业务接口
//
// 台账以 (course, semester, date, slot) 为复合键；记录存在即"已点名"，
// 重复保存整体覆盖。所有百分比查询时从原始记录重算，绝不落库。
type AttendanceService interface {
	// MarkSlot 保存一节课的考勤，幂等覆盖，返回确认消息
	MarkSlot(ctx context.Context, req *dto.MarkSlotRequest) (string, error)
	IsMarked(ctx context.Context, course string, semester int, date string, slotNo int) (bool, error)
	GetSlot(ctx context.Context, course string, semester int, date string, slotNo int) (*dto.SlotResponse, error)
	// StudentSummary 扫描学生所在 course+semester 分区的全部记录，重算出勤汇总
	StudentSummary(ctx context.Context, studentID string) (*dto.AttendanceSummary, error)
	CourseSummary(ctx context.Context, course string, semester int) ([]dto.CourseAttendanceEntry, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── MarkSlot ──────────────────────

func (s *attendanceService) MarkSlot(ctx context.Context, req *dto.MarkSlotRequest) (string, error) {
	if req.Date == "" {
		return "", ErrAttendanceDateRequired
	}
	if req.Course == "" || req.Semester == 0 {
		return "", ErrAttendanceCourseRequired
	}
	if len(req.Statuses) == 0 {
		return "", ErrAttendanceNoStudents
	}
	for _, status := range req.Statuses {
		if status != "P" && status != "A" {
			return "", ErrAttendanceBadStatus
		}
	}

	slot := &model.AttendanceSlot{
		Course:   req.Course,
		Semester: req.Semester,
		Date:     req.Date,
		SlotNo:   req.SlotNo,
		Subject:  req.Subject,
		Time:     req.Time,
		Statuses: req.Statuses,
	}

	if err := s.repo.Attendance.Upsert(ctx, slot); err != nil {
		s.logger.Error("保存考勤失败",
			zap.String("course", req.Course),
			zap.Int("semester", req.Semester),
			zap.String("date", req.Date),
			zap.Int("slot", req.SlotNo),
			zap.Error(err),
		)
		return "", err
	}

	return fmt.Sprintf("第 %d 节考勤已保存（%s）", req.SlotNo, req.Subject), nil
}

// ────────────────────── IsMarked ──────────────────────

func (s *attendanceService) IsMarked(ctx context.Context, course string, semester int, date string, slotNo int) (bool, error) {
	return s.repo.Attendance.Exists(ctx, course, semester, date, slotNo)
}

// ────────────────────── GetSlot ──────────────────────

func (s *attendanceService) GetSlot(ctx context.Context, course string, semester int, date string, slotNo int) (*dto.SlotResponse, error) {
	slot, err := s.repo.Attendance.Get(ctx, course, semester, date, slotNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询考勤失败", zap.Error(err))
		return nil, err
	}

	return &dto.SlotResponse{
		Course:   slot.Course,
		Semester: slot.Semester,
		Date:     slot.Date,
		SlotNo:   slot.SlotNo,
		Subject:  slot.Subject,
		Time:     slot.Time,
		Statuses: slot.Statuses,
	}, nil
}

// ────────────────────── StudentSummary ──────────────────────

func (s *attendanceService) StudentSummary(ctx context.Context, studentID string) (*dto.AttendanceSummary, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", studentID), zap.Error(err))
		return nil, err
	}

	slots, err := s.repo.Attendance.ListByCourseSemester(ctx, student.Course, student.Semester)
	if err != nil {
		s.logger.Error("扫描考勤台账失败", zap.Error(err))
		return nil, err
	}

	summary := &dto.AttendanceSummary{Subjects: map[string]dto.SubjectAttendance{}}
	for _, slot := range slots {
		status, ok := slot.Statuses[studentID]
		if !ok {
			continue
		}
		entry := summary.Subjects[slot.Subject]
		entry.Total++
		summary.TotalLectures++
		if status == "P" {
			entry.Attended++
			summary.Attended++
		}
		summary.Subjects[slot.Subject] = entry
	}

	for subject, entry := range summary.Subjects {
		entry.Percentage = percentage(entry.Attended, entry.Total)
		summary.Subjects[subject] = entry
	}
	summary.Percentage = percentage(summary.Attended, summary.TotalLectures)

	return summary, nil
}

// ────────────────────── CourseSummary ──────────────────────

func (s *attendanceService) CourseSummary(ctx context.Context, course string, semester int) ([]dto.CourseAttendanceEntry, error) {
	students, err := s.repo.Student.ListByCourse(ctx, course, &semester)
	if err != nil {
		s.logger.Error("查询班级学生失败", zap.Error(err))
		return nil, err
	}

	entries := make([]dto.CourseAttendanceEntry, 0, len(students))
	for i := range students {
		summary, err := s.StudentSummary(ctx, students[i].StudentID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, dto.CourseAttendanceEntry{
			Student:    *dto.NewStudentResponse(&students[i]),
			Attendance: summary,
		})
	}

	return entries, nil
}

// ── 支撑工具 ──

// ClassesNeeded 计算达到 80% 出勤还需连续出席的最少节数。
// 由 present + x >= 0.80 * (total + x) 解得 x >= (0.80*total - present) / 0.20。
func ClassesNeeded(present, total int) int {
	if total == 0 {
		return 0
	}
	needed := int(math.Ceil((0.80*float64(total) - float64(present)) / 0.20))
	if needed < 0 {
		return 0
	}
	return needed
}

// percentage 出勤百分比，保留一位小数；total 为 0 时返回 0
func percentage(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(total)*100*10) / 10
}

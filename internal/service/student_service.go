package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendtrack/backend/config"
	"attendtrack/backend/internal/catalog"
	"attendtrack/backend/internal/dto"
	"attendtrack/backend/internal/model"
	"attendtrack/backend/internal/repository"
)

// ── 学生模块业务错误 ──

var (
	ErrStudentNameRequired     = errors.New("姓名不能为空")
	ErrStudentRollRequired     = errors.New("学号不能为空")
	ErrStudentCourseInvalid    = errors.New("请选择有效课程")
	ErrStudentSemesterRequired = errors.New("请选择学期")
	ErrStudentNotFound         = errors.New("学生不存在")
	ErrDuplicateRoll           = errors.New("学号已存在")

	ErrMarksSubjectRequired = errors.New("请选择科目")
	ErrMarksNegative        = errors.New("得分不能为负数")
	ErrMarksMaxInvalid      = errors.New("满分必须大于 0")
	ErrMarksExceedMax       = errors.New("得分不能超过满分")
)

// StudentService 学生花名册与成绩业务接口
//
// 花名册是全部可变状态的属主：添加经逐项校验，删除级联清理台账中
// 所有指向该学生的状态项，成绩写入成功后同步重算缓存的评语字段。
type StudentService interface {
	Add(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	// Delete 删除学生并级联移除台账中全部状态项，返回确认消息
	Delete(ctx context.Context, id string) (string, error)
	Get(ctx context.Context, id string) (*dto.StudentResponse, error)
	GetByRoll(ctx context.Context, roll string) (*dto.StudentResponse, error)
	List(ctx context.Context) ([]dto.StudentResponse, error)
	ListByCourse(ctx context.Context, course string, semester *int) ([]dto.StudentResponse, error)
	// UpdateMarks 写入单科成绩并重算评语，返回确认消息
	UpdateMarks(ctx context.Context, id string, req *dto.UpdateMarksRequest) (string, error)
	SemesterAvg(ctx context.Context, id string) (float64, error)
	Report(ctx context.Context, id string) (*dto.StudentReport, error)
}

type studentService struct {
	cfg           *config.Config
	repo          *repository.Repository
	attendanceSvc AttendanceService
	logger        *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(
	cfg *config.Config,
	repo *repository.Repository,
	attendanceSvc AttendanceService,
	logger *zap.Logger,
) StudentService {
	return &studentService{
		cfg:           cfg,
		repo:          repo,
		attendanceSvc: attendanceSvc,
		logger:        logger,
	}
}

// ────────────────────── Add ──────────────────────

func (s *studentService) Add(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	name := strings.TrimSpace(req.Name)
	roll := strings.TrimSpace(req.Roll)

	if name == "" {
		return nil, ErrStudentNameRequired
	}
	if roll == "" {
		return nil, ErrStudentRollRequired
	}
	if !catalog.IsKnownCourse(req.Course) {
		return nil, ErrStudentCourseInvalid
	}
	if req.Semester == 0 {
		return nil, ErrStudentSemesterRequired
	}

	// 学号全局唯一；冲突消息指明占用者
	if existing, err := s.repo.Student.GetByRoll(ctx, roll); err == nil {
		return nil, fmt.Errorf("%w: 学号 %q 已被 %s 占用", ErrDuplicateRoll, roll, existing.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学号失败", zap.String("roll", roll), zap.Error(err))
		return nil, err
	}

	academicYear := req.AcademicYear
	if academicYear == "" {
		academicYear = s.cfg.App.AcademicYear
	}

	id, err := s.newStudentID(ctx)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		StudentID:    id,
		Roll:         roll,
		Name:         name,
		Course:       req.Course,
		Semester:     req.Semester,
		AcademicYear: academicYear,
		Marks:        model.MarkMap{},
		Remark:       "",
	}

	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("创建学生失败", zap.String("roll", roll), zap.Error(err))
		return nil, err
	}

	return dto.NewStudentResponse(student), nil
}

// newStudentID 生成全局唯一学生 ID：高精度时间戳 base36 + 随机后缀。
// 与既有记录冲突时重试，绝不落回顺序编号。
func (s *studentService) newStudentID(ctx context.Context) (string, error) {
	const suffixChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for attempt := 0; attempt < 5; attempt++ {
		suffix := make([]byte, 4)
		for i := range suffix {
			suffix[i] = suffixChars[rand.Intn(len(suffixChars))]
		}
		id := "STU" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36)) + string(suffix)

		_, err := s.repo.Student.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("生成学生 ID 失败")
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id string) (string, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return "", err
	}

	// 删除与级联清理放在同一事务：不允许留下悬挂引用
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Student.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除学生失败", zap.String("id", id), zap.Error(err))
		return "", err
	}

	slots, err := txRepo.Attendance.ListAll(ctx)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("扫描考勤台账失败", zap.Error(err))
		return "", err
	}
	for i := range slots {
		if _, ok := slots[i].Statuses[id]; !ok {
			continue
		}
		delete(slots[i].Statuses, id)
		if err := txRepo.Attendance.Update(ctx, &slots[i]); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("清理考勤状态失败", zap.Error(err))
			return "", err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return "", err
		}
	}

	return fmt.Sprintf("已删除 %q", student.Name), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *studentService) Get(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) GetByRoll(ctx context.Context, roll string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByRoll(ctx, strings.TrimSpace(roll))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("roll", roll), zap.Error(err))
		return nil, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("查询花名册失败", zap.Error(err))
		return nil, err
	}
	return toStudentResponses(students), nil
}

func (s *studentService) ListByCourse(ctx context.Context, course string, semester *int) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.ListByCourse(ctx, course, semester)
	if err != nil {
		s.logger.Error("查询班级学生失败", zap.String("course", course), zap.Error(err))
		return nil, err
	}
	return toStudentResponses(students), nil
}

// ────────────────────── UpdateMarks ──────────────────────

func (s *studentService) UpdateMarks(ctx context.Context, id string, req *dto.UpdateMarksRequest) (string, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return "", ErrMarksSubjectRequired
	}
	if req.Obtained < 0 {
		return "", ErrMarksNegative
	}
	if req.MaxMarks <= 0 {
		return "", ErrMarksMaxInvalid
	}
	if req.Obtained > req.MaxMarks {
		return "", ErrMarksExceedMax
	}

	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return "", err
	}

	if student.Marks == nil {
		student.Marks = model.MarkMap{}
	}
	mark := model.Mark{Obtained: req.Obtained, MaxMarks: req.MaxMarks}
	student.Marks[req.Subject] = mark

	// 成绩写入后的显式重算步骤：缓存评语随本科目百分比与整体出勤率刷新
	attendance, err := s.attendanceSvc.StudentSummary(ctx, id)
	if err != nil {
		return "", err
	}
	smart := GetSmartRemark(mark.Percentage(), attendance.Percentage)
	student.Remark = smart.Text
	if smart.Advisory != "" {
		student.Remark += " | " + smart.Advisory
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("保存成绩失败", zap.String("id", id), zap.Error(err))
		return "", err
	}

	return fmt.Sprintf("%s: %d/%d 已保存", req.Subject, req.Obtained, req.MaxMarks), nil
}

// ────────────────────── SemesterAvg ──────────────────────

// SemesterAvg 学期均分：各科 obtained/max 百分比的算术平均，保留一位小数
func (s *studentService) SemesterAvg(ctx context.Context, id string) (float64, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return 0, err
	}

	total, count := 0.0, 0
	for _, mark := range student.Marks {
		if mark.MaxMarks > 0 {
			total += float64(mark.Obtained) / float64(mark.MaxMarks) * 100
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return math.Round(total/float64(count)*10) / 10, nil
}

// ────────────────────── Report ──────────────────────

func (s *studentService) Report(ctx context.Context, id string) (*dto.StudentReport, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	attendance, err := s.attendanceSvc.StudentSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	avg, err := s.SemesterAvg(ctx, id)
	if err != nil {
		return nil, err
	}

	warning := "暂无考勤数据"
	if attendance.TotalLectures > 0 {
		if attendance.Percentage < 80 {
			needed := ClassesNeeded(attendance.Attended, attendance.TotalLectures)
			warning = fmt.Sprintf("出勤不足：%.1f%%（还需出席 %d 节才能达到 80%%）", attendance.Percentage, needed)
		} else {
			warning = fmt.Sprintf("出勤安全（%.1f%%）", attendance.Percentage)
		}
	}

	courseName := student.Course
	if meta, ok := catalog.CourseByID(student.Course); ok {
		courseName = meta.Name
	}

	remark := student.Remark
	if remark == "" {
		remark = GetRemark(avg).Text
	}

	resp := dto.NewStudentResponse(student)
	return &dto.StudentReport{
		ID:                student.StudentID,
		Roll:              student.Roll,
		Name:              student.Name,
		Course:            student.Course,
		CourseName:        courseName,
		Semester:          student.Semester,
		AcademicYear:      student.AcademicYear,
		Attendance:        attendance,
		AttendanceWarning: warning,
		Marks:             resp.Marks,
		SemesterAvg:       avg,
		Remark:            remark,
	}, nil
}

// ── 内部辅助方法 ──

func toStudentResponses(students []model.Student) []dto.StudentResponse {
	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *dto.NewStudentResponse(&students[i]))
	}
	return result
}

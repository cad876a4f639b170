package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendtrack/backend/config"
	"attendtrack/backend/internal/catalog"
	"attendtrack/backend/internal/model"
	"attendtrack/backend/internal/repository"
)

// SeedService 启动引导与数据重置
//
// 引导顺序固定：版本门禁先行（结构版本不一致即全量清空并写入新版本），
// 之后在花名册为空时拉取种子数据，最后按需注入一次性演示数据。
// 演示注入以持久化标记保证幂等，重启不会重复写入。
type SeedService interface {
	Bootstrap(ctx context.Context) error
	// ResetAll 清空学生、考勤与演示标记（保留版本标记），
	// 随后重新执行种子加载与演示注入，返回确认消息
	ResetAll(ctx context.Context) (string, error)
}

type seedService struct {
	cfg          *config.Config
	repo         *repository.Repository
	timetableSvc TimetableService
	logger       *zap.Logger
	client       *http.Client
}

// NewSeedService 创建 SeedService 实例
func NewSeedService(
	cfg *config.Config,
	repo *repository.Repository,
	timetableSvc TimetableService,
	logger *zap.Logger,
) SeedService {
	timeout := cfg.Seed.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &seedService{
		cfg:          cfg,
		repo:         repo,
		timetableSvc: timetableSvc,
		logger:       logger,
		client:       &http.Client{Timeout: timeout},
	}
}

// ────────────────────── Bootstrap ──────────────────────

func (s *seedService) Bootstrap(ctx context.Context) error {
	stored, err := s.repo.AppState.Get(ctx, model.StateKeyVersion)
	if err != nil {
		return err
	}
	if stored != s.cfg.App.Version {
		s.logger.Warn("结构版本不一致，清空全部数据",
			zap.String("stored", stored),
			zap.String("current", s.cfg.App.Version),
		)
		if err := s.wipe(ctx); err != nil {
			return err
		}
		if err := s.repo.AppState.Set(ctx, model.StateKeyVersion, s.cfg.App.Version); err != nil {
			return err
		}
	}

	return s.initData(ctx)
}

// initData 花名册为空时加载种子数据，再按需注入演示数据
func (s *seedService) initData(ctx context.Context) error {
	count, err := s.repo.Student.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		if err := s.loadSeed(ctx); err != nil {
			// 种子拉取失败不阻断启动，以空数据集继续
			s.logger.Warn("种子数据加载失败，以空数据集启动", zap.Error(err))
		}
	}

	if s.cfg.Seed.DemoData {
		if err := s.injectDemoData(ctx); err != nil {
			return err
		}
	}
	return nil
}

// seedStudent 种子文件中的学生条目
type seedStudent struct {
	ID           string `json:"id"`
	Roll         string `json:"roll"`
	Name         string `json:"name"`
	Course       string `json:"course"`
	Semester     int    `json:"semester"`
	AcademicYear string `json:"academicYear"`
}

// loadSeed 拉取远程种子花名册；URL 未配置时使用内置演示花名册
func (s *seedService) loadSeed(ctx context.Context) error {
	var seeds []seedStudent

	if s.cfg.Seed.URL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Seed.URL, nil)
		if err != nil {
			return err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("种子服务返回状态码 %d", resp.StatusCode)
		}

		var payload struct {
			Students []seedStudent `json:"students"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fmt.Errorf("解析种子数据失败: %w", err)
		}
		seeds = payload.Students
	} else if s.cfg.Seed.DemoData {
		seeds = builtinRoster()
	}

	for i := range seeds {
		seed := &seeds[i]
		if seed.ID == "" || seed.Roll == "" || !catalog.IsKnownCourse(seed.Course) {
			s.logger.Warn("跳过非法种子条目", zap.String("roll", seed.Roll))
			continue
		}
		year := seed.AcademicYear
		if year == "" {
			year = s.cfg.App.AcademicYear
		}
		student := &model.Student{
			StudentID:    seed.ID,
			Roll:         seed.Roll,
			Name:         seed.Name,
			Course:       seed.Course,
			Semester:     seed.Semester,
			AcademicYear: year,
			Marks:        model.MarkMap{},
		}
		if err := s.repo.Student.Create(ctx, student); err != nil {
			s.logger.Warn("写入种子学生失败", zap.String("roll", seed.Roll), zap.Error(err))
		}
	}

	s.logger.Info("种子花名册已加载", zap.Int("count", len(seeds)))
	return nil
}

// builtinRoster 内置演示花名册，覆盖 BCA/MCA 第一学期各两人
func builtinRoster() []seedStudent {
	return []seedStudent{
		{ID: "STU001", Roll: "BCA2025001", Name: "Rahul Sharma", Course: "BCA", Semester: 1},
		{ID: "STU002", Roll: "BCA2025002", Name: "Priya Patel", Course: "BCA", Semester: 1},
		{ID: "STU003", Roll: "BCA2024015", Name: "Amit Kumar", Course: "BCA", Semester: 3},
		{ID: "STU004", Roll: "MSC2025007", Name: "Sneha Gupta", Course: "MSC_IT", Semester: 1},
		{ID: "STU005", Roll: "MCA2025003", Name: "Vikram Singh", Course: "MCA", Semester: 1},
		{ID: "STU006", Roll: "MCA2025004", Name: "Neha Verma", Course: "MCA", Semester: 1},
	}
}

// ────────────────────── 演示数据 ──────────────────────

// 演示周：2026-02-02（周一）至 2026-02-06（周五）
var demoDates = []string{"2026-02-02", "2026-02-03", "2026-02-04", "2026-02-05", "2026-02-06"}

var demoBCAPatterns = [][]string{
	{"P", "P", "P", "P", "P"},
	{"P", "A", "P", "A", "P"},
}

var demoMCAPatterns = [][]string{
	{"P", "P", "A", "P", "P"},
	{"P", "P", "P", "P", "A"},
}

var demoBCAMarks = []map[string]int{
	{"Programming in C": 85, "Mathematics-I": 72, "Digital Electronics": 68, "English Communication": 91},
	{"Programming in C": 62, "Mathematics-I": 55, "Digital Electronics": 78, "English Communication": 45},
}

var demoMCAMarks = []map[string]int{
	{"Advanced Java": 88, "Advanced DBMS": 76, "Computer Networks": 82, "Discrete Mathematics": 70},
	{"Advanced Java": 92, "Advanced DBMS": 85, "Computer Networks": 68, "Discrete Mathematics": 94},
}

func (s *seedService) injectDemoData(ctx context.Context) error {
	done, err := s.repo.AppState.Get(ctx, model.StateKeyDemoDone)
	if err != nil {
		return err
	}
	if done != "" {
		return nil
	}

	students, err := s.repo.Student.List(ctx)
	if err != nil {
		return err
	}
	if len(students) < 4 {
		return nil
	}

	var bcaSem1, mcaSem1 []model.Student
	for _, st := range students {
		switch {
		case st.Course == "BCA" && st.Semester == 1:
			bcaSem1 = append(bcaSem1, st)
		case st.Course == "MCA" && st.Semester == 1:
			mcaSem1 = append(mcaSem1, st)
		}
	}

	if err := s.fillDemoWeek(ctx, "BCA", bcaSem1, demoBCAPatterns); err != nil {
		return err
	}
	if err := s.fillDemoWeek(ctx, "MCA", mcaSem1, demoMCAPatterns); err != nil {
		return err
	}
	if err := s.fillDemoMarks(ctx, bcaSem1, catalog.Subjects("BCA", 1), demoBCAMarks, 70); err != nil {
		return err
	}
	if err := s.fillDemoMarks(ctx, mcaSem1, catalog.Subjects("MCA", 1), demoMCAMarks, 75); err != nil {
		return err
	}

	if err := s.repo.AppState.Set(ctx, model.StateKeyDemoDone, "true"); err != nil {
		return err
	}
	s.logger.Info("演示数据已注入",
		zap.Int("bca_sem1", len(bcaSem1)),
		zap.Int("mca_sem1", len(mcaSem1)),
	)
	return nil
}

// fillDemoWeek 按课表为演示周每节课写入考勤记录
func (s *seedService) fillDemoWeek(ctx context.Context, course string, students []model.Student, patterns [][]string) error {
	if len(students) == 0 {
		return nil
	}
	timetable := s.timetableSvc.Generate(course, 1)
	days := catalog.Days()

	for dayIdx, date := range demoDates {
		daySlots, ok := timetable.Days[days[dayIdx]]
		if !ok {
			continue
		}
		for _, slot := range daySlots {
			statuses := model.StatusMap{}
			for si := range students {
				pattern := patterns[0]
				if si < len(patterns) {
					pattern = patterns[si]
				}
				statuses[students[si].StudentID] = pattern[dayIdx]
			}
			record := &model.AttendanceSlot{
				Course:   course,
				Semester: 1,
				Date:     date,
				SlotNo:   slot.SlotNo,
				Subject:  slot.Subject,
				Time:     slot.Time,
				Statuses: statuses,
			}
			if err := s.repo.Attendance.Upsert(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

// fillDemoMarks 为演示学生写入固定成绩，满分一律 100
func (s *seedService) fillDemoMarks(ctx context.Context, students []model.Student, subjects []string, marksData []map[string]int, fallback int) error {
	for si := range students {
		data := marksData[0]
		if si < len(marksData) {
			data = marksData[si]
		}
		student := &students[si]
		student.Marks = model.MarkMap{}
		for _, subject := range subjects {
			obtained, ok := data[subject]
			if !ok {
				obtained = fallback
			}
			student.Marks[subject] = model.Mark{Obtained: obtained, MaxMarks: 100}
		}
		if err := s.repo.Student.Update(ctx, student); err != nil {
			return err
		}
	}
	return nil
}

// ────────────────────── ResetAll ──────────────────────

func (s *seedService) ResetAll(ctx context.Context) (string, error) {
	if err := s.wipe(ctx); err != nil {
		s.logger.Error("重置数据失败", zap.Error(err))
		return "", err
	}
	s.logger.Warn("全部业务数据已重置")

	// 清空后重走初始化：种子加载 + 演示注入
	if err := s.initData(ctx); err != nil {
		return "", err
	}
	return "所有数据已清除", nil
}

// wipe 清空学生与考勤并移除演示标记
func (s *seedService) wipe(ctx context.Context) error {
	if err := s.repo.Student.DeleteAll(ctx); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := s.repo.Attendance.DeleteAll(ctx); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.repo.AppState.Delete(ctx, model.StateKeyDemoDone)
}

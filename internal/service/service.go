package service

import (
	"go.uber.org/zap"

	"attendtrack/backend/config"
	"attendtrack/backend/internal/repository"
	"attendtrack/backend/pkg/jwt"
	"attendtrack/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Student    StudentService
	Attendance AttendanceService
	Timetable  TimetableService
	Export     ExportService
	Seed       SeedService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	attendanceSvc := NewAttendanceService(repo, logger)
	timetableSvc := NewTimetableService()

	return &Service{
		Auth:       NewAuthService(cfg, jwtMgr, rdb, logger),
		Student:    NewStudentService(cfg, repo, attendanceSvc, logger),
		Attendance: attendanceSvc,
		Timetable:  timetableSvc,
		Export:     NewExportService(repo, logger),
		Seed:       NewSeedService(cfg, repo, timetableSvc, logger),
	}
}

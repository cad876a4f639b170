package handler

import "attendtrack/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Student    *StudentHandler
	Attendance *AttendanceHandler
	Timetable  *TimetableHandler
	Catalog    *CatalogHandler
	Export     *ExportHandler
	Admin      *AdminHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Student:    NewStudentHandler(svc.Student),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Timetable:  NewTimetableHandler(svc.Timetable),
		Catalog:    NewCatalogHandler(),
		Export:     NewExportHandler(svc.Export),
		Admin:      NewAdminHandler(svc.Seed),
	}
}

package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attendtrack/backend/config"
	"attendtrack/backend/internal/api/handler"
	"attendtrack/backend/internal/api/middleware"
	"attendtrack/backend/pkg/jwt"
	"attendtrack/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": cfg.App.Version})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 登录（限流，无需认证）
		v1.POST("/auth/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 会话模块
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 静态目录模块
			catalog := authorized.Group("/catalog")
			{
				catalog.GET("/courses", h.Catalog.Courses)
				catalog.GET("/courses/:id", h.Catalog.Course)
				catalog.GET("/courses/:id/semesters", h.Catalog.Semesters)
				catalog.GET("/courses/:id/subjects", h.Catalog.Subjects)
				catalog.GET("/slots", h.Catalog.TimeSlots)
			}

			// 学生模块
			students := authorized.Group("/students")
			{
				students.GET("", h.Student.List)
				students.POST("", h.Student.Create)
				students.GET("/by-roll/:roll", h.Student.GetByRoll)
				students.GET("/:id", h.Student.Get)
				students.DELETE("/:id", h.Student.Delete)
				students.PUT("/:id/marks", h.Student.UpdateMarks)
				students.GET("/:id/semester-avg", h.Student.SemesterAvg)
				students.GET("/:id/report", h.Student.Report)
				students.GET("/:id/attendance", h.Attendance.StudentSummary)
			}

			// 考勤模块
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/slots", h.Attendance.MarkSlot)
				attendance.GET("/slots", h.Attendance.GetSlot)
				attendance.GET("/slots/marked", h.Attendance.IsMarked)
				attendance.GET("/course-summary", h.Attendance.CourseSummary)
			}

			// 课表模块
			timetable := authorized.Group("/timetable")
			{
				timetable.GET("", h.Timetable.Get)
				timetable.GET("/export.ics", h.Timetable.ExportICS)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/attendance", h.Export.ExportAttendance)
				export.GET("/marks", h.Export.ExportMarks)
			}

			// 管理模块
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth("admin"))
			{
				admin.POST("/reset", h.Admin.Reset)
			}
		}
	}

	return r
}

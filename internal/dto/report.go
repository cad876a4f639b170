package dto

// ── 学生报告 DTO ──

// StudentReport 单个学生的完整报告
// 出勤/均分等衍生指标均为查询时重算，Remark 未缓存时按均分回退
type StudentReport struct {
	ID                string                  `json:"id"`
	Roll              string                  `json:"roll"`
	Name              string                  `json:"name"`
	Course            string                  `json:"course"`
	CourseName        string                  `json:"course_name"`
	Semester          int                     `json:"semester"`
	AcademicYear      string                  `json:"academic_year"`
	Attendance        *AttendanceSummary      `json:"attendance"`
	AttendanceWarning string                  `json:"attendance_warning"`
	Marks             map[string]MarkResponse `json:"marks"`
	SemesterAvg       float64                 `json:"semester_avg"`
	Remark            string                  `json:"remark"`
}

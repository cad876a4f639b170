package dto

import "attendtrack/backend/internal/model"

// ── 学生模块 DTO ──

// CreateStudentRequest 添加学生请求
// 逐项校验及提示语在 Service 层完成，与既有交互约定保持一致
type CreateStudentRequest struct {
	Roll         string `json:"roll"`
	Name         string `json:"name"`
	Course       string `json:"course"`
	Semester     int    `json:"semester"`
	AcademicYear string `json:"academic_year"`
}

// UpdateMarksRequest 成绩录入请求
type UpdateMarksRequest struct {
	Subject  string `json:"subject"`
	Obtained int    `json:"obtained"`
	MaxMarks int    `json:"max_marks"`
}

// MarkResponse 单科成绩响应
type MarkResponse struct {
	Obtained   int     `json:"obtained"`
	MaxMarks   int     `json:"max_marks"`
	Percentage float64 `json:"percentage"`
}

// StudentResponse 学生响应
type StudentResponse struct {
	ID           string                  `json:"id"`
	Roll         string                  `json:"roll"`
	Name         string                  `json:"name"`
	Course       string                  `json:"course"`
	Semester     int                     `json:"semester"`
	AcademicYear string                  `json:"academic_year"`
	Marks        map[string]MarkResponse `json:"marks"`
	Remark       string                  `json:"remark"`
	CreatedAt    string                  `json:"created_at"`
}

// NewStudentResponse 由模型构造响应
func NewStudentResponse(s *model.Student) *StudentResponse {
	marks := make(map[string]MarkResponse, len(s.Marks))
	for subject, m := range s.Marks {
		marks[subject] = MarkResponse{
			Obtained:   m.Obtained,
			MaxMarks:   m.MaxMarks,
			Percentage: m.Percentage(),
		}
	}
	return &StudentResponse{
		ID:           s.StudentID,
		Roll:         s.Roll,
		Name:         s.Name,
		Course:       s.Course,
		Semester:     s.Semester,
		AcademicYear: s.AcademicYear,
		Marks:        marks,
		Remark:       s.Remark,
		CreatedAt:    s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

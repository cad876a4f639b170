// Package catalog 静态参考目录：课程元数据、课程表、节次时间。
// 进程启动时定义一次，只读；Record Store 的校验与课表生成均以此为准。
package catalog

import (
	"strconv"
	"time"
)

// CourseMeta 课程（学位项目）元数据
type CourseMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"` // UG | PG | PG Diploma | Research
	Duration  int    `json:"duration"`
	Semesters int    `json:"semesters"`
	Intake    int    `json:"intake"`
	Credits   int    `json:"credits"`
}

// TimeSlot 一日内的固定节次
type TimeSlot struct {
	No    int    `json:"slot"`
	Label string `json:"time"`  // 原始展示用时间段
	Start string `json:"start"` // 24 小时制，供 ICS 导出
	End   string `json:"end"`
}

// SemesterOption 学期下拉选项
type SemesterOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

var courseOrder = []string{"BCA", "MCA", "MSC_IT", "PGDCA", "PHD"}

var courses = map[string]CourseMeta{
	"BCA":    {ID: "BCA", Name: "Bachelor of Computer Applications", Type: "UG", Duration: 3, Semesters: 6, Intake: 60, Credits: 120},
	"MCA":    {ID: "MCA", Name: "Master of Computer Application", Type: "PG", Duration: 2, Semesters: 4, Intake: 60, Credits: 80},
	"MSC_IT": {ID: "MSC_IT", Name: "M.Sc. IT", Type: "PG", Duration: 2, Semesters: 4, Intake: 60, Credits: 80},
	"PGDCA":  {ID: "PGDCA", Name: "PGDCA", Type: "PG Diploma", Duration: 1, Semesters: 2, Intake: 30, Credits: 40},
	"PHD":    {ID: "PHD", Name: "Ph.D.", Type: "Research", Duration: 0, Semesters: 0, Intake: 0, Credits: 0},
}

var curriculum = map[string]map[int][]string{
	"BCA": {
		1: {"Programming in C", "Mathematics-I", "Digital Electronics", "English Communication"},
		2: {"Data Structures", "Mathematics-II", "Computer Organization", "Environmental Science"},
		3: {"OOP with Java", "DBMS", "Operating Systems", "Discrete Mathematics"},
		4: {"Python Programming", "Computer Networks", "Software Engineering", "Web Technology"},
		5: {"Cloud Computing", "Machine Learning Basics", "Cyber Security", "Project-I"},
		6: {"Artificial Intelligence", "Mobile App Dev", "Project-II", "Internship"},
	},
	"MCA": {
		1: {"Advanced Java", "Advanced DBMS", "Computer Networks", "Discrete Mathematics"},
		2: {"Python for Data Science", "Software Engineering", "Web Technologies", "Operating Systems"},
		3: {"Machine Learning", "Cloud Computing", "Cyber Security", "Minor Project"},
		4: {"Major Project", "Seminar", "Elective-I", "Elective-II"},
	},
	"MSC_IT": {
		1: {"Advanced Programming", "Database Systems", "Networking", "IT Project Management"},
		2: {"Data Mining", "Information Security", "Web Development", "Research Methodology"},
		3: {"Big Data Analytics", "IoT", "Cloud Infrastructure", "Mini Project"},
		4: {"Dissertation", "Seminar", "Elective-I", "Elective-II"},
	},
	"PGDCA": {
		1: {"Computer Fundamentals", "Programming in C", "Database Management", "Office Automation"},
		2: {"Web Design", "Visual Basic", "Tally ERP", "Project Work"},
	},
	"PHD": {
		1: {"Research Methodology", "Literature Survey"},
		2: {"Thesis Work-I", "Publication"},
		3: {"Thesis Work-II", "Final Defense"},
	},
}

var timeSlots = []TimeSlot{
	{No: 1, Label: "09:00 - 10:00", Start: "09:00", End: "10:00"},
	{No: 2, Label: "10:00 - 11:00", Start: "10:00", End: "11:00"},
	{No: 3, Label: "11:15 - 12:15", Start: "11:15", End: "12:15"},
	{No: 4, Label: "12:15 - 01:15", Start: "12:15", End: "13:15"},
	{No: 5, Label: "02:00 - 03:00", Start: "14:00", End: "15:00"},
}

var days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Courses 返回全部课程元数据（固定顺序）
func Courses() []CourseMeta {
	result := make([]CourseMeta, 0, len(courseOrder))
	for _, id := range courseOrder {
		result = append(result, courses[id])
	}
	return result
}

// CourseByID 按 ID 查询课程元数据
func CourseByID(id string) (CourseMeta, bool) {
	c, ok := courses[id]
	return c, ok
}

// IsKnownCourse 课程 ID 是否存在
func IsKnownCourse(id string) bool {
	_, ok := courses[id]
	return ok
}

// Subjects 返回某课程某学期的科目列表；未定义时返回空切片
func Subjects(course string, semester int) []string {
	if sems, ok := curriculum[course]; ok {
		if subjects, ok := sems[semester]; ok {
			out := make([]string, len(subjects))
			copy(out, subjects)
			return out
		}
	}
	return []string{}
}

// SemesterOptions 返回某课程的学期选项
// 研究型课程（PHD）以"Year N"呈现三个学年，其余按学期数展开
func SemesterOptions(course string) []SemesterOption {
	meta, ok := courses[course]
	if !ok {
		return []SemesterOption{}
	}
	if meta.Type == "Research" {
		return []SemesterOption{
			{Value: 1, Label: "Year 1"},
			{Value: 2, Label: "Year 2"},
			{Value: 3, Label: "Year 3"},
		}
	}
	opts := make([]SemesterOption, 0, meta.Semesters)
	for i := 1; i <= meta.Semesters; i++ {
		opts = append(opts, SemesterOption{Value: i, Label: "Semester " + strconv.Itoa(i)})
	}
	return opts
}

// TimeSlots 返回一日内的固定节次
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// Days 返回教学日列表（周一至周五）
func Days() []string {
	out := make([]string, len(days))
	copy(out, days)
	return out
}

// DayName 返回 YYYY-MM-DD 日期对应的英文星期名；解析失败返回空串
func DayName(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

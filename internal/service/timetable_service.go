package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"attendtrack/backend/internal/catalog"
	"attendtrack/backend/internal/dto"
)

// ── 课表模块业务错误 ──

var (
	ErrTimetableNoSubjects = errors.New("该课程该学期未定义科目")
	ErrTimetableBadDate    = errors.New("周起始日期无效")
)

// TimetableService 周课表生成与导出
//
// 生成规则：每周 5 个教学日 × 每日 5 节；科目按全周 25 节的运行计数
// 对科目数取模轮转分配，科目不足 5 门时同一科目一天内可重复出现；
// 每日第 5 节固定为 Lab，其余为 Lecture。纯函数，结果只取决于科目表。
type TimetableService interface {
	Generate(course string, semester int) *dto.TimetableResponse
	// ExportICS 以 weekStart（周一，YYYY-MM-DD）为起点导出一周课表
	ExportICS(course string, semester int, weekStart string) (*bytes.Buffer, string, error)
}

type timetableService struct{}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService() TimetableService {
	return &timetableService{}
}

func (s *timetableService) Generate(course string, semester int) *dto.TimetableResponse {
	resp := &dto.TimetableResponse{
		Course:   course,
		Semester: semester,
		Days:     map[string][]dto.TimetableSlot{},
	}

	subjects := catalog.Subjects(course, semester)
	if len(subjects) == 0 {
		return resp
	}

	slots := catalog.TimeSlots()
	idx := 0
	for _, day := range catalog.Days() {
		daySlots := make([]dto.TimetableSlot, 0, len(slots))
		for _, ts := range slots {
			slotType := "Lecture"
			if ts.No == 5 {
				slotType = "Lab"
			}
			daySlots = append(daySlots, dto.TimetableSlot{
				SlotNo:  ts.No,
				Time:    ts.Label,
				Subject: subjects[idx%len(subjects)],
				Type:    slotType,
			})
			idx++
		}
		resp.Days[day] = daySlots
	}

	return resp
}

func (s *timetableService) ExportICS(course string, semester int, weekStart string) (*bytes.Buffer, string, error) {
	timetable := s.Generate(course, semester)
	if len(timetable.Days) == 0 {
		return nil, "", ErrTimetableNoSubjects
	}

	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil || start.Weekday() != time.Monday {
		return nil, "", ErrTimetableBadDate
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//AttendTrack//Timetable//EN")

	slots := catalog.TimeSlots()
	slotTimes := make(map[int]catalog.TimeSlot, len(slots))
	for _, ts := range slots {
		slotTimes[ts.No] = ts
	}

	now := time.Now()
	for dayOffset, day := range catalog.Days() {
		date := start.AddDate(0, 0, dayOffset)
		for _, slot := range timetable.Days[day] {
			ts := slotTimes[slot.SlotNo]
			eventStart, err := parseSlotTime(date, ts.Start)
			if err != nil {
				return nil, "", err
			}
			eventEnd, err := parseSlotTime(date, ts.End)
			if err != nil {
				return nil, "", err
			}

			uid := fmt.Sprintf("%s-%d-%s-%d@attendtrack", course, semester, date.Format("20060102"), slot.SlotNo)
			event := cal.AddEvent(uid)
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetStartAt(eventStart)
			event.SetEndAt(eventEnd)
			event.SetSummary(slot.Subject)
			event.SetDescription(fmt.Sprintf("%s | %s Semester %d | Slot %d (%s)", slot.Type, course, semester, slot.SlotNo, slot.Time))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("timetable_%s_sem%d_%s.ics", course, semester, weekStart)
	return buf, filename, nil
}

// parseSlotTime 将 HH:MM 叠加到具体日期（本地时区）
func parseSlotTime(date time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, fmt.Errorf("节次时间格式无效 %q: %w", hm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

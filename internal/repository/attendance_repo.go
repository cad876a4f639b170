package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendtrack/backend/internal/model"
)

// AttendanceRepository 考勤台账数据访问接口
type AttendanceRepository interface {
	// Upsert 按 (course, semester, date, slot_no) 整体覆盖写入
	Upsert(ctx context.Context, slot *model.AttendanceSlot) error
	Get(ctx context.Context, course string, semester int, date string, slotNo int) (*model.AttendanceSlot, error)
	Exists(ctx context.Context, course string, semester int, date string, slotNo int) (bool, error)
	ListByCourseSemester(ctx context.Context, course string, semester int) ([]model.AttendanceSlot, error)
	ListAll(ctx context.Context) ([]model.AttendanceSlot, error)
	Update(ctx context.Context, slot *model.AttendanceSlot) error
	DeleteAll(ctx context.Context) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Upsert(ctx context.Context, slot *model.AttendanceSlot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "course"}, {Name: "semester"}, {Name: "date"}, {Name: "slot_no"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"subject", "time", "statuses", "updated_at"}),
		}).
		Create(slot).Error
}

func (r *attendanceRepo) Get(ctx context.Context, course string, semester int, date string, slotNo int) (*model.AttendanceSlot, error) {
	var slot model.AttendanceSlot
	err := r.db.WithContext(ctx).
		Where("course = ? AND semester = ? AND date = ? AND slot_no = ?", course, semester, date, slotNo).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *attendanceRepo) Exists(ctx context.Context, course string, semester int, date string, slotNo int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceSlot{}).
		Where("course = ? AND semester = ? AND date = ? AND slot_no = ?", course, semester, date, slotNo).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *attendanceRepo) ListByCourseSemester(ctx context.Context, course string, semester int) ([]model.AttendanceSlot, error) {
	var slots []model.AttendanceSlot
	err := r.db.WithContext(ctx).
		Where("course = ? AND semester = ?", course, semester).
		Order("date ASC, slot_no ASC").
		Find(&slots).Error
	return slots, err
}

func (r *attendanceRepo) ListAll(ctx context.Context) ([]model.AttendanceSlot, error) {
	var slots []model.AttendanceSlot
	err := r.db.WithContext(ctx).
		Order("date ASC, slot_no ASC").
		Find(&slots).Error
	return slots, err
}

func (r *attendanceRepo) Update(ctx context.Context, slot *model.AttendanceSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *attendanceRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.AttendanceSlot{}).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"attendtrack/backend/internal/model"
)

// StudentRepository 学生花名册数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByRoll(ctx context.Context, roll string) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	ListByCourse(ctx context.Context, course string, semester *int) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByRoll(ctx context.Context, roll string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("roll = ?", roll).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&students).Error
	return students, err
}

// ListByCourse 按课程过滤，semester 非 nil 时附加精确学期匹配
func (r *studentRepo) ListByCourse(ctx context.Context, course string, semester *int) ([]model.Student, error) {
	q := r.db.WithContext(ctx).Where("course = ?", course)
	if semester != nil {
		q = q.Where("semester = ?", *semester)
	}
	var students []model.Student
	err := q.Order("roll ASC").Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", id).
		Delete(&model.Student{}).Error
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&n).Error
	return n, err
}

func (r *studentRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.Student{}).Error
}

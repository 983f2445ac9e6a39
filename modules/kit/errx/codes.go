package errx

// 系统类错误码统一定义在 kit；业务域错误码（ORDER_NOT_FOUND 之类）
// 由各业务包自己用 NewBiz 声明，不往这里集中。

const (
	// CodeInternal 服务内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 依赖不可用（MySQL/Mongo/网络异常等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 请求或依赖调用超时。
	CodeTimeout Code = "TIMEOUT"
)

// 系统类哨兵错误。WithData/WithCause 派生的副本按错误码与哨兵匹配。
var (
	ErrInternal    = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout     = NewSys(CodeTimeout, "请求超时")
)

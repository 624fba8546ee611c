package response

// AppError 处理器层错误：业务码、已翻译消息、可选业务数据与原始错误
type AppError struct {
	Code    int
	Message string
	Data    map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Internal 是否为需要记录原始错误的服务端错误
func (e *AppError) Internal() bool {
	return e != nil && e.Code >= CodeInternal
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// WithData 附加业务数据
func (e *AppError) WithData(data map[string]interface{}) *AppError {
	e.Data = data
	return e
}

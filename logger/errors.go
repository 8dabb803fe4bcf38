package logger

import "errors"

// 预定义错误常量.
var (
	// ErrCreateDir 创建日志目录失败.
	ErrCreateDir = errors.New("创建日志目录失败")

	// ErrOpenFile 打开日志文件失败.
	ErrOpenFile = errors.New("打开日志文件失败")
)

// ConfigError 配置错误.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return "logger config error [" + e.Field + "]: " + e.Message + ": " + e.Err.Error()
	}
	return "logger config error [" + e.Field + "]: " + e.Message
}

// Unwrap 返回底层错误.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

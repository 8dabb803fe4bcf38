package metrics

import "errors"

// 预定义错误常量.
var (
	// ErrNilConfig 配置为空.
	ErrNilConfig = errors.New("指标配置为空")

	// ErrRegisterMetric 注册指标失败.
	ErrRegisterMetric = errors.New("注册指标失败")
)

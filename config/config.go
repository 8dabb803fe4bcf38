// Package config 提供基于 viper 的配置加载功能.
package config

import (
	"errors"
	"path/filepath"
	"strings"
)

// 加载失败时返回的错误，调用方用 errors.Is 判断.
// ErrValidation 包装 Validatable.Validate 返回的错误.
var (
	ErrFileNotFound = errors.New("配置文件不存在")
	ErrInvalidType  = errors.New("不支持的配置文件类型")
	ErrReadConfig   = errors.New("读取配置失败")
	ErrUnmarshal    = errors.New("解析配置失败")
	ErrValidation   = errors.New("配置验证失败")
)

// Validatable 可验证的配置接口.
// 加载结果实现该接口时会在返回前自动验证.
type Validatable interface {
	Validate() error
}

// Defaulter 可填充默认值的配置接口，在验证之前调用.
type Defaulter interface {
	ApplyDefaults()
}

// GetConfigType 根据文件扩展名获取配置类型.
func GetConfigType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	case ".env":
		return "env"
	default:
		return ""
	}
}

package metrics

// Config 指标配置.
type Config struct {
	// Namespace 指标命名空间
	Namespace string `json:"namespace" yaml:"namespace" mapstructure:"namespace"`
	// Enabled 命令结束时以 Prometheus 文本格式输出收集到的指标
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
}

// DefaultConfig 返回默认配置，默认不输出指标.
func DefaultConfig() *Config {
	return &Config{
		Namespace: "gradebook",
	}
}

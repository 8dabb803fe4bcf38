package gradebook

import (
	"fmt"
	"math"

	"github.com/Tsukikage7/bstree/config"
	"github.com/Tsukikage7/bstree/logger"
	"github.com/Tsukikage7/bstree/metrics"
)

// EnvPrefix 环境变量前缀，例如 GRADEBOOK_LOGGER_LEVEL=debug.
const EnvPrefix = "GRADEBOOK"

// Grade 一条成绩记录.
type Grade struct {
	Student string  `json:"student" yaml:"student" mapstructure:"student"`
	Grade   float64 `json:"grade" yaml:"grade" mapstructure:"grade"`
}

// Config 成绩册配置.
type Config struct {
	// Name 成绩册名称，用作日志字段和指标标签
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	// Verify 每次修改后检查树结构
	Verify bool `json:"verify" yaml:"verify" mapstructure:"verify"`
	// Seed 初始成绩
	Seed []Grade `json:"seed" yaml:"seed" mapstructure:"seed"`

	Logger  *logger.Config  `json:"logger" yaml:"logger" mapstructure:"logger"`
	Metrics *metrics.Config `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
}

// DemoSeed 演示用的五条成绩，按此顺序插入得到高度为 3 的树.
func DemoSeed() []Grade {
	return []Grade{
		{Student: "Ricardo", Grade: 2.5},
		{Student: "Ellen", Grade: 3.5},
		{Student: "Chen", Grade: 2.5},
		{Student: "Kevin", Grade: 3.25},
		{Student: "Kumar", Grade: 3.05},
	}
}

// ApplyDefaults 应用默认值.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "primary"
	}
	if c.Seed == nil {
		c.Seed = DemoSeed()
	}
	if c.Logger == nil {
		c.Logger = logger.DefaultConfig()
	}
	if c.Metrics == nil {
		c.Metrics = metrics.DefaultConfig()
	}
}

// Validate 验证配置.
func (c *Config) Validate() error {
	for i, g := range c.Seed {
		if g.Student == "" {
			return fmt.Errorf("seed[%d]: student is empty", i)
		}
		if math.IsNaN(g.Grade) || math.IsInf(g.Grade, 0) {
			return fmt.Errorf("seed[%d]: grade of %s is not a finite number", i, g.Student)
		}
	}
	if c.Logger != nil {
		if err := c.Logger.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// defaultSettings 为已知键提供默认值，使环境变量覆盖对这些键生效.
func defaultSettings() map[string]any {
	return map[string]any{
		"name":              "primary",
		"verify":            false,
		"logger.level":      logger.LevelInfo,
		"logger.format":     logger.FormatConsole,
		"logger.output":     logger.OutputConsole,
		"metrics.enabled":   false,
		"metrics.namespace": "gradebook",
	}
}

// LoadConfig 加载配置. path 为空时只使用默认值与环境变量.
func LoadConfig(path string) (*Config, error) {
	opts := []config.Option{
		config.WithEnvPrefix(EnvPrefix),
		config.WithDefaults(defaultSettings()),
	}

	var (
		cfg *Config
		err error
	)
	if path == "" {
		cfg, err = config.LoadDefaults[Config](opts...)
	} else {
		cfg, err = config.Load[Config](path, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("load gradebook config: %w", err)
	}
	return cfg, nil
}

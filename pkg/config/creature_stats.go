package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// MaxToughness 生物强度阶数上限
const MaxToughness = 5

// CreatureStats 单个生物类型的属性配置
type CreatureStats struct {
	ID          string  `yaml:"-"`           // 生物 ID（由映射键填充）
	Name        string  `yaml:"name"`        // 显示名称
	BaseHealth  float64 `yaml:"baseHealth"`  // 基础血量
	Speed       float64 `yaml:"speed"`       // 移动速度（像素/秒）
	Damage      float64 `yaml:"damage"`      // 接触伤害
	SpawnWeight int     `yaml:"spawnWeight"` // 随机生成权重，0 表示只能由脚本生成
	MinWave     int     `yaml:"minWave"`     // 最早出现的有效波次
	Toughness   int     `yaml:"toughness"`   // 强度阶数（1-5）
	ScoreValue  int     `yaml:"scoreValue"`  // 基础击杀分
	Experience  int     `yaml:"experience"`  // 击杀经验
	Boss        bool    `yaml:"boss"`        // 是否为首领
}

// CreatureStatsConfig 生物属性配置文件结构
type CreatureStatsConfig struct {
	Creatures map[string]CreatureStats `yaml:"creatures"` // 生物 ID 到属性的映射

	ids []string
}

// LoadCreatureStats 从 YAML 文件加载生物属性配置
// 参数：
//
//	path - 配置文件路径（data/ 下的嵌入路径或本地路径）
//
// 返回：
//
//	*CreatureStatsConfig - 解析并校验后的配置
//	error - 文件读取、解析或校验失败时返回错误
func LoadCreatureStats(path string) (*CreatureStatsConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read creature stats file %s: %w", path, err)
	}

	config, err := ParseCreatureStats(data)
	if err != nil {
		return nil, fmt.Errorf("invalid creature stats in %s: %w", path, err)
	}
	return config, nil
}

// ParseCreatureStats 解析并校验生物属性 YAML
func ParseCreatureStats(data []byte) (*CreatureStatsConfig, error) {
	var config CreatureStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse creature stats YAML: %w", err)
	}

	if err := validateCreatureStats(&config); err != nil {
		return nil, err
	}

	config.ids = make([]string, 0, len(config.Creatures))
	for id, stats := range config.Creatures {
		stats.ID = id
		config.Creatures[id] = stats
		config.ids = append(config.ids, id)
	}
	sort.Strings(config.ids)

	return &config, nil
}

// validateCreatureStats 验证生物属性配置的完整性和合法性
func validateCreatureStats(config *CreatureStatsConfig) error {
	if len(config.Creatures) == 0 {
		return fmt.Errorf("at least one creature type is required")
	}

	spawnable := 0
	for id, stats := range config.Creatures {
		if stats.BaseHealth <= 0 {
			return fmt.Errorf("creature %s: baseHealth must be positive, got %v", id, stats.BaseHealth)
		}
		if stats.Speed < 0 {
			return fmt.Errorf("creature %s: speed cannot be negative, got %v", id, stats.Speed)
		}
		if stats.Damage < 0 {
			return fmt.Errorf("creature %s: damage cannot be negative, got %v", id, stats.Damage)
		}
		if stats.SpawnWeight < 0 {
			return fmt.Errorf("creature %s: spawnWeight cannot be negative, got %d", id, stats.SpawnWeight)
		}
		if stats.MinWave < 1 {
			return fmt.Errorf("creature %s: minWave must be at least 1, got %d", id, stats.MinWave)
		}
		if stats.Toughness < 1 || stats.Toughness > MaxToughness {
			return fmt.Errorf("creature %s: toughness must be within [1, %d], got %d", id, MaxToughness, stats.Toughness)
		}
		if stats.ScoreValue < 0 || stats.Experience < 0 {
			return fmt.Errorf("creature %s: scoreValue and experience cannot be negative", id)
		}
		if stats.SpawnWeight > 0 {
			spawnable++
		}
	}

	if spawnable == 0 {
		return fmt.Errorf("at least one creature must have a positive spawnWeight")
	}
	return nil
}

// Get 获取指定生物的属性
// 不存在时返回包装了 ErrNotFound 的错误
func (c *CreatureStatsConfig) Get(id string) (CreatureStats, error) {
	stats, ok := c.Creatures[id]
	if !ok {
		return CreatureStats{}, notFound("creature", id)
	}
	return stats, nil
}

// IDs 返回按字典序排列的所有生物 ID
// 固定顺序保证加权抽样在相同种子下可复现
func (c *CreatureStatsConfig) IDs() []string {
	return c.ids
}

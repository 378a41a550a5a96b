package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// WeaponStats 单个武器的属性配置
type WeaponStats struct {
	ID                 string  `yaml:"-"`
	Name               string  `yaml:"name"`
	Damage             float64 `yaml:"damage"`             // 单发伤害
	FireRate           float64 `yaml:"fireRate"`           // 每秒射击次数
	ProjectileSpeed    float64 `yaml:"projectileSpeed"`    // 弹丸速度
	Spread             float64 `yaml:"spread"`             // 散布角（弧度）
	ProjectilesPerShot int     `yaml:"projectilesPerShot"` // 每次射击的弹丸数
	AmmoCapacity       int     `yaml:"ammoCapacity"`       // 弹匣容量，0 表示无限
	ReloadTime         float64 `yaml:"reloadTime"`         // 换弹时间（秒）
	PierceCount        int     `yaml:"pierceCount"`        // 穿透数
	ExplosiveRadius    float64 `yaml:"explosiveRadius"`    // 爆炸半径，0 表示无爆炸
	DropWeight         int     `yaml:"dropWeight"`         // 生存模式掉落权重，0 表示不掉落
}

// WeaponStatsConfig 武器配置文件结构
type WeaponStatsConfig struct {
	DefaultWeapon string                 `yaml:"defaultWeapon"`
	Weapons       map[string]WeaponStats `yaml:"weapons"`

	ids []string
}

// LoadWeaponStats 从 YAML 文件加载武器配置
func LoadWeaponStats(path string) (*WeaponStatsConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weapon stats file %s: %w", path, err)
	}

	config, err := ParseWeaponStats(data)
	if err != nil {
		return nil, fmt.Errorf("invalid weapon stats in %s: %w", path, err)
	}
	return config, nil
}

// ParseWeaponStats 解析并校验武器 YAML
func ParseWeaponStats(data []byte) (*WeaponStatsConfig, error) {
	var config WeaponStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse weapon stats YAML: %w", err)
	}

	if err := validateWeaponStats(&config); err != nil {
		return nil, err
	}

	config.ids = make([]string, 0, len(config.Weapons))
	for id, stats := range config.Weapons {
		stats.ID = id
		if stats.ProjectilesPerShot == 0 {
			stats.ProjectilesPerShot = 1
		}
		config.Weapons[id] = stats
		config.ids = append(config.ids, id)
	}
	sort.Strings(config.ids)

	return &config, nil
}

func validateWeaponStats(config *WeaponStatsConfig) error {
	if len(config.Weapons) == 0 {
		return fmt.Errorf("at least one weapon is required")
	}
	if _, ok := config.Weapons[config.DefaultWeapon]; !ok {
		return fmt.Errorf("defaultWeapon %q is not defined", config.DefaultWeapon)
	}

	for id, w := range config.Weapons {
		if w.Damage <= 0 {
			return fmt.Errorf("weapon %s: damage must be positive, got %v", id, w.Damage)
		}
		if w.FireRate <= 0 {
			return fmt.Errorf("weapon %s: fireRate must be positive, got %v", id, w.FireRate)
		}
		if w.ProjectilesPerShot < 0 || w.AmmoCapacity < 0 || w.PierceCount < 0 {
			return fmt.Errorf("weapon %s: counts cannot be negative", id)
		}
		if w.ReloadTime < 0 || w.Spread < 0 || w.ExplosiveRadius < 0 {
			return fmt.Errorf("weapon %s: reloadTime, spread and explosiveRadius cannot be negative", id)
		}
		if w.DropWeight < 0 {
			return fmt.Errorf("weapon %s: dropWeight cannot be negative, got %d", id, w.DropWeight)
		}
	}
	return nil
}

// Get 获取指定武器的属性
func (c *WeaponStatsConfig) Get(id string) (WeaponStats, error) {
	stats, ok := c.Weapons[id]
	if !ok {
		return WeaponStats{}, notFound("weapon", id)
	}
	return stats, nil
}

// IDs 返回按字典序排列的武器 ID
func (c *WeaponStatsConfig) IDs() []string {
	return c.ids
}

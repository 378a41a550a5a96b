package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// PerkRarity 技能稀有度
type PerkRarity string

const (
	RarityCommon   PerkRarity = "common"
	RarityUncommon PerkRarity = "uncommon"
	RarityRare     PerkRarity = "rare"
	RarityEpic     PerkRarity = "epic"
)

// Weight 返回稀有度对应的抽取权重，未知稀有度返回 0
func (r PerkRarity) Weight() int {
	switch r {
	case RarityCommon:
		return 60
	case RarityUncommon:
		return 25
	case RarityRare:
		return 10
	case RarityEpic:
		return 5
	}
	return 0
}

// PerkEffects 技能每层带来的属性变化
// 比例字段以小数表示（0.1 = 10%）
type PerkEffects struct {
	Damage       float64 `yaml:"damage"`       // 伤害加成
	FireRate     float64 `yaml:"fireRate"`     // 射速加成
	Speed        float64 `yaml:"speed"`        // 移动速度加成
	Range        float64 `yaml:"range"`        // 射程加成
	Explosive    float64 `yaml:"explosive"`    // 爆炸伤害加成
	Experience   float64 `yaml:"experience"`   // 经验获取加成
	MaxHealth    float64 `yaml:"maxHealth"`    // 最大生命值
	Regeneration float64 `yaml:"regeneration"` // 每秒回复生命值
	Revives      int     `yaml:"revives"`      // 致命伤害时以 1 点生命值存活的次数
	Reload       float64 `yaml:"reload"`       // 换弹时间缩短比例，[0, 1)
	Armor        float64 `yaml:"armor"`        // 受到伤害减免比例，[0, 1)
	Slow         float64 `yaml:"slow"`         // 生物移动减速比例，[0, 1)
}

func (e PerkEffects) validate() error {
	additive := []struct {
		name  string
		value float64
	}{
		{"damage", e.Damage},
		{"fireRate", e.FireRate},
		{"speed", e.Speed},
		{"range", e.Range},
		{"explosive", e.Explosive},
		{"experience", e.Experience},
		{"maxHealth", e.MaxHealth},
		{"regeneration", e.Regeneration},
		{"revives", float64(e.Revives)},
	}
	for _, f := range additive {
		if f.value < 0 {
			return fmt.Errorf("effect %s cannot be negative, got %v", f.name, f.value)
		}
	}

	fractions := []struct {
		name  string
		value float64
	}{
		{"reload", e.Reload},
		{"armor", e.Armor},
		{"slow", e.Slow},
	}
	for _, f := range fractions {
		if f.value < 0 || f.value >= 1 {
			return fmt.Errorf("effect %s must be in [0, 1), got %v", f.name, f.value)
		}
	}
	return nil
}

// PerkStats 单个技能的配置
type PerkStats struct {
	ID          string      `yaml:"-"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Stackable   bool        `yaml:"stackable"`
	MaxStacks   int         `yaml:"maxStacks"` // 可叠加技能的最大层数
	Rarity      PerkRarity  `yaml:"rarity"`
	Effects     PerkEffects `yaml:"effects"` // 每层效果
}

// StackLimit 返回技能可持有的最大层数
func (p PerkStats) StackLimit() int {
	if !p.Stackable || p.MaxStacks < 1 {
		return 1
	}
	return p.MaxStacks
}

// PerkStatsConfig 技能配置文件结构
type PerkStatsConfig struct {
	Perks map[string]PerkStats `yaml:"perks"`

	ids []string
}

// LoadPerkStats 从 YAML 文件加载技能配置
func LoadPerkStats(path string) (*PerkStatsConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read perk stats file %s: %w", path, err)
	}

	config, err := ParsePerkStats(data)
	if err != nil {
		return nil, fmt.Errorf("invalid perk stats in %s: %w", path, err)
	}
	return config, nil
}

// ParsePerkStats 解析并校验技能 YAML
func ParsePerkStats(data []byte) (*PerkStatsConfig, error) {
	var config PerkStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse perk stats YAML: %w", err)
	}

	if len(config.Perks) == 0 {
		return nil, fmt.Errorf("at least one perk is required")
	}

	config.ids = make([]string, 0, len(config.Perks))
	for id, perk := range config.Perks {
		if perk.Rarity.Weight() == 0 {
			return nil, fmt.Errorf("perk %s: unknown rarity %q", id, perk.Rarity)
		}
		if perk.MaxStacks < 0 {
			return nil, fmt.Errorf("perk %s: maxStacks cannot be negative, got %d", id, perk.MaxStacks)
		}
		if err := perk.Effects.validate(); err != nil {
			return nil, fmt.Errorf("perk %s: %w", id, err)
		}
		perk.ID = id
		config.Perks[id] = perk
		config.ids = append(config.ids, id)
	}
	sort.Strings(config.ids)

	return &config, nil
}

// Get 获取指定技能
func (c *PerkStatsConfig) Get(id string) (PerkStats, error) {
	perk, ok := c.Perks[id]
	if !ok {
		return PerkStats{}, notFound("perk", id)
	}
	return perk, nil
}

// IDs 返回按字典序排列的技能 ID
func (c *PerkStatsConfig) IDs() []string {
	return c.ids
}

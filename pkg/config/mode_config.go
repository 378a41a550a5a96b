package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DifficultyConfig 难度缩放参数
type DifficultyConfig struct {
	Min                 float64 `yaml:"min"`
	Max                 float64 `yaml:"max"`
	SurvivalRampSeconds float64 `yaml:"survivalRampSeconds"` // 生存模式从 Min 增长到 Max 的秒数
	PerMission          float64 `yaml:"perMission"`          // 每个任务索引增加的难度
	HealthScale         float64 `yaml:"healthScale"`         // 每单位难度增加的血量倍率
}

// SpawnProfile 生成节奏参数（每个模式一份）
type SpawnProfile struct {
	BaseInterval  float64 `yaml:"baseInterval"`  // 难度为 1 时的生成间隔（秒）
	MinInterval   float64 `yaml:"minInterval"`   // 生成间隔下限
	MinBatch      int     `yaml:"minBatch"`      // 每次生成的最少数量
	MaxBatch      int     `yaml:"maxBatch"`      // 每次生成的最多数量
	WaveSeconds   float64 `yaml:"waveSeconds"`   // 每个有效波次的秒数，用于 minWave 门槛
	ToughnessBias float64 `yaml:"toughnessBias"` // 难度对高阶生物的偏向系数
	MaxActive     int     `yaml:"maxActive"`     // 同时存活的生物上限，0 表示不限
	MinDistance   float64 `yaml:"minDistance"`   // 距玩家的最小生成距离
	MaxDistance   float64 `yaml:"maxDistance"`   // 距玩家的最大生成距离
}

// SurvivalConfig 生存模式参数
type SurvivalConfig struct {
	Spawn          SpawnProfile `yaml:"spawn"`
	SwarmInterval  float64      `yaml:"swarmInterval"`  // 虫潮间隔（秒）
	SwarmAfter     float64      `yaml:"swarmAfter"`     // 开局多少秒后才出现虫潮
	SwarmBaseSize  int          `yaml:"swarmBaseSize"`  // 虫潮基础数量
	SwarmMaxSize   int          `yaml:"swarmMaxSize"`   // 虫潮最大数量
	PickupInterval float64      `yaml:"pickupInterval"` // 武器掉落间隔（秒）
}

// StreakThreshold 连杀倍率门槛
type StreakThreshold struct {
	Kills      int     `yaml:"kills"`
	Multiplier float64 `yaml:"multiplier"`
}

// RushLoadout Rush 模式的预设装备
type RushLoadout struct {
	Name   string   `yaml:"name"`
	Weapon string   `yaml:"weapon"`
	Perks  []string `yaml:"perks"`
}

// RushConfig Rush 模式参数
type RushConfig struct {
	Duration            float64           `yaml:"duration"` // 回合时长（秒）
	Spawn               SpawnProfile      `yaml:"spawn"`
	StreakThresholds    []StreakThreshold `yaml:"streakThresholds"`
	ComboMilestones     []int             `yaml:"comboMilestones"`
	ComboBonusPerStreak int               `yaml:"comboBonusPerStreak"`
	TimeBonusPerSecond  int               `yaml:"timeBonusPerSecond"`
	Loadouts            []RushLoadout     `yaml:"loadouts"`
}

// QuestModeConfig 任务模式参数
type QuestModeConfig struct {
	Spawn SpawnProfile `yaml:"spawn"`
}

// ExperienceConfig 经验与升级参数
type ExperienceConfig struct {
	FirstLevel  int     `yaml:"firstLevel"`  // 第一次升级所需经验
	Growth      float64 `yaml:"growth"`      // 每级所需经验的增长倍率
	PerkChoices int     `yaml:"perkChoices"` // 每次升级提供的技能选项数
}

// ModeConfig 模式参数文件结构
type ModeConfig struct {
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Survival   SurvivalConfig   `yaml:"survival"`
	Rush       RushConfig       `yaml:"rush"`
	Quest      QuestModeConfig  `yaml:"quest"`
	Experience ExperienceConfig `yaml:"experience"`
}

// DefaultModeConfig 返回内置的默认模式参数
// 与 data/modes.yaml 保持一致，供测试和无配置文件的工具使用
func DefaultModeConfig() *ModeConfig {
	return &ModeConfig{
		Difficulty: DifficultyConfig{Min: 1, Max: 5, SurvivalRampSeconds: 480, PerMission: 0.5, HealthScale: 0.25},
		Survival: SurvivalConfig{
			Spawn: SpawnProfile{
				BaseInterval: 2.0, MinInterval: 0.3, MinBatch: 1, MaxBatch: 3,
				WaveSeconds: 15, ToughnessBias: 0.25, MaxActive: 150,
				MinDistance: 400, MaxDistance: 600,
			},
			SwarmInterval:  60,
			SwarmAfter:     30,
			SwarmBaseSize:  3,
			SwarmMaxSize:   8,
			PickupInterval: 30,
		},
		Rush: RushConfig{
			Duration: 120,
			Spawn: SpawnProfile{
				BaseInterval: 0.5, MinInterval: 0.5, MinBatch: 2, MaxBatch: 4,
				WaveSeconds: 30, ToughnessBias: 0.25, MaxActive: 200,
				MinDistance: 400, MaxDistance: 600,
			},
			StreakThresholds: []StreakThreshold{
				{Kills: 5, Multiplier: 1.5},
				{Kills: 10, Multiplier: 2.0},
				{Kills: 20, Multiplier: 3.0},
				{Kills: 50, Multiplier: 5.0},
			},
			ComboMilestones:     []int{10, 25, 50, 100},
			ComboBonusPerStreak: 10,
			TimeBonusPerSecond:  10,
			Loadouts: []RushLoadout{
				{Name: "Assault", Weapon: "assault_rifle", Perks: []string{"trigger_happy", "deadly_accuracy", "long_barrel"}},
			},
		},
		Quest: QuestModeConfig{
			Spawn: SpawnProfile{
				BaseInterval: 1.0, MinInterval: 0.4, MinBatch: 1, MaxBatch: 1,
				WaveSeconds: 1, MaxActive: 300, MinDistance: 400, MaxDistance: 600,
			},
		},
		Experience: ExperienceConfig{FirstLevel: 100, Growth: 1.2, PerkChoices: 3},
	}
}

// LoadModeConfig 从 YAML 文件加载模式参数
func LoadModeConfig(path string) (*ModeConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mode config file %s: %w", path, err)
	}

	config, err := ParseModeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid mode config in %s: %w", path, err)
	}
	return config, nil
}

// ParseModeConfig 解析并校验模式参数 YAML
func ParseModeConfig(data []byte) (*ModeConfig, error) {
	var config ModeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse mode config YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate 校验模式参数
func (c *ModeConfig) Validate() error {
	d := c.Difficulty
	if d.Min <= 0 || d.Max < d.Min {
		return fmt.Errorf("difficulty: require 0 < min <= max, got min=%v max=%v", d.Min, d.Max)
	}
	if d.SurvivalRampSeconds <= 0 {
		return fmt.Errorf("difficulty: survivalRampSeconds must be positive, got %v", d.SurvivalRampSeconds)
	}
	if d.PerMission < 0 || d.HealthScale < 0 {
		return fmt.Errorf("difficulty: perMission and healthScale cannot be negative")
	}

	if err := validateSpawnProfile("survival", c.Survival.Spawn); err != nil {
		return err
	}
	if err := validateSpawnProfile("rush", c.Rush.Spawn); err != nil {
		return err
	}
	if err := validateSpawnProfile("quest", c.Quest.Spawn); err != nil {
		return err
	}

	s := c.Survival
	if s.SwarmInterval < 0 || s.SwarmAfter < 0 || s.PickupInterval < 0 {
		return fmt.Errorf("survival: swarm and pickup timings cannot be negative")
	}
	if s.SwarmBaseSize < 0 || s.SwarmMaxSize < s.SwarmBaseSize {
		return fmt.Errorf("survival: require 0 <= swarmBaseSize <= swarmMaxSize, got %d/%d", s.SwarmBaseSize, s.SwarmMaxSize)
	}

	if err := validateRushConfig(&c.Rush); err != nil {
		return err
	}

	e := c.Experience
	if e.FirstLevel <= 0 || e.Growth < 1 || e.PerkChoices < 1 {
		return fmt.Errorf("experience: require firstLevel > 0, growth >= 1 and perkChoices >= 1")
	}
	return nil
}

func validateSpawnProfile(mode string, p SpawnProfile) error {
	if p.BaseInterval <= 0 || p.MinInterval <= 0 {
		return fmt.Errorf("%s spawn: intervals must be positive, got base=%v min=%v", mode, p.BaseInterval, p.MinInterval)
	}
	if p.MinInterval > p.BaseInterval {
		return fmt.Errorf("%s spawn: minInterval %v exceeds baseInterval %v", mode, p.MinInterval, p.BaseInterval)
	}
	if p.MinBatch < 1 || p.MaxBatch < p.MinBatch {
		return fmt.Errorf("%s spawn: require 1 <= minBatch <= maxBatch, got %d/%d", mode, p.MinBatch, p.MaxBatch)
	}
	if p.WaveSeconds <= 0 {
		return fmt.Errorf("%s spawn: waveSeconds must be positive, got %v", mode, p.WaveSeconds)
	}
	if p.ToughnessBias < 0 || p.MaxActive < 0 {
		return fmt.Errorf("%s spawn: toughnessBias and maxActive cannot be negative", mode)
	}
	if p.MinDistance < 0 || p.MaxDistance < p.MinDistance {
		return fmt.Errorf("%s spawn: require 0 <= minDistance <= maxDistance, got %v/%v", mode, p.MinDistance, p.MaxDistance)
	}
	return nil
}

func validateRushConfig(r *RushConfig) error {
	if r.Duration <= 0 {
		return fmt.Errorf("rush: duration must be positive, got %v", r.Duration)
	}
	if len(r.StreakThresholds) == 0 {
		return fmt.Errorf("rush: at least one streak threshold is required")
	}
	prev := StreakThreshold{Kills: 0, Multiplier: 1}
	for i, th := range r.StreakThresholds {
		if th.Kills <= prev.Kills {
			return fmt.Errorf("rush: streak threshold %d kills must be strictly increasing, got %d after %d", i, th.Kills, prev.Kills)
		}
		if th.Multiplier <= prev.Multiplier {
			return fmt.Errorf("rush: streak threshold %d multiplier must be strictly increasing, got %v after %v", i, th.Multiplier, prev.Multiplier)
		}
		prev = th
	}
	for i := 1; i < len(r.ComboMilestones); i++ {
		if r.ComboMilestones[i] <= r.ComboMilestones[i-1] {
			return fmt.Errorf("rush: combo milestones must be strictly increasing")
		}
	}
	if r.ComboBonusPerStreak < 0 || r.TimeBonusPerSecond < 0 {
		return fmt.Errorf("rush: bonuses cannot be negative")
	}
	if len(r.Loadouts) == 0 {
		return fmt.Errorf("rush: at least one loadout is required")
	}
	for _, l := range r.Loadouts {
		if l.Name == "" || l.Weapon == "" {
			return fmt.Errorf("rush: loadout requires name and weapon")
		}
	}
	return nil
}

// Loadout 按名称查找 Rush 装备，名称为空时返回第一个
func (r *RushConfig) Loadout(name string) (RushLoadout, error) {
	if name == "" {
		return r.Loadouts[0], nil
	}
	for _, l := range r.Loadouts {
		if l.Name == name {
			return l, nil
		}
	}
	return RushLoadout{}, notFound("loadout", name)
}

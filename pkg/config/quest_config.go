package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SpawnEntry 任务波次中的一条生成指令
// 每隔 Interval 秒生成一只 Creature，共 Count 只
type SpawnEntry struct {
	Creature string  `yaml:"creature"`
	Count    int     `yaml:"count"`
	Interval float64 `yaml:"interval"`
}

// MissionWave 任务中的一个波次
type MissionWave struct {
	SpawnDelay float64      `yaml:"spawnDelay"` // 波次开始前的等待时间（秒）
	Spawns     []SpawnEntry `yaml:"spawns"`
}

// MissionConfig 单个任务配置
type MissionConfig struct {
	ID          string        `yaml:"id"`
	Chapter     int           `yaml:"chapter"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	TimeLimit   float64       `yaml:"timeLimit"` // 时间限制（秒），0 表示不限时
	Waves       []MissionWave `yaml:"waves"`
}

// TotalCreatures 返回任务脚本生成的生物总数
func (m *MissionConfig) TotalCreatures() int {
	total := 0
	for _, wave := range m.Waves {
		for _, entry := range wave.Spawns {
			total += entry.Count
		}
	}
	return total
}

// QuestConfig 任务列表配置，顺序即解锁顺序
type QuestConfig struct {
	Missions []MissionConfig `yaml:"missions"`
}

// LoadQuestConfig 从 YAML 文件加载任务配置
func LoadQuestConfig(path string) (*QuestConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest file %s: %w", path, err)
	}

	config, err := ParseQuestConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid quest config in %s: %w", path, err)
	}
	return config, nil
}

// ParseQuestConfig 解析并校验任务 YAML
func ParseQuestConfig(data []byte) (*QuestConfig, error) {
	var config QuestConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse quest YAML: %w", err)
	}
	if err := validateQuestConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validateQuestConfig(config *QuestConfig) error {
	if len(config.Missions) == 0 {
		return fmt.Errorf("at least one mission is required")
	}

	seen := make(map[string]bool, len(config.Missions))
	for i, m := range config.Missions {
		if m.ID == "" {
			return fmt.Errorf("mission %d: id is required", i)
		}
		if seen[m.ID] {
			return fmt.Errorf("mission %s: duplicate id", m.ID)
		}
		seen[m.ID] = true

		if m.TimeLimit < 0 {
			return fmt.Errorf("mission %s: timeLimit cannot be negative, got %v", m.ID, m.TimeLimit)
		}
		if len(m.Waves) == 0 {
			return fmt.Errorf("mission %s: at least one wave is required", m.ID)
		}
		for w, wave := range m.Waves {
			if wave.SpawnDelay < 0 {
				return fmt.Errorf("mission %s wave %d: spawnDelay cannot be negative", m.ID, w)
			}
			if len(wave.Spawns) == 0 {
				return fmt.Errorf("mission %s wave %d: at least one spawn entry is required", m.ID, w)
			}
			for _, entry := range wave.Spawns {
				if entry.Creature == "" {
					return fmt.Errorf("mission %s wave %d: spawn entry without creature", m.ID, w)
				}
				if entry.Count < 1 {
					return fmt.Errorf("mission %s wave %d: %s count must be at least 1, got %d", m.ID, w, entry.Creature, entry.Count)
				}
				if entry.Interval < 0 {
					return fmt.Errorf("mission %s wave %d: %s interval cannot be negative", m.ID, w, entry.Creature)
				}
			}
		}
	}
	return nil
}

// Mission 按索引获取任务
func (c *QuestConfig) Mission(index int) (*MissionConfig, error) {
	if index < 0 || index >= len(c.Missions) {
		return nil, notFound("mission", fmt.Sprintf("#%d", index))
	}
	return &c.Missions[index], nil
}

// IndexOf 返回任务 ID 对应的索引
func (c *QuestConfig) IndexOf(id string) (int, error) {
	for i := range c.Missions {
		if c.Missions[i].ID == id {
			return i, nil
		}
	}
	return -1, notFound("mission", id)
}

// Count 返回任务数量
func (c *QuestConfig) Count() int {
	return len(c.Missions)
}

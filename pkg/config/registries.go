package config

import (
	"fmt"
	"path"
)

// 默认配置文件路径（位于嵌入的 data/ 目录）
const (
	DefaultDataDir = "data"

	creaturesFile = "creatures.yaml"
	weaponsFile   = "weapons.yaml"
	perksFile     = "perks.yaml"
	questsFile    = "quests.yaml"
	modesFile     = "modes.yaml"
)

// Registries 启动时加载的全部静态数据表
// 加载完成后只读，tick 循环中不得修改
type Registries struct {
	Creatures *CreatureStatsConfig
	Weapons   *WeaponStatsConfig
	Perks     *PerkStatsConfig
	Quests    *QuestConfig
	Modes     *ModeConfig
}

// LoadRegistries 从目录加载全部注册表并校验交叉引用
// 参数：
//
//	dir - 配置目录，嵌入数据使用 DefaultDataDir，工具和测试可传入本地目录
func LoadRegistries(dir string) (*Registries, error) {
	creatures, err := LoadCreatureStats(path.Join(dir, creaturesFile))
	if err != nil {
		return nil, err
	}
	weapons, err := LoadWeaponStats(path.Join(dir, weaponsFile))
	if err != nil {
		return nil, err
	}
	perks, err := LoadPerkStats(path.Join(dir, perksFile))
	if err != nil {
		return nil, err
	}
	quests, err := LoadQuestConfig(path.Join(dir, questsFile))
	if err != nil {
		return nil, err
	}
	modes, err := LoadModeConfig(path.Join(dir, modesFile))
	if err != nil {
		return nil, err
	}

	r := &Registries{
		Creatures: creatures,
		Weapons:   weapons,
		Perks:     perks,
		Quests:    quests,
		Modes:     modes,
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid registries in %s: %w", dir, err)
	}
	return r, nil
}

// Validate 校验注册表之间的引用（任务中的生物、Rush 装备中的武器和技能）
func (r *Registries) Validate() error {
	for _, m := range r.Quests.Missions {
		for w, wave := range m.Waves {
			for _, entry := range wave.Spawns {
				if _, err := r.Creatures.Get(entry.Creature); err != nil {
					return fmt.Errorf("mission %s wave %d: %w", m.ID, w, err)
				}
			}
		}
	}
	for _, l := range r.Modes.Rush.Loadouts {
		if _, err := r.Weapons.Get(l.Weapon); err != nil {
			return fmt.Errorf("rush loadout %s: %w", l.Name, err)
		}
		for _, p := range l.Perks {
			if _, err := r.Perks.Get(p); err != nil {
				return fmt.Errorf("rush loadout %s: %w", l.Name, err)
			}
		}
	}
	return nil
}

// Creature 查询生物属性
func (r *Registries) Creature(id string) (CreatureStats, error) {
	return r.Creatures.Get(id)
}

// Weapon 查询武器属性
func (r *Registries) Weapon(id string) (WeaponStats, error) {
	return r.Weapons.Get(id)
}

// Perk 查询技能
func (r *Registries) Perk(id string) (PerkStats, error) {
	return r.Perks.Get(id)
}

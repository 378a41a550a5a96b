package game

import (
	"fmt"
	"log"

	"github.com/gonewx/crimson/pkg/modes"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ModeRecord 单个模式的历史最佳成绩
type ModeRecord struct {
	Plays     int     `yaml:"plays"`
	BestTime  float64 `yaml:"bestTime"`  // 单局最长持续时间
	BestKills int     `yaml:"bestKills"` // 单局最多击杀
	BestScore int     `yaml:"bestScore"` // Rush：最高得分
	BestLevel int     `yaml:"bestLevel"` // 生存：最高等级
}

// SaveData 保存数据结构
//
// 保存内容：
//   - 已解锁的任务数量（任务按顺序解锁）
//   - 是否通关全部任务
//   - 各模式的最佳成绩
type SaveData struct {
	UnlockedMissions int        `yaml:"unlockedMissions"` // 可选择的任务数量，至少为 1
	QuestCompleted   bool       `yaml:"questCompleted"`   // 是否完成过最后一个任务
	TotalKills       int        `yaml:"totalKills"`
	Quest            ModeRecord `yaml:"quest"`
	Survival         ModeRecord `yaml:"survival"`
	Rush             ModeRecord `yaml:"rush"`
}

// newSaveData 返回新存档
func newSaveData() *SaveData {
	return &SaveData{UnlockedMissions: 1}
}

// 存储路径常量
const (
	saveObject   = "save"
	saveProperty = "progress"
)

// SaveManager 保存管理器
//
// 职责：
//   - 加载和保存游戏进度
//   - 管理任务解锁状态
//   - 记录各模式最佳成绩
//
// 持久化只发生在模式结束或退出时，不在 tick 循环内
type SaveManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存存档）
	data         *SaveData
}

// NewSaveManager 创建保存管理器并加载已有存档
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil
//
// 返回：
//   - *SaveManager: 保存管理器实例
//   - error: 存档存在但无法解析时返回错误（此时使用新存档）
func NewSaveManager(gdataManager *gdata.Manager) (*SaveManager, error) {
	sm := &SaveManager{
		gdataManager: gdataManager,
		data:         newSaveData(),
	}
	if err := sm.Load(); err != nil {
		return sm, err
	}
	return sm, nil
}

// Load 从 gdata 加载存档
func (sm *SaveManager) Load() error {
	sm.data = newSaveData()

	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(saveObject, saveProperty) {
		return nil
	}

	raw, err := sm.gdataManager.LoadObjectProp(saveObject, saveProperty)
	if err != nil {
		return fmt.Errorf("failed to load save data: %w", err)
	}

	loaded := newSaveData()
	if err := yaml.Unmarshal(raw, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal save data: %w", err)
	}
	if loaded.UnlockedMissions < 1 {
		loaded.UnlockedMissions = 1
	}

	sm.data = loaded
	log.Printf("[SaveManager] Loaded save: %d missions unlocked", loaded.UnlockedMissions)
	return nil
}

// Save 保存存档到 gdata
// gdataManager 为 nil 时直接返回 nil
func (sm *SaveManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(sm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal save data: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(saveObject, saveProperty, raw); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}

	log.Printf("[SaveManager] Save data written")
	return nil
}

// GetData 返回当前存档（只读使用）
func (sm *SaveManager) GetData() *SaveData {
	return sm.data
}

// IsMissionUnlocked 任务索引是否已解锁
func (sm *SaveManager) IsMissionUnlocked(index int) bool {
	return index >= 0 && index < sm.data.UnlockedMissions
}

// RecordResult 将一局结果合并到存档
//
// 参数：
//   - result: 模式结束时的结果
//
// 返回：
//   - bool: 是否刷新了该模式的任一最佳成绩或解锁了新任务
func (sm *SaveManager) RecordResult(result modes.Result) bool {
	d := sm.data
	d.TotalKills += result.Kills

	improved := false
	switch result.Mode {
	case modes.KindQuest:
		improved = updateRecord(&d.Quest, result)
		// 结束时所在的任务一定已解锁；胜利时所有任务均已完成
		if unlocked := result.MissionIndex + 1; unlocked > d.UnlockedMissions {
			d.UnlockedMissions = unlocked
			improved = true
		}
		if result.Outcome == modes.OutcomeVictory && !d.QuestCompleted {
			d.QuestCompleted = true
			improved = true
		}
	case modes.KindSurvival:
		improved = updateRecord(&d.Survival, result)
	case modes.KindRush:
		improved = updateRecord(&d.Rush, result)
	default:
		log.Printf("[SaveManager] Ignoring result for mode %s", result.Mode)
		return false
	}

	log.Printf("[SaveManager] Recorded %s result: %s, kills=%d, score=%d",
		result.Mode, result.Outcome, result.Kills, result.Score)
	return improved
}

func updateRecord(rec *ModeRecord, result modes.Result) bool {
	rec.Plays++
	improved := false
	if result.Time > rec.BestTime {
		rec.BestTime = result.Time
		improved = true
	}
	if result.Kills > rec.BestKills {
		rec.BestKills = result.Kills
		improved = true
	}
	if result.Score > rec.BestScore {
		rec.BestScore = result.Score
		improved = true
	}
	if result.Level > rec.BestLevel {
		rec.BestLevel = result.Level
		improved = true
	}
	return improved
}

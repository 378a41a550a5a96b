package systems

import (
	"math"

	"github.com/gonewx/crimson/pkg/config"
)

// DifficultyEngine 难度引擎
// 将生存时间或任务索引映射为 [Min, Max] 内的难度标量，为生成系统提供数据
// 所有方法都是纯函数：相同输入总是得到相同输出，且对输入单调不减
type DifficultyEngine struct {
	cfg config.DifficultyConfig
}

// NewDifficultyEngine 创建新的难度引擎实例
func NewDifficultyEngine(cfg config.DifficultyConfig) *DifficultyEngine {
	return &DifficultyEngine{cfg: cfg}
}

// Min 返回难度下限
func (d *DifficultyEngine) Min() float64 { return d.cfg.Min }

// Max 返回难度上限
func (d *DifficultyEngine) Max() float64 { return d.cfg.Max }

// ForSurvival 计算生存模式难度
// 公式: Min + (Max - Min) * clamp(elapsed / SurvivalRampSeconds, 0, 1)
// 参数:
//
//	elapsed - 已生存时间（秒），负数按 0 处理
func (d *DifficultyEngine) ForSurvival(elapsed float64) float64 {
	if elapsed <= 0 || math.IsNaN(elapsed) {
		return d.cfg.Min
	}
	progress := elapsed / d.cfg.SurvivalRampSeconds
	if progress > 1 {
		progress = 1
	}
	return d.cfg.Min + (d.cfg.Max-d.cfg.Min)*progress
}

// ForRound 计算限时回合（Rush）的难度
// 公式: Min + (Max - Min) * clamp(elapsed / duration, 0, 1)
func (d *DifficultyEngine) ForRound(elapsed, duration float64) float64 {
	if elapsed <= 0 || duration <= 0 {
		return d.cfg.Min
	}
	return d.clamp(d.cfg.Min + (d.cfg.Max-d.cfg.Min)*elapsed/duration)
}

// ForQuest 计算任务模式难度
// 公式: Min + PerMission * missionIndex，结果裁剪到 Max
func (d *DifficultyEngine) ForQuest(missionIndex int) float64 {
	if missionIndex < 0 {
		missionIndex = 0
	}
	return d.clamp(d.cfg.Min + d.cfg.PerMission*float64(missionIndex))
}

// HealthMultiplier 计算生成生物的血量倍率
// 公式: 1 + (difficulty - Min) * HealthScale
func (d *DifficultyEngine) HealthMultiplier(difficulty float64) float64 {
	return 1 + (d.clamp(difficulty)-d.cfg.Min)*d.cfg.HealthScale
}

// Normalize 将难度映射到 [0, 1]
func (d *DifficultyEngine) Normalize(difficulty float64) float64 {
	if d.cfg.Max == d.cfg.Min {
		return 0
	}
	return (d.clamp(difficulty) - d.cfg.Min) / (d.cfg.Max - d.cfg.Min)
}

func (d *DifficultyEngine) clamp(v float64) float64 {
	return math.Max(d.cfg.Min, math.Min(d.cfg.Max, v))
}

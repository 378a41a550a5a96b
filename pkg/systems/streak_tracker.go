package systems

import (
	"math"

	"github.com/gonewx/crimson/pkg/components"
	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/events"
)

// 得分事件原因
const (
	ScoreReasonKill      = "kill"
	ScoreReasonCombo     = "combo"
	ScoreReasonTimeBonus = "time_bonus"
)

// ScoreTracker Rush 模式的连杀倍率与得分
//
// 连杀数只在回合结束时清零，倍率按固定门槛分段取值且在回合内只增不减。
type ScoreTracker struct {
	cfg config.RushConfig
}

// NewScoreTracker 创建得分追踪器
func NewScoreTracker(cfg config.RushConfig) *ScoreTracker {
	return &ScoreTracker{cfg: cfg}
}

// MultiplierFor 返回连杀数对应的倍率
// 取已越过的最高门槛的倍率，低于第一个门槛时为 1.0，不做插值
func (s *ScoreTracker) MultiplierFor(streak int) float64 {
	m := 1.0
	for _, th := range s.cfg.StreakThresholds {
		if streak < th.Kills {
			break
		}
		m = th.Multiplier
	}
	return m
}

// Reset 开始新回合
func (s *ScoreTracker) Reset(ks *components.KillStreakComponent) {
	*ks = components.KillStreakComponent{Multiplier: 1}
}

// OnKill 记录一次击杀并返回得分事件
// 顺序：连杀数 +1，重新计算倍率，得分 = floor(基础分 × 当前倍率)。
// 连杀数恰好达到连击里程碑时额外奖励 floor(streak × ComboBonusPerStreak × 倍率)。
func (s *ScoreTracker) OnKill(ks *components.KillStreakComponent, baseValue int) []events.Event {
	ks.Streak++
	if m := s.MultiplierFor(ks.Streak); m > ks.Multiplier {
		ks.Multiplier = m
	}

	delta := int(math.Floor(float64(baseValue) * ks.Multiplier))
	ks.Score += delta
	evs := []events.Event{s.changed(ks, delta, ScoreReasonKill)}

	if s.isMilestone(ks.Streak) {
		bonus := int(math.Floor(float64(ks.Streak*s.cfg.ComboBonusPerStreak) * ks.Multiplier))
		ks.Score += bonus
		ks.ComboBonus += bonus
		evs = append(evs, s.changed(ks, bonus, ScoreReasonCombo))
	}
	return evs
}

// TimeBonus 回合提前结束时按剩余时间奖励
// remaining <= 0（自然到时）不奖励
func (s *ScoreTracker) TimeBonus(ks *components.KillStreakComponent, remaining float64) []events.Event {
	if remaining <= 0 {
		return nil
	}
	bonus := int(math.Floor(remaining)) * s.cfg.TimeBonusPerSecond
	if bonus <= 0 {
		return nil
	}
	ks.Score += bonus
	return []events.Event{s.changed(ks, bonus, ScoreReasonTimeBonus)}
}

func (s *ScoreTracker) isMilestone(streak int) bool {
	for _, m := range s.cfg.ComboMilestones {
		if streak == m {
			return true
		}
	}
	return false
}

func (s *ScoreTracker) changed(ks *components.KillStreakComponent, delta int, reason string) events.ScoreChanged {
	return events.ScoreChanged{
		Delta:      delta,
		Score:      ks.Score,
		Streak:     ks.Streak,
		Multiplier: ks.Multiplier,
		Reason:     reason,
	}
}

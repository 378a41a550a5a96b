// Package modes 实现 Quest / Survival / Rush 模式状态机
//
// 模式状态是一个封闭的和类型（State 接口只能由本包实现），
// 迁移由 (当前状态类别, 事件) 的完整表定义，表中没有的组合一律返回 ErrInvalidTransition。
package modes

import (
	"github.com/gonewx/crimson/pkg/components"
	"github.com/gonewx/crimson/pkg/config"
)

// Kind 模式状态类别
type Kind int

const (
	KindNotStarted Kind = iota
	KindQuest
	KindSurvival
	KindRush
	KindEnded
)

// Kinds 全部状态类别
var Kinds = []Kind{KindNotStarted, KindQuest, KindSurvival, KindRush, KindEnded}

func (k Kind) String() string {
	switch k {
	case KindNotStarted:
		return "not_started"
	case KindQuest:
		return "quest"
	case KindSurvival:
		return "survival"
	case KindRush:
		return "rush"
	case KindEnded:
		return "ended"
	}
	return "unknown"
}

// ParseKind 解析模式名称（quest / survival / rush）
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindQuest, KindSurvival, KindRush} {
		if k.String() == s {
			return k, true
		}
	}
	return KindNotStarted, false
}

// State 模式状态，同一时刻只有一个处于活动状态
type State interface {
	Kind() Kind
	sealed()
}

// NotStartedState 尚未开始任何模式
type NotStartedState struct{}

func (*NotStartedState) Kind() Kind { return KindNotStarted }
func (*NotStartedState) sealed()    {}

// QuestObjectives 任务目标
type QuestObjectives struct {
	MissionID  string
	KillTarget int     // 脚本生成的生物总数
	TimeLimit  float64 // 0 表示不限时
	FinalIndex int     // 最后一个任务的索引
}

// QuestState 任务模式
type QuestState struct {
	Progress   components.QuestProgressComponent
	Objectives QuestObjectives
	Difficulty float64
}

func (*QuestState) Kind() Kind { return KindQuest }
func (*QuestState) sealed()    {}

// MissionIndex 当前任务索引
func (s *QuestState) MissionIndex() int { return s.Progress.MissionIndex }

// TimedOut 是否超过时间限制
func (s *QuestState) TimedOut() bool {
	return s.Objectives.TimeLimit > 0 && s.Progress.Elapsed >= s.Objectives.TimeLimit
}

// SurvivalState 生存模式
type SurvivalState struct {
	Wave       components.WaveStateComponent
	Experience components.ExperienceComponent
	Kills      int
}

func (*SurvivalState) Kind() Kind { return KindSurvival }
func (*SurvivalState) sealed()    {}

// RushState Rush 模式
type RushState struct {
	Elapsed    float64
	Duration   float64
	Streak     components.KillStreakComponent
	Wave       components.WaveStateComponent
	Loadout    config.RushLoadout
	Experience components.ExperienceComponent // 只持有装备技能，不获取经验
	Kills      int
}

func (*RushState) Kind() Kind { return KindRush }
func (*RushState) sealed()    {}

// Remaining 回合剩余时间
func (s *RushState) Remaining() float64 {
	if r := s.Duration - s.Elapsed; r > 0 {
		return r
	}
	return 0
}

// Expired 回合是否已到时
func (s *RushState) Expired() bool {
	return s.Elapsed >= s.Duration-timeEpsilon
}

// Outcome 模式结束的结果
type Outcome string

const (
	OutcomeVictory  Outcome = "victory"  // 完成最后一个任务
	OutcomeDefeat   Outcome = "defeat"   // 任务失败或玩家死亡
	OutcomeFinished Outcome = "finished" // Rush 回合到时
	OutcomeAborted  Outcome = "aborted"  // 玩家主动退出
)

// Result 模式结束时记录的结果
type Result struct {
	Mode              Kind
	Outcome           Outcome
	Trigger           EventKind
	MissionIndex      int     // 任务模式：结束时所在任务
	MissionsCompleted int     // 任务模式：本次完成的任务数
	Time              float64 // 生存时间 / Rush 回合用时 / 任务用时
	Kills             int
	Score             int // Rush 最终得分
	Level             int // 生存模式等级
}

// EndedState 模式已结束
type EndedState struct {
	Result Result
}

func (*EndedState) Kind() Kind { return KindEnded }
func (*EndedState) sealed()    {}

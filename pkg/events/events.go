// Package events 定义核心逻辑发往宿主（渲染、音频、UI）的类型化事件
//
// 核心系统从不直接调用渲染或音频，只返回事件，由会话统一分发。
package events

// Type 事件类型
type Type string

const (
	TypeSpawnRequested   Type = "spawn_requested"
	TypeScoreChanged     Type = "score_changed"
	TypeModeTransitioned Type = "mode_transitioned"
	TypePickupRequested  Type = "pickup_requested"
	TypePerkOffered      Type = "perk_offered"
	TypeWaveStarted      Type = "wave_started"
)

// Event 所有事件的公共接口
type Event interface {
	Type() Type
}

// SpawnRequested 请求宿主生成一个生物
// 位置以玩家为原点的极坐标给出，宿主负责裁剪到场地边界
type SpawnRequested struct {
	CreatureID       string
	Angle            float64 // 弧度
	Distance         float64
	HealthMultiplier float64 // 难度血量倍率
	Source           string  // regular / swarm / script
}

func (SpawnRequested) Type() Type { return TypeSpawnRequested }

// ScoreChanged Rush 模式得分变化
type ScoreChanged struct {
	Delta      int
	Score      int
	Streak     int
	Multiplier float64
	Reason     string // kill / combo / time_bonus
}

func (ScoreChanged) Type() Type { return TypeScoreChanged }

// ModeTransitioned 模式状态机发生迁移
type ModeTransitioned struct {
	From         string
	To           string
	Trigger      string
	MissionIndex int // 仅任务模式有意义
}

func (ModeTransitioned) Type() Type { return TypeModeTransitioned }

// PickupRequested 请求宿主放置掉落物
type PickupRequested struct {
	Bonus    string // 掉落物种类，见 config.BonusKind
	WeaponID string // 仅武器掉落有值
	Angle    float64
	Distance float64
}

func (PickupRequested) Type() Type { return TypePickupRequested }

// PerkOffered 升级后提供的技能选项
type PerkOffered struct {
	Level   int
	Choices []string
}

func (PerkOffered) Type() Type { return TypePerkOffered }

// WaveStarted 新的有效波次或任务波次开始
type WaveStarted struct {
	Wave  int
	Swarm bool // 生存模式虫潮
}

func (WaveStarted) Type() Type { return TypeWaveStarted }

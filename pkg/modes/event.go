package modes

// EventKind 状态机事件
type EventKind int

const (
	StartQuest EventKind = iota
	StartSurvival
	StartRush
	MissionComplete
	MissionFailed
	PlayerDied
	TimerExpired
	Abort
	Reset
)

// EventKinds 全部事件
var EventKinds = []EventKind{
	StartQuest, StartSurvival, StartRush,
	MissionComplete, MissionFailed, PlayerDied, TimerExpired,
	Abort, Reset,
}

func (e EventKind) String() string {
	switch e {
	case StartQuest:
		return "start_quest"
	case StartSurvival:
		return "start_survival"
	case StartRush:
		return "start_rush"
	case MissionComplete:
		return "mission_complete"
	case MissionFailed:
		return "mission_failed"
	case PlayerDied:
		return "player_died"
	case TimerExpired:
		return "timer_expired"
	case Abort:
		return "abort"
	case Reset:
		return "reset"
	}
	return "unknown"
}

// Event 状态机输入
type Event struct {
	Kind    EventKind
	Mission int    // StartQuest：起始任务索引
	Loadout string // StartRush：装备名称，空表示第一个
}

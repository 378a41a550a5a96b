package modes

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/events"
	"github.com/gonewx/crimson/pkg/systems"
)

// timeEpsilon 计时比较容差，保证回合在恰好 Duration 秒时结束
const timeEpsilon = 1e-9

type transitionFunc func(m *Machine, ev Event) (State, error)

// Machine 模式状态机
//
// 每个 tick 的调用顺序由会话保证：Update（计时与生成）→ RecordKill（宿主上报的击杀）
// → Evaluate（迁移检查）。产生的事件暂存在内部队列，由 Drain 取出。
type Machine struct {
	reg        *config.Registries
	difficulty *systems.DifficultyEngine

	survivalDirector *systems.SpawnDirector
	rushDirector     *systems.SpawnDirector
	survival         *systems.SurvivalSystem
	quests           *systems.QuestWaveSystem
	score            *systems.ScoreTracker
	experience       *systems.ExperienceSystem

	table map[Kind]map[EventKind]transitionFunc

	state   State
	pending []events.Event

	// 任务模式跨任务累计
	questCompleted int
	questKills     int
	questTime      float64
}

// NewMachine 创建状态机，初始状态为 NotStarted
// 参数：
//
//	reg - 已加载并校验的注册表
//	rng - 可复现随机数源，所有系统共享
func NewMachine(reg *config.Registries, rng *systems.RNG) *Machine {
	modes := reg.Modes
	difficulty := systems.NewDifficultyEngine(modes.Difficulty)
	survivalDirector := systems.NewSpawnDirector(reg.Creatures, modes.Survival.Spawn, difficulty, rng)
	questDirector := systems.NewSpawnDirector(reg.Creatures, modes.Quest.Spawn, difficulty, rng)

	m := &Machine{
		reg:              reg,
		difficulty:       difficulty,
		survivalDirector: survivalDirector,
		rushDirector:     systems.NewSpawnDirector(reg.Creatures, modes.Rush.Spawn, difficulty, rng),
		survival:         systems.NewSurvivalSystem(survivalDirector, reg.Weapons, modes.Survival, rng),
		quests:           systems.NewQuestWaveSystem(reg.Quests, questDirector),
		score:            systems.NewScoreTracker(modes.Rush),
		experience:       systems.NewExperienceSystem(reg.Perks, modes.Experience, rng),
		state:            &NotStartedState{},
	}
	m.table = newTransitionTable()
	return m
}

// newTransitionTable 构造完整的迁移表
// 表中未列出的 (状态, 事件) 组合都是非法迁移
func newTransitionTable() map[Kind]map[EventKind]transitionFunc {
	return map[Kind]map[EventKind]transitionFunc{
		KindNotStarted: {
			StartQuest:    (*Machine).startQuest,
			StartSurvival: (*Machine).startSurvival,
			StartRush:     (*Machine).startRush,
		},
		KindQuest: {
			MissionComplete: (*Machine).nextMission,
			MissionFailed:   (*Machine).failQuest,
			PlayerDied:      (*Machine).failQuest,
			TimerExpired:    (*Machine).failQuest,
			Abort:           (*Machine).abortQuest,
		},
		KindSurvival: {
			PlayerDied: (*Machine).endSurvival,
			Abort:      (*Machine).endSurvival,
		},
		KindRush: {
			TimerExpired: (*Machine).endRush,
			PlayerDied:   (*Machine).endRush,
			Abort:        (*Machine).endRush,
		},
		KindEnded: {
			Reset: (*Machine).reset,
		},
	}
}

// Accepts 当前状态是否接受该事件
func (m *Machine) Accepts(kind EventKind) bool {
	_, ok := m.table[m.state.Kind()][kind]
	return ok
}

// State 返回当前状态
func (m *Machine) State() State {
	return m.state
}

// Registries 返回状态机使用的注册表
func (m *Machine) Registries() *config.Registries {
	return m.reg
}

// Drain 取出并清空待分发的事件
func (m *Machine) Drain() []events.Event {
	evs := m.pending
	m.pending = nil
	return evs
}

func (m *Machine) emit(evs ...events.Event) {
	m.pending = append(m.pending, evs...)
}

// Fire 处理一个状态机事件
// 非法迁移返回 ErrInvalidTransition（*TransitionError），记录日志并保持当前状态；
// 迁移函数失败时同样保持当前状态
func (m *Machine) Fire(ev Event) error {
	from := m.state
	fn, ok := m.table[from.Kind()][ev.Kind]
	if !ok {
		err := &TransitionError{From: from.Kind(), Event: ev.Kind}
		log.Printf("[ModeMachine] %v", err)
		return err
	}

	next, err := fn(m, ev)
	if err != nil {
		log.Printf("[ModeMachine] %s on %s failed: %v", ev.Kind, from.Kind(), err)
		return err
	}

	m.state = next
	transition := events.ModeTransitioned{
		From:    from.Kind().String(),
		To:      next.Kind().String(),
		Trigger: ev.Kind.String(),
	}
	if q, ok := next.(*QuestState); ok {
		transition.MissionIndex = q.MissionIndex()
	}
	m.emit(transition)
	log.Printf("[ModeMachine] %s -> %s (%s)", transition.From, transition.To, transition.Trigger)
	return nil
}

// Update 执行当前模式的计时与生成（每个 tick 一次）
// 参数：
//
//	dt - 本 tick 的时间步长（秒）
//	active - 宿主当前存活的生物数量
func (m *Machine) Update(dt float64, active int) error {
	if dt < 0 {
		dt = 0
	}

	switch s := m.state.(type) {
	case *QuestState:
		return m.updateQuest(s, dt, active)
	case *SurvivalState:
		m.updateSurvival(s, dt, active)
	case *RushState:
		m.updateRush(s, dt, active)
	}
	return nil
}

func (m *Machine) updateQuest(s *QuestState, dt float64, active int) error {
	if s.TimedOut() {
		return nil
	}
	evs, err := m.quests.Update(&s.Progress, s.Difficulty, dt, active)
	m.emit(evs...)
	if err != nil {
		// 任务脚本引用了未注册的生物：中止任务，而不是让 tick 循环崩溃
		if abortErr := m.Fire(Event{Kind: Abort}); abortErr != nil {
			log.Printf("[ModeMachine] Failed to abort mission: %v", abortErr)
		}
		return err
	}
	return nil
}

func (m *Machine) updateSurvival(s *SurvivalState, dt float64, active int) {
	ws := &s.Wave
	ws.ActiveCreatures = active
	// 难度只增不减
	ws.Difficulty = math.Max(ws.Difficulty, m.difficulty.ForSurvival(ws.Elapsed+dt))

	decision := m.survivalDirector.Decide(ws, dt)
	m.emit(decision.Events(ws.EffectiveWave)...)

	// 虫潮受存活上限约束，需计入本 tick 的常规生成
	if decision.Spawn() {
		ws.ActiveCreatures += len(decision.Requests)
	}
	m.emit(m.survival.Update(ws, dt)...)
}

func (m *Machine) updateRush(s *RushState, dt float64, active int) {
	if s.Expired() {
		return
	}
	s.Elapsed = math.Min(s.Elapsed+dt, s.Duration)
	if s.Expired() {
		// 到时的 tick 不再生成，由 Evaluate 结束回合
		s.Elapsed = s.Duration
		return
	}

	ws := &s.Wave
	ws.ActiveCreatures = active
	ws.Difficulty = math.Max(ws.Difficulty, m.difficulty.ForRound(s.Elapsed, s.Duration))

	decision := m.rushDirector.Decide(ws, dt)
	m.emit(decision.Events(ws.EffectiveWave)...)
}

// RecordKill 记录宿主上报的一次击杀
// 生物 ID 未注册时返回包装了 config.ErrNotFound 的错误，状态不变
func (m *Machine) RecordKill(creatureID string) error {
	stats, err := m.reg.Creature(creatureID)
	if err != nil {
		return fmt.Errorf("failed to record kill: %w", err)
	}

	switch s := m.state.(type) {
	case *QuestState:
		s.Progress.Killed++
	case *SurvivalState:
		s.Kills++
		m.emit(m.experience.AddExperience(&s.Experience, m.scaledExperience(s, stats.Experience))...)
	case *RushState:
		s.Kills++
		m.emit(m.score.OnKill(&s.Streak, stats.ScoreValue)...)
	default:
		return fmt.Errorf("failed to record kill of %s in %s: %w", creatureID, m.state.Kind(), ErrNotRunning)
	}
	return nil
}

// Evaluate 检查并触发当前模式的自动迁移（任务完成、时间耗尽）
func (m *Machine) Evaluate(active int) error {
	switch s := m.state.(type) {
	case *QuestState:
		if s.TimedOut() {
			return m.Fire(Event{Kind: TimerExpired})
		}
		if m.quests.Advance(&s.Progress, active) {
			return m.Fire(Event{Kind: MissionComplete})
		}
	case *RushState:
		if s.Expired() {
			return m.Fire(Event{Kind: TimerExpired})
		}
	}
	return nil
}

// GrantExperience 生存模式中直接获得经验（经验掉落物），同样受经验加成影响
func (m *Machine) GrantExperience(amount int) error {
	s, ok := m.state.(*SurvivalState)
	if !ok {
		return fmt.Errorf("failed to grant experience in %s: %w", m.state.Kind(), ErrNotRunning)
	}
	m.emit(m.experience.AddExperience(&s.Experience, m.scaledExperience(s, amount))...)
	return nil
}

func (m *Machine) scaledExperience(s *SurvivalState, amount int) int {
	bonus := systems.ComputePerkBonuses(m.reg.Perks, s.Experience.PerkStacks)
	return int(math.Round(float64(amount) * bonus.Experience))
}

// Difficulty 返回当前模式的难度及其在 [Min, Max] 区间内的归一化位置（0..1）
// 没有进行中的模式时返回 ok=false
func (m *Machine) Difficulty() (value, normalized float64, ok bool) {
	switch s := m.state.(type) {
	case *QuestState:
		value = s.Difficulty
	case *SurvivalState:
		value = s.Wave.Difficulty
	case *RushState:
		value = s.Wave.Difficulty
	default:
		return 0, 0, false
	}
	return value, m.difficulty.Normalize(value), true
}

// PerkBonuses 返回当前模式已持有技能的属性修正
// 任务模式与非运行状态没有技能，返回中性修正
func (m *Machine) PerkBonuses() systems.PerkBonuses {
	switch s := m.state.(type) {
	case *SurvivalState:
		return systems.ComputePerkBonuses(m.reg.Perks, s.Experience.PerkStacks)
	case *RushState:
		return systems.ComputePerkBonuses(m.reg.Perks, s.Experience.PerkStacks)
	}
	return systems.NoPerkBonuses()
}

// ChoosePerk 生存模式中选择一个待选技能
func (m *Machine) ChoosePerk(perkID string) error {
	s, ok := m.state.(*SurvivalState)
	if !ok {
		return fmt.Errorf("failed to choose perk in %s: %w", m.state.Kind(), ErrNotRunning)
	}
	evs, err := m.experience.ApplyPerk(&s.Experience, perkID)
	if err != nil {
		return err
	}
	m.emit(evs...)
	return nil
}

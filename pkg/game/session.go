package game

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/gonewx/crimson/pkg/components"
	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/ecs"
	"github.com/gonewx/crimson/pkg/entities"
	"github.com/gonewx/crimson/pkg/events"
	"github.com/gonewx/crimson/pkg/modes"
	"github.com/gonewx/crimson/pkg/systems"
)

// ErrUnknownEntity 实体不存在、不是生物或已被击杀
var ErrUnknownEntity = errors.New("unknown creature entity")

// ErrReplayIncomplete 录像回放结束时模式仍未结束
var ErrReplayIncomplete = errors.New("replay ended before the mode finished")

// SessionConfig 会话配置
type SessionConfig struct {
	Registries *config.Registries // 必填，已校验的注册表
	Seed       int64              // 随机种子，每次 Start 都从该种子重新开始
	Saves      *SaveManager       // 可为 nil，模式结束时写入成绩
	Record     bool               // 是否录制每局的宿主输入
}

// Session 驱动一局游戏的核心
//
// 宿主每个 tick 调用一次 Update；tick 内的顺序固定为：
// 模式计时 → 生成 → 应用宿主上报的击杀 → 计分 → 迁移检查 → 事件分发。
// 存活生物以实体形式保存在 EntityManager 中。
type Session struct {
	reg        *config.Registries
	seed       int64
	saves      *SaveManager
	record     bool
	machine    *modes.Machine
	entities   *ecs.EntityManager
	dispatcher *events.Dispatcher
	recorder   *RunRecorder

	pendingKills []ecs.EntityID
	killed       map[ecs.EntityID]bool

	playerX, playerY float64
	tick             uint64
	lastResult       *modes.Result
	resultHandled    bool
}

// NewSession 创建会话，初始状态为 NotStarted
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		reg:        cfg.Registries,
		seed:       cfg.Seed,
		saves:      cfg.Saves,
		record:     cfg.Record,
		entities:   ecs.NewEntityManager(),
		dispatcher: events.NewDispatcher(),
		killed:     make(map[ecs.EntityID]bool),
	}
	s.machine = modes.NewMachine(s.reg, systems.NewRNG(s.seed))
	return s
}

// Machine 返回当前模式状态机
func (s *Session) Machine() *modes.Machine { return s.machine }

// State 返回当前模式状态
func (s *Session) State() modes.State { return s.machine.State() }

// Entities 返回生物实体管理器
func (s *Session) Entities() *ecs.EntityManager { return s.entities }

// Dispatcher 返回事件分发器，宿主在此订阅核心事件
func (s *Session) Dispatcher() *events.Dispatcher { return s.dispatcher }

// Registries 返回注册表
func (s *Session) Registries() *config.Registries { return s.reg }

// Seed 返回会话种子
func (s *Session) Seed() int64 { return s.seed }

// Tick 返回本局已执行的 tick 数
func (s *Session) Tick() uint64 { return s.tick }

// LastResult 返回最近一次结束的模式结果，没有则为 nil
func (s *Session) LastResult() *modes.Result { return s.lastResult }

// Running 是否有进行中的模式
func (s *Session) Running() bool {
	switch s.machine.State().(type) {
	case *modes.QuestState, *modes.SurvivalState, *modes.RushState:
		return true
	}
	return false
}

// Recording 返回本局录像，未开启录制时为 nil
func (s *Session) Recording() *RunRecording {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Recording()
}

// SetPlayerPosition 更新玩家位置，新生物以此为原点生成
func (s *Session) SetPlayerPosition(x, y float64) {
	s.playerX, s.playerY = x, y
}

// PlayerPosition 返回玩家位置
func (s *Session) PlayerPosition() (float64, float64) {
	return s.playerX, s.playerY
}

// Start 开始一个模式
//
// 每次开始都会以会话种子重建状态机，因此同样的输入序列得到同样的结果。
//
// 参数：
//   - kind: KindQuest / KindSurvival / KindRush
//   - mission: 任务模式的起始任务索引
//   - loadout: Rush 模式装备名称，空表示第一个
func (s *Session) Start(kind modes.Kind, mission int, loadout string) error {
	var ev modes.Event
	switch kind {
	case modes.KindQuest:
		ev = modes.Event{Kind: modes.StartQuest, Mission: mission}
	case modes.KindSurvival:
		ev = modes.Event{Kind: modes.StartSurvival}
	case modes.KindRush:
		ev = modes.Event{Kind: modes.StartRush, Loadout: loadout}
	default:
		return fmt.Errorf("failed to start mode %s: %w", kind, modes.ErrNotRunning)
	}
	if s.Running() {
		return &modes.TransitionError{From: s.machine.State().Kind(), Event: ev.Kind}
	}

	machine := modes.NewMachine(s.reg, systems.NewRNG(s.seed))
	if err := machine.Fire(ev); err != nil {
		return fmt.Errorf("failed to start %s: %w", kind, err)
	}

	s.machine = machine
	// 新的实体管理器让实体 ID 从 1 开始，录像中的 ID 才能在回放时复现
	s.entities = ecs.NewEntityManager()
	s.pendingKills = nil
	clear(s.killed)
	s.tick = 0
	s.lastResult = nil
	s.resultHandled = false
	s.recorder = nil
	if s.record {
		s.recorder = NewRunRecorder(RunHeader{
			Mode:    kind.String(),
			Mission: mission,
			Loadout: loadout,
			Seed:    s.seed,
		})
	}

	log.Printf("[Session] Started %s (seed=%d)", kind, s.seed)
	s.flush(nil)
	return nil
}

// Update 推进一个 tick
//
// 参数：
//   - dt: 时间步长（秒），负数按 0 处理
//
// 返回：
//   - error: 任务脚本错误（此时任务已被中止）或迁移错误
func (s *Session) Update(dt float64) error {
	if dt < 0 {
		dt = 0
	}
	if s.recorder != nil && s.Running() {
		s.recorder.commit(s.tick, dt)
	}
	s.tick++

	updateErr := s.machine.Update(dt, s.ActiveCreatures())
	spawned := s.machine.Drain()
	s.spawn(spawned)

	s.applyKills()

	evalErr := s.machine.Evaluate(s.ActiveCreatures())
	s.flush(spawned)

	return errors.Join(updateErr, evalErr)
}

// Kill 宿主上报击杀一个生物，在下一次 Update 中生效
func (s *Session) Kill(id ecs.EntityID) error {
	if !s.Running() {
		return fmt.Errorf("failed to kill entity %d: %w", id, modes.ErrNotRunning)
	}
	if s.killed[id] || !ecs.HasComponent[*components.CreatureComponent](s.entities, id) {
		return fmt.Errorf("entity %d: %w", id, ErrUnknownEntity)
	}

	s.killed[id] = true
	s.pendingKills = append(s.pendingKills, id)
	if s.recorder != nil {
		s.recorder.kill(id)
	}
	return nil
}

// Damage 对生物造成伤害，生命值归零时上报击杀
//
// 返回：
//   - bool: 本次伤害是否击杀了该生物
func (s *Session) Damage(id ecs.EntityID, amount float64) (bool, error) {
	if s.killed[id] {
		return false, nil
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entities, id)
	if !ok {
		return false, fmt.Errorf("entity %d: %w", id, ErrUnknownEntity)
	}

	health.CurrentHealth = math.Max(0, health.CurrentHealth-amount)
	if health.CurrentHealth > 0 {
		return false, nil
	}
	if err := s.Kill(id); err != nil {
		return false, err
	}
	return true, nil
}

// PlayerDied 玩家死亡
// 同一帧内先于死亡上报的击杀会先计入结果
func (s *Session) PlayerDied() error {
	if err := s.end(modes.PlayerDied); err != nil {
		return err
	}
	if s.recorder != nil {
		s.recorder.died()
	}
	s.flush(nil)
	return nil
}

// Abort 玩家主动退出当前模式
// 已上报但尚未生效的击杀同样先计入结果
func (s *Session) Abort() error {
	if err := s.end(modes.Abort); err != nil {
		return err
	}
	if s.recorder != nil {
		s.recorder.aborted()
	}
	s.flush(nil)
	return nil
}

// end 结算待生效的击杀后触发结束事件
// 状态机不接受该事件时不动待处理的击杀，由 Fire 返回迁移错误
func (s *Session) end(kind modes.EventKind) error {
	if s.machine.Accepts(kind) {
		s.applyKills()
	}
	return s.machine.Fire(modes.Event{Kind: kind})
}

// ChoosePerk 生存模式中选择技能
func (s *Session) ChoosePerk(perkID string) error {
	if err := s.machine.ChoosePerk(perkID); err != nil {
		return err
	}
	if s.recorder != nil {
		s.recorder.perk(perkID)
	}
	s.flush(nil)
	return nil
}

// GrantExperience 生存模式中获得经验（经验掉落物）
func (s *Session) GrantExperience(amount int) error {
	if err := s.machine.GrantExperience(amount); err != nil {
		return err
	}
	if s.recorder != nil {
		s.recorder.experience(amount)
	}
	s.flush(nil)
	return nil
}

// Difficulty 返回当前难度及其归一化值（0..1），没有进行中的模式时 ok 为 false
func (s *Session) Difficulty() (value, normalized float64, ok bool) {
	return s.machine.Difficulty()
}

// PerkBonuses 返回当前模式已持有技能的属性修正
func (s *Session) PerkBonuses() systems.PerkBonuses {
	return s.machine.PerkBonuses()
}

// ActiveCreatures 存活生物数量（已上报但尚未生效的击杀仍计为存活）
func (s *Session) ActiveCreatures() int {
	return len(s.Creatures())
}

// Creatures 返回存活生物实体（升序）
func (s *Session) Creatures() []ecs.EntityID {
	return ecs.GetEntitiesWith2[*components.CreatureComponent, *components.HealthComponent](s.entities)
}

// spawn 为每个 SpawnRequested 创建生物实体
// 未注册的生物只放弃该次生成
func (s *Session) spawn(evs []events.Event) {
	for _, e := range evs {
		req, ok := e.(events.SpawnRequested)
		if !ok {
			continue
		}
		stats, err := s.reg.Creature(req.CreatureID)
		if err != nil {
			log.Printf("[Session] Skipping spawn: %v", err)
			continue
		}

		if _, err := entities.NewCreatureEntity(s.entities, stats, req, s.playerX, s.playerY); err != nil {
			log.Printf("[Session] Skipping spawn: %v", err)
		}
	}
}

// applyKills 将本 tick 之前上报的击杀交给状态机计分，并移除实体
func (s *Session) applyKills() {
	kills := s.pendingKills
	s.pendingKills = nil
	for _, id := range kills {
		delete(s.killed, id)
		creature, ok := ecs.GetComponent[*components.CreatureComponent](s.entities, id)
		if !ok {
			continue
		}
		s.entities.DestroyEntity(id)
		if !s.Running() {
			continue
		}
		if err := s.machine.RecordKill(creature.TypeID); err != nil {
			log.Printf("[Session] Failed to record kill of %d: %v", id, err)
		}
	}
	s.entities.RemoveMarkedEntities()
}

// flush 分发事件并在模式结束时结算
// first 中的事件（本 tick 的生成请求）先于计分事件分发
func (s *Session) flush(first []events.Event) {
	s.dispatcher.DispatchAll(first)
	s.dispatcher.DispatchAll(s.machine.Drain())

	ended, ok := s.machine.State().(*modes.EndedState)
	if !ok || s.resultHandled {
		return
	}
	s.resultHandled = true
	result := ended.Result
	s.lastResult = &result
	s.clearCreatures()

	if s.recorder != nil {
		s.recorder.flush(s.tick)
		s.recorder.finish(result)
	}

	if s.saves != nil {
		s.saves.RecordResult(result)
		if err := s.saves.Save(); err != nil {
			log.Printf("[Session] Failed to save result: %v", err)
		}
	}
	log.Printf("[Session] %s ended: %s (time=%.2f kills=%d score=%d)",
		result.Mode, result.Outcome, result.Time, result.Kills, result.Score)
}

func (s *Session) clearCreatures() {
	s.entities.Clear()
	s.pendingKills = nil
	clear(s.killed)
}

// Replay 以录像中的种子与输入重新运行一局
//
// 参数：
//   - reg: 注册表（需与录制时一致）
//   - rec: 录像
//
// 返回：
//   - *modes.Result: 回放得到的结果
//   - error: 输入无法重放或回放结束时模式未结束
func Replay(reg *config.Registries, rec *RunRecording) (*modes.Result, error) {
	kind, ok := modes.ParseKind(rec.Header.Mode)
	if !ok {
		return nil, fmt.Errorf("failed to replay: unknown mode %q", rec.Header.Mode)
	}

	s := NewSession(SessionConfig{Registries: reg, Seed: rec.Header.Seed})
	if err := s.Start(kind, rec.Header.Mission, rec.Header.Loadout); err != nil {
		return nil, fmt.Errorf("failed to replay: %w", err)
	}

	for _, f := range rec.Frames {
		for _, id := range f.Kills {
			if err := s.Kill(ecs.EntityID(id)); err != nil {
				return nil, fmt.Errorf("failed to replay tick %d: %w", f.Tick, err)
			}
		}
		for _, g := range f.Grants {
			var err error
			if g.Perk != "" {
				err = s.ChoosePerk(g.Perk)
			} else {
				err = s.GrantExperience(g.Experience)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to replay tick %d: %w", f.Tick, err)
			}
		}
		if f.Died {
			if err := s.PlayerDied(); err != nil {
				return nil, fmt.Errorf("failed to replay tick %d: %w", f.Tick, err)
			}
		}
		if f.Aborted {
			if err := s.Abort(); err != nil {
				return nil, fmt.Errorf("failed to replay tick %d: %w", f.Tick, err)
			}
		}
		if f.Final {
			break
		}
		if err := s.Update(f.Dt); err != nil {
			log.Printf("[Session] Replay tick %d: %v", f.Tick, err)
		}
	}

	if s.LastResult() == nil {
		return nil, ErrReplayIncomplete
	}
	return s.LastResult(), nil
}

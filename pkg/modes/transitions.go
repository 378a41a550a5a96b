package modes

import (
	"fmt"
	"log"

	"github.com/gonewx/crimson/pkg/components"
)

func (m *Machine) startQuest(ev Event) (State, error) {
	m.questCompleted = 0
	m.questKills = 0
	m.questTime = 0
	return m.enterMission(ev.Mission)
}

func (m *Machine) enterMission(index int) (State, error) {
	s := &QuestState{Difficulty: m.difficulty.ForQuest(index)}
	if err := m.quests.Start(&s.Progress, index); err != nil {
		return nil, err
	}

	mission, err := m.reg.Quests.Mission(index)
	if err != nil {
		return nil, err
	}
	s.Objectives = QuestObjectives{
		MissionID:  mission.ID,
		KillTarget: mission.TotalCreatures(),
		TimeLimit:  mission.TimeLimit,
		FinalIndex: m.reg.Quests.Count() - 1,
	}
	return s, nil
}

// nextMission 任务 N 完成后进入任务 N+1，最后一个任务完成则胜利结束
func (m *Machine) nextMission(ev Event) (State, error) {
	s := m.state.(*QuestState)
	m.questCompleted++
	m.accumulateQuest(s)

	next := s.MissionIndex() + 1
	if next > s.Objectives.FinalIndex {
		return m.questResult(s, OutcomeVictory, ev.Kind), nil
	}
	return m.enterMission(next)
}

func (m *Machine) failQuest(ev Event) (State, error) {
	s := m.state.(*QuestState)
	m.accumulateQuest(s)
	return m.questResult(s, OutcomeDefeat, ev.Kind), nil
}

func (m *Machine) abortQuest(ev Event) (State, error) {
	s := m.state.(*QuestState)
	m.accumulateQuest(s)
	return m.questResult(s, OutcomeAborted, ev.Kind), nil
}

func (m *Machine) accumulateQuest(s *QuestState) {
	m.questKills += s.Progress.Killed
	m.questTime += s.Progress.Elapsed
}

func (m *Machine) questResult(s *QuestState, outcome Outcome, trigger EventKind) *EndedState {
	return &EndedState{Result: Result{
		Mode:              KindQuest,
		Outcome:           outcome,
		Trigger:           trigger,
		MissionIndex:      s.MissionIndex(),
		MissionsCompleted: m.questCompleted,
		Time:              m.questTime,
		Kills:             m.questKills,
	}}
}

func (m *Machine) startSurvival(Event) (State, error) {
	s := &SurvivalState{}
	s.Wave.Difficulty = m.difficulty.ForSurvival(0)
	m.survival.Init(&s.Wave)
	m.experience.Init(&s.Experience)
	return s, nil
}

// endSurvival 记录生存时间与击杀数
func (m *Machine) endSurvival(ev Event) (State, error) {
	s := m.state.(*SurvivalState)
	outcome := OutcomeDefeat
	if ev.Kind == Abort {
		outcome = OutcomeAborted
	}
	return &EndedState{Result: Result{
		Mode:    KindSurvival,
		Outcome: outcome,
		Trigger: ev.Kind,
		Time:    s.Wave.Elapsed,
		Kills:   s.Kills,
		Level:   s.Experience.Level,
	}}, nil
}

func (m *Machine) startRush(ev Event) (State, error) {
	rush := m.reg.Modes.Rush
	loadout, err := rush.Loadout(ev.Loadout)
	if err != nil {
		return nil, fmt.Errorf("failed to start rush: %w", err)
	}

	s := &RushState{
		Duration: rush.Duration,
		Loadout:  loadout,
	}
	m.experience.Init(&s.Experience)
	for _, perk := range loadout.Perks {
		if err := m.experience.GrantPerk(&s.Experience, perk); err != nil {
			return nil, fmt.Errorf("failed to start rush: %w", err)
		}
	}
	m.score.Reset(&s.Streak)
	s.Wave.Difficulty = m.difficulty.Min()
	log.Printf("[ModeMachine] Rush loadout: %s (%s)", loadout.Name, loadout.Weapon)
	return s, nil
}

// endRush 结算 Rush 得分
// 提前结束（死亡）按剩余时间奖励；自然到时与主动退出没有时间奖励
func (m *Machine) endRush(ev Event) (State, error) {
	s := m.state.(*RushState)

	outcome := OutcomeFinished
	switch ev.Kind {
	case TimerExpired:
		s.Elapsed = s.Duration
	case PlayerDied:
		outcome = OutcomeDefeat
		m.emit(m.score.TimeBonus(&s.Streak, s.Remaining())...)
	case Abort:
		outcome = OutcomeAborted
	}

	return &EndedState{Result: Result{
		Mode:    KindRush,
		Outcome: outcome,
		Trigger: ev.Kind,
		Time:    s.Elapsed,
		Kills:   s.Kills,
		Score:   s.Streak.Score,
	}}, nil
}

func (m *Machine) reset(Event) (State, error) {
	m.questCompleted = 0
	m.questKills = 0
	m.questTime = 0
	return &NotStartedState{}, nil
}

// Streak 返回 Rush 模式的连杀状态，非 Rush 模式返回 false
func (m *Machine) Streak() (components.KillStreakComponent, bool) {
	if s, ok := m.state.(*RushState); ok {
		return s.Streak, true
	}
	return components.KillStreakComponent{}, false
}

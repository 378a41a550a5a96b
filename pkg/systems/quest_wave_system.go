package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/crimson/pkg/components"
	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/events"
)

// QuestWaveSystem 任务波次脚本执行器
//
// 每个波次在 SpawnDelay 后开始，每条生成指令每隔
// Interval × CadenceScale(difficulty) 秒生成一只生物，直到达到 Count。
// 波次内所有指令耗尽且场上没有存活生物时波次完成，最后一个波次完成即任务完成。
type QuestWaveSystem struct {
	quests   *config.QuestConfig
	director *SpawnDirector
}

// NewQuestWaveSystem 创建任务波次系统
func NewQuestWaveSystem(quests *config.QuestConfig, director *SpawnDirector) *QuestWaveSystem {
	return &QuestWaveSystem{
		quests:   quests,
		director: director,
	}
}

// Start 初始化指定任务的进度
func (q *QuestWaveSystem) Start(p *components.QuestProgressComponent, missionIndex int) error {
	mission, err := q.quests.Mission(missionIndex)
	if err != nil {
		return fmt.Errorf("failed to start mission: %w", err)
	}

	*p = components.QuestProgressComponent{MissionIndex: missionIndex}
	q.enterWave(p, mission, 0)
	log.Printf("[QuestWaveSystem] Mission %d (%s) started, %d waves", missionIndex, mission.ID, len(mission.Waves))
	return nil
}

func (q *QuestWaveSystem) enterWave(p *components.QuestProgressComponent, mission *config.MissionConfig, index int) {
	p.WaveIndex = index
	p.WaveStarted = false
	p.WaveDelay = mission.Waves[index].SpawnDelay
	p.Cursors = make([]components.SpawnCursor, len(mission.Waves[index].Spawns))
}

// Update 推进当前波次并返回本 tick 的生成事件
// 生物 ID 未注册时返回错误，调用方应中止任务
func (q *QuestWaveSystem) Update(p *components.QuestProgressComponent, difficulty, dt float64, active int) ([]events.Event, error) {
	mission, err := q.quests.Mission(p.MissionIndex)
	if err != nil {
		return nil, err
	}

	p.Elapsed += dt
	if p.WaveIndex >= len(mission.Waves) {
		return nil, nil
	}

	var evs []events.Event
	if !p.WaveStarted {
		p.WaveDelay -= dt
		if p.WaveDelay > 0 {
			return nil, nil
		}
		p.WaveStarted = true
		// 等待结束后多出的时间计入第一次生成
		for i := range p.Cursors {
			p.Cursors[i].Timer = p.WaveDelay
		}
		evs = append(evs, events.WaveStarted{Wave: p.WaveIndex + 1})
		dt = 0
	}

	wave := mission.Waves[p.WaveIndex]
	scale := q.director.CadenceScale(difficulty)
	capacity := q.director.Capacity(active)

	for i, entry := range wave.Spawns {
		c := &p.Cursors[i]
		c.Timer -= dt
		for c.Spawned < entry.Count && c.Timer <= 0 && capacity > 0 {
			req, err := q.director.Request(entry.Creature, difficulty, components.SpawnSourceScript)
			if err != nil {
				return evs, fmt.Errorf("mission %s wave %d: %w", mission.ID, p.WaveIndex, err)
			}
			evs = append(evs, req)
			c.Spawned++
			p.Spawned++
			capacity--

			if step := entry.Interval * scale; step > 0 {
				c.Timer += step
			}
		}
	}
	return evs, nil
}

// WaveExhausted 当前波次的所有生成指令是否已耗尽
func (q *QuestWaveSystem) WaveExhausted(p *components.QuestProgressComponent) bool {
	mission, err := q.quests.Mission(p.MissionIndex)
	if err != nil || p.WaveIndex >= len(mission.Waves) {
		return true
	}
	if !p.WaveStarted {
		return false
	}
	for i, entry := range mission.Waves[p.WaveIndex].Spawns {
		if p.Cursors[i].Spawned < entry.Count {
			return false
		}
	}
	return true
}

// Advance 检查波次完成并推进到下一波
// 返回 true 表示最后一个波次已完成（任务完成）
func (q *QuestWaveSystem) Advance(p *components.QuestProgressComponent, active int) bool {
	if active > 0 || !q.WaveExhausted(p) {
		return false
	}

	mission, err := q.quests.Mission(p.MissionIndex)
	if err != nil {
		return false
	}
	if p.WaveIndex+1 >= len(mission.Waves) {
		p.WaveIndex = len(mission.Waves)
		return true
	}

	q.enterWave(p, mission, p.WaveIndex+1)
	log.Printf("[QuestWaveSystem] Mission %s: wave %d/%d", mission.ID, p.WaveIndex+1, len(mission.Waves))
	return false
}

package systems

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/gonewx/crimson/pkg/components"
	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/events"
)

// ErrNoCandidates 当前波次没有可随机生成的生物
var ErrNoCandidates = errors.New("no spawnable creature for wave")

// SpawnDecision 一个 tick 的生成决策
type SpawnDecision struct {
	Requests    []events.SpawnRequested
	WaveChanged bool // 有效波次在本 tick 推进
}

// Spawn 本 tick 是否需要生成
func (d SpawnDecision) Spawn() bool {
	return len(d.Requests) > 0
}

// Events 将决策转换为事件列表
func (d SpawnDecision) Events(wave int) []events.Event {
	evs := make([]events.Event, 0, len(d.Requests)+1)
	if d.WaveChanged {
		evs = append(evs, events.WaveStarted{Wave: wave})
	}
	for _, req := range d.Requests {
		evs = append(evs, req)
	}
	return evs
}

// WeightedCreature 加权后的候选生物
type WeightedCreature struct {
	ID     string
	Weight float64
}

// SpawnDirector 生成导演
// 根据难度决定生成节奏、批量和生物类型。除了返回的决策和
// WaveStateComponent 中的计时器外没有副作用，实体创建由调用方负责。
type SpawnDirector struct {
	creatures  *config.CreatureStatsConfig
	profile    config.SpawnProfile
	difficulty *DifficultyEngine
	rng        *RNG
}

// NewSpawnDirector 创建生成导演
// 参数：
//
//	creatures - 生物注册表
//	profile - 当前模式的生成节奏参数
//	difficulty - 难度引擎（提供难度下限和血量倍率）
//	rng - 共享的可复现随机数源
func NewSpawnDirector(creatures *config.CreatureStatsConfig, profile config.SpawnProfile, difficulty *DifficultyEngine, rng *RNG) *SpawnDirector {
	return &SpawnDirector{
		creatures:  creatures,
		profile:    profile,
		difficulty: difficulty,
		rng:        rng,
	}
}

// Profile 返回生成节奏参数
func (s *SpawnDirector) Profile() config.SpawnProfile {
	return s.profile
}

// Interval 计算生成间隔
// 公式: max(MinInterval, BaseInterval / max(difficulty, 1))
// 难度越高间隔越短，且不低于下限；难度不足 1 时按基础间隔
func (s *SpawnDirector) Interval(difficulty float64) float64 {
	d := math.Max(difficulty, 1)
	return math.Max(s.profile.MinInterval, s.profile.BaseInterval/d)
}

// CadenceScale 返回相对基础间隔的节奏倍率，取值 (0, 1]
// 任务脚本的生成间隔乘以该倍率
func (s *SpawnDirector) CadenceScale(difficulty float64) float64 {
	return s.Interval(difficulty) / s.profile.BaseInterval
}

// BatchSize 计算每次生成的数量
// 公式: min(MaxBatch, MinBatch + floor(difficulty * 0.5))
func (s *SpawnDirector) BatchSize(difficulty float64) int {
	n := s.profile.MinBatch + int(math.Floor(difficulty*0.5))
	if n > s.profile.MaxBatch {
		n = s.profile.MaxBatch
	}
	if n < s.profile.MinBatch {
		n = s.profile.MinBatch
	}
	return n
}

// EffectiveWave 由已过时间计算有效波次（从 1 开始）
func (s *SpawnDirector) EffectiveWave(elapsed float64) int {
	if elapsed <= 0 {
		return 1
	}
	return int(elapsed/s.profile.WaveSeconds) + 1
}

// Weights 返回当前波次可生成的生物及其加权后的权重（按 ID 排序）
// 权重 = spawnWeight * (1 + ToughnessBias * (difficulty - Min) * (toughness - 1))
// 难度越高越偏向高阶生物
func (s *SpawnDirector) Weights(difficulty float64, wave int) []WeightedCreature {
	bias := s.profile.ToughnessBias * math.Max(0, difficulty-s.difficulty.Min())

	result := make([]WeightedCreature, 0, len(s.creatures.IDs()))
	for _, id := range s.creatures.IDs() {
		stats := s.creatures.Creatures[id]
		if stats.SpawnWeight <= 0 || stats.MinWave > wave {
			continue
		}
		w := float64(stats.SpawnWeight) * (1 + bias*float64(stats.Toughness-1))
		result = append(result, WeightedCreature{ID: id, Weight: w})
	}
	return result
}

// Sample 按加权概率抽取一个生物 ID
func (s *SpawnDirector) Sample(difficulty float64, wave int) (string, error) {
	candidates := s.Weights(difficulty, wave)
	total := 0.0
	for _, c := range candidates {
		total += c.Weight
	}
	if total <= 0 {
		return "", fmt.Errorf("wave %d: %w", wave, ErrNoCandidates)
	}

	roll := s.rng.Float64() * total
	acc := 0.0
	for _, c := range candidates {
		acc += c.Weight
		if roll < acc {
			return c.ID, nil
		}
	}
	return candidates[len(candidates)-1].ID, nil
}

// RandomOffset 返回相对玩家的随机极坐标偏移
func (s *SpawnDirector) RandomOffset() (angle, distance float64) {
	angle = s.rng.Float64() * 2 * math.Pi
	distance = s.rng.Range(s.profile.MinDistance, s.profile.MaxDistance)
	return angle, distance
}

// Capacity 返回在存活上限内还能生成的数量，MaxActive 为 0 时不限
func (s *SpawnDirector) Capacity(active int) int {
	if s.profile.MaxActive <= 0 {
		return math.MaxInt32
	}
	if c := s.profile.MaxActive - active; c > 0 {
		return c
	}
	return 0
}

// Request 为指定生物构造生成请求
// 生物 ID 不存在时返回包装了 config.ErrNotFound 的错误
func (s *SpawnDirector) Request(creatureID string, difficulty float64, source components.SpawnSource) (events.SpawnRequested, error) {
	if _, err := s.creatures.Get(creatureID); err != nil {
		return events.SpawnRequested{}, fmt.Errorf("failed to build spawn request: %w", err)
	}
	angle, distance := s.RandomOffset()
	return events.SpawnRequested{
		CreatureID:       creatureID,
		Angle:            angle,
		Distance:         distance,
		HealthMultiplier: s.difficulty.HealthMultiplier(difficulty),
		Source:           string(source),
	}, nil
}

// Decide 推进计时器并决定本 tick 是否生成
// 调用方需在调用前更新 ws.Difficulty 与 ws.ActiveCreatures。
// 每个 tick 最多触发一次生成，即使 dt 跨越了多个间隔。
func (s *SpawnDirector) Decide(ws *components.WaveStateComponent, dt float64) SpawnDecision {
	var decision SpawnDecision
	if dt < 0 {
		dt = 0
	}

	ws.Elapsed += dt
	wave := s.EffectiveWave(ws.Elapsed)
	if wave != ws.EffectiveWave {
		decision.WaveChanged = ws.EffectiveWave != 0
		ws.EffectiveWave = wave
	}

	ws.SpawnTimer -= dt
	if ws.SpawnTimer > 0 {
		return decision
	}

	interval := s.Interval(ws.Difficulty)
	ws.SpawnTimer += interval
	if ws.SpawnTimer <= 0 {
		ws.SpawnTimer = interval
	}

	batch := s.BatchSize(ws.Difficulty)
	if c := s.Capacity(ws.ActiveCreatures); batch > c {
		batch = c
	}

	for i := 0; i < batch; i++ {
		id, err := s.Sample(ws.Difficulty, ws.EffectiveWave)
		if err != nil {
			log.Printf("[SpawnDirector] Skipping spawn: %v", err)
			break
		}
		req, err := s.Request(id, ws.Difficulty, components.SpawnSourceRegular)
		if err != nil {
			log.Printf("[SpawnDirector] Skipping spawn: %v", err)
			continue
		}
		decision.Requests = append(decision.Requests, req)
	}

	ws.TotalSpawned += len(decision.Requests)
	return decision
}

// Burst 一次性生成 n 个同种生物（虫潮），受存活上限约束
func (s *SpawnDirector) Burst(creatureID string, n int, ws *components.WaveStateComponent, source components.SpawnSource) ([]events.SpawnRequested, error) {
	if c := s.Capacity(ws.ActiveCreatures); n > c {
		n = c
	}
	reqs := make([]events.SpawnRequested, 0, n)
	for i := 0; i < n; i++ {
		req, err := s.Request(creatureID, ws.Difficulty, source)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	ws.TotalSpawned += len(reqs)
	return reqs, nil
}

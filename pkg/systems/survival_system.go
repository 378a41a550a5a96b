package systems

import (
	"log"

	"github.com/gonewx/crimson/pkg/components"
	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/events"
)

// SurvivalSystem 生存模式的周期事件：虫潮与掉落物
// 常规生成由 SpawnDirector 负责，本系统只处理额外的定时事件
type SurvivalSystem struct {
	director *SpawnDirector
	weapons  *config.WeaponStatsConfig
	cfg      config.SurvivalConfig
	rng      *RNG
}

// NewSurvivalSystem 创建生存模式系统
func NewSurvivalSystem(director *SpawnDirector, weapons *config.WeaponStatsConfig, cfg config.SurvivalConfig, rng *RNG) *SurvivalSystem {
	return &SurvivalSystem{
		director: director,
		weapons:  weapons,
		cfg:      cfg,
		rng:      rng,
	}
}

// Init 初始化周期计时器
func (s *SurvivalSystem) Init(ws *components.WaveStateComponent) {
	ws.SwarmTimer = s.cfg.SwarmInterval
	ws.PickupTimer = s.cfg.PickupInterval
}

// SwarmSize 计算虫潮规模
// 公式: min(SwarmMaxSize, SwarmBaseSize + floor(difficulty))
func (s *SurvivalSystem) SwarmSize(difficulty float64) int {
	n := s.cfg.SwarmBaseSize + int(difficulty)
	if n > s.cfg.SwarmMaxSize {
		n = s.cfg.SwarmMaxSize
	}
	return n
}

// Update 推进虫潮和掉落计时器，返回本 tick 触发的事件
// 必须在 SpawnDirector.Decide 之后调用（依赖其更新的 Elapsed）
func (s *SurvivalSystem) Update(ws *components.WaveStateComponent, dt float64) []events.Event {
	var evs []events.Event

	if s.cfg.SwarmInterval > 0 {
		ws.SwarmTimer -= dt
		if ws.SwarmTimer <= 0 && ws.Elapsed > s.cfg.SwarmAfter {
			ws.SwarmTimer = s.cfg.SwarmInterval
			evs = append(evs, s.swarm(ws)...)
		}
	}

	if s.cfg.PickupInterval > 0 {
		ws.PickupTimer -= dt
		if ws.PickupTimer <= 0 {
			ws.PickupTimer = s.cfg.PickupInterval
			if ev, ok := s.pickup(); ok {
				evs = append(evs, ev)
			}
		}
	}

	return evs
}

func (s *SurvivalSystem) swarm(ws *components.WaveStateComponent) []events.Event {
	creature, err := s.director.Sample(ws.Difficulty, ws.EffectiveWave)
	if err != nil {
		log.Printf("[SurvivalSystem] Swarm skipped: %v", err)
		return nil
	}

	reqs, err := s.director.Burst(creature, s.SwarmSize(ws.Difficulty), ws, components.SpawnSourceSwarm)
	if err != nil {
		log.Printf("[SurvivalSystem] Swarm aborted: %v", err)
		return nil
	}
	log.Printf("[SurvivalSystem] Swarm triggered: %s x%d at %.1fs", creature, len(reqs), ws.Elapsed)

	evs := make([]events.Event, 0, len(reqs)+1)
	evs = append(evs, events.WaveStarted{Wave: ws.EffectiveWave, Swarm: true})
	for _, r := range reqs {
		evs = append(evs, r)
	}
	return evs
}

// SampleWeapon 按掉落权重抽取武器，没有可掉落武器时返回 false
func (s *SurvivalSystem) SampleWeapon() (string, bool) {
	total, ok := s.weaponDropWeight()
	if !ok {
		return "", false
	}

	roll := s.rng.Intn(total)
	acc := 0
	for _, id := range s.weapons.IDs() {
		acc += s.weapons.Weapons[id].DropWeight
		if roll < acc {
			return id, true
		}
	}
	return "", false
}

// SampleBonus 按权重抽取掉落物种类
// 没有可掉落武器时武器不参与抽取
func (s *SurvivalSystem) SampleBonus() config.BonusKind {
	_, weapons := s.weaponDropWeight()
	pool := make([]config.BonusStats, 0, len(config.Bonuses()))
	total := 0
	for _, b := range config.Bonuses() {
		if b.Kind == config.BonusWeapon && !weapons {
			continue
		}
		pool = append(pool, b)
		total += b.Weight
	}

	roll := s.rng.Intn(total)
	for _, b := range pool {
		roll -= b.Weight
		if roll < 0 {
			return b.Kind
		}
	}
	return pool[len(pool)-1].Kind
}

// weaponDropWeight 返回武器掉落总权重以及是否存在可掉落武器
func (s *SurvivalSystem) weaponDropWeight() (int, bool) {
	total := 0
	for _, id := range s.weapons.IDs() {
		total += s.weapons.Weapons[id].DropWeight
	}
	return total, total > 0
}

func (s *SurvivalSystem) pickup() (events.Event, bool) {
	req := events.PickupRequested{Bonus: string(s.SampleBonus())}
	if req.Bonus == string(config.BonusWeapon) {
		id, ok := s.SampleWeapon()
		if !ok {
			return nil, false
		}
		req.WeaponID = id
	}
	angle, distance := s.director.RandomOffset()
	// 掉落物放在比生物更近的位置
	req.Angle, req.Distance = angle, distance/4
	log.Printf("[SurvivalSystem] Pickup dropped: %s %s", req.Bonus, req.WeaponID)
	return req, true
}

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

// ErrPerkNotOffered 选择了不在当前选项中的技能
var ErrPerkNotOffered = errors.New("perk not offered")

// ExperienceSystem 生存模式的经验、升级与技能选项
type ExperienceSystem struct {
	perks *config.PerkStatsConfig
	cfg   config.ExperienceConfig
	rng   *RNG
}

// NewExperienceSystem 创建经验系统
func NewExperienceSystem(perks *config.PerkStatsConfig, cfg config.ExperienceConfig, rng *RNG) *ExperienceSystem {
	return &ExperienceSystem{
		perks: perks,
		cfg:   cfg,
		rng:   rng,
	}
}

// Init 初始化经验组件
func (e *ExperienceSystem) Init(xp *components.ExperienceComponent) {
	*xp = components.ExperienceComponent{
		Level:      1,
		ToNext:     e.cfg.FirstLevel,
		PerkStacks: make(map[string]int),
	}
}

// AddExperience 增加经验，可能连续升级
// 每次升级累积一次待选技能；没有进行中的选项时生成新选项并返回 PerkOffered
func (e *ExperienceSystem) AddExperience(xp *components.ExperienceComponent, amount int) []events.Event {
	if amount <= 0 {
		return nil
	}

	xp.Experience += amount
	for xp.Experience >= xp.ToNext {
		xp.Experience -= xp.ToNext
		xp.Level++
		xp.ToNext = int(math.Round(float64(xp.ToNext) * e.cfg.Growth))
		xp.Pending++
		log.Printf("[ExperienceSystem] Level up: %d (next at %d)", xp.Level, xp.ToNext)
	}

	return e.refreshOffer(xp)
}

func (e *ExperienceSystem) refreshOffer(xp *components.ExperienceComponent) []events.Event {
	if xp.Pending == 0 || len(xp.Offer) > 0 {
		return nil
	}
	xp.Offer = e.OfferPerks(xp)
	if len(xp.Offer) == 0 {
		// 所有技能都已满级
		xp.Pending = 0
		return nil
	}
	return []events.Event{events.PerkOffered{Level: xp.Level, Choices: append([]string(nil), xp.Offer...)}}
}

// OfferPerks 按稀有度权重抽取不重复的技能，排除已满层的技能
func (e *ExperienceSystem) OfferPerks(xp *components.ExperienceComponent) []string {
	type candidate struct {
		id     string
		weight int
	}
	var pool []candidate
	for _, id := range e.perks.IDs() {
		perk := e.perks.Perks[id]
		if xp.PerkStacks[id] >= perk.StackLimit() {
			continue
		}
		pool = append(pool, candidate{id: id, weight: perk.Rarity.Weight()})
	}

	n := e.cfg.PerkChoices
	if n > len(pool) {
		n = len(pool)
	}

	choices := make([]string, 0, n)
	for len(choices) < n {
		total := 0
		for _, c := range pool {
			total += c.weight
		}
		roll := e.rng.Intn(total)
		for i, c := range pool {
			roll -= c.weight
			if roll < 0 {
				choices = append(choices, c.id)
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}
	return choices
}

// ApplyPerk 选择当前选项中的技能并叠加一层
// 技能未注册返回 config.ErrNotFound，不在选项中返回 ErrPerkNotOffered
func (e *ExperienceSystem) ApplyPerk(xp *components.ExperienceComponent, perkID string) ([]events.Event, error) {
	if _, err := e.perks.Get(perkID); err != nil {
		return nil, fmt.Errorf("failed to apply perk: %w", err)
	}

	offered := false
	for _, id := range xp.Offer {
		if id == perkID {
			offered = true
			break
		}
	}
	if !offered {
		return nil, fmt.Errorf("perk %q: %w", perkID, ErrPerkNotOffered)
	}

	xp.PerkStacks[perkID]++
	xp.Pending--
	xp.Offer = nil
	log.Printf("[ExperienceSystem] Perk %s applied (stack %d)", perkID, xp.PerkStacks[perkID])

	return e.refreshOffer(xp), nil
}

// GrantPerk 直接授予技能（Rush 装备），超过上限时保持上限
func (e *ExperienceSystem) GrantPerk(xp *components.ExperienceComponent, perkID string) error {
	perk, err := e.perks.Get(perkID)
	if err != nil {
		return fmt.Errorf("failed to grant perk: %w", err)
	}
	if xp.PerkStacks[perkID] < perk.StackLimit() {
		xp.PerkStacks[perkID]++
	}
	return nil
}

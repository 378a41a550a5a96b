package scenes

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/gonewx/crimson/pkg/components"
	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/ecs"
	"github.com/gonewx/crimson/pkg/events"
	"github.com/gonewx/crimson/pkg/game"
	"github.com/gonewx/crimson/pkg/modes"
	"github.com/gonewx/crimson/pkg/systems"
)

// bannerDuration 提示文字显示时长（秒）
const bannerDuration = 2.5

// Pickup 场地上的掉落物
type Pickup struct {
	Bonus    config.BonusKind
	WeaponID string // 仅武器掉落
	X, Y     float64
	TTL      float64 // 剩余停留时间，到 0 消失
}

// Shot 最近一次射击，用于绘制弹道
type Shot struct {
	FromX, FromY float64
	ToX, ToY     float64
	TTL          float64
}

// Arena 宿主侧的场地模拟
//
// 负责玩家移动、生物追击、自动射击、接触伤害和拾取，
// 将击杀与死亡上报给会话，再推进会话的 tick。
type Arena struct {
	session *game.Session

	PlayerX, PlayerY float64
	PlayerHealth     float64
	maxHealth        float64
	revivesUsed      int

	// Effects 持续中的掉落物效果及剩余秒数
	Effects map[config.BonusKind]float64

	Weapon       config.WeaponStats
	Ammo         int
	fireCooldown float64
	reloadTimer  float64

	Pickups     []Pickup
	Shots       []Shot
	PerkChoices []string
	Score       events.ScoreChanged
	Wave        int
	Banner      string
	bannerTimer float64
}

// NewArena 创建场地并订阅会话事件
// 会话需已开始一个模式
func NewArena(session *game.Session) *Arena {
	a := &Arena{
		session: session,
		Effects: make(map[config.BonusKind]float64),
		Score:   events.ScoreChanged{Multiplier: 1},
	}
	a.maxHealth = config.PlayerMaxHealth + session.PerkBonuses().MaxHealth
	a.PlayerHealth = a.maxHealth
	a.PlayerX, a.PlayerY = config.ArenaCenter()
	session.SetPlayerPosition(a.PlayerX, a.PlayerY)

	weaponID := session.Registries().Weapons.DefaultWeapon
	if rush, ok := session.State().(*modes.RushState); ok {
		weaponID = rush.Loadout.Weapon
	}
	a.equip(weaponID)

	d := session.Dispatcher()
	d.Subscribe(events.TypePickupRequested, events.ListenerFunc(a.onPickup))
	d.Subscribe(events.TypePerkOffered, events.ListenerFunc(a.onPerkOffered))
	d.Subscribe(events.TypeScoreChanged, events.ListenerFunc(a.onScore))
	d.Subscribe(events.TypeWaveStarted, events.ListenerFunc(a.onWave))
	d.Subscribe(events.TypeModeTransitioned, events.ListenerFunc(a.onTransition))
	return a
}

// Session 返回会话
func (a *Arena) Session() *game.Session {
	return a.session
}

func (a *Arena) equip(weaponID string) {
	weapon, err := a.session.Registries().Weapon(weaponID)
	if err != nil {
		log.Printf("[Arena] Cannot equip weapon: %v", err)
		return
	}
	a.Weapon = weapon
	a.Ammo = weapon.AmmoCapacity
	a.reloadTimer = 0
	a.fireCooldown = 0
}

// Step 推进一个 tick
//
// 参数：
//   - dt: 时间步长（秒）
//   - moveX, moveY: 移动方向输入（-1..1），长度大于 1 时会被归一化
func (a *Arena) Step(dt, moveX, moveY float64) error {
	if a.session.Running() {
		mod := a.Modifiers()
		a.syncMaxHealth(mod)
		a.movePlayer(dt, moveX, moveY, mod)
		a.moveCreatures(dt, mod)
		a.collectPickups()
		a.fire(dt, mod)
		if err := a.contactDamage(dt, mod); err != nil {
			return err
		}
	}

	err := a.session.Update(dt)
	a.clampSpawned()
	a.tickEffects(dt)
	return err
}

// ChoosePerk 选择第 index 个待选技能
func (a *Arena) ChoosePerk(index int) error {
	if index < 0 || index >= len(a.PerkChoices) {
		return fmt.Errorf("perk choice %d out of range (%d offered)", index, len(a.PerkChoices))
	}
	choice := a.PerkChoices[index]
	a.PerkChoices = nil
	return a.session.ChoosePerk(choice)
}

// Modifiers 返回当前生效的属性修正：技能修正叠加持续中的掉落物效果
func (a *Arena) Modifiers() systems.PerkBonuses {
	mod := a.session.PerkBonuses()
	for _, b := range config.Bonuses() {
		if !b.Timed() || a.Effects[b.Kind] <= 0 {
			continue
		}
		switch b.Kind {
		case config.BonusSpeed:
			mod.Speed *= b.Factor
		case config.BonusFireRate:
			mod.FireRate *= b.Factor
		case config.BonusDamage:
			mod.Damage *= b.Factor
		case config.BonusInvincibility, config.BonusShield:
			mod.DamageTaken *= b.Factor
		}
	}
	return mod
}

// MaxHealth 返回当前最大生命值
func (a *Arena) MaxHealth() float64 {
	return a.maxHealth
}

// syncMaxHealth 最大生命值提高时同步补足当前生命值
func (a *Arena) syncMaxHealth(mod systems.PerkBonuses) {
	limit := config.PlayerMaxHealth + mod.MaxHealth
	if limit > a.maxHealth {
		a.PlayerHealth += limit - a.maxHealth
	}
	a.maxHealth = limit
}

func (a *Arena) movePlayer(dt, moveX, moveY float64, mod systems.PerkBonuses) {
	if l := math.Hypot(moveX, moveY); l > 1 {
		moveX /= l
		moveY /= l
	}
	speed := config.PlayerSpeed * mod.Speed
	a.PlayerX += moveX * speed * dt
	a.PlayerY += moveY * speed * dt
	a.PlayerX, a.PlayerY = config.ClampToArena(a.PlayerX, a.PlayerY, config.PlayerRadius)
	a.session.SetPlayerPosition(a.PlayerX, a.PlayerY)
}

// moveCreatures 生物直线追击玩家，停在接触距离
func (a *Arena) moveCreatures(dt float64, mod systems.PerkBonuses) {
	em := a.session.Entities()
	for _, id := range a.session.Creatures() {
		creature, _ := ecs.GetComponent[*components.CreatureComponent](em, id)
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		dx, dy := a.PlayerX-pos.X, a.PlayerY-pos.Y
		dist := math.Hypot(dx, dy)
		reach := config.PlayerRadius + config.CreatureRadiusFor(creature.Toughness)
		if dist <= reach {
			continue
		}
		step := math.Min(creature.Speed*mod.CreatureSpeed*dt, dist-reach)
		pos.X += dx / dist * step
		pos.Y += dy / dist * step
	}
}

// clampSpawned 将生物位置裁剪到场地内
func (a *Arena) clampSpawned() {
	em := a.session.Entities()
	for _, id := range ecs.GetEntitiesWith1[*components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		pos.X, pos.Y = config.ClampToArena(pos.X, pos.Y, config.CreatureRadius)
	}
}

// contactDamage 接触中的生物每秒造成其 Damage 点伤害，按受伤倍率减免
// 生命值归零时优先消耗技能提供的存活次数
func (a *Arena) contactDamage(dt float64, mod systems.PerkBonuses) error {
	em := a.session.Entities()
	for _, id := range a.session.Creatures() {
		creature, _ := ecs.GetComponent[*components.CreatureComponent](em, id)
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		reach := config.PlayerRadius + config.CreatureRadiusFor(creature.Toughness) + 1
		if math.Hypot(a.PlayerX-pos.X, a.PlayerY-pos.Y) <= reach {
			a.PlayerHealth -= creature.Damage * mod.DamageTaken * dt
		}
	}

	if a.PlayerHealth > 0 {
		if mod.Regeneration > 0 && a.PlayerHealth < a.maxHealth {
			a.PlayerHealth = math.Min(a.maxHealth, a.PlayerHealth+mod.Regeneration*dt)
		}
		return nil
	}
	if a.revivesUsed < mod.Revives {
		a.revivesUsed++
		a.PlayerHealth = 1
		a.showBanner("Second chance!")
		log.Printf("[Arena] Player revived (%d/%d)", a.revivesUsed, mod.Revives)
		return nil
	}
	a.PlayerHealth = 0
	log.Printf("[Arena] Player died")
	return a.session.PlayerDied()
}

func (a *Arena) collectPickups() {
	kept := a.Pickups[:0]
	for _, p := range a.Pickups {
		if math.Hypot(a.PlayerX-p.X, a.PlayerY-p.Y) <= config.PlayerRadius+config.PickupRadius {
			a.applyBonus(p)
			continue
		}
		kept = append(kept, p)
	}
	a.Pickups = kept
}

// applyBonus 拾取掉落物：回复生命、获得经验、更换武器或开始持续效果
func (a *Arena) applyBonus(p Pickup) {
	if p.Bonus == config.BonusWeapon {
		a.equip(p.WeaponID)
		a.showBanner(fmt.Sprintf("Picked up %s", a.Weapon.Name))
		return
	}

	bonus, err := config.Bonus(p.Bonus)
	if err != nil {
		log.Printf("[Arena] Ignoring pickup: %v", err)
		return
	}

	switch {
	case bonus.Kind == config.BonusFullHealth:
		a.PlayerHealth = a.maxHealth
	case bonus.Kind == config.BonusSmallHealth || bonus.Kind == config.BonusLargeHealth:
		a.PlayerHealth = math.Min(a.maxHealth, a.PlayerHealth+bonus.Amount)
	case bonus.Kind == config.BonusSmallExp || bonus.Kind == config.BonusLargeExp:
		if err := a.session.GrantExperience(int(bonus.Amount)); err != nil {
			log.Printf("[Arena] Experience pickup ignored: %v", err)
		}
	case bonus.Timed():
		a.Effects[bonus.Kind] = bonus.Duration
	}
	a.showBanner(fmt.Sprintf("Picked up %s", bonus.Name))
}

// fire 自动射击最近的生物
func (a *Arena) fire(dt float64, mod systems.PerkBonuses) {
	if a.reloadTimer > 0 {
		a.reloadTimer -= dt
		if a.reloadTimer > 0 {
			return
		}
		a.Ammo = a.Weapon.AmmoCapacity
	}

	fireRate := a.Weapon.FireRate * mod.FireRate
	a.fireCooldown -= dt
	if a.fireCooldown > 0 || fireRate <= 0 {
		return
	}

	targets := a.targetsInRange(config.WeaponRange * mod.Range)
	if len(targets) == 0 {
		a.fireCooldown = 0
		return
	}
	a.fireCooldown += 1 / fireRate
	if a.fireCooldown <= 0 {
		a.fireCooldown = 1 / fireRate
	}

	// 每个弹丸命中最近目标，穿透数决定额外命中的目标数
	hits := 1 + a.Weapon.PierceCount
	if hits > len(targets) {
		hits = len(targets)
	}
	perShot := a.Weapon.ProjectilesPerShot
	if perShot < 1 {
		perShot = 1
	}
	damage := a.Weapon.Damage * float64(perShot) * mod.Damage

	em := a.session.Entities()
	for _, id := range targets[:hits] {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		a.Shots = append(a.Shots, Shot{FromX: a.PlayerX, FromY: a.PlayerY, ToX: pos.X, ToY: pos.Y, TTL: 0.08})
		a.hit(id, damage)
		if a.Weapon.ExplosiveRadius > 0 {
			a.explode(pos.X, pos.Y, id, damage*mod.Explosive)
		}
	}

	if a.Weapon.AmmoCapacity > 0 {
		a.Ammo--
		if a.Ammo <= 0 {
			a.reloadTimer = a.Weapon.ReloadTime * mod.Reload
		}
	}
}

// targetsInRange 射程内的生物，按距离升序
func (a *Arena) targetsInRange(reach float64) []ecs.EntityID {
	em := a.session.Entities()
	type target struct {
		id   ecs.EntityID
		dist float64
	}
	var found []target
	for _, id := range a.session.Creatures() {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		if d := math.Hypot(pos.X-a.PlayerX, pos.Y-a.PlayerY); d <= reach {
			found = append(found, target{id, d})
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].dist < found[j].dist })

	ids := make([]ecs.EntityID, len(found))
	for i, t := range found {
		ids[i] = t.id
	}
	return ids
}

func (a *Arena) explode(x, y float64, center ecs.EntityID, damage float64) {
	em := a.session.Entities()
	for _, id := range a.session.Creatures() {
		if id == center {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if ok && math.Hypot(pos.X-x, pos.Y-y) <= a.Weapon.ExplosiveRadius {
			a.hit(id, damage/2)
		}
	}
}

func (a *Arena) hit(id ecs.EntityID, damage float64) {
	if _, err := a.session.Damage(id, damage); err != nil {
		log.Printf("[Arena] Hit on %d ignored: %v", id, err)
	}
}

func (a *Arena) tickEffects(dt float64) {
	kept := a.Shots[:0]
	for _, s := range a.Shots {
		s.TTL -= dt
		if s.TTL > 0 {
			kept = append(kept, s)
		}
	}
	a.Shots = kept

	pickups := a.Pickups[:0]
	for _, p := range a.Pickups {
		p.TTL -= dt
		if p.TTL > 0 {
			pickups = append(pickups, p)
		}
	}
	a.Pickups = pickups

	for kind, left := range a.Effects {
		if left -= dt; left > 0 {
			a.Effects[kind] = left
		} else {
			delete(a.Effects, kind)
		}
	}

	if a.bannerTimer > 0 {
		a.bannerTimer -= dt
		if a.bannerTimer <= 0 {
			a.Banner = ""
		}
	}
}

func (a *Arena) showBanner(text string) {
	a.Banner = text
	a.bannerTimer = bannerDuration
}

func (a *Arena) onPickup(e events.Event) {
	req := e.(events.PickupRequested)
	x := a.PlayerX + math.Cos(req.Angle)*req.Distance
	y := a.PlayerY + math.Sin(req.Angle)*req.Distance
	x, y = config.ClampToArena(x, y, config.PickupRadius)
	a.Pickups = append(a.Pickups, Pickup{
		Bonus:    config.BonusKind(req.Bonus),
		WeaponID: req.WeaponID,
		X:        x,
		Y:        y,
		TTL:      config.PickupLifetime,
	})
}

func (a *Arena) onPerkOffered(e events.Event) {
	a.PerkChoices = e.(events.PerkOffered).Choices
	a.showBanner(fmt.Sprintf("Level %d! Choose a perk", e.(events.PerkOffered).Level))
}

func (a *Arena) onScore(e events.Event) {
	a.Score = e.(events.ScoreChanged)
}

func (a *Arena) onWave(e events.Event) {
	w := e.(events.WaveStarted)
	a.Wave = w.Wave
	if w.Swarm {
		a.showBanner("Swarm incoming!")
		return
	}
	a.showBanner(fmt.Sprintf("Wave %d", w.Wave))
}

func (a *Arena) onTransition(e events.Event) {
	tr := e.(events.ModeTransitioned)
	if tr.To == modes.KindQuest.String() {
		a.showBanner(fmt.Sprintf("Mission %d", tr.MissionIndex+1))
	}
}

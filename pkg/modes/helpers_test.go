package modes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/events"
	"github.com/gonewx/crimson/pkg/systems"
)

const testCreatures = `
creatures:
  zombie: { baseHealth: 30, speed: 40, damage: 10, spawnWeight: 10, minWave: 1, toughness: 1, scoreValue: 10, experience: 10 }
  spider: { baseHealth: 15, speed: 80, damage: 8, spawnWeight: 8, minWave: 1, toughness: 1, scoreValue: 15, experience: 8 }
  giant: { baseHealth: 200, speed: 25, damage: 30, spawnWeight: 2, minWave: 3, toughness: 4, scoreValue: 100, experience: 50 }
`

const testWeapons = `
defaultWeapon: pistol
weapons:
  pistol: { damage: 10, fireRate: 3 }
  rifle: { damage: 12, fireRate: 8, dropWeight: 5 }
`

const testPerks = `
perks:
  a: { name: A, rarity: common, stackable: true, maxStacks: 5, effects: { damage: 0.2 } }
  b: { name: B, rarity: uncommon, stackable: true, maxStacks: 5, effects: { experience: 0.5, fireRate: 0.1 } }
  c: { name: C, rarity: rare, stackable: false }
`

// 三个一波即完成的任务
const threeMissions = `
missions:
  - id: m1
    waves: [{ spawns: [{ creature: zombie, count: 2, interval: 0 }] }]
  - id: m2
    waves: [{ spawns: [{ creature: zombie, count: 1, interval: 0 }] }]
  - id: m3
    waves: [{ spawns: [{ creature: spider, count: 1, interval: 0 }] }]
`

func newTestRegistries(t *testing.T, quests string) *config.Registries {
	t.Helper()
	creatures, err := config.ParseCreatureStats([]byte(testCreatures))
	require.NoError(t, err)
	weapons, err := config.ParseWeaponStats([]byte(testWeapons))
	require.NoError(t, err)
	perks, err := config.ParsePerkStats([]byte(testPerks))
	require.NoError(t, err)
	q, err := config.ParseQuestConfig([]byte(quests))
	require.NoError(t, err)

	modes := config.DefaultModeConfig()
	modes.Rush.Loadouts = []config.RushLoadout{
		{Name: "Basic", Weapon: "pistol", Perks: []string{"a"}},
		{Name: "Rifleman", Weapon: "rifle", Perks: []string{"a", "b"}},
	}

	reg := &config.Registries{Creatures: creatures, Weapons: weapons, Perks: perks, Quests: q, Modes: modes}
	require.NoError(t, reg.Validate())
	return reg
}

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	return NewMachine(newTestRegistries(t, threeMissions), systems.NewRNG(1))
}

// testHost 模拟宿主：记录存活生物，按需击杀
type testHost struct {
	t     *testing.T
	m     *Machine
	alive []string
	log   []events.Event
}

func newTestHost(t *testing.T, m *Machine) *testHost {
	return &testHost{t: t, m: m}
}

func (h *testHost) drain() {
	for _, e := range h.m.Drain() {
		if s, ok := e.(events.SpawnRequested); ok {
			h.alive = append(h.alive, s.CreatureID)
		}
		h.log = append(h.log, e)
	}
}

// tick 按会话的顺序执行一个 tick：计时与生成 → 击杀 → 迁移检查
func (h *testHost) tick(dt float64, kills int) {
	h.t.Helper()
	require.NoError(h.t, h.m.Update(dt, len(h.alive)))
	h.drain()

	if kills > len(h.alive) || kills < 0 {
		kills = len(h.alive)
	}
	for _, id := range h.alive[:kills] {
		require.NoError(h.t, h.m.RecordKill(id))
	}
	h.alive = h.alive[kills:]

	require.NoError(h.t, h.m.Evaluate(len(h.alive)))
	h.drain()
}

func (h *testHost) transitions() []events.ModeTransitioned {
	var out []events.ModeTransitioned
	for _, e := range h.log {
		if tr, ok := e.(events.ModeTransitioned); ok {
			out = append(out, tr)
		}
	}
	return out
}

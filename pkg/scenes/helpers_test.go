package scenes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/game"
	"github.com/gonewx/crimson/pkg/modes"
)

const testData = `
creatures:
  zombie: { name: Zombie, baseHealth: 20, speed: 60, damage: 20, spawnWeight: 10, minWave: 1, toughness: 1, scoreValue: 10, experience: 20 }
  brute: { name: Brute, baseHealth: 80, speed: 40, damage: 40, spawnWeight: 3, minWave: 1, toughness: 3, scoreValue: 40, experience: 40 }
`

const testWeaponData = `
defaultWeapon: pistol
weapons:
  pistol: { name: Pistol, damage: 10, fireRate: 4, ammoCapacity: 12, reloadTime: 1 }
  rifle: { name: Rifle, damage: 14, fireRate: 10, dropWeight: 5 }
  launcher: { name: Launcher, damage: 40, fireRate: 1, explosiveRadius: 80 }
`

const testPerkData = `
perks:
  a: { name: Alpha, rarity: common, stackable: true, maxStacks: 5, effects: { damage: 0.5 } }
  b: { name: Beta, rarity: uncommon, stackable: true, maxStacks: 5, effects: { fireRate: 0.5, speed: 0.2 } }
  c: { name: Gamma, rarity: rare, effects: { revives: 1, maxHealth: 50 } }
  d: { name: Delta, rarity: epic, effects: { armor: 0.5 } }
`

const testQuestData = `
missions:
  - id: m1
    name: First
    waves: [{ spawns: [{ creature: zombie, count: 3, interval: 0.5 }] }]
  - id: m2
    name: Second
    waves: [{ spawns: [{ creature: brute, count: 1, interval: 0 }] }]
`

func newTestRegistries(t *testing.T) *config.Registries {
	t.Helper()
	creatures, err := config.ParseCreatureStats([]byte(testData))
	require.NoError(t, err)
	weapons, err := config.ParseWeaponStats([]byte(testWeaponData))
	require.NoError(t, err)
	perks, err := config.ParsePerkStats([]byte(testPerkData))
	require.NoError(t, err)
	quests, err := config.ParseQuestConfig([]byte(testQuestData))
	require.NoError(t, err)

	modeCfg := config.DefaultModeConfig()
	modeCfg.Rush.Loadouts = []config.RushLoadout{
		{Name: "Sidearm", Weapon: "pistol", Perks: []string{"a"}},
		{Name: "Rifleman", Weapon: "rifle", Perks: []string{"a", "b"}},
		{Name: "Bare", Weapon: "pistol"},
	}

	reg := &config.Registries{Creatures: creatures, Weapons: weapons, Perks: perks, Quests: quests, Modes: modeCfg}
	require.NoError(t, reg.Validate())
	return reg
}

func newStartedSession(t *testing.T, kind modes.Kind, loadout string) *game.Session {
	t.Helper()
	s := game.NewSession(game.SessionConfig{Registries: newTestRegistries(t), Seed: 21})
	require.NoError(t, s.Start(kind, 0, loadout))
	return s
}

// offerPerk 为生存模式构造一个只含指定技能的待选项
func offerPerk(t *testing.T, a *Arena, perkID string) {
	t.Helper()
	survival, ok := a.Session().State().(*modes.SurvivalState)
	require.True(t, ok)
	survival.Experience.Offer = []string{perkID}
	survival.Experience.Pending++
	a.PerkChoices = []string{perkID}
}

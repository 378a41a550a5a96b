package game

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/crimson/pkg/config"
)

const testCreatures = `
creatures:
  zombie: { baseHealth: 30, speed: 40, damage: 10, spawnWeight: 10, minWave: 1, toughness: 1, scoreValue: 10, experience: 20 }
  spider: { baseHealth: 15, speed: 80, damage: 8, spawnWeight: 8, minWave: 1, toughness: 1, scoreValue: 15, experience: 15 }
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
  a: { name: A, rarity: common, stackable: true, maxStacks: 5 }
  b: { name: B, rarity: uncommon, stackable: true, maxStacks: 5 }
  c: { name: C, rarity: rare, stackable: false }
  d: { name: D, rarity: epic, stackable: false }
`

const testMissions = `
missions:
  - id: m1
    waves: [{ spawns: [{ creature: zombie, count: 2, interval: 0 }] }]
  - id: m2
    waves: [{ spawns: [{ creature: zombie, count: 1, interval: 0 }] }]
  - id: m3
    waves: [{ spawns: [{ creature: spider, count: 1, interval: 0 }] }]
`

func newTestRegistries(t *testing.T) *config.Registries {
	t.Helper()
	creatures, err := config.ParseCreatureStats([]byte(testCreatures))
	require.NoError(t, err)
	weapons, err := config.ParseWeaponStats([]byte(testWeapons))
	require.NoError(t, err)
	perks, err := config.ParsePerkStats([]byte(testPerks))
	require.NoError(t, err)
	quests, err := config.ParseQuestConfig([]byte(testMissions))
	require.NoError(t, err)

	modeCfg := config.DefaultModeConfig()
	modeCfg.Rush.Loadouts = []config.RushLoadout{
		{Name: "Basic", Weapon: "pistol", Perks: []string{"a"}},
		{Name: "Rifleman", Weapon: "rifle", Perks: []string{"a", "b"}},
	}

	reg := &config.Registries{Creatures: creatures, Weapons: weapons, Perks: perks, Quests: quests, Modes: modeCfg}
	require.NoError(t, reg.Validate())
	return reg
}

// createTestGdataManager 创建用于测试的 gdata Manager，测试结束后删除数据目录
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	t.Helper()
	appName := fmt.Sprintf("crimson_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}

	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})

	return manager
}

package systems

import (
	"testing"

	"github.com/gonewx/crimson/pkg/config"
)

// 测试用生物表：zombie(1阶) runner(2阶, 第2波) giant(5阶, 第3波) boss(只能脚本生成)
const testCreaturesYAML = `
creatures:
  zombie: { baseHealth: 30, speed: 40, damage: 10, spawnWeight: 10, minWave: 1, toughness: 1, scoreValue: 10, experience: 10 }
  runner: { baseHealth: 20, speed: 90, damage: 8, spawnWeight: 5, minWave: 2, toughness: 2, scoreValue: 30, experience: 15 }
  giant: { baseHealth: 200, speed: 25, damage: 30, spawnWeight: 2, minWave: 3, toughness: 5, scoreValue: 100, experience: 60 }
  boss: { baseHealth: 2000, speed: 30, damage: 50, spawnWeight: 0, minWave: 1, toughness: 5, scoreValue: 500, experience: 500, boss: true }
`

const testWeaponsYAML = `
defaultWeapon: pistol
weapons:
  pistol: { damage: 10, fireRate: 3, dropWeight: 0 }
  shotgun: { damage: 8, fireRate: 2, projectilesPerShot: 8, dropWeight: 5 }
`

const testPerksYAML = `
perks:
  a: { name: A, rarity: common, stackable: true, maxStacks: 2, effects: { damage: 0.25, reload: 0.5 } }
  b: { name: B, rarity: uncommon, stackable: false, effects: { revives: 1, experience: 0.5 } }
  c: { name: C, rarity: rare, stackable: true, maxStacks: 3, effects: { armor: 0.5, speed: 0.1 } }
  d: { name: D, rarity: epic, stackable: false }
`

const testQuestsYAML = `
missions:
  - id: first
    waves:
      - spawnDelay: 0
        spawns:
          - { creature: zombie, count: 3, interval: 1 }
      - spawnDelay: 2
        spawns:
          - { creature: runner, count: 1, interval: 0 }
  - id: broken
    timeLimit: 60
    waves:
      - spawns:
          - { creature: dragon, count: 1, interval: 0 }
`

func newTestCreatures(t *testing.T) *config.CreatureStatsConfig {
	t.Helper()
	c, err := config.ParseCreatureStats([]byte(testCreaturesYAML))
	if err != nil {
		t.Fatalf("failed to parse test creatures: %v", err)
	}
	return c
}

func newTestWeapons(t *testing.T) *config.WeaponStatsConfig {
	t.Helper()
	w, err := config.ParseWeaponStats([]byte(testWeaponsYAML))
	if err != nil {
		t.Fatalf("failed to parse test weapons: %v", err)
	}
	return w
}

func newTestPerks(t *testing.T) *config.PerkStatsConfig {
	t.Helper()
	p, err := config.ParsePerkStats([]byte(testPerksYAML))
	if err != nil {
		t.Fatalf("failed to parse test perks: %v", err)
	}
	return p
}

func newTestQuests(t *testing.T) *config.QuestConfig {
	t.Helper()
	q, err := config.ParseQuestConfig([]byte(testQuestsYAML))
	if err != nil {
		t.Fatalf("failed to parse test quests: %v", err)
	}
	return q
}

func newTestDifficulty() *DifficultyEngine {
	return NewDifficultyEngine(config.DefaultModeConfig().Difficulty)
}

func newTestDirector(t *testing.T, profile config.SpawnProfile, seed int64) *SpawnDirector {
	t.Helper()
	return NewSpawnDirector(newTestCreatures(t), profile, newTestDifficulty(), NewRNG(seed))
}

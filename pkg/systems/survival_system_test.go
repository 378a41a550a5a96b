package systems

import (
	"testing"

	"github.com/gonewx/crimson/pkg/components"
	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/events"
)

func runSurvival(t *testing.T, cfg config.SurvivalConfig, ticks int, dt float64) (swarms []float64, swarmSpawns int, pickups []events.PickupRequested) {
	t.Helper()
	rng := NewRNG(9)
	director := NewSpawnDirector(newTestCreatures(t), cfg.Spawn, newTestDifficulty(), rng)
	sys := NewSurvivalSystem(director, newTestWeapons(t), cfg, rng)

	ws := &components.WaveStateComponent{Difficulty: 1}
	sys.Init(ws)
	for i := 0; i < ticks; i++ {
		director.Decide(ws, dt)
		for _, e := range sys.Update(ws, dt) {
			switch ev := e.(type) {
			case events.WaveStarted:
				if ev.Swarm {
					swarms = append(swarms, ws.Elapsed)
				}
			case events.SpawnRequested:
				if ev.Source == string(components.SpawnSourceSwarm) {
					swarmSpawns++
				}
			case events.PickupRequested:
				pickups = append(pickups, ev)
			}
		}
	}
	return swarms, swarmSpawns, pickups
}

func TestSurvivalSwarmsAndPickups(t *testing.T) {
	cfg := config.DefaultModeConfig().Survival

	swarms, swarmSpawns, pickups := runSurvival(t, cfg, 130, 0.5) // 65 秒

	if len(swarms) != 1 || swarms[0] != 60 {
		t.Errorf("Expected one swarm at 60s, got %v", swarms)
	}
	// 难度 1：3 + 1
	if swarmSpawns != 4 {
		t.Errorf("Expected swarm of 4, got %d", swarmSpawns)
	}
	if len(pickups) != 2 {
		t.Fatalf("Expected pickups at 30s and 60s, got %d", len(pickups))
	}
	for _, p := range pickups {
		if _, err := config.Bonus(config.BonusKind(p.Bonus)); err != nil {
			t.Errorf("Unexpected pickup kind: %v", err)
		}
		// pistol 掉落权重为 0
		if p.Bonus == string(config.BonusWeapon) && p.WeaponID != "shotgun" {
			t.Errorf("Unexpected pickup weapon %s", p.WeaponID)
		}
		if p.Bonus != string(config.BonusWeapon) && p.WeaponID != "" {
			t.Errorf("Non-weapon pickup %s carries weapon %s", p.Bonus, p.WeaponID)
		}
	}
}

// TestSampleBonusDistribution 掉落物按权重抽取，武器不可掉落时不抽武器
func TestSampleBonusDistribution(t *testing.T) {
	cfg := config.DefaultModeConfig().Survival

	t.Run("按权重抽取", func(t *testing.T) {
		sys := NewSurvivalSystem(nil, newTestWeapons(t), cfg, NewRNG(5))
		counts := map[config.BonusKind]int{}
		const n = 20000
		for i := 0; i < n; i++ {
			counts[sys.SampleBonus()]++
		}

		total := 0
		for _, b := range config.Bonuses() {
			total += b.Weight
		}
		for _, b := range config.Bonuses() {
			want := float64(b.Weight) / float64(total)
			got := float64(counts[b.Kind]) / n
			if got < want-0.02 || got > want+0.02 {
				t.Errorf("%s: expected frequency ~%.3f, got %.3f", b.Kind, want, got)
			}
		}
	})

	t.Run("没有可掉落武器", func(t *testing.T) {
		weapons, err := config.ParseWeaponStats([]byte(`
defaultWeapon: pistol
weapons:
  pistol: { damage: 10, fireRate: 3 }
`))
		if err != nil {
			t.Fatal(err)
		}
		sys := NewSurvivalSystem(nil, weapons, cfg, NewRNG(5))
		for i := 0; i < 2000; i++ {
			if kind := sys.SampleBonus(); kind == config.BonusWeapon {
				t.Fatal("weapon bonus sampled without droppable weapons")
			}
		}
	})
}

func TestSurvivalSwarmWaitsForSwarmAfter(t *testing.T) {
	cfg := config.DefaultModeConfig().Survival
	cfg.SwarmInterval = 10
	cfg.SwarmAfter = 30

	swarms, _, _ := runSurvival(t, cfg, 100, 0.5) // 50 秒
	if len(swarms) == 0 {
		t.Fatal("Expected swarms after 30s")
	}
	if swarms[0] <= 30 {
		t.Errorf("First swarm at %vs, must be after 30s", swarms[0])
	}
	for i := 1; i < len(swarms); i++ {
		if swarms[i]-swarms[i-1] < 10 {
			t.Errorf("Swarms closer than the interval: %v", swarms)
		}
	}
}

func TestSwarmSize(t *testing.T) {
	sys := NewSurvivalSystem(nil, nil, config.DefaultModeConfig().Survival, NewRNG(1))

	for _, tt := range []struct {
		difficulty float64
		expected   int
	}{{1, 4}, {2.5, 5}, {5, 8}, {50, 8}} {
		if got := sys.SwarmSize(tt.difficulty); got != tt.expected {
			t.Errorf("SwarmSize(%v): expected %d, got %d", tt.difficulty, tt.expected, got)
		}
	}
}

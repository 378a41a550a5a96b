package config

import (
	"errors"
	"testing"
)

// 使用仓库中实际的 data/ 目录，确保发布的配置始终合法
const repoDataDir = "../../data"

func TestLoadRegistriesFromRepoData(t *testing.T) {
	r, err := LoadRegistries(repoDataDir)
	if err != nil {
		t.Fatalf("LoadRegistries failed: %v", err)
	}

	t.Run("生物表", func(t *testing.T) {
		if len(r.Creatures.IDs()) == 0 {
			t.Fatal("creature registry is empty")
		}
		zombie, err := r.Creature("zombie")
		if err != nil {
			t.Fatalf("zombie: %v", err)
		}
		if zombie.MinWave != 1 || zombie.Toughness != 1 {
			t.Errorf("zombie should be a wave 1 tier 1 creature, got %+v", zombie)
		}
	})

	t.Run("武器表", func(t *testing.T) {
		if _, err := r.Weapon(r.Weapons.DefaultWeapon); err != nil {
			t.Errorf("default weapon: %v", err)
		}
		shotgun, err := r.Weapon("shotgun")
		if err != nil {
			t.Fatalf("shotgun: %v", err)
		}
		if shotgun.ProjectilesPerShot < 2 {
			t.Errorf("shotgun should fire multiple projectiles, got %d", shotgun.ProjectilesPerShot)
		}
	})

	t.Run("技能表", func(t *testing.T) {
		perk, err := r.Perk("second_chance")
		if err != nil {
			t.Fatalf("second_chance: %v", err)
		}
		if perk.StackLimit() != 1 {
			t.Errorf("second_chance should not stack, limit %d", perk.StackLimit())
		}
		if perk.Effects.Revives != 1 {
			t.Errorf("second_chance should grant one revive, got %d", perk.Effects.Revives)
		}
		for _, id := range r.Perks.IDs() {
			if r.Perks.Perks[id].Effects == (PerkEffects{}) {
				t.Errorf("perk %s has no effect", id)
			}
		}
	})

	t.Run("Rush 连杀门槛", func(t *testing.T) {
		want := []StreakThreshold{{5, 1.5}, {10, 2.0}, {20, 3.0}, {50, 5.0}}
		got := r.Modes.Rush.StreakThresholds
		if len(got) != len(want) {
			t.Fatalf("Expected %d thresholds, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("threshold %d: expected %+v, got %+v", i, want[i], got[i])
			}
		}
		if r.Modes.Rush.Duration != 120 {
			t.Errorf("rush duration: expected 120, got %v", r.Modes.Rush.Duration)
		}
	})

	t.Run("任务顺序", func(t *testing.T) {
		idx, err := r.Quests.IndexOf("land_hostile")
		if err != nil || idx != 0 {
			t.Errorf("land_hostile should be the first mission, got %d, %v", idx, err)
		}
		if _, err := r.Quests.Mission(r.Quests.Count()); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound past the last mission, got %v", err)
		}
	})
}

func TestRegistriesValidateCrossReferences(t *testing.T) {
	creatures, err := ParseCreatureStats([]byte(`
creatures:
  zombie: { baseHealth: 30, speed: 40, spawnWeight: 10, minWave: 1, toughness: 1 }
`))
	if err != nil {
		t.Fatal(err)
	}
	weapons, err := ParseWeaponStats([]byte(`
defaultWeapon: pistol
weapons:
  pistol: { damage: 10, fireRate: 3 }
`))
	if err != nil {
		t.Fatal(err)
	}
	perks, err := ParsePerkStats([]byte(`
perks:
  thick_skin: { name: Thick Skin, rarity: common, stackable: true, maxStacks: 3 }
`))
	if err != nil {
		t.Fatal(err)
	}

	newRegistries := func(quests string) *Registries {
		q, err := ParseQuestConfig([]byte(quests))
		if err != nil {
			t.Fatal(err)
		}
		modes := DefaultModeConfig()
		modes.Rush.Loadouts = []RushLoadout{{Name: "Basic", Weapon: "pistol", Perks: []string{"thick_skin"}}}
		return &Registries{Creatures: creatures, Weapons: weapons, Perks: perks, Quests: q, Modes: modes}
	}

	t.Run("引用合法", func(t *testing.T) {
		r := newRegistries(`
missions:
  - id: m1
    waves: [{ spawns: [{ creature: zombie, count: 3, interval: 1 }] }]
`)
		if err := r.Validate(); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("任务引用未知生物", func(t *testing.T) {
		r := newRegistries(`
missions:
  - id: m1
    waves: [{ spawns: [{ creature: dragon, count: 1, interval: 0 }] }]
`)
		if err := r.Validate(); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("装备引用未知武器", func(t *testing.T) {
		r := newRegistries(`
missions:
  - id: m1
    waves: [{ spawns: [{ creature: zombie, count: 1, interval: 0 }] }]
`)
		r.Modes.Rush.Loadouts[0].Weapon = "railgun"
		if err := r.Validate(); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestQuestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"没有任务", "missions: []"},
		{"重复 ID", `
missions:
  - { id: a, waves: [{ spawns: [{ creature: z, count: 1 }] }] }
  - { id: a, waves: [{ spawns: [{ creature: z, count: 1 }] }] }
`},
		{"没有波次", "missions: [{ id: a, waves: [] }]"},
		{"数量为零", "missions: [{ id: a, waves: [{ spawns: [{ creature: z, count: 0 }] }] }]"},
		{"负时间限制", "missions: [{ id: a, timeLimit: -1, waves: [{ spawns: [{ creature: z, count: 1 }] }] }]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseQuestConfig([]byte(tt.yaml)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestMissionTotalCreatures(t *testing.T) {
	m := MissionConfig{Waves: []MissionWave{
		{Spawns: []SpawnEntry{{Creature: "a", Count: 3}, {Creature: "b", Count: 2}}},
		{Spawns: []SpawnEntry{{Creature: "a", Count: 5}}},
	}}
	if got := m.TotalCreatures(); got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
}

func TestPerkRarityWeight(t *testing.T) {
	if RarityCommon.Weight() <= RarityUncommon.Weight() ||
		RarityUncommon.Weight() <= RarityRare.Weight() ||
		RarityRare.Weight() <= RarityEpic.Weight() {
		t.Error("rarer perks should have lower weights")
	}
	if PerkRarity("legendary").Weight() != 0 {
		t.Error("unknown rarity should have zero weight")
	}
}

package config

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultModeConfigValid(t *testing.T) {
	if err := DefaultModeConfig().Validate(); err != nil {
		t.Fatalf("DefaultModeConfig should be valid: %v", err)
	}
}

func TestModeConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ModeConfig)
		wantErr string
	}{
		{"难度上下限颠倒", func(c *ModeConfig) { c.Difficulty.Max = 0.5 }, "difficulty"},
		{"难度爬升时间为零", func(c *ModeConfig) { c.Difficulty.SurvivalRampSeconds = 0 }, "survivalRampSeconds"},
		{"最小间隔大于基础间隔", func(c *ModeConfig) { c.Survival.Spawn.MinInterval = 5 }, "minInterval"},
		{"批量范围颠倒", func(c *ModeConfig) { c.Rush.Spawn.MaxBatch = 1 }, "minBatch"},
		{"生成距离颠倒", func(c *ModeConfig) { c.Quest.Spawn.MaxDistance = 10 }, "minDistance"},
		{"虫潮数量颠倒", func(c *ModeConfig) { c.Survival.SwarmMaxSize = 1 }, "swarmBaseSize"},
		{"连杀门槛不递增", func(c *ModeConfig) {
			c.Rush.StreakThresholds = []StreakThreshold{{Kills: 10, Multiplier: 2}, {Kills: 5, Multiplier: 3}}
		}, "strictly increasing"},
		{"倍率不递增", func(c *ModeConfig) {
			c.Rush.StreakThresholds = []StreakThreshold{{Kills: 5, Multiplier: 2}, {Kills: 10, Multiplier: 1.5}}
		}, "multiplier"},
		{"没有连杀门槛", func(c *ModeConfig) { c.Rush.StreakThresholds = nil }, "streak threshold"},
		{"没有 Rush 装备", func(c *ModeConfig) { c.Rush.Loadouts = nil }, "loadout"},
		{"经验增长小于 1", func(c *ModeConfig) { c.Experience.Growth = 0.5 }, "experience"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultModeConfig()
			tt.mutate(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseModeConfig(t *testing.T) {
	t.Run("缺少必填字段", func(t *testing.T) {
		if _, err := ParseModeConfig([]byte("difficulty: { min: 1, max: 5 }")); err == nil {
			t.Error("Expected validation error for incomplete config")
		}
	})

	t.Run("YAML 格式错误", func(t *testing.T) {
		if _, err := ParseModeConfig([]byte("rush: [")); err == nil {
			t.Error("Expected parse error")
		}
	})
}

func TestRushLoadout(t *testing.T) {
	rush := DefaultModeConfig().Rush

	l, err := rush.Loadout("")
	if err != nil || l.Name != "Assault" {
		t.Errorf("Empty name should return the first loadout, got %+v, %v", l, err)
	}

	if _, err := rush.Loadout("Sniper"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown loadout, got %v", err)
	}
}

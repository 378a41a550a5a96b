package systems

import (
	"math"
	"testing"
)

func TestComputePerkBonuses(t *testing.T) {
	perks := newTestPerks(t)

	tests := []struct {
		name   string
		stacks map[string]int
		check  func(t *testing.T, b PerkBonuses)
	}{
		{
			name:   "没有技能",
			stacks: nil,
			check: func(t *testing.T, b PerkBonuses) {
				if b != NoPerkBonuses() {
					t.Errorf("Expected neutral bonuses, got %+v", b)
				}
			},
		},
		{
			name:   "伤害按层数线性叠加",
			stacks: map[string]int{"a": 2},
			check: func(t *testing.T, b PerkBonuses) {
				if b.Damage != 1.5 {
					t.Errorf("Damage: expected 1.5, got %v", b.Damage)
				}
				if b.Reload != 0.25 {
					t.Errorf("Reload: expected 0.25, got %v", b.Reload)
				}
			},
		},
		{
			name:   "护甲按层数连乘",
			stacks: map[string]int{"c": 3},
			check: func(t *testing.T, b PerkBonuses) {
				if math.Abs(b.DamageTaken-0.125) > 1e-9 {
					t.Errorf("DamageTaken: expected 0.125, got %v", b.DamageTaken)
				}
				if math.Abs(b.Speed-1.3) > 1e-9 {
					t.Errorf("Speed: expected 1.3, got %v", b.Speed)
				}
			},
		},
		{
			name:   "组合技能与未注册技能",
			stacks: map[string]int{"a": 1, "b": 1, "nope": 4},
			check: func(t *testing.T, b PerkBonuses) {
				if b.Damage != 1.25 || b.Revives != 1 || b.Experience != 1.5 {
					t.Errorf("Unexpected bonuses: %+v", b)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ComputePerkBonuses(perks, tt.stacks))
		})
	}

	if b := ComputePerkBonuses(nil, map[string]int{"a": 1}); b != NoPerkBonuses() {
		t.Errorf("nil registry should yield neutral bonuses, got %+v", b)
	}
}

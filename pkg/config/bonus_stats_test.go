package config

import (
	"errors"
	"testing"
)

func TestBonuses(t *testing.T) {
	seen := map[BonusKind]bool{}
	total := 0
	for _, b := range Bonuses() {
		if seen[b.Kind] {
			t.Errorf("duplicate bonus %s", b.Kind)
		}
		seen[b.Kind] = true
		if b.Weight <= 0 {
			t.Errorf("bonus %s: weight must be positive, got %d", b.Kind, b.Weight)
		}
		if b.Timed() && b.Factor < 0 {
			t.Errorf("bonus %s: negative factor %v", b.Kind, b.Factor)
		}
		total += b.Weight
	}
	if total != 109 {
		t.Errorf("total weight = %d, want 109", total)
	}

	// 返回副本，修改不影响注册表
	Bonuses()[0].Weight = 0
	if b, _ := Bonus(BonusSmallHealth); b.Weight != 20 {
		t.Errorf("Bonuses() leaked internal table, weight %d", b.Weight)
	}
}

func TestBonus(t *testing.T) {
	tests := []struct {
		name  string
		kind  BonusKind
		timed bool
	}{
		{"小医疗包立即生效", BonusSmallHealth, false},
		{"经验立即生效", BonusLargeExp, false},
		{"护盾持续生效", BonusShield, true},
		{"无敌持续生效", BonusInvincibility, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Bonus(tt.kind)
			if err != nil {
				t.Fatalf("Bonus(%s) error = %v", tt.kind, err)
			}
			if b.Timed() != tt.timed {
				t.Errorf("Timed() = %v, want %v", b.Timed(), tt.timed)
			}
		})
	}

	if _, err := Bonus("nuke"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Bonus(nuke) error = %v, want ErrNotFound", err)
	}
}

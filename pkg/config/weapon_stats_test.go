package config

import (
	"errors"
	"strings"
	"testing"
)

func TestParseWeaponStats(t *testing.T) {
	cfg, err := ParseWeaponStats([]byte(`
defaultWeapon: pistol
weapons:
  pistol: { name: Pistol, damage: 10, fireRate: 4, ammoCapacity: 12, reloadTime: 1 }
  shotgun: { name: Shotgun, damage: 6, fireRate: 1.5, projectilesPerShot: 6, spread: 0.3, dropWeight: 4 }
`))
	if err != nil {
		t.Fatalf("ParseWeaponStats() error = %v", err)
	}

	if got := cfg.IDs(); len(got) != 2 || got[0] != "pistol" || got[1] != "shotgun" {
		t.Errorf("IDs() = %v, want [pistol shotgun]", got)
	}

	pistol, err := cfg.Get("pistol")
	if err != nil {
		t.Fatalf("Get(pistol) error = %v", err)
	}
	if pistol.ID != "pistol" || pistol.ProjectilesPerShot != 1 {
		t.Errorf("pistol should default to one projectile per shot, got %+v", pistol)
	}

	shotgun, _ := cfg.Get("shotgun")
	if shotgun.ProjectilesPerShot != 6 {
		t.Errorf("shotgun projectilesPerShot = %d, want 6", shotgun.ProjectilesPerShot)
	}

	if _, err := cfg.Get("railgun"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(railgun) error = %v, want ErrNotFound", err)
	}
}

func TestValidateWeaponStats(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "没有武器",
			yaml:    "defaultWeapon: pistol\nweapons: {}\n",
			wantErr: "at least one weapon",
		},
		{
			name:    "默认武器不存在",
			yaml:    "defaultWeapon: rifle\nweapons:\n  pistol: { damage: 1, fireRate: 1 }\n",
			wantErr: "defaultWeapon",
		},
		{
			name:    "伤害为0",
			yaml:    "defaultWeapon: pistol\nweapons:\n  pistol: { damage: 0, fireRate: 1 }\n",
			wantErr: "damage must be positive",
		},
		{
			name:    "射速为负",
			yaml:    "defaultWeapon: pistol\nweapons:\n  pistol: { damage: 1, fireRate: -1 }\n",
			wantErr: "fireRate must be positive",
		},
		{
			name:    "弹匣容量为负",
			yaml:    "defaultWeapon: pistol\nweapons:\n  pistol: { damage: 1, fireRate: 1, ammoCapacity: -3 }\n",
			wantErr: "counts cannot be negative",
		},
		{
			name:    "掉落权重为负",
			yaml:    "defaultWeapon: pistol\nweapons:\n  pistol: { damage: 1, fireRate: 1, dropWeight: -1 }\n",
			wantErr: "dropWeight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWeaponStats([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseWeaponStats() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

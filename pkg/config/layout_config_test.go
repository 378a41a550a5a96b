package config

import (
	"testing"
)

func TestClampToArena(t *testing.T) {
	tests := []struct {
		name         string
		x, y, margin float64
		wantX, wantY float64
	}{
		{name: "竞技场内不变", x: 100, y: 200, margin: 10, wantX: 100, wantY: 200},
		{name: "左上越界", x: -50, y: 0, margin: 10, wantX: ArenaMinX + 10, wantY: ArenaMinY + 10},
		{name: "右下越界", x: 5000, y: 5000, margin: 0, wantX: ArenaMaxX, wantY: ArenaMaxY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := ClampToArena(tt.x, tt.y, tt.margin)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("ClampToArena(%v, %v, %v) = (%v, %v), want (%v, %v)",
					tt.x, tt.y, tt.margin, gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestArenaCenter(t *testing.T) {
	x, y := ArenaCenter()
	if x != float64(GameWindowWidth)/2 {
		t.Errorf("center x = %v", x)
	}
	if y <= ArenaMinY || y >= ArenaMaxY {
		t.Errorf("center y = %v outside arena", y)
	}
}

func TestCreatureRadiusFor(t *testing.T) {
	tests := []struct {
		name      string
		toughness int
		want      float64
	}{
		{name: "韧性1为基础半径", toughness: 1, want: CreatureRadius},
		{name: "韧性0按1处理", toughness: 0, want: CreatureRadius},
		{name: "最高韧性", toughness: MaxToughness, want: CreatureRadius * 2},
		{name: "超过上限按上限处理", toughness: 99, want: CreatureRadius * 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CreatureRadiusFor(tt.toughness); got != tt.want {
				t.Errorf("CreatureRadiusFor(%d) = %v, want %v", tt.toughness, got, tt.want)
			}
		})
	}
}

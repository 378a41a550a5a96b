package config

// 布局配置常量
// 本文件定义窗口与竞技场尺寸，以及宿主绘制和碰撞使用的半径

// Window 窗口逻辑尺寸（Ebitengine 自动缩放）
const (
	GameWindowWidth  = 960
	GameWindowHeight = 720
)

// Arena 竞技场配置
// 竞技场坐标与屏幕坐标一致，左上角为原点
const (
	// HUDHeight 顶部信息栏高度，竞技场从其下方开始
	HUDHeight = 48.0

	ArenaMinX = 0.0
	ArenaMinY = HUDHeight
	ArenaMaxX = float64(GameWindowWidth)
	ArenaMaxY = float64(GameWindowHeight)

	// PlayerRadius 玩家碰撞半径
	PlayerRadius = 12.0
	// PlayerSpeed 玩家移动速度（像素/秒）
	PlayerSpeed = 180.0
	// PlayerMaxHealth 玩家生命值
	PlayerMaxHealth = 100.0

	// CreatureRadius 生物基础半径，按韧性放大
	CreatureRadius = 10.0
	// PickupRadius 掉落物拾取半径
	PickupRadius = 16.0
	// WeaponRange 自动射击的最大距离
	WeaponRange = 420.0
)

// ArenaCenter 返回竞技场中心坐标
func ArenaCenter() (float64, float64) {
	return (ArenaMinX + ArenaMaxX) / 2, (ArenaMinY + ArenaMaxY) / 2
}

// ClampToArena 将坐标限制在竞技场内，margin 为保留边距
func ClampToArena(x, y, margin float64) (float64, float64) {
	x = clamp(x, ArenaMinX+margin, ArenaMaxX-margin)
	y = clamp(y, ArenaMinY+margin, ArenaMaxY-margin)
	return x, y
}

// CreatureRadiusFor 返回给定韧性等级的生物半径
func CreatureRadiusFor(toughness int) float64 {
	if toughness < 1 {
		toughness = 1
	}
	if toughness > MaxToughness {
		toughness = MaxToughness
	}
	return CreatureRadius * (1 + 0.25*float64(toughness-1))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

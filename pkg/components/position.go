package components

// PositionComponent 世界坐标
type PositionComponent struct {
	X, Y float64
}

// SpawnOffsetComponent 生成时相对玩家的极坐标偏移
// 宿主据此计算初始位置并裁剪到场地边界
type SpawnOffsetComponent struct {
	Angle    float64 // 弧度
	Distance float64
}

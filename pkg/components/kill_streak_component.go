package components

// KillStreakComponent Rush 模式的连杀与得分状态
// Streak 只在回合结束时清零，Multiplier 在回合内只增不减
type KillStreakComponent struct {
	Streak     int     // 本回合连杀数
	Score      int     // 累计得分
	Multiplier float64 // 当前倍率
	ComboBonus int     // 累计连击奖励分
}

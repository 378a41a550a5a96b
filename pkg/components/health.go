package components

// HealthComponent 存储生物的生命值
// MaxHealth 已包含难度血量倍率
type HealthComponent struct {
	CurrentHealth float64
	MaxHealth     float64
}

package config

// BonusKind 掉落物种类
type BonusKind string

const (
	BonusSmallHealth   BonusKind = "small_health"
	BonusLargeHealth   BonusKind = "large_health"
	BonusFullHealth    BonusKind = "full_health"
	BonusSmallExp      BonusKind = "small_exp"
	BonusLargeExp      BonusKind = "large_exp"
	BonusWeapon        BonusKind = "weapon"
	BonusSpeed         BonusKind = "speed_boost"
	BonusFireRate      BonusKind = "fire_rate_boost"
	BonusDamage        BonusKind = "damage_boost"
	BonusInvincibility BonusKind = "invincibility"
	BonusShield        BonusKind = "shield"
)

// PickupLifetime 掉落物在场上停留的秒数
const PickupLifetime = 15.0

// BonusStats 掉落物参数
type BonusStats struct {
	Kind     BonusKind
	Name     string
	Weight   int     // 抽取权重
	Amount   float64 // 回复的生命值或获得的经验
	Duration float64 // 持续效果的秒数，0 表示立即生效
	Factor   float64 // 持续效果的倍率
}

// Timed 是否为持续效果
func (b BonusStats) Timed() bool {
	return b.Duration > 0
}

// 顺序即抽取顺序
var bonusTable = []BonusStats{
	{Kind: BonusSmallHealth, Name: "Medkit", Weight: 20, Amount: 25},
	{Kind: BonusLargeHealth, Name: "Large Medkit", Weight: 10, Amount: 50},
	{Kind: BonusFullHealth, Name: "Full Heal", Weight: 2},
	{Kind: BonusSmallExp, Name: "Experience", Weight: 25, Amount: 25},
	{Kind: BonusLargeExp, Name: "Big Experience", Weight: 5, Amount: 100},
	{Kind: BonusWeapon, Name: "Weapon", Weight: 15},
	{Kind: BonusSpeed, Name: "Speed Boost", Weight: 8, Duration: 10, Factor: 1.5},
	{Kind: BonusFireRate, Name: "Fire Rate Boost", Weight: 8, Duration: 10, Factor: 1.5},
	{Kind: BonusDamage, Name: "Damage Boost", Weight: 8, Duration: 10, Factor: 2},
	{Kind: BonusInvincibility, Name: "Invincibility", Weight: 3, Duration: 5, Factor: 0},
	{Kind: BonusShield, Name: "Shield", Weight: 5, Duration: 15, Factor: 0.5},
}

// Bonuses 返回全部掉落物参数（固定顺序的副本）
func Bonuses() []BonusStats {
	return append([]BonusStats(nil), bonusTable...)
}

// Bonus 查询掉落物参数
func Bonus(kind BonusKind) (BonusStats, error) {
	for _, b := range bonusTable {
		if b.Kind == kind {
			return b, nil
		}
	}
	return BonusStats{}, notFound("bonus", string(kind))
}

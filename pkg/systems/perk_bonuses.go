package systems

import (
	"math"

	"github.com/gonewx/crimson/pkg/config"
)

// PerkBonuses 由已持有技能汇总出的属性修正
// 倍率字段以 1 为基准，加成字段以 0 为基准
type PerkBonuses struct {
	Damage        float64 // 伤害倍率
	FireRate      float64 // 射速倍率
	Speed         float64 // 移动速度倍率
	Range         float64 // 射程倍率
	Explosive     float64 // 爆炸伤害倍率（在 Damage 之上）
	Experience    float64 // 经验倍率
	Reload        float64 // 换弹时间倍率
	DamageTaken   float64 // 受到伤害倍率
	CreatureSpeed float64 // 生物移动速度倍率

	MaxHealth    float64 // 最大生命值加成
	Regeneration float64 // 每秒回复生命值
	Revives      int     // 致命伤害时的存活次数
}

// NoPerkBonuses 返回没有任何技能时的修正
func NoPerkBonuses() PerkBonuses {
	return PerkBonuses{
		Damage:        1,
		FireRate:      1,
		Speed:         1,
		Range:         1,
		Explosive:     1,
		Experience:    1,
		Reload:        1,
		DamageTaken:   1,
		CreatureSpeed: 1,
	}
}

// ComputePerkBonuses 按技能层数汇总属性修正
//
// 加成类效果按层数线性叠加，减免类效果（换弹、护甲、减速）按层数连乘，
// 因此减免永远不会达到 100%。未注册的技能被忽略。
//
// 参数：
//   - perks: 技能注册表
//   - stacks: 技能 ID 到持有层数的映射
//
// 返回：
//   - PerkBonuses: 汇总后的修正
func ComputePerkBonuses(perks *config.PerkStatsConfig, stacks map[string]int) PerkBonuses {
	b := NoPerkBonuses()
	if perks == nil {
		return b
	}

	// 按 ID 顺序累加，浮点结果与 map 遍历顺序无关
	for _, id := range perks.IDs() {
		n := stacks[id]
		if n <= 0 {
			continue
		}
		e := perks.Perks[id].Effects
		k := float64(n)

		b.Damage += e.Damage * k
		b.FireRate += e.FireRate * k
		b.Speed += e.Speed * k
		b.Range += e.Range * k
		b.Explosive += e.Explosive * k
		b.Experience += e.Experience * k
		b.MaxHealth += e.MaxHealth * k
		b.Regeneration += e.Regeneration * k
		b.Revives += e.Revives * n

		b.Reload *= math.Pow(1-e.Reload, k)
		b.DamageTaken *= math.Pow(1-e.Armor, k)
		b.CreatureSpeed *= math.Pow(1-e.Slow, k)
	}
	return b
}

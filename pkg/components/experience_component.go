package components

// ExperienceComponent 生存模式的经验与技能状态
type ExperienceComponent struct {
	Level      int            // 当前等级，从 1 开始
	Experience int            // 当前等级内累计经验
	ToNext     int            // 升级所需经验
	PerkStacks map[string]int // 技能 ID -> 层数
	Pending    int            // 尚未选择的技能次数
	Offer      []string       // 当前待选技能
}

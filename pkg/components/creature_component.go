package components

// SpawnSource 生物的生成来源
type SpawnSource string

const (
	SpawnSourceRegular SpawnSource = "regular" // 常规节奏生成
	SpawnSourceSwarm   SpawnSource = "swarm"   // 生存模式虫潮
	SpawnSourceScript  SpawnSource = "script"  // 任务脚本
)

// CreatureComponent 标识一个存活的生物实体
type CreatureComponent struct {
	TypeID     string      // 注册表中的生物 ID
	Source     SpawnSource // 生成来源
	ScoreValue int         // 击杀基础分（生成时从注册表复制）
	Experience int         // 击杀经验
	Speed      float64     // 移动速度
	Damage     float64     // 接触伤害
	Toughness  int         // 韧性等级 1..5
}

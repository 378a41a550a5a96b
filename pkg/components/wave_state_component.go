package components

// WaveStateComponent 生成节奏状态
// 每个 tick 由 SpawnDirector 更新一次
type WaveStateComponent struct {
	Difficulty      float64 // 当前难度标量
	Elapsed         float64 // 已经过的时间（秒）
	ActiveCreatures int     // 存活生物数量（由会话在每个 tick 前同步）
	SpawnTimer      float64 // 距下一次生成的剩余时间（秒）
	EffectiveWave   int     // 有效波次，用于 minWave 门槛
	SwarmTimer      float64 // 距下一次虫潮的剩余时间（秒）
	PickupTimer     float64 // 距下一次武器掉落的剩余时间（秒）
	TotalSpawned    int     // 本局累计生成数量
}

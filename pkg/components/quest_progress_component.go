package components

// SpawnCursor 任务波次中单条生成指令的进度
type SpawnCursor struct {
	Spawned int     // 已生成数量
	Timer   float64 // 距下一次生成的剩余时间（秒）
}

// QuestProgressComponent 当前任务的推进状态
type QuestProgressComponent struct {
	MissionIndex int           // 任务索引，只能顺序递增
	WaveIndex    int           // 当前波次索引
	WaveDelay    float64       // 当前波次开始前的剩余等待时间
	WaveStarted  bool          // 当前波次是否已开始生成
	Cursors      []SpawnCursor // 当前波次各生成指令的进度
	Elapsed      float64       // 任务已进行时间
	Spawned      int           // 任务累计生成数量
	Killed       int           // 任务累计击杀数量
}

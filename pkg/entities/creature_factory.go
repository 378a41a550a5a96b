package entities

import (
	"fmt"
	"math"

	"github.com/gonewx/crimson/pkg/components"
	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/ecs"
	"github.com/gonewx/crimson/pkg/events"
)

// NewCreatureEntity 根据生成请求创建生物实体
// 生物出现在原点（玩家位置）的极坐标偏移处，生命值按请求的难度倍率放大
//
// 参数:
//   - em: 实体管理器
//   - stats: 注册表中的生物属性
//   - req: 生成请求
//   - originX, originY: 生成原点
//
// 返回:
//   - ecs.EntityID: 创建的实体ID
//   - error: 参数无效时返回错误
func NewCreatureEntity(em *ecs.EntityManager, stats config.CreatureStats, req events.SpawnRequested, originX, originY float64) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if stats.ID != req.CreatureID {
		return ecs.InvalidEntity, fmt.Errorf("creature stats %q do not match request for %q", stats.ID, req.CreatureID)
	}

	health := stats.BaseHealth
	if req.HealthMultiplier > 0 {
		health *= req.HealthMultiplier
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.CreatureComponent{
		TypeID:     stats.ID,
		Source:     components.SpawnSource(req.Source),
		ScoreValue: stats.ScoreValue,
		Experience: stats.Experience,
		Speed:      stats.Speed,
		Damage:     stats.Damage,
		Toughness:  stats.Toughness,
	})
	em.AddComponent(id, &components.HealthComponent{CurrentHealth: health, MaxHealth: health})
	em.AddComponent(id, &components.SpawnOffsetComponent{Angle: req.Angle, Distance: req.Distance})
	em.AddComponent(id, &components.PositionComponent{
		X: originX + math.Cos(req.Angle)*req.Distance,
		Y: originY + math.Sin(req.Angle)*req.Distance,
	})
	return id, nil
}

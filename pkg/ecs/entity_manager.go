package ecs

import (
	"reflect"
	"slices"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntity 0 保留为无效 ID
const InvalidEntity EntityID = 0

// componentSet 单个实体的组件表，以组件动态类型为键
type componentSet map[reflect.Type]any

// EntityManager 管理实体与组件
//
// ID 单调递增且不复用，因此同一种子下重放的会话会得到相同的实体 ID。
// 查询结果按 ID 升序返回，遍历顺序与 map 的随机顺序无关。
type EntityManager struct {
	nextID   EntityID
	entities map[EntityID]componentSet
	doomed   map[EntityID]struct{} // 已标记、等待 RemoveMarkedEntities 的实体
}

// NewEntityManager 创建空的实体管理器，第一个实体 ID 为 1
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:   1,
		entities: make(map[EntityID]componentSet),
		doomed:   make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回其 ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.entities[id] = make(componentSet)
	return id
}

// DestroyEntity 标记实体待删除，实体在 RemoveMarkedEntities 之前仍可查询
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.doomed[id] = struct{}{}
}

// IsMarkedForDestroy 检查实体是否已被标记删除
func (em *EntityManager) IsMarkedForDestroy(id EntityID) bool {
	_, ok := em.doomed[id]
	return ok
}

// Exists 检查实体是否存在
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.entities[id]
	return ok
}

// EntityCount 返回当前实体数量（含已标记未清理的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// AddComponent 为实体添加组件，同类型组件会被覆盖
// 实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if set, ok := em.entities[id]; ok {
		set[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if set, ok := em.entities[id]; ok {
		delete(set, componentType)
	}
}

// GetComponent 获取实体的指定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.entities[id][componentType]
	return comp, ok
}

// HasComponent 检查实体是否拥有指定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.entities[id][componentType]
	return ok
}

// RemoveMarkedEntities 删除所有已标记的实体
// 返回实际删除的数量，重复标记或已不存在的实体不计入
func (em *EntityManager) RemoveMarkedEntities() int {
	removed := 0
	for id := range em.doomed {
		if _, ok := em.entities[id]; ok {
			delete(em.entities, id)
			removed++
		}
	}
	clear(em.doomed)
	return removed
}

// GetEntitiesWith 查询拥有全部指定组件类型的实体，按 ID 升序返回
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, set := range em.entities {
		if hasAll(set, componentTypes) {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

func hasAll(set componentSet, types []reflect.Type) bool {
	for _, t := range types {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

// Clear 删除全部实体，ID 计数不重置
func (em *EntityManager) Clear() {
	clear(em.entities)
	clear(em.doomed)
}

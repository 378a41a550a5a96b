package config

import (
	"errors"
	"fmt"
)

// ErrNotFound 查询注册表中不存在的 ID 时返回
// 调用方应放弃本次生成/拾取，而不是中断 tick 循环
var ErrNotFound = errors.New("not found")

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

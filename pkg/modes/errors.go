package modes

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition 当前状态不接受该事件
var ErrInvalidTransition = errors.New("invalid mode transition")

// ErrNotRunning 没有进行中的模式
var ErrNotRunning = errors.New("no mode running")

// TransitionError 描述被拒绝的迁移
type TransitionError struct {
	From  Kind
	Event EventKind
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s does not accept %s", ErrInvalidTransition, e.From, e.Event)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

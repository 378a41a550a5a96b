package events

// Listener 事件订阅者
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc 将普通函数适配为 Listener
type ListenerFunc func(e Event)

// OnEvent 调用 f(e)
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher 同步事件分发器
// 只在 tick 所在的主线程使用，不加锁
type Dispatcher struct {
	listeners map[Type][]Listener
	global    []Listener
}

// NewDispatcher 创建事件分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[Type][]Listener),
	}
}

// Subscribe 订阅指定类型的事件
func (d *Dispatcher) Subscribe(t Type, l Listener) {
	d.listeners[t] = append(d.listeners[t], l)
}

// SubscribeAll 订阅全部事件（用于日志、录像）
func (d *Dispatcher) SubscribeAll(l Listener) {
	d.global = append(d.global, l)
}

// Dispatch 按订阅顺序同步分发事件
// 先通知类型订阅者，再通知全局订阅者
func (d *Dispatcher) Dispatch(e Event) {
	for _, l := range d.listeners[e.Type()] {
		l.OnEvent(e)
	}
	for _, l := range d.global {
		l.OnEvent(e)
	}
}

// DispatchAll 依次分发多个事件
func (d *Dispatcher) DispatchAll(evs []Event) {
	for _, e := range evs {
		d.Dispatch(e)
	}
}

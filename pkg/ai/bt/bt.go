// Package bt 极简行为树：选择、顺序、条件与动作节点。
package bt

// Status 节点执行结果
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusRunning:
		return "running"
	}
	return "unknown"
}

// Node 行为树节点
type Node interface {
	Tick(bb Blackboard) Status
}

// Blackboard 节点间共享的数据，由具体的树自行断言类型
type Blackboard interface{}

// Selector 依次执行子节点，遇到非 Failure 即返回
type Selector struct {
	Children []Node
}

func (s *Selector) Tick(bb Blackboard) Status {
	for _, child := range s.Children {
		if status := child.Tick(bb); status != StatusFailure {
			return status
		}
	}
	return StatusFailure
}

// Sequence 依次执行子节点，遇到非 Success 即返回
type Sequence struct {
	Children []Node
}

func (s *Sequence) Tick(bb Blackboard) Status {
	for _, child := range s.Children {
		if status := child.Tick(bb); status != StatusSuccess {
			return status
		}
	}
	return StatusSuccess
}

// ConditionFunc 条件判断
type ConditionFunc func(bb Blackboard) bool

// Condition 条件节点
type Condition struct {
	Check ConditionFunc
}

func (c *Condition) Tick(bb Blackboard) Status {
	if c.Check == nil {
		return StatusFailure
	}
	if c.Check(bb) {
		return StatusSuccess
	}
	return StatusFailure
}

// ActionFunc 动作
type ActionFunc func(bb Blackboard) Status

// Action 动作节点
type Action struct {
	Do ActionFunc
}

func (a *Action) Tick(bb Blackboard) Status {
	if a.Do == nil {
		return StatusFailure
	}
	return a.Do(bb)
}

// Inverter 反转子节点的 Success/Failure
type Inverter struct {
	Child Node
}

func (i *Inverter) Tick(bb Blackboard) Status {
	switch i.Child.Tick(bb) {
	case StatusSuccess:
		return StatusFailure
	case StatusFailure:
		return StatusSuccess
	}
	return StatusRunning
}

package phase

// menuItem 菜单项，选中后执行 choose
type menuItem struct {
	label  string
	choose func(m *Machine)
}

// Menu 纵向菜单
type Menu struct {
	Title    string
	items    []menuItem
	selected int
}

// MenuView 菜单的渲染数据
type MenuView struct {
	Title    string
	Items    []string
	Selected int
}

func (mn *Menu) view() *MenuView {
	v := &MenuView{Title: mn.Title, Selected: mn.selected}
	for _, it := range mn.items {
		v.Items = append(v.Items, it.label)
	}
	return v
}

// move 循环移动光标
func (mn *Menu) move(delta int) {
	n := len(mn.items)
	mn.selected = ((mn.selected+delta)%n + n) % n
}

func (mn *Menu) choose(m *Machine) {
	mn.items[mn.selected].choose(m)
}

func newMainMenu(demo bool) *Menu {
	mn := &Menu{Title: "BOMBERMAN", items: []menuItem{
		{label: "Start", choose: func(m *Machine) {
			m.pilot = nil
			m.Dispatch(EventStart)
		}},
	}}
	if demo {
		mn.items = append(mn.items, menuItem{label: "Demo", choose: func(m *Machine) {
			m.pilot = m.opts.Demo
			m.Dispatch(EventStart)
		}})
	}
	return mn
}

func newPauseMenu() *Menu {
	return &Menu{Title: "PAUSE", items: []menuItem{
		{label: "Continue", choose: func(m *Machine) { m.Dispatch(EventResume) }},
		{label: "Restart", choose: func(m *Machine) { m.Dispatch(EventRestart) }},
		{label: "Quit", choose: func(m *Machine) { m.Dispatch(EventQuit) }},
	}}
}

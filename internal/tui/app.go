package tui

import (
	"context"
	"strings"
	"time"

	"memopad/internal/model"
	"memopad/internal/richtext"
	"memopad/internal/session"
	"memopad/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type tabKind int

const (
	tabTodo tabKind = iota
	tabTodoArchive
	tabCategory
	tabArchive
)

type tabDef struct {
	kind     tabKind
	category string
	label    string
}

type mode int

const (
	modeList mode = iota
	modeInput
	modeEditBody
	modeConfirm
)

type inputAction int

const (
	actionAddRow inputAction = iota
	actionRenameRow
	actionAddCategory
	actionRenameCategory
)

type reloadTickMsg struct{}

type appModel struct {
	sess *session.Session

	width  int
	height int

	tabs   []tabDef
	active int

	rows list.Model

	mode        mode
	input       textinput.Model
	inputAction inputAction
	body        textarea.Model
	confirmMsg  string
	onConfirm   func(*appModel)

	// Body-editor state from the bind point. The bound markup may carry
	// formatting a plain-text round trip would strip, so it is only
	// rewritten once the editor text diverges from bodyBaseline.
	bodyOriginal string
	bodyBaseline string

	// status is a one-shot message line, cleared on the next key.
	status string
}

func newAppModel(sess *session.Session) appModel {
	m := appModel{sess: sess}
	m.rows = newList(nil)
	m.input = textinput.New()
	m.input.CharLimit = 200
	m.body = textarea.New()
	m.rebuildTabs()
	lastID := m.restoreLastView()
	m.refreshRows()
	if lastID != "" {
		m.selectRowByID(lastID)
	}
	return m
}

func (m *appModel) rebuildTabs() {
	doc := m.sess.Document()
	tabs := []tabDef{
		{kind: tabTodo, label: "ToDo"},
		{kind: tabTodoArchive, label: "ToDo " + model.ArchiveCategoryName},
	}
	for _, name := range doc.CategoryOrder {
		tabs = append(tabs, tabDef{kind: tabCategory, category: name, label: name})
	}
	tabs = append(tabs, tabDef{kind: tabArchive, label: model.ArchiveCategoryName})
	m.tabs = tabs
	if m.active >= len(tabs) {
		m.active = len(tabs) - 1
	}
}

func (m *appModel) currentTab() tabDef { return m.tabs[m.active] }

func (m *appModel) refreshRows() {
	doc := m.sess.Document()
	curID := m.selectedID()
	var items []list.Item
	switch tab := m.currentTab(); tab.kind {
	case tabTodo:
		for _, it := range doc.Todo.Items {
			items = append(items, todoRowItem{item: it})
		}
	case tabTodoArchive:
		for _, e := range doc.Todo.Archive {
			items = append(items, todoArchiveRowItem{entry: e})
		}
	case tabCategory:
		if cat := doc.Categories[tab.category]; cat != nil {
			for _, it := range cat.Items {
				items = append(items, residentRowItem{item: it, category: tab.category})
			}
		}
	case tabArchive:
		for _, e := range doc.AllResidentArchives() {
			items = append(items, archiveRowItem{entry: e})
		}
	}
	m.rows.SetItems(items)
	if curID != "" {
		m.selectRowByID(curID)
	}
}

func (m *appModel) selectedID() string {
	switch it := m.rows.SelectedItem().(type) {
	case todoRowItem:
		return it.item.ID
	case residentRowItem:
		return it.item.ID
	case todoArchiveRowItem:
		return it.entry.ID
	case archiveRowItem:
		return it.entry.ID
	}
	return ""
}

func (m *appModel) selectRowByID(id string) {
	for i, item := range m.rows.Items() {
		rowID := ""
		switch it := item.(type) {
		case todoRowItem:
			rowID = it.item.ID
		case residentRowItem:
			rowID = it.item.ID
		case todoArchiveRowItem:
			rowID = it.entry.ID
		case archiveRowItem:
			rowID = it.entry.ID
		}
		if rowID == id {
			m.rows.Select(i)
			return
		}
	}
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case reloadTickMsg:
		if reloaded, _ := m.sess.ReloadIfChanged(); reloaded {
			m.rebuildTabs()
			m.refreshRows()
		}
		return m, tickReload()

	case tea.KeyMsg:
		m.status = ""
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeEditBody:
			return m.updateEditBody(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is typing, every key belongs to it.
	if m.rows.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		return m, cmd
	}

	ctx := context.Background()
	tab := m.currentTab()

	switch msg.String() {
	case "ctrl+c", "q":
		m.saveLastView()
		return m, tea.Quit

	case "tab", "l":
		m.active = (m.active + 1) % len(m.tabs)
		m.refreshRows()
		m.saveLastView()
		return m, nil
	case "shift+tab", "h":
		m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
		m.refreshRows()
		m.saveLastView()
		return m, nil

	case "a":
		switch tab.kind {
		case tabTodo:
			m.startInput(actionAddRow, "New todo")
			return m, textinput.Blink
		case tabCategory:
			m.startInput(actionAddRow, "New item in "+tab.category)
			return m, textinput.Blink
		}
		return m, nil

	case "N":
		m.startInput(actionAddCategory, "New category")
		return m, textinput.Blink

	case "r":
		switch tab.kind {
		case tabTodo, tabCategory:
			if id := m.selectedID(); id != "" {
				m.startInput(actionRenameRow, "Rename")
				m.input.SetValue(m.selectedTitle())
			}
			return m, textinput.Blink
		}
		return m, nil

	case "C":
		if tab.kind == tabCategory {
			m.startInput(actionRenameCategory, "Rename category "+tab.category)
			m.input.SetValue(tab.category)
			return m, textinput.Blink
		}
		return m, nil

	case "t", " ":
		if tab.kind == tabTodo {
			if id := m.selectedID(); id != "" {
				m.applyCmd(ctx, session.ToggleTodo{ID: id})
			}
		}
		return m, nil

	case "c":
		if id := m.selectedID(); id != "" {
			switch it := m.rows.SelectedItem().(type) {
			case todoRowItem:
				m.applyCmd(ctx, session.RecolorTodo{ID: id, Color: nextPaletteColor(it.item.Color)})
			case residentRowItem:
				m.applyCmd(ctx, session.RecolorItem{Category: it.category, ID: id, Color: nextPaletteColor(it.item.Color)})
			}
		}
		return m, nil

	case "A":
		switch tab.kind {
		case tabTodo:
			m.applyCmd(ctx, session.ArchiveDoneTodos{})
		case tabCategory:
			if id := m.selectedID(); id != "" {
				m.applyCmd(ctx, session.ArchiveItem{Category: tab.category, ID: id})
			}
		}
		return m, nil

	case "R":
		if id := m.selectedID(); id != "" {
			switch tab.kind {
			case tabTodoArchive:
				m.applyCmd(ctx, session.RestoreTodoArchive{ID: id})
			case tabArchive:
				m.applyCmd(ctx, session.RestoreArchive{ID: id})
			}
		}
		return m, nil

	case "d":
		if id := m.selectedID(); id != "" {
			m.startConfirm(tab, id)
		}
		return m, nil

	case "J":
		m.moveRow(ctx, +1)
		return m, nil
	case "K":
		m.moveRow(ctx, -1)
		return m, nil

	case "H":
		if tab.kind == tabCategory {
			m.moveCategory(ctx, -1)
		}
		return m, nil
	case "L":
		if tab.kind == tabCategory {
			m.moveCategory(ctx, +1)
		}
		return m, nil

	case "e":
		switch tab.kind {
		case tabTodo:
			if id := m.selectedID(); id != "" {
				m.startEditBody(ctx, session.RefTodo{ID: id})
				return m, textarea.Blink
			}
		case tabCategory:
			if id := m.selectedID(); id != "" {
				m.startEditBody(ctx, session.RefResident{Category: tab.category, ID: id})
				return m, textarea.Blink
			}
		}
		return m, nil

	case "n":
		m.startEditBody(ctx, session.RefFreeNote{})
		return m, textarea.Blink
	}

	before := m.selectedID()
	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	if m.selectedID() != before {
		m.saveLastView()
	}
	return m, cmd
}

func (m *appModel) applyCmd(ctx context.Context, cmd session.Command) {
	if _, err := m.sess.Apply(ctx, cmd); err != nil {
		m.status = err.Error()
		return
	}
	m.rebuildTabs()
	m.refreshRows()
}

func (m *appModel) selectedTitle() string {
	switch it := m.rows.SelectedItem().(type) {
	case todoRowItem:
		return it.item.Title
	case residentRowItem:
		return it.item.Title
	}
	return ""
}

func (m *appModel) startInput(action inputAction, prompt string) {
	m.mode = modeInput
	m.inputAction = action
	m.input.Prompt = prompt + ": "
	m.input.SetValue("")
	m.input.Focus()
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.mode = modeList
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		ctx := context.Background()
		tab := m.currentTab()
		switch m.inputAction {
		case actionAddRow:
			if tab.kind == tabTodo {
				m.applyCmd(ctx, session.AddTodo{Title: value})
			} else {
				m.applyCmd(ctx, session.AddItem{Category: tab.category, Title: value})
			}
		case actionRenameRow:
			if id := m.selectedID(); id != "" {
				if tab.kind == tabTodo {
					m.applyCmd(ctx, session.RenameTodo{ID: id, Title: value})
				} else {
					m.applyCmd(ctx, session.RenameItem{Category: tab.category, ID: id, Title: value})
				}
			}
		case actionAddCategory:
			m.applyCmd(ctx, session.AddCategory{CategoryName: value})
		case actionRenameCategory:
			m.applyCmd(ctx, session.RenameCategory{From: tab.category, To: value})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) startEditBody(ctx context.Context, ref session.Ref) {
	m.sess.Bind(ctx, ref)
	m.mode = modeEditBody
	m.bodyOriginal = m.sess.Buffer()
	m.bodyBaseline = richtext.ToPlain(m.bodyOriginal)
	m.body.SetValue(m.bodyBaseline)
	m.body.Focus()
}

func (m appModel) updateEditBody(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.sess.Unbind(context.Background())
		m.mode = modeList
		m.body.Blur()
		m.refreshRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	if v := m.body.Value(); v != m.bodyBaseline {
		m.sess.SetBuffer(richtext.PlainToHTML(v))
	} else {
		// Cursor movement, or an edit undone back to the starting text.
		// Re-offering the bound markup keeps both a no-op.
		m.sess.SetBuffer(m.bodyOriginal)
	}
	return m, cmd
}

func (m *appModel) startConfirm(tab tabDef, id string) {
	m.confirmMsg = "Delete " + m.rowLabel() + "? (y/n)"
	m.onConfirm = func(mm *appModel) {
		ctx := context.Background()
		switch tab.kind {
		case tabTodo:
			mm.applyCmd(ctx, session.DeleteTodo{ID: id})
		case tabTodoArchive:
			mm.applyCmd(ctx, session.DeleteTodoArchive{ID: id})
		case tabCategory:
			mm.applyCmd(ctx, session.DeleteItem{Category: tab.category, ID: id})
		case tabArchive:
			mm.applyCmd(ctx, session.DeleteArchive{ID: id})
		}
	}
	m.mode = modeConfirm
}

func (m *appModel) rowLabel() string {
	switch it := m.rows.SelectedItem().(type) {
	case todoRowItem:
		return it.item.Title
	case residentRowItem:
		return it.item.Title
	case todoArchiveRowItem:
		return it.entry.Title
	case archiveRowItem:
		return it.entry.Title
	}
	return "row"
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeList
		if m.onConfirm != nil {
			m.onConfirm(&m)
		}
	case "n", "N", "esc":
		m.mode = modeList
	}
	return m, nil
}

func (m *appModel) moveRow(ctx context.Context, delta int) {
	tab := m.currentTab()
	doc := m.sess.Document()
	id := m.selectedID()
	if id == "" {
		return
	}
	var items []model.Item
	switch tab.kind {
	case tabTodo:
		items = doc.Todo.Items
	case tabCategory:
		if cat := doc.Categories[tab.category]; cat != nil {
			items = cat.Items
		}
	default:
		return
	}
	from := -1
	for i := range items {
		if items[i].ID == id {
			from = i
			break
		}
	}
	to := from + delta
	if from < 0 || to < 0 || to >= len(items) {
		return
	}
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	ids[from], ids[to] = ids[to], ids[from]
	if tab.kind == tabTodo {
		m.applyCmd(ctx, session.ReorderTodos{IDs: ids})
	} else {
		m.applyCmd(ctx, session.ReorderItems{Category: tab.category, IDs: ids})
	}
	m.selectRowByID(id)
}

func (m *appModel) moveCategory(ctx context.Context, delta int) {
	tab := m.currentTab()
	doc := m.sess.Document()
	pos := -1
	for i, name := range doc.CategoryOrder {
		if name == tab.category {
			pos = i
			break
		}
	}
	if pos < 0 {
		return
	}
	m.applyCmd(ctx, session.MoveCategory{CategoryName: tab.category, To: pos + delta})
	// Follow the tab to its new slot.
	for i, t := range m.tabs {
		if t.kind == tabCategory && t.category == tab.category {
			m.active = i
			break
		}
	}
	m.refreshRows()
}

func (m *appModel) resize() {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width / 2
	if w < 40 {
		w = 40
	}
	m.rows.SetSize(w, h)
	m.body.SetWidth(w)
	m.body.SetHeight(h)
	m.input.Width = m.width - 4
}

func (m appModel) View() string {
	header := m.viewTabs()
	bodyHeight := m.height - 6
	if bodyHeight < 8 {
		bodyHeight = 8
	}
	leftWidth := m.width / 2
	if leftWidth < 40 {
		leftWidth = 40
	}
	rightWidth := m.width - leftWidth - 2
	if rightWidth < 30 {
		rightWidth = 30
	}

	var middle string
	switch m.mode {
	case modeEditBody:
		middle = m.body.View()
	default:
		left := m.rows.View()
		right := m.viewDetail(rightWidth, bodyHeight)
		middle = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	var footer string
	switch m.mode {
	case modeInput:
		footer = m.input.View()
	case modeConfirm:
		footer = statusStyle.Render(m.confirmMsg)
	case modeEditBody:
		footer = footerStyle.Render("esc: done editing (saved automatically)")
	default:
		footer = footerStyle.Render("a: add  t: toggle  e: edit  r: rename  c: color  A: archive  R: restore  d: delete  J/K: move  tab: next  n: note  q: quit")
	}
	if m.status != "" {
		footer = statusStyle.Render(ansi.Truncate(m.status, m.width, "…")) + "\n" + footer
	}

	return strings.Join([]string{header, middle, footer}, "\n\n")
}

func (m appModel) viewTabs() string {
	parts := make([]string, 0, len(m.tabs)+1)
	for i, tab := range m.tabs {
		label := tab.label
		if i == m.active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	line := strings.Join(parts, "  ")
	if m.sess.Dirty() {
		line += "  " + footerStyle.Render("*")
	}
	return headerStyle.Render(ansi.Truncate(line, m.width, "…"))
}

func (m appModel) viewDetail(width, height int) string {
	box := lipgloss.NewStyle().Width(width).Height(height).PaddingLeft(2)

	var title, html string
	switch it := m.rows.SelectedItem().(type) {
	case todoRowItem:
		title, html = it.item.Title, it.item.HTML
	case residentRowItem:
		title, html = it.item.Title, it.item.HTML
	case todoArchiveRowItem:
		title, html = it.entry.Title, it.entry.HTML
	case archiveRowItem:
		title, html = it.entry.Title, it.entry.HTML
	default:
		note := m.sess.Document().FreeNote.HTML
		if strings.TrimSpace(richtext.ToPlain(note)) == "" {
			return box.Render("Nothing selected.")
		}
		title, html = "Note", note
	}

	rendered := richtext.RenderTerminal(html, width-2)
	head := headerStyle.Render(ansi.Truncate(title, width-2, "…"))
	return box.Render(head + "\n" + rendered)
}

func (m *appModel) restoreLastView() string {
	prefs, err := m.sess.Store().LoadPrefs()
	if err != nil {
		return ""
	}
	last := prefs.Last
	for i, tab := range m.tabs {
		switch {
		case last.Tab == "todo" && tab.kind == tabTodo,
			last.Tab == "todo-archive" && tab.kind == tabTodoArchive,
			last.Tab == "archive" && tab.kind == tabArchive,
			tab.kind == tabCategory && tab.category == last.Tab:
			m.active = i
		}
	}
	if last.ItemID != "" {
		return last.ItemID
	}
	return last.TodoID
}

func (m *appModel) saveLastView() {
	st := m.sess.Store()
	prefs, err := st.LoadPrefs()
	if err != nil {
		return
	}
	tab := m.currentTab()
	last := store.LastView{}
	switch tab.kind {
	case tabTodo:
		last.Tab = "todo"
		last.TodoID = m.selectedID()
	case tabTodoArchive:
		last.Tab = "todo-archive"
	case tabArchive:
		last.Tab = "archive"
	case tabCategory:
		last.Tab = tab.category
		last.Category = tab.category
		last.ItemID = m.selectedID()
	}
	prefs.Last = last
	if err := st.SavePrefs(prefs); err != nil {
		st.AppendErrorLog(err, nil)
	}
}

// Package tui is the interactive picker: criteria selectors above two
// result lists, with pinning in either list narrowing the other.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/engine"
	"github.com/roach88/crimpfit/internal/selection"
)

type focus int

const (
	focusMaterial focus = iota
	focusClass
	focusType
	focusCrossSection
	focusStudHole
	focusConnectors
	focusTools
	focusCount
)

func (f focus) isList() bool {
	return f == focusConnectors || f == focusTools
}

const defaultListRows = 10

// Model is the bubbletea model of the picker.
type Model struct {
	session    *engine.Session
	result     engine.Result
	connectors *resultList
	tools      *resultList

	focus     focus
	searching bool
	status    string
	loadErr   error

	width    int
	height   int
	quitting bool
}

// New returns a picker over an engine session.
func New(session *engine.Session) Model {
	m := Model{
		session:    session,
		connectors: newResultList("Connectors"),
		tools:      newResultList("Tools"),
	}
	m.refresh()
	return m
}

// NewWithError returns a picker that shows a catalog load error over an
// empty catalog.
func NewWithError(err error) Model {
	return Model{
		loadErr:    err,
		connectors: newResultList("Connectors"),
		tools:      newResultList("Tools"),
	}
}

// Run starts the picker and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Result returns the last evaluation.
func (m Model) Result() engine.Result { return m.result }

// Searching reports whether a search query is being edited.
func (m Model) Searching() bool { return m.searching }

// Status returns the last error message, if any.
func (m Model) Status() string { return m.status }

// Quitting reports whether the picker has been asked to quit.
func (m Model) Quitting() bool { return m.quitting }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.session == nil {
		if key == "q" || key == "esc" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.searching {
		list := m.focusedList()
		switch key {
		case "enter":
			m.searching = false
		case "esc":
			m.searching = false
			if list.ClearQuery() {
				m.refresh()
			}
		default:
			if list.HandleQueryKey(key) {
				m.refresh()
			}
		}
		return m, nil
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.focus = (m.focus + 1) % focusCount
	case "shift+tab":
		m.focus = (m.focus + focusCount - 1) % focusCount
	case "left", "h":
		m.cycle(-1)
	case "right", "l":
		m.cycle(1)
	case "up", "k":
		if m.focus.isList() {
			m.focusedList().CursorUp()
		}
	case "down", "j":
		if m.focus.isList() {
			m.focusedList().CursorDown()
		}
	case "/":
		if m.focus.isList() {
			m.searching = true
		}
	case "enter":
		if m.focus.isList() {
			m.pinCurrent()
		}
	case "esc":
		if m.focus.isList() {
			m.apply(m.session.Reopen(m.focusedKind()))
		}
	case "u":
		m.session.Unpin()
		m.apply(nil)
	}
	return m, nil
}

func (m *Model) focusedList() *resultList {
	if m.focus == focusTools {
		return m.tools
	}
	return m.connectors
}

func (m *Model) focusedKind() selection.PinKind {
	if m.focus == focusTools {
		return selection.PinTool
	}
	return selection.PinConnector
}

func (m *Model) pinCurrent() {
	item, ok := m.focusedList().Current()
	if !ok {
		return
	}
	if m.focus == focusTools {
		m.apply(m.session.PinTool(item.ID))
		return
	}
	m.apply(m.session.PinConnector(item.ID))
}

// cycle steps the focused criterion through its values.
func (m *Model) cycle(delta int) {
	state := m.session.State()
	cr := state.Criteria()
	dom := state.Domain()

	var err error
	switch m.focus {
	case focusMaterial:
		i := nextIndex(slices.Index(catalog.Materials, cr.Material), len(catalog.Materials), delta)
		err = state.SetMaterial(catalog.Materials[i])
	case focusClass:
		if i := nextIndex(slices.Index(dom.Classes, cr.Class), len(dom.Classes), delta); i >= 0 {
			err = state.SetConductorClass(dom.Classes[i])
		}
	case focusType:
		i := nextIndex(slices.Index(catalog.ConnectorTypes, cr.ConnectorType), len(catalog.ConnectorTypes), delta)
		err = state.SetConnectorType(catalog.ConnectorTypes[i])
	case focusCrossSection:
		if i := nextIndex(measureIndex(dom.CrossSections, cr.CrossSection), len(dom.CrossSections), delta); i >= 0 {
			err = state.SetCrossSectionIndex(i)
		}
	case focusStudHole:
		if i := nextIndex(measureIndex(dom.StudHoles, cr.StudHole), len(dom.StudHoles), delta); i >= 0 {
			err = state.SetStudHoleIndex(i)
		}
	default:
		return
	}
	m.apply(err)
}

func measureIndex(set []float64, m catalog.Measure) int {
	if !m.Valid {
		return -1
	}
	return slices.Index(set, m.Value)
}

// nextIndex moves cur by delta, wrapping. An unset cur starts at either
// end. Returns -1 for an empty set.
func nextIndex(cur, n, delta int) int {
	if n == 0 {
		return -1
	}
	if cur < 0 {
		if delta > 0 {
			return 0
		}
		return n - 1
	}
	return ((cur+delta)%n + n) % n
}

// apply records the outcome of an action and re-evaluates.
func (m *Model) apply(err error) {
	if err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.result = m.session.Evaluate()

	conns := engine.SearchConnectors(m.result.Connectors, m.connectors.Query())
	items := make([]listItem, 0, len(conns))
	for _, c := range conns {
		items = append(items, listItem{
			ID:    c.PartNumber,
			Label: c.PartNumber,
			Meta:  connectorMeta(c),
		})
	}
	m.connectors.SetItems(items)

	tools := engine.SearchTools(m.result.Tools, m.tools.Query())
	items = make([]listItem, 0, len(tools))
	for _, t := range tools {
		items = append(items, listItem{ID: t.SKU, Label: t.SKU, Meta: toolMeta(t)})
	}
	m.tools.SetItems(items)
}

func connectorMeta(c catalog.Connector) string {
	parts := []string{c.Material, c.CrossSection.String() + " mm²"}
	if c.StudHole.Valid {
		parts = append(parts, "M"+c.StudHole.String())
	}
	for _, s := range c.Series {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, " · ")
}

func toolMeta(t catalog.Tool) string {
	if t.ProductName == "" {
		return t.Series
	}
	return t.ProductName + " · " + t.Series
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("crimpfit"))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Catalog could not be loaded: " + m.loadErr.Error()))
		b.WriteString("\n\n")
		b.WriteString(hint("q", "quit"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderCriteria())
	b.WriteString("\n")

	rows := defaultListRows
	if m.height > 0 {
		rows = max(3, m.height-16)
	}
	conn := m.renderList(m.connectors, focusConnectors, m.pinnedID(selection.PinConnector), rows)
	tool := m.renderList(m.tools, focusTools, m.pinnedID(selection.PinTool), rows)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, conn, " ", tool))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	return b.String()
}

func (m Model) pinnedID(kind selection.PinKind) string {
	switch {
	case kind == selection.PinConnector && m.result.PinnedConnector != nil:
		return m.result.PinnedConnector.PartNumber
	case kind == selection.PinTool && m.result.PinnedTool != nil:
		return m.result.PinnedTool.SKU
	}
	return ""
}

func (m Model) renderCriteria() string {
	cr := m.result.Criteria
	studHole := measureText(cr.StudHole, "mm")
	if !cr.ConnectorType.UsesStudHole() {
		studHole += " (not used)"
	}
	fields := []struct {
		f     focus
		label string
		value string
	}{
		{focusMaterial, "Material", string(cr.Material)},
		{focusClass, "Class", string(cr.Class)},
		{focusType, "Type", string(cr.ConnectorType)},
		{focusCrossSection, "Cross section", measureText(cr.CrossSection, "mm²")},
		{focusStudHole, "Stud hole", studHole},
	}

	var lines []string
	for _, fd := range fields {
		marker := "  "
		value := valueStyle.Render(fd.value)
		if m.focus == fd.f {
			marker = "› "
			value = focusedValueStyle.Render("‹ " + fd.value + " ›")
		}
		lines = append(lines, marker+labelStyle.Render(fmt.Sprintf("%-14s", fd.label))+value)
	}
	return strings.Join(lines, "\n") + "\n"
}

func measureText(m catalog.Measure, unit string) string {
	if !m.Valid {
		return m.String()
	}
	return m.String() + " " + unit
}

func (m Model) renderList(l *resultList, f focus, pinned string, rows int) string {
	items := l.Items()
	header := fmt.Sprintf("%s (%d)", l.title, len(items))
	lines := []string{titleStyle.Render(header)}

	if q := l.Query(); q != "" || (m.searching && m.focus == f) {
		lines = append(lines, searchStyle.Render("/"+q))
	}

	if len(items) == 0 {
		lines = append(lines, mutedStyle.Render("(none)"))
	}
	start := 0
	if l.Cursor() >= rows {
		start = l.Cursor() - rows + 1
	}
	end := min(len(items), start+rows)
	for i := start; i < end; i++ {
		it := items[i]
		mark := "  "
		label := valueStyle.Render(it.Label)
		if it.ID == pinned {
			mark = pinnedStyle.Render("● ")
			label = pinnedStyle.Render(it.Label)
		}
		row := mark + label + " " + metaStyle.Render(it.Meta)
		if m.focus == f && i == l.Cursor() {
			row = cursorRowStyle.Render(row)
		}
		lines = append(lines, row)
	}
	if end < len(items) {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("… %d more", len(items)-end)))
	}

	style := panelStyle
	if m.focus == f {
		style = focusedPanelStyle
	}
	if m.width > 0 {
		style = style.Width(max(20, m.width/2-4))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	if m.searching {
		return strings.Join([]string{hint("type", "search"), hint("enter", "done"), hint("esc", "clear")}, "  ")
	}
	parts := []string{hint("tab", "focus")}
	if m.focus.isList() {
		parts = append(parts, hint("j/k", "move"), hint("enter", "pin"), hint("esc", "reopen"), hint("/", "search"))
	} else {
		parts = append(parts, hint("h/l", "change"))
	}
	parts = append(parts, hint("u", "unpin"), hint("q", "quit"))
	return strings.Join(parts, "  ")
}

func hint(key, desc string) string {
	return hintKeyStyle.Render(key) + " " + mutedStyle.Render(desc)
}

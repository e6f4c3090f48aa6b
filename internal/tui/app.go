package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/troynguyen8/tetris-sandbox/internal/docs"
	"github.com/troynguyen8/tetris-sandbox/internal/editor"
	"github.com/troynguyen8/tetris-sandbox/internal/fragment"
	"github.com/troynguyen8/tetris-sandbox/internal/model"
	"github.com/troynguyen8/tetris-sandbox/internal/render"
	"github.com/troynguyen8/tetris-sandbox/internal/store"
	"github.com/troynguyen8/tetris-sandbox/internal/workspace"
)

type mode int

const (
	modeBoard mode = iota
	modeHelp
	modeSave
	modeLibrary
	modeTemplates
)

// Screen layout: header, status line, then the framed board. Mouse hit
// testing depends on these offsets.
const (
	boardTop     = 2
	boardWidth   = model.Cols*render.CellWidth + 2
	sidebarGap   = 2
	sidebarLeft  = boardWidth + sidebarGap
	reloadPeriod = 500 * time.Millisecond
)

type reloadTickMsg struct{}

type appModel struct {
	ws  *workspace.Workspace
	cfg *store.GlobalConfig
	log logrus.FieldLogger

	keys keyMap
	help help.Model
	mode mode

	width  int
	height int

	cursorRow int
	cursorCol int

	status    string
	statusErr bool

	nameInput textinput.Model
	library   list.Model
	templates list.Model
}

func newAppModel(ws *workspace.Workspace, cfg *store.GlobalConfig, log logrus.FieldLogger) appModel {
	if log == nil {
		log = logrus.StandardLogger()
	}
	m := appModel{
		ws:        ws,
		cfg:       cfg,
		log:       log,
		keys:      defaultKeyMap(),
		help:      help.New(),
		cursorRow: model.Rows - 1,
	}
	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "board name"
	m.nameInput.CharLimit = 80
	m.nameInput.Prompt = "save as: "

	m.library = newList("Library", nil)
	m.templates = newList("Templates", templateItems())
	return m
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func tickReload() tea.Cmd {
	return tea.Tick(reloadPeriod, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.library.SetSize(msg.Width, max(msg.Height-4, 5))
		m.templates.SetSize(msg.Width, max(msg.Height-4, 5))
		return m, nil

	case reloadTickMsg:
		if m.ws.ChangedExternally() && !m.ws.Editor.Painting() {
			if err := m.ws.Reload(); err != nil {
				m.setError(err)
			} else {
				m.setStatus("reloaded from disk")
			}
		}
		return m, tickReload()

	case tea.MouseMsg:
		if m.mode == modeBoard {
			m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeHelp:
			if msg.String() == "esc" || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.mode = modeBoard
			}
			return m, nil
		case modeSave:
			return m.updateSave(msg)
		case modeLibrary:
			return m.updateLibrary(msg)
		case modeTemplates:
			return m.updateTemplates(msg)
		default:
			return m.updateBoard(msg)
		}
	}

	switch m.mode {
	case modeSave:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	case modeLibrary:
		var cmd tea.Cmd
		m.library, cmd = m.library.Update(msg)
		return m, cmd
	case modeTemplates:
		var cmd tea.Cmd
		m.templates, cmd = m.templates.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		m.cursorRow = max(m.cursorRow-1, 0)
	case key.Matches(msg, k.Down):
		m.cursorRow = min(m.cursorRow+1, model.Rows-1)
	case key.Matches(msg, k.Left):
		m.cursorCol = max(m.cursorCol-1, 0)
	case key.Matches(msg, k.Right):
		m.cursorCol = min(m.cursorCol+1, model.Cols-1)
	case key.Matches(msg, k.Paint):
		out, err := m.ws.Editor.Paint(m.cursorRow, m.cursorCol)
		m.afterEdit(out, err)
	case key.Matches(msg, k.PickColor):
		n, _ := strconv.Atoi(msg.String())
		palette := model.Palette()
		if n >= 1 && n <= len(palette) {
			m.selectColor(palette[n-1])
		}
	case key.Matches(msg, k.NextColor):
		m.ws.Editor.CycleColor(1)
		m.afterOption()
	case key.Matches(msg, k.PrevColor):
		m.ws.Editor.CycleColor(-1)
		m.afterOption()
	case key.Matches(msg, k.AutoClear):
		on := !m.ws.State().ShouldClearFullLines
		out := m.ws.Editor.SetAutoClear(on)
		m.afterEdit(out, nil)
		if len(out.Cleared) == 0 {
			m.setStatus("auto-clear " + onOff(on))
		}
	case key.Matches(msg, k.ClearLines):
		out := m.ws.Editor.ClearFullLines()
		m.afterEdit(out, nil)
		if len(out.Cleared) == 0 {
			m.setStatus("no full rows")
		}
	case key.Matches(msg, k.Undo):
		ok, err := m.ws.Editor.Undo()
		m.afterHistory("undo", ok, err)
	case key.Matches(msg, k.Redo):
		ok, err := m.ws.Editor.Redo()
		m.afterHistory("redo", ok, err)
	case key.Matches(msg, k.Link):
		link := fragment.Link(m.cfg.ShareBase(), m.ws.State())
		if err := clipboardWrite(link); err != nil {
			m.log.WithError(err).Debug("clipboard unavailable")
			m.setStatus(link)
		} else {
			m.setStatus("link copied to clipboard")
		}
	case key.Matches(msg, k.Template):
		m.mode = modeTemplates
	case key.Matches(msg, k.Save):
		m.mode = modeSave
		m.nameInput.SetValue("")
		return m, m.nameInput.Focus()
	case key.Matches(msg, k.Library):
		return m.openLibrary()
	case key.Matches(msg, k.Help):
		m.mode = modeHelp
	}
	return m, nil
}

func (m appModel) updateSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.nameInput.Blur()
		m.mode = modeBoard
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		b, err := m.ws.Store.SaveBoard(context.Background(), name, m.ws.Fragment())
		m.nameInput.Blur()
		m.mode = modeBoard
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.log.WithFields(logrus.Fields{"id": b.ID, "name": b.Name}).Info("saved board")
		m.setStatus(fmt.Sprintf("saved %q", b.Name))
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m appModel) openLibrary() (tea.Model, tea.Cmd) {
	boards, err := m.ws.Store.ListBoards(context.Background())
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if len(boards) == 0 {
		m.setStatus("library is empty (press s to save this board)")
		return m, nil
	}
	m.mode = modeLibrary
	cmd := m.library.SetItems(boardItems(boards))
	m.library.ResetSelected()
	return m, cmd
}

func (m appModel) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.library.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.library, cmd = m.library.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "esc", "q":
		m.mode = modeBoard
		return m, nil
	case "enter":
		it, ok := m.library.SelectedItem().(boardItem)
		if !ok {
			return m, nil
		}
		m.mode = modeBoard
		out, err := m.ws.Import(it.board.Fragment)
		if err != nil {
			m.setError(fmt.Errorf("load %q: %w", it.board.Name, err))
			return m, nil
		}
		m.afterEdit(out, nil)
		if !out.Changed {
			m.afterOption()
		}
		m.setStatus(fmt.Sprintf("loaded %q", it.board.Name))
		return m, nil
	case "d":
		it, ok := m.library.SelectedItem().(boardItem)
		if !ok {
			return m, nil
		}
		if err := m.ws.Store.DeleteBoard(context.Background(), it.board.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.library.RemoveItem(m.library.Index())
		m.setStatus(fmt.Sprintf("deleted %q", it.board.Name))
		if len(m.library.Items()) == 0 {
			m.mode = modeBoard
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.library, cmd = m.library.Update(msg)
	return m, cmd
}

func (m appModel) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.templates.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.templates, cmd = m.templates.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "esc", "q":
		m.mode = modeBoard
		return m, nil
	case "enter":
		it, ok := m.templates.SelectedItem().(templateItem)
		m.mode = modeBoard
		if !ok {
			return m, nil
		}
		out := m.ws.Editor.LoadGrid(it.tpl.Grid)
		m.afterEdit(out, nil)
		m.setStatus("template " + it.tpl.Name)
		return m, nil
	}
	var cmd tea.Cmd
	m.templates, cmd = m.templates.Update(msg)
	return m, cmd
}

func (m *appModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if row, col, ok := cellAt(msg.X, msg.Y); ok {
			m.cursorRow, m.cursorCol = row, col
			out, err := m.ws.Editor.Press(row, col)
			m.afterEdit(out, err)
			return
		}
		if c, ok := paletteAt(msg.X, msg.Y); ok {
			m.selectColor(c)
		}
	case tea.MouseActionMotion:
		if !m.ws.Editor.Painting() {
			return
		}
		if row, col, ok := cellAt(msg.X, msg.Y); ok {
			m.cursorRow, m.cursorCol = row, col
			out, err := m.ws.Editor.Drag(row, col)
			m.afterEdit(out, err)
		}
	case tea.MouseActionRelease:
		m.ws.Editor.Release()
	}
}

// cellAt maps a terminal position to a board cell.
func cellAt(x, y int) (row, col int, ok bool) {
	row = y - boardTop - 1
	if x < 1 || row < 0 || row >= model.Rows {
		return 0, 0, false
	}
	col = (x - 1) / render.CellWidth
	if col >= model.Cols {
		return 0, 0, false
	}
	return row, col, true
}

// paletteAt maps a click in the sidebar to a palette entry.
func paletteAt(x, y int) (model.Color, bool) {
	i := y - boardTop - 1
	palette := model.Palette()
	if x < sidebarLeft || i < 0 || i >= len(palette) {
		return 0, false
	}
	return palette[i], true
}

func (m *appModel) selectColor(c model.Color) {
	if err := m.ws.Editor.SelectColor(c); err != nil {
		m.setError(err)
		return
	}
	m.afterOption()
}

// afterOption persists option-only changes (selected color).
func (m *appModel) afterOption() {
	if err := m.ws.Commit(); err != nil {
		m.setError(err)
	}
}

func (m *appModel) afterEdit(out editor.Outcome, err error) {
	if err != nil {
		m.setError(err)
		return
	}
	if !out.Changed {
		return
	}
	if err := m.ws.Commit(); err != nil {
		m.setError(err)
		return
	}
	switch {
	case len(out.Cleared) > 0:
		m.setStatus("cleared " + rowList(out.Cleared))
	case out.RowBecameFull:
		m.setStatus("row full")
	default:
		m.status = ""
		m.statusErr = false
	}
}

func (m *appModel) afterHistory(verb string, ok bool, err error) {
	if err != nil {
		m.setError(err)
		return
	}
	if !ok {
		m.setStatus("nothing to " + verb)
		return
	}
	if err := m.ws.Commit(); err != nil {
		m.setError(err)
		return
	}
	m.setStatus(verb)
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *appModel) setError(err error) {
	m.log.WithError(err).Warn("tui action failed")
	m.status = err.Error()
	m.statusErr = true
}

func rowList(rows []int) string {
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, strconv.Itoa(r))
	}
	noun := "row "
	if len(rows) > 1 {
		noun = "rows "
	}
	return noun + strings.Join(parts, ", ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m appModel) View() string {
	switch m.mode {
	case modeHelp:
		md, _ := docs.Get("keys")
		out := docs.Render(md, markdownStyle(), max(m.width, 40))
		return clipLines(out, m.width, m.height)
	case modeLibrary:
		return m.header() + "\n\n" + m.library.View()
	case modeTemplates:
		return m.header() + "\n\n" + m.templates.View()
	}

	st := m.ws.State()
	board := render.Framed(st.Grid, render.Options{
		ASCII:     asciiBoard(),
		HasCursor: true,
		CursorRow: m.cursorRow,
		CursorCol: m.cursorCol,
		Dim:       m.ws.Editor.CoolingDown(),
	})
	body := lipgloss.JoinHorizontal(lipgloss.Top, board, strings.Repeat(" ", sidebarGap), m.sidebar(st))

	footer := m.help.View(m.keys)
	if m.mode == modeSave {
		footer = m.nameInput.View()
	}
	return strings.Join([]string{m.header(), m.statusLine(), body, footer}, "\n")
}

func (m appModel) header() string {
	return truncateToWidth(styleTitle().Render("Tetris Sandbox")+"  "+styleMuted().Render(m.ws.Store.Dir), m.widthOr(80))
}

func (m appModel) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styleError().Render(truncateToWidth(m.status, m.widthOr(80)))
	}
	return styleMuted().Render(truncateToWidth(m.status, m.widthOr(80)))
}

// sidebar lists the palette so that entry i sits beside board row i.
func (m appModel) sidebar(st model.AppState) string {
	lines := []string{""}
	for i, c := range model.Palette() {
		mark := "  "
		name := c.String()
		if c == st.SelectedColor {
			mark = "> "
			name = styleAccent().Render(name)
		}
		lines = append(lines, fmt.Sprintf("%s%d %s %s", mark, i+1, render.Swatch(c, asciiBoard()), name))
	}

	undo, redo := m.ws.Editor.History().Len()
	auto := glyphOff()
	if st.ShouldClearFullLines {
		auto = glyphOn()
	}
	lines = append(lines,
		"",
		fmt.Sprintf("%s auto-clear", auto),
		styleMuted().Render(fmt.Sprintf("undo %d  redo %d", undo, redo)),
		styleMuted().Render(fmt.Sprintf("%d cells", st.Grid.Count())),
	)
	return strings.Join(lines, "\n")
}

func (m appModel) widthOr(def int) int {
	if m.width > 0 {
		return m.width
	}
	return def
}

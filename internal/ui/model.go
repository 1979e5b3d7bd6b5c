package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"runfall/internal/api"
	"runfall/internal/clipboard"
	"runfall/internal/config"
	"runfall/internal/debuglog"
	"runfall/internal/detail"
	"runfall/internal/export"
	"runfall/internal/highlight"
	"runfall/internal/store"
	"runfall/internal/timeline"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	cfg      config.AppConfig
	client   *api.Client
	store    *store.Store
	exporter *export.Exporter
	log      *debuglog.Logger

	list     list.Model
	viewport viewport.Model
	help     help.Model
	spinner  spinner.Model
	inputs   []textinput.Model
	search   textinput.Model
	keys     keyMap

	width  int
	height int

	formMode  bool
	formFocus int
	formErr   string

	fetching    bool
	fetchSeq    int
	rendering   bool
	renderNonce int

	searchMode  bool
	searchQuery string
	matchCount  int
	focusOnList bool

	run          *api.Run
	steps        []api.RunStep
	segments     []timeline.Segment
	runTotal     int64
	fetchedAt    time.Time
	sel          *timeline.Selection
	cursor       int
	waterfallTop int

	rendered string

	status string
	err    error
}

type fetchDoneMsg struct {
	seq   int
	run   *api.Run
	steps []api.RunStep
}

type fetchErrMsg struct {
	seq int
	err error
}

type detailMsg struct {
	rendered string
	nonce    int
}

type savedMsg struct {
	err error
}

type exportMsg struct {
	path string
	err  error
}

type copyMsg struct {
	err error
}

type stepItem struct {
	index    int
	label    string
	status   string
	duration int64
}

func (i stepItem) Title() string { return i.label }
func (i stepItem) Description() string {
	return fmt.Sprintf("%s | %s", i.status, timeline.FormatMillis(i.duration))
}
func (i stepItem) FilterValue() string { return i.label + " " + i.status }

func NewModel(cfg config.AppConfig, client *api.Client, st *store.Store, exporter *export.Exporter, logger *debuglog.Logger) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Steps"
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Points

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search detail"
	search.CharLimit = 128

	labels := []string{"thread_...", "run_...", "sk-..."}
	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 256
		in.Width = 48
		inputs[i] = in
	}
	inputs[2].EchoMode = textinput.EchoPassword
	inputs[0].SetValue(cfg.ThreadID)
	inputs[1].SetValue(cfg.RunID)
	inputs[2].SetValue(cfg.APIKey)

	m := Model{
		cfg:      cfg,
		client:   client,
		store:    st,
		exporter: exporter,
		log:      logger,
		list:     l,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		spinner:  sp,
		inputs:   inputs,
		search:   search,
		keys:     defaultKeys(),
		sel:      timeline.NewSelection(nil),
	}

	m.focusOnList = true
	m.formMode = cfg.ThreadID == "" || cfg.RunID == "" || cfg.APIKey == ""
	if m.formMode {
		m.formFocus = firstEmptyInput(m.inputs)
		m.inputs[m.formFocus].Focus()
	} else {
		m.fetchSeq = 1
		m.fetching = true
		m.status = "Fetching run..."
	}
	return m
}

func firstEmptyInput(inputs []textinput.Model) int {
	for i, in := range inputs {
		if strings.TrimSpace(in.Value()) == "" {
			return i
		}
	}
	return 0
}

func (m Model) Init() tea.Cmd {
	if m.formMode {
		return textinput.Blink
	}
	return tea.Batch(m.spinner.Tick, m.fetchCmd(m.fetchSeq))
}

// The sequence number lets Update discard results a newer fetch superseded.
func (m Model) fetchCmd(seq int) tea.Cmd {
	client := m.client
	threadID := m.cfg.ThreadID
	runID := m.cfg.RunID
	logger := m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		run, err := client.GetRun(ctx, threadID, runID)
		if err != nil {
			logger.Error("get run failed", map[string]any{"thread_id": threadID, "run_id": runID, "error": err.Error()})
			return fetchErrMsg{seq: seq, err: err}
		}
		steps, err := client.ListRunSteps(ctx, threadID, runID)
		if err != nil {
			logger.Error("list run steps failed", map[string]any{"thread_id": threadID, "run_id": runID, "error": err.Error()})
			return fetchErrMsg{seq: seq, err: err}
		}
		return fetchDoneMsg{seq: seq, run: run, steps: steps}
	}
}

func renderDetailCmd(md string, wrap, nonce int) tea.Cmd {
	return func() tea.Msg {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(config.DefaultGlamourStyle),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return detailMsg{rendered: md, nonce: nonce}
		}
		out, err := renderer.Render(md)
		if err != nil {
			return detailMsg{rendered: md, nonce: nonce}
		}
		return detailMsg{rendered: out, nonce: nonce}
	}
}

func (m Model) saveStateCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	st := store.State{
		ThreadID: m.cfg.ThreadID,
		RunID:    m.cfg.RunID,
		APIKey:   m.cfg.APIKey,
		Debug:    m.cfg.Debug,
	}
	s := m.store
	return func() tea.Msg {
		return savedMsg{err: s.Save(st)}
	}
}

func (m Model) copyCmd() tea.Cmd {
	idx, ok := m.sel.Index()
	if !ok || idx >= len(m.steps) {
		return nil
	}
	md := detail.BuildMarkdown(detail.Classify(m.steps[idx].StepDetails))
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return copyMsg{err: clipboard.Copy(ctx, md)}
	}
}

func (m Model) exportCmd() tea.Cmd {
	if m.run == nil || m.exporter == nil {
		return nil
	}
	run := m.run
	steps := m.steps
	segments := m.segments
	exporter := m.exporter
	return func() tea.Msg {
		path, err := exporter.Export(run, steps, segments, time.Now())
		return exportMsg{path: path, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if !m.formMode {
			m.refreshRightPane(false)
			if cmd := m.renderSelected(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case fetchDoneMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.fetching = false
		m.err = nil
		m.applyRun(msg.run, msg.steps)
		m.refreshRightPane(true)
		if cmd := m.renderSelected(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case fetchErrMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.fetching = false
		m.err = msg.err
		m.status = "Fetch failed"
		return m, nil

	case detailMsg:
		if msg.nonce != m.renderNonce {
			return m, nil
		}
		m.rendering = false
		m.rendered = msg.rendered
		m.refreshRightPane(false)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = "Could not save state: " + msg.err.Error()
		}
		return m, nil

	case exportMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Exported " + msg.path
		}
		return m, nil

	case copyMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Copied step detail as markdown"
		}
		return m, nil

	case spinner.TickMsg:
		if m.fetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.formMode {
			return m.updateForm(msg)
		}
		return m.updateTrace(msg)
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.run != nil {
			m.formMode = false
			m.formErr = ""
		}
		return m, nil
	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % len(m.inputs)
		m.syncFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.formFocus = (m.formFocus - 1 + len(m.inputs)) % len(m.inputs)
		m.syncFormFocus()
		return m, nil
	case "enter":
		return m.submitForm()
	}
	var cmd tea.Cmd
	m.inputs[m.formFocus], cmd = m.inputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m *Model) syncFormFocus() {
	for i := range m.inputs {
		if i == m.formFocus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	thread := strings.TrimSpace(m.inputs[0].Value())
	run := strings.TrimSpace(m.inputs[1].Value())
	key := strings.TrimSpace(m.inputs[2].Value())

	if thread == "" || run == "" || key == "" {
		if next := firstEmptyInput(m.inputs); next != m.formFocus {
			m.formFocus = next
			m.syncFormFocus()
			return m, nil
		}
		m.formErr = "thread id, run id, and API key are all required"
		return m, nil
	}

	m.cfg.ThreadID = thread
	m.cfg.RunID = run
	m.cfg.APIKey = key
	m.client.SetAPIKey(key)
	m.formMode = false
	m.formErr = ""

	cmd := m.startFetch()
	return m, tea.Batch(m.saveStateCmd(), cmd)
}

func (m *Model) startFetch() tea.Cmd {
	m.fetchSeq++
	m.fetching = true
	m.err = nil
	m.status = "Fetching run..."
	m.log.Debug("fetch started", map[string]any{
		"thread_id": m.cfg.ThreadID,
		"run_id":    m.cfg.RunID,
		"seq":       m.fetchSeq,
	})
	return tea.Batch(m.spinner.Tick, m.fetchCmd(m.fetchSeq))
}

func (m Model) updateTrace(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.searchMode {
		switch msg.String() {
		case "esc":
			m.searchMode = false
			m.searchQuery = ""
			m.search.SetValue("")
			m.search.Blur()
			m.refreshRightPane(false)
			return m, nil
		case "enter":
			m.searchMode = false
			m.search.Blur()
			m.searchQuery = strings.TrimSpace(m.search.Value())
			m.refreshRightPane(false)
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.searchQuery = strings.TrimSpace(m.search.Value())
		m.refreshRightPane(false)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Esc):
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.search.SetValue("")
			m.refreshRightPane(false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.startFetch()
		return m, cmd

	case key.Matches(msg, m.keys.EditIDs):
		m.formMode = true
		m.formErr = ""
		m.inputs[0].SetValue(m.cfg.ThreadID)
		m.inputs[1].SetValue(m.cfg.RunID)
		m.inputs[2].SetValue(m.cfg.APIKey)
		m.formFocus = 0
		m.syncFormFocus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Export):
		if cmd := m.exportCmd(); cmd != nil {
			m.status = "Exporting report..."
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if cmd := m.copyCmd(); cmd != nil {
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focusOnList = !m.focusOnList
		m.refreshRightPane(false)
		return m, nil

	case key.Matches(msg, m.keys.FocusLeft):
		m.focusOnList = true
		m.refreshRightPane(false)
		return m, nil

	case key.Matches(msg, m.keys.FocusRight):
		m.focusOnList = false
		m.refreshRightPane(false)
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.focusOnList {
			m.focusOnList = false
			m.refreshRightPane(false)
			return m, nil
		}
		return m.clickSegment()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focusOnList {
		prev := timeline.GapIndex
		if idx, ok := m.sel.Index(); ok {
			prev = idx
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
		if it, ok := m.list.SelectedItem().(stepItem); ok && it.index != prev {
			if m.sel.Select(it.index) {
				m.cursor = m.segmentPos(it.index)
				m.refreshRightPane(false)
				if rc := m.renderSelected(); rc != nil {
					cmds = append(cmds, rc)
				}
			}
		}
		return m, tea.Batch(cmds...)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.refreshRightPane(false)
			m.ensureCursorVisible()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.segments)-1 {
			m.cursor++
			m.refreshRightPane(false)
			m.ensureCursorVisible()
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// Gaps are refused and the previous selection stays.
func (m Model) clickSegment() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.segments) {
		return m, nil
	}
	seg := m.segments[m.cursor]
	if seg.IsGap {
		m.status = "Gaps have no step to inspect"
		return m, nil
	}
	if !m.sel.Select(seg.SourceIndex) {
		return m, nil
	}
	m.list.Select(seg.SourceIndex)
	m.status = ""
	m.refreshRightPane(false)
	return m, m.renderSelected()
}

// applyRun rebuilds all state derived from the run: sorted steps, segments,
// list items, and the initial selection.
func (m *Model) applyRun(run *api.Run, steps []api.RunStep) {
	m.run = run
	m.steps = api.SortSteps(steps)

	start, end := run.WindowMillis(time.Now().UnixMilli())
	m.runTotal = end - start
	m.segments = timeline.Build(start, end, api.TimelineSteps(m.steps, end))
	m.fetchedAt = time.Now()
	m.cursor = 0
	m.sel.Clear()

	items := make([]list.Item, 0, len(m.steps))
	for _, seg := range m.segments {
		if seg.IsGap {
			continue
		}
		items = append(items, stepItem{
			index:    seg.SourceIndex,
			label:    seg.Label,
			status:   m.steps[seg.SourceIndex].Status,
			duration: seg.Duration,
		})
	}
	m.list.SetItems(items)

	if len(m.steps) > 0 {
		m.sel.Select(0)
		m.list.Select(0)
		m.cursor = m.segmentPos(0)
	}
	m.status = fmt.Sprintf("Fetched %d steps", len(m.steps))
	m.log.Debug("run applied", map[string]any{
		"run_id":   run.ID,
		"status":   run.Status,
		"steps":    len(m.steps),
		"segments": len(m.segments),
		"total_ms": m.runTotal,
	})
}

func (m Model) segmentPos(stepIdx int) int {
	for i, seg := range m.segments {
		if !seg.IsGap && seg.SourceIndex == stepIdx {
			return i
		}
	}
	return 0
}

// Bumping the nonce makes Update drop renders for stale selections.
func (m *Model) renderSelected() tea.Cmd {
	idx, ok := m.sel.Index()
	if !ok || idx >= len(m.steps) {
		// Invalidate any in-flight render so it cannot repopulate the pane.
		m.renderNonce++
		m.rendering = false
		m.rendered = ""
		m.refreshRightPane(false)
		return nil
	}
	md := detail.BuildMarkdown(detail.Classify(m.steps[idx].StepDetails))
	m.rendering = true
	m.renderNonce++

	wrap := m.viewport.Width - 2
	if wrap < 20 {
		wrap = 20
	}
	return renderDetailCmd(md, wrap, m.renderNonce)
}

func (m *Model) refreshRightPane(gotoTop bool) {
	var b strings.Builder

	header := m.runHeader()
	b.WriteString(header)

	if len(m.segments) == 0 {
		if m.run != nil {
			b.WriteString("\nNo steps recorded for this run.\n")
		}
		m.waterfallTop = 0
	} else {
		b.WriteByte('\n')
		barWidth := barWidthFor(m.viewport.Width)
		b.WriteString(strings.Repeat(" ", labelColWidth+3))
		b.WriteString(renderRuler(m.runTotal, barWidth))
		b.WriteByte('\n')
		m.waterfallTop = strings.Count(header, "\n") + 2
		b.WriteString(renderWaterfall(m.segments, m.runTotal, m.viewport.Width, m.sel, m.cursor, !m.focusOnList))
		b.WriteByte('\n')
	}

	content := m.rendered
	query := strings.TrimSpace(m.searchQuery)
	if query != "" && content != "" {
		content, m.matchCount = highlight.Apply(content, query, func(s string) string {
			return searchMatchStyle.Render(s)
		})
	} else {
		m.matchCount = 0
	}
	if content != "" {
		b.WriteByte('\n')
		b.WriteString(sectionTitleStyle.Render("Step detail"))
		b.WriteByte('\n')
		b.WriteString(content)
	}

	m.viewport.SetContent(b.String())
	if gotoTop {
		m.viewport.GotoTop()
	}
}

func (m *Model) ensureCursorVisible() {
	line := m.waterfallTop + m.cursor
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m Model) runHeader() string {
	if m.run == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Run "+m.run.ID) + "\n")
	meta := fmt.Sprintf("status=%s  model=%s  steps=%d  total=%s",
		m.run.Status, orDash(m.run.Model), len(m.steps), timeline.FormatMillis(m.runTotal))
	b.WriteString(headerMetaStyle.Render(meta) + "\n")
	if m.run.LastError != nil {
		b.WriteString(errorTextStyle.Render("last error: "+m.run.LastError.Code+": "+m.run.LastError.Message) + "\n")
	}
	return b.String()
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Starting runfall..."
	}
	if m.formMode {
		return m.formView()
	}

	status := m.statusLine()
	left, right := m.paneWidths()
	leftPane := panelStyle(m.focusOnList).Width(left).Height(m.height - 2).Render(m.list.View())
	rightPane := panelStyle(!m.focusOnList).Width(right).Height(m.height - 2).Render(m.viewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	helpView := m.help.View(m.keys)
	if m.searchMode {
		helpView = m.search.View() + "  " + helpView
	} else if m.searchQuery != "" {
		helpView = "search: " + m.searchQuery + "  " + helpView
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		status,
		body,
		helpView,
	)
}

func (m Model) formView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("runfall") + "\n\n")
	b.WriteString("Point at a run to draw its step timeline.\n\n")

	labels := []string{"Thread ID", "Run ID", "API key"}
	for i := range m.inputs {
		b.WriteString(formLabelStyle.Render(labels[i]) + "\n")
		b.WriteString(m.inputs[i].View() + "\n\n")
	}
	if m.formErr != "" {
		b.WriteString(errorTextStyle.Render(m.formErr) + "\n\n")
	}
	b.WriteString(formHintStyle.Render("enter fetch | tab next field | ctrl+c quit"))

	box := formBoxStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) statusLine() string {
	status := ""
	if m.fetching {
		status = m.spinner.View() + " fetching run..."
	} else if m.run != nil {
		status = fmt.Sprintf("run=%s  status=%s  steps=%d  total=%s  fetched=%s",
			shorten(m.run.ID, 28), m.run.Status, len(m.steps),
			timeline.FormatMillis(m.runTotal), m.fetchedAt.Local().Format("15:04:05"))
	}
	if m.searchMode || m.searchQuery != "" {
		status += "  [search]"
		if strings.TrimSpace(m.searchQuery) != "" {
			status += fmt.Sprintf("  [%d matches]", m.matchCount)
		}
	}
	if m.rendering {
		status += "  [rendering]"
	}
	if s := strings.TrimSpace(m.status); s != "" {
		status += "  " + shorten(s, 80)
	}
	if m.err != nil {
		status += "  err=" + shorten(errorMessage(m.err), 100)
	}
	return statusStyle.Render(status)
}

func errorMessage(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	var de *api.DecodeError
	if errors.As(err, &de) {
		return "unexpected response body: " + shorten(de.Body, 60)
	}
	return err.Error()
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	left, right := m.paneWidths()

	bodyHeight := m.height - 2
	if bodyHeight < 8 {
		bodyHeight = 8
	}

	m.list.SetSize(left-2, bodyHeight-2)
	m.viewport.Width = right - 2
	m.viewport.Height = bodyHeight - 2
	m.help.Width = m.width
}

func (m *Model) paneWidths() (int, int) {
	left := m.width / 3
	if left < 32 {
		left = 32
	}
	if left > m.width-32 {
		left = m.width - 32
	}
	if left < 20 {
		left = 20
	}
	right := m.width - left - 1
	if right < 20 {
		right = 20
	}
	return left, right
}

func shorten(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorTextStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	formLabelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	formHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	formBoxStyle      = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), true).
				BorderForeground(lipgloss.Color("39")).
				Padding(1, 3)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)
	searchMatchStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("16")).
				Background(lipgloss.Color("220"))
)

func panelStyle(active bool) lipgloss.Style {
	border := lipgloss.NormalBorder()
	if active {
		return lipgloss.NewStyle().
			Border(border, true).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
	}
	return lipgloss.NewStyle().
		Border(border, true).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
}

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	FocusLeft  key.Binding
	FocusRight key.Binding
	Tab        key.Binding
	Select     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Search     key.Binding
	Esc        key.Binding
	Refresh    key.Binding
	EditIDs    key.Binding
	Export     key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		FocusLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "focus steps")),
		FocusRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "focus timeline")),
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup/b", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn/f", "page down")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search detail")),
		Esc:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refetch run")),
		EditIDs:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "edit ids")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export markdown")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy detail")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tab, k.Select, k.Refresh, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.FocusLeft, k.FocusRight, k.Tab},
		{k.Select, k.PageUp, k.PageDown, k.Search, k.Esc},
		{k.Refresh, k.EditIDs, k.Export, k.Copy, k.Help, k.Quit},
	}
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mcdonaldj/fskit/internal/config"
	"github.com/mcdonaldj/fskit/internal/fileutil"
	"github.com/mcdonaldj/fskit/internal/freespace"
)

// View represents the current view state
type View int

const (
	BrowserView View = iota
	FileDiffView // Showing file content diff
	FreeView     // Showing volume usage
)

// EntryItem represents a directory entry in the browser list
type EntryItem struct {
	Name    string
	Path    string
	Dir     bool
	Size    int64 // -1 until computed for directories
	ModTime time.Time
}

// Model is the main TUI model
type Model struct {
	config   *config.Config
	view     View
	width    int
	height   int
	quitting bool

	// Browser view
	path       string
	entries    []EntryItem
	cursor     int
	showHidden bool

	// Diff selection (paths of selected files, max 2)
	selections []string

	// File diff view
	fileDiffResult *FileDiffResult
	fileDiffScroll int
	diffSwapped    bool // Whether sides are swapped (second file on left)

	// Free space view
	usage *freespace.Usage

	// Status message
	statusMsg string
	statusErr bool
}

// Key bindings
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Hidden key.Binding
	Size   key.Binding
	Free   key.Binding
	Select key.Binding
	Diff   key.Binding
	Swap   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Hidden: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "hidden"),
	),
	Size: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "size"),
	),
	Free: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "free space"),
	),
	Select: key.NewBinding(
		key.WithKeys(" ", "tab"),
		key.WithHelp("space", "select"),
	),
	Diff: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "diff"),
	),
	Swap: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "swap"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewModel creates a new TUI model rooted at the given directory
func NewModel(root string) (*Model, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	m := NewModelWithConfig(cfg, abs)
	if err := m.loadEntries(); err != nil {
		return nil, err
	}

	return m, nil
}

// NewModelWithConfig creates a model with an explicit config, without
// touching the config file on disk.
func NewModelWithConfig(cfg *config.Config, root string) *Model {
	return &Model{
		config:     cfg,
		view:       BrowserView,
		path:       root,
		showHidden: cfg.ShowHidden,
	}
}

// loadEntries reads the current directory into the browser list
func (m *Model) loadEntries() error {
	dirents, err := os.ReadDir(m.path)
	if err != nil {
		return err
	}

	m.entries = nil
	for _, d := range dirents {
		if !m.showHidden && strings.HasPrefix(d.Name(), ".") {
			continue
		}
		if m.excluded(d.Name()) {
			continue
		}

		item := EntryItem{
			Name: d.Name(),
			Path: filepath.Join(m.path, d.Name()),
			Dir:  d.IsDir(),
			Size: -1,
		}
		if info, err := d.Info(); err == nil {
			item.ModTime = info.ModTime()
			if !d.IsDir() {
				item.Size = info.Size()
			}
		}
		m.entries = append(m.entries, item)
	}

	// Directories first, then by name
	sort.Slice(m.entries, func(i, j int) bool {
		if m.entries[i].Dir != m.entries[j].Dir {
			return m.entries[i].Dir
		}
		return m.entries[i].Name < m.entries[j].Name
	})

	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	return nil
}

func (m *Model) excluded(name string) bool {
	for _, pat := range m.config.Exclude {
		if pat == name {
			return true
		}
		if ok, err := filepath.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

type statusMsg struct {
	msg string
	err bool
}

type sizeMsg struct {
	path string
	size int64
	err  error
}

type fileDiffMsg struct {
	result *FileDiffResult
	err    error
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		m.statusMsg = msg.msg
		m.statusErr = msg.err
		return m, nil

	case sizeMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Size failed: %v", msg.err)
			m.statusErr = true
			return m, nil
		}
		for i := range m.entries {
			if m.entries[i].Path == msg.path {
				m.entries[i].Size = msg.size
			}
		}
		return m, nil

	case fileDiffMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Diff failed: %v", msg.err)
			m.statusErr = true
		} else {
			m.fileDiffResult = msg.result
			m.fileDiffScroll = 0
			m.diffSwapped = false
			m.view = FileDiffView
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		// Clear status on any key
		m.statusMsg = ""
		m.statusErr = false

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, keys.Enter):
			if m.view == BrowserView && len(m.entries) > 0 {
				e := m.entries[m.cursor]
				if e.Dir {
					m.path = e.Path
					m.cursor = 0
					m.selections = nil
					if err := m.loadEntries(); err != nil {
						m.statusMsg = fmt.Sprintf("Error: %v", err)
						m.statusErr = true
					}
				}
			}

		case key.Matches(msg, keys.Back):
			switch m.view {
			case BrowserView:
				parent := filepath.Dir(m.path)
				if parent != m.path {
					m.path = parent
					m.cursor = 0
					m.selections = nil
					if err := m.loadEntries(); err != nil {
						m.statusMsg = fmt.Sprintf("Error: %v", err)
						m.statusErr = true
					}
				}
			case FileDiffView:
				m.view = BrowserView
				m.fileDiffResult = nil
				m.fileDiffScroll = 0
			case FreeView:
				m.view = BrowserView
				m.usage = nil
			}

		case key.Matches(msg, keys.Hidden):
			if m.view == BrowserView {
				m.showHidden = !m.showHidden
				if err := m.loadEntries(); err != nil {
					m.statusMsg = fmt.Sprintf("Error: %v", err)
					m.statusErr = true
				}
			}

		case key.Matches(msg, keys.Size):
			if m.view == BrowserView && len(m.entries) > 0 {
				e := m.entries[m.cursor]
				if e.Dir {
					return m, computeSize(e.Path)
				}
			}

		case key.Matches(msg, keys.Free):
			if m.view == BrowserView {
				usage, err := freespace.Stat(m.path)
				if err != nil {
					m.statusMsg = fmt.Sprintf("Free space failed: %v", err)
					m.statusErr = true
				} else {
					m.usage = &usage
					m.view = FreeView
				}
			}

		case key.Matches(msg, keys.Select):
			if m.view == BrowserView {
				m.toggleSelection()
			}

		case key.Matches(msg, keys.Diff):
			if m.view == BrowserView && len(m.selections) == 2 {
				return m, m.computeDiff()
			}

		case key.Matches(msg, keys.Swap):
			if m.view == FileDiffView && m.fileDiffResult != nil {
				m.diffSwapped = !m.diffSwapped
			}
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.view {
	case BrowserView:
		m.cursor += delta
		if m.cursor < 0 {
			m.cursor = 0
		}
		if m.cursor >= len(m.entries) {
			m.cursor = len(m.entries) - 1
		}
	case FileDiffView:
		if m.fileDiffResult != nil {
			m.fileDiffScroll += delta
			if m.fileDiffScroll < 0 {
				m.fileDiffScroll = 0
			}
			maxScroll := len(m.fileDiffResult.Lines) - (m.height - 10)
			if maxScroll < 0 {
				maxScroll = 0
			}
			if m.fileDiffScroll > maxScroll {
				m.fileDiffScroll = maxScroll
			}
		}
	}
}

func (m *Model) toggleSelection() {
	if len(m.entries) == 0 {
		return
	}
	e := m.entries[m.cursor]
	if e.Dir {
		return
	}

	for i, sel := range m.selections {
		if sel == e.Path {
			m.selections = append(m.selections[:i], m.selections[i+1:]...)
			return
		}
	}
	if len(m.selections) < 2 {
		m.selections = append(m.selections, e.Path)
	}
	if len(m.selections) == 2 {
		m.statusMsg = "Press d to compare selected files"
	}
}

func (m *Model) isSelected(path string) bool {
	for _, sel := range m.selections {
		if sel == path {
			return true
		}
	}
	return false
}

func computeSize(path string) tea.Cmd {
	return func() tea.Msg {
		size, err := fileutil.SizeOf(path)
		return sizeMsg{path: path, size: size, err: err}
	}
}

func (m *Model) computeDiff() tea.Cmd {
	path1, path2 := m.selections[0], m.selections[1]
	return func() tea.Msg {
		result, err := ComputeFileDiff(path1, path2)
		return fileDiffMsg{result: result, err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.view {
	case BrowserView:
		content = m.renderBrowserView()
	case FileDiffView:
		content = m.renderFileDiffView()
	case FreeView:
		content = m.renderFreeView()
	}

	return appStyle.Render(content)
}

func (m *Model) renderBrowserView() string {
	var b strings.Builder

	// Title
	title := titleStyle.Render(fmt.Sprintf(" 📁 %s ", m.path))
	b.WriteString(title)
	b.WriteString("\n\n")

	// Header
	header := fmt.Sprintf("      %-36s %10s %s", "NAME", "SIZE", "MODIFIED")
	b.WriteString(dimStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", 70)))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("  (empty)"))
		b.WriteString("\n")
	}

	// List items
	visibleHeight := m.height - 10
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	start := 0
	if m.cursor >= visibleHeight {
		start = m.cursor - visibleHeight + 1
	}

	for i := start; i < len(m.entries) && i < start+visibleHeight; i++ {
		e := m.entries[i]
		cursor := "  "
		style := normalStyle
		if e.Dir {
			style = dirStyle
		}
		if i == m.cursor {
			cursor = "▸ "
			style = selectedStyle
		}

		checkbox := "   "
		if m.isSelected(e.Path) {
			checkbox = "[✓]"
		}

		name := e.Name
		if e.Dir {
			name += "/"
		}

		size := "-"
		if e.Size >= 0 {
			size = fileutil.FormatSize(e.Size)
		}

		modified := "-"
		if !e.ModTime.IsZero() {
			modified = relativeTime(e.ModTime)
		}

		line := fmt.Sprintf("%s%s %-36s %10s %s",
			cursor, checkbox, truncate(name, 36), size, modified)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	// Pad to fixed height
	for i := len(m.entries); i < visibleHeight; i++ {
		b.WriteString("\n")
	}

	// Status
	b.WriteString("\n")
	if m.statusMsg != "" {
		if m.statusErr {
			b.WriteString(errorBadge.Render(m.statusMsg))
		} else {
			b.WriteString(successBadge.Render(m.statusMsg))
		}
	}
	b.WriteString("\n")

	// Help
	help := "[↑/↓] navigate  [enter] open  [esc] up  [s] size  [space] select  [d] diff  [f] free  [.] hidden  [q] quit"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m *Model) renderFileDiffView() string {
	var b strings.Builder

	if m.fileDiffResult == nil {
		return "Loading..."
	}

	p1, p2 := m.fileDiffResult.Path1, m.fileDiffResult.Path2
	if m.diffSwapped {
		p1, p2 = p2, p1
	}

	title := titleStyle.Render(" 📄 diff ")
	b.WriteString(title)
	b.WriteString("\n")

	header := fmt.Sprintf("  %-35s │ %-35s", truncate(p1, 35), truncate(p2, 35))
	b.WriteString(dimStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", 75)))
	b.WriteString("\n")

	if m.fileDiffResult.Error != "" {
		b.WriteString(errorBadge.Render(m.fileDiffResult.Error))
		b.WriteString("\n")
	} else if m.fileDiffResult.IsBinary {
		b.WriteString(dimStyle.Render("  Binary file - content diff not available"))
		b.WriteString("\n")
	} else if m.fileDiffResult.Equal() {
		b.WriteString(dimStyle.Render("  No differences"))
		b.WriteString("\n")
	} else {
		visibleHeight := m.height - 12
		if visibleHeight < 5 {
			visibleHeight = 5
		}

		endIdx := m.fileDiffScroll + visibleHeight
		if endIdx > len(m.fileDiffResult.Lines) {
			endIdx = len(m.fileDiffResult.Lines)
		}

		for i := m.fileDiffScroll; i < endIdx; i++ {
			line := m.fileDiffResult.Lines[i]

			ln1 := "   "
			ln2 := "   "
			if line.LineNum1 > 0 {
				ln1 = fmt.Sprintf("%3d", line.LineNum1)
			}
			if line.LineNum2 > 0 {
				ln2 = fmt.Sprintf("%3d", line.LineNum2)
			}
			if m.diffSwapped {
				ln1, ln2 = ln2, ln1
			}

			content := line.Content
			maxWidth := 60
			if len(content) > maxWidth {
				content = content[:maxWidth-3] + "..."
			}

			var lineStr string
			switch line.Type {
			case '+':
				lineStr = fmt.Sprintf("%s  + │ %s  + %s", ln1, ln2, content)
				b.WriteString(addedStyle.Render(lineStr))
			case '-':
				lineStr = fmt.Sprintf("%s  - │ %s  - %s", ln1, ln2, content)
				b.WriteString(deletedStyle.Render(lineStr))
			default:
				lineStr = fmt.Sprintf("%s    │ %s    %s", ln1, ln2, content)
				b.WriteString(dimStyle.Render(lineStr))
			}
			b.WriteString("\n")
		}

		if len(m.fileDiffResult.Lines) > visibleHeight {
			scrollInfo := fmt.Sprintf("  Lines %d-%d of %d",
				m.fileDiffScroll+1, endIdx, len(m.fileDiffResult.Lines))
			b.WriteString(dimStyle.Render(scrollInfo))
			b.WriteString("\n")
		}
	}

	// Help
	help := "[↑/↓] scroll  [x] swap sides  [esc] back  [q] quit"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m *Model) renderFreeView() string {
	var b strings.Builder

	if m.usage == nil {
		return "Loading..."
	}

	title := titleStyle.Render(fmt.Sprintf(" 💾 Volume containing %s ", m.path))
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Total:     %s\n", fileutil.FormatSize(int64(m.usage.Total))))
	b.WriteString(fmt.Sprintf("  Used:      %s\n", fileutil.FormatSize(int64(m.usage.Used()))))
	b.WriteString(fmt.Sprintf("  Free:      %s\n", fileutil.FormatSize(int64(m.usage.Free))))
	b.WriteString(fmt.Sprintf("  Available: %s\n", fileutil.FormatSize(int64(m.usage.Available))))

	// Usage bar
	if m.usage.Total > 0 {
		width := 50
		used := int(float64(width) * float64(m.usage.Used()) / float64(m.usage.Total))
		if used > width {
			used = width
		}
		bar := strings.Repeat("█", used) + strings.Repeat("░", width-used)
		b.WriteString("\n  ")
		b.WriteString(dimStyle.Render(bar))
		b.WriteString(fmt.Sprintf("  %.0f%%\n", 100*float64(m.usage.Used())/float64(m.usage.Total)))
	}

	// Help
	help := "[esc] back  [q] quit"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// Run starts the TUI rooted at the current working directory
func Run() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	m, err := NewModel(wd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// Helper functions
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func relativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

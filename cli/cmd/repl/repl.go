package repl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cedarparse/cedar/comb"
	"github.com/cedarparse/cedar/grammar"
	"github.com/cedarparse/cedar/log"
)

const (
	matchPrompt = "➜ "
	ctrlPrompt  = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  rule NAME  Select the rule used for matching
  rules      List the rules defined by the grammar
  help       Print this cruft
  clear      Clear screen
  quit       Exit REPL

Usage:
  Type a line of input to match it against the current rule
  Press Esc to toggle between match and command modes
  In command mode, press Tab / Shift-Tab to cycle rule name candidates
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeMatch inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// Repl interactively matches lines of input against a grammar rule.
type Repl struct {
	Grammar string `arg:"" type:"existingfile" help:"Grammar file to parse with."`

	Rule string `short:"r" help:"Initial rule to match with (default: grammar's start rule)."`
}

func (c *Repl) Run(ctx context.Context) error {
	file, err := grammar.Load(c.Grammar)
	if err != nil {
		return err
	}

	linked, err := file.Link(grammar.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	rule := linked.StartName
	if c.Rule != "" {
		if _, ok := linked.Scope[c.Rule]; !ok {
			return ErrRuleNotFound.With(slog.String("rule", c.Rule))
		}

		rule = c.Rule
	}

	log.TraceContext(ctx, "repl start",
		slog.String("grammar", c.Grammar),
		slog.String("rule", rule),
		slog.Int("rules", len(linked.Scope)),
	)

	m := newModel(ctx, linked, rule)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	linked       *grammar.Linked
	rule         string        // name of the rule used for matching
	names        []string      // sorted rule names for completion
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int
	quitting     bool
	mode         inputMode
	matchText    string
	matchCursor  int
	ctrlText     string
	ctrlCursor   int
}

func newModel(ctx context.Context, linked *grammar.Linked, rule string) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(matchPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc: func() context.Context { return ctx },
		input:   ti,
		linked:  linked,
		rule:    rule,
		names:   ruleNames(linked),
		suggIdx: -1,
		width:   defaultWidth,
		mode:    modeMatch,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(matchPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case strings.TrimSpace(m.input.Value()) == "":
		var hint string
		if m.mode == modeMatch {
			hint = "Match with rule " + m.rule + ", or press Esc for commands"
		} else {
			hint = "Type: rule NAME, rules, help, clear, quit (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
		b.WriteString("\n")

	default:
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		refreshMatches(&m)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m)

		return m, nil

	case tea.KeyTab:
		return m.cycleCandidate(1)

	case tea.KeyShiftTab:
		return m.cycleCandidate(-1)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m)

			return m, nil
		}

		return m.toggleMode()
	}

	var cmd tea.Cmd

	if m.tabActive && msg.String() == " " {
		m.tabActive = false
	}

	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m)

	return m, cmd
}

// cycleCandidate advances the tab-completion selection by step, wrapping
// around, and writes the selected candidate into the input.
func (m model) cycleCandidate(step int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		if step > 0 {
			m.suggIdx = 0
		} else {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// Completion only applies in command mode; match-mode input is arbitrary
// source text.
func refreshMatches(m *model) {
	if m.mode != modeCtrl {
		m.matches, m.wordStart, m.wordEnd = nil, 0, 0

		return
	}

	m.matches, m.wordStart, m.wordEnd = completions(
		m.input.Value(), m.input.Position(), m.names,
	)

	if !m.tabActive {
		m.suggIdx = -1
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.matchText = ""
	m.matchCursor = 0
	m.ctrlText = ""
	m.ctrlCursor = 0
	m.input.SetValue("")

	if m.mode == modeCtrl {
		log.TraceContext(m.ctxFunc(), "repl command", slog.String("input", input))

		return m.executeCommand(input)
	}

	log.TraceContext(m.ctxFunc(), "repl match",
		slog.String("rule", m.rule),
		slog.String("input", input),
	)

	echoCmd := tea.Println(promptStyle.Render(matchPrompt) + inputStyle.Render(input))

	value, rest, err := m.linked.Scope[m.rule].Parse(input)
	if err != nil {
		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	out := resultStyle.Render(formatResult(value))
	if !rest.Empty() {
		out += "\n" + hintStyle.Render("unconsumed: "+rest.Remaining())
	}

	return m, tea.Sequence(echoCmd, tea.Println(out))
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "r", "rule":
		if len(args) != 1 {
			return m, tea.Sequence(echoCmd, tea.Println(
				errorStyle.Render("Usage: rule NAME"),
			))
		}

		if _, ok := m.linked.Scope[args[0]]; !ok {
			return m, tea.Sequence(echoCmd, tea.Println(
				errorStyle.Render("Unknown rule: "+args[0]+" (try 'rules')"),
			))
		}

		m.rule = args[0]

		return m, tea.Sequence(echoCmd, tea.Println(
			resultStyle.Render("Matching with rule "+m.rule),
		))

	case "rules":
		return m, tea.Sequence(echoCmd, tea.Println(m.listRules()))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

func (m model) listRules() string {
	var b strings.Builder

	for _, name := range m.names {
		b.WriteString("  " + name)

		if name == m.rule {
			b.WriteString(" " + hintStyle.Render("(current)"))
		}

		b.WriteString("\n")
	}

	return b.String()
}

// toggleMode switches between match and command modes, preserving input
// state.
func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeMatch {
		m.matchText = m.input.Value()
		m.matchCursor = m.input.Position()
		m.mode = modeCtrl
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
		m.mode = modeMatch
		m.input.Prompt = promptStyle.Render(matchPrompt)
		m.input.SetValue(m.matchText)
		m.input.SetCursor(m.matchCursor)
	}

	refreshMatches(&m)

	return m, nil
}

func ruleNames(linked *grammar.Linked) []string {
	names := make([]string, 0, len(linked.Scope))
	for name := range linked.Scope {
		names = append(names, name)
	}

	// Stable completion and listing order.
	slices.Sort(names)

	return names
}

// formatResult renders a parse result for display. Strings print verbatim;
// structured values print as flow-style YAML.
func formatResult(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case comb.Pair[any, any]:
		return formatResult(comb.Flatten(v))
	default:
		data, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return strings.TrimSpace(string(data))
	}
}

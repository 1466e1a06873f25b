// Package console provides an interactive shell console widget. Commands
// run on a worker goroutine through an injected Executor; results come back
// over a channel that Update drains on the UI goroutine.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/logger"
	"github.com/zhubert/loom/internal/ui"
)

// Executor runs one command line and returns its output.
type Executor interface {
	Execute(ctx context.Context, command string) (string, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, command string) (string, error)

func (f ExecutorFunc) Execute(ctx context.Context, command string) (string, error) {
	return f(ctx, command)
}

// CompletionProvider offers completions for the current input.
type CompletionProvider interface {
	Complete(input string) []string
}

// Paster supplies clipboard text for Ctrl+V.
type Paster interface {
	Paste() (string, error)
}

// Result describes one finished command.
type Result struct {
	Command string
	Output  string
	Err     error
	Elapsed time.Duration
}

// CommandListener is notified after every command, built-ins included.
type CommandListener interface {
	CommandCompleted(r Result)
}

// CommandFunc adapts a function to CommandListener.
type CommandFunc func(r Result)

func (f CommandFunc) CommandCompleted(r Result) { f(r) }

// CompletionNotifier is told about commands that ran longer than the
// console's notify threshold.
type CompletionNotifier interface {
	Notify(r Result)
}

// NotifierFunc adapts a function to CompletionNotifier.
type NotifierFunc func(r Result)

func (f NotifierFunc) Notify(r Result) { f(r) }

// LineKind classifies a console line for rendering.
type LineKind int

const (
	LineOutput LineKind = iota
	LineError
	// LineCommand is an echoed command after the prompt.
	LineCommand
	// LinePrompt is the live input line. There is at most one and it is
	// always last.
	LinePrompt
)

// Line is one row of console output.
type Line struct {
	Kind   LineKind
	Prompt string
	Text   string
}

func (l Line) String() string {
	return l.Prompt + l.Text
}

// DefaultWelcome is the banner shown by a new console.
var DefaultWelcome = []string{
	"loom shell console",
	"Type 'help' for available commands, or '!cmd' to run a system command",
}

var helpText = `loom shell console
------------------

Commands:
  [command]      Run a loom command
  ![command]     Run a system shell command
  help           Show this help
  clear          Clear the console

Keyboard shortcuts:
  Tab            Complete the command
  Up/Down        Walk command history
  PgUp/PgDown    Scroll output
  Ctrl+A         Move to the beginning of the line
  Ctrl+E         Move to the end of the line
  Ctrl+L         Clear the screen
  Ctrl+V         Paste`

// Console is a scrolling command console with history, completion and
// asynchronous execution.
type Console struct {
	ui.Base

	executor  Executor
	completer CompletionProvider
	paster    Paster
	notifier  CompletionNotifier
	notifyAt  time.Duration
	timeout   time.Duration
	listeners []CommandListener
	log       *slog.Logger

	prompt  string
	welcome []string
	lines   []Line
	scroll  int

	input   []rune
	caret   int
	history []string

	completions    []string
	completionIdx  int
	showCompletion bool

	processing bool
	running    string
	results    chan Result

	spin      spinner.Spinner
	spinFrame int
	spinAcc   time.Duration
}

// New creates a console that runs commands through exec. A nil executor
// reports every non built-in command as unknown.
func New(id string, exec Executor) *Console {
	c := &Console{
		Base:     ui.NewBase(ui.KindConsole, id),
		executor: exec,
		log:      logger.WithComponent("console"),
		prompt:   ui.DefaultPrompt,
		welcome:  slices.Clone(DefaultWelcome),
		results:  make(chan Result, 1),
		spin:     spinner.MiniDot,
	}
	c.Base.SetSize(ui.Dim(80, 24))
	c.reset(true)
	return c
}

func (c *Console) reset(banner bool) {
	c.lines = c.lines[:0]
	if banner && len(c.welcome) > 0 {
		for _, w := range c.welcome {
			c.lines = append(c.lines, Line{Kind: LineOutput, Text: w})
		}
		c.lines = append(c.lines, Line{Kind: LineOutput})
	}
	c.lines = append(c.lines, Line{Kind: LinePrompt, Prompt: c.prompt})
	c.scroll = 0
	c.scrollToBottom()
}

func (c *Console) SetCompleter(p CompletionProvider) { c.completer = p }
func (c *Console) SetPaster(p Paster) { c.paster = p }

// SetTimeout bounds each command. Zero means no limit.
func (c *Console) SetTimeout(d time.Duration) { c.timeout = d }

// SetNotifier installs n for commands running at least threshold.
func (c *Console) SetNotifier(n CompletionNotifier, threshold time.Duration) {
	c.notifier = n
	c.notifyAt = threshold
}

// AddCommandListener registers l.
func (c *Console) AddCommandListener(l CommandListener) {
	c.listeners = append(c.listeners, l)
}

func (c *Console) Prompt() string { return c.prompt }

// SetPrompt changes the prompt used from now on, including the live line.
func (c *Console) SetPrompt(p string) {
	c.prompt = p
	if n := len(c.lines); n > 0 && c.lines[n-1].Kind == LinePrompt {
		c.lines[n-1].Prompt = p
	}
}

// SetWelcome replaces the banner and clears the console.
func (c *Console) SetWelcome(lines ...string) {
	c.welcome = slices.Clone(lines)
	c.reset(true)
}

// Lines returns the console contents, the live prompt line included.
func (c *Console) Lines() []Line {
	return slices.Clone(c.lines)
}

// Output returns the console contents as plain text rows.
func (c *Console) Output() []string {
	out := make([]string, len(c.lines))
	for i, l := range c.lines {
		out[i] = l.String()
	}
	return out
}

func (c *Console) Input() string { return string(c.input) }

// SetInput replaces the input line and moves the caret to its end.
func (c *Console) SetInput(s string) {
	c.input = []rune(s)
	c.caret = len(c.input)
}

func (c *Console) Caret() int { return c.caret }

// History returns the entered commands, oldest first.
func (c *Console) History() []string { return slices.Clone(c.history) }

// SetHistory seeds the history, e.g. from a previous session.
func (c *Console) SetHistory(h []string) { c.history = slices.Clone(h) }

func (c *Console) Processing() bool { return c.processing }

// Running returns the command in flight, or "".
func (c *Console) Running() string { return c.running }

func (c *Console) ScrollOffset() int { return c.scroll }

// Completions returns the open completion list and its highlight. The list
// is nil when closed.
func (c *Console) Completions() ([]string, int) {
	if !c.showCompletion {
		return nil, -1
	}
	return slices.Clone(c.completions), c.completionIdx
}

// SpinnerFrame returns the current processing indicator glyph.
func (c *Console) SpinnerFrame() string {
	if len(c.spin.Frames) == 0 {
		return ""
	}
	return c.spin.Frames[c.spinFrame%len(c.spin.Frames)]
}

// viewHeight is the number of output rows inside the border.
func (c *Console) viewHeight() int {
	return max(1, c.Size().Height-2)
}

func (c *Console) maxScroll() int {
	return max(0, len(c.lines)-c.viewHeight())
}

func (c *Console) scrollToBottom() {
	c.scroll = c.maxScroll()
}

func (c *Console) SetSize(d ui.Dimension) {
	c.Base.SetSize(d)
	c.scroll = min(c.scroll, c.maxScroll())
}

// AddOutput appends text, one line per newline, and scrolls to the bottom.
// The live prompt stays last.
func (c *Console) AddOutput(text string) {
	c.appendLines(LineOutput, text)
	c.scrollToBottom()
}

// ClearOutput empties the console, leaving only the prompt.
func (c *Console) ClearOutput() {
	c.reset(false)
}

// appendLines inserts lines before the live prompt when there is one.
func (c *Console) appendLines(kind LineKind, text string) {
	var prompt *Line
	if n := len(c.lines); n > 0 && c.lines[n-1].Kind == LinePrompt {
		p := c.lines[n-1]
		prompt = &p
		c.lines = c.lines[:n-1]
	}
	for _, s := range splitLines(text) {
		c.lines = append(c.lines, Line{Kind: kind, Text: s})
	}
	if prompt != nil {
		c.lines = append(c.lines, *prompt)
	}
}

func splitLines(text string) []string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// echo turns the live prompt line into the echoed command.
func (c *Console) echo(command string) {
	if n := len(c.lines); n > 0 && c.lines[n-1].Kind == LinePrompt {
		c.lines[n-1] = Line{Kind: LineCommand, Prompt: c.prompt, Text: command}
		return
	}
	c.lines = append(c.lines, Line{Kind: LineCommand, Prompt: c.prompt, Text: command})
}

func (c *Console) newPrompt() {
	c.lines = append(c.lines, Line{Kind: LineOutput}, Line{Kind: LinePrompt, Prompt: c.prompt})
	c.scrollToBottom()
}

func (c *Console) Focusable() bool { return true }

// HandleKey edits the input line and runs commands. Every key is swallowed
// while a command is running.
func (c *Console) HandleKey(ev keys.Event) bool {
	if !c.Receiving() {
		return false
	}
	if c.processing {
		return true
	}

	switch {
	case ev.Is(keys.CodeEnter):
		c.submit()
	case ev.Is(keys.CodeEscape):
		if c.showCompletion {
			c.closeCompletions()
		} else {
			c.SetInput("")
		}
	case ev.Is(keys.CodeTab) && ev.Mod&keys.ModShift == 0:
		c.tab()
	case ev.Is(keys.CodeUp):
		c.up()
	case ev.Is(keys.CodeDown):
		c.down()
	case ev.Is(keys.CodePgUp):
		c.scroll = max(0, c.scroll-c.viewHeight())
	case ev.Is(keys.CodePgDown):
		c.scroll = min(c.maxScroll(), c.scroll+c.viewHeight())
	case ev.Is(keys.CodeLeft):
		c.caret = max(0, c.caret-1)
	case ev.Is(keys.CodeRight):
		c.caret = min(len(c.input), c.caret+1)
	case ev.Is(keys.CodeHome), ev.IsCtrl('a'):
		c.caret = 0
	case ev.Is(keys.CodeEnd), ev.IsCtrl('e'):
		c.caret = len(c.input)
	case ev.Is(keys.CodeBackspace):
		if c.caret > 0 {
			c.input = slices.Delete(c.input, c.caret-1, c.caret)
			c.caret--
		}
	case ev.Is(keys.CodeDelete):
		if c.caret < len(c.input) {
			c.input = slices.Delete(c.input, c.caret, c.caret+1)
		}
	case ev.IsCtrl('l'):
		c.ClearOutput()
	case ev.IsCtrl('v'):
		c.paste()
	default:
		r, ok := ev.Printable()
		if !ok {
			return false
		}
		c.insert([]rune{r})
		c.closeCompletions()
	}
	return true
}

func (c *Console) insert(rs []rune) {
	c.input = slices.Insert(c.input, c.caret, rs...)
	c.caret += len(rs)
}

func (c *Console) paste() {
	if c.paster == nil {
		return
	}
	text, err := c.paster.Paste()
	if err != nil {
		c.log.Warn("paste failed", "error", err)
		return
	}
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(text)
	c.insert([]rune(text))
}

func (c *Console) submit() {
	command := string(c.input)
	c.closeCompletions()
	if strings.TrimSpace(command) == "" {
		c.SetInput("")
		c.echo("")
		c.newPrompt()
		return
	}

	c.echo(command)
	c.history = append(c.history, command)
	c.SetInput("")

	switch strings.TrimSpace(command) {
	case "clear":
		c.reset(false)
		c.notify(Result{Command: command})
		return
	case "help":
		c.appendLines(LineOutput, helpText)
		c.newPrompt()
		c.notify(Result{Command: command, Output: helpText})
		return
	}

	c.start(command)
}

// start runs command on a worker goroutine. The result is delivered on
// c.results and picked up by Update or Wait.
func (c *Console) start(command string) {
	c.processing = true
	c.running = command
	c.spinFrame, c.spinAcc = 0, 0
	c.log.Debug("running command", "command", command)

	exec, timeout, results := c.executor, c.timeout, c.results
	go func() {
		res := Result{Command: command}
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				res.Err = errors.E(errors.Op("console.Execute"), errors.KindCommand, fmt.Sprintf("command %s panicked: %v", command, r))
			}
			res.Elapsed = time.Since(start)
			results <- res
		}()

		if exec == nil {
			res.Err = errors.UnknownCommand(strings.Fields(command)[0])
			return
		}
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		res.Output, res.Err = exec.Execute(ctx, command)
		if res.Err != nil && ctx.Err() == context.DeadlineExceeded {
			res.Err = errors.CommandTimeout(command)
		}
	}()
}

// finish applies a worker result on the UI goroutine.
func (c *Console) finish(res Result) {
	defer func() {
		c.processing = false
		c.running = ""
	}()

	c.appendLines(LineOutput, res.Output)
	if res.Err != nil {
		c.log.Debug("command failed", "command", res.Command, "error", res.Err)
		for _, s := range splitLines(errors.Message(res.Err)) {
			c.lines = append(c.lines, Line{Kind: LineError, Text: "error: " + s})
		}
	}
	c.newPrompt()
	c.notify(res)
	if c.notifier != nil && c.notifyAt > 0 && res.Elapsed >= c.notifyAt {
		c.notifier.Notify(res)
	}
}

func (c *Console) notify(res Result) {
	for _, l := range c.listeners {
		l.CommandCompleted(res)
	}
}

// Update advances the spinner and applies a finished command, if any.
func (c *Console) Update(delta time.Duration) {
	if !c.processing {
		return
	}
	c.spinAcc += delta
	if fps := c.spin.FPS; fps > 0 {
		for c.spinAcc >= fps {
			c.spinAcc -= fps
			c.spinFrame++
		}
	}
	select {
	case res := <-c.results:
		c.finish(res)
	default:
	}
}

// Wait blocks until the running command finishes and applies its result.
// It returns false if ctx ends first or nothing is running.
func (c *Console) Wait(ctx context.Context) bool {
	if !c.processing {
		return false
	}
	select {
	case res := <-c.results:
		c.finish(res)
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Console) tab() {
	if c.showCompletion && c.completionIdx >= 0 && c.completionIdx < len(c.completions) {
		c.SetInput(c.completions[c.completionIdx])
		c.closeCompletions()
		return
	}
	if c.completer == nil {
		return
	}
	c.completions = c.completer.Complete(string(c.input))
	if len(c.completions) > 0 {
		c.showCompletion = true
		c.completionIdx = 0
	}
}

func (c *Console) closeCompletions() {
	c.showCompletion = false
	c.completionIdx = -1
	c.completions = nil
}

func (c *Console) up() {
	if c.showCompletion {
		c.completionIdx = max(0, c.completionIdx-1)
		return
	}
	if len(c.history) == 0 {
		return
	}
	switch i := slices.Index(c.history, string(c.input)); {
	case i > 0:
		c.SetInput(c.history[i-1])
	case i < 0:
		c.SetInput(c.history[len(c.history)-1])
	}
}

func (c *Console) down() {
	if c.showCompletion {
		c.completionIdx = min(len(c.completions)-1, c.completionIdx+1)
		return
	}
	i := slices.Index(c.history, string(c.input))
	switch {
	case i < 0:
	case i < len(c.history)-1:
		c.SetInput(c.history[i+1])
	default:
		c.SetInput("")
	}
}

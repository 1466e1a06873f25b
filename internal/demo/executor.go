package demo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/loom/internal/app"
	"github.com/zhubert/loom/internal/clipboard"
	"github.com/zhubert/loom/internal/config"
	"github.com/zhubert/loom/internal/executor"
	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/logger"
	"github.com/zhubert/loom/internal/workitem"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every step (default: false)
	CaptureEveryStep bool

	// TypeDelay is the delay between characters when typing (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is the delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// FrameInterval is the animation step used while waiting (default: 100ms)
	FrameInterval time.Duration

	// CommandTimeout bounds a console command started by a scenario
	// (default: 10s)
	CommandTimeout time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false, // Don't capture every step by default for cleaner demos
		TypeDelay:        50 * time.Millisecond,
		KeyDelay:         100 * time.Millisecond,
		FrameInterval:    100 * time.Millisecond,
		CommandTimeout:   10 * time.Second,
	}
}

// demoClock is the time shown by the console's date command.
var demoClock = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config ExecutorConfig
	model  *app.Model
	frames []Frame
	log    *slog.Logger

	currentAnnotation string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	return &Executor{
		config: cfg,
		frames: []Frame{},
		log:    logger.WithComponent("demo"),
	}
}

// Model returns the model driven by the last Run.
func (e *Executor) Model() *app.Model { return e.model }

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	e.setup(scenario)
	defer e.model.Close()

	// Capture initial frame
	e.captureFrame(0, 500*time.Millisecond)

	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d failed: %w", i, err)
		}
	}

	e.log.Info("scenario finished", "scenario", scenario.Name, "frames", len(e.frames))
	return e.frames, nil
}

// setup builds a model over the sample items with a deterministic shell.
func (e *Executor) setup(scenario *Scenario) {
	cfg := config.Default()
	if scenario.Theme != "" {
		cfg.SetTheme(scenario.Theme)
	}

	items := workitem.Sample()
	shell := executor.New(
		executor.WithDir("/home/demo/loom"),
		executor.WithEnv(map[string]string{
			"HOME":  "/home/demo",
			"USER":  "demo",
			"SHELL": "/bin/sh",
		}),
		executor.WithClock(func() time.Time { return demoClock }),
		executor.WithItems(items),
	)
	paster := &clipboard.Memory{}
	paster.Copy("ls in_progress")

	e.frames = []Frame{}
	e.model = app.New(cfg, "demo",
		app.WithItems(items),
		app.WithExecutor(shell),
		app.WithPaster(paster),
		app.WithScreen(scenario.Screen),
	)
	e.update(tea.WindowSizeMsg{Width: scenario.Width, Height: scenario.Height})
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		e.captureAnimatedFrames(index, step.Duration)

	case StepKey:
		if err := e.sendKey(step.Key); err != nil {
			return err
		}
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			if err := e.sendKey(string(ch)); err != nil {
				return err
			}
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.TypeDelay)
			}
		}

	case StepPaste:
		e.update(tea.PasteMsg{Content: step.Text})
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to next frame

	case StepCapture:
		e.captureFrame(index, 0)

	default:
		return fmt.Errorf("unknown step type %d", step.Type)
	}
	return nil
}

// sendKey sends a key press to the model. A command started on the console
// is waited for so the following frames show its output.
func (e *Executor) sendKey(key string) error {
	e.update(keys.Press(key))

	con := e.model.Console()
	if e.model.Screen() != app.ScreenConsole || !con.Processing() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.config.CommandTimeout)
	defer cancel()
	if !con.Wait(ctx) {
		return fmt.Errorf("command %q did not finish within %v", con.Running(), e.config.CommandTimeout)
	}
	return nil
}

func (e *Executor) update(msg tea.Msg) {
	result, _ := e.model.Update(msg)
	e.model = result.(*app.Model)
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	frame := Frame{
		Content:    e.model.RenderToString(),
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	}
	e.frames = append(e.frames, frame)

	// Clear annotation after use
	e.currentAnnotation = ""
}

// captureAnimatedFrames advances the model through a wait, one frame per
// FrameInterval, so spinners and flashes move in the recording.
func (e *Executor) captureAnimatedFrames(stepIndex int, total time.Duration) {
	interval := e.config.FrameInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	n := max(1, int(total/interval))
	perFrame := total / time.Duration(n)

	for range n {
		e.model.Advance(perFrame)
		e.captureFrame(stepIndex, perFrame)
	}
}

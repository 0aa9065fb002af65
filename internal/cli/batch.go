package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dinktools/chess/pkg/errors"
)

// =============================================================================
// BatchModel - Live batch conversion progress
// =============================================================================

// batchResult holds the outcome of converting one file.
type batchResult struct {
	input        string
	output       string
	shadowPixels int
	cacheHit     bool
	err          error
}

// batchResultMsg is sent by the worker when one file finishes.
type batchResultMsg batchResult

// batchDoneMsg is sent by the worker when all files finished.
type batchDoneMsg struct{}

// batchModel is the bubbletea model for batch conversion progress.
type batchModel struct {
	total     int
	results   []batchResult
	height    int
	done      bool
	cancelled bool
}

func newBatchModel(total int) batchModel {
	return batchModel{total: total, height: 15}
}

func (m batchModel) Init() tea.Cmd {
	return nil
}

func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 4
		if m.height < 5 {
			m.height = 5
		}
	case batchResultMsg:
		m.results = append(m.results, batchResult(msg))
	case batchDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m batchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Converting"))
	b.WriteString("\n\n")

	start := 0
	if len(m.results) > m.height {
		start = len(m.results) - m.height
	}
	for _, res := range m.results[start:] {
		if res.err != nil {
			b.WriteString(styleIconError.Render(iconError))
			b.WriteString(" " + res.input + " ")
			b.WriteString(StyleDim.Render(errors.UserMessage(res.err)))
		} else {
			b.WriteString(styleIconSuccess.Render(iconSuccess))
			b.WriteString(" " + res.input + " ")
			b.WriteString(StyleDim.Render(iconArrow) + " " + StyleValue.Render(res.output))
			if res.cacheHit {
				b.WriteString(" " + styleCached.Render(iconCached))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", len(m.results), m.total)))
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// Runner
// =============================================================================

// runBatch drives the batch progress display while worker converts files.
// The worker reports each finished file through send. The collected results
// are returned once the worker finishes or the user quits.
func runBatch(ctx context.Context, total int, worker func(send func(batchResultMsg))) []batchResult {
	p := tea.NewProgram(newBatchModel(total), tea.WithContext(ctx), tea.WithOutput(os.Stderr))

	go func() {
		worker(func(msg batchResultMsg) { p.Send(msg) })
		p.Send(batchDoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		if m, ok := final.(batchModel); ok {
			return m.results
		}
		return nil
	}
	return final.(batchModel).results
}

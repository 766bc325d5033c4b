// Command easel-demo runs a small deployment-style pipeline in the live
// region: a spinner header, one progress bar per task, and completed tasks
// promoted to the scrollback as static lines.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/odvcencio/easel/pkg/layout"
	"github.com/odvcencio/easel/pkg/runtime"
	"github.com/odvcencio/easel/pkg/terminal"
)

// spinnerFrames are the braille animation frames.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	barStyle    = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"})
	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"})
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})
)

type task struct {
	name     string
	progress int
	done     bool
}

func main() {
	out := terminal.New()
	if !terminal.IsTerminal() {
		out.Warn("stdout is not a terminal, output will not animate")
	}

	session, err := runtime.Start(runtime.Config{
		WatchResize: true,
	})
	if err != nil {
		out.Error("start render session: %v", err)
		os.Exit(1)
	}

	tasks := []*task{
		{name: "build image"},
		{name: "push image"},
		{name: "roll out deployment"},
		{name: "verify health checks"},
	}

	frame := 0
	for !allDone(tasks) {
		advance(tasks, session)
		session.Update(view(tasks, frame))
		frame++
		time.Sleep(80 * time.Millisecond)
	}

	session.Update(&layout.Node{Text: doneStyle.Render("✓") + " all tasks complete"})
	if err := session.Stop(); err != nil {
		out.Error("stop render session: %v", err)
		os.Exit(1)
	}
}

// advance moves the first unfinished task forward and promotes finished
// tasks to the static region.
func advance(tasks []*task, session *runtime.Session) {
	for _, t := range tasks {
		if t.done {
			continue
		}
		t.progress += 4
		if t.progress >= 100 {
			t.progress = 100
			t.done = true
			session.AppendStatic(doneStyle.Render("✓") + " " + t.name)
		}
		return
	}
}

// view builds the solved node tree for one frame. Positions are fixed here
// because the demo layout is static; a real caller gets them from the
// flexbox solver.
func view(tasks []*task, frame int) *layout.Node {
	spinner := spinnerFrames[frame%len(spinnerFrames)]
	root := &layout.Node{
		Children: []*layout.Node{
			{Text: headerStyle.Render(spinner + " deploying")},
		},
	}
	row := 1
	for _, t := range tasks {
		if t.done {
			continue
		}
		root.Children = append(root.Children,
			&layout.Node{X: 2, Y: row, Text: renderBar(t.name, t.progress)})
		row++
	}
	return root
}

func renderBar(name string, progress int) string {
	const width = 24
	filled := progress * width / 100
	bar := barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%-22s %s %3d%%", name, bar, progress)
}

func allDone(tasks []*task) bool {
	for _, t := range tasks {
		if !t.done {
			return false
		}
	}
	return true
}

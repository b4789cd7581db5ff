/*
 * Hypo - kernel state snapshot and display
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package dump renders a point-in-time snapshot of a kernel's state —
// registers, ready/waiting queues, and a memory window — the same
// information the original DumpMemory operator command printed, laid
// out with lipgloss and displayed through a one-shot bubbletea program
// that exits as soon as the operator presses any key.
package dump

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rcornwell/hypo/kernel"
	"github.com/rcornwell/hypo/machine"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	boxStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
)

// Snapshot is an immutable copy of everything a dump needs to render,
// taken before the TUI starts so the view never races a running
// Machine.
type Snapshot struct {
	GPR            [8]machine.Word
	PC, SP, PSR    machine.Word
	Clock, Quantum machine.Word
	ReadyPIDs      []machine.Word
	WaitingPIDs    []machine.Word
	WindowStart    machine.Word
	Window         []machine.Word
}

// TakeSnapshot reads k's current registers, queue membership, and the
// windowStart..windowStart+len(window) memory range into a Snapshot.
func TakeSnapshot(k *kernel.Kernel, windowStart, windowLen machine.Word) Snapshot {
	s := Snapshot{
		GPR:         k.Machine.Reg.GPR,
		PC:          k.Machine.Reg.PC,
		SP:          k.Machine.Reg.SP,
		PSR:         k.Machine.Reg.PSR,
		Clock:       k.Machine.Clock,
		Quantum:     k.Machine.Quantum,
		WindowStart: windowStart,
	}

	for cur := k.Ready.Head; cur != kernel.EndOfList; {
		view := kernel.PCBView{Mem: k.Mem, Ptr: cur}
		s.ReadyPIDs = append(s.ReadyPIDs, view.PID())
		cur = view.Next()
	}
	for cur := k.Waiting.Head; cur != kernel.EndOfList; {
		view := kernel.PCBView{Mem: k.Mem, Ptr: cur}
		s.WaitingPIDs = append(s.WaitingPIDs, view.PID())
		cur = view.Next()
	}

	for i := machine.Word(0); i < windowLen; i++ {
		v, _ := k.Mem.Get(windowStart + i)
		s.Window = append(s.Window, v)
	}
	return s
}

func (s Snapshot) registerBlock() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("registers") + "\n")
	for i, v := range s.GPR {
		fmt.Fprintf(&b, "gpr[%d] = %d\n", i, v)
	}
	fmt.Fprintf(&b, "pc = %d  sp = %d  psr = %d\n", s.PC, s.SP, s.PSR)
	fmt.Fprintf(&b, "clock = %d  quantum = %d\n", s.Clock, s.Quantum)
	return boxStyle.Render(b.String())
}

func (s Snapshot) queueBlock() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("queues") + "\n")
	fmt.Fprintf(&b, "ready:   %v\n", s.ReadyPIDs)
	fmt.Fprintf(&b, "waiting: %v\n", s.WaitingPIDs)
	return boxStyle.Render(b.String())
}

func (s Snapshot) memoryBlock() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d..%d)\n", headerStyle.Render("memory"), s.WindowStart, s.WindowStart+machine.Word(len(s.Window))-1)
	for i, v := range s.Window {
		fmt.Fprintf(&b, "%5d: %d\n", int(s.WindowStart)+i, v)
	}
	return boxStyle.Render(b.String())
}

// Render lays out the snapshot as a single static frame.
func (s Snapshot) Render() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, s.registerBlock(), s.queueBlock()),
		s.memoryBlock(),
		"press any key to close",
	)
}

type model struct {
	snap Snapshot
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string { return m.snap.Render() }

// Show starts a one-shot bubbletea program that paints the snapshot
// and exits on the first keypress.
func Show(snap Snapshot) error {
	_, err := tea.NewProgram(model{snap: snap}).Run()
	return err
}

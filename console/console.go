/*
 * Hypo - operator console
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

// Package console implements the operator console: a menu of interrupt
// ids read from stdin/stdout, prompting for the extra arguments each
// interrupt needs and driving the Kernel's
// run/shutdown/input-complete/output-complete handlers.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/hypo/internal/dump"
	"github.com/rcornwell/hypo/internal/result"
	"github.com/rcornwell/hypo/kernel"
	"github.com/rcornwell/hypo/machine"
)

// Interrupt ids the operator can inject.
const (
	InterruptNoOp           = 0
	InterruptRunProgram     = 1
	InterruptShutdown       = 2
	InterruptInputComplete  = 3
	InterruptOutputComplete = 4
)

const menu = `
0 no-op
1 run-program
2 shutdown
3 input-complete
4 output-complete
dump  show a register/queue/memory snapshot
> `

// dumpWindowLen is the number of words shown, starting at the OS heap
// base, in the "dump" command's memory block.
const dumpWindowLen = 16

// Console drives one Kernel from an interactive liner prompt.
type Console struct {
	Kernel *kernel.Kernel
	line   *liner.State
	log    *slog.Logger
	stdin  *bufio.Reader
}

// New returns a Console wired to k, with command-line editing and
// history via liner.
func New(k *kernel.Kernel, log *slog.Logger) *Console {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &Console{Kernel: k, line: line, log: log, stdin: bufio.NewReader(os.Stdin)}
}

// Close releases the underlying terminal state.
func (c *Console) Close() {
	c.line.Close()
}

// Run drives interrupts into the Kernel until shutdown is requested or
// the console's input stream ends. Between interrupts it advances the
// Kernel by one RunCycle whenever the ready queue is non-empty, so a
// dispatched process runs to its next suspension point before the
// operator is prompted again.
func (c *Console) Run() error {
	for !c.Kernel.Shutdown {
		c.Kernel.RunCycle()

		text, err := c.line.Prompt(menu)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		c.line.AppendHistory(text)
		text = strings.TrimSpace(text)

		if text == "dump" {
			c.dump()
			continue
		}

		id, err := strconv.Atoi(text)
		if err != nil {
			fmt.Printf("error: not an interrupt id: %q\n", text)
			continue
		}
		if err := c.handle(id); err != nil {
			fmt.Println("error: " + err.Error())
		}
	}
	return nil
}

// dump shows a snapshot of the kernel's registers, ready/waiting queues,
// and a window of OS-heap memory, matching the original DumpMemory
// operator command.
func (c *Console) dump() {
	snap := dump.TakeSnapshot(c.Kernel, machine.OSHeapLow, dumpWindowLen)
	if err := dump.Show(snap); err != nil {
		fmt.Println("error: " + err.Error())
	}
}

func (c *Console) handle(id int) error {
	switch id {
	case InterruptNoOp:
		return nil

	case InterruptRunProgram:
		return c.runProgram()

	case InterruptShutdown:
		c.Kernel.DoShutdown()
		if c.log != nil {
			c.log.Info("shutdown requested")
		}
		return nil

	case InterruptInputComplete:
		return c.inputComplete()

	case InterruptOutputComplete:
		return c.outputComplete()

	default:
		return fmt.Errorf("unknown interrupt id %d", id)
	}
}

func (c *Console) runProgram() error {
	name, err := c.line.Prompt("module filename> ")
	if err != nil {
		return err
	}
	c.line.AppendHistory(name)

	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	pid, errK := c.Kernel.CreateProcess(f, kernel.DefaultPriority)
	if errK != result.OK {
		return fmt.Errorf("create process: %s", errK)
	}
	if c.log != nil {
		c.log.Info("program loaded", "file", name, "pid", pid)
	}
	return nil
}

func (c *Console) inputComplete() error {
	pid, err := c.promptInt("pid> ")
	if err != nil {
		return err
	}
	fmt.Print("character> ")
	b, err := ReadRawChar(os.Stdin, c.stdin)
	if err != nil {
		return fmt.Errorf("read character: %w", err)
	}
	fmt.Println()
	if errK := c.Kernel.CompleteInput(pid, machine.Word(b)); errK != result.OK {
		return fmt.Errorf("input complete: %s", errK)
	}
	return nil
}

func (c *Console) outputComplete() error {
	pid, err := c.promptInt("pid> ")
	if err != nil {
		return err
	}
	ch, errK := c.Kernel.CompleteOutput(pid)
	if errK != result.OK {
		return fmt.Errorf("output complete: %s", errK)
	}
	fmt.Printf("%c", rune(ch))
	return nil
}

func (c *Console) promptInt(prompt string) (machine.Word, error) {
	text, err := c.line.Prompt(prompt)
	if err != nil {
		return 0, err
	}
	c.line.AppendHistory(text)
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, err
	}
	return machine.Word(v), nil
}

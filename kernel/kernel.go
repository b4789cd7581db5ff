/*
 * Hypo - kernel process lifecycle
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

package kernel

import (
	"io"
	"log/slog"

	"github.com/rcornwell/hypo/internal/result"
	"github.com/rcornwell/hypo/loader"
	"github.com/rcornwell/hypo/machine"
)

// Kernel owns everything the original carried as module-level state:
// the one Machine, the OS/user free lists, the ready and waiting
// queues, and the PID counter. A CPU run borrows the Machine's
// register file for exactly one dispatch; SaveContext/Dispatch are the
// only way it changes owner.
type Kernel struct {
	Mem     *machine.Memory
	Machine *machine.Machine

	OSAlloc   *Allocator
	UserAlloc *Allocator

	Ready    *ReadyQueue
	Waiting  *WaitingQueue
	NextPID  machine.Word
	Shutdown bool

	// Quantum is the clock budget passed to every RunCycle's dispatch.
	// Defaults to machine.InitialQuantum; the command line may override
	// it.
	Quantum machine.Word

	Log *slog.Logger
}

// NewKernel wires a fresh Machine and both free lists over the
// standard region layout and installs the Kernel's syscall dispatch
// onto the Machine.
func NewKernel(log *slog.Logger) *Kernel {
	mem := machine.NewMemory()
	k := &Kernel{
		Mem:       mem,
		Machine:   machine.NewMachine(mem),
		OSAlloc:   NewAllocator(mem, machine.OSHeapLow, machine.OSHeapHigh),
		UserAlloc: NewAllocator(mem, machine.UserHeapLow, machine.UserHeapHigh),
		Ready:     NewReadyQueue(mem),
		Waiting:   NewWaitingQueue(mem),
		NextPID:   1,
		Quantum:   machine.InitialQuantum,
		Log:       log,
	}
	k.Machine.Syscall = k.dispatchSyscall
	return k
}

// CreateProcess allocates a PCB, loads the module, allocates a stack,
// and inserts the new process into the ready queue. Every resource
// acquired before a failing step is released before CreateProcess
// returns, so a half-built process never leaks into either free list.
func (k *Kernel) CreateProcess(r io.Reader, priority machine.Word) (machine.Word, result.Kind) {
	if priority < MinPriority || priority > MaxPriority {
		return 0, result.InvalidSize
	}

	pcb, errK := k.OSAlloc.Allocate(PCBSize)
	if errK != result.OK {
		return 0, errK
	}

	InitializePCB(k.Mem, pcb, &k.NextPID)
	view := PCBView{Mem: k.Mem, Ptr: pcb}
	view.SetPriority(priority)

	entry, errK := loader.Load(k.Mem, r)
	if errK != result.OK {
		k.OSAlloc.Free(pcb)
		return 0, errK
	}
	view.SetSavedPC(entry)

	stack, errK := k.UserAlloc.Allocate(DefaultStackSize)
	if errK != result.OK {
		k.OSAlloc.Free(pcb)
		return 0, errK
	}

	view.SetStackBase(stack)
	view.SetStackSize(DefaultStackSize)
	view.SetSavedSP(stack - 1)
	view.SetSavedPSR(machine.PSRUser)

	k.Ready.Insert(pcb)

	if k.Log != nil {
		k.Log.Info("process created", "pid", view.PID(), "priority", priority, "entry", entry)
	}
	return view.PID(), result.OK
}

// TerminateProcess frees a PCB's stack and its own block. It does not
// unlink pcb from whatever queue holds it — callers terminate a PCB
// only after popping it themselves.
func (k *Kernel) TerminateProcess(pcb machine.Word) {
	view := PCBView{Mem: k.Mem, Ptr: pcb}
	k.UserAlloc.Free(view.StackBase())
	k.OSAlloc.Free(pcb)
	if k.Log != nil {
		k.Log.Info("process terminated", "pid", view.PID())
	}
}

// SaveContext copies the Machine's register file into pcb's slots.
func (k *Kernel) SaveContext(pcb machine.Word) {
	view := PCBView{Mem: k.Mem, Ptr: pcb}
	for i := 0; i < 8; i++ {
		view.SetSavedGPR(i, k.Machine.Reg.GPR[i])
	}
	view.SetSavedSP(k.Machine.Reg.SP)
	view.SetSavedPC(k.Machine.Reg.PC)
	view.SetSavedPSR(k.Machine.Reg.PSR)
}

// Dispatch loads pcb's saved registers into the Machine and sets user
// mode, and primes the Machine's stack bounds from the PCB so
// PUSH/POP's overflow checks see the right process's stack.
func (k *Kernel) Dispatch(pcb machine.Word) {
	view := PCBView{Mem: k.Mem, Ptr: pcb}
	for i := 0; i < 8; i++ {
		k.Machine.Reg.GPR[i] = view.SavedGPR(i)
	}
	k.Machine.Reg.SP = view.SavedSP()
	k.Machine.Reg.PC = view.SavedPC()
	k.Machine.Reg.PSR = machine.PSRUser
	k.Machine.StackBase = view.StackBase()
	k.Machine.StackSize = view.StackSize()
}

// RunCycle pops the highest-priority ready PCB, dispatches it, runs
// one quantum, and routes the result: HALTED/errors terminate the
// process, QUANTUM_EXPIRED saves context and requeues it as ready,
// and GETC/PUTC saves context and parks it waiting on the matching
// reason. It returns false when the ready queue was empty, meaning
// the caller should wait for an interrupt before trying again.
func (k *Kernel) RunCycle() bool {
	pcb := k.Ready.PopFront()
	if pcb == EndOfList {
		return false
	}

	k.Dispatch(pcb)
	res := k.Machine.Run(k.Quantum)

	switch res.Variant {
	case result.Halted:
		if k.Log != nil {
			k.Log.Info("process halted", "pid", PCBView{Mem: k.Mem, Ptr: pcb}.PID())
		}
		k.TerminateProcess(pcb)

	case result.Errored:
		if k.Log != nil {
			k.Log.Warn("process error", "pid", PCBView{Mem: k.Mem, Ptr: pcb}.PID(), "err", res.Err)
		}
		k.TerminateProcess(pcb)

	case result.QuantumExpired:
		k.SaveContext(pcb)
		k.Ready.Insert(pcb)

	case result.YieldedGetc:
		k.SaveContext(pcb)
		k.Waiting.Push(WaitGetc, pcb)

	case result.YieldedPutc:
		k.SaveContext(pcb)
		k.Waiting.Push(WaitPutc, pcb)
	}
	return true
}

// CompleteInput implements the input-complete interrupt: locate the
// PCB waiting on pid, write ch into its saved gpr[1], and reinsert it
// into ready.
func (k *Kernel) CompleteInput(pid, ch machine.Word) result.Kind {
	pcb := k.Waiting.SearchAndRemove(pid)
	if pcb == EndOfList {
		return result.InvalidPID
	}
	view := PCBView{Mem: k.Mem, Ptr: pcb}
	view.SetSavedGPR(1, ch)
	k.Ready.Insert(pcb)
	return result.OK
}

// CompleteOutput implements the output-complete interrupt: locate the
// PCB waiting on pid, return the character stored in its saved gpr[1]
// for the caller to emit, and reinsert it into ready.
func (k *Kernel) CompleteOutput(pid machine.Word) (machine.Word, result.Kind) {
	pcb := k.Waiting.SearchAndRemove(pid)
	if pcb == EndOfList {
		return 0, result.InvalidPID
	}
	view := PCBView{Mem: k.Mem, Ptr: pcb}
	ch := view.SavedGPR(1)
	k.Ready.Insert(pcb)
	return ch, result.OK
}

// DoShutdown terminates every PCB on both queues and sets the shutdown
// flag.
func (k *Kernel) DoShutdown() {
	for {
		pcb := k.Ready.PopFront()
		if pcb == EndOfList {
			break
		}
		k.TerminateProcess(pcb)
	}
	for {
		pcb := k.Waiting.PopAny()
		if pcb == EndOfList {
			break
		}
		k.TerminateProcess(pcb)
	}
	k.Shutdown = true
}

/*
 * Hypo - process control block layout
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

// Package kernel implements the cooperative, priority-scheduling
// mini-OS layered on top of the machine package: the free-list
// allocators, PCB layout and lifecycle, ready/waiting queues, the
// scheduler's context save/restore/dispatch primitives, and the
// interrupt/syscall surface that moves execution between user
// processes and kernel handlers.
package kernel

import "github.com/rcornwell/hypo/machine"

// PCB field offsets within its 25-word block.
const (
	PCBNext       machine.Word = 0
	PCBPID        machine.Word = 1
	PCBState      machine.Word = 2
	PCBWaitReason machine.Word = 3
	PCBPriority   machine.Word = 4
	PCBStackBase  machine.Word = 5
	PCBStackSize  machine.Word = 6

	PCBSavedGPR0 machine.Word = 11 // gpr[0..7] occupy 11..18
	PCBSavedSP   machine.Word = 19
	PCBSavedPC   machine.Word = 20
	PCBSavedPSR  machine.Word = 21

	PCBSize machine.Word = 25
)

// Process states.
const (
	StateReady   machine.Word = 1
	StateWaiting machine.Word = 2
)

// EndOfList is the queue/free-list sentinel value.
const EndOfList machine.Word = -1

// Wait reasons stored in a parked PCB's wait-reason field. They reuse
// the syscall service ids that caused the park (8 = io-getc, 9 =
// io-putc) rather than inventing a parallel tag space.
const (
	WaitGetc machine.Word = 8
	WaitPutc machine.Word = 9
)

// MinPriority and MaxPriority bound a PCB's priority field (open
// question (c)): CreateProcess rejects anything outside this range
// rather than silently clamping it, so a caller's mistake surfaces
// immediately instead of silently reordering the ready queue.
const (
	MinPriority machine.Word = 0
	MaxPriority machine.Word = 255
)

// DefaultPriority is used when a caller does not override it.
const DefaultPriority machine.Word = 128

// DefaultStackSize is the word count CreateProcess allocates for a new
// process's stack.
const DefaultStackSize machine.Word = 9

// pcbGet/pcbSet read and write one PCB field. Panics are impossible:
// callers only ever address PCB blocks carved out of the OS heap by
// the allocator, so the underlying memory.Get/Put range check never
// fails in practice; a failure here means a caller handed in a bad
// PCB pointer, which is a kernel programming error, not a runtime one.
func pcbGet(mem *machine.Memory, ptr, offset machine.Word) machine.Word {
	v, ok := mem.Get(ptr + offset)
	if !ok {
		panic("kernel: PCB field read out of range")
	}
	return v
}

func pcbSet(mem *machine.Memory, ptr, offset, value machine.Word) {
	if ok := mem.Put(ptr+offset, value); !ok {
		panic("kernel: PCB field write out of range")
	}
}

// InitializePCB zeroes the 25-word block at ptr, assigns the next PID
// (post-increment), sets state to Ready, and sets the default priority.
// Callers may override the priority afterwards.
func InitializePCB(mem *machine.Memory, ptr machine.Word, nextPID *machine.Word) {
	for off := machine.Word(0); off < PCBSize; off++ {
		pcbSet(mem, ptr, off, 0)
	}
	pcbSet(mem, ptr, PCBNext, EndOfList)
	pcbSet(mem, ptr, PCBPID, *nextPID)
	*nextPID++
	pcbSet(mem, ptr, PCBState, StateReady)
	pcbSet(mem, ptr, PCBPriority, DefaultPriority)
}

// PCBView is a convenience accessor bound to one block address; it
// does not copy or cache anything, every call reads/writes memory
// directly, so it is always consistent with concurrent-looking
// accesses from queue code operating on the same block.
type PCBView struct {
	Mem *machine.Memory
	Ptr machine.Word
}

func (v PCBView) Next() machine.Word            { return pcbGet(v.Mem, v.Ptr, PCBNext) }
func (v PCBView) SetNext(n machine.Word)        { pcbSet(v.Mem, v.Ptr, PCBNext, n) }
func (v PCBView) PID() machine.Word             { return pcbGet(v.Mem, v.Ptr, PCBPID) }
func (v PCBView) State() machine.Word           { return pcbGet(v.Mem, v.Ptr, PCBState) }
func (v PCBView) SetState(s machine.Word)       { pcbSet(v.Mem, v.Ptr, PCBState, s) }
func (v PCBView) WaitReason() machine.Word      { return pcbGet(v.Mem, v.Ptr, PCBWaitReason) }
func (v PCBView) SetWaitReason(r machine.Word)  { pcbSet(v.Mem, v.Ptr, PCBWaitReason, r) }
func (v PCBView) Priority() machine.Word        { return pcbGet(v.Mem, v.Ptr, PCBPriority) }
func (v PCBView) SetPriority(p machine.Word)    { pcbSet(v.Mem, v.Ptr, PCBPriority, p) }
func (v PCBView) StackBase() machine.Word       { return pcbGet(v.Mem, v.Ptr, PCBStackBase) }
func (v PCBView) SetStackBase(a machine.Word)   { pcbSet(v.Mem, v.Ptr, PCBStackBase, a) }
func (v PCBView) StackSize() machine.Word       { return pcbGet(v.Mem, v.Ptr, PCBStackSize) }
func (v PCBView) SetStackSize(s machine.Word)   { pcbSet(v.Mem, v.Ptr, PCBStackSize, s) }

func (v PCBView) SavedGPR(i int) machine.Word {
	return pcbGet(v.Mem, v.Ptr, PCBSavedGPR0+machine.Word(i))
}

func (v PCBView) SetSavedGPR(i int, val machine.Word) {
	pcbSet(v.Mem, v.Ptr, PCBSavedGPR0+machine.Word(i), val)
}

func (v PCBView) SavedSP() machine.Word           { return pcbGet(v.Mem, v.Ptr, PCBSavedSP) }
func (v PCBView) SetSavedSP(sp machine.Word)      { pcbSet(v.Mem, v.Ptr, PCBSavedSP, sp) }
func (v PCBView) SavedPC() machine.Word           { return pcbGet(v.Mem, v.Ptr, PCBSavedPC) }
func (v PCBView) SetSavedPC(pc machine.Word)      { pcbSet(v.Mem, v.Ptr, PCBSavedPC, pc) }
func (v PCBView) SavedPSR() machine.Word          { return pcbGet(v.Mem, v.Ptr, PCBSavedPSR) }
func (v PCBView) SetSavedPSR(psr machine.Word)    { pcbSet(v.Mem, v.Ptr, PCBSavedPSR, psr) }

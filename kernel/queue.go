/*
 * Hypo - ready and waiting queues
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

import "github.com/rcornwell/hypo/machine"

// ReadyQueue is the single priority-ordered list of runnable PCBs:
// strictly non-increasing priority head to tail, with insertion order
// preserved among PCBs sharing a priority (a new arrival goes behind
// every existing entry at the same priority).
type ReadyQueue struct {
	Mem  *machine.Memory
	Head machine.Word
}

// NewReadyQueue returns an empty ready queue.
func NewReadyQueue(mem *machine.Memory) *ReadyQueue {
	return &ReadyQueue{Mem: mem, Head: EndOfList}
}

// Insert places pcb in priority order: it walks past every node whose
// priority is >= pcb's, so a tie lands after the existing run — FIFO
// among equal priorities.
func (q *ReadyQueue) Insert(pcb machine.Word) {
	view := PCBView{Mem: q.Mem, Ptr: pcb}
	prio := view.Priority()

	if q.Head == EndOfList {
		view.SetNext(EndOfList)
		q.Head = pcb
		return
	}

	prev := machine.Word(EndOfList)
	cur := q.Head
	for cur != EndOfList {
		curView := PCBView{Mem: q.Mem, Ptr: cur}
		if curView.Priority() < prio {
			break
		}
		prev = cur
		cur = curView.Next()
	}

	view.SetNext(cur)
	if prev == EndOfList {
		q.Head = pcb
	} else {
		PCBView{Mem: q.Mem, Ptr: prev}.SetNext(pcb)
	}
}

// PopFront removes and returns the highest-priority PCB, or EndOfList
// if the queue is empty.
func (q *ReadyQueue) PopFront() machine.Word {
	if q.Head == EndOfList {
		return EndOfList
	}
	pcb := q.Head
	q.Head = PCBView{Mem: q.Mem, Ptr: pcb}.Next()
	return pcb
}

// Empty reports whether the queue has no entries.
func (q *ReadyQueue) Empty() bool { return q.Head == EndOfList }

// Contains reports whether pcb is linked into the queue, used by tests
// asserting no PCB appears in both the ready and waiting queues at
// once.
func (q *ReadyQueue) Contains(pcb machine.Word) bool {
	cur := q.Head
	for cur != EndOfList {
		if cur == pcb {
			return true
		}
		cur = PCBView{Mem: q.Mem, Ptr: cur}.Next()
	}
	return false
}

// WaitingQueue is the single unordered list of blocked PCBs: each PCB
// carries its own wait-reason field, so one list serves every reason,
// LIFO — the most recently parked process is at the head.
type WaitingQueue struct {
	Mem  *machine.Memory
	Head machine.Word
}

// NewWaitingQueue returns an empty waiting queue.
func NewWaitingQueue(mem *machine.Memory) *WaitingQueue {
	return &WaitingQueue{Mem: mem, Head: EndOfList}
}

// Push sets pcb's state/wait-reason and links it onto the head of the
// list.
func (q *WaitingQueue) Push(reason, pcb machine.Word) {
	view := PCBView{Mem: q.Mem, Ptr: pcb}
	view.SetState(StateWaiting)
	view.SetWaitReason(reason)
	view.SetNext(q.Head)
	q.Head = pcb
}

// SearchAndRemove linear-scans for the PCB whose PID matches, unlinks
// and returns it, or EndOfList if no PCB with that PID is waiting.
func (q *WaitingQueue) SearchAndRemove(pid machine.Word) machine.Word {
	prev := machine.Word(EndOfList)
	cur := q.Head
	for cur != EndOfList {
		curView := PCBView{Mem: q.Mem, Ptr: cur}
		if curView.PID() == pid {
			if prev == EndOfList {
				q.Head = curView.Next()
			} else {
				PCBView{Mem: q.Mem, Ptr: prev}.SetNext(curView.Next())
			}
			return cur
		}
		prev = cur
		cur = curView.Next()
	}
	return EndOfList
}

// Contains reports whether pcb is linked into the waiting list.
func (q *WaitingQueue) Contains(pcb machine.Word) bool {
	cur := q.Head
	for cur != EndOfList {
		if cur == pcb {
			return true
		}
		cur = PCBView{Mem: q.Mem, Ptr: cur}.Next()
	}
	return false
}

// Empty reports whether the waiting list has no entries.
func (q *WaitingQueue) Empty() bool { return q.Head == EndOfList }

// PopAny removes and returns the head of the waiting list regardless
// of its wait reason, or EndOfList if empty. Used only to drain the
// list on shutdown.
func (q *WaitingQueue) PopAny() machine.Word {
	if q.Head == EndOfList {
		return EndOfList
	}
	pcb := q.Head
	q.Head = PCBView{Mem: q.Mem, Ptr: pcb}.Next()
	return pcb
}

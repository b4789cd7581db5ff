/*
 * Hypo - queue tests
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
	"testing"

	"github.com/rcornwell/hypo/machine"
)

func setupPCB(mem *machine.Memory, addr, priority machine.Word) machine.Word {
	nextPID := machine.Word(1)
	InitializePCB(mem, addr, &nextPID)
	PCBView{Mem: mem, Ptr: addr}.SetPriority(priority)
	return addr
}

// TestReadyQueuePriorityOrder inserts priorities 10, 200, 200 in that
// order and checks they dispatch as second, third, first — equal
// priorities keep insertion order.
func TestReadyQueuePriorityOrder(t *testing.T) {
	mem := machine.NewMemory()
	q := NewReadyQueue(mem)

	a := setupPCB(mem, 4500, 10)
	b := setupPCB(mem, 4530, 200)
	c := setupPCB(mem, 4560, 200)

	q.Insert(a)
	q.Insert(b)
	q.Insert(c)

	if got := q.PopFront(); got != b {
		t.Fatalf("first pop = %d, want b(%d)", got, b)
	}
	if got := q.PopFront(); got != c {
		t.Fatalf("second pop = %d, want c(%d)", got, c)
	}
	if got := q.PopFront(); got != a {
		t.Fatalf("third pop = %d, want a(%d)", got, a)
	}
	if !q.Empty() {
		t.Errorf("queue not empty after draining")
	}
}

// TestReadyQueueNonIncreasingPriority checks that priority never
// increases while walking the ready list front to back, for any
// insertion order.
func TestReadyQueueNonIncreasingPriority(t *testing.T) {
	mem := machine.NewMemory()
	q := NewReadyQueue(mem)

	priorities := []machine.Word{5, 90, 3, 90, 1, 255}
	addr := machine.Word(4500)
	for _, p := range priorities {
		q.Insert(setupPCB(mem, addr, p))
		addr += 30
	}

	prev := machine.Word(256)
	cur := q.Head
	for cur != EndOfList {
		view := PCBView{Mem: mem, Ptr: cur}
		if view.Priority() > prev {
			t.Fatalf("priority increased: %d after %d", view.Priority(), prev)
		}
		prev = view.Priority()
		cur = view.Next()
	}
}

func TestWaitingQueueLIFOAndSearchAndRemove(t *testing.T) {
	mem := machine.NewMemory()
	q := NewWaitingQueue(mem)
	nextPID := machine.Word(1)

	a := machine.Word(4500)
	InitializePCB(mem, a, &nextPID)
	b := machine.Word(4530)
	InitializePCB(mem, b, &nextPID)

	q.Push(WaitGetc, a)
	q.Push(WaitGetc, b)

	if q.Head != b {
		t.Fatalf("head = %d, want b(%d): last pushed comes first", q.Head, b)
	}
	if got := q.SearchAndRemove(2); got != b {
		t.Fatalf("SearchAndRemove(2) = %d, want b(%d)", got, b)
	}
	if got := q.SearchAndRemove(1); got != a {
		t.Fatalf("SearchAndRemove(1) = %d, want a(%d)", got, a)
	}
	if got := q.SearchAndRemove(99); got != EndOfList {
		t.Errorf("SearchAndRemove(99) = %d, want EndOfList", got)
	}
}

// TestNoPCBInBothQueues checks that moving a PCB from ready to waiting
// never leaves it linked into both lists at once.
func TestNoPCBInBothQueues(t *testing.T) {
	mem := machine.NewMemory()
	ready := NewReadyQueue(mem)
	waiting := NewWaitingQueue(mem)

	pcb := setupPCB(mem, 4500, 50)
	ready.Insert(pcb)

	got := ready.PopFront()
	waiting.Push(WaitGetc, got)

	if ready.Contains(pcb) {
		t.Errorf("pcb still in ready queue after moving to waiting")
	}
	if !waiting.Contains(pcb) {
		t.Errorf("pcb not in waiting queue")
	}
}

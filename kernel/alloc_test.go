/*
 * Hypo - allocator tests
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

	"github.com/rcornwell/hypo/internal/result"
	"github.com/rcornwell/hypo/machine"
)

func TestAllocatorSplitAndExactFit(t *testing.T) {
	mem := machine.NewMemory()
	a := NewAllocator(mem, 100, 199) // 100 words

	p1, errK := a.Allocate(10)
	if errK != result.OK {
		t.Fatalf("Allocate(10) err = %v", errK)
	}
	if p1 != 100+HeaderSize {
		t.Errorf("p1 = %d, want %d", p1, 100+HeaderSize)
	}

	p2, errK := a.Allocate(20)
	if errK != result.OK {
		t.Fatalf("Allocate(20) err = %v", errK)
	}
	if p2 <= p1 {
		t.Errorf("p2 = %d, want > p1 = %d", p2, p1)
	}

	// The 66-word remainder at 134 exactly fits a 64-word request plus
	// its header, which empties the free list.
	p3, errK := a.Allocate(64)
	if errK != result.OK {
		t.Fatalf("Allocate(64) err = %v", errK)
	}
	if p3 != 134+HeaderSize || a.Head != EndOfList {
		t.Errorf("p3 = %d, head = %d, want %d, %d", p3, a.Head, 134+HeaderSize, EndOfList)
	}
}

func TestAllocatorInsufficientMem(t *testing.T) {
	mem := machine.NewMemory()
	a := NewAllocator(mem, 100, 109) // 10 words total

	_, errK := a.Allocate(100)
	if errK != result.InsufficientMem {
		t.Fatalf("Allocate(100) err = %v, want INSUFFICIENT_MEM", errK)
	}
}

func TestAllocatorRejectsTooSmall(t *testing.T) {
	mem := machine.NewMemory()
	a := NewAllocator(mem, 100, 199)

	if _, errK := a.Allocate(1); errK != result.ReqMemTooSmall {
		t.Errorf("Allocate(1) err = %v, want REQ_MEM_TOO_SMALL", errK)
	}
	if _, errK := a.Allocate(0); errK != result.ReqMemTooSmall {
		t.Errorf("Allocate(0) err = %v, want REQ_MEM_TOO_SMALL", errK)
	}
	if _, errK := a.Allocate(-1); errK != result.ReqMemTooSmall {
		t.Errorf("Allocate(-1) err = %v, want REQ_MEM_TOO_SMALL", errK)
	}
}

func TestAllocatorFreeThenReallocate(t *testing.T) {
	mem := machine.NewMemory()
	a := NewAllocator(mem, 100, 199)

	p1, _ := a.Allocate(10)
	a.Free(p1)

	p2, errK := a.Allocate(10)
	if errK != result.OK {
		t.Fatalf("Allocate after Free err = %v", errK)
	}
	if p2 != p1 {
		t.Errorf("p2 = %d, want reuse of freed block at %d", p2, p1)
	}
}

// TestAllocatorBalancedSequenceIdempotence checks that after any
// balanced sequence of allocations is fully freed again, a single
// allocation for the whole region must still succeed — coalescing
// must reassemble the region rather than leave it fragmented.
func TestAllocatorBalancedSequenceIdempotence(t *testing.T) {
	mem := machine.NewMemory()
	const low, high = 100, 199
	a := NewAllocator(mem, low, high)

	sizes := []machine.Word{5, 3, 10, 2, 20}
	ptrs := make([]machine.Word, 0, len(sizes))
	for _, s := range sizes {
		p, errK := a.Allocate(s)
		if errK != result.OK {
			t.Fatalf("Allocate(%d) err = %v", s, errK)
		}
		ptrs = append(ptrs, p)
	}
	// Free in reverse order.
	for i := len(ptrs) - 1; i >= 0; i-- {
		if errK := a.Free(ptrs[i]); errK != result.OK {
			t.Fatalf("Free(%d) err = %v", ptrs[i], errK)
		}
	}

	full := (high - low + 1) - HeaderSize
	if _, errK := a.Allocate(full); errK != result.OK {
		t.Errorf("Allocate(%d) after balanced free sequence err = %v, want OK", full, errK)
	}
}

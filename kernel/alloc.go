/*
 * Hypo - OS/user heap allocator
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
	"github.com/rcornwell/hypo/internal/result"
	"github.com/rcornwell/hypo/machine"
)

// HeaderSize is the two-word free-block header: next pointer, then
// block size (including the header itself).
const HeaderSize machine.Word = 2

// Allocator is a first-fit, exact-or-split free-list allocator over one
// contiguous memory region. The free list is kept sorted by address so
// that Free can coalesce a returned block with a physically adjacent
// neighbour in constant additional work; without that, repeated
// split/free cycles would fragment the region into slivers no single
// request could ever span again, which would violate the allocator's
// reallocation guarantee after a fully balanced sequence of frees.
type Allocator struct {
	Mem  *machine.Memory
	Low  machine.Word
	High machine.Word
	Head machine.Word // first free block (lowest address), or EndOfList
}

// NewAllocator formats [low, high] as one free block and returns an
// allocator over it.
func NewAllocator(mem *machine.Memory, low, high machine.Word) *Allocator {
	a := &Allocator{Mem: mem, Low: low, High: high}
	a.Reset()
	return a
}

// Reset reformats the whole region as a single free block, discarding
// any outstanding allocations.
func (a *Allocator) Reset() {
	size := a.High - a.Low + 1
	a.Mem.Put(a.Low, EndOfList)
	a.Mem.Put(a.Low+1, size)
	a.Head = a.Low
}

func (a *Allocator) blockNext(block machine.Word) machine.Word {
	v, _ := a.Mem.Get(block)
	return v
}

func (a *Allocator) blockSize(block machine.Word) machine.Word {
	v, _ := a.Mem.Get(block + 1)
	return v
}

func (a *Allocator) setBlockNext(block, next machine.Word) { a.Mem.Put(block, next) }
func (a *Allocator) setBlockSize(block, size machine.Word) { a.Mem.Put(block+1, size) }

// Allocate reserves a block of at least `words` usable words and
// returns the address of the first usable word. It walks the free list
// first-fit: the first block large enough either satisfies the request
// exactly or is split, with the remainder requeued in the block's
// former list position.
func (a *Allocator) Allocate(words machine.Word) (machine.Word, result.Kind) {
	if words < 2 {
		return 0, result.ReqMemTooSmall
	}
	need := words + HeaderSize

	prev := machine.Word(EndOfList)
	cur := a.Head
	for cur != EndOfList {
		size := a.blockSize(cur)
		next := a.blockNext(cur)

		if size >= need {
			remaining := size - need
			if remaining >= HeaderSize+1 {
				// Split: the tail [cur+need, cur+size) becomes a new
				// free block in cur's old list position.
				tail := cur + need
				a.setBlockNext(tail, next)
				a.setBlockSize(tail, remaining)
				if prev == EndOfList {
					a.Head = tail
				} else {
					a.setBlockNext(prev, tail)
				}
				a.setBlockSize(cur, need)
			} else {
				// Exact fit (or a remainder of at most HeaderSize words,
				// too small to hold a header plus any usable word):
				// hand over the whole block, unlinking it.
				if prev == EndOfList {
					a.Head = next
				} else {
					a.setBlockNext(prev, next)
				}
			}
			return cur + HeaderSize, result.OK
		}

		prev = cur
		cur = next
	}

	return 0, result.InsufficientMem
}

// Free reinserts the block owning ptr into the free list in address
// order and merges it with an immediately preceding or following free
// block when they are physically contiguous. ptr must be an address
// Allocate returned; the block size is read back from the header that
// precedes it.
func (a *Allocator) Free(ptr machine.Word) result.Kind {
	block := ptr - HeaderSize
	if block < a.Low || block > a.High {
		return result.InvalidMemAddr
	}
	size := a.blockSize(block)

	prev := machine.Word(EndOfList)
	cur := a.Head
	for cur != EndOfList && cur < block {
		prev = cur
		cur = a.blockNext(cur)
	}

	// Merge with the following block if it starts exactly where this
	// one ends.
	if cur != EndOfList && block+size == cur {
		size += a.blockSize(cur)
		cur = a.blockNext(cur)
	}

	// Merge with the preceding block if this one starts exactly where
	// that one ends.
	if prev != EndOfList && prev+a.blockSize(prev) == block {
		a.setBlockSize(prev, a.blockSize(prev)+size)
		a.setBlockNext(prev, cur)
		return result.OK
	}

	a.setBlockSize(block, size)
	a.setBlockNext(block, cur)
	if prev == EndOfList {
		a.Head = block
	} else {
		a.setBlockNext(prev, block)
	}
	return result.OK
}

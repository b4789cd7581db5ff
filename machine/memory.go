/*
 * Hypo - 10,000-word memory and region predicates
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

package machine

// Size is the width of the machine's single linear memory.
const Size = 10000

// Region bounds, inclusive: program, user heap/stack, OS heap.
const (
	ProgramLow  Word = 0
	ProgramHigh Word = 2499

	UserHeapLow  Word = 2500
	UserHeapHigh Word = 4499

	OSHeapLow  Word = 4500
	OSHeapHigh Word = 9999
)

// InProgram, InUserHeap and InOSHeap are the three region predicates.
// Each access routes through the predicate appropriate to its caller.
func InProgram(addr Word) bool  { return addr >= ProgramLow && addr <= ProgramHigh }
func InUserHeap(addr Word) bool { return addr >= UserHeapLow && addr <= UserHeapHigh }
func InOSHeap(addr Word) bool   { return addr >= OSHeapLow && addr <= OSHeapHigh }

// Memory is the machine's single 10,000-word linear array. Unlike the
// teacher's package-level globals, it is an explicit value threaded
// through the Machine and Kernel, per the "global machine state" design
// note: there is exactly one Memory per simulated run, but nothing
// prevents more than one existing (e.g. in tests).
type Memory struct {
	cells [Size]Word
}

// NewMemory returns a zeroed memory array.
func NewMemory() *Memory {
	return &Memory{}
}

// Get reads a word without any region check; ok is false if addr falls
// outside 0..9999.
func (m *Memory) Get(addr Word) (value Word, ok bool) {
	if addr < 0 || addr >= Size {
		return 0, false
	}
	return m.cells[addr], true
}

// Put writes a word without any region check; ok is false if addr
// falls outside 0..9999.
func (m *Memory) Put(addr, value Word) (ok bool) {
	if addr < 0 || addr >= Size {
		return false
	}
	m.cells[addr] = value
	return true
}

// Reset zeroes every cell, so a fresh run never sees a previous run's
// leftover state.
func (m *Memory) Reset() {
	for i := range m.cells {
		m.cells[i] = 0
	}
}

/*
 * Hypo - Word type, the machine's integer unit
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

// Package machine implements the decimal-word fetch/decode/execute
// cycle: memory, registers, instruction decode, operand addressing,
// and the opcode executor. It has no notion of processes or queues —
// that is the kernel package's job; the kernel borrows a Machine for
// the duration of one dispatch.
package machine

// Word is the machine's native cell: a signed integer wide enough for
// six decimal digits of magnitude (±999999), used uniformly for memory
// cells, registers, and instruction encodings.
type Word int64

// Processor status register modes.
const (
	PSRMachine Word = 1 // OS / kernel mode
	PSRUser    Word = 2 // user mode
)

// NotInMemory is the operand-address sentinel meaning the resolved
// value lives in a register or came straight from the instruction
// stream, not from a memory cell.
const NotInMemory Word = -2

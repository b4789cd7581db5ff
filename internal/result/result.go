/*
 * Hypo - tagged run/syscall result codes
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

// Package result defines the tagged outcomes of a CPU run and the
// error kinds produced across the machine and kernel packages.
package result

import "fmt"

// Kind is a negative error code, as specified for the Hypo machine.
// OK is reserved and never returned as an error.
type Kind int

const (
	OK Kind = 1

	FSCantOpen            Kind = -1
	InvalidAddrInProgram  Kind = -2
	InvalidPC             Kind = -4
	NoEOF                 Kind = -8
	InvalidMode           Kind = -0x10
	InvalidGPR            Kind = -0x20
	InvalidOpcode         Kind = -0x40
	InvalidAddrInGPR      Kind = -0x80
	StackOverflow         Kind = -0x100
	StackUnderflow        Kind = -0x200
	DivideByZero          Kind = -0x400
	InvalidPID            Kind = -0x800
	InsufficientMem       Kind = -0x1000
	NotMemBlock           Kind = -0x2000
	InvalidSyscall        Kind = -0x4000
	QueueFull             Kind = -0x8000
	InvalidFSName         Kind = -0x10000
	InvalidMemAddr        Kind = -0x20000
	ReqMemTooSmall        Kind = -0x40000
	InvalidMemRange       Kind = -0x80000
	InvalidSize           Kind = -0x100000
)

var names = map[Kind]string{
	OK:                   "OK",
	FSCantOpen:           "FS_CANT_OPEN",
	InvalidAddrInProgram: "INVALID_ADDR_IN_PROGRAM",
	InvalidPC:            "INVALID_PC",
	NoEOF:                "NO_EOF",
	InvalidMode:          "INVALID_MODE",
	InvalidGPR:           "INVALID_GPR",
	InvalidOpcode:        "INVALID_OPCODE",
	InvalidAddrInGPR:     "INVALID_ADDR_IN_GPR",
	StackOverflow:        "STACK_OVERFLOW",
	StackUnderflow:       "STACK_UNDERFLOW",
	DivideByZero:         "DIVIDE_BY_ZERO",
	InvalidPID:           "INVALID_PID",
	InsufficientMem:      "INSUFFICIENT_MEM",
	NotMemBlock:          "NOT_MEM_BLOCK",
	InvalidSyscall:       "INVALID_SYSCALL",
	QueueFull:            "QUEUE_FULL",
	InvalidFSName:        "INVALID_FS_NAME",
	InvalidMemAddr:       "INVALID_MEM_ADDR",
	ReqMemTooSmall:       "REQ_MEM_TOO_SMALL",
	InvalidMemRange:      "INVALID_MEM_RANGE",
	InvalidSize:          "INVALID_SIZE",
}

// String renders the kind's symbolic name, falling back to the numeric
// code for anything unexpected.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// Error lets a Kind be used directly as a Go error.
func (k Kind) Error() string {
	return k.String()
}

// Variant discriminates a CPU run's termination without relying on a
// signed integer's sign, per the "tagged return codes" design note.
type Variant int

const (
	Halted Variant = iota
	QuantumExpired
	YieldedGetc
	YieldedPutc
	Errored
)

// Result is the outcome of one CPU run (Machine.Run).
type Result struct {
	Variant Variant
	Err     Kind // valid only when Variant == Errored
}

func (r Result) String() string {
	switch r.Variant {
	case Halted:
		return "HALTED"
	case QuantumExpired:
		return "QUANTUM_EXPIRED"
	case YieldedGetc:
		return "GETC"
	case YieldedPutc:
		return "PUTC"
	case Errored:
		return r.Err.String()
	default:
		return "UNKNOWN"
	}
}

func HaltedResult() Result         { return Result{Variant: Halted} }
func QuantumExpiredResult() Result { return Result{Variant: QuantumExpired} }
func GetcResult() Result           { return Result{Variant: YieldedGetc} }
func PutcResult() Result           { return Result{Variant: YieldedPutc} }
func ErrorResult(k Kind) Result    { return Result{Variant: Errored, Err: k} }

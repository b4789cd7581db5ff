/*
 * Hypo - CPU execution tests
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

import (
	"testing"

	"github.com/rcornwell/hypo/internal/result"
)

// TestSumOfTen runs gpr[0]=10, gpr[1]=0, loop adding gpr[0] into gpr[1]
// and decrementing gpr[0], branch on plus, then HALT. After the run
// gpr[1] must equal 55 and the machine must have halted.
func TestSumOfTen(t *testing.T) {
	mem := NewMemory()
	prog := map[Word]Word{
		0: 51060, // MOVE gpr0 <- imm
		1: 10,
		2: 51160, // MOVE gpr1 <- imm
		3: 0,
		4: 11110, // ADD gpr1, gpr0
		5: 21060, // SUBTRACT gpr0, imm
		6: 1,
		7: 81000, // BRANCH_ON_PLUS gpr0
		8: 4,     // loop target
		9: 0,     // HALT
	}
	for addr, v := range prog {
		mem.Put(addr, v)
	}

	m := NewMachine(mem)
	m.Reg.PC = 0

	res := m.Run(InitialQuantum)
	if res.Variant != result.Halted {
		t.Fatalf("Run() = %v, want HALTED", res)
	}
	if m.Reg.GPR[1] != 55 {
		t.Errorf("gpr[1] = %d, want 55", m.Reg.GPR[1])
	}
	if m.Reg.GPR[0] != 0 {
		t.Errorf("gpr[0] = %d, want 0", m.Reg.GPR[0])
	}
}

// TestDivideByZero checks that dividing by zero errors rather than
// trapping the Go runtime's own division panic.
func TestDivideByZero(t *testing.T) {
	mem := NewMemory()
	mem.Put(0, 51260) // MOVE gpr2 <- imm 0
	mem.Put(1, 0)
	mem.Put(2, 41112) // DIVIDE gpr1, gpr2

	m := NewMachine(mem)
	m.Reg.PC = 0
	m.Reg.GPR[1] = 42

	res := m.Run(InitialQuantum)
	if res.Variant != result.Errored || res.Err != result.DivideByZero {
		t.Fatalf("Run() = %v, want DIVIDE_BY_ZERO", res)
	}
}

// TestStackUnderflow pops into gpr0 with an empty stack.
func TestStackUnderflow(t *testing.T) {
	mem := NewMemory()
	mem.Put(0, 111000) // POP gpr0

	m := NewMachine(mem)
	m.Reg.PC = 0
	m.StackBase = UserHeapLow
	m.StackSize = 9
	m.Reg.SP = m.StackBase - 1 // empty stack

	res := m.Run(InitialQuantum)
	if res.Variant != result.Errored || res.Err != result.StackUnderflow {
		t.Fatalf("Run() = %v, want STACK_UNDERFLOW", res)
	}
}

// TestQuantumExhaustion runs a tight self-branch that burns the entire
// 2000-unit quantum in exactly 1000 branches (cost 2 each).
func TestQuantumExhaustion(t *testing.T) {
	mem := NewMemory()
	mem.Put(0, 60000) // BRANCH
	mem.Put(1, 0)     // target: self

	m := NewMachine(mem)
	m.Reg.PC = 0

	res := m.Run(InitialQuantum)
	if res.Variant != result.QuantumExpired {
		t.Fatalf("Run() = %v, want QUANTUM_EXPIRED", res)
	}
	if m.Clock != InitialQuantum {
		t.Errorf("clock = %d, want %d", m.Clock, InitialQuantum)
	}
	if m.Reg.PC != 0 {
		t.Errorf("pc = %d, want 0 (branch target)", m.Reg.PC)
	}
}

func TestInvalidPC(t *testing.T) {
	mem := NewMemory()
	m := NewMachine(mem)
	m.Reg.PC = 3000 // outside program region

	res := m.Run(InitialQuantum)
	if res.Variant != result.Errored || res.Err != result.InvalidPC {
		t.Fatalf("Run() = %v, want INVALID_PC", res)
	}
}

func TestImmediateDestinationInvalid(t *testing.T) {
	mem := NewMemory()
	// MOVE with op1 = immediate (6), which cannot be a destination.
	mem.Put(0, 56060)
	mem.Put(1, 1)
	mem.Put(2, 2)

	m := NewMachine(mem)
	m.Reg.PC = 0

	res := m.Run(InitialQuantum)
	if res.Variant != result.Errored || res.Err != result.InvalidMode {
		t.Fatalf("Run() = %v, want INVALID_MODE", res)
	}
}

func TestSyscallYieldsGetc(t *testing.T) {
	mem := NewMemory()
	mem.Put(0, 126000) // SYSCALL with immediate service id
	mem.Put(1, 8)      // io-getc service id

	m := NewMachine(mem)
	m.Reg.PC = 0
	m.Syscall = func(id Word) *result.Result {
		if id != 8 {
			t.Fatalf("syscall id = %d, want 8", id)
		}
		r := result.GetcResult()
		return &r
	}

	res := m.Run(InitialQuantum)
	if res.Variant != result.YieldedGetc {
		t.Fatalf("Run() = %v, want GETC", res)
	}
}

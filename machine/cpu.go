/*
 * Hypo - fetch/decode/execute cycle
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

import "github.com/rcornwell/hypo/internal/result"

// InitialQuantum is the per-run budget of simulated clock units
// debited to every CPU run before the kernel must reschedule.
const InitialQuantum Word = 2000

// Opcode costs, in clock units, charged to the quantum on execution.
var opCost = [13]Word{
	OpHalt:        12,
	OpAdd:         3,
	OpSubtract:    3,
	OpMultiply:    6,
	OpDivide:      6,
	OpMove:        2,
	OpBranch:      2,
	OpBranchMinus: 4,
	OpBranchPlus:  4,
	OpBranchZero:  4,
	OpPush:        2,
	OpPop:         2,
	OpSyscall:     12,
}

// SyscallFunc is supplied by the kernel before a CPU run: it receives
// the service id resolved from the SYSCALL instruction's first operand
// and returns a non-nil Result only when the run must yield
// immediately (GETC/PUTC), or report an unknown service as an error.
// A nil return means the syscall was serviced entirely within the
// kernel (its status, if any, already written to gpr[0]) and the CPU
// should keep running.
type SyscallFunc func(serviceID Word) *result.Result

// Machine bundles the one CPU register file with the one shared
// memory and the clock/quantum accounting of a single CPU run. The
// kernel borrows a Machine for the duration of one Dispatch.
type Machine struct {
	Mem     *Memory
	Reg     Registers
	Clock   Word
	Quantum Word // remaining quantum in the current run

	// StackBase/StackSize describe the running process's stack, needed
	// by PUSH/POP's overflow/underflow checks. The kernel sets these
	// from the dispatched PCB before calling Run.
	StackBase Word
	StackSize Word

	Syscall SyscallFunc
}

// NewMachine returns a Machine sharing the given memory.
func NewMachine(mem *Memory) *Machine {
	return &Machine{Mem: mem}
}

// Run executes instructions until a terminating condition is reached:
// HALT, quantum exhaustion, a syscall yield (GETC/PUTC), or any error.
// The caller supplies the quantum (tests pass small values to keep
// runs short; the kernel passes InitialQuantum or its own override).
func (m *Machine) Run(quantum Word) result.Result {
	m.Quantum = quantum

	for {
		if m.Quantum <= 0 {
			return result.QuantumExpiredResult()
		}

		if !InProgram(m.Reg.PC) {
			return result.ErrorResult(result.InvalidPC)
		}

		m.Reg.MAR = m.Reg.PC
		mbr, _ := m.Mem.Get(m.Reg.PC)
		m.Reg.MBR = mbr
		m.Reg.PC++
		m.Reg.IR = m.Reg.MBR

		ins, errK := Decode(m.Reg.IR)
		if errK != result.OK {
			return result.ErrorResult(errK)
		}

		if ins.Opcode < 0 || int(ins.Opcode) >= len(opCost) {
			return result.ErrorResult(result.InvalidOpcode)
		}

		halted, yield, errK := m.execute(ins)
		cost := opCost[ins.Opcode]
		m.Clock += cost
		m.Quantum -= cost

		if errK != result.OK {
			return result.ErrorResult(errK)
		}
		if halted {
			return result.HaltedResult()
		}
		if yield != nil {
			return *yield
		}
	}
}

// execute dispatches on opcode. It returns halted=true for HALT,
// yield!=nil when a syscall parked the process, and errK != OK on any
// failure; the caller is responsible for charging the opcode's cost
// regardless of outcome.
func (m *Machine) execute(ins Instruction) (halted bool, yield *result.Result, errK result.Kind) {
	switch ins.Opcode {
	case OpHalt:
		return true, nil, result.OK

	case OpAdd:
		return m.arith(ins, func(a, b Word) (Word, result.Kind) { return a + b, result.OK })
	case OpSubtract:
		return m.arith(ins, func(a, b Word) (Word, result.Kind) { return a - b, result.OK })
	case OpMultiply:
		return m.arith(ins, func(a, b Word) (Word, result.Kind) { return a * b, result.OK })
	case OpDivide:
		return m.arith(ins, func(a, b Word) (Word, result.Kind) {
			if b == 0 {
				return 0, result.DivideByZero
			}
			return a / b, result.OK
		})
	case OpMove:
		return m.arith(ins, func(_, b Word) (Word, result.Kind) { return b, result.OK })

	case OpBranch:
		return m.branch()
	case OpBranchMinus:
		return m.branchOnOperand(ins, func(v Word) bool { return v < 0 })
	case OpBranchPlus:
		return m.branchOnOperand(ins, func(v Word) bool { return v > 0 })
	case OpBranchZero:
		return m.branchOnOperand(ins, func(v Word) bool { return v == 0 })

	case OpPush:
		return m.push(ins)
	case OpPop:
		return m.pop(ins)

	case OpSyscall:
		return m.syscall(ins)

	default:
		return false, nil, result.InvalidOpcode
	}
}

// arith resolves both operands, applies fn, and stores the result
// through op1's mode: IMMEDIATE as destination is invalid; REGISTER
// writes the gpr; any other resolved mode writes memory at the
// resolved address.
func (m *Machine) arith(ins Instruction, fn func(a, b Word) (Word, result.Kind)) (bool, *result.Result, result.Kind) {
	op1, errK := m.ResolveOperand(ins.Op1Mode, ins.Op1GPR)
	if errK != result.OK {
		return false, nil, errK
	}
	op2, errK := m.ResolveOperand(ins.Op2Mode, ins.Op2GPR)
	if errK != result.OK {
		return false, nil, errK
	}

	r, errK := fn(op1.Value, op2.Value)
	if errK != result.OK {
		return false, nil, errK
	}

	if errK = m.store(ins.Op1Mode, ins.Op1GPR, op1.Addr, r); errK != result.OK {
		return false, nil, errK
	}
	return false, nil, result.OK
}

// store writes r to the destination selected by op1's mode.
func (m *Machine) store(mode, reg, addr, r Word) result.Kind {
	switch mode {
	case ModeImmediate:
		return result.InvalidMode
	case ModeRegister:
		m.Reg.GPR[reg] = r
		return result.OK
	default:
		if !m.Mem.Put(addr, r) {
			return result.InvalidAddrInGPR
		}
		return result.OK
	}
}

// branch takes the branch target unconditionally from memory[pc], per
// open question (b): all three conditional branches and the
// unconditional BRANCH read their target the same way.
func (m *Machine) branch() (bool, *result.Result, result.Kind) {
	if !InProgram(m.Reg.PC) {
		return false, nil, result.InvalidPC
	}
	target, _ := m.Mem.Get(m.Reg.PC)
	m.Reg.PC = target
	return false, nil, result.OK
}

func (m *Machine) branchOnOperand(ins Instruction, cond func(Word) bool) (bool, *result.Result, result.Kind) {
	op1, errK := m.ResolveOperand(ins.Op1Mode, ins.Op1GPR)
	if errK != result.OK {
		return false, nil, errK
	}
	if cond(op1.Value) {
		if !InProgram(m.Reg.PC) {
			return false, nil, result.InvalidPC
		}
		target, _ := m.Mem.Get(m.Reg.PC)
		m.Reg.PC = target
	} else {
		m.Reg.PC++
	}
	return false, nil, result.OK
}

func (m *Machine) push(ins Instruction) (bool, *result.Result, result.Kind) {
	op1, errK := m.ResolveOperand(ins.Op1Mode, ins.Op1GPR)
	if errK != result.OK {
		return false, nil, errK
	}
	if m.Reg.SP == m.StackBase+m.StackSize {
		return false, nil, result.StackOverflow
	}
	m.Reg.SP++
	m.Mem.Put(m.Reg.SP, op1.Value)
	return false, nil, result.OK
}

// pop resolves op1 the same way every other operand is resolved (so
// auto-increment/decrement destinations behave consistently) and
// discards the resolved value: the popped word, not op1's prior
// contents, is what gets stored.
func (m *Machine) pop(ins Instruction) (bool, *result.Result, result.Kind) {
	op1, errK := m.ResolveOperand(ins.Op1Mode, ins.Op1GPR)
	if errK != result.OK {
		return false, nil, errK
	}
	if m.Reg.SP < m.StackBase {
		return false, nil, result.StackUnderflow
	}
	v, _ := m.Mem.Get(m.Reg.SP)
	if errK := m.store(ins.Op1Mode, ins.Op1GPR, op1.Addr, v); errK != result.OK {
		return false, nil, errK
	}
	m.Reg.SP--
	return false, nil, result.OK
}

func (m *Machine) syscall(ins Instruction) (bool, *result.Result, result.Kind) {
	op1, errK := m.ResolveOperand(ins.Op1Mode, ins.Op1GPR)
	if errK != result.OK {
		return false, nil, errK
	}

	savedPSR := m.Reg.PSR
	m.Reg.PSR = PSRMachine
	var yield *result.Result
	if m.Syscall != nil {
		yield = m.Syscall(op1.Value)
	}
	m.Reg.PSR = savedPSR

	return false, yield, result.OK
}

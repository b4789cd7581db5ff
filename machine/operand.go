/*
 * Hypo - operand addressing modes
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

// Operand is the result of resolving an operand to its effective
// address and value. Addr is NotInMemory when the value came from a
// register or directly from the instruction stream.
type Operand struct {
	Addr  Word
	Value Word
}

// ResolveOperand implements the six addressing modes. It mutates the
// Machine's registers (gpr increment/decrement, pc advance) exactly as
// the mode requires.
//
// Open question (a): auto-increment performs the access first and then
// bumps the register, which is never re-validated against the (possibly
// now out-of-range) updated value. Auto-decrement decrements the
// register first and validates the decremented address before the
// access; the decrement is kept even when that check fails.
func (m *Machine) ResolveOperand(mode, reg Word) (Operand, result.Kind) {
	switch mode {
	case ModeNoOp:
		return Operand{Addr: NotInMemory, Value: 0}, result.OK

	case ModeRegister:
		return Operand{Addr: NotInMemory, Value: m.Reg.GPR[reg]}, result.OK

	case ModeRegisterDef:
		addr := m.Reg.GPR[reg]
		if !InUserHeap(addr) {
			return Operand{}, result.InvalidAddrInGPR
		}
		v, _ := m.Mem.Get(addr)
		return Operand{Addr: addr, Value: v}, result.OK

	case ModeAutoInc:
		addr := m.Reg.GPR[reg]
		if !InUserHeap(addr) {
			return Operand{}, result.InvalidAddrInGPR
		}
		v, _ := m.Mem.Get(addr)
		m.Reg.GPR[reg]++
		return Operand{Addr: addr, Value: v}, result.OK

	case ModeAutoDec:
		m.Reg.GPR[reg]--
		addr := m.Reg.GPR[reg]
		if !InUserHeap(addr) {
			return Operand{}, result.InvalidAddrInGPR
		}
		v, _ := m.Mem.Get(addr)
		return Operand{Addr: addr, Value: v}, result.OK

	case ModeDirect:
		addr, _ := m.Mem.Get(m.Reg.PC)
		m.Reg.PC++
		if !InUserHeap(addr) {
			return Operand{}, result.InvalidAddrInGPR
		}
		v, _ := m.Mem.Get(addr)
		return Operand{Addr: addr, Value: v}, result.OK

	case ModeImmediate:
		if !InProgram(m.Reg.PC) {
			return Operand{}, result.InvalidAddrInGPR
		}
		v, _ := m.Mem.Get(m.Reg.PC)
		m.Reg.PC++
		return Operand{Addr: NotInMemory, Value: v}, result.OK

	default:
		return Operand{}, result.InvalidMode
	}
}

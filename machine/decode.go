/*
 * Hypo - instruction field decode
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

// Addressing modes.
const (
	ModeNoOp        Word = 0
	ModeRegister    Word = 1
	ModeRegisterDef Word = 2
	ModeAutoInc     Word = 3
	ModeAutoDec     Word = 4
	ModeDirect      Word = 5
	ModeImmediate   Word = 6
)

// Opcodes.
const (
	OpHalt        Word = 0
	OpAdd         Word = 1
	OpSubtract    Word = 2
	OpMultiply    Word = 3
	OpDivide      Word = 4
	OpMove        Word = 5
	OpBranch      Word = 6
	OpBranchMinus Word = 7
	OpBranchPlus  Word = 8
	OpBranchZero  Word = 9
	OpPush        Word = 10
	OpPop         Word = 11
	OpSyscall     Word = 12
)

// Instruction is the decoded form of a six-digit instruction word:
//
//	opcode*10000 + op1Mode*1000 + op1GPR*100 + op2Mode*10 + op2GPR
type Instruction struct {
	Opcode  Word
	Op1Mode Word
	Op1GPR  Word
	Op2Mode Word
	Op2GPR  Word
}

// Decode splits ir into its fields and validates that both modes lie
// in 0..6 and both register numbers lie in 0..7. Opcode range (0..12)
// is not validated here — the Executor reports INVALID_OPCODE for a
// decoded-but-unimplemented opcode at dispatch time.
func Decode(ir Word) (Instruction, result.Kind) {
	rem := ir % 10000
	ins := Instruction{
		Opcode:  ir / 10000,
		Op1Mode: rem / 1000,
		Op1GPR:  (rem % 1000) / 100,
		Op2Mode: (rem % 100) / 10,
		Op2GPR:  rem % 10,
	}

	if ins.Op1Mode < ModeNoOp || ins.Op1Mode > ModeImmediate ||
		ins.Op2Mode < ModeNoOp || ins.Op2Mode > ModeImmediate {
		return ins, result.InvalidMode
	}
	if ins.Op1GPR < 0 || ins.Op1GPR > 7 || ins.Op2GPR < 0 || ins.Op2GPR > 7 {
		return ins, result.InvalidGPR
	}
	return ins, result.OK
}

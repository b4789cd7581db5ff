/*
 * Hypo - syscall dispatch
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

// Syscall service ids, carried in the SYSCALL instruction's first operand.
const (
	SvcProcessCreate  machine.Word = 1
	SvcProcessDelete  machine.Word = 2
	SvcProcessInquiry machine.Word = 3
	SvcMemAlloc       machine.Word = 4
	SvcMemFree        machine.Word = 5
	SvcMsgSend        machine.Word = 6
	SvcMsgRecv        machine.Word = 7
	SvcIOGetc         machine.Word = 8
	SvcIOPutc         machine.Word = 9
	SvcTimeGet        machine.Word = 10
	SvcTimeSet        machine.Word = 11
)

// dispatchSyscall is installed as the running Machine's SyscallFunc. It
// is called with psr already set to OS mode by the Machine; a non-nil
// return yields the CPU run immediately (GETC/PUTC, or any error), a
// nil return means the call was serviced in place and gpr[0] already
// carries its status.
func (k *Kernel) dispatchSyscall(serviceID machine.Word) *result.Result {
	switch serviceID {
	case SvcMemAlloc:
		size := k.Machine.Reg.GPR[2]
		ptr, errK := k.UserAlloc.Allocate(size)
		if errK != result.OK {
			k.Machine.Reg.GPR[0] = machine.Word(errK)
			return nil
		}
		k.Machine.Reg.GPR[1] = ptr
		k.Machine.Reg.GPR[0] = 0
		return nil

	case SvcMemFree:
		ptr := k.Machine.Reg.GPR[1]
		errK := k.UserAlloc.Free(ptr)
		if errK != result.OK {
			k.Machine.Reg.GPR[0] = machine.Word(errK)
			return nil
		}
		k.Machine.Reg.GPR[0] = 0
		return nil

	case SvcIOGetc:
		r := result.GetcResult()
		return &r

	case SvcIOPutc:
		r := result.PutcResult()
		return &r

	case SvcProcessCreate, SvcProcessDelete, SvcProcessInquiry,
		SvcMsgSend, SvcMsgRecv, SvcTimeGet, SvcTimeSet:
		// Stubs: these services are out of scope for a single-Machine
		// simulator (no second process to inquire about synchronously,
		// no wall clock) but the service ids are reserved and always
		// succeed with a trivial status so caller code written against
		// the full syscall surface does not need to special-case them.
		k.Machine.Reg.GPR[0] = 0
		return nil

	default:
		r := result.ErrorResult(result.InvalidSyscall)
		return &r
	}
}

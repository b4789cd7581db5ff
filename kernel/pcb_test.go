/*
 * Hypo - PCB tests
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

	"github.com/rcornwell/hypo/machine"
)

func TestInitializePCBAssignsPIDAndDefaults(t *testing.T) {
	mem := machine.NewMemory()
	nextPID := machine.Word(1)

	InitializePCB(mem, 4500, &nextPID)
	view := PCBView{Mem: mem, Ptr: 4500}

	if view.PID() != 1 {
		t.Errorf("PID() = %d, want 1", view.PID())
	}
	if nextPID != 2 {
		t.Errorf("nextPID = %d, want 2 (post-increment)", nextPID)
	}
	if view.State() != StateReady {
		t.Errorf("State() = %d, want Ready", view.State())
	}
	if view.Priority() != DefaultPriority {
		t.Errorf("Priority() = %d, want %d", view.Priority(), DefaultPriority)
	}
	if view.Next() != EndOfList {
		t.Errorf("Next() = %d, want EndOfList", view.Next())
	}

	InitializePCB(mem, 4600, &nextPID)
	if (PCBView{Mem: mem, Ptr: 4600}).PID() != 2 {
		t.Errorf("second PID = %d, want 2", PCBView{Mem: mem, Ptr: 4600}.PID())
	}
}

func TestPCBViewSavedRegisters(t *testing.T) {
	mem := machine.NewMemory()
	view := PCBView{Mem: mem, Ptr: 4500}

	for i := 0; i < 8; i++ {
		view.SetSavedGPR(i, machine.Word(i*10))
	}
	view.SetSavedSP(100)
	view.SetSavedPC(5)
	view.SetSavedPSR(machine.PSRUser)

	for i := 0; i < 8; i++ {
		if got := view.SavedGPR(i); got != machine.Word(i*10) {
			t.Errorf("SavedGPR(%d) = %d, want %d", i, got, i*10)
		}
	}
	if view.SavedSP() != 100 {
		t.Errorf("SavedSP() = %d, want 100", view.SavedSP())
	}
	if view.SavedPC() != 5 {
		t.Errorf("SavedPC() = %d, want 5", view.SavedPC())
	}
	if view.SavedPSR() != machine.PSRUser {
		t.Errorf("SavedPSR() = %d, want %d", view.SavedPSR(), machine.PSRUser)
	}
}

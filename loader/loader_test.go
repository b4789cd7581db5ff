/*
 * Hypo - loader tests
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

package loader

import (
	"strings"
	"testing"

	"github.com/rcornwell/hypo/internal/result"
	"github.com/rcornwell/hypo/machine"
)

// TestLoadRoundTrip checks that every non-terminator pair lands in
// memory unchanged and the entry point matches the terminator.
func TestLoadRoundTrip(t *testing.T) {
	mem := machine.NewMemory()
	src := "0 51060\n1 10\n2 51160\n3 0\n-1 0\n"

	entry, errK := Load(mem, strings.NewReader(src))
	if errK != result.OK {
		t.Fatalf("Load() err = %v, want OK", errK)
	}
	if entry != 0 {
		t.Errorf("entry = %d, want 0", entry)
	}

	want := map[machine.Word]machine.Word{0: 51060, 1: 10, 2: 51160, 3: 0}
	for addr, content := range want {
		if v, _ := mem.Get(addr); v != content {
			t.Errorf("mem[%d] = %d, want %d", addr, v, content)
		}
	}
}

func TestLoadMissingTerminator(t *testing.T) {
	mem := machine.NewMemory()
	src := "0 51060\n1 10\n"

	_, errK := Load(mem, strings.NewReader(src))
	if errK != result.NoEOF {
		t.Fatalf("Load() err = %v, want NO_EOF", errK)
	}
}

func TestLoadAddressOutOfRange(t *testing.T) {
	mem := machine.NewMemory()
	src := "9999 1\n-1 0\n"

	_, errK := Load(mem, strings.NewReader(src))
	if errK != result.InvalidAddrInProgram {
		t.Fatalf("Load() err = %v, want INVALID_ADDR_IN_PROGRAM", errK)
	}
}

func TestLoadEntryPointOutOfRange(t *testing.T) {
	mem := machine.NewMemory()
	src := "0 1\n-1 9999\n"

	_, errK := Load(mem, strings.NewReader(src))
	if errK != result.InvalidPC {
		t.Fatalf("Load() err = %v, want INVALID_PC", errK)
	}
}

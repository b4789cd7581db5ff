/*
 * Hypo - object module loader
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

// Package loader parses the object-module text format consumed by
// CreateProcess: whitespace-separated address/content pairs terminated
// by a -1/entry-point pair.
package loader

import (
	"bufio"
	"io"
	"strconv"

	"github.com/rcornwell/hypo/internal/result"
	"github.com/rcornwell/hypo/machine"
)

// Load reads whitespace-separated signed decimal integers from r two
// at a time: (address, content) pairs loaded directly into mem, until
// it reads the terminating pair (-1, entry_point). It returns the
// entry point on success.
//
// address must satisfy 0 <= address <= 2499 for every non-terminator
// pair; entry_point must satisfy the same bounds. A stream that runs
// out of tokens before the terminator is NO_EOF.
func Load(mem *machine.Memory, r io.Reader) (machine.Word, result.Kind) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func() (machine.Word, bool) {
		if !sc.Scan() {
			return 0, false
		}
		v, err := strconv.ParseInt(sc.Text(), 10, 64)
		if err != nil {
			return 0, false
		}
		return machine.Word(v), true
	}

	for {
		addr, ok := next()
		if !ok {
			return 0, result.NoEOF
		}

		if addr == -1 {
			entry, ok := next()
			if !ok {
				return 0, result.NoEOF
			}
			if entry < machine.ProgramLow || entry > machine.ProgramHigh {
				return 0, result.InvalidPC
			}
			return entry, result.OK
		}

		if addr < machine.ProgramLow || addr > machine.ProgramHigh {
			return 0, result.InvalidAddrInProgram
		}

		content, ok := next()
		if !ok {
			return 0, result.NoEOF
		}
		mem.Put(addr, content)
	}
}

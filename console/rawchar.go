/*
 * Hypo - raw single-character input
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

package console

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ReadRawChar reads a single character from stdin without waiting for
// Enter when stdin is a terminal, putting it into raw mode for the
// duration of the read and restoring it immediately afterward. When
// stdin is not a terminal (piped input, tests), it falls back to
// reading one byte from a buffered reader so the console still works
// under redirection.
func ReadRawChar(in *os.File, buf *bufio.Reader) (byte, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return buf.ReadByte()
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("rawchar: set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	var b [1]byte
	if _, err := in.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package suffixtree

import "bytes"

// DefaultTerminator is appended to every input. It must not occur in the input itself.
const DefaultTerminator byte = '$'

// buffer is the immutable text the tree is built over: the input followed by
// exactly one terminator byte.
type buffer struct {
	data []byte
	term byte
}

func newBuffer(input []byte, term byte) (buffer, error) {
	if i := bytes.IndexByte(input, term); i >= 0 {
		return buffer{}, &InvalidInputError{Terminator: term, Offset: i}
	}
	data := make([]byte, len(input)+1)
	copy(data, input)
	data[len(input)] = term
	return buffer{data: data, term: term}, nil
}

// len includes the terminator.
func (b buffer) len() int32 { return int32(len(b.data)) }

func (b buffer) at(i int32) byte { return b.data[i] }

// input returns the original text without the terminator.
func (b buffer) input() []byte { return b.data[:len(b.data)-1] }

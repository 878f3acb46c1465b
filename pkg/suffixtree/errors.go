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

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidInput is matched by every *InvalidInputError.
var ErrInvalidInput = errors.New("invalid suffix tree input")

// InvalidInputError reports that the terminator byte already occurs in the input.
type InvalidInputError struct {
	Terminator byte
	// Offset of the first occurrence of Terminator in the input.
	Offset int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("terminator %q occurs in input at offset %d", e.Terminator, e.Offset)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// invariant panics when an engine invariant does not hold. A violation is a
// construction defect, never a property of the input.
func invariant(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf("suffixtree: invariant violated: "+format, args...))
	}
}

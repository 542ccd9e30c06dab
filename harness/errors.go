// Copyright 2026 sort-research Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package harness

import "errors"

// Check outcome errors
var (
	ErrMismatch         = errors.New("harness: output differs from reference sort")
	ErrUnstable         = errors.New("harness: equal elements were reordered")
	ErrMultisetChanged  = errors.New("harness: elements were lost or duplicated")
	ErrObservability    = errors.New("harness: comparator side effects were lost")
	ErrNondeterministic = errors.New("harness: equal inputs gave different outputs")
	ErrSelfComparison   = errors.New("harness: element compared with itself")
	ErrMissingPanic     = errors.New("harness: comparator panic did not propagate")
	ErrSkipped          = errors.New("harness: check not applicable to backend")
)

// Configuration and artifact errors
var (
	ErrUnknownCheck    = errors.New("harness: unknown check")
	ErrInvalidConfig   = errors.New("harness: invalid configuration")
	ErrArtifactCorrupt = errors.New("harness: artifact is corrupt")
)

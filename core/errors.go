// Copyright 2025 Poiesic Systems
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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a DocumentRecord failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidSenseEntry indicates a SenseEntry failed validation.
	ErrInvalidSenseEntry = errors.New("invalid sense entry")

	// ErrEmptyKey indicates the document Key field is empty.
	ErrEmptyKey = errors.New("document key cannot be empty")

	// ErrEmptyTitle indicates the document Title field is empty.
	ErrEmptyTitle = errors.New("document title cannot be empty")

	// ErrSenseCountMismatch indicates Senses and SenseTokens differ in length.
	ErrSenseCountMismatch = errors.New("senses and sense tokens differ in length")

	// ErrEmptySenseID indicates the sense Id field is empty.
	ErrEmptySenseID = errors.New("sense id cannot be empty")

	// ErrEmptyLemma indicates the sense Lemma field is empty.
	ErrEmptyLemma = errors.New("sense lemma cannot be empty")
)

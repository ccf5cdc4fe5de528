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

import (
	"fmt"
	"strings"
)

// ValidateDocumentRecord validates a DocumentRecord according to domain rules.
//
// Validation rules:
//   - Key must not be empty
//   - Title must not be blank
//   - Senses must line up with SenseTokens
//
// NOT validated:
//   - Tokens (a title made only of stopwords yields none)
//   - ID and Seq (assigned by storage)
func ValidateDocumentRecord(record *DocumentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidDocument)
	}

	if record.Key == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyKey)
	}

	if strings.TrimSpace(record.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}

	if len(record.Senses) != len(record.SenseTokens) {
		return fmt.Errorf("%w: %w (%d senses, %d tokens)", ErrInvalidDocument,
			ErrSenseCountMismatch, len(record.Senses), len(record.SenseTokens))
	}

	return nil
}

// ValidateSenseEntry validates a SenseEntry according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Lemma must not be empty
func ValidateSenseEntry(entry *SenseEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidSenseEntry)
	}

	if entry.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSenseEntry, ErrEmptySenseID)
	}

	if entry.Lemma == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSenseEntry, ErrEmptyLemma)
	}

	return nil
}

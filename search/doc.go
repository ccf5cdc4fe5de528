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

// Package search finds the documents of a corpus most similar to a query
// document.
//
// The Searcher runs a two-stage funnel:
//   - the corpus model's semantic search narrows the corpus to a shortlist
//     of keyword and co-occurrence hits
//   - the pairwise sense scorer ranks the shortlist against the query
//
// Degenerate inputs such as an empty corpus or a query without sense tokens
// produce an empty result rather than an error.
package search

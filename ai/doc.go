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

// Package ai provides LLM-backed word sense disambiguation.
//
// A sense inventory knows which meanings a word can have; choosing among
// them for a given context is delegated to a SenseSelector. Disambiguator
// glues the two together and implements wsd.Disambiguator, so it can be set
// as document.Config.Disambiguator in place of the gloss-overlap default.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewSenseSelector) return
// INTERFACE types. Test utility constructors (mock.NewMockSenseSelector)
// return CONCRETE types so tests can inject behavior and read call counts.
//
// # Usage Example
//
//	provider, err := openai.NewProvider(ai.NewConfig(ai.WithModel("gpt-4o-mini")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	cfg := document.DefaultConfig()
//	cfg.Disambiguator = ai.NewDisambiguator(inventory, provider.SenseSelector(), nil)
package ai

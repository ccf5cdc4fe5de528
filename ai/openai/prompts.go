package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/semsimilar/core"
)

// noSense is the answer the model gives when no candidate fits.
const noSense = "none"

const selectionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "sense": {
      "type": "string"
    }
  },
  "required": ["sense"],
  "additionalProperties": false
}`

const selectionPromptTemplate = `You resolve the meaning of a word used in a short technical text. You will be
given the word, the words around it and a list of candidate senses. Pick the one candidate that matches how
the word is used and return its id as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The "sense" value must be exactly one of the candidate ids.
- If no candidate fits, answer {"sense":"%s"}.
- The surrounding words have had stopwords removed; read them as keywords, not as a sentence.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Word: bank
Context: deposit check bank account
Candidates:
- bank.n.01: sloping land beside a body of water
- bank.n.02: a financial institution that accepts deposits
Output:
{"sense":"bank.n.02"}`

// buildSystemPrompt creates the system prompt with the response schema embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(selectionPromptTemplate, selectionResponseSchema, noSense)
}

// buildUserPrompt describes one disambiguation question.
func buildUserPrompt(target string, window []string, candidates []core.SenseEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word: %s\n", target)
	fmt.Fprintf(&b, "Context: %s\n", scrubString(strings.Join(window, " ")))
	b.WriteString("Candidates:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "- %s: %s", c.Id, scrubString(c.Gloss))
		if len(c.Examples) > 0 {
			fmt.Fprintf(&b, " (e.g. %s)", scrubString(strings.Join(c.Examples, "; ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

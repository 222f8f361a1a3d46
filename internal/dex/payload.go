package dex

import (
	"encoding/json"
	"fmt"
	"strings"

	"dex-code-reviewer/constants"
)

// simplePayload is the flat request shape: the backend receives the diff and
// the rules as separate fields and owns the prompt wording.
type simplePayload struct {
	Diff  string `json:"diff"`
	Rules string `json:"rules"`
}

// chatPayload is the chat-style request shape carrying one user message with
// the full instruction text.
type chatPayload struct {
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// buildPayload marshals the request body for the configured shape.
func buildPayload(shape, diff, rules string) ([]byte, error) {
	switch shape {
	case constants.ShapeSimple:
		return json.Marshal(simplePayload{Diff: diff, Rules: rules})
	case constants.ShapeChat:
		return json.Marshal(chatPayload{
			Messages: []chatMessage{{
				Role: "user",
				Content: []chatContent{{
					Type: "text",
					Text: buildInstruction(rules, diff),
				}},
			}},
		})
	default:
		return nil, fmt.Errorf("unsupported backend payload shape: %q", shape)
	}
}

// buildInstruction assembles the review instruction: criteria first, then the
// clean-sentinel contract, then the diff verbatim as the final element.
func buildInstruction(rules, diff string) string {
	var b strings.Builder
	b.WriteString("Please review the code changes provided in the diff below based on the following criteria:\n\n")
	b.WriteString(rules)
	b.WriteString("\n\nIf the overall code appears to be 80% good or more and has no critical issues, respond with: '")
	b.WriteString(constants.CleanSentinel)
	b.WriteString("'")
	b.WriteString(" If there are critical issues that need attention, provide a brief summary (max 2 sentences) of the key areas needing improvement.")
	b.WriteString(" Include a code snippet from the diff that illustrates the issue, without suggesting detailed solutions or minor improvements.")
	b.WriteString("\n\nKeep the response brief, as if it were from a human reviewer.")
	b.WriteString("\n\nHere is the diff with only the added lines:\n\n")
	b.WriteString(diff)
	return b.String()
}

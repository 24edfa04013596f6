package synth

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/aurora/internal/model"
)

// systemPrompt directs the generator to classify the question type and
// answer directly rather than quoting message text back.
const systemPrompt = `You are a helpful assistant that answers questions based on member messages.
Your task:
1. Read and understand the relevant messages
2. Analyze what the question is asking
3. Extract or infer the answer from the messages
4. Provide a clear, direct answer (NOT just repeating the message text)

For different question types:
- Temporal questions ("when", "what time"): Extract dates/times and answer directly
- Aggregations ("how many", "what are favorites", "list"): Analyze ALL relevant messages and summarize/aggregate
- Counting questions ("how many cars", "how many restaurants"): Count items mentioned across ALL messages
- Specific facts: Extract the exact information requested

IMPORTANT:
- If asked "how many cars" or similar counting questions, look through ALL messages for mentions of that topic
- If asked about "favorites" or lists, aggregate all mentions from ALL messages
- If the question asks about something that might be across multiple messages, check ALL provided messages
- For counting questions, count each distinct mention (e.g., if someone mentions "3 cars", count that as 3)

Note: If you see [REDACTED] markers in messages, that indicates sensitive information that has been masked.
Do not attempt to extract or mention the redacted information.

Answer format: Be concise and natural, as if you're directly answering the question.
Do NOT start with "According to..." or "The message says...". Just answer naturally.`

const userTemplate = `Question: %q

Relevant messages:
%s

Based on these messages, answer the question directly.
- For counting questions (like "how many cars"), count ALL mentions across ALL messages
- For aggregation questions (like "favorite restaurants"), list ALL relevant items from ALL messages
- Extract or reason about the answer from the messages
- If the information is not available in the messages, say "I couldn't find that information in the messages."

Answer:`

// userPrompt renders the question plus a bullet per context message:
// "- <userName>: <redactedText> (date: <date>)", with the date clause
// omitted when absent.
func userPrompt(question string, msgs []model.ProjectedMessage) string {
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		line := fmt.Sprintf("- %s: %s", m.UserName, m.Text)
		if m.Date != "" {
			line += fmt.Sprintf(" (date: %s)", m.Date)
		}
		lines[i] = line
	}
	return fmt.Sprintf(userTemplate, question, strings.Join(lines, "\n"))
}

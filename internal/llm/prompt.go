package llm

import (
	"encoding/json"
	"fmt"
)

// guardrailPreamble constrains tone and scope of generated acknowledgements.
const guardrailPreamble = `You are a B2B onboarding assistant for a packaging supplier marketplace.
Stay on the topic of supplier onboarding. Be encouraging and concise.
Never promise specific revenue, leads, or outcomes. Never give legal or financial advice.
If the answer is unclear or off-topic, acknowledge it neutrally and move on.

`

// BuildAnswerPrompt composes the generation prompt for one submitted answer.
func BuildAnswerPrompt(questionID, answerType string, answer any, guardrails bool) string {
	encoded, err := json.Marshal(answer)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", answer))
	}

	prompt := fmt.Sprintf("The supplier answered the onboarding question %s.\n\nAnswer type: %s\nAnswer value: %s\n\nWrite a short, 1-2 sentence response acknowledging their answer and guiding them to the next step of onboarding. Do not promise specific results or give legal/financial advice.",
		questionID, answerType, encoded)

	if guardrails {
		return guardrailPreamble + prompt
	}
	return prompt
}

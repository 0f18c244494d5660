package gemini

import (
	"fmt"

	"github.com/interna-hq/interna-api/internal/generation"
)

// clientSystemPrompt builds the in-character system instruction for the
// simulated client. Arabic projects get an Arabic instruction so the model
// answers in the user's language.
func clientSystemPrompt(req generation.ChatRequest) string {
	if req.Language == "ar" {
		return fmt.Sprintf(`أنت عميل محاكى في مشروع تدريب داخلي افتراضي. تجسد شخصية: %s. مزاجك: %s.
المشروع: %s
الوصف: %s

أجب دائماً بالعربية، بصفة هذا العميل. كن واقعياً في التعامل (متطلب، غامض، أو ودود حسب المزاج). لا تكسر الشخصية.`,
			req.Persona, req.Mood, req.Title, req.Description)
	}

	return fmt.Sprintf(`You are a simulated client in a virtual internship. Persona: %s. Mood: %s.
Project: %s
Description: %s

Always answer in English as this client. Be realistic (demanding, vague, or friendly depending on mood). Stay in character.`,
		req.Persona, req.Mood, req.Title, req.Description)
}

// reviewSystemPrompt builds the reviewer instruction. The verdict line is
// what ParseReview looks for, so the format demand stays exact.
func reviewSystemPrompt(req generation.ReviewRequest) string {
	hint := "Respond in English."
	if req.LanguageHint == "ar" {
		hint = "Respond in Arabic when possible."
	}

	return fmt.Sprintf(`You are an experienced developer reviewing intern code for this project:
Title: %s
Description: %s

Review the code for correctness, clarity, and fit to the project. Be constructive. %s

Reply with a short feedback paragraph, then conclude with exactly one line: APPROVED or NOT_APPROVED.`,
		req.Title, req.Description, hint)
}

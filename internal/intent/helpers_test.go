// ABOUTME: Shared fixtures for intent package tests
// ABOUTME: A small catalog exercising exact, fuzzy and fallback paths

package intent

import "slices"

var (
	greetingResponses = []string{"Hello! How are you feeling today?", "Hi there, I'm glad you reached out."}
	anxietyResponses  = []string{"Let's take a slow breath together.", "Anxiety is hard. What is on your mind?"}
	sadnessResponses  = []string{"I'm sorry you're feeling low.", "Thank you for telling me how you feel."}
	helpResponses     = []string{"I can help you find a therapist or book a session."}
	testFallback      = []string{"Could you tell me a bit more?", "I'm not sure I follow.", "Can you rephrase that?"}
)

func testCatalog() *Catalog {
	return MustCatalog("test", []Category{
		{ID: "greeting", Patterns: []string{"hello", "good morning"}, Responses: greetingResponses},
		{ID: "anxiety", Patterns: []string{"anxious", "feel anxious", "panic attack"}, Responses: anxietyResponses},
		{ID: "sadness", Patterns: []string{"sad", "feeling down", "depressed"}, Responses: sadnessResponses},
		{ID: "help", Patterns: []string{"help", "need help"}, Responses: helpResponses, Sensitive: false},
	}, testFallback)
}

func responsesOf(c *Catalog, id string) []string {
	cat, ok := c.Category(id)
	if !ok {
		return nil
	}
	return cat.Responses
}

func contains(list []string, s string) bool {
	return slices.Contains(list, s)
}

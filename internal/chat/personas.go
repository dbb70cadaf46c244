package chat

// Persona identifiers distinguish which dashboard role a conversation
// belongs to.
const (
	PersonaVP          = "vp"
	PersonaProcurement = "procurement"
	PersonaEngineer    = "engineer"
)

var exampleQuestions = map[string][]string{
	PersonaVP: {
		"What is the total projected savings from consolidation?",
		"Which suppliers have the highest risk?",
		"Show cross-BU synergy opportunities",
	},
	PersonaProcurement: {
		"What is our current maverick spend?",
		"Which parts have the highest markup vs benchmark?",
		"Recommend suppliers for Valve category",
	},
	PersonaEngineer: {
		"What are the FDA requirements for actuators?",
		"Find FDA-approved valve alternatives",
		"What is the biocompatibility standard for this part?",
	},
}

// KnownPersona reports whether persona is one of the dashboard roles.
func KnownPersona(persona string) bool {
	_, ok := exampleQuestions[persona]
	return ok
}

// ExampleQuestions returns the example-question set for a persona, or
// nil for unknown personas.
func ExampleQuestions(persona string) []string {
	questions, ok := exampleQuestions[persona]
	if !ok {
		return nil
	}
	out := make([]string, len(questions))
	copy(out, questions)
	return out
}

package service

// SystemPrompt seeds every new conversation. Refusals are left to the model.
const SystemPrompt = `
You are a helpful assistant that provides information about travel destinations,
including popular attractions, local cuisine, and cultural experiences.
You can also assist with travel planning, such as suggesting itineraries and
providing tips for travelers.
Anything outside your domain expertise of travel including illegal activities
or banned items in certain destinations while travelling, please decline to respond.
`

const (
	// FallbackResponse replaces a reply that carries no text.
	FallbackResponse = "No response received from the AI service."

	// ErrorPrefix starts every reply produced by a failed remote call.
	ErrorPrefix = "Error getting travel guidance: "

	// DefaultModel is used when the configuration names no model.
	DefaultModel = "command-a-03-2025"

	// Temperature is kept low to bias the model toward literal answers.
	Temperature = 0.1
)

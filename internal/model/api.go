package model

// SendMessageRequest is the request to send a chat message to a persona thread.
type SendMessageRequest struct {
	Question string `json:"question"`
}

// ThreadResponse is the full replay of one persona's conversation thread.
type ThreadResponse struct {
	Persona          string   `json:"persona"`
	Turns            []Turn   `json:"turns"`
	ExampleQuestions []string `json:"example_questions,omitempty"`
}

// RegisteredQuery is one entry of the query registry listing.
type RegisteredQuery struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

// ListQueriesResponse is the response for listing registered queries.
type ListQueriesResponse struct {
	Queries map[string]RegisteredQuery `json:"queries"`
	Total   int                        `json:"total"`
}

// ErrorResponse is the envelope every error reply uses.
type ErrorResponse struct {
	Error string `json:"error"`
}

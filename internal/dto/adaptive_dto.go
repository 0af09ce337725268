package dto

// AdaptiveTurnRequest is one candidate message in the cookie-keyed
// conversational flow. An empty answer is treated as a non-response.
type AdaptiveTurnRequest struct {
	Answer string `json:"answer"`
}

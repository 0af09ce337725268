package dto

// QuestionSeed is one bank question in a seed batch.
type QuestionSeed struct {
	QuestionID        string   `json:"question_id" validate:"required"`
	QuestionText      string   `json:"question_text" validate:"required"`
	Domain            string   `json:"domain" validate:"required,oneof=data_structures algorithms system_design database networking security"`
	Difficulty        string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	ExpectedKeyPoints []string `json:"expected_key_points"`
}

// SeedQuestionsRequest loads or refreshes the question bank.
type SeedQuestionsRequest struct {
	Questions []QuestionSeed `json:"questions" validate:"required,min=1,dive"`
}

// SeedQuestionsResponse reports how many rows were written.
type SeedQuestionsResponse struct {
	Seeded int `json:"seeded"`
}

package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

func evaluatorSystemPrompt() string {
	return "You are an expert technical interviewer evaluating a candidate's answer. " +
		"Respond with a JSON object containing correctness (0-1), clarity (0-1), confidence (0-1) and feedback. " +
		"Score correctness on technical accuracy, clarity on structure of the explanation, and confidence on how comprehensive the response is."
}

func buildEvaluationPrompt(input EvaluationInput) string {
	keyPoints, _ := json.Marshal(input.ExpectedKeyPoints)

	builder := strings.Builder{}
	builder.WriteString("# Question\n")
	builder.WriteString(input.QuestionText)
	builder.WriteString("\n\n## Candidate's Answer\n")
	builder.WriteString(input.Answer)
	builder.WriteString("\n\n## Expected Key Points\n")
	builder.Write(keyPoints)
	builder.WriteString("\n\nProvide constructive feedback highlighting strengths and areas for improvement.\nReturn JSON.")
	return builder.String()
}

func advisorSystemPrompt() string {
	return "You help an adaptive interview system choose the next question. " +
		"Given the candidate's recent performance, suggest parameters as a JSON object with domain, difficulty and reasoning. " +
		"Raise difficulty when performance is high (>=0.7), lower it when low (<0.5), otherwise hold the level. Ensure domain progression makes sense."
}

func buildAdvisorPrompt(domain, difficulty string, summary PerformanceSummary) string {
	performance, _ := json.Marshal(summary)
	return fmt.Sprintf("Current Domain: %s\nCurrent Difficulty: %s\nPrevious Performance: %s\n\nReturn ONLY the JSON object.", domain, difficulty, performance)
}

func generatorSystemPrompt() string {
	return "You are an intelligent question generator for an adaptive interview system. " +
		"Generate precise, clear technical interview questions and adjust difficulty from the candidate's previous response. " +
		"Never provide the answer. Respond with a JSON object containing question_text, expected_key_points (2-4 short phrases), difficulty, domain and reasoning."
}

func buildGeneratorPrompt(topic, difficulty string, previous *PreviousResponse) string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "Current Topic: %s\nCurrent Difficulty Level: %s\n", topic, difficulty)

	if previous == nil {
		builder.WriteString("\nThis is the first question. Serve as a good starting point for the topic.")
	} else {
		context, _ := json.Marshal(previous)
		builder.WriteString("\nPrevious Response Performance: ")
		builder.Write(context)
		builder.WriteString("\n\nFocus the next question to reinforce the missed key points and avoid repeating the same exact problem statement. ")
		builder.WriteString("Introduce a slight variation or a new subtopic within the same topic to assess the missed areas.")
		switch {
		case previous.PerformanceScore >= 0.7:
			builder.WriteString(" Make it more challenging than the previous question.")
		case previous.PerformanceScore < 0.5:
			builder.WriteString(" Make it easier and more conceptual than the previous question.")
		default:
			builder.WriteString(" Maintain similar difficulty with slight variation.")
		}
	}

	builder.WriteString("\n\nReturn ONLY the JSON object.")
	return builder.String()
}

// extractJSON pulls the outermost JSON object out of a model response
// that may carry surrounding prose.
func extractJSON(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return content[start : end+1], nil
}

func parseEvaluationResponse(content string) (Evaluation, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return Evaluation{}, err
	}

	var evaluation Evaluation
	if err := json.Unmarshal([]byte(raw), &evaluation); err != nil {
		return Evaluation{}, fmt.Errorf("parse evaluation json: %w", err)
	}
	if evaluation.Feedback == "" {
		return Evaluation{}, fmt.Errorf("evaluation response missing feedback")
	}

	evaluation.Correctness = clamp01(evaluation.Correctness)
	evaluation.Clarity = clamp01(evaluation.Clarity)
	evaluation.Confidence = clamp01(evaluation.Confidence)
	return evaluation, nil
}

func parseSuggestionResponse(content string) (Suggestion, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return Suggestion{}, err
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(raw), &suggestion); err != nil {
		return Suggestion{}, fmt.Errorf("parse suggestion json: %w", err)
	}
	return suggestion, nil
}

func parseGeneratedQuestion(content string) (GeneratedQuestion, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return GeneratedQuestion{}, err
	}

	var question GeneratedQuestion
	if err := json.Unmarshal([]byte(raw), &question); err != nil {
		return GeneratedQuestion{}, fmt.Errorf("parse generated question json: %w", err)
	}
	if question.QuestionText == "" {
		return GeneratedQuestion{}, fmt.Errorf("generator returned no question text")
	}
	if question.QuestionID == "" {
		question.QuestionID = NewQuestionID()
	}
	if len(question.ExpectedKeyPoints) == 0 {
		question.ExpectedKeyPoints = []string{"Concept understanding", "Technical details"}
	}
	return question, nil
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

package entities

// DailyChallenge is an open coding question with a reference solution.
type DailyChallenge struct {
	ID           string `json:"id"`
	Difficulty   string `json:"difficulty"`
	Question     string `json:"question"`
	QuestionCode string `json:"questionCode"`
	AnswerCode   string `json:"answerCode"`
}

// Tip is a short programming tip.
type Tip struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Tip      string `json:"tip"`
}

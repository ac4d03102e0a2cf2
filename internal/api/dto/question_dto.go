package dto

import "github.com/Chirag2510/QuizApp-React-DotNet/internal/domain"

// QuestionResponse is a quiz question without its answer.
type QuestionResponse struct {
	QnID      int64    `json:"qnId"`
	QnInWords string   `json:"qnInWords"`
	ImageName *string  `json:"imageName"`
	Options   []string `json:"options"`
}

// QuestionAnswerResponse adds the answer index.
type QuestionAnswerResponse struct {
	QuestionResponse
	Answer int `json:"answer"`
}

// Question is the full stored representation, used by get and update.
type Question struct {
	QnID      int64   `json:"qnId"`
	QnInWords string  `json:"qnInWords"`
	ImageName *string `json:"imageName"`
	Option1   string  `json:"option1"`
	Option2   string  `json:"option2"`
	Option3   string  `json:"option3"`
	Option4   string  `json:"option4"`
	Answer    int     `json:"answer"`
}

// NewQuestionResponse hides the answer.
func NewQuestionResponse(q domain.Question) QuestionResponse {
	return QuestionResponse{
		QnID:      q.ID,
		QnInWords: q.QnInWords,
		ImageName: q.ImageName,
		Options:   q.Options(),
	}
}

// NewQuestionAnswerResponse includes the answer.
func NewQuestionAnswerResponse(q domain.Question) QuestionAnswerResponse {
	return QuestionAnswerResponse{QuestionResponse: NewQuestionResponse(q), Answer: q.Answer}
}

// NewQuestion maps a stored question.
func NewQuestion(q domain.Question) Question {
	return Question{
		QnID:      q.ID,
		QnInWords: q.QnInWords,
		ImageName: q.ImageName,
		Option1:   q.Option1,
		Option2:   q.Option2,
		Option3:   q.Option3,
		Option4:   q.Option4,
		Answer:    q.Answer,
	}
}

// ToDomain converts the payload.
func (q Question) ToDomain() domain.Question {
	return domain.Question{
		ID:        q.QnID,
		QnInWords: q.QnInWords,
		ImageName: q.ImageName,
		Option1:   q.Option1,
		Option2:   q.Option2,
		Option3:   q.Option3,
		Option4:   q.Option4,
		Answer:    q.Answer,
	}
}

package dto

// --- Decks / Cards / Tags ---

type CreateDeckRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	ShuffleCards *bool   `json:"shuffle_cards"`
}

type UpdateDeckRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	ShuffleCards *bool   `json:"shuffle_cards"`
}

type CreateCardRequest struct {
	Front         string  `json:"front" binding:"required"`
	FrontType     *string `json:"front_type"`
	FrontLanguage *string `json:"front_language"`
	Back          string  `json:"back" binding:"required"`
	BackType      *string `json:"back_type"`
	BackLanguage  *string `json:"back_language"`
	Notes         *string `json:"notes"`
}

// UpdateCardRequest carries the full card content; partial updates are not
// supported, matching the editor's save-whole-card flow.
type UpdateCardRequest = CreateCardRequest

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- Quizzes / Questions / Choices ---

type CreateQuizRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      *string `json:"description"`
	ShuffleQuestions *bool   `json:"shuffle_questions"`
}

type UpdateQuizRequest = CreateQuizRequest

type CreateChoiceRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type CreateQuestionRequest struct {
	QuestionType    string                `json:"question_type" binding:"required,oneof=multiple_choice fill_in_blank"`
	Content         string                `json:"content" binding:"required"`
	ContentType     *string               `json:"content_type"`
	ContentLanguage *string               `json:"content_language"`
	CorrectAnswer   *string               `json:"correct_answer"`
	MultipleAnswers *bool                 `json:"multiple_answers"`
	Explanation     *string               `json:"explanation"`
	Choices         []CreateChoiceRequest `json:"choices" binding:"omitempty,dive"`
}

type UpdateQuestionRequest struct {
	QuestionType    string  `json:"question_type" binding:"required,oneof=multiple_choice fill_in_blank"`
	Content         string  `json:"content" binding:"required"`
	ContentType     *string `json:"content_type"`
	ContentLanguage *string `json:"content_language"`
	CorrectAnswer   *string `json:"correct_answer"`
	MultipleAnswers *bool   `json:"multiple_answers"`
	Explanation     *string `json:"explanation"`
}

type ReorderQuestionsRequest struct {
	QuestionIDs []string `json:"question_ids" binding:"required,min=1"`
}

type ReplaceChoicesRequest struct {
	Choices []CreateChoiceRequest `json:"choices" binding:"required,dive"`
}

// --- Attempts / Study sessions ---

type QuestionAnswer struct {
	QuestionID string `json:"question_id" binding:"required"`
	// Comma-separated choice ids for multiple choice, free text for
	// fill-in-blank.
	Answer string `json:"answer"`
}

type SubmitQuizRequest struct {
	Answers []QuestionAnswer `json:"answers" binding:"required,dive"`
}

type EndStudySessionRequest struct {
	CardsStudied int `json:"cards_studied" binding:"min=0"`
}

// --- Users ---

type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required"`
	Password *string `json:"password"`
	Avatar   *string `json:"avatar"`
}

type UpdateUserRequest struct {
	Name     string  `json:"name" binding:"required"`
	Password *string `json:"password"`
	Avatar   *string `json:"avatar"`
}

type LoginRequest struct {
	UserID   string  `json:"user_id" binding:"required"`
	Password *string `json:"password"`
}

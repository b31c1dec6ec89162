package dto

// Bundle DTOs describe the portable JSON form of a deck or quiz used by
// import/export. Bundles carry no local ids, remote ids, or sync metadata;
// import mints fresh identifiers and the imported entity starts local_only.

type CardBundle struct {
	Front         string   `json:"front" binding:"required"`
	FrontType     string   `json:"front_type"`
	FrontLanguage *string  `json:"front_language,omitempty"`
	Back          string   `json:"back" binding:"required"`
	BackType      string   `json:"back_type"`
	BackLanguage  *string  `json:"back_language,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

type DeckBundle struct {
	Name         string       `json:"name" binding:"required"`
	Description  *string      `json:"description,omitempty"`
	ShuffleCards bool         `json:"shuffle_cards"`
	Cards        []CardBundle `json:"cards"`
	Tags         []string     `json:"tags,omitempty"`
}

type ChoiceBundle struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionBundle struct {
	QuestionType    string         `json:"question_type" binding:"required"`
	Content         string         `json:"content" binding:"required"`
	ContentType     string         `json:"content_type"`
	ContentLanguage *string        `json:"content_language,omitempty"`
	CorrectAnswer   *string        `json:"correct_answer,omitempty"`
	MultipleAnswers bool           `json:"multiple_answers"`
	Explanation     *string        `json:"explanation,omitempty"`
	Position        int            `json:"position"`
	Choices         []ChoiceBundle `json:"choices"`
}

type QuizBundle struct {
	Name             string           `json:"name" binding:"required"`
	Description      *string          `json:"description,omitempty"`
	ShuffleQuestions bool             `json:"shuffle_questions"`
	Questions        []QuestionBundle `json:"questions"`
}

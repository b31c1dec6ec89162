package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/service"
)

type QuizController struct {
	quizSvc     service.QuizService
	questionSvc service.QuestionService
	quizTagSvc  service.QuizTagService
	attemptSvc  service.AttemptService
	statsSvc    service.StatsService
	bundleSvc   service.BundleService
	userSvc     service.UserService
}

func NewQuizController(
	quizSvc service.QuizService,
	questionSvc service.QuestionService,
	quizTagSvc service.QuizTagService,
	attemptSvc service.AttemptService,
	statsSvc service.StatsService,
	bundleSvc service.BundleService,
	userSvc service.UserService,
) *QuizController {
	return &QuizController{
		quizSvc:     quizSvc,
		questionSvc: questionSvc,
		quizTagSvc:  quizTagSvc,
		attemptSvc:  attemptSvc,
		statsSvc:    statsSvc,
		bundleSvc:   bundleSvc,
		userSvc:     userSvc,
	}
}

func (ctrl *QuizController) RegisterRoutes(api *gin.RouterGroup) {
	quizzes := api.Group("/quizzes")
	quizzes.POST("", ctrl.CreateQuiz)
	quizzes.GET("", ctrl.GetAllQuizzes)
	quizzes.POST("/import", ctrl.ImportQuiz)
	quizzes.GET("/:id", ctrl.GetQuiz)
	quizzes.PUT("/:id", ctrl.UpdateQuiz)
	quizzes.DELETE("/:id", ctrl.DeleteQuiz)
	quizzes.GET("/:id/export", ctrl.ExportQuiz)
	quizzes.GET("/:id/stats", ctrl.GetQuizStats)

	quizzes.POST("/:id/questions", ctrl.CreateQuestion)
	quizzes.GET("/:id/questions", ctrl.GetQuestions)
	quizzes.PUT("/:id/questions/reorder", ctrl.ReorderQuestions)

	quizzes.POST("/:id/tags", ctrl.CreateQuizTag)
	quizzes.GET("/:id/tags", ctrl.GetQuizTags)
	quizzes.GET("/:id/tags/:tagName", ctrl.GetQuizTagByName)
	quizzes.DELETE("/:id/tags/:tagId", ctrl.DeleteQuizTag)

	quizzes.POST("/:id/attempts", ctrl.StartAttempt)
	quizzes.GET("/:id/attempts", ctrl.GetAttempts)

	questions := api.Group("/questions")
	questions.GET("/:id", ctrl.GetQuestion)
	questions.PUT("/:id", ctrl.UpdateQuestion)
	questions.DELETE("/:id", ctrl.DeleteQuestion)
	questions.PUT("/:id/choices", ctrl.ReplaceChoices)
	questions.GET("/:id/tags", ctrl.GetQuestionTags)
	questions.POST("/:id/tags/:tagId", ctrl.TagQuestion)
	questions.DELETE("/:id/tags/:tagId", ctrl.UntagQuestion)

	attempts := api.Group("/attempts")
	attempts.GET("/:id", ctrl.GetAttempt)
	attempts.POST("/:id/submit", ctrl.SubmitAttempt)
}

func (ctrl *QuizController) CreateQuiz(c *gin.Context) {
	user := activeUser(c, ctrl.userSvc)
	if user == nil {
		return
	}
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	quiz, err := ctrl.quizSvc.Create(user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (ctrl *QuizController) GetAllQuizzes(c *gin.Context) {
	user := activeUser(c, ctrl.userSvc)
	if user == nil {
		return
	}
	quizzes, err := ctrl.quizSvc.GetAll(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (ctrl *QuizController) GetQuiz(c *gin.Context) {
	if c.Query("with_questions") == "true" {
		quiz, err := ctrl.quizSvc.GetWithQuestions(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, quiz)
		return
	}
	quiz, err := ctrl.quizSvc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (ctrl *QuizController) UpdateQuiz(c *gin.Context) {
	var req dto.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	quiz, err := ctrl.quizSvc.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (ctrl *QuizController) DeleteQuiz(c *gin.Context) {
	if err := ctrl.quizSvc.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *QuizController) ExportQuiz(c *gin.Context) {
	bundle, err := ctrl.bundleSvc.ExportQuiz(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (ctrl *QuizController) ImportQuiz(c *gin.Context) {
	user := activeUser(c, ctrl.userSvc)
	if user == nil {
		return
	}
	var bundle dto.QuizBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		bindError(c, err)
		return
	}
	quiz, err := ctrl.bundleSvc.ImportQuiz(user.ID, bundle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (ctrl *QuizController) GetQuizStats(c *gin.Context) {
	stats, err := ctrl.statsSvc.QuizStats(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// --- Questions ---

func (ctrl *QuizController) CreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	question, err := ctrl.questionSvc.Create(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (ctrl *QuizController) GetQuestions(c *gin.Context) {
	questions, err := ctrl.questionSvc.GetForQuiz(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (ctrl *QuizController) GetQuestion(c *gin.Context) {
	question, err := ctrl.questionSvc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (ctrl *QuizController) UpdateQuestion(c *gin.Context) {
	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	question, err := ctrl.questionSvc.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (ctrl *QuizController) DeleteQuestion(c *gin.Context) {
	if err := ctrl.questionSvc.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *QuizController) ReorderQuestions(c *gin.Context) {
	var req dto.ReorderQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := ctrl.questionSvc.Reorder(c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *QuizController) ReplaceChoices(c *gin.Context) {
	var req dto.ReplaceChoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	question, err := ctrl.questionSvc.ReplaceChoices(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// --- Quiz tags ---

func (ctrl *QuizController) CreateQuizTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tag, err := ctrl.quizTagSvc.Create(c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (ctrl *QuizController) GetQuizTags(c *gin.Context) {
	tags, err := ctrl.quizTagSvc.GetForQuiz(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (ctrl *QuizController) GetQuizTagByName(c *gin.Context) {
	tag, err := ctrl.quizTagSvc.GetByName(c.Param("id"), c.Param("tagName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (ctrl *QuizController) DeleteQuizTag(c *gin.Context) {
	if err := ctrl.quizTagSvc.Delete(c.Param("tagId"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *QuizController) GetQuestionTags(c *gin.Context) {
	tags, err := ctrl.quizTagSvc.GetForQuestion(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (ctrl *QuizController) TagQuestion(c *gin.Context) {
	if err := ctrl.quizTagSvc.AddToQuestion(c.Param("id"), c.Param("tagId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *QuizController) UntagQuestion(c *gin.Context) {
	if err := ctrl.quizTagSvc.RemoveFromQuestion(c.Param("id"), c.Param("tagId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Attempts ---

func (ctrl *QuizController) StartAttempt(c *gin.Context) {
	attempt, err := ctrl.attemptSvc.Start(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

func (ctrl *QuizController) GetAttempts(c *gin.Context) {
	attempts, err := ctrl.attemptSvc.GetForQuiz(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

func (ctrl *QuizController) GetAttempt(c *gin.Context) {
	attempt, err := ctrl.attemptSvc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

func (ctrl *QuizController) SubmitAttempt(c *gin.Context) {
	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	attempt, err := ctrl.attemptSvc.Submit(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

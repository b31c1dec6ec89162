package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/service"
)

type DeckController struct {
	deckSvc    service.DeckService
	cardSvc    service.CardService
	tagSvc     service.TagService
	bundleSvc  service.BundleService
	sessionSvc service.StudySessionService
	statsSvc   service.StatsService
	userSvc    service.UserService
}

func NewDeckController(
	deckSvc service.DeckService,
	cardSvc service.CardService,
	tagSvc service.TagService,
	bundleSvc service.BundleService,
	sessionSvc service.StudySessionService,
	statsSvc service.StatsService,
	userSvc service.UserService,
) *DeckController {
	return &DeckController{
		deckSvc:    deckSvc,
		cardSvc:    cardSvc,
		tagSvc:     tagSvc,
		bundleSvc:  bundleSvc,
		sessionSvc: sessionSvc,
		statsSvc:   statsSvc,
		userSvc:    userSvc,
	}
}

func (ctrl *DeckController) RegisterRoutes(api *gin.RouterGroup) {
	decks := api.Group("/decks")
	decks.POST("", ctrl.CreateDeck)
	decks.GET("", ctrl.GetAllDecks)
	decks.POST("/import", ctrl.ImportDeck)
	decks.GET("/:id", ctrl.GetDeck)
	decks.PUT("/:id", ctrl.UpdateDeck)
	decks.DELETE("/:id", ctrl.DeleteDeck)
	decks.GET("/:id/export", ctrl.ExportDeck)
	decks.GET("/:id/stats", ctrl.GetDeckStats)

	decks.POST("/:id/cards", ctrl.CreateCard)
	decks.GET("/:id/cards", ctrl.GetCards)
	decks.GET("/:id/cards/:cardId", ctrl.GetCard)
	decks.PUT("/:id/cards/:cardId", ctrl.UpdateCard)
	decks.DELETE("/:id/cards/:cardId", ctrl.DeleteCard)

	decks.POST("/:id/tags", ctrl.CreateTag)
	decks.GET("/:id/tags", ctrl.GetTags)
	decks.GET("/:id/tags/:tagName", ctrl.GetTagByName)
	decks.DELETE("/:id/tags/:tagId", ctrl.DeleteTag)
	decks.GET("/:id/cards/:cardId/tags", ctrl.GetCardTags)
	decks.POST("/:id/cards/:cardId/tags/:tagId", ctrl.TagCard)
	decks.DELETE("/:id/cards/:cardId/tags/:tagId", ctrl.UntagCard)

	decks.POST("/:id/study-sessions", ctrl.StartStudySession)
	sessions := api.Group("/study-sessions")
	sessions.GET("/:id", ctrl.GetStudySession)
	sessions.POST("/:id/end", ctrl.EndStudySession)
}

func (ctrl *DeckController) CreateDeck(c *gin.Context) {
	user := activeUser(c, ctrl.userSvc)
	if user == nil {
		return
	}
	var req dto.CreateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	deck, err := ctrl.deckSvc.Create(user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deck)
}

func (ctrl *DeckController) GetAllDecks(c *gin.Context) {
	user := activeUser(c, ctrl.userSvc)
	if user == nil {
		return
	}
	decks, err := ctrl.deckSvc.GetAll(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decks)
}

func (ctrl *DeckController) GetDeck(c *gin.Context) {
	deck, err := ctrl.deckSvc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deck)
}

func (ctrl *DeckController) UpdateDeck(c *gin.Context) {
	var req dto.UpdateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	deck, err := ctrl.deckSvc.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deck)
}

func (ctrl *DeckController) DeleteDeck(c *gin.Context) {
	if err := ctrl.deckSvc.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *DeckController) ExportDeck(c *gin.Context) {
	bundle, err := ctrl.bundleSvc.ExportDeck(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (ctrl *DeckController) ImportDeck(c *gin.Context) {
	user := activeUser(c, ctrl.userSvc)
	if user == nil {
		return
	}
	var bundle dto.DeckBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		bindError(c, err)
		return
	}
	deck, err := ctrl.bundleSvc.ImportDeck(user.ID, bundle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deck)
}

func (ctrl *DeckController) GetDeckStats(c *gin.Context) {
	stats, err := ctrl.statsSvc.DeckStudyStats(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// --- Cards ---

func (ctrl *DeckController) CreateCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	card, err := ctrl.cardSvc.Create(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (ctrl *DeckController) GetCards(c *gin.Context) {
	cards, err := ctrl.cardSvc.GetForDeck(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (ctrl *DeckController) GetCard(c *gin.Context) {
	card, err := ctrl.cardSvc.Get(c.Param("cardId"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (ctrl *DeckController) UpdateCard(c *gin.Context) {
	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	card, err := ctrl.cardSvc.Update(c.Param("cardId"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (ctrl *DeckController) DeleteCard(c *gin.Context) {
	if err := ctrl.cardSvc.Delete(c.Param("cardId"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Tags ---

func (ctrl *DeckController) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tag, err := ctrl.tagSvc.Create(c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (ctrl *DeckController) GetTags(c *gin.Context) {
	tags, err := ctrl.tagSvc.GetForDeck(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (ctrl *DeckController) GetTagByName(c *gin.Context) {
	tag, err := ctrl.tagSvc.GetByName(c.Param("id"), c.Param("tagName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (ctrl *DeckController) DeleteTag(c *gin.Context) {
	if err := ctrl.tagSvc.Delete(c.Param("tagId"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *DeckController) GetCardTags(c *gin.Context) {
	tags, err := ctrl.tagSvc.GetForCard(c.Param("cardId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (ctrl *DeckController) TagCard(c *gin.Context) {
	if err := ctrl.tagSvc.AddToCard(c.Param("id"), c.Param("cardId"), c.Param("tagId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *DeckController) UntagCard(c *gin.Context) {
	if err := ctrl.tagSvc.RemoveFromCard(c.Param("id"), c.Param("cardId"), c.Param("tagId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Study sessions ---

func (ctrl *DeckController) StartStudySession(c *gin.Context) {
	session, err := ctrl.sessionSvc.Start(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (ctrl *DeckController) EndStudySession(c *gin.Context) {
	var req dto.EndStudySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	session, err := ctrl.sessionSvc.End(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (ctrl *DeckController) GetStudySession(c *gin.Context) {
	session, err := ctrl.sessionSvc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

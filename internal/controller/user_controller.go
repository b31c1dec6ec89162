package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/kioku/internal/dto"
	"github.com/lshigami/kioku/internal/service"
)

type UserController struct {
	userSvc service.UserService
}

func NewUserController(userSvc service.UserService) *UserController {
	return &UserController{userSvc: userSvc}
}

func (ctrl *UserController) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.POST("", ctrl.CreateUser)
	users.GET("", ctrl.GetAllUsers)
	users.GET("/:id", ctrl.GetUser)
	users.PUT("/:id", ctrl.UpdateUser)
	users.DELETE("/:id", ctrl.DeleteUser)

	auth := api.Group("/auth")
	auth.POST("/login", ctrl.Login)
	auth.POST("/logout", ctrl.Logout)
	auth.GET("/me", ctrl.Me)
}

func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := ctrl.userSvc.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	users, err := ctrl.userSvc.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctrl *UserController) GetUser(c *gin.Context) {
	user, err := ctrl.userSvc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := ctrl.userSvc.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) DeleteUser(c *gin.Context) {
	if err := ctrl.userSvc.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *UserController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := ctrl.userSvc.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) Logout(c *gin.Context) {
	if err := ctrl.userSvc.Logout(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *UserController) Me(c *gin.Context) {
	user := activeUser(c, ctrl.userSvc)
	if user == nil {
		return
	}
	c.JSON(http.StatusOK, user)
}

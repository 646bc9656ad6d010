// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"blogapp/internal/delivery/http/middleware"
	"blogapp/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	BlogHandler    *handler.BlogHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	blogHandler    *handler.BlogHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		blogHandler:    params.BlogHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/oauth", r.authHandler.OAuthLogin)
	}

	// Profile routes that require authentication
	profileGroup := e.Group("/auth/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.authHandler.GetProfile)
		profileGroup.PUT("", r.authHandler.UpdateProfile)
	}

	// Public blog routes; a valid bearer token personalizes like flags but
	// is never required here.
	blogGroup := e.Group("/blogs")
	blogGroup.Use(r.authMiddleware.OptionalAuthenticate)
	{
		blogGroup.GET("", r.blogHandler.List)
		blogGroup.GET("/categories", r.blogHandler.Categories)
		blogGroup.GET("/:id", r.blogHandler.Get)
		blogGroup.GET("/:id/comments", r.blogHandler.ListComments)
	}

	// Blog routes that require authentication. Echo matches the static
	// "/blogs/my" segment ahead of the ":id" parameter route.
	blogAuthGroup := e.Group("/blogs")
	blogAuthGroup.Use(r.authMiddleware.Authenticate)
	{
		blogAuthGroup.POST("", r.blogHandler.Create)
		blogAuthGroup.GET("/my", r.blogHandler.ListMine)
		blogAuthGroup.PUT("/:id", r.blogHandler.Update)
		blogAuthGroup.DELETE("/:id", r.blogHandler.Delete)
		blogAuthGroup.POST("/:id/like", r.blogHandler.ToggleLike)
		blogAuthGroup.POST("/:id/comments", r.blogHandler.AddComment)
		blogAuthGroup.DELETE("/:id/comments/:commentId", r.blogHandler.DeleteComment)
	}
}

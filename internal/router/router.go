package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openkitchen/recipeshare/internal/api"
	"github.com/openkitchen/recipeshare/internal/middleware"
	"github.com/openkitchen/recipeshare/internal/session"
)

// Setup configures the application routes
func Setup(
	store session.Store,
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	searchHandler *api.SearchHandler,
	templatesGlob string,
) *gin.Engine {
	router := gin.Default()
	router.LoadHTMLGlob(templatesGlob)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.Use(middleware.CurrentUser(store))

	router.GET("/health", api.HealthCheck)

	router.GET("/", recipeHandler.Home)

	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/signup", authHandler.ShowSignup)
	router.POST("/signup", authHandler.Signup)
	router.GET("/account", middleware.RequireAuth(store), authHandler.Account)
	router.GET("/logout", authHandler.Logout)

	router.GET("/create_recipe", middleware.RequireAuth(store), recipeHandler.ShowCreate)
	router.POST("/create_recipe", middleware.RequireAuth(store), recipeHandler.Create)

	router.GET("/search", searchHandler.ShowSearch)
	router.POST("/search", searchHandler.Search)

	router.GET("/recipe/:id", recipeHandler.Show)

	// Edit and delete do their own ownership checks: the refusal message and
	// redirect target differ from the plain login gate.
	router.GET("/edit_recipe/:id", recipeHandler.ShowEdit)
	router.POST("/edit_recipe/:id", recipeHandler.Edit)
	router.GET("/delete_recipe/:id", recipeHandler.Delete)

	return router
}

package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openkitchen/recipeshare/internal/middleware"
	"github.com/openkitchen/recipeshare/internal/service"
	"github.com/openkitchen/recipeshare/internal/session"
)

type RecipeHandler struct {
	recipes  *service.RecipeService
	sessions session.Store
}

func NewRecipeHandler(recipes *service.RecipeService, sessions session.Store) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, sessions: sessions}
}

// Home renders the feed of up to 15 randomly chosen recipes.
func (h *RecipeHandler) Home(c *gin.Context) {
	recipes, err := h.recipes.RandomFeed(c.Request.Context())
	if err != nil {
		log.Printf("load feed: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	render(c, h.sessions, "home.html", gin.H{"Results": recipes})
}

// ShowCreate renders the recipe creation form.
func (h *RecipeHandler) ShowCreate(c *gin.Context) {
	render(c, h.sessions, "create_recipe.html", nil)
}

// Create inserts a new recipe owned by the logged-in user.
func (h *RecipeHandler) Create(c *gin.Context) {
	email, _ := middleware.UserEmail(c)

	recipe, err := h.recipes.Create(c.Request.Context(), email, recipeForm(c))
	if err != nil {
		if errors.Is(err, service.ErrIngredientMismatch) {
			middleware.Flash(c, h.sessions, "Error: Each ingredient must have a quantity.")
			c.Redirect(http.StatusFound, "/create_recipe")
			return
		}
		log.Printf("create recipe: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	middleware.Flash(c, h.sessions, "Recipe created successfully.")
	c.Redirect(http.StatusFound, "/recipe/"+strconv.FormatUint(uint64(recipe.ID), 10))
}

// Show renders a recipe's detail page with its ingredients in order. The
// owner additionally sees edit controls.
func (h *RecipeHandler) Show(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	recipe, ingredients, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		h.recipeLookupFailed(c, err)
		return
	}

	email, loggedIn := middleware.UserEmail(c)
	owned := loggedIn && email == recipe.UserEmail

	render(c, h.sessions, "recipe.html", gin.H{
		"Recipe":      recipe,
		"Ingredients": ingredients,
		"Owned":       owned,
	})
}

// ShowEdit renders the pre-filled edit form. Only the owner may see it.
func (h *RecipeHandler) ShowEdit(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	recipe, ingredients, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		h.recipeLookupFailed(c, err)
		return
	}
	if !h.requireOwner(c, recipe.UserEmail, "You can't edit this recipe.") {
		return
	}

	render(c, h.sessions, "edit_recipe.html", gin.H{
		"Recipe":      recipe,
		"Ingredients": ingredients,
	})
}

// Edit performs the full overwrite: scalar fields replaced, ingredient set
// deleted and reinserted from the submitted form.
func (h *RecipeHandler) Edit(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	recipe, _, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		h.recipeLookupFailed(c, err)
		return
	}
	if !h.requireOwner(c, recipe.UserEmail, "You can't edit this recipe.") {
		return
	}

	if err := h.recipes.Update(c.Request.Context(), id, recipeForm(c)); err != nil {
		if errors.Is(err, service.ErrIngredientMismatch) {
			middleware.Flash(c, h.sessions, "Error: Each ingredient must have a quantity.")
			c.Redirect(http.StatusFound, "/edit_recipe/"+c.Param("id"))
			return
		}
		log.Printf("update recipe %d: %v", id, err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	middleware.Flash(c, h.sessions, "Recipe updated successfully.")
	c.Redirect(http.StatusFound, "/recipe/"+c.Param("id"))
}

// Delete removes a recipe and everything attached to it. Owner only.
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	recipe, _, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		h.recipeLookupFailed(c, err)
		return
	}
	if !h.requireOwner(c, recipe.UserEmail, "You don't own this recipe.") {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		log.Printf("delete recipe %d: %v", id, err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	middleware.Flash(c, h.sessions, "Recipe deleted successfully.")
	c.Redirect(http.StatusFound, "/")
}

func (h *RecipeHandler) recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Flash(c, h.sessions, "Recipe not found.")
		c.Redirect(http.StatusFound, "/")
		return 0, false
	}
	return uint(id), true
}

func (h *RecipeHandler) recipeLookupFailed(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.Flash(c, h.sessions, "Recipe not found.")
		c.Redirect(http.StatusFound, "/")
		return
	}
	log.Printf("load recipe: %v", err)
	c.String(http.StatusInternalServerError, "internal error")
}

// requireOwner flashes and redirects home unless the viewer owns the
// resource. Anonymous viewers and other users are refused identically.
func (h *RecipeHandler) requireOwner(c *gin.Context, ownerEmail, message string) bool {
	email, loggedIn := middleware.UserEmail(c)
	if !loggedIn || email != ownerEmail {
		middleware.Flash(c, h.sessions, message)
		c.Redirect(http.StatusFound, "/")
		return false
	}
	return true
}

func recipeForm(c *gin.Context) service.RecipeInput {
	return service.RecipeInput{
		Name:       c.PostForm("name"),
		Type:       c.PostForm("type"),
		Photo:      c.PostForm("image"),
		Method:     c.PostForm("instructions"),
		Items:      c.PostFormArray("items"),
		Quantities: c.PostFormArray("quantities"),
	}
}

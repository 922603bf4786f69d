package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openkitchen/recipeshare/internal/service"
	"github.com/openkitchen/recipeshare/internal/session"
)

type SearchHandler struct {
	search   *service.SearchService
	sessions session.Store
}

func NewSearchHandler(search *service.SearchService, sessions session.Store) *SearchHandler {
	return &SearchHandler{search: search, sessions: sessions}
}

// ShowSearch renders the empty advanced search form.
func (h *SearchHandler) ShowSearch(c *gin.Context) {
	render(c, h.sessions, "search.html", nil)
}

// Search parses whichever filter fields were filled in and runs the query.
// An empty result set renders as "no results", distinct from the blank form.
func (h *SearchHandler) Search(c *gin.Context) {
	filter, err := parseSearchForm(c)
	if err != nil {
		render(c, h.sessions, "search.html", gin.H{"Error": err.Error()})
		return
	}

	results, err := h.search.Search(c.Request.Context(), filter)
	if err != nil {
		log.Printf("search: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	render(c, h.sessions, "search.html", gin.H{
		"Searched": true,
		"Results":  results,
	})
}

func parseSearchForm(c *gin.Context) (service.SearchFilter, error) {
	filter := service.SearchFilter{
		Name:       c.PostForm("name"),
		Type:       c.PostForm("type"),
		Email:      c.PostForm("email"),
		Ingredient: c.PostForm("ingredients"),
	}

	if v := c.PostForm("id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, errInvalidSearchField("id")
		}
		u := uint(id)
		filter.ID = &u
	}
	if v := c.PostForm("min_rating"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, errInvalidSearchField("minimum rating")
		}
		filter.MinRating = &min
	}
	if v := c.PostForm("max_rating"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, errInvalidSearchField("maximum rating")
		}
		filter.MaxRating = &max
	}
	return filter, nil
}

type errInvalidSearchField string

func (e errInvalidSearchField) Error() string {
	return "Invalid " + string(e) + " value."
}

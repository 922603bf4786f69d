package service

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// SearchFilter is a sparse set of search criteria. Zero-value fields are not
// applied; supplied fields combine conjunctively.
type SearchFilter struct {
	Name       string   // substring of recipe name
	ID         *uint    // exact recipe id
	Type       string   // substring of recipe type
	Email      string   // exact owner email
	MinRating  *float64 // inclusive lower bound on average stars
	MaxRating  *float64 // inclusive upper bound on average stars
	Ingredient string   // substring of any ingredient name in the recipe
}

// SearchResult is one matching recipe together with its average rating.
// AvgStars is nil for recipes that have never been rated.
type SearchResult struct {
	ID         uint      `json:"id"`
	Photo      string    `json:"photo"`
	Name       string    `json:"name"`
	UserEmail  string    `json:"user_email"`
	Type       string    `json:"type"`
	DatePosted time.Time `json:"date_posted"`
	Method     string    `json:"method"`
	AvgStars   *float64  `json:"avg_stars"`
}

// SearchService runs the advanced search query.
type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search builds and executes one statement: recipes left-joined against a
// per-recipe AVG(stars) subquery, filtered by whichever criteria were
// supplied. All values are bound parameters. A recipe with no ratings still
// matches unless a rating bound is set (NULL fails both comparisons).
// Substring filters are case-insensitive on every dialect; results are
// ordered by recipe id ascending so output is deterministic.
func (s *SearchService) Search(ctx context.Context, f SearchFilter) ([]SearchResult, error) {
	q := sq.Select(
		"recipes.id", "recipes.photo", "recipes.name", "recipes.user_email",
		"recipes.type", "recipes.date_posted", "recipes.method", "avg_ratings.avg_stars",
	).
		From("recipes").
		LeftJoin("(SELECT recipe_id, AVG(stars) AS avg_stars FROM ratings GROUP BY recipe_id) AS avg_ratings ON recipes.id = avg_ratings.recipe_id").
		OrderBy("recipes.id")

	if f.Name != "" {
		q = q.Where("LOWER(recipes.name) LIKE LOWER(?)", contains(f.Name))
	}
	if f.ID != nil {
		q = q.Where(sq.Eq{"recipes.id": *f.ID})
	}
	if f.Type != "" {
		q = q.Where("LOWER(recipes.type) LIKE LOWER(?)", contains(f.Type))
	}
	if f.Email != "" {
		q = q.Where(sq.Eq{"recipes.user_email": f.Email})
	}
	if f.MinRating != nil {
		q = q.Where("avg_ratings.avg_stars >= ?", *f.MinRating)
	}
	if f.MaxRating != nil {
		q = q.Where("avg_ratings.avg_stars <= ?", *f.MaxRating)
	}
	if f.Ingredient != "" {
		q = q.Where(
			"recipes.id IN (SELECT recipe_id FROM ingredients WHERE LOWER(name) LIKE LOWER(?))",
			contains(f.Ingredient),
		)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	var results []SearchResult
	if err := s.db.WithContext(ctx).Raw(sqlStr, args...).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func contains(v string) string { return "%" + v + "%" }

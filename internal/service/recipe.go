package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"gorm.io/gorm"

	"github.com/openkitchen/recipeshare/internal/models"
)

// ErrIngredientMismatch is returned when the submitted ingredient names and
// quantities do not pair up one to one.
var ErrIngredientMismatch = errors.New("each ingredient must have a quantity")

// FeedSize caps the number of recipes on the home feed.
const FeedSize = 15

// RecipeInput carries the form fields for a recipe create or full-overwrite
// edit. Items and Quantities are parallel slices in submission order.
type RecipeInput struct {
	Name       string
	Type       string
	Photo      string
	Method     string
	Items      []string
	Quantities []string
}

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Create inserts a recipe and its ingredients in one transaction. Ingredient
// positions follow submission order starting at 0.
func (s *RecipeService) Create(ctx context.Context, userEmail string, in RecipeInput) (*models.Recipe, error) {
	if len(in.Items) != len(in.Quantities) {
		return nil, ErrIngredientMismatch
	}

	recipe := models.Recipe{
		UserEmail:  userEmail,
		Name:       in.Name,
		Type:       in.Type,
		Photo:      in.Photo,
		Method:     in.Method,
		DatePosted: time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		for i := range in.Items {
			ing := models.Ingredient{
				RecipeID: recipe.ID,
				Name:     in.Items[i],
				Quantity: in.Quantities[i],
				Position: i,
			}
			if err := tx.Create(&ing).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Get returns a recipe and its ingredients sorted by position.
func (s *RecipeService) Get(ctx context.Context, id uint) (*models.Recipe, []models.Ingredient, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, nil, err
	}

	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).
		Where("recipe_id = ?", id).
		Order("position").
		Find(&ingredients).Error; err != nil {
		return nil, nil, err
	}
	return &recipe, ingredients, nil
}

// Update overwrites a recipe's scalar fields and replaces all of its
// ingredients. The old ingredient set is deleted and the submitted one
// reinserted with positions 0..M-1, all inside one transaction so readers
// never see the recipe without ingredients.
func (s *RecipeService) Update(ctx context.Context, id uint, in RecipeInput) error {
	if len(in.Items) != len(in.Quantities) {
		return ErrIngredientMismatch
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return err
		}

		// Map form so blank fields still overwrite; a struct update would
		// skip zero values.
		updates := map[string]interface{}{
			"name":   in.Name,
			"type":   in.Type,
			"photo":  in.Photo,
			"method": in.Method,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Ingredient{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		for i := range in.Items {
			ing := models.Ingredient{
				RecipeID: id,
				Name:     in.Items[i],
				Quantity: in.Quantities[i],
				Position: i,
			}
			if err := tx.Create(&ing).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a recipe along with its ingredients and ratings.
func (s *RecipeService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Ingredient{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Rating{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// RandomFeed returns up to FeedSize recipes sampled without replacement from
// the recipes that actually exist, in random order. An empty table yields an
// empty feed.
func (s *RecipeService) RandomFeed(ctx context.Context) ([]models.Recipe, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if len(ids) > FeedSize {
		ids = ids[:FeedSize]
	}

	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}

	// Find does not preserve the sampled order; restore it.
	byID := make(map[uint]models.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}
	ordered := make([]models.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

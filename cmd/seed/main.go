package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openkitchen/recipeshare/config"
	"github.com/openkitchen/recipeshare/internal/database"
	"github.com/openkitchen/recipeshare/internal/models"
)

// Seeds the database with a small sample dataset for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	log.Println("Seed data inserted")
}

func seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Email: "bob@example.com", Username: "bob", PasswordHash: string(hash)},
		{Email: "charlie@example.com", Username: "charlie", PasswordHash: string(hash)},
		{Email: "emma@example.com", Username: "emma", PasswordHash: string(hash)},
		{Email: "frank@example.com", Username: "frank", PasswordHash: string(hash)},
	}

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	recipes := []struct {
		recipe      models.Recipe
		ingredients []models.Ingredient
	}{
		{
			recipe: models.Recipe{
				UserEmail:  "bob@example.com",
				Name:       "Baked Ziti",
				Type:       "Italian",
				DatePosted: date,
				Method:     "1. Preheat oven to 350F.\n2. Cook pasta according to directions.\n3. Mix pasta with sauce and cheese.\n4. Bake for 20 minutes.",
			},
			ingredients: []models.Ingredient{
				{Name: "Ziti pasta", Quantity: "1 box", Position: 0},
				{Name: "Pasta sauce", Quantity: "2 cups", Position: 1},
				{Name: "Mozzarella cheese", Quantity: "1 oz", Position: 2},
			},
		},
		{
			recipe: models.Recipe{
				UserEmail:  "charlie@example.com",
				Name:       "Chicken Tikka Masala",
				Type:       "Indian",
				DatePosted: date,
				Method:     "1. Marinate chicken in yogurt and spices for 1 hour.\n2. Cook chicken in a skillet.\n3. Simmer chicken in spiced tomato cream sauce.\n4. Serve with rice.",
			},
			ingredients: []models.Ingredient{
				{Name: "Chicken", Quantity: "1 lb", Position: 0},
				{Name: "Yogurt", Quantity: "1 cup", Position: 1},
				{Name: "Garam masala", Quantity: "2 tsp", Position: 2},
				{Name: "Tomato puree", Quantity: "1 cup", Position: 3},
				{Name: "Rice", Quantity: "2 cups", Position: 4},
			},
		},
		{
			recipe: models.Recipe{
				UserEmail:  "emma@example.com",
				Name:       "Sushi Rolls",
				Type:       "Japanese",
				DatePosted: date,
				Method:     "1. Cook sushi rice.\n2. Lay seaweed on bamboo mat.\n3. Spread rice, add fillings, and roll tightly.\n4. Slice into pieces.",
			},
			ingredients: []models.Ingredient{
				{Name: "Sushi rice", Quantity: "1 cup", Position: 0},
				{Name: "Seaweed sheets", Quantity: "5 sheets", Position: 1},
				{Name: "Cucumber", Quantity: "1, julienned", Position: 2},
				{Name: "Avocado", Quantity: "1, sliced", Position: 3},
			},
		},
		{
			recipe: models.Recipe{
				UserEmail:  "frank@example.com",
				Name:       "Tacos",
				Type:       "Mexican",
				DatePosted: date,
				Method:     "1. Cook ground beef with taco seasoning.\n2. Warm tortillas.\n3. Fill tortillas with meat and toppings of choice.\n4. Serve immediately.",
			},
			ingredients: []models.Ingredient{
				{Name: "Ground beef", Quantity: "1 lb", Position: 0},
				{Name: "Taco seasoning", Quantity: "1 packet", Position: 1},
				{Name: "Tortillas", Quantity: "6 small", Position: 2},
				{Name: "Cheddar cheese", Quantity: "1 cup, shredded", Position: 3},
			},
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
		}
		for i := range recipes {
			if err := tx.Create(&recipes[i].recipe).Error; err != nil {
				return err
			}
			for j := range recipes[i].ingredients {
				recipes[i].ingredients[j].RecipeID = recipes[i].recipe.ID
				if err := tx.Create(&recipes[i].ingredients[j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

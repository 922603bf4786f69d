package models

import "time"

type Recipe struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserEmail  string    `gorm:"size:255;not null;index" json:"user_email"`
	Name       string    `gorm:"size:255;not null;index" json:"name"`
	DatePosted time.Time `gorm:"not null" json:"date_posted"`
	Type       string    `gorm:"size:50;not null;index" json:"type"`
	Photo      string    `gorm:"size:512" json:"photo"`
	Method     string    `gorm:"type:text;not null" json:"method"`
}

func (Recipe) TableName() string { return "recipes" }

// Ingredient belongs to exactly one recipe. Position is the display order
// within that recipe, contiguous from 0; it is a sort key, not an identifier.
type Ingredient struct {
	RecipeID uint   `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	Name     string `gorm:"primaryKey;size:255" json:"name"`
	Quantity string `gorm:"size:100;not null" json:"quantity"`
	Position int    `gorm:"not null" json:"position"`
}

func (Ingredient) TableName() string { return "ingredients" }

// Rating is one user's star rating of one recipe. It is only ever read in
// aggregate (per-recipe average) by search.
type Rating struct {
	RecipeID    uint   `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	UserEmail   string `gorm:"primaryKey;size:255" json:"user_email"`
	Stars       int    `gorm:"not null" json:"stars"`
	Description string `gorm:"type:text" json:"description"`
}

func (Rating) TableName() string { return "ratings" }

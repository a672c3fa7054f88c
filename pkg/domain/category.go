package domain

import (
	"fmt"
	"strings"
)

// Category is a fixed topic used to scope the headline prompt and the navigation
type Category string

// known categories, in navigation order
const (
	CategoryGeneral   Category = "general"
	CategoryPolitics  Category = "politics"
	CategoryEconomy   Category = "economy"
	CategorySports    Category = "sports"
	CategoryWorld     Category = "world"
	CategoryReligion  Category = "religion"
	CategoryCelebrity Category = "celebrity"
	CategoryTech      Category = "tech"
)

// primaryNavSize is the number of categories shown in the main navigation bar
const primaryNavSize = 5

var categories = []Category{
	CategoryGeneral, CategoryPolitics, CategoryEconomy, CategorySports,
	CategoryWorld, CategoryReligion, CategoryCelebrity, CategoryTech,
}

var categoryLabels = map[Category]string{
	CategoryGeneral:   "Principais",
	CategoryPolitics:  "Política",
	CategoryEconomy:   "Economia",
	CategorySports:    "Esporte",
	CategoryWorld:     "Mundo",
	CategoryReligion:  "Gospel/Cristã",
	CategoryCelebrity: "Famosos & Fofoca",
	CategoryTech:      "Tecnologia",
}

// Categories returns all categories in declaration order
func Categories() []Category {
	res := make([]Category, len(categories))
	copy(res, categories)
	return res
}

// PrimaryNav returns categories shown in the main navigation bar
func PrimaryNav() []Category {
	return Categories()[:primaryNavSize]
}

// SecondaryNav returns categories shown in the sub-navigation bar
func SecondaryNav() []Category {
	return Categories()[primaryNavSize:]
}

// Subscribable returns categories a user can toggle in the settings form.
// The general category is always part of the page and can't be toggled.
func Subscribable() []Category {
	res := make([]Category, 0, len(categories)-1)
	for _, c := range categories {
		if c != CategoryGeneral {
			res = append(res, c)
		}
	}
	return res
}

// ParseCategory converts a slug to a Category, case-insensitive
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Label returns the human-readable category name
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether the category is one of the known ones
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// String returns the category slug
func (c Category) String() string { return string(c) }

package catalog

import (
	"bio_olymp_backend/internal/model"
	"strings"
)

// Catalog is the read-only question set seeded at startup.
type Catalog struct {
	questions  []model.Question
	categories []model.Category
	sources    map[string]model.QuestionSource
	byID       map[string]int
}

func New(questions []model.Question, categories []model.Category, sources map[string]model.QuestionSource) *Catalog {
	c := &Catalog{
		questions:  append([]model.Question{}, questions...),
		categories: append([]model.Category{}, categories...),
		sources:    make(map[string]model.QuestionSource, len(sources)),
		byID:       make(map[string]int, len(questions)),
	}
	for i, q := range c.questions {
		c.byID[q.ID] = i
	}
	for id, s := range sources {
		c.sources[id] = s
	}
	return c
}

// Default returns the catalog shipped with the trainer.
func Default() *Catalog {
	return New(defaultQuestions, defaultCategories, defaultSources)
}

func (c *Catalog) Lookup(id string) (model.Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Question{}, false
	}
	return c.questions[i], true
}

func (c *Catalog) All() []model.Question {
	return append([]model.Question{}, c.questions...)
}

func (c *Catalog) Len() int {
	return len(c.questions)
}

// ByCategory matches the category name case-insensitively.
func (c *Catalog) ByCategory(name string) []model.Question {
	var result []model.Question
	for _, q := range c.questions {
		if strings.EqualFold(q.Category, name) {
			result = append(result, q)
		}
	}
	return result
}

func (c *Catalog) Categories() []model.Category {
	return append([]model.Category{}, c.categories...)
}

// CategoryByID also accepts the display name.
func (c *Catalog) CategoryByID(id string) (model.Category, bool) {
	for _, cat := range c.categories {
		if strings.EqualFold(cat.ID, id) || strings.EqualFold(cat.Name, id) {
			return cat, true
		}
	}
	return model.Category{}, false
}

func (c *Catalog) Source(id string) (model.QuestionSource, bool) {
	s, ok := c.sources[id]
	return s, ok
}

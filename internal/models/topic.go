package models

// Topic represents a topic articles are filed under
type Topic struct {
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

package models

// Category is a shared label for grouping tasks. Names are unique.
type Category struct {
	ID   string
	Name string
}

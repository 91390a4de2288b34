package models

import "time"

// DateFormat is the wire format for user-entered dates.
const DateFormat = "2006-01-02"

// Task belongs to exactly one account and optionally to one category.
// Tasks are removed together with their owning account (FK cascade).
type Task struct {
	ID           string
	Title        string
	Description  string
	CreatedOn    time.Time
	Completed    bool
	DueDate      *time.Time
	CategoryID   *string
	CategoryName string
	OwnerID      string
}

// TaskPatch is a set of optional field updates applied in a single
// parameterized UPDATE. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	CategoryID  *string
}

// Empty reports whether the patch changes nothing.
func (p *TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.CategoryID == nil
}

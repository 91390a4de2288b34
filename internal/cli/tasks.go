package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todokeeper/internal/common"
	"todokeeper/internal/models"
)

// ListTasks prints the tasks visible to the active identity: the
// caller's own tasks, or every account's tasks for administrators.
func (a *App) ListTasks(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	tasks, err := a.tasks.List(ctx, actor)
	if err != nil {
		a.reportErr(err)
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks yet.")
		return nil
	}

	for _, t := range tasks {
		fmt.Fprintln(a.out, formatTask(t))
	}
	return nil
}

func formatTask(t *models.Task) string {
	var b strings.Builder

	if t.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	b.WriteString(t.ID)
	b.WriteString("  ")
	b.WriteString(t.Title)

	if t.DueDate != nil {
		b.WriteString("  due ")
		b.WriteString(t.DueDate.Format(models.DateFormat))
	}
	if t.CategoryName != "" {
		b.WriteString("  #")
		b.WriteString(t.CategoryName)
	}
	return b.String()
}

// AddTask prompts for the task fields and creates the task. Due date
// and category are optional; the category is entered by name and
// resolved against the shared category list.
func (a *App) AddTask(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}

	description, _, err := getOptionalText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	dueDate, err := a.promptDueDate()
	if err != nil {
		a.reportErr(err)
		return err
	}

	categoryID, err := a.promptCategory(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	task, err := a.tasks.Create(ctx, actor, title, description, dueDate, categoryID)
	if err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintf(a.out, "Created task %s\n", task.ID)
	return nil
}

func (a *App) promptDueDate() (*time.Time, error) {
	raw, ok, err := getOptionalText(a.reader, "Due date "+models.DateFormat, a.out)
	if err != nil || !ok {
		return nil, err
	}

	parsed, err := time.Parse(models.DateFormat, raw)
	if err != nil {
		return nil, common.ErrInvalidDate
	}
	return &parsed, nil
}

// promptCategory asks for a category name and resolves it to an id.
// An unknown name is an error rather than an implicit create.
func (a *App) promptCategory(ctx context.Context) (*string, error) {
	name, ok, err := getOptionalText(a.reader, "Category name", a.out)
	if err != nil || !ok {
		return nil, err
	}

	cats, err := a.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		if strings.EqualFold(c.Name, name) {
			return &c.ID, nil
		}
	}
	return nil, common.ErrNotFound
}

func (a *App) CompleteTask(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Task id to complete", a.out)
	if err != nil {
		return err
	}

	if err := a.tasks.Complete(ctx, actor, id); err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintln(a.out, "Done.")
	return nil
}

// EditTask prompts for a task id and a set of optional replacement
// fields; skipped prompts leave the stored value unchanged.
func (a *App) EditTask(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Task id to edit", a.out)
	if err != nil {
		return err
	}

	patch := &models.TaskPatch{}

	if title, ok, err := getOptionalText(a.reader, "New title", a.out); err != nil {
		return err
	} else if ok {
		patch.Title = &title
	}

	if description, ok, err := getOptionalText(a.reader, "New description", a.out); err != nil {
		return err
	} else if ok {
		patch.Description = &description
	}

	dueDate, err := a.promptDueDate()
	if err != nil {
		a.reportErr(err)
		return err
	}
	patch.DueDate = dueDate

	categoryID, err := a.promptCategory(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}
	patch.CategoryID = categoryID

	if err := a.tasks.Update(ctx, actor, id, patch); err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintln(a.out, "Updated.")
	return nil
}

func (a *App) DeleteTask(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Task id to delete", a.out)
	if err != nil {
		return err
	}

	if err := a.tasks.Delete(ctx, actor, id); err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

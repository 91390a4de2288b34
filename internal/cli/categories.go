package cli

import (
	"context"
	"fmt"
)

func (a *App) ListCategories(ctx context.Context) error {
	cats, err := a.categories.List(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	if len(cats) == 0 {
		fmt.Fprintln(a.out, "No categories yet.")
		return nil
	}

	for _, c := range cats {
		fmt.Fprintf(a.out, "%s  %s\n", c.ID, c.Name)
	}
	return nil
}

func (a *App) AddCategory(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Category name", a.out)
	if err != nil {
		return err
	}

	cat, err := a.categories.Add(ctx, actor, name)
	if err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintf(a.out, "Created category %s\n", cat.ID)
	return nil
}

// DeleteCategory removes a category. Tasks referencing it keep
// existing and become uncategorized.
func (a *App) DeleteCategory(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Category id to delete", a.out)
	if err != nil {
		return err
	}

	if err := a.categories.Delete(ctx, actor, id); err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todokeeper/internal/common"
	"todokeeper/internal/models"
)

type taskList struct {
	tasks  []*models.Task
	cursor int
}

func (l *taskList) setTasks(tasks []*models.Task) {
	l.tasks = tasks
	if l.cursor >= len(tasks) {
		l.cursor = len(tasks) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *taskList) selected() *models.Task {
	if len(l.tasks) == 0 {
		return nil
	}
	return l.tasks[l.cursor]
}

func (m Model) updateTasks(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		m.session.Clear()
		m.mode = modeLogin
		m.login = newLoginForm()
		m.errMsg = ""
		m.status = ""
		return m, m.login.Init()

	case "j", "down":
		if m.list.cursor < len(m.list.tasks)-1 {
			m.list.cursor++
		}
		return m, nil

	case "k", "up":
		if m.list.cursor > 0 {
			m.list.cursor--
		}
		return m, nil

	case "r":
		return m, m.loadTasks()

	case "a":
		m.mode = modeAdd
		m.add = newAddForm()
		m.errMsg = ""
		return m, m.add.Init()

	case "x", "enter":
		if t := m.list.selected(); t != nil {
			return m, m.completeTask(t.ID)
		}
		return m, nil

	case "d":
		if t := m.list.selected(); t != nil {
			return m, m.deleteTask(t.ID)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) completeTask(id string) tea.Cmd {
	actor := m.actor()
	return func() tea.Msg {
		if err := m.tasks.Complete(m.ctx, actor, id); err != nil {
			return serviceErrMsg{err}
		}
		return taskMutatedMsg{}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	actor := m.actor()
	return func() tea.Msg {
		if err := m.tasks.Delete(m.ctx, actor, id); err != nil {
			return serviceErrMsg{err}
		}
		return taskMutatedMsg{}
	}
}

func (m Model) viewTasks() string {
	var b strings.Builder

	identity := m.session.Get()
	header := "tasks"
	if identity != nil {
		header = identity.Alias + " · tasks"
		if identity.IsAdmin {
			header += " (all accounts)"
		}
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")

	if len(m.list.tasks) == 0 {
		b.WriteString("\nNo tasks yet. Press 'a' to add one.\n")
	}

	for i, t := range m.list.tasks {
		line := renderTaskLine(t)
		if i == m.list.cursor {
			line = cursorRowStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	b.WriteString(helpStyle.Render("j/k move · a add · x done · d delete · r reload · esc logout · q quit"))
	return b.String()
}

func renderTaskLine(t *models.Task) string {
	var b strings.Builder

	if t.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}

	title := t.Title
	if t.Completed {
		title = doneStyle.Render(title)
	}
	b.WriteString(title)

	if t.DueDate != nil {
		b.WriteString("  due " + t.DueDate.Format(models.DateFormat))
	}
	if t.CategoryName != "" {
		b.WriteString("  " + categoryStyle.Render("#"+t.CategoryName))
	}
	return b.String()
}

// buildTask resolves the add form fields into service call arguments.
func (m Model) buildTask(f addForm) tea.Cmd {
	actor := m.actor()
	title := f.title.Value()
	description := f.description.Value()
	rawDue := strings.TrimSpace(f.dueDate.Value())
	rawCategory := strings.TrimSpace(f.category.Value())

	return func() tea.Msg {
		var dueDate *time.Time
		if rawDue != "" {
			parsed, err := time.Parse(models.DateFormat, rawDue)
			if err != nil {
				return serviceErrMsg{common.ErrInvalidDate}
			}
			dueDate = &parsed
		}

		var categoryID *string
		if rawCategory != "" {
			cats, err := m.categories.List(m.ctx)
			if err != nil {
				return serviceErrMsg{err}
			}
			for _, c := range cats {
				if strings.EqualFold(c.Name, rawCategory) {
					categoryID = &c.ID
					break
				}
			}
			if categoryID == nil {
				return serviceErrMsg{common.ErrNotFound}
			}
		}

		if _, err := m.tasks.Create(m.ctx, actor, title, description, dueDate, categoryID); err != nil {
			return serviceErrMsg{err}
		}
		return taskMutatedMsg{}
	}
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todokeeper/internal/models"
)

type addForm struct {
	title       textinput.Model
	description textinput.Model
	dueDate     textinput.Model
	category    textinput.Model
	focus       int
}

const addFormFields = 4

func newAddForm() addForm {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 120
	title.Focus()

	description := textinput.New()
	description.Placeholder = "description (optional)"
	description.CharLimit = 500

	dueDate := textinput.New()
	dueDate.Placeholder = models.DateFormat + " (optional)"
	dueDate.CharLimit = len(models.DateFormat)

	category := textinput.New()
	category.Placeholder = "category name (optional)"
	category.CharLimit = 64

	return addForm{title: title, description: description, dueDate: dueDate, category: category}
}

func (f addForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *addForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.title, &f.description, &f.dueDate, &f.category}
}

func (f *addForm) setFocus(i int) tea.Cmd {
	f.focus = (i + addFormFields) % addFormFields
	var cmd tea.Cmd
	for n, input := range f.inputs() {
		if n == f.focus {
			cmd = input.Focus()
		} else {
			input.Blur()
		}
	}
	return cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.mode = modeTasks
			m.errMsg = ""
			return m, nil

		case "tab", "down":
			return m, m.add.setFocus(m.add.focus + 1)

		case "shift+tab", "up":
			return m, m.add.setFocus(m.add.focus - 1)

		case "enter":
			if m.add.focus < addFormFields-1 {
				return m, m.add.setFocus(m.add.focus + 1)
			}
			m.mode = modeTasks
			return m, m.buildTask(m.add)
		}
	}

	var cmds []tea.Cmd
	for _, input := range m.add.inputs() {
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) viewAdd() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("new task"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Title"))
	b.WriteString(m.add.title.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Description"))
	b.WriteString(m.add.description.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Due date"))
	b.WriteString(m.add.dueDate.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Category"))
	b.WriteString(m.add.category.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	b.WriteString(helpStyle.Render("tab next field · enter submit · esc cancel"))
	return b.String()
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginForm struct {
	alias    textinput.Model
	password textinput.Model
	focus    int
}

func newLoginForm() loginForm {
	alias := textinput.New()
	alias.Placeholder = "alias"
	alias.CharLimit = 64
	alias.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginForm{alias: alias, password: password}
}

func (f loginForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *loginForm) setFocus(i int) tea.Cmd {
	f.focus = i
	if i == 0 {
		f.password.Blur()
		return f.alias.Focus()
	}
	f.alias.Blur()
	return f.password.Focus()
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			cmd := m.login.setFocus(1 - m.login.focus)
			return m, cmd

		case "enter":
			if m.login.focus == 0 {
				cmd := m.login.setFocus(1)
				return m, cmd
			}
			return m, m.doLogin(m.login.alias.Value(), m.login.password.Value())

		case "ctrl+r":
			return m, m.doRegister(m.login.alias.Value(), m.login.password.Value())

		case "esc":
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.login.alias, cmd = m.login.alias.Update(msg)
	cmds = append(cmds, cmd)
	m.login.password, cmd = m.login.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) doLogin(alias, password string) tea.Cmd {
	return func() tea.Msg {
		identity, err := m.auth.Login(m.ctx, alias, password)
		if err != nil {
			return serviceErrMsg{err}
		}
		return loggedInMsg{identity}
	}
}

func (m Model) doRegister(alias, password string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.auth.Register(m.ctx, alias, password); err != nil {
			return serviceErrMsg{err}
		}
		return registeredMsg{}
	}
}

func (m Model) viewLogin() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todokeeper"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Alias"))
	b.WriteString(m.login.alias.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString(m.login.password.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString(helpStyle.Render("enter login · ctrl+r register · esc quit"))
	return b.String()
}

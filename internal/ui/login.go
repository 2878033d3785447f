package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleLoginKey processes keys while the login overlay is open.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.login.active = false
		m.login.err = ""
		return m, nil

	case "tab", "shift+tab", "up", "down":
		// Two fields, so either direction is a toggle.
		m.login.focusIdx = (m.login.focusIdx + 1) % 2
		for i := range m.login.inputs {
			if i == m.login.focusIdx {
				m.login.inputs[i].Focus()
			} else {
				m.login.inputs[i].Blur()
			}
		}
		return m, textinput.Blink

	case "enter":
		if m.login.focusIdx == 0 {
			// Move from email to password.
			m.login.focusIdx = 1
			m.login.inputs[0].Blur()
			m.login.inputs[1].Focus()
			return m, textinput.Blink
		}
		email := strings.TrimSpace(m.login.inputs[0].Value())
		password := m.login.inputs[1].Value()
		if email == "" || password == "" {
			m.login.err = "email and password required"
			return m, nil
		}
		if m.login.busy {
			return m, nil
		}
		m.login.busy = true
		m.login.err = ""
		return m, m.loginCmd(email, password)
	}

	return m.updateLoginInputs(msg)
}

func (m Model) updateLoginInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	for i := range m.login.inputs {
		m.login.inputs[i], cmds[i] = m.login.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds[0], cmds[1])
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("email") + "\n")
	b.WriteString(m.login.inputs[0].View() + "\n\n")
	b.WriteString(styles.MutedText.Render("password") + "\n")
	b.WriteString(m.login.inputs[1].View() + "\n")

	if m.login.busy {
		b.WriteString("\n" + styles.WarningText.Render("signing in..."))
	}
	if m.login.err != "" {
		b.WriteString("\n" + styles.DangerText.Render(m.login.err))
	}
	b.WriteString("\n\n" + styles.MutedText.Render("enter submit • esc cancel"))

	panel := styles.Panel.Width(min(m.width-4, 48)).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"satchel/internal/catalog"
	"satchel/internal/journal"
	"satchel/internal/session"
	"satchel/internal/storefront"
)

type tickMsg time.Time

type snapshotMsg struct {
	catalog catalog.Snapshot
	session session.Snapshot
}

type journalMsg struct {
	entries []journal.Entry
}

type opDoneMsg struct {
	notice string
	err    error
}

type loginDoneMsg struct {
	name string
	err  error
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) snapshotCmd() tea.Cmd {
	store := m.catalog
	sess := m.session
	return func() tea.Msg {
		return snapshotMsg{catalog: store.Snapshot(), session: sess.Snapshot()}
	}
}

func tailJournalCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := journal.Tail(path, activityTailLimit)
		if err != nil {
			return journalMsg{}
		}
		return journalMsg{entries: entries}
	}
}

func (m Model) addCmd(product storefront.Product) tea.Cmd {
	return func() tea.Msg {
		if err := m.session.AddItem(m.ctx, product, 1); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{notice: product.Name + " added"}
	}
}

func (m Model) updateCmd(productID string, quantity int) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.session.UpdateItem(m.ctx, productID, quantity)}
	}
}

func (m Model) removeCmd(productID string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.session.RemoveItem(m.ctx, productID)}
	}
}

func (m Model) clearCmd() tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.session.Clear(m.ctx)}
	}
}

func (m Model) checkoutCmd() tea.Cmd {
	return func() tea.Msg {
		confirmation, err := m.session.Checkout(m.ctx)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{notice: fmt.Sprintf("order %s placed (%s)", confirmation.OrderID, formatPrice(confirmation.Total, m.currency))}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.session.Refresh(m.ctx)}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.Login(m.ctx, email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		name := resp.Name
		if name == "" {
			name = email
		}
		// A merge or fetch failure here is already surfaced on the cart
		// state; the login itself held.
		_ = m.session.LoginSucceeded(m.ctx, name)
		return loginDoneMsg{name: name}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		m.client.ClearToken()
		m.session.Logout()
		return opDoneMsg{notice: "signed out"}
	}
}

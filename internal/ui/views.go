package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"satchel/internal/session"
)

func (m Model) renderMain() string {
	var body string
	switch m.currentView {
	case ViewShop:
		body = m.renderShop()
	case ViewCart:
		body = m.renderCart()
	case ViewActivity:
		body = m.renderActivity()
	}

	header := m.renderHeader()
	status := m.renderStatusBar()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	tabs := []struct {
		view  View
		label string
	}{
		{ViewShop, "1 Shop"},
		{ViewCart, "2 Cart"},
		{ViewActivity, "3 Activity"},
	}

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab.view == m.currentView {
			parts = append(parts, styles.AccentText.Render(tab.label))
		} else {
			parts = append(parts, styles.MutedText.Render(tab.label))
		}
	}
	return styles.Title.Render("SATCHEL") + "  " + strings.Join(parts, "  ")
}

func (m Model) renderShop() string {
	styles := m.theme.Styles()
	products := m.catalogSnap.Products

	if m.catalogSnap.IsOffline() {
		return styles.DangerText.Render("Storefront unreachable") + "\n" +
			styles.MutedText.Render("retrying in the background...")
	}
	if len(products) == 0 {
		return styles.MutedText.Render("Waiting for catalog...")
	}

	var b strings.Builder
	for i, product := range products {
		line := fmt.Sprintf("%-30s %10s  stock %d",
			truncate(product.Name, 30),
			formatPrice(product.Price, m.currency),
			product.Stock,
		)
		if i == m.shopIndex {
			b.WriteString(styles.Selection.Render("> " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + styles.MutedText.Render("a add to cart • j/k move"))
	return b.String()
}

func (m Model) renderCart() string {
	styles := m.theme.Styles()
	state := m.sessSnap.Cart

	if state.Loading {
		return styles.WarningText.Render("Loading cart...")
	}

	var b strings.Builder
	if len(state.Items) == 0 {
		b.WriteString(styles.MutedText.Render("Cart is empty") + "\n")
	}
	for i, item := range state.Items {
		line := fmt.Sprintf("%-28s ×%-3d %10s",
			truncate(item.Product.Name, 28),
			item.Quantity,
			formatPrice(item.Product.Price*int64(item.Quantity), m.currency),
		)
		if i == m.cartIndex {
			b.WriteString(styles.Selection.Render("> " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render(fmt.Sprintf("%d items   %s", state.ItemCount, formatPrice(state.Total, m.currency))))
	b.WriteString("\n")

	if state.Error != "" {
		b.WriteString("\n" + styles.DangerText.Render(truncate(state.Error, 76)))
		b.WriteString("\n" + styles.MutedText.Render("last known cart shown; retry the action"))
		b.WriteString("\n")
	}

	hints := "+/- quantity • x remove • C clear"
	if m.sessSnap.Mode == session.ModeAuthenticated {
		hints += " • o checkout • r refresh"
	}
	b.WriteString("\n" + styles.MutedText.Render(hints))
	return b.String()
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()

	if len(m.entries) == 0 {
		return styles.MutedText.Render("No activity yet")
	}

	var b strings.Builder
	for _, entry := range m.entries {
		b.WriteString(styles.MutedText.Render(entry.Time.Format("15:04:05")))
		b.WriteString("  ")
		b.WriteString(styles.AccentText.Render(fmt.Sprintf("%-9s", entry.Kind)))
		b.WriteString(styles.Text.Render(truncate(entry.Detail, 60)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	styles := m.theme.Styles()

	mode := styles.WarningText.Render("guest")
	switch m.sessSnap.Mode {
	case session.ModeAuthenticated:
		mode = styles.SuccessText.Render(m.sessSnap.User)
	case session.ModeReconciling:
		mode = styles.WarningText.Render("merging cart...")
	}

	parts := []string{
		mode,
		fmt.Sprintf("%d items", m.sessSnap.Cart.ItemCount),
		formatPrice(m.sessSnap.Cart.Total, m.currency),
	}
	if m.sessSnap.Mode == session.ModeGuest {
		parts = append(parts, styles.MutedText.Render("L sign in"))
	} else {
		parts = append(parts, styles.MutedText.Render("O sign out"))
	}
	if m.notice != "" {
		parts = append(parts, styles.AccentText.Render(truncate(m.notice, 48)))
	}
	parts = append(parts, styles.MutedText.Render("h help"))

	return styles.StatusBar.Width(m.width).Render(strings.Join(parts, "  •  "))
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Key bindings") + "\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				styles.HelpKey.Render(fmt.Sprintf("%-10s", binding.Help().Key)),
				styles.HelpDesc.Render(binding.Help().Desc),
			))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("press any key to close"))

	panel := styles.Panel.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding

	// View switching
	ViewShop     key.Binding
	ViewCart     key.Binding
	ViewActivity key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Cart actions
	Add       key.Binding
	Increment key.Binding
	Decrement key.Binding
	Remove    key.Binding
	ClearCart key.Binding
	Checkout  key.Binding
	Refresh   key.Binding

	// Auth
	Login  key.Binding
	Logout key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to shop"),
		),

		ViewShop: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Shop view"),
		),
		ViewCart: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Cart view"),
		),
		ViewActivity: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Activity view"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Add: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a", "Add to cart"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Increase quantity"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Decrease quantity"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove line"),
		),
		ClearCart: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Clear cart"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Checkout"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh cart"),
		),

		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Log in"),
		),
		Logout: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "Log out"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewShop, k.ViewCart, k.ViewActivity},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Add, k.Increment, k.Decrement, k.Remove, k.ClearCart},
		{k.Checkout, k.Refresh, k.Login, k.Logout},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

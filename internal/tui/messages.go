package tui

// SelectTabMsg is reported by a tab selector. It is the only way the
// container's selection changes.
type SelectTabMsg struct {
	Index int
}

// toastMsg is sent to display a temporary notification.
type toastMsg struct {
	message string
	isError bool
}

package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar. An empty title keeps the default.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		if title != "" {
			w.title = title
		}
	}
}

// WithSize sets the initial window size. Non-positive dimensions keep the default.
//
// Parameters:
//   - width, height: the initial size in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds how far the user can resize the window. A non-positive bound leaves
// that side unlimited. The initial size is clamped into the limits when the window opens.
//
// Parameters:
//   - minWidth, minHeight: the smallest allowed size
//   - maxWidth, maxHeight: the largest allowed size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = max(minWidth, 0), max(minHeight, 0)
		w.maxWidth, w.maxHeight = max(maxWidth, 0), max(maxHeight, 0)
	}
}

// clampSize fits the initial size into the configured limits.
func (w *engineWindow) clampSize() {
	if w.maxWidth > 0 {
		w.width = min(w.width, w.maxWidth)
	}
	if w.maxHeight > 0 {
		w.height = min(w.height, w.maxHeight)
	}
	w.width = max(w.width, w.minWidth)
	w.height = max(w.height, w.minHeight)
}

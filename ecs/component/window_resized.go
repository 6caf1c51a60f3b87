package component

// WindowResized is pushed by the host whenever the output size changes.
type WindowResized struct {
	Width  int
	Height int
}

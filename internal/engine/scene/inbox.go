package scene

// Inbox carries model paths picked off the render thread, such as from a
// native file dialog, to the frame loop.
type Inbox struct {
	paths chan string
}

// NewInbox returns an inbox holding up to size paths.
func NewInbox(size int) *Inbox {
	if size < 1 {
		size = 1
	}
	return &Inbox{paths: make(chan string, size)}
}

// Offer queues path without blocking. It reports false when the inbox is
// full and the path was dropped.
func (in *Inbox) Offer(path string) bool {
	select {
	case in.paths <- path:
		return true
	default:
		return false
	}
}

// Drain calls fn for every queued path and returns without waiting for more.
func (in *Inbox) Drain(fn func(path string)) {
	for {
		select {
		case path := <-in.paths:
			fn(path)
		default:
			return
		}
	}
}

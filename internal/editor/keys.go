package editor

import "fmt"

type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
	// KeyTick is the timeout marker: no key arrived within the autoscroll delay.
	KeyTick
)

func (k KeyKind) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyBackspace:
		return "backspace"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEscape:
		return "esc"
	case KeyTick:
		return "tick"
	default:
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
}

// Key is one input event.
type Key struct {
	Kind KeyKind
	Rune rune
}

func Rune(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

func Named(kind KeyKind) Key { return Key{Kind: kind} }

func Tick() Key { return Key{Kind: KeyTick} }

func (k Key) String() string {
	if k.Kind == KeyRune {
		return string(k.Rune)
	}
	return k.Kind.String()
}

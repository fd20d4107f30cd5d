package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	leftKeys  = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	rightKeys = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	jumpKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}
)

// InputSystem samples the keyboard once per frame
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the current input state
type InputState struct {
	Left         bool
	Right        bool
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
	Pause        bool
	Restart      bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:         anyPressed(leftKeys),
		Right:        anyPressed(rightKeys),
		Jump:         anyPressed(jumpKeys),
		JumpPressed:  anyJustPressed(jumpKeys),
		JumpReleased: anyJustReleased(jumpKeys),
		Pause:        inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP),
		Restart:      inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
	}
}

// Intent converts the sampled keys into movement intent. A release only
// counts once no jump key is held.
func (in InputState) Intent() Intent {
	axis := 0.0
	if in.Left {
		axis--
	}
	if in.Right {
		axis++
	}
	return Intent{
		Horizontal:   axis,
		JumpPressed:  in.JumpPressed,
		JumpReleased: in.JumpReleased && !in.Jump,
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

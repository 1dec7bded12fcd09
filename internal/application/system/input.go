package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/rigdemo/internal/domain/entity"
	"github.com/younwookim/rigdemo/internal/infrastructure/config"
)

// blendStep is how much one key press changes a blend factor
const blendStep = 0.1

// InputSystem turns editor key presses into commands
type InputSystem struct {
	config *config.EditorConfig
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg *config.EditorConfig) *InputSystem {
	return &InputSystem{config: cfg}
}

// InputState holds the current input state. Everything except Left/Right
// is true only on the tick the key went down.
type InputState struct {
	Left, Right bool // walk the character

	NextBone, PrevBone           bool
	NextAnimation, PrevAnimation bool

	RotateCCW, RotateCW bool
	MoveX, MoveY        int // -1, 0 or 1

	PrevFrame, NextFrame bool
	AddKeyframe          bool
	RemoveKeyframe       bool
	ResetKeyframe        bool
	KeyBone              bool
	BlendUp, BlendDown   bool

	TogglePlay      bool
	NewAnimation    bool
	RemoveAnimation bool

	Save, Load   bool
	Play         bool // editing <-> playing
	Pause        bool
	Pan          bool
	MouseX       int
	MouseY       int
	Record       bool
	ToggleLayers bool
}

// Selection is what the editor currently points at
type Selection struct {
	Animation      string // empty when the rig has none
	Frame          int
	NumberOfFrames int
	IsKeyframe     bool
	Bone           int
	Blend          float64 // selected bone's factor at Frame
	NewName        string  // name for the next AddAnimation
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	tab := inpututil.IsKeyJustPressed(ebiten.KeyTab)

	in := InputState{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyD),

		NextBone:      tab && !shift,
		PrevBone:      tab && shift,
		NextAnimation: inpututil.IsKeyJustPressed(ebiten.KeyPageDown),
		PrevAnimation: inpututil.IsKeyJustPressed(ebiten.KeyPageUp),

		RotateCCW: inpututil.IsKeyJustPressed(ebiten.KeyQ),
		RotateCW:  inpututil.IsKeyJustPressed(ebiten.KeyE),

		PrevFrame:      inpututil.IsKeyJustPressed(ebiten.KeyComma),
		NextFrame:      inpututil.IsKeyJustPressed(ebiten.KeyPeriod),
		AddKeyframe:    inpututil.IsKeyJustPressed(ebiten.KeyN),
		RemoveKeyframe: inpututil.IsKeyJustPressed(ebiten.KeyDelete) && !shift,
		ResetKeyframe:  inpututil.IsKeyJustPressed(ebiten.KeyR),
		KeyBone:        inpututil.IsKeyJustPressed(ebiten.KeyK),
		BlendUp:        inpututil.IsKeyJustPressed(ebiten.KeyB) && !shift,
		BlendDown:      inpututil.IsKeyJustPressed(ebiten.KeyB) && shift,

		TogglePlay:      inpututil.IsKeyJustPressed(ebiten.KeySpace),
		NewAnimation:    inpututil.IsKeyJustPressed(ebiten.KeyInsert),
		RemoveAnimation: inpututil.IsKeyJustPressed(ebiten.KeyDelete) && shift,

		Save:         inpututil.IsKeyJustPressed(ebiten.KeyF5),
		Load:         inpututil.IsKeyJustPressed(ebiten.KeyF9),
		Play:         inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Pause:        inpututil.IsKeyJustPressed(ebiten.KeyP),
		Pan:          inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		MouseX:       mx,
		MouseY:       my,
		Record:       inpututil.IsKeyJustPressed(ebiten.KeyF2),
		ToggleLayers: inpututil.IsKeyJustPressed(ebiten.KeyL),
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		in.MoveX = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		in.MoveX = 1
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		in.MoveY = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		in.MoveY = 1
	}
	return in
}

// Commands maps one tick of input onto the selection
func (s *InputSystem) Commands(in InputState, sel Selection) []Command {
	var cmds []Command
	step := mgl64.DegToRad(s.config.Editor.RotateStep)

	if sel.Bone >= 0 {
		if in.RotateCCW {
			cmds = append(cmds, &RotateBone{Bone: sel.Bone, Delta: -step})
		}
		if in.RotateCW {
			cmds = append(cmds, &RotateBone{Bone: sel.Bone, Delta: step})
		}
		if in.MoveX != 0 || in.MoveY != 0 {
			move := float64(s.config.Editor.MoveStep)
			cmds = append(cmds, &MoveBone{Bone: sel.Bone, DX: float64(in.MoveX) * move, DY: float64(in.MoveY) * move})
		}
	}

	if in.NewAnimation && sel.NewName != "" {
		cmds = append(cmds, &AddAnimation{Animation: sel.NewName})
	}
	if sel.Animation == "" {
		return cmds
	}

	name, frame := sel.Animation, sel.Frame
	if sel.NumberOfFrames > 0 {
		if in.PrevFrame {
			cmds = append(cmds, &SeekFrame{Animation: name, Frame: (frame - 1 + sel.NumberOfFrames) % sel.NumberOfFrames})
		}
		if in.NextFrame {
			cmds = append(cmds, &SeekFrame{Animation: name, Frame: (frame + 1) % sel.NumberOfFrames})
		}
	}
	if in.AddKeyframe {
		cmds = append(cmds, &AddKeyframe{Animation: name, Frame: frame})
	}
	if in.ResetKeyframe {
		cmds = append(cmds, &ResetKeyframe{Animation: name, Frame: frame})
	}
	if in.KeyBone && sel.Bone >= 0 {
		if !sel.IsKeyframe {
			cmds = append(cmds, &AddKeyframe{Animation: name, Frame: frame})
		}
		cmds = append(cmds, &KeyBone{Animation: name, Frame: frame, Bone: sel.Bone})
	}
	if sel.IsKeyframe && sel.Bone >= 0 {
		if in.BlendUp {
			cmds = append(cmds, &SetBlend{Animation: name, Frame: frame, Bone: sel.Bone, Factor: sel.Blend + blendStep})
		}
		if in.BlendDown {
			cmds = append(cmds, &SetBlend{Animation: name, Frame: frame, Bone: sel.Bone, Factor: sel.Blend - blendStep})
		}
	}
	if in.RemoveKeyframe {
		cmds = append(cmds, &RemoveKeyframe{Animation: name, Frame: frame})
	}
	if in.TogglePlay {
		cmds = append(cmds, &TogglePlay{Animation: name})
	}
	if in.RemoveAnimation {
		cmds = append(cmds, &RemoveAnimation{Animation: name})
	}
	return cmds
}

// UpdateBody walks the body left or right at the configured speed
func (s *InputSystem) UpdateBody(body *entity.Body, in InputState) {
	speed := s.config.Physics.MoveSpeed * entity.PositionScale
	switch {
	case in.Left && !in.Right:
		body.VX = -speed
	case in.Right && !in.Left:
		body.VX = speed
	default:
		body.VX = 0
	}
}

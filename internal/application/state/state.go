package state

// EditorState represents the current state of the editor
type EditorState int

const (
	StateLoading EditorState = iota
	StateEditing
	StatePlaying
	StatePaused
)

// String returns the string representation of the editor state
func (s EditorState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateEditing:
		return "Editing"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Running reports whether physics and playback advance
func (s EditorState) Running() bool {
	return s == StatePlaying
}

// Editable reports whether pose and keyframe edits are accepted
func (s EditorState) Editable() bool {
	return s == StateEditing || s == StatePaused
}

// TogglePlay switches between editing and playing
func (s EditorState) TogglePlay() EditorState {
	switch s {
	case StateEditing:
		return StatePlaying
	case StatePlaying, StatePaused:
		return StateEditing
	default:
		return s
	}
}

// TogglePause freezes or resumes playing
func (s EditorState) TogglePause() EditorState {
	switch s {
	case StatePlaying:
		return StatePaused
	case StatePaused:
		return StatePlaying
	default:
		return s
	}
}

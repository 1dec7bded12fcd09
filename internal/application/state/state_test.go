package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditorState_String(t *testing.T) {
	tests := []struct {
		state    EditorState
		expected string
	}{
		{StateLoading, "Loading"},
		{StateEditing, "Editing"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{EditorState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestEditorStateConstants(t *testing.T) {
	assert.Equal(t, EditorState(0), StateLoading)
	assert.Equal(t, EditorState(1), StateEditing)
	assert.Equal(t, EditorState(2), StatePlaying)
	assert.Equal(t, EditorState(3), StatePaused)
}

func TestEditorState_Transitions(t *testing.T) {
	tests := []struct {
		from     EditorState
		play     EditorState
		pause    EditorState
		running  bool
		editable bool
	}{
		{StateLoading, StateLoading, StateLoading, false, false},
		{StateEditing, StatePlaying, StateEditing, false, true},
		{StatePlaying, StateEditing, StatePaused, true, false},
		{StatePaused, StateEditing, StatePlaying, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.play, tt.from.TogglePlay())
			assert.Equal(t, tt.pause, tt.from.TogglePause())
			assert.Equal(t, tt.running, tt.from.Running())
			assert.Equal(t, tt.editable, tt.from.Editable())
		})
	}
}

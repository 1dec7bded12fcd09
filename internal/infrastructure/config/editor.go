package config

// EditorConfig is the root config for editor.json
type EditorConfig struct {
	Display   DisplayConfig   `json:"display"`
	Playback  PlaybackConfig  `json:"playback"`
	Physics   PhysicsSettings `json:"physics"`
	Editor    EditorSettings  `json:"editor"`
	Character CharacterConfig `json:"character"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// PlaybackConfig holds defaults for animations that do not set their own
type PlaybackConfig struct {
	FrameTime      float64 `json:"frameTime"`      // seconds per frame
	NumberOfFrames int     `json:"numberOfFrames"` // loop length
	Strength       float64 `json:"strength"`       // 0.0-1.0
}

type PhysicsSettings struct {
	Gravity      float64 `json:"gravity"`      // pixels/sec²
	MaxFallSpeed float64 `json:"maxFallSpeed"` // pixels/sec
	MoveSpeed    float64 `json:"moveSpeed"`    // pixels/sec
}

// EditorSettings configures editing controls and startup content
type EditorSettings struct {
	Rig         string  `json:"rig"`         // rigs/<rig>.yaml
	Stage       string  `json:"stage"`       // stages/<stage>.json
	RotateStep  float64 `json:"rotateStep"`  // degrees per key press
	MoveStep    int     `json:"moveStep"`    // pixels per key press
	CameraTween float64 `json:"cameraTween"` // seconds
	StorageApp  string  `json:"storageApp"`  // save directory name
	JournalPath string  `json:"journalPath"` // command journal output, empty disables
}

// CharacterConfig places the edited rig on a physics body
type CharacterConfig struct {
	Name       string         `json:"name"`
	Hitbox     Rect           `json:"hitbox"`
	RootOffset PositionConfig `json:"rootOffset"`
}

type Rect struct {
	OffsetX int `json:"offsetX"`
	OffsetY int `json:"offsetY"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

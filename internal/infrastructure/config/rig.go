package config

// RigConfig is the root config for rigs/<name>.yaml.
// Bones are listed parents first. Positions are pixels relative to the rig
// origin, rotations are degrees.
type RigConfig struct {
	Name       string            `yaml:"name"`
	Bones      []BoneConfig      `yaml:"bones"`
	Animations []AnimationConfig `yaml:"animations"`
}

type BoneConfig struct {
	Name     string  `yaml:"name"`
	Parent   string  `yaml:"parent,omitempty"` // empty for the root
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
	Length   float64 `yaml:"length"`
	Scale    float64 `yaml:"scale,omitempty"` // 0 means 1
}

type AnimationConfig struct {
	Name           string           `yaml:"name"`
	FrameTime      float64          `yaml:"frameTime,omitempty"`
	NumberOfFrames int              `yaml:"numberOfFrames,omitempty"`
	Strength       *float64         `yaml:"strength,omitempty"`
	Active         bool             `yaml:"active,omitempty"`
	Keyframes      []KeyframeConfig `yaml:"keyframes"`
}

type KeyframeConfig struct {
	Frame int               `yaml:"frame"`
	Bones []KeyedBoneConfig `yaml:"bones"`
}

// KeyedBoneConfig keys one bone: Turn is added to the rest pose's relative
// rotation, in degrees.
type KeyedBoneConfig struct {
	Bone  string   `yaml:"bone"`
	Turn  float64  `yaml:"turn"`
	Blend *float64 `yaml:"blend,omitempty"` // nil means 1
}

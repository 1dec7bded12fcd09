package anim

import (
	"cmp"
	"fmt"
	"slices"
)

// Playback defaults for new animations.
const (
	DefaultFrameTime      = 0.2 // seconds per frame
	DefaultNumberOfFrames = 20  // loop length in frames
)

// Animation is an ordered set of keyframes plus playback state.
//
// Frame indices (current, next) live in frame-number space
// [0, NumberOfFrames), not in keyframe-list space. The keyframe list is kept
// sorted by frame number and is never empty.
type Animation struct {
	Name string

	frameTime      float64
	numberOfFrames int
	strength       float64

	keyframes []*Keyframe

	currentFrame int
	nextFrame    int
	elapsed      float64 // seconds spent in currentFrame
	active       bool

	emit func(Event)
}

// NewAnimation creates an inactive animation whose keyframe 0 captures the
// skeleton's current pose. A nil skeleton leaves keyframe 0 empty.
func NewAnimation(name string, s *Skeleton) *Animation {
	a := &Animation{
		Name:           name,
		frameTime:      DefaultFrameTime,
		numberOfFrames: DefaultNumberOfFrames,
		strength:       1,
		keyframes:      []*Keyframe{NewKeyframe(0)},
	}
	if s != nil {
		a.keyframes[0].SetBones(s)
	}
	a.updateNextFrame()
	return a
}

// RestoreAnimation rebuilds an animation from decoded data. Keyframes must
// be non-empty, unique by frame number, and inside [0, numberOfFrames).
func RestoreAnimation(name string, frameTime float64, numberOfFrames int, keyframes []*Keyframe) (*Animation, error) {
	if len(keyframes) == 0 {
		return nil, fmt.Errorf("animation %q: no keyframes", name)
	}
	if frameTime <= 0 || numberOfFrames <= 0 {
		return nil, fmt.Errorf("animation %q: invalid timing %v x %d", name, frameTime, numberOfFrames)
	}
	seen := make(map[int]struct{}, len(keyframes))
	for _, kf := range keyframes {
		if kf.Frame < 0 || kf.Frame >= numberOfFrames {
			return nil, fmt.Errorf("animation %q: keyframe %d out of range", name, kf.Frame)
		}
		if _, dup := seen[kf.Frame]; dup {
			return nil, fmt.Errorf("animation %q: duplicate keyframe %d", name, kf.Frame)
		}
		seen[kf.Frame] = struct{}{}
	}

	a := &Animation{
		Name:           name,
		frameTime:      frameTime,
		numberOfFrames: numberOfFrames,
		strength:       1,
		keyframes:      append([]*Keyframe(nil), keyframes...),
	}
	a.sortKeyframes()
	a.updateNextFrame()
	return a, nil
}

// FrameTime returns the seconds per frame.
func (a *Animation) FrameTime() float64 { return a.frameTime }

// SetFrameTime sets the seconds per frame. Non-positive values are ignored.
func (a *Animation) SetFrameTime(t float64) {
	if t > 0 {
		a.frameTime = t
	}
}

// NumberOfFrames returns the loop length used as the wraparound modulus.
func (a *Animation) NumberOfFrames() int { return a.numberOfFrames }

// SetNumberOfFrames changes the loop length. It must leave every existing
// keyframe inside the loop.
func (a *Animation) SetNumberOfFrames(n int) bool {
	if n <= a.LastFrame() {
		return false
	}
	a.numberOfFrames = n
	if a.currentFrame >= n {
		a.currentFrame = 0
		a.elapsed = 0
	}
	a.updateNextFrame()
	return true
}

// Strength returns the animation-wide weight.
func (a *Animation) Strength() float64 { return a.strength }

// SetStrength sets the animation-wide weight, clamped to [0,1].
func (a *Animation) SetStrength(s float64) { a.strength = clamp01(s) }

// IsActive reports whether the animation is playing.
func (a *Animation) IsActive() bool { return a.active }

// SetActive starts or pauses playback.
func (a *Animation) SetActive(active bool) {
	if a.active == active {
		return
	}
	a.active = active
	a.notify(Event{Kind: EventPlayStateChanged, Frame: a.currentFrame, Bone: NoIndex})
}

// CurrentFrame returns the frame being played.
func (a *Animation) CurrentFrame() int { return a.currentFrame }

// NextFrame returns the frame playback advances to.
func (a *Animation) NextFrame() int { return a.nextFrame }

// Elapsed returns the time spent in the current frame.
func (a *Animation) Elapsed() float64 { return a.elapsed }

// Seek jumps playback to a frame, clamped to the loop.
func (a *Animation) Seek(frame int) {
	if frame < 0 {
		frame = 0
	}
	if frame >= a.numberOfFrames {
		frame = a.numberOfFrames - 1
	}
	a.currentFrame = frame
	a.elapsed = 0
	a.updateNextFrame()
}

// Keyframes returns the keyframes sorted by frame. The slice must not be
// modified.
func (a *Animation) Keyframes() []*Keyframe {
	return a.keyframes
}

// LastFrame returns the frame number of the last keyframe.
func (a *Animation) LastFrame() int {
	return a.keyframes[len(a.keyframes)-1].Frame
}

// IsKeyframe reports whether a keyframe exists at the frame number.
func (a *Animation) IsKeyframe(frame int) bool {
	return a.GetKeyframe(frame) != nil
}

// GetKeyframe returns the keyframe at the frame number, nil if absent.
func (a *Animation) GetKeyframe(frame int) *Keyframe {
	for _, kf := range a.keyframes {
		if kf.Frame == frame {
			return kf
		}
	}
	return nil
}

// AddKeyframe inserts an empty keyframe. Frames that already exist or fall
// outside [0, NumberOfFrames) are rejected without error.
func (a *Animation) AddKeyframe(frame int) (*Keyframe, bool) {
	if frame < 0 || frame >= a.numberOfFrames || a.IsKeyframe(frame) {
		return nil, false
	}
	kf := NewKeyframe(frame)
	a.keyframes = append(a.keyframes, kf)
	a.sortKeyframes()
	a.updateNextFrame()
	a.notify(Event{Kind: EventKeyframeAdded, Frame: frame, Bone: NoIndex})
	return kf, true
}

// RemoveKeyframe removes the keyframe at a list index. The last remaining
// keyframe cannot be removed.
func (a *Animation) RemoveKeyframe(index int) bool {
	if index < 0 || index >= len(a.keyframes) || len(a.keyframes) == 1 {
		return false
	}
	frame := a.keyframes[index].Frame
	a.keyframes = append(a.keyframes[:index], a.keyframes[index+1:]...)
	a.sortKeyframes()
	a.updateNextFrame()
	a.notify(Event{Kind: EventKeyframeRemoved, Frame: frame, Bone: NoIndex})
	return true
}

// ResetKeyframe snapshots the skeleton's current pose into the keyframe at
// frame, creating it if needed.
func (a *Animation) ResetKeyframe(frame int, s *Skeleton) bool {
	kf := a.GetKeyframe(frame)
	if kf == nil {
		var ok bool
		if kf, ok = a.AddKeyframe(frame); !ok {
			return false
		}
	}
	kf.SetBones(s)
	a.notify(Event{Kind: EventKeyframeReset, Frame: frame, Bone: NoIndex})
	return true
}

// KeyBone stores a copy of b as its target pose in the keyframe at frame.
func (a *Animation) KeyBone(frame int, b Bone) bool {
	kf := a.GetKeyframe(frame)
	if kf == nil {
		return false
	}
	kf.AddBone(b.DeepClone())
	a.notify(Event{Kind: EventKeyframeChanged, Frame: frame, Bone: b.Index})
	return true
}

// SetBlendFactor sets a bone's weight in the keyframe at frame.
func (a *Animation) SetBlendFactor(frame, bone int, factor float64) bool {
	kf := a.GetKeyframe(frame)
	if kf == nil || !kf.ExistsBone(bone) {
		return false
	}
	kf.SetBlendFactor(bone, factor)
	a.notify(Event{Kind: EventKeyframeChanged, Frame: frame, Bone: bone})
	return true
}

// HasBone reports whether any keyframe touches the bone.
func (a *Animation) HasBone(bone int) bool {
	for _, kf := range a.keyframes {
		if kf.ExistsBone(bone) {
			return true
		}
	}
	return false
}

// GetNextKeyframe finds the closest keyframe strictly ahead of ref that
// touches the bone. Distances wrap around the loop, with the last keyframe's
// frame as the wrap boundary.
func (a *Animation) GetNextKeyframe(bone, ref int) (*Keyframe, error) {
	last := a.LastFrame()
	var best *Keyframe
	bestDist := 0
	for _, kf := range a.keyframes {
		if !kf.ExistsBone(bone) {
			continue
		}
		var dist int
		if kf.Frame > ref {
			dist = kf.Frame - ref
		} else {
			dist = ((last + 1) - (ref + 1)) + (kf.Frame + 1)
		}
		if best == nil || dist < bestDist {
			best, bestDist = kf, dist
		}
	}
	if best == nil {
		return nil, fmt.Errorf("next keyframe for bone %d in %q: %w", bone, a.Name, ErrBoneNotKeyed)
	}
	return best, nil
}

// GetPreviousKeyframe finds the closest keyframe at or behind ref that
// touches the bone, wrapping the same way as GetNextKeyframe.
func (a *Animation) GetPreviousKeyframe(bone, ref int) (*Keyframe, error) {
	last := a.LastFrame()
	var best *Keyframe
	bestDist := 0
	for _, kf := range a.keyframes {
		if !kf.ExistsBone(bone) {
			continue
		}
		var dist int
		if kf.Frame <= ref {
			dist = ref - kf.Frame
		} else {
			dist = (ref + 1) + ((last + 1) - (kf.Frame + 1))
		}
		if best == nil || dist < bestDist {
			best, bestDist = kf, dist
		}
	}
	if best == nil {
		return nil, fmt.Errorf("previous keyframe for bone %d in %q: %w", bone, a.Name, ErrBoneNotKeyed)
	}
	return best, nil
}

// GetTimeBetweenFrames returns the playback time from start to end going
// forward around the loop. Equal frames span one full loop.
func (a *Animation) GetTimeBetweenFrames(start, end int) float64 {
	switch {
	case start > end:
		return a.frameTime * float64((a.numberOfFrames-(start+1))+(end+1))
	case start < end:
		return a.frameTime * float64((end+1)-(start+1))
	default:
		return a.frameTime * float64(a.numberOfFrames)
	}
}

// CalculateInterpolation returns how far playback has moved from the
// previous keyframe towards the next one, in [0,1).
func (a *Animation) CalculateInterpolation(previous, next int) float64 {
	total := a.GetTimeBetweenFrames(previous, next)
	if total <= 0 {
		return 0
	}
	if previous == a.currentFrame {
		return a.elapsed / total
	}
	return (a.GetTimeBetweenFrames(previous, a.currentFrame) + a.elapsed) / total
}

// TransformBone returns the bone's relative rotation at the current playback
// time. Bones the animation does not key keep their current rotation.
//
// Angles are blended linearly without taking the shortest arc, so targets on
// either side of ±π sweep the long way round.
func (a *Animation) TransformBone(b *Bone) float64 {
	if !a.HasBone(b.Index) {
		return b.RelativeRotation
	}
	prevKf, err := a.GetPreviousKeyframe(b.Index, a.currentFrame)
	if err != nil {
		return b.RelativeRotation
	}
	nextKf, err := a.GetNextKeyframe(b.Index, a.currentFrame)
	if err != nil {
		return b.RelativeRotation
	}
	from, _ := prevKf.GetBone(b.Index)
	to, _ := nextKf.GetBone(b.Index)

	t := a.CalculateInterpolation(prevKf.Frame, nextKf.Frame)
	return from.RelativeRotation + (to.RelativeRotation-from.RelativeRotation)*t
}

// GetBlendFactor returns the weight the animation applies to a bone: the
// next keyframe's factor scaled by Strength, or 0 for an unkeyed bone.
func (a *Animation) GetBlendFactor(bone int) float64 {
	if !a.HasBone(bone) {
		return 0
	}
	next, err := a.GetNextKeyframe(bone, a.currentFrame)
	if err != nil {
		return 0
	}
	return next.GetBlendFactor(bone) * a.strength
}

// Update advances playback by dt seconds. At most one frame is advanced per
// call.
func (a *Animation) Update(dt float64) {
	if !a.active {
		return
	}
	a.elapsed += dt
	if a.elapsed >= a.frameTime {
		a.elapsed -= a.frameTime
		a.currentFrame = a.nextFrame
		a.updateNextFrame()
	}
}

func (a *Animation) updateNextFrame() {
	if a.currentFrame == a.LastFrame() || a.currentFrame+1 >= a.numberOfFrames {
		a.nextFrame = 0
		return
	}
	a.nextFrame = a.currentFrame + 1
}

func (a *Animation) sortKeyframes() {
	slices.SortStableFunc(a.keyframes, func(x, y *Keyframe) int {
		return cmp.Compare(x.Frame, y.Frame)
	})
}

func (a *Animation) notify(e Event) {
	if a.emit == nil {
		return
	}
	e.Animation = a
	a.emit(e)
}

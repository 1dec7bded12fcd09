package persist

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/rigdemo/internal/domain/anim"
)

// Wire layout, little-endian throughout:
//
//	skeleton:  "RIG1" [bones:i32] bone* [animations:i32] (name [strength:f32] animation)*
//	animation: [frameTime:f32] [frames:i32] [keyframes:i32] keyframe*
//	keyframe:  [frame:i32] [bones:i32] (bone [blend:f32])*
//	bone:      name [index:i32] [parent:i32] [x y rot relX relY relRot relDir scale length : f32]
//	name:      [len:u16] bytes
var skeletonMagic = [4]byte{'R', 'I', 'G', '1'}

// maxCount bounds any decoded element count.
const maxCount = 1 << 16

var (
	ErrBadMagic = errors.New("not a skeleton file")
	ErrTooLarge = errors.New("element count out of range")
)

// encoder keeps the first write error so callers check once at the end.
type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) put(v any) {
	if e.err != nil {
		return
	}
	e.err = binary.Write(e.w, binary.LittleEndian, v)
}

func (e *encoder) i32(v int)     { e.put(int32(v)) }
func (e *encoder) f32(v float64) { e.put(float32(v)) }

func (e *encoder) name(s string) {
	if len(s) > math.MaxUint16 {
		if e.err == nil {
			e.err = fmt.Errorf("name %.16q...: %w", s, ErrTooLarge)
		}
		return
	}
	e.put(uint16(len(s)))
	e.put([]byte(s))
}

func (e *encoder) bone(b anim.Bone) {
	e.name(b.Name)
	e.i32(b.Index)
	e.i32(b.ParentIndex)
	e.f32(b.Position.X())
	e.f32(b.Position.Y())
	e.f32(b.Rotation)
	e.f32(b.RelativePosition.X())
	e.f32(b.RelativePosition.Y())
	e.f32(b.RelativeRotation)
	e.f32(b.RelativeDirection)
	e.f32(b.Scale)
	e.f32(b.Length)
}

func (e *encoder) animation(a *anim.Animation) {
	e.f32(a.FrameTime())
	e.i32(a.NumberOfFrames())
	kfs := a.Keyframes()
	e.i32(len(kfs))
	for _, kf := range kfs {
		e.i32(kf.Frame)
		bones := kf.Bones()
		e.i32(len(bones))
		for _, b := range bones {
			e.bone(b)
			e.f32(kf.GetBlendFactor(b.Index))
		}
	}
}

// decoder mirrors encoder: after the first failure every read is a no-op
// returning zero values.
type decoder struct {
	r   io.Reader
	err error
}

func (d *decoder) get(v any) {
	if d.err != nil {
		return
	}
	d.err = binary.Read(d.r, binary.LittleEndian, v)
}

func (d *decoder) i32() int {
	var v int32
	d.get(&v)
	return int(v)
}

func (d *decoder) f32() float64 {
	var v float32
	d.get(&v)
	return float64(v)
}

func (d *decoder) count() int {
	n := d.i32()
	if d.err == nil && (n < 0 || n > maxCount) {
		d.err = fmt.Errorf("count %d: %w", n, ErrTooLarge)
		return 0
	}
	return n
}

func (d *decoder) name() string {
	var n uint16
	d.get(&n)
	if d.err != nil {
		return ""
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		d.err = err
		return ""
	}
	return string(buf)
}

func (d *decoder) bone() anim.Bone {
	var b anim.Bone
	b.Name = d.name()
	b.Index = d.i32()
	b.ParentIndex = d.i32()
	b.Position = mgl64.Vec2{d.f32(), d.f32()}
	b.Rotation = d.f32()
	b.RelativePosition = mgl64.Vec2{d.f32(), d.f32()}
	b.RelativeRotation = d.f32()
	b.RelativeDirection = d.f32()
	b.Scale = d.f32()
	b.Length = d.f32()
	return b
}

func (d *decoder) animation(name string) (*anim.Animation, error) {
	frameTime := d.f32()
	frames := d.i32()
	n := d.count()
	keyframes := make([]*anim.Keyframe, 0, n)
	for i := 0; i < n && d.err == nil; i++ {
		kf := anim.NewKeyframe(d.i32())
		bones := d.count()
		for j := 0; j < bones && d.err == nil; j++ {
			b := d.bone()
			blend := d.f32()
			kf.AddBone(b)
			kf.SetBlendFactor(b.Index, blend)
		}
		keyframes = append(keyframes, kf)
	}
	if d.err != nil {
		return nil, d.err
	}
	return anim.RestoreAnimation(name, frameTime, frames, keyframes)
}

// EncodeAnimation writes one animation's keyframe data.
func EncodeAnimation(w io.Writer, a *anim.Animation) error {
	e := &encoder{w: w}
	e.animation(a)
	if e.err != nil {
		return fmt.Errorf("failed to encode animation %s: %w", a.Name, e.err)
	}
	return nil
}

// DecodeAnimation reads an animation written by EncodeAnimation. The name
// is not part of the payload.
func DecodeAnimation(r io.Reader, name string) (*anim.Animation, error) {
	d := &decoder{r: r}
	a, err := d.animation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to decode animation %s: %w", name, err)
	}
	return a, nil
}

// EncodeSkeleton writes the bone arena and every animation.
func EncodeSkeleton(w io.Writer, s *anim.Skeleton) error {
	e := &encoder{w: w}
	e.put(skeletonMagic)
	bones := s.Bones()
	e.i32(len(bones))
	for _, b := range bones {
		e.bone(b)
	}
	anims := s.Animations()
	e.i32(len(anims))
	for _, a := range anims {
		e.name(a.Name)
		e.f32(a.Strength())
		e.animation(a)
	}
	if e.err != nil {
		return fmt.Errorf("failed to encode skeleton: %w", e.err)
	}
	return nil
}

// DecodeSkeleton reads a skeleton written by EncodeSkeleton. Decoded
// animations keep their strength and start inactive.
func DecodeSkeleton(r io.Reader) (*anim.Skeleton, error) {
	d := &decoder{r: r}
	var magic [4]byte
	d.get(&magic)
	if d.err != nil {
		return nil, fmt.Errorf("failed to decode skeleton: %w", d.err)
	}
	if magic != skeletonMagic {
		return nil, ErrBadMagic
	}

	s := anim.NewSkeleton()
	n := d.count()
	for i := 0; i < n && d.err == nil; i++ {
		b := d.bone()
		if d.err != nil {
			break
		}
		if _, err := s.AddBone(b); err != nil {
			return nil, fmt.Errorf("failed to decode skeleton: %w", err)
		}
	}

	n = d.count()
	for i := 0; i < n && d.err == nil; i++ {
		name := d.name()
		strength := d.f32()
		a, err := d.animation(name)
		if err != nil {
			return nil, fmt.Errorf("failed to decode skeleton: %w", err)
		}
		a.SetStrength(strength)
		s.AttachAnimation(a)
	}
	if d.err != nil {
		return nil, fmt.Errorf("failed to decode skeleton: %w", d.err)
	}
	return s, nil
}

// MarshalSkeleton is EncodeSkeleton into a byte slice.
func MarshalSkeleton(s *anim.Skeleton) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeSkeleton(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalSkeleton is DecodeSkeleton from a byte slice.
func UnmarshalSkeleton(data []byte) (*anim.Skeleton, error) {
	return DecodeSkeleton(bytes.NewReader(data))
}

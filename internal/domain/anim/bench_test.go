package anim

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// benchBones is roughly a crowd's worth of rigs in one arena
const benchBones = 1_000

// newBenchSkeleton builds a fan of 10-bone chains under one root
func newBenchSkeleton(b *testing.B, animations int) *Skeleton {
	b.Helper()
	s := NewSkeleton()
	if _, err := s.AddBone(NewBone("root", NoIndex, 0)); err != nil {
		b.Fatal(err)
	}
	for i := 1; i < benchBones; i++ {
		parent := 0
		if i%10 != 1 {
			parent = i - 1
		}
		if _, err := s.AddBone(NewBone(fmt.Sprintf("b%d", i), parent, 5)); err != nil {
			b.Fatal(err)
		}
		s.SetAbsolutePosition(i, mgl64.Vec2{float64(i % 10 * 5), float64(i / 10)})
		s.UpdateRelativeDirection(i)
	}

	for n := 0; n < animations; n++ {
		a := s.AddAnimation(fmt.Sprintf("a%d", n))
		if kf, ok := a.AddKeyframe(10); ok {
			kf.SetBones(s)
		}
		a.SetActive(true)
	}
	return s
}

// Case 1: propagation only, no animation touches the pose

func BenchmarkTransformSkeleton_NoAnimation(b *testing.B) {
	s := newBenchSkeleton(b, 0)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		s.TransformSkeleton()
	}
}

// Case 2: one animation keys every bone

func BenchmarkTransformSkeleton_OneAnimation(b *testing.B) {
	s := newBenchSkeleton(b, 1)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		s.Update(DefaultFrameTime)
	}
}

// Case 3: several animations blend into every bone

func BenchmarkTransformSkeleton_FourAnimations(b *testing.B) {
	s := newBenchSkeleton(b, 4)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		s.Update(DefaultFrameTime)
	}
}

// Case 4: ranging the arena by value vs pointers by index

func BenchmarkBones_Range(b *testing.B) {
	s := newBenchSkeleton(b, 0)
	var sum float64
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		sum = 0
		for _, bone := range s.Bones() {
			sum += bone.Position.X()
		}
	}
	_ = sum
}

func BenchmarkBones_Index(b *testing.B) {
	s := newBenchSkeleton(b, 0)
	var sum float64
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		sum = 0
		for i := 0; i < s.Len(); i++ {
			sum += s.Bone(i).Position.X()
		}
	}
	_ = sum
}

package persist

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"github.com/younwookim/rigdemo/internal/domain/anim"
)

// ErrNotFound is returned when a slot has never been saved.
var ErrNotFound = errors.New("slot not found")

// Storage object keys
const (
	rigObject       = "rigs"
	animationObject = "animations"
)

// Store keeps named rig slots in the user's data directory.
// With a nil manager it falls back to memory for the session.
type Store struct {
	gm     *gdata.Manager
	memory map[string][]byte
}

// OpenStore opens the data directory for appName. Failure is logged and
// yields a memory-only store.
func OpenStore(appName string) *Store {
	gm, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Store] Warning: storage unavailable: %v (saves last for this session only)", err)
		gm = nil
	}
	return NewStore(gm)
}

// NewStore wraps a gdata manager, nil allowed.
func NewStore(gm *gdata.Manager) *Store {
	return &Store{
		gm:     gm,
		memory: make(map[string][]byte),
	}
}

// Persistent reports whether saves survive a restart.
func (s *Store) Persistent() bool {
	return s.gm != nil
}

// SaveSkeleton stores the skeleton and its animations under name.
func (s *Store) SaveSkeleton(name string, skel *anim.Skeleton) error {
	data, err := MarshalSkeleton(skel)
	if err != nil {
		return err
	}
	if err := s.save(rigObject, name, data); err != nil {
		return fmt.Errorf("failed to save rig %s: %w", name, err)
	}
	log.Printf("[Store] Saved rig %s (%d bones, %d animations, %d bytes)", name, skel.Len(), len(skel.Animations()), len(data))
	return nil
}

// LoadSkeleton reads a skeleton saved under name.
func (s *Store) LoadSkeleton(name string) (*anim.Skeleton, error) {
	data, err := s.load(rigObject, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load rig %s: %w", name, err)
	}
	skel, err := UnmarshalSkeleton(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load rig %s: %w", name, err)
	}
	log.Printf("[Store] Loaded rig %s", name)
	return skel, nil
}

// HasSkeleton reports whether a rig slot exists.
func (s *Store) HasSkeleton(name string) bool {
	return s.exists(rigObject, name)
}

// SaveAnimation stores a single animation, keyed by its name.
func (s *Store) SaveAnimation(a *anim.Animation) error {
	var buf bytes.Buffer
	if err := EncodeAnimation(&buf, a); err != nil {
		return err
	}
	if err := s.save(animationObject, a.Name, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save animation %s: %w", a.Name, err)
	}
	log.Printf("[Store] Saved animation %s (%d keyframes)", a.Name, len(a.Keyframes()))
	return nil
}

// LoadAnimation reads an animation saved by SaveAnimation. The caller
// attaches it to a skeleton.
func (s *Store) LoadAnimation(name string) (*anim.Animation, error) {
	data, err := s.load(animationObject, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load animation %s: %w", name, err)
	}
	return DecodeAnimation(bytes.NewReader(data), name)
}

func (s *Store) save(object, prop string, data []byte) error {
	if s.gm == nil {
		s.memory[object+"/"+prop] = bytes.Clone(data)
		return nil
	}
	return s.gm.SaveObjectProp(object, prop, data)
}

func (s *Store) load(object, prop string) ([]byte, error) {
	if s.gm == nil {
		data, ok := s.memory[object+"/"+prop]
		if !ok {
			return nil, ErrNotFound
		}
		return data, nil
	}
	if !s.gm.ObjectPropExists(object, prop) {
		return nil, ErrNotFound
	}
	return s.gm.LoadObjectProp(object, prop)
}

func (s *Store) exists(object, prop string) bool {
	if s.gm == nil {
		_, ok := s.memory[object+"/"+prop]
		return ok
	}
	return s.gm.ObjectPropExists(object, prop)
}

package ecs

import (
	"slices"

	"github.com/younwookim/rigdemo/internal/domain/anim"
	"github.com/younwookim/rigdemo/internal/domain/entity"
)

// World holds all component maps and the next entity ID
type World struct {
	nextID entity.EntityID

	// Components
	Body      map[entity.EntityID]*entity.Body
	Character map[entity.EntityID]*entity.Character

	// Tags
	IsSelected map[entity.EntityID]struct{}
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:     1, // 0 is "nil"
		Body:       make(map[entity.EntityID]*entity.Body),
		Character:  make(map[entity.EntityID]*entity.Character),
		IsSelected: make(map[entity.EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID (never recycled)
func (w *World) NewEntity() entity.EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id entity.EntityID) {
	delete(w.Body, id)
	delete(w.Character, id)
	delete(w.IsSelected, id)
}

// Exists checks if an entity has a Character component
func (w *World) Exists(id entity.EntityID) bool {
	_, ok := w.Character[id]
	return ok
}

// CreateCharacter creates a rigged character standing on a body at a pixel
// position. A nil body gives a free-standing rig posed by hand.
func (w *World) CreateCharacter(name string, skel *anim.Skeleton, body *entity.Body) entity.EntityID {
	id := w.NewEntity()

	var source entity.PoseSource
	if body != nil {
		w.Body[id] = body
		source = body
	}
	w.Character[id] = entity.NewCharacter(id, name, source, skel)
	return id
}

// Characters returns character IDs in creation order
func (w *World) Characters() []entity.EntityID {
	ids := make([]entity.EntityID, 0, len(w.Character))
	for id := range w.Character {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Select tags one character as the editing target, clearing any other
func (w *World) Select(id entity.EntityID) {
	clear(w.IsSelected)
	if w.Exists(id) {
		w.IsSelected[id] = struct{}{}
	}
}

// Selected returns the selected character, nil if none
func (w *World) Selected() *entity.Character {
	for id := range w.IsSelected {
		return w.Character[id]
	}
	return nil
}

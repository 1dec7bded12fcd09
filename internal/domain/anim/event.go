package anim

// EventKind identifies a change to a skeleton or one of its animations.
type EventKind int

const (
	EventBoneAdded EventKind = iota
	EventBoneChanged
	EventAnimationAdded
	EventAnimationRemoved
	EventKeyframeAdded
	EventKeyframeRemoved
	EventKeyframeReset
	EventKeyframeChanged
	EventPlayStateChanged
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventBoneAdded:
		return "BoneAdded"
	case EventBoneChanged:
		return "BoneChanged"
	case EventAnimationAdded:
		return "AnimationAdded"
	case EventAnimationRemoved:
		return "AnimationRemoved"
	case EventKeyframeAdded:
		return "KeyframeAdded"
	case EventKeyframeRemoved:
		return "KeyframeRemoved"
	case EventKeyframeReset:
		return "KeyframeReset"
	case EventKeyframeChanged:
		return "KeyframeChanged"
	case EventPlayStateChanged:
		return "PlayStateChanged"
	default:
		return "Unknown"
	}
}

// Event describes one change. Animation, Frame and Bone are set when they
// apply to the kind; Bone is NoIndex otherwise.
type Event struct {
	Kind      EventKind
	Animation *Animation
	Frame     int
	Bone      int
}

// Listener receives skeleton events.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// observers is an ordered listener list with explicit removal handles.
type observers struct {
	nextID int
	subs   []subscription
}

func (o *observers) subscribe(fn Listener) func() {
	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

func (o *observers) emit(e Event) {
	// Copy so listeners may unsubscribe while being notified.
	subs := append([]subscription(nil), o.subs...)
	for _, s := range subs {
		s.fn(e)
	}
}

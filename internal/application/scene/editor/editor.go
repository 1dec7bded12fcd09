// Package editor is the rig editing scene: a character stands in a level
// while its skeleton is posed, keyed and played back.
package editor

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/rigdemo/internal/application/journal"
	"github.com/younwookim/rigdemo/internal/application/scene"
	"github.com/younwookim/rigdemo/internal/application/state"
	"github.com/younwookim/rigdemo/internal/application/system"
	"github.com/younwookim/rigdemo/internal/domain/anim"
	"github.com/younwookim/rigdemo/internal/domain/entity"
	"github.com/younwookim/rigdemo/internal/ecs"
	"github.com/younwookim/rigdemo/internal/infrastructure/config"
	"github.com/younwookim/rigdemo/internal/infrastructure/persist"
)

// Colors for rendering
var (
	colorBG           = color.RGBA{26, 26, 46, 255}
	colorWall         = color.RGBA{80, 80, 100, 255}
	colorPlatform     = color.RGBA{110, 90, 70, 255}
	colorDecoration   = color.RGBA{45, 45, 70, 255}
	colorHitbox       = color.RGBA{100, 200, 100, 60}
	colorBone         = color.RGBA{220, 220, 220, 255}
	colorBoneSelected = color.RGBA{255, 200, 100, 255}
	colorJoint        = color.RGBA{100, 160, 255, 255}
	colorTimelineBG   = color.RGBA{40, 40, 60, 220}
	colorFrame        = color.RGBA{70, 70, 95, 255}
	colorKeyframe     = color.RGBA{255, 215, 0, 255}
	colorPlayhead     = color.RGBA{255, 100, 100, 255}
	colorRecording    = color.RGBA{220, 40, 40, 255}
)

const (
	timelineHeight = 14.0
	messageTime    = 2.0 // seconds a status message stays up
)

// Editor implements scene.Scene
type Editor struct {
	config *config.GameConfig
	level  *entity.Level
	state  state.EditorState

	world     *ecs.World
	character entity.EntityID
	body      *entity.Body
	joints    []*jointMarker

	physicsSystem   *system.PhysicsSystem
	inputSystem     *system.InputSystem
	animationSystem *system.AnimationSystem

	store          *persist.Store
	recorder       *journal.Recorder
	recordFilename string
	replayer       *journal.Replayer

	camera    *Camera
	following bool

	screenW  int
	screenH  int
	tileSize int

	// Selection
	boneIndex int
	animIndex int

	showDecoration bool
	message        string
	messageTimer   float64
}

// New creates the editor around an already loaded level and skeleton
func New(cfg *config.GameConfig, level *entity.Level, skel *anim.Skeleton, store *persist.Store) *Editor {
	ec := cfg.Editor
	body := &entity.Body{
		Hitbox: entity.HitboxRect{
			OffsetX: ec.Character.Hitbox.OffsetX,
			OffsetY: ec.Character.Hitbox.OffsetY,
			Width:   ec.Character.Hitbox.Width,
			Height:  ec.Character.Hitbox.Height,
		},
		FacingRight: true,
	}
	body.SetPixelPos(level.SpawnX, level.SpawnY)

	world := ecs.NewWorld()
	id := world.CreateCharacter(ec.Character.Name, skel, body)
	world.Select(id)
	world.Character[id].RootOffset = mgl64.Vec2{
		float64(ec.Character.RootOffset.X),
		float64(ec.Character.RootOffset.Y),
	}

	e := &Editor{
		config:          cfg,
		level:           level,
		state:           state.StateEditing,
		world:           world,
		character:       id,
		body:            body,
		physicsSystem:   system.NewPhysicsSystem(&ec.Physics, level),
		inputSystem:     system.NewInputSystem(ec),
		animationSystem: system.NewAnimationSystem(world),
		store:           store,
		recordFilename:  ec.Editor.JournalPath,
		camera:          NewCamera(ec.Editor.CameraTween),
		following:       true,
		screenW:         ec.Display.ScreenWidth,
		screenH:         ec.Display.ScreenHeight,
		tileSize:        level.TileSize,
		showDecoration:  true,
	}
	e.attachJoints()

	if e.recordFilename != "" {
		e.recorder = journal.NewRecorder(e.rigName())
		log.Printf("[Editor] recording commands to %s", e.recordFilename)
	}

	return e
}

// Skeleton returns the rig being edited
func (e *Editor) Skeleton() *anim.Skeleton {
	return e.world.Character[e.character].Skeleton
}

// State returns the current editor state
func (e *Editor) State() state.EditorState {
	return e.state
}

// Recorder returns the active command journal, nil if none was started
func (e *Editor) Recorder() *journal.Recorder {
	return e.recorder
}

// Watch plays a journal back one tick at a time on top of live editing
func (e *Editor) Watch(r *journal.Replayer) {
	e.replayer = r
	log.Printf("[Editor] watching journal for %s (%d ticks)", r.Rig(), r.TotalFrames())
}

func (e *Editor) rigName() string {
	if e.config.Rig != nil && e.config.Rig.Name != "" {
		return e.config.Rig.Name
	}
	return e.config.Editor.Editor.Rig
}

// Update reads the keyboard and steps the editor
func (e *Editor) Update(dt float64) (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return nil, scene.ErrQuit
	}
	return nil, e.step(e.inputSystem.GetInput(), dt)
}

// step runs one tick for a given input. Kept apart from Update so it can
// be driven without a window.
func (e *Editor) step(in system.InputState, dt float64) error {
	if in.Play {
		e.setState(e.state.TogglePlay())
	}
	if in.Pause {
		e.setState(e.state.TogglePause())
	}
	if in.Record {
		e.toggleRecording()
	}
	if in.ToggleLayers {
		e.showDecoration = !e.showDecoration
	}
	if in.Save {
		e.save()
	}
	if in.Load {
		e.load()
	}

	skel := e.Skeleton()
	e.boneIndex = cycle(e.boneIndex, delta(in.NextBone, in.PrevBone), skel.Len())
	e.animIndex = cycle(e.animIndex, delta(in.NextAnimation, in.PrevAnimation), len(skel.Animations()))

	// the journal holds while playing, its commands are edits
	if e.replayer != nil && !e.replayer.Done() && e.state.Editable() {
		cmds, _, err := e.replayer.Step()
		if err != nil {
			return err
		}
		for _, cmd := range cmds {
			if err := e.apply(cmd); err != nil {
				return err
			}
		}
	}

	if e.state.Editable() {
		sel := selection(skel, e.animIndex, e.boneIndex)
		for _, cmd := range e.inputSystem.Commands(in, sel) {
			if err := e.apply(cmd); err != nil {
				return err
			}
		}
	}

	if e.state.Running() {
		e.inputSystem.UpdateBody(e.body, in)
		e.physicsSystem.Update(e.body, dt)
		if in.Left || in.Right {
			e.following = true
		}
	} else {
		e.body.VX = 0
	}
	e.animationSystem.SetPaused(!e.state.Running())
	e.animationSystem.Update(dt)

	e.updateCamera(in, dt)

	if e.messageTimer > 0 {
		e.messageTimer -= dt
	}
	if e.recorder != nil {
		e.recorder.Tick()
	}
	return nil
}

// apply runs one editing command, records it and follows up on the
// selection. Rejected commands are reported, not fatal.
func (e *Editor) apply(cmd system.Command) error {
	skel := e.Skeleton()
	if err := system.Apply(skel, cmd); err != nil {
		if errors.Is(err, system.ErrRejected) || errors.Is(err, anim.ErrUnknownAnimation) || errors.Is(err, anim.ErrBoneIndex) {
			e.notify(err.Error())
			return nil
		}
		return fmt.Errorf("failed to apply %s: %w", cmd.Name(), err)
	}

	switch c := cmd.(type) {
	case *system.AddAnimation:
		e.animIndex = len(skel.Animations()) - 1
		e.notify("added " + c.Animation)
	case *system.RemoveAnimation:
		e.animIndex = cycle(e.animIndex, 0, len(skel.Animations()))
		e.notify("removed " + c.Animation)
	case *system.MoveBone:
		// the root follows the body, so move the body with it
		if b := skel.Bone(c.Bone); b != nil && b.IsRoot() {
			e.body.X += int(c.DX * entity.PositionScale)
			e.body.Y += int(c.DY * entity.PositionScale)
		}
	}

	if e.recorder != nil {
		if err := e.recorder.Record(cmd); err != nil {
			log.Printf("[Editor] %v", err)
		}
	}
	return nil
}

func (e *Editor) setState(next state.EditorState) {
	if next == e.state {
		return
	}
	log.Printf("[Editor] %s -> %s", e.state, next)
	e.state = next
}

func (e *Editor) notify(msg string) {
	log.Printf("[Editor] %s", msg)
	e.message = msg
	e.messageTimer = messageTime
}

// toggleRecording starts a fresh journal or stops and saves the running one
func (e *Editor) toggleRecording() {
	if e.recorder != nil && e.recorder.IsRecording() {
		e.recorder.Stop()
		e.saveRecording()
		return
	}
	e.recorder = journal.NewRecorder(e.rigName())
	e.notify("recording")
}

// saveRecording saves the current journal to file
func (e *Editor) saveRecording() {
	if e.recorder == nil || e.recorder.EntryCount() == 0 {
		return
	}

	filename := e.recordFilename
	if filename == "" {
		filename = journal.GenerateFilename()
	}

	if err := e.recorder.Save(filename); err != nil {
		log.Printf("[Editor] failed to save journal: %v", err)
		return
	}
	e.notify(fmt.Sprintf("journal saved: %s (%d commands)", filename, e.recorder.EntryCount()))
}

func (e *Editor) save() {
	if e.store == nil {
		return
	}
	if err := e.store.SaveSkeleton(e.rigName(), e.Skeleton()); err != nil {
		e.notify(fmt.Sprintf("save failed: %v", err))
		return
	}
	e.notify("saved " + e.rigName())
}

// load swaps in the stored skeleton for the rig
func (e *Editor) load() {
	if e.store == nil {
		return
	}
	skel, err := e.store.LoadSkeleton(e.rigName())
	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			e.notify("nothing saved for " + e.rigName())
			return
		}
		e.notify(fmt.Sprintf("load failed: %v", err))
		return
	}
	e.world.Character[e.character].Skeleton = skel
	e.attachJoints()
	e.boneIndex = cycle(e.boneIndex, 0, skel.Len())
	e.animIndex = cycle(e.animIndex, 0, len(skel.Animations()))
	e.notify("loaded " + e.rigName())
}

// attachJoints puts a marker visual on every bone
func (e *Editor) attachJoints() {
	c := e.world.Character[e.character]
	e.joints = e.joints[:0]
	for i := 0; i < c.Skeleton.Len(); i++ {
		m := &jointMarker{}
		if err := c.Attach(i, m); err != nil {
			log.Printf("[Editor] %v", err)
			continue
		}
		e.joints = append(e.joints, m)
	}
}

func (e *Editor) updateCamera(in system.InputState, dt float64) {
	cx, cy := e.camera.View(e.screenW, e.screenH, e.level.PixelWidth(), e.level.PixelHeight())
	if in.Pan {
		e.following = false
		e.camera.ScrollTo(float64(cx+in.MouseX-e.screenW/2), float64(cy+in.MouseY-e.screenH/2))
	}
	if e.following {
		p := e.body.Position()
		e.camera.Follow(p.X()-float64(e.screenW)/2, p.Y()-float64(e.screenH)/2)
	}
	e.camera.Update(dt)
}

// Draw renders the editor screen
func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := e.camera.View(e.screenW, e.screenH, e.level.PixelWidth(), e.level.PixelHeight())

	e.drawTiles(screen, camX, camY)
	e.drawBody(screen, camX, camY)
	e.drawSkeleton(screen, camX, camY)
	e.drawTimeline(screen)
	e.drawUI(screen)

	if e.state == state.StatePaused {
		e.drawPauseOverlay(screen)
	}
}

func (e *Editor) drawTiles(screen *ebiten.Image, camX, camY int) {
	startTileX := camX / e.tileSize
	startTileY := camY / e.tileSize
	endTileX := (camX+e.screenW)/e.tileSize + 1
	endTileY := (camY+e.screenH)/e.tileSize + 1

	for _, layer := range e.level.Layers {
		if !layer.Collision && !e.showDecoration {
			continue
		}
		for ty := startTileY; ty <= endTileY && ty < len(layer.Tiles); ty++ {
			row := layer.Tiles[ty]
			for tx := startTileX; tx <= endTileX && tx < len(row); tx++ {
				c, ok := tileColor(row[tx], layer.Collision)
				if !ok {
					continue
				}
				x := float64(tx*e.tileSize - camX)
				y := float64(ty*e.tileSize - camY)
				ebitenutil.DrawRect(screen, x, y, float64(e.tileSize), float64(e.tileSize), c)
			}
		}
	}
}

func tileColor(t entity.Tile, collision bool) (color.Color, bool) {
	if !collision {
		if t.Type == entity.TileEmpty {
			return nil, false
		}
		return colorDecoration, true
	}
	switch t.Type {
	case entity.TileWall:
		return colorWall, true
	case entity.TilePlatform:
		return colorPlatform, true
	}
	return nil, false
}

func (e *Editor) drawBody(screen *ebiten.Image, camX, camY int) {
	hb := e.body.Hitbox
	x, y, w, h := hb.GetWorldRect(e.body.PixelX(), e.body.PixelY(), true, hb.Width)
	ebitenutil.DrawRect(screen, float64(x-camX), float64(y-camY), float64(w), float64(h), colorHitbox)
}

func (e *Editor) drawSkeleton(screen *ebiten.Image, camX, camY int) {
	cam := mgl64.Vec2{float64(camX), float64(camY)}
	skel := e.Skeleton()
	for _, i := range skel.UpdateOrder() {
		b := skel.Bone(i)
		start := b.Position.Sub(cam)
		end := b.End().Sub(cam)
		c := colorBone
		if i == e.boneIndex {
			c = colorBoneSelected
		}
		ebitenutil.DrawLine(screen, start.X(), start.Y(), end.X(), end.Y(), c)
	}
	for _, m := range e.joints {
		p := m.position.Sub(cam)
		ebitenutil.DrawRect(screen, p.X()-1, p.Y()-1, 3, 3, colorJoint)
	}
}

func (e *Editor) drawTimeline(screen *ebiten.Image) {
	a := currentAnimation(e.Skeleton(), e.animIndex)
	top := float64(e.screenH) - timelineHeight
	ebitenutil.DrawRect(screen, 0, top, float64(e.screenW), timelineHeight, colorTimelineBG)
	if a == nil {
		return
	}

	n := a.NumberOfFrames()
	const margin = 4.0
	width := float64(e.screenW) - 2*margin
	for f := 0; f < n; f++ {
		x, w := frameCell(f, n, margin, width)
		c := colorFrame
		if a.IsKeyframe(f) {
			c = colorKeyframe
		}
		ebitenutil.DrawRect(screen, x, top+3, w-1, timelineHeight-6, c)
	}
	x, w := frameCell(a.CurrentFrame(), n, margin, width)
	ebitenutil.DrawRect(screen, x+w/2-1, top, 2, timelineHeight, colorPlayhead)
}

func (e *Editor) drawUI(screen *ebiten.Image) {
	skel := e.Skeleton()
	sel := selection(skel, e.animIndex, e.boneIndex)

	boneName := "-"
	if b := skel.Bone(sel.Bone); b != nil {
		boneName = b.Name
	}
	animName := sel.Animation
	if animName == "" {
		animName = "-"
	}
	play := ""
	if a := skel.Animation(sel.Animation); a != nil && a.IsActive() {
		play = " (on)"
	}

	text := fmt.Sprintf("%s | bone: %s | anim: %s%s | frame %d/%d",
		e.state, boneName, animName, play, sel.Frame, sel.NumberOfFrames)
	if sel.IsKeyframe {
		text += fmt.Sprintf(" | key blend %.1f", sel.Blend)
	}
	ebitenutil.DebugPrint(screen, text)

	if e.messageTimer > 0 {
		ebitenutil.DebugPrintAt(screen, e.message, 4, e.screenH-int(timelineHeight)-18)
	}
	if e.recorder != nil && e.recorder.IsRecording() {
		ebitenutil.DrawRect(screen, float64(e.screenW-10), 4, 6, 6, colorRecording)
	}
}

func (e *Editor) drawPauseOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(e.screenW), float64(e.screenH), overlay)

	text := "PAUSED\n\nPress P to resume"
	ebitenutil.DebugPrintAt(screen, text, e.screenW/2-50, e.screenH/2-20)
}

// OnEnter is called when entering this scene
func (e *Editor) OnEnter() {
	e.Skeleton().TransformSkeleton()
}

// OnExit is called when leaving this scene
func (e *Editor) OnExit() {
	e.saveRecording()
}

// jointMarker is the visual attached to each bone: it only remembers where
// the bone was last posed.
type jointMarker struct {
	position mgl64.Vec2
	rotation float64
}

func (m *jointMarker) SetPose(position mgl64.Vec2, rotation float64) {
	m.position = position
	m.rotation = rotation
}

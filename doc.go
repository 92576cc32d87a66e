// Package vpad provides virtual on-screen gamepad controls for
// [Ebitengine]: analogue sticks, digital 4-way pads, and buttons driven by
// touch or mouse input.
//
// # Quick start
//
// Create a [Manager], add controls, and call [Manager.Update] once per
// frame from your game's Update:
//
//	pad := vpad.NewManager()
//	stick := pad.AddStick(vpad.StickConfig{
//		Name: "move", X: 100, Y: 380, Distance: 60,
//	})
//	jump := pad.AddButton(vpad.ButtonConfig{
//		Name: "jump", X: 540, Y: 380,
//		HitArea: vpad.HitCircle{Radius: 40},
//	})
//	jump.AddKey(ebiten.KeySpace)
//
//	func (g *Game) Update() error {
//		pad.Update()
//		g.player.Move(stick.ForceX(), stick.ForceY())
//		return nil
//	}
//
// Controls expose their derived values as getters polled each frame
// (force, x/y, direction, duration) and also dispatch notifications on
// state transitions via OnDown, OnUp, OnMove, and OnUpdate.
//
// # Rendering
//
// vpad draws nothing. Each control exposes the authoritative values a
// renderer must consult every frame: position, handle position, scale,
// alpha, visibility, and a current frame selector string. Frame and
// texture identifiers are free-form names, typically loaded from a JSON
// skin manifest with [LoadSkin] and resolved against the consumer's own
// texture atlas. See examples/basic for a renderer built on Ebitengine's
// vector package.
//
// # Multi-touch
//
// Each control independently binds at most one pointer, so several
// controls can be operated at once. The Manager grows the pointer source's
// contact capacity as controls are added beyond the default of two.
//
// # ECS integration
//
// Set an [EventSink] on the Manager to receive every notification as a
// flat [Event]; the vpad/ecs sub-package publishes them to a [Donburi]
// world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package vpad

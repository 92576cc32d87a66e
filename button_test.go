package vpad

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// newTestButton builds a circular button at (400, 300) with a 40 hit radius.
func newTestButton(t *testing.T) (*Manager, *Button, *fakeClock) {
	t.Helper()
	m, clk := newTestManager()
	b := m.AddButton(ButtonConfig{
		Name: "fire", X: 400, Y: 300,
		HitArea: HitCircle{Radius: 40},
	})
	return m, b, clk
}

// --- Press and release ---

func TestButtonPressRelease(t *testing.T) {
	m, b, clk := newTestButton(t)

	var downs, ups int
	b.OnDown(func(ButtonContext) { downs++ })
	b.OnUp(func(ctx ButtonContext) {
		ups++
		if ctx.Duration != 250*time.Millisecond {
			t.Errorf("up Duration = %v, want 250ms", ctx.Duration)
		}
	})

	m.Source().InjectDown(0, 410, 310)
	m.Update()
	if !b.IsDown() {
		t.Fatal("button not down after a press inside the hit area")
	}
	if downs != 1 {
		t.Errorf("down fired %d times, want 1", downs)
	}

	clk.advance(250 * time.Millisecond)
	m.Source().InjectUp(0, 410, 310)
	m.Update()
	if b.IsDown() {
		t.Error("button still down after release")
	}
	if ups != 1 {
		t.Errorf("up fired %d times, want 1", ups)
	}
	if got := b.Duration(); got != 250*time.Millisecond {
		t.Errorf("Duration = %v after release, want 250ms", got)
	}
}

func TestButtonMissedPressIgnored(t *testing.T) {
	m, b, _ := newTestButton(t)

	m.Source().InjectDown(0, 450, 300) // 50 from center, past the 40 radius
	m.Update()
	if b.IsDown() {
		t.Error("button reacted to a press outside its hit area")
	}

	// A release that follows a missed press is also ignored.
	m.Source().InjectUp(0, 450, 300)
	m.Update()
	if b.Pointer() != nil {
		t.Error("button bound a pointer from a missed press")
	}
}

func TestButtonHitRect(t *testing.T) {
	m, _ := newTestManager()
	b := m.AddButton(ButtonConfig{
		Name: "pause", X: 300, Y: 40,
		HitArea: HitRect{X: -60, Y: -20, Width: 120, Height: 40},
	})

	m.Source().InjectDown(0, 355, 55) // inside the rect corner
	m.Update()
	if !b.IsDown() {
		t.Error("press inside the rect ignored")
	}
	m.Source().InjectUp(0, 355, 55)
	m.Update()

	m.Source().InjectDown(0, 365, 55) // just past the right edge
	m.Update()
	if b.IsDown() {
		t.Error("press outside the rect accepted")
	}
}

func TestButtonScaledHitArea(t *testing.T) {
	m, b, _ := newTestButton(t)
	b.SetScale(2)

	// 60 from center: outside the unscaled radius, inside the doubled one.
	m.Source().InjectDown(0, 460, 300)
	m.Update()
	if !b.IsDown() {
		t.Error("scaled button ignored a press inside its scaled hit area")
	}
}

func TestButtonDragOffReleasesOnUpOnly(t *testing.T) {
	m, b, _ := newTestButton(t)

	m.Source().InjectDown(0, 400, 300)
	m.Source().InjectMove(0, 600, 100) // drag far away while held
	m.Update()
	if !b.IsDown() {
		t.Error("button released by a move; only up releases it")
	}

	m.Source().InjectUp(0, 600, 100)
	m.Update()
	if b.IsDown() {
		t.Error("button not released by the bound pointer's up")
	}
}

func TestButtonStalePointerUpIgnored(t *testing.T) {
	m, b, _ := newTestButton(t)
	m.Source().SetMaxPointers(3)

	m.Source().InjectDown(1, 400, 300)
	m.Update()

	m.Source().InjectDown(2, 100, 100)
	m.Source().InjectUp(2, 100, 100)
	m.Update()
	if !b.IsDown() {
		t.Error("button released by an unrelated pointer")
	}
}

// --- Repeat-fire ---

func TestButtonRepeatFire(t *testing.T) {
	m, clk := newTestManager()
	b := m.AddButton(ButtonConfig{
		Name: "shoot", X: 400, Y: 300,
		HitArea:    HitCircle{Radius: 40},
		RepeatRate: 100 * time.Millisecond,
	})

	downs := 0
	b.OnDown(func(ButtonContext) { downs++ })

	m.Source().InjectDown(0, 400, 300)
	m.Update()
	if downs != 1 {
		t.Fatalf("initial press fired %d downs, want 1", downs)
	}

	// Hold for 350ms in 35ms frames: repeats at 100, 200 and 300ms.
	for i := 0; i < 10; i++ {
		clk.advance(35 * time.Millisecond)
		m.Update()
	}
	if downs != 4 {
		t.Errorf("%d downs after 350ms at 100ms rate, want 4", downs)
	}

	m.Source().InjectUp(0, 400, 300)
	m.Update()
	clk.advance(time.Second)
	m.Update()
	if downs != 4 {
		t.Errorf("repeat fired after release: %d downs", downs)
	}
}

func TestButtonNoRepeatByDefault(t *testing.T) {
	m, b, clk := newTestButton(t)

	downs := 0
	b.OnDown(func(ButtonContext) { downs++ })

	m.Source().InjectDown(0, 400, 300)
	m.Update()
	for i := 0; i < 10; i++ {
		clk.advance(100 * time.Millisecond)
		m.Update()
	}
	if downs != 1 {
		t.Errorf("%d downs without a repeat rate, want 1", downs)
	}
}

// --- Key binding ---

// keyState simulates the host keyboard for one bound key.
type keyState struct {
	pressed bool
}

func bindTestKey(m *Manager) *keyState {
	ks := &keyState{}
	m.keyFn = func(ebiten.Key) bool { return ks.pressed }
	return ks
}

func TestButtonKeyPressRelease(t *testing.T) {
	m, b, clk := newTestButton(t)
	ks := bindTestKey(m)

	if !b.AddKey(ebiten.KeySpace) {
		t.Fatal("AddKey returned false for a fresh binding")
	}

	var downCtx, upCtx ButtonContext
	b.OnDown(func(ctx ButtonContext) { downCtx = ctx })
	b.OnUp(func(ctx ButtonContext) { upCtx = ctx })

	ks.pressed = true
	m.Update()
	if !b.IsDown() {
		t.Fatal("button not down from the bound key")
	}
	if !downCtx.FromKey || downCtx.Key != ebiten.KeySpace {
		t.Errorf("down context = %+v, want FromKey with KeySpace", downCtx)
	}
	if downCtx.Pointer != nil {
		t.Error("key-driven down carries a pointer")
	}

	// Holding the key does not re-fire without a repeat rate.
	m.Update()
	m.Update()

	clk.advance(120 * time.Millisecond)
	ks.pressed = false
	m.Update()
	if b.IsDown() {
		t.Error("button still down after key release")
	}
	if !upCtx.FromKey || upCtx.Duration != 120*time.Millisecond {
		t.Errorf("up context = %+v, want FromKey with 120ms duration", upCtx)
	}
}

func TestButtonAddKeySameIsNoOp(t *testing.T) {
	_, b, _ := newTestButton(t)

	b.AddKey(ebiten.KeySpace)
	if b.AddKey(ebiten.KeySpace) {
		t.Error("rebinding the same key returned true")
	}
	if k, ok := b.Key(); !ok || k != ebiten.KeySpace {
		t.Errorf("Key = (%v, %v), want (KeySpace, true)", k, ok)
	}
}

func TestButtonAddKeyReplacesBinding(t *testing.T) {
	m, b, _ := newTestButton(t)
	ks := bindTestKey(m)

	b.AddKey(ebiten.KeySpace)
	ks.pressed = true
	m.Update()
	if !b.IsDown() {
		t.Fatal("button not down from the first key")
	}

	// Binding a different key releases the key-held press.
	if !b.AddKey(ebiten.KeyEnter) {
		t.Fatal("AddKey returned false for a different key")
	}
	if b.IsDown() {
		t.Error("key-held press survived rebinding")
	}
	if k, _ := b.Key(); k != ebiten.KeyEnter {
		t.Errorf("Key = %v, want KeyEnter", k)
	}
}

func TestButtonRemoveKeyReleasesHeldPress(t *testing.T) {
	m, b, _ := newTestButton(t)
	ks := bindTestKey(m)

	b.AddKey(ebiten.KeySpace)
	ks.pressed = true
	m.Update()

	b.RemoveKey()
	if b.IsDown() {
		t.Error("key-held press survived RemoveKey")
	}
	if _, ok := b.Key(); ok {
		t.Error("key still bound after RemoveKey")
	}
}

func TestButtonKeyDoesNotReleasePointerPress(t *testing.T) {
	m, b, _ := newTestButton(t)
	ks := bindTestKey(m)
	b.AddKey(ebiten.KeySpace)

	// Press with the pointer, then tap and release the key: the pointer
	// press must survive the key edges.
	m.Source().InjectDown(0, 400, 300)
	m.Update()

	ks.pressed = true
	m.Update()
	ks.pressed = false
	m.Update()

	if !b.IsDown() {
		t.Error("pointer press released by key edges")
	}
}

// --- Lifecycle ---

func TestButtonDisabledIgnoresPress(t *testing.T) {
	m, b, _ := newTestButton(t)

	b.SetEnabled(false)
	m.Source().InjectDown(0, 400, 300)
	m.Update()
	if b.IsDown() {
		t.Error("disabled button reacted to a press")
	}
}

func TestButtonFrames(t *testing.T) {
	m, _ := newTestManager()
	b := m.AddButton(ButtonConfig{
		Name: "fire", X: 400, Y: 300,
		HitArea:   HitCircle{Radius: 40},
		UpFrame:   "btn-up",
		DownFrame: "btn-down",
	})

	if got := b.Frame(); got != "btn-up" {
		t.Errorf("idle Frame = %q, want btn-up", got)
	}
	m.Source().InjectDown(0, 400, 300)
	m.Update()
	if got := b.Frame(); got != "btn-down" {
		t.Errorf("pressed Frame = %q, want btn-down", got)
	}
}

func TestButtonDestroyIdempotent(t *testing.T) {
	m, b, _ := newTestButton(t)

	downs := 0
	b.OnDown(func(ButtonContext) { downs++ })

	b.Destroy()
	b.Destroy()

	m.Source().InjectDown(0, 400, 300)
	m.Update()
	if b.IsDown() || downs != 0 {
		t.Error("destroyed button reacted to a press")
	}
}

package vpad

import (
	"encoding/json"
	"fmt"
)

// SkinStick names the two frames a stick renders: the base circle and the
// draggable handle.
type SkinStick struct {
	Base  string `json:"base"`
	Stick string `json:"stick"`
}

// SkinButton names the frames for a button's two states.
type SkinButton struct {
	Up   string `json:"up"`
	Down string `json:"down"`
}

// Skin is a parsed skin manifest: a texture/atlas key plus the named
// sub-frames for each control state. All identifiers are free-form strings
// resolved by the consumer's renderer; the library never loads images.
type Skin struct {
	Texture string
	Stick   SkinStick
	DPad    DPadFrames

	buttons map[string]SkinButton
}

type jsonSkin struct {
	Texture string                `json:"texture"`
	Stick   SkinStick             `json:"stick"`
	DPad    jsonDPadFrames        `json:"dpad"`
	Buttons map[string]SkinButton `json:"buttons"`
}

type jsonDPadFrames struct {
	Neutral string `json:"neutral"`
	Up      string `json:"up"`
	Down    string `json:"down"`
	Left    string `json:"left"`
	Right   string `json:"right"`
}

// LoadSkin parses a JSON skin manifest.
func LoadSkin(jsonData []byte) (*Skin, error) {
	var raw jsonSkin
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, fmt.Errorf("vpad: failed to parse skin JSON: %w", err)
	}
	if raw.Texture == "" {
		return nil, fmt.Errorf("vpad: skin JSON has no \"texture\" key")
	}
	return &Skin{
		Texture: raw.Texture,
		Stick:   raw.Stick,
		DPad: DPadFrames{
			Neutral: raw.DPad.Neutral,
			Up:      raw.DPad.Up,
			Down:    raw.DPad.Down,
			Left:    raw.DPad.Left,
			Right:   raw.DPad.Right,
		},
		buttons: raw.Buttons,
	}, nil
}

// Button returns the frames for the named button. Unknown names log a
// warning (debug stderr) and return empty frames.
func (s *Skin) Button(name string) SkinButton {
	if b, ok := s.buttons[name]; ok {
		return b
	}
	debugf("skin has no button %q", name)
	return SkinButton{}
}

// HasButton reports whether the skin defines frames for the named button.
func (s *Skin) HasButton(name string) bool {
	_, ok := s.buttons[name]
	return ok
}

// StickConfig pre-fills a stick config with the skin's texture and frames.
func (s *Skin) StickConfig(name string, x, y, distance float64) StickConfig {
	return StickConfig{
		Name:       name,
		X:          x,
		Y:          y,
		Distance:   distance,
		Texture:    s.Texture,
		BaseFrame:  s.Stick.Base,
		StickFrame: s.Stick.Stick,
	}
}

// DPadConfig pre-fills a dpad config with the skin's texture and frames.
func (s *Skin) DPadConfig(name string, x, y, distance float64) DPadConfig {
	return DPadConfig{
		Name:     name,
		X:        x,
		Y:        y,
		Distance: distance,
		Texture:  s.Texture,
		Frames:   s.DPad,
	}
}

// ButtonConfig pre-fills a button config with the skin's texture and the
// named button's frames.
func (s *Skin) ButtonConfig(name string, x, y float64, hit HitShape) ButtonConfig {
	frames := s.Button(name)
	return ButtonConfig{
		Name:      name,
		X:         x,
		Y:         y,
		HitArea:   hit,
		Texture:   s.Texture,
		UpFrame:   frames.Up,
		DownFrame: frames.Down,
	}
}

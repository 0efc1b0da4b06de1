package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the path to the editor settings file, relative to the process working directory.
const ConfigPath = "config/editor.yaml"

// KeyBinding names a key plus the modifiers that must be held with it.
// Key may itself be a modifier name ("alt"), making the bare modifier a valid binding.
// Matching requires all listed mods plus the key; other held modifiers are not rejected.
type KeyBinding struct {
	Key  string   `yaml:"key"`
	Mods []string `yaml:"mods,omitempty"`
}

// Snapshot holds the flat editor configuration: bindings, snap steps/toggles, modifier
// assignments, smoothing and placement-plane parameters. The orchestrator pushes a
// snapshot into the session at the start of each frame; the core never writes it back.
type Snapshot struct {
	Bindings map[string]KeyBinding `yaml:"bindings"`

	// Modifier roles for the increment calculator and half-step snapping.
	FineModifier    string `yaml:"fine_modifier"`
	LargeModifier   string `yaml:"large_modifier"`
	ReverseModifier string `yaml:"reverse_modifier"`

	SnapPosition   bool       `yaml:"snap_position"`
	SnapRotation   bool       `yaml:"snap_rotation"`
	SnapScale      bool       `yaml:"snap_scale"`
	PositionStepXZ float32    `yaml:"position_step_xz"`
	PositionStepY  float32    `yaml:"position_step_y"`
	RotationStep   float32    `yaml:"rotation_step_deg"`
	ScaleStep      float32    `yaml:"scale_step"`
	SnapOffset     [3]float32 `yaml:"snap_offset,omitempty"`

	SmoothingEnabled bool    `yaml:"smoothing_enabled"`
	SmoothingRate    float32 `yaml:"smoothing_rate"`

	PlaneHeight  float32 `yaml:"plane_height"`
	SurfaceAlign bool    `yaml:"surface_align"`

	AssetsPath string `yaml:"assets_path,omitempty"`
}

// Default returns the default editor settings: Blender-style modal keys, 1.0 grid with
// 0.5 vertical step, 15 degree rotation snap, smoothing on.
func Default() Snapshot {
	return Snapshot{
		Bindings: map[string]KeyBinding{
			"modal_position": {Key: "g"},
			"modal_rotation": {Key: "r"},
			"modal_scale":    {Key: "l"},
			"axis_x":         {Key: "x"},
			"axis_y":         {Key: "y"},
			"axis_z":         {Key: "z"},
			"confirm":        {Key: "enter"},
			"cancel":         {Key: "escape"},
			"rotate_left":    {Key: "comma"},
			"rotate_right":   {Key: "period"},
			"height_up":      {Key: "e"},
			"height_down":    {Key: "q"},
			"scale_up":       {Key: "equal"},
			"scale_down":     {Key: "minus"},
			"asset_next":     {Key: "rbracket"},
			"asset_prev":     {Key: "lbracket"},
			"cycle_strategy": {Key: "t"},
			"surface_align":  {Key: "n"},
			"place_mode":     {Key: "tab"},
			"transform_mode": {Key: "m"},
			"nudge_left":     {Key: "left"},
			"nudge_right":    {Key: "right"},
			"nudge_forward":  {Key: "up"},
			"nudge_back":     {Key: "down"},
			"backspace":      {Key: "backspace"},
		},
		FineModifier:     "ctrl",
		LargeModifier:    "shift",
		ReverseModifier:  "alt",
		SnapPosition:     true,
		SnapRotation:     true,
		SnapScale:        false,
		PositionStepXZ:   1.0,
		PositionStepY:    0.5,
		RotationStep:     15,
		ScaleStep:        0.1,
		SmoothingEnabled: true,
		SmoothingRate:    18,
		PlaneHeight:      0,
		SurfaceAlign:     false,
	}
}

// Load reads settings from config/editor.yaml. If the file is missing or invalid,
// returns Default() and does not create a file.
func Load() (Snapshot, error) {
	data, err := os.ReadFile(ConfigPath)
	if err != nil {
		return Default(), nil
	}
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), nil
	}
	return s, nil
}

// Save writes settings to config/editor.yaml, creating the config directory if needed.
func Save(s Snapshot) error {
	dir := filepath.Dir(ConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return os.WriteFile(ConfigPath, data, 0644)
}

// Clone returns a deep copy of the snapshot so a session can keep its own copy while
// the live settings keep changing underneath.
func (s Snapshot) Clone() Snapshot {
	var out Snapshot
	_ = copier.CopyWithOption(&out, &s, copier.Option{DeepCopy: true})
	return out
}

package entities

// ImageMode selects which image effects a turn may issue
type ImageMode string

// Image modes
const (
	ImageModeNone      ImageMode = "none"
	ImageModeCharacter ImageMode = "character"
	ImageModeScene     ImageMode = "scene"
	ImageModeBoth      ImageMode = "both"
)

// IncludesScene reports whether scene images are enabled
func (m ImageMode) IncludesScene() bool {
	return m == ImageModeScene || m == ImageModeBoth
}

// IncludesCharacter reports whether portraits are enabled
func (m ImageMode) IncludesCharacter() bool {
	return m == ImageModeCharacter || m == ImageModeBoth
}

// TextEngine names a text generation backend
type TextEngine string

// Text engines
const (
	TextEngineGemini TextEngine = "gemini"
	TextEngineLocal  TextEngine = "local"
)

// ImageEngine names an image generation backend
type ImageEngine string

// Image engines
const (
	ImageEngineGemini           ImageEngine = "gemini"
	ImageEngineLocalPerformance ImageEngine = "local-performance"
	ImageEngineLocalQuality     ImageEngine = "local-quality"
)

// Theme is the UI colour scheme
type Theme string

// Themes
const (
	ThemeVeritas      Theme = "veritas"
	ThemeSciFi        Theme = "sci-fi"
	ThemeFantasy      Theme = "fantasy"
	ThemeHighContrast Theme = "high-contrast"
)

// PanelLayout is the order and relative size of the UI panels
type PanelLayout struct {
	Order []string `json:"order" yaml:"order"`
	Sizes []int    `json:"sizes" yaml:"sizes"`
}

// ComponentVisibility toggles character panel sections
type ComponentVisibility struct {
	CharacterPortrait    bool `json:"characterPortrait" yaml:"character_portrait"`
	CharacterStatus      bool `json:"characterStatus" yaml:"character_status"`
	CharacterSkills      bool `json:"characterSkills" yaml:"character_skills"`
	CharacterInventory   bool `json:"characterInventory" yaml:"character_inventory"`
	CharacterBackstory   bool `json:"characterBackstory" yaml:"character_backstory"`
	CharacterProgression bool `json:"characterProgression" yaml:"character_progression"`
}

// Settings are the player's preferences. The core reads only the image mode,
// the image theme and the engines. The rest is carried for clients.
type Settings struct {
	ImageMode   ImageMode   `json:"imageGenerationMode" yaml:"image_generation_mode"`
	ImageTheme  string      `json:"imageTheme" yaml:"image_theme"`
	TextEngine  TextEngine  `json:"textEngine" yaml:"text_engine"`
	ImageEngine ImageEngine `json:"imageEngine" yaml:"image_engine"`

	Theme             Theme   `json:"theme" yaml:"theme"`
	FontScale         float64 `json:"fontScale" yaml:"font_scale"`
	DisableAnimations bool    `json:"disableAnimations" yaml:"disable_animations"`

	Layout              PanelLayout         `json:"layout" yaml:"layout"`
	ComponentVisibility ComponentVisibility `json:"componentVisibility" yaml:"component_visibility"`
}

// DefaultSettings returns the settings of a fresh install
func DefaultSettings() Settings {
	return Settings{
		ImageMode:   ImageModeBoth,
		ImageTheme:  "cinematic digital painting, dramatic lighting",
		TextEngine:  TextEngineGemini,
		ImageEngine: ImageEngineGemini,
		Theme:       ThemeVeritas,
		FontScale:   1,
		Layout: PanelLayout{
			Order: []string{"character", "narrative", "context"},
			Sizes: []int{25, 50, 25},
		},
		ComponentVisibility: ComponentVisibility{
			CharacterPortrait:    true,
			CharacterStatus:      true,
			CharacterSkills:      true,
			CharacterInventory:   true,
			CharacterBackstory:   true,
			CharacterProgression: true,
		},
	}
}

// SettingsPatch is a partial settings update. Nil fields are left alone.
type SettingsPatch struct {
	ImageMode           *ImageMode           `json:"imageGenerationMode,omitempty"`
	ImageTheme          *string              `json:"imageTheme,omitempty"`
	TextEngine          *TextEngine          `json:"textEngine,omitempty"`
	ImageEngine         *ImageEngine         `json:"imageEngine,omitempty"`
	Theme               *Theme               `json:"theme,omitempty"`
	FontScale           *float64             `json:"fontScale,omitempty"`
	DisableAnimations   *bool                `json:"disableAnimations,omitempty"`
	Layout              *PanelLayout         `json:"layout,omitempty"`
	ComponentVisibility *ComponentVisibility `json:"componentVisibility,omitempty"`
}

// Apply merges the patch into s
func (p *SettingsPatch) Apply(s *Settings) {
	if p.ImageMode != nil {
		s.ImageMode = *p.ImageMode
	}
	if p.ImageTheme != nil {
		s.ImageTheme = *p.ImageTheme
	}
	if p.TextEngine != nil {
		s.TextEngine = *p.TextEngine
	}
	if p.ImageEngine != nil {
		s.ImageEngine = *p.ImageEngine
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.FontScale != nil {
		s.FontScale = *p.FontScale
	}
	if p.DisableAnimations != nil {
		s.DisableAnimations = *p.DisableAnimations
	}
	if p.Layout != nil {
		s.Layout = PanelLayout{
			Order: append([]string{}, p.Layout.Order...),
			Sizes: append([]int{}, p.Layout.Sizes...),
		}
	}
	if p.ComponentVisibility != nil {
		s.ComponentVisibility = *p.ComponentVisibility
	}
}

// Clone returns a deep copy
func (s Settings) Clone() Settings {
	out := s
	out.Layout.Order = append([]string{}, s.Layout.Order...)
	out.Layout.Sizes = append([]int{}, s.Layout.Sizes...)
	return out
}

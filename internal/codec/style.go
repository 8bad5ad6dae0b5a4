package codec

import "regexp"

// StyleConfig carries the caller-supplied styling applied on serialization.
// Colors use the ASS &HAABBGGRR notation; VTT and SRT consume only the
// subset their formats can express.
type StyleConfig struct {
	FontName        string
	FontSize        int
	PrimaryColor    string
	OutlineColor    string
	BackgroundColor string
	Bold            bool
	Italic          bool
	OutlineWidth    int
	ShadowDepth     int

	// PositionTags enables the {\anN} override convention on formats with
	// no native position field (SRT, SBV). Players such as VLC honor it.
	PositionTags bool

	// Script resolution written into the ASS header.
	PlayResX int
	PlayResY int
}

// DefaultStyle returns the documented defaults: Arial 24, white text, black
// outline, semi-transparent black background, no bold/italic, outline 2,
// shadow 3.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		FontName:        "Arial",
		FontSize:        24,
		PrimaryColor:    "&H00FFFFFF",
		OutlineColor:    "&H00000000",
		BackgroundColor: "&H80000000",
		OutlineWidth:    2,
		ShadowDepth:     3,
		PlayResX:        1280,
		PlayResY:        720,
	}
}

var assColorRe = regexp.MustCompile(`^&H[0-9A-Fa-f]{8}$`)

// Validate checks every field against its accepted range. Zero values for
// optional fields are filled from the defaults by the caller, not here; a
// fully zero config is rejected.
func (c StyleConfig) Validate() error {
	if c.FontName == "" {
		return &SerializeError{Field: "font_name", Reason: "must not be empty"}
	}
	if c.FontSize < 8 || c.FontSize > 96 {
		return &SerializeError{Field: "font_size", Reason: "must be between 8 and 96"}
	}
	for _, f := range []struct{ name, value string }{
		{"primary_color", c.PrimaryColor},
		{"outline_color", c.OutlineColor},
		{"background_color", c.BackgroundColor},
	} {
		if !assColorRe.MatchString(f.value) {
			return &SerializeError{Field: f.name, Reason: "must match &HAABBGGRR"}
		}
	}
	if c.OutlineWidth < 0 || c.OutlineWidth > 10 {
		return &SerializeError{Field: "outline_width", Reason: "must be between 0 and 10"}
	}
	if c.ShadowDepth < 0 || c.ShadowDepth > 10 {
		return &SerializeError{Field: "shadow_depth", Reason: "must be between 0 and 10"}
	}
	if c.PlayResX <= 0 || c.PlayResY <= 0 {
		return &SerializeError{Field: "play_res", Reason: "must be positive"}
	}
	return nil
}

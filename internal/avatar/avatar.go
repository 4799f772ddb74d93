// Package avatar resolves team member avatar sources: preset catalogue
// entries, uploaded images encoded as data URLs, or a generated initials
// image for members who never picked one.
package avatar

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Presets is the built-in avatar catalogue offered at invite time.
var Presets = []string{
	"https://api.dicebear.com/7.x/avataaars/svg?seed=Felix",
	"https://api.dicebear.com/7.x/avataaars/svg?seed=Aneka",
	"https://api.dicebear.com/7.x/avataaars/svg?seed=Willow",
	"https://api.dicebear.com/7.x/avataaars/svg?seed=Midnight",
	"https://api.dicebear.com/7.x/avataaars/svg?seed=Bella",
	"https://api.dicebear.com/7.x/bottts/svg?seed=Gizmo",
	"https://api.dicebear.com/7.x/bottts/svg?seed=Caleb",
	"https://api.dicebear.com/7.x/shapes/svg?seed=Red",
}

const initialsBase = "https://api.dicebear.com/7.x/initials/svg"

// maxUploadBytes bounds avatar uploads before base64 expansion.
const maxUploadBytes = 2 << 20

var allowedMimeTypes = map[string]struct{}{
	"image/png":     {},
	"image/jpeg":    {},
	"image/gif":     {},
	"image/webp":    {},
	"image/svg+xml": {},
}

// InitialsURL returns the generated fallback avatar for a member name.
func InitialsURL(name string) string {
	return initialsBase + "?seed=" + url.QueryEscape(name)
}

// Resolve picks the avatar for a new member: the chosen source when present,
// otherwise the initials fallback. The result is always non-empty for a
// non-empty name.
func Resolve(chosen, name string) string {
	if chosen != "" {
		return chosen
	}
	return InitialsURL(name)
}

// IsPreset reports whether the URL belongs to the built-in catalogue.
func IsPreset(url string) bool {
	for _, preset := range Presets {
		if preset == url {
			return true
		}
	}
	return false
}

// EncodeUpload converts uploaded image bytes into a data URL so it can flow
// through the same update path as a plain URL.
func EncodeUpload(mimeType string, data []byte) (string, error) {
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return "", fmt.Errorf("unsupported avatar mime type %q", mimeType)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty avatar upload")
	}
	if len(data) > maxUploadBytes {
		return "", fmt.Errorf("avatar upload exceeds %d bytes", maxUploadBytes)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsDataURL reports whether the avatar source is an inline encoded image.
func IsDataURL(src string) bool {
	return strings.HasPrefix(src, "data:image/")
}

// ValidSource reports whether an avatar source is acceptable: a catalogue
// preset, an inline encoded image, or a plain web URL. Anything else, such
// as a javascript: URI, is rejected.
func ValidSource(src string) bool {
	if IsPreset(src) || IsDataURL(src) {
		return true
	}
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

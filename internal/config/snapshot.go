package config

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Snapshot computes a stable hash of the fields that affect generated output.
// Logging, metrics, history and notify settings are excluded, so changing them
// does not force a regeneration. Callers should pass a loaded (normalized and
// defaulted) configuration.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) {
		h.Write([]byte(strings.Join(parts, "=")))
		h.Write([]byte{0})
	}
	w("site.base_url", c.Site.BaseURL)
	w("site.title", c.Site.Title)
	w("input.pages", c.Input.Pages)
	w("input.screenshot_dir", c.Input.ScreenshotDir)
	w("output.directory", c.Output.Directory)
	w("output.format", c.Output.Format)
	w("output.asset_max_width", strconv.Itoa(c.Output.AssetMaxWidth))
	w("output.verify_links", strconv.FormatBool(c.Output.VerifyLinksEnabled()))
	w("templates.name", c.Templates.Name)
	w("templates.custom_dir", c.Templates.CustomDir)
	w("templates.validate", strconv.FormatBool(c.Templates.ValidateEnabled()))
	return hex.EncodeToString(h.Sum(nil))
}

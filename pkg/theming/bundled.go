package theming

import theme "github.com/goliatone/go-theme"

// Bundled returns fresh copies of the built-in manifests.
func Bundled() []*theme.Manifest {
	return []*theme.Manifest{
		{
			Name:    DefaultTheme,
			Version: "1.0.0",
			Tokens: map[string]string{
				"rf-bg":              "#f5f7fb",
				"rf-surface":         "#ffffff",
				"rf-text":            "#1f2933",
				"rf-muted":           "#6b7280",
				"rf-border":          "#d2d6dc",
				"rf-accent":          "#4f46e5",
				"rf-error":           "#dc2626",
				"rf-success":         "#16a34a",
				"rf-strength-weak":   "#dc2626",
				"rf-strength-medium": "#d97706",
				"rf-strength-strong": "#16a34a",
			},
			Assets: theme.Assets{
				Prefix: "/assets",
				Files: map[string]string{
					"regform.stylesheet": "regform.css",
				},
			},
			Variants: map[string]theme.Variant{
				"light": {},
				"dark": {
					Tokens: map[string]string{
						"rf-bg":      "#111827",
						"rf-surface": "#1f2937",
						"rf-text":    "#f9fafb",
						"rf-muted":   "#9ca3af",
						"rf-border":  "#374151",
						"rf-accent":  "#818cf8",
					},
				},
			},
		},
	}
}

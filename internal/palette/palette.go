// Package palette resolves the color tokens produced by the classifiers
// ("blue-600", "gray-400", ...) to concrete hex colors for the HTML page and
// the terminal renderer.
package palette

import "sort"

// Fallback is used for tokens missing from the table.
const Fallback = "#9ca3af"

var hex = map[string]string{
	"blue-400":    "#60a5fa",
	"blue-500":    "#3b82f6",
	"blue-600":    "#2563eb",
	"red-500":     "#ef4444",
	"red-600":     "#dc2626",
	"green-500":   "#22c55e",
	"emerald-600": "#059669",
	"cyan-600":    "#0891b2",
	"purple-500":  "#a855f7",
	"indigo-500":  "#6366f1",
	"yellow-500":  "#eab308",
	"pink-500":    "#ec4899",
	"orange-500":  "#f97316",
	"gray-400":    "#9ca3af",
	"gray-500":    "#6b7280",
}

// Hex returns the hex color for token, or Fallback.
func Hex(token string) string {
	if h, ok := hex[token]; ok {
		return h
	}
	return Fallback
}

// Tokens returns every known token, sorted.
func Tokens() []string {
	out := make([]string, 0, len(hex))
	for t := range hex {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

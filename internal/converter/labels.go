// Package converter turns game state into read-only view models for the
// terminal renderers
package converter

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

// StateLabel converts a card state to its display label
func StateLabel(s models.CardState) string {
	switch s {
	case models.Unthoughtof:
		return "????"
	case models.Imagined:
		return "🔎 Imagined"
	case models.Discovered:
		return "✅ Discovered"
	default:
		return ""
	}
}

// KindLabel converts a card kind to its display label
func KindLabel(k models.CardKind) string {
	switch k {
	case models.Task:
		return "Task"
	case models.Thinking:
		return "Thinking"
	case models.Science:
		return "Science"
	default:
		return string(k)
	}
}

// NotificationIcon returns the icon shown next to a notification
func NotificationIcon(k engine.NotificationKind) string {
	switch k {
	case engine.NoteShortage:
		return "⚠️"
	case engine.NoteImagined:
		return "💭"
	case engine.NoteDiscovered:
		return "🎉"
	case engine.NoteEffect:
		return "✨"
	default:
		return "•"
	}
}

// FormatAmount formats a stock for display: whole units, thousands separated
func FormatAmount(v float64) string {
	return humanize.Comma(int64(v))
}

// FormatRate formats a per-second rate with one decimal
func FormatRate(v float64) string {
	return humanize.CommafWithDigits(round1(v), 1)
}

// FormatSignedRate is FormatRate with an explicit sign
func FormatSignedRate(v float64) string {
	if v > 0 {
		return "+" + FormatRate(v)
	}
	return FormatRate(v)
}

// FormatPercent formats research progress as a whole percentage
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

// ProductionText describes a card's current output, e.g. "6.0 food/sec"
func ProductionText(food, thoughts float64) string {
	var parts []string
	if food > 0 {
		parts = append(parts, fmt.Sprintf("%.1f food/sec", food))
	}
	if thoughts > 0 {
		parts = append(parts, fmt.Sprintf("%.1f thoughts/sec", thoughts))
	}
	return strings.Join(parts, " + ")
}

func round1(v float64) float64 {
	if v < 0 {
		return -round1(-v)
	}
	return float64(int64(v*10+0.5)) / 10
}

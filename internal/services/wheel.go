package services

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"roulette-backend/internal/models"
)

// Source draws a uniformly distributed integer in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource is backed by math/rand/v2's global generator, which is safe
// for concurrent use.
var DefaultSource Source = globalSource{}

type Segment struct {
	Color models.Color `yaml:"color"`
	Count int          `yaml:"count"`
}

type wheelFile struct {
	Slots []Segment `yaml:"slots"`
}

// Wheel is an immutable slot layout. Slots are laid out segment by segment,
// so with the default layout indices 0-15 are violet, 16-31 black and 32 blue.
type Wheel struct {
	segments []Segment
	total    int
}

func DefaultWheel() *Wheel {
	w, _ := NewWheel([]Segment{
		{Color: models.ColorViolet, Count: 16},
		{Color: models.ColorBlack, Count: 16},
		{Color: models.ColorBlue, Count: 1},
	})
	return w
}

func NewWheel(segments []Segment) (*Wheel, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("wheel needs at least one segment")
	}

	seen := make(map[models.Color]bool, len(segments))
	total := 0
	for i, seg := range segments {
		if strings.TrimSpace(string(seg.Color)) == "" {
			return nil, fmt.Errorf("segment %d: color is required", i)
		}
		if seg.Count <= 0 {
			return nil, fmt.Errorf("segment %d (%s): slot count must be positive", i, seg.Color)
		}
		if seen[seg.Color] {
			return nil, fmt.Errorf("segment %d: duplicate color %q", i, seg.Color)
		}
		seen[seg.Color] = true
		total += seg.Count
	}

	return &Wheel{
		segments: append([]Segment(nil), segments...),
		total:    total,
	}, nil
}

// LoadWheel reads a YAML layout of the form
//
//	slots:
//	  - color: violet
//	    count: 16
func LoadWheel(path string) (*Wheel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wheel config: %w", err)
	}

	var file wheelFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("parse wheel config: %w", err)
	}

	w, err := NewWheel(file.Slots)
	if err != nil {
		return nil, fmt.Errorf("invalid wheel config %s: %w", path, err)
	}

	return w, nil
}

func (w *Wheel) SlotCount() int {
	return w.total
}

func (w *Wheel) Colors() []models.Color {
	colors := make([]models.Color, len(w.segments))
	for i, seg := range w.segments {
		colors[i] = seg.Color
	}
	return colors
}

func (w *Wheel) Supports(color models.Color) bool {
	for _, seg := range w.segments {
		if seg.Color == color {
			return true
		}
	}
	return false
}

// Probability is the exact chance of color coming up on one draw.
func (w *Wheel) Probability(color models.Color) float64 {
	for _, seg := range w.segments {
		if seg.Color == color {
			return float64(seg.Count) / float64(w.total)
		}
	}
	return 0
}

func (w *Wheel) ColorAt(slot int) (models.Color, error) {
	if slot < 0 || slot >= w.total {
		return "", fmt.Errorf("slot %d out of range [0, %d)", slot, w.total)
	}

	for _, seg := range w.segments {
		if slot < seg.Count {
			return seg.Color, nil
		}
		slot -= seg.Count
	}

	return "", fmt.Errorf("slot %d out of range", slot)
}

// Draw spins the wheel once.
func (w *Wheel) Draw(src Source) (int, models.Color, error) {
	slot := src.IntN(w.total)

	color, err := w.ColorAt(slot)
	if err != nil {
		return 0, "", fmt.Errorf("draw: %w", err)
	}

	return slot, color, nil
}

package effects

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

// waveBase lifts the displaced surface above the water line.
const waveBase = 0.3

var ErrMismatchedNormals = errors.New("effects: vertex and normal counts differ")

type WaveConfig struct {
	Scale  float64 `yaml:"scale"`
	Speed  float64 `yaml:"speed"`
	Height float64 `yaml:"height"`
	Seed   int64   `yaml:"seed"`
}

// WaveField displaces the upward-facing vertices of a water surface with
// coherent noise. Vertices lie in the X/Z plane with heights along +Y.
type WaveField struct {
	cfg      WaveConfig
	surface  float64
	noise    opensimplex.Noise
	normals  []mgl64.Vec3
	rest     []mgl64.Vec3
	vertices []mgl64.Vec3
}

// NewWaveField builds a field whose water line sits at height surface.
func NewWaveField(cfg WaveConfig, surface float64, vertices, normals []mgl64.Vec3) (*WaveField, error) {
	if len(vertices) != len(normals) {
		return nil, fmt.Errorf("%w: %d vertices, %d normals", ErrMismatchedNormals, len(vertices), len(normals))
	}
	return &WaveField{
		cfg:      cfg,
		surface:  surface,
		noise:    opensimplex.New(cfg.Seed),
		normals:  append([]mgl64.Vec3(nil), normals...),
		rest:     append([]mgl64.Vec3(nil), vertices...),
		vertices: append([]mgl64.Vec3(nil), vertices...),
	}, nil
}

// Grid builds a flat cols×rows surface of the given size centred on center,
// with every normal pointing up.
func Grid(center mgl64.Vec3, width, depth float64, cols, rows int) ([]mgl64.Vec3, []mgl64.Vec3) {
	if cols < 2 || rows < 2 {
		return nil, nil
	}
	verts := make([]mgl64.Vec3, 0, cols*rows)
	normals := make([]mgl64.Vec3, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := center.X() - depth/2 + depth*float64(r)/float64(rows-1)
			z := center.Z() - width/2 + width*float64(c)/float64(cols-1)
			verts = append(verts, mgl64.Vec3{x, center.Y(), z})
			normals = append(normals, mgl64.Vec3{0, 1, 0})
		}
	}
	return verts, normals
}

// Update recomputes the surface for time t. Each upward-facing vertex is set to
// an absolute height of surface + noise*Height + waveBase, whatever its rest height.
func (w *WaveField) Update(ctx context.Context, t float64, workers int) error {
	if w == nil {
		return nil
	}
	return ParallelFor(ctx, len(w.vertices), DefaultBatch, workers, func(i int) error {
		if w.normals[i].Y() <= 0 {
			return nil
		}
		v := w.rest[i]
		offset := w.cfg.Speed * t
		n := w.noise.Eval2(v.X()*w.cfg.Scale+offset, v.Z()*w.cfg.Scale+offset)
		w.vertices[i] = mgl64.Vec3{v.X(), w.surface + n*w.cfg.Height + waveBase, v.Z()}
		return nil
	})
}

// Vertices returns the current surface. Callers must not modify it.
func (w *WaveField) Vertices() []mgl64.Vec3 {
	if w == nil {
		return nil
	}
	return w.vertices
}

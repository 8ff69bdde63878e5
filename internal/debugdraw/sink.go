package debugdraw

import (
	"log/slog"
	"time"

	"github.com/udisondev/floorspawn/internal/model"
)

// Color is an RGBA debug colour.
type Color struct {
	R, G, B, A float64
}

// Green marks valid candidates and floor bounds.
var Green = Color{G: 1, A: 1}

// Sink receives transient debug shapes. Nothing drawn here affects
// gameplay state.
type Sink interface {
	DrawRay(origin, dir model.Vec3, color Color, duration time.Duration)
	DrawWireCube(center, size model.Vec3, color Color)
}

// ShapeKind distinguishes recorded shapes.
type ShapeKind int

const (
	ShapeRay ShapeKind = iota
	ShapeWireCube
)

// Shape is one recorded draw call.
type Shape struct {
	Kind     ShapeKind
	Origin   model.Vec3 // ray origin or cube centre
	Vector   model.Vec3 // ray direction or cube size
	Color    Color
	Duration time.Duration
}

// Recorder is an in-memory Sink.
type Recorder struct {
	shapes []Shape
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// DrawRay records a ray.
func (r *Recorder) DrawRay(origin, dir model.Vec3, color Color, duration time.Duration) {
	r.shapes = append(r.shapes, Shape{Kind: ShapeRay, Origin: origin, Vector: dir, Color: color, Duration: duration})
}

// DrawWireCube records a box.
func (r *Recorder) DrawWireCube(center, size model.Vec3, color Color) {
	r.shapes = append(r.shapes, Shape{Kind: ShapeWireCube, Origin: center, Vector: size, Color: color})
}

// Shapes returns recorded shapes in draw order.
func (r *Recorder) Shapes() []Shape {
	return r.shapes
}

// Rays returns ray origins in draw order.
func (r *Recorder) Rays() []model.Vec3 {
	var out []model.Vec3
	for _, s := range r.shapes {
		if s.Kind == ShapeRay {
			out = append(out, s.Origin)
		}
	}
	return out
}

// Reset drops all recorded shapes.
func (r *Recorder) Reset() {
	r.shapes = r.shapes[:0]
}

// SlogSink writes shapes to a logger at debug level.
type SlogSink struct {
	log *slog.Logger
}

// NewSlogSink creates a sink over log; nil means slog.Default().
func NewSlogSink(log *slog.Logger) *SlogSink {
	if log == nil {
		log = slog.Default()
	}
	return &SlogSink{log: log}
}

// DrawRay logs a ray.
func (s *SlogSink) DrawRay(origin, dir model.Vec3, _ Color, duration time.Duration) {
	s.log.Debug("debug ray", "origin", origin, "dir", dir, "duration", duration)
}

// DrawWireCube logs a box.
func (s *SlogSink) DrawWireCube(center, size model.Vec3, _ Color) {
	s.log.Debug("debug wire cube", "center", center, "size", size)
}

// Multi fans out to several sinks.
type Multi []Sink

// DrawRay forwards to every sink.
func (m Multi) DrawRay(origin, dir model.Vec3, color Color, duration time.Duration) {
	for _, s := range m {
		s.DrawRay(origin, dir, color, duration)
	}
}

// DrawWireCube forwards to every sink.
func (m Multi) DrawWireCube(center, size model.Vec3, color Color) {
	for _, s := range m {
		s.DrawWireCube(center, size, color)
	}
}

package main

import (
	"context"
	"log"

	"github.com/chazu/gizmesh/pkg/config"
	"github.com/chazu/gizmesh/pkg/drawlist"
	"github.com/chazu/gizmesh/pkg/gizmo"
	"github.com/chazu/gizmesh/pkg/script"
	"github.com/chazu/gizmesh/pkg/session"
)

// App replays input traces against scripted scenes.
type App struct {
	engine *script.Engine
	config config.Config
	logger *log.Logger
}

// ErrorData is an evaluation or replay error.
type ErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ObjectData is the final transform of one scene object.
type ObjectData struct {
	Name        string     `json:"name"`
	Translation [3]float32 `json:"translation"`
	Rotation    [4]float32 `json:"rotation"` // x, y, z, w
	Scale       [3]float32 `json:"scale"`
}

// ReplayResult is the full outcome of a replay.
type ReplayResult struct {
	Objects []ObjectData         `json:"objects"`
	Frames  []session.FrameStats `json:"frames"`
	Errors  []ErrorData          `json:"errors"`
	// View is the last frame's geometry.
	View drawlist.View `json:"-"`
}

// NewApp creates an App. A nil logger keeps the gizmo system quiet.
func NewApp(cfg config.Config, logger *log.Logger) *App {
	return &App{
		engine: script.NewEngine(),
		config: cfg,
		logger: logger,
	}
}

// Replay evaluates the scene source and plays tr over it.
func (a *App) Replay(ctx context.Context, source string, tr *session.Trace) ReplayResult {
	result := ReplayResult{
		Objects: []ObjectData{},
		Frames:  []session.FrameStats{},
		Errors:  []ErrorData{},
	}

	// Step 1: Evaluate the script into a scene.
	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, ErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 2: Build the gizmo system from the configuration.
	opts, err := a.config.Options()
	if err != nil {
		log.Printf("Config error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		return result
	}
	if a.logger != nil {
		opts = append(opts, gizmo.WithLogger(a.logger))
	}
	sys := gizmo.New(opts...)

	// Step 3: Play the trace. Partial results are kept on error.
	res, err := session.New(sys, sc, a.logger).Run(ctx, tr)
	result.Frames = append(result.Frames, res.Frames...)
	result.View = res.View
	if err != nil {
		log.Printf("Replay error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: "replay failed: " + err.Error()})
	}

	// Step 4: Report where every object ended up.
	for _, o := range sc.ObjectList() {
		r := o.TRS.Rotation
		result.Objects = append(result.Objects, ObjectData{
			Name:        o.Name,
			Translation: o.TRS.Translation,
			Rotation:    [4]float32{r.V[0], r.V[1], r.V[2], r.W},
			Scale:       o.TRS.Scale,
		})
	}
	return result
}

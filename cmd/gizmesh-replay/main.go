// Command gizmesh-replay plays a recorded input trace against a scripted
// scene and reports where the handles moved the objects.
//
//	gizmesh-replay -scene box.gizmo -trace drag.yaml -out last.glb
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"

	"github.com/chazu/gizmesh/pkg/config"
	"github.com/chazu/gizmesh/pkg/export"
	"github.com/chazu/gizmesh/pkg/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("gizmesh-replay: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var scenePath, tracePath, configPath, outPath string
	var dump, verbose bool

	fs := flag.NewFlagSet("gizmesh-replay", flag.ContinueOnError)
	fs.StringVar(&scenePath, "scene", "", "Scene script to evaluate")
	fs.StringVar(&tracePath, "trace", "", "YAML input trace to replay")
	fs.StringVar(&configPath, "config", "", "YAML style and kernel configuration")
	fs.StringVar(&outPath, "out", "", "Write the last frame to this .glb file")
	fs.BoolVar(&dump, "dump", false, "Dump final objects and frame stats")
	fs.BoolVar(&verbose, "v", false, "Log drag transitions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if scenePath == "" || tracePath == "" {
		fs.Usage()
		return fmt.Errorf("-scene and -trace are required")
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return err
		}
	}

	source, err := os.ReadFile(scenePath)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	tr, err := session.LoadTraceFile(tracePath)
	if err != nil {
		return err
	}

	var logger *log.Logger
	if verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	result := NewApp(cfg, logger).Replay(ctx, string(source), tr)
	for _, e := range result.Errors {
		if e.Line > 0 {
			log.Printf("%s:%d: %s", scenePath, e.Line, e.Message)
		} else {
			log.Printf("%s", e.Message)
		}
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d error(s)", len(result.Errors))
	}

	for _, o := range result.Objects {
		fmt.Fprintf(stdout, "%s\tt=%v r=%v s=%v\n", o.Name, o.Translation, o.Rotation, o.Scale)
	}
	if dump {
		fmt.Fprint(stdout, dumper().Sdump(result.Objects, result.Frames))
	}

	if outPath != "" {
		if err := export.SaveGLB(outPath, result.View); err != nil {
			return err
		}
		log.Printf("wrote %s (%d triangles)", outPath, result.View.TriangleCount())
	}
	return nil
}

func dumper() *spew.ConfigState {
	cfg := spew.NewDefaultConfig()
	cfg.DisableCapacities = true
	cfg.DisablePointerAddresses = true
	return cfg
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	defaultWidth  = 400
	defaultHeight = 300
)

// options holds the parsed command line. set records which flags were given
// explicitly so that scene render settings apply to everything else.
type options struct {
	scene     string
	scenesDir string
	width     int
	height    int
	mode      string
	shadows   bool
	workers   int
	time      float64
	format    string
	out       string
	list      bool

	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.scene, "scene", "sphere", "Built-in scene id, file:<name> or path to a .yaml scene")
	fs.StringVar(&opts.scenesDir, "scenes", "scenes", "Directory of YAML scene files")
	fs.IntVar(&opts.width, "width", defaultWidth, "Image width in pixels")
	fs.IntVar(&opts.height, "height", defaultHeight, "Image height in pixels")
	fs.StringVar(&opts.mode, "mode", "combined", "Lighting mode: observed-area, radiance, brdf or combined")
	fs.BoolVar(&opts.shadows, "shadows", true, "Cast shadow rays")
	fs.IntVar(&opts.workers, "workers", 0, "Number of render workers (0 = one per CPU)")
	fs.Float64Var(&opts.time, "time", 0, "Animation time in seconds")
	fs.StringVar(&opts.format, "format", "png", "Output format: png or bmp")
	fs.StringVar(&opts.out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.format != "png" && opts.format != "bmp" {
		return opts, fmt.Errorf("unknown format %q (use png or bmp)", opts.format)
	}
	if opts.time < 0 {
		return opts, fmt.Errorf("time must not be negative, got %v", opts.time)
	}
	return opts, nil
}

// resolve merges the scene's render settings under the explicit flags
func resolve(opts options, settings scene.RenderSettings) (width, height int, config renderer.RenderConfig, err error) {
	width, height = opts.width, opts.height
	if !opts.set["width"] && settings.Width > 0 {
		width = settings.Width
	}
	if !opts.set["height"] && settings.Height > 0 {
		height = settings.Height
	}
	if width <= 0 || height <= 0 {
		return 0, 0, config, fmt.Errorf("image size must be positive, got %dx%d", width, height)
	}

	config = renderer.DefaultRenderConfig()
	config.NumWorkers = opts.workers

	mode := opts.mode
	if !opts.set["mode"] && settings.LightingMode != "" {
		mode = settings.LightingMode
	}
	if config.LightingMode, err = renderer.ParseLightingMode(mode); err != nil {
		return 0, 0, config, err
	}

	config.ShadowsEnabled = opts.shadows
	if !opts.set["shadows"] && settings.Shadows != nil {
		config.ShadowsEnabled = *settings.Shadows
	}
	return width, height, config, nil
}

// outputPath picks the file to write when -out is not given
func outputPath(opts options, now time.Time) string {
	if opts.out != "" {
		return opts.out
	}
	name := strings.TrimPrefix(opts.scene, "file:")
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", name, fmt.Sprintf("render_%s.%s", timestamp, opts.format))
}

// run renders one frame and writes it to disk, returning the file written
func run(opts options, logger core.Logger) (string, error) {
	selected, err := scene.Load(opts.scene, opts.scenesDir)
	if err != nil {
		return "", err
	}
	width, height, config, err := resolve(opts, selected.Settings)
	if err != nil {
		return "", err
	}

	logger.Printf("Rendering %s at %dx%d (%s, shadows=%v)\n", selected.Name, width, height, config.LightingMode, config.ShadowsEnabled)
	selected.Update(opts.time)

	fb := renderer.NewFramebuffer(width, height)
	r := renderer.NewRenderer(config.NumWorkers, logger)
	if _, err := r.Render(selected, selected.Camera, fb, config); err != nil {
		return "", err
	}

	filename := outputPath(opts, time.Now())
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}
	if opts.format == "bmp" {
		err = fb.SaveBMP(filename)
	} else {
		err = fb.SavePNG(filename)
	}
	if err != nil {
		return "", err
	}
	return filename, nil
}

func listScenes(w io.Writer, scenesDir string) error {
	response, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-20s %s\n", info.ID, info.Name)
		}
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.list {
		if err := listScenes(os.Stdout, opts.scenesDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Starting Whitted Raytracer...")
	filename, err := run(opts, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

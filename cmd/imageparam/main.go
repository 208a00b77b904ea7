package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"imageparam/pkg/config"
	"imageparam/pkg/imgio"
	"imageparam/pkg/optimize"
	"imageparam/pkg/param"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	inputPath := flag.String("input", "", "Image to round-trip through the parameterization")
	targetPath := flag.String("target", "", "Image to optimize the parameterization toward")
	outputPath := flag.String("output", "", "Output PNG filename (default: from config)")
	width := flag.Int("width", 0, "Image width (default: from config)")
	height := flag.Int("height", 0, "Image height (default: from config)")
	kind := flag.String("kind", "", "Parameterization kind: pixel or frequency (default: from config)")
	preset := flag.String("preset", "", "Color decorrelation preset: klt or i1i2i3 (default: from config)")
	steps := flag.Int("steps", 0, "Number of gradient-ascent steps (default: from config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Command line flags override configuration values
	if *width > 0 {
		cfg.Image.Width = *width
	}
	if *height > 0 {
		cfg.Image.Height = *height
	}
	if *kind != "" {
		cfg.Image.Kind = *kind
	}
	if *preset != "" {
		cfg.Image.Decorrelation = *preset
	}
	if *steps > 0 {
		cfg.Optimize.Steps = *steps
	}
	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}

	var src *rand.Rand
	if cfg.Image.Seed != 0 {
		src = rand.New(rand.NewSource(cfg.Image.Seed))
	}

	switch {
	case *inputPath != "":
		err = runRoundTrip(cfg, *inputPath, src)
	case *targetPath != "":
		err = runOptimize(cfg, *targetPath, src)
	default:
		flag.Usage()
		log.Fatal("Either -input (round trip) or -target (optimization) is required")
	}
	if err != nil {
		log.Fatalf("Processing failed: %v", err)
	}
}

// runRoundTrip loads an image into latent space and reads it back out,
// demonstrating the invertibility of the parameterization pipeline.
func runRoundTrip(cfg *config.Config, inputPath string, src *rand.Rand) error {
	input, err := imgio.Load(inputPath)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Printf("Round-tripping %dx%d image through %s parameterization (%s basis)\n",
			input.Width, input.Height, cfg.Image.Kind, cfg.Image.Decorrelation)
	}

	img, err := param.NewNaturalImage(input.Height, input.Width, input.Channels,
		cfg.Image.Kind, cfg.Image.Decorrelation, src)
	if err != nil {
		return err
	}
	if err := img.SetImage(input); err != nil {
		return err
	}

	if err := imgio.Save(cfg.Output.Path, img.Forward()); err != nil {
		return err
	}
	if cfg.Output.Verbose {
		fmt.Printf("Result saved to: %s\n", cfg.Output.Path)
	}
	return nil
}

// runOptimize ascends a randomly initialized parameterization toward a
// target image and saves the result.
func runOptimize(cfg *config.Config, targetPath string, src *rand.Rand) error {
	target, err := imgio.Load(targetPath)
	if err != nil {
		return err
	}

	img, err := param.NewNaturalImage(target.Height, target.Width, target.Channels,
		cfg.Image.Kind, cfg.Image.Decorrelation, src)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Printf("Optimizing %s parameterization toward %s for %d steps...\n",
			cfg.Image.Kind, targetPath, cfg.Optimize.Steps)
	}

	opt := optimize.New(optimize.Config{
		Steps:        cfg.Optimize.Steps,
		LearningRate: cfg.Optimize.LearningRate,
		Momentum:     cfg.Optimize.Momentum,
	})
	if cfg.Output.Verbose {
		opt.SetProgressCallback(func(step, total int, value float64) {
			if step%10 == 0 || step == total {
				fmt.Printf("\rStep %d/%d | objective: %.6f", step, total, value)
				if step == total {
					fmt.Println()
				}
			}
		})
	}

	startTime := time.Now()
	value, err := opt.Run(img, optimize.MatchImage(target))
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Printf("Optimization completed in %.2f seconds (final objective: %.6f)\n",
			time.Since(startTime).Seconds(), value)
	}

	if err := imgio.Save(cfg.Output.Path, img.Forward()); err != nil {
		return err
	}
	if cfg.Output.Verbose {
		fmt.Printf("Result saved to: %s\n", cfg.Output.Path)
	}
	return nil
}

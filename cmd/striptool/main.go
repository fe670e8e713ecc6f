package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/stripcraft/comic-strip-tools/internal/comic"
	"github.com/stripcraft/comic-strip-tools/internal/strip"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// manifest is the on-disk description of a strip to compose.
type manifest struct {
	Title      string          `json:"title,omitempty"`
	MaxColumns int             `json:"max_columns,omitempty"`
	Panels     []manifestPanel `json:"panels"`
}

type manifestPanel struct {
	Image    string          `json:"image"`
	UserText string          `json:"user_text,omitempty"`
	Elements []comic.Element `json:"elements"`
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("striptool %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}
	if len(os.Args) != 3 {
		usage()
		os.Exit(2)
	}

	// Compose output goes to the file; logging stays on stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if err := run(os.Args[1], os.Args[2]); err != nil {
		log.Fatalf("striptool: %v", err)
	}
}

func usage() {
	fmt.Println("striptool - compose lettered comic panels into one strip image")
	fmt.Println()
	fmt.Println("Usage: striptool <manifest.json> <output.png>")
	fmt.Println()
	fmt.Println("The manifest lists panel images and their narrative elements:")
	fmt.Println(`  {`)
	fmt.Println(`    "max_columns": 3,`)
	fmt.Println(`    "panels": [`)
	fmt.Println(`      {"image": "panel1.png",`)
	fmt.Println(`       "user_text": "look around",`)
	fmt.Println(`       "elements": [`)
	fmt.Println(`         {"type": "speech", "character_name": "VIV",`)
	fmt.Println(`          "position": "top-left", "text": "Hi!"}]}`)
	fmt.Println(`    ]`)
	fmt.Println(`  }`)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
}

func run(manifestPath, outputPath string) error {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.MaxColumns < 1 {
		m.MaxColumns = 3
	}

	panels := make([]comic.Panel, len(m.Panels))
	for i, mp := range m.Panels {
		data, err := os.ReadFile(mp.Image)
		if err != nil {
			log.Printf("panel %d: skipping unreadable image %s: %v", i+1, mp.Image, err)
			data = nil
		}
		panels[i] = comic.Panel{
			Number:   i + 1,
			Image:    data,
			Elements: mp.Elements,
			UserText: mp.UserText,
		}
	}

	compositor := strip.NewDefaultCompositor()

	// Detection is CPU-bound and per-panel independent, so fan out across
	// panels before the synchronous compose pass replays the results.
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range panels {
		if !panels[i].HasImage() {
			continue
		}
		i := i
		g.Go(func() error {
			panels[i].Regions = compositor.Regions(panels[i].Image)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	data, err := compositor.EncodeStrip(panels, m.MaxColumns)
	if err != nil {
		return fmt.Errorf("failed to compose strip: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write strip: %w", err)
	}
	log.Printf("wrote %s (%d panels)", outputPath, len(m.Panels))
	return nil
}

// meshtool is a CLI utility for inspecting OBJ models, materials, textures,
// terrain grids and skyboxes without opening a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Faultbox/meshforge/internal/config"
	"github.com/Faultbox/meshforge/internal/engine/drawable"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/model"
	"github.com/Faultbox/meshforge/internal/engine/terrain"
	"github.com/Faultbox/meshforge/internal/engine/texture"
	"github.com/Faultbox/meshforge/internal/logger"
	"github.com/Faultbox/meshforge/pkg/formats/obj"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := logger.Init("warn", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "mtl":
		cmdMTL(args)
	case "tex":
		cmdTexture(args)
	case "grid":
		cmdGrid(args)
	case "sky":
		cmdSky(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - model and terrain inspection utility

Usage:
  meshtool <command> [options]

Commands:
  info [-v] <file.obj>             Ingest a model and show what would be drawn
  mtl <file.mtl>                   List the materials of a material library
  tex <file>                       Decode a texture and show its format
  grid <width> <height> <quality>  Build a terrain grid and show its size
  sky [-name skybox] <data_dir>    Load a skybox cubemap
  config [-o file]                 Print or write the default viewer config

Examples:
  meshtool info -v models/cube.obj
  meshtool grid 100 100 3000
  meshtool sky -name field data`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show material ranges per drawable")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info [-v] <file.obj>")
		os.Exit(1)
	}

	dev := gpu.NewMemory()
	asset := model.Ingest(dev, fs.Arg(0))
	defer asset.Release(dev)

	if asset.IsEmpty() {
		fail("%s has nothing to draw", fs.Arg(0))
	}
	writeAssetInfo(os.Stdout, asset, *verbose)
}

func writeAssetInfo(w io.Writer, asset *drawable.Asset, verbose bool) {
	fmt.Fprintf(w, "Model:     %s\n", asset.Name)
	fmt.Fprintf(w, "Drawables: %d\n", len(asset.Drawables))
	fmt.Fprintf(w, "Triangles: %d\n", asset.Triangles())
	fmt.Fprintf(w, "Materials: %d (including default)\n", len(asset.Materials))
	fmt.Fprintf(w, "Textures:  %d\n", len(asset.Textures))
	fmt.Fprintf(w, "Bounds:    %v .. %v\n", asset.Bounds.Min, asset.Bounds.Max)

	if !verbose {
		return
	}

	fmt.Fprintln(w)
	for i := range asset.Drawables {
		d := &asset.Drawables[i]
		fmt.Fprintf(w, "[%d] %d triangles, material %d %q\n", i, d.NumTriangles, d.MaterialID, d.Material.Name)
		for _, r := range d.Ranges {
			name := "?"
			if m, ok := asset.Material(r.MaterialID); ok {
				name = m.Name
			}
			fmt.Fprintf(w, "    triangles %d-%d: material %d %q\n",
				r.FirstTriangle, r.FirstTriangle+r.TriangleCount-1, r.MaterialID, name)
		}
	}
}

func cmdMTL(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool mtl <file.mtl>")
		os.Exit(1)
	}

	f, err := os.Open(args[0])
	if err != nil {
		fail("%v", err)
	}
	defer f.Close()

	materials, warnings, err := obj.ParseMTL(f)
	if err != nil {
		fail("%v", err)
	}
	writeMaterials(os.Stdout, materials, warnings)
}

func writeMaterials(w io.Writer, materials []obj.Material, warnings []string) {
	fmt.Fprintf(w, "Materials: %d\n", len(materials))
	for _, m := range materials {
		fmt.Fprintf(w, "  %-20s Kd %v  Ns %g  d %g  illum %d\n", m.Name, m.Diffuse, m.Shininess, m.Dissolve, m.Illum)
		for _, tex := range []struct{ slot, name string }{
			{"map_Ka", m.AmbientTexname},
			{"map_Kd", m.DiffuseTexname},
			{"map_Ks", m.SpecularTexname},
			{"map_Ns", m.SpecularHighlightTexname},
			{"map_bump", m.BumpTexname},
			{"map_d", m.AlphaTexname},
			{"refl", m.ReflectionTexname},
		} {
			if tex.name != "" {
				fmt.Fprintf(w, "    %-8s %s\n", tex.slot, tex.name)
			}
		}
	}
	for _, warn := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}

func cmdTexture(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool tex <file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fail("%v", err)
	}
	img, err := texture.Decode(data, args[0])
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Texture:  %s\n", args[0])
	fmt.Printf("Size:     %dx%d\n", img.Width, img.Height)
	fmt.Printf("Format:   %s (%d channels)\n", img.Format(), img.Channels)
}

func cmdGrid(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool grid <width> <height> <quality>")
		os.Exit(1)
	}

	params, err := parseGridParams(args[0], args[1], args[2])
	if err != nil {
		fail("%v", err)
	}
	writeGridInfo(os.Stdout, terrain.NewGrid(params.Width, params.Height, params.Quality))
}

func parseGridParams(width, height, quality string) (terrain.GridParams, error) {
	w, err := strconv.ParseFloat(width, 32)
	if err != nil {
		return terrain.GridParams{}, fmt.Errorf("invalid width %q: %w", width, err)
	}
	h, err := strconv.ParseFloat(height, 32)
	if err != nil {
		return terrain.GridParams{}, fmt.Errorf("invalid height %q: %w", height, err)
	}
	q, err := strconv.Atoi(quality)
	if err != nil {
		return terrain.GridParams{}, fmt.Errorf("invalid quality %q: %w", quality, err)
	}
	return terrain.GridParams{Width: float32(w), Height: float32(h), Quality: q}, nil
}

func writeGridInfo(w io.Writer, g *terrain.Grid) {
	width, height := g.Dimensions()
	b := g.Bounds()
	fmt.Fprintf(w, "Grid:      %gx%g, quality %d\n", width, height, g.Quality())
	fmt.Fprintf(w, "Triangles: %d\n", g.NumTriangles())
	fmt.Fprintf(w, "Vertices:  %d\n", len(g.Vertices()))
	fmt.Fprintf(w, "Floats:    %d (%.2f MB)\n", g.Size(), float64(g.Size()*4)/(1024*1024))
	fmt.Fprintf(w, "Bounds:    %v .. %v\n", b.Min, b.Max)
}

func cmdSky(args []string) {
	fs := flag.NewFlagSet("sky", flag.ExitOnError)
	name := fs.String("name", terrain.DefaultSkybox, "Skybox name under <data_dir>/Skyboxes")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool sky [-name skybox] <data_dir>")
		os.Exit(1)
	}

	dev := gpu.NewMemory()
	sky, err := terrain.NewSky(dev)
	if err != nil {
		fail("%v", err)
	}
	defer sky.Release()

	loaded := sky.SetSkybox(*name, fs.Arg(0))
	fmt.Printf("Skybox:  %s\n", sky.Name())
	fmt.Printf("Faces:   %d/%d\n", loaded, gpu.CubeFaceCount)
	fmt.Printf("Indices: %d\n", sky.IndexCount())
	for i, path := range texture.CubemapFaces(fs.Arg(0), *name) {
		fmt.Printf("  %-3s %s\n", gpu.CubeFace(i), path)
	}
	if loaded < gpu.CubeFaceCount {
		os.Exit(1)
	}
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	out := fs.String("o", "", "Write to file instead of stdout (\"user\" for the user config dir)")
	fs.Parse(args)

	cfg := config.Default()
	switch *out {
	case "":
		data, err := cfg.Encode()
		if err != nil {
			fail("%v", err)
		}
		os.Stdout.Write(data)
	case "user":
		if err := cfg.Save(); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	default:
		if err := cfg.SaveTo(*out); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Wrote %s\n", *out)
	}
}

// Command meshc is a small driver over the mesh compilation pipeline: it
// loads a mesh or skin file from disk, runs it through mesh.Compile, and
// reports the resulting inertial frame, bounding box, and any non-fatal
// warnings. Modeled on the reference repo's cmd/grftool subcommand layout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/meshcompile/catalog/sqlitecatalog"
	"github.com/Faultbox/meshcompile/internal/config"
	"github.com/Faultbox/meshcompile/internal/logx"
	"github.com/Faultbox/meshcompile/mesh"
	"github.com/Faultbox/meshcompile/vfs"
)

func main() {
	config.ParseFlags()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	var cmdErr error
	switch command {
	case "compile":
		cmdErr = cmdCompile(cfg, args)
	case "skin":
		cmdErr = cmdSkin(cfg, args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", command)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		os.Exit(1)
	}
}

func cmdCompile(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	hull := fs.Bool("hull", cfg.Compile.ConvexHull, "force convex-hull graph construction")
	smooth := fs.Bool("smooth", cfg.Compile.SmoothNormal, "smooth vertex normals instead of sharp-edge splitting")
	fitAABB := fs.Bool("fit-aabb", cfg.Compile.FitAABB, "fit primitives from AABB instead of inertia box")
	density := fs.Float64("density", cfg.Compile.Density, "material density (kg/m^3)")
	grfPath := fs.String("grf", "", "read the mesh from inside this GRF archive instead of loose files")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: meshc compile [flags] <file>")
	}
	path := fs.Arg(0)

	log := logx.New(cfg.Logging.Level, logx.FileConfig{Path: cfg.Logging.LogFile}, true)
	defer log.Sync()

	opts := mesh.DefaultOptions()
	opts.ConvexHull = *hull
	opts.SmoothNormal = *smooth
	opts.FitAABB = *fitAABB
	opts.Density = *density
	opts.ExactMeshInertia = cfg.Compile.ExactMeshInertia
	opts.StripPath = cfg.Compile.StripPath

	var src vfs.Source = vfs.OSSource{}
	if *grfPath != "" {
		grfSrc, err := vfs.OpenGRF(*grfPath)
		if err != nil {
			return err
		}
		defer grfSrc.Close()
		src = grfSrc
	}

	m := mesh.New(path)
	m.FilePath = path

	if err := m.Compile(src, opts, log); err != nil {
		return err
	}

	printMeshSummary(m)

	if warn := m.Warnings(); warn != nil {
		fmt.Fprintf(os.Stderr, "warnings: %v\n", warn)
	}
	return nil
}

func cmdSkin(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("skin", flag.ExitOnError)
	catalogPath := fs.String("catalog", "", "path to the body/material sqlite catalog")
	material := fs.String("material", "", "material name to resolve")
	fs.Parse(args)

	if fs.NArg() < 1 || *catalogPath == "" {
		return fmt.Errorf("usage: meshc skin -catalog <path> [-material name] <file>")
	}
	path := fs.Arg(0)

	cat, err := sqlitecatalog.Open(*catalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	meshSkin := &mesh.Skin{FilePath: path, MaterialName: *material}
	if err := meshSkin.Compile(vfs.OSSource{}, cat, mesh.DefaultOptions()); err != nil {
		return err
	}

	bones, err := meshSkin.Bones()
	if err != nil {
		return err
	}
	fmt.Printf("bones: %d\n", len(bones))

	matID, err := meshSkin.MaterialID()
	if err != nil {
		return err
	}
	fmt.Printf("material id: %d\n", matID)
	return nil
}

func printMeshSummary(m *mesh.Mesh) {
	vol, _ := m.Volume()
	area, _ := m.SurfaceArea()
	boxsz, _ := m.BoxSize(mesh.VolumeType)
	aabb, _ := m.AABB()

	fmt.Printf("vertices:     %d\n", len(m.Vertices))
	fmt.Printf("faces:        %d\n", len(m.Faces))
	fmt.Printf("volume:       %.6f\n", vol)
	fmt.Printf("surface area: %.6f\n", area)
	fmt.Printf("box size:     [%.6f %.6f %.6f]\n", boxsz[0], boxsz[1], boxsz[2])
	fmt.Printf("aabb:         [%.6f %.6f %.6f] - [%.6f %.6f %.6f]\n",
		aabb[0], aabb[1], aabb[2], aabb[3], aabb[4], aabb[5])

	if v1, v2, found := m.InvalidOrientation(); found {
		fmt.Printf("orientation:  inconsistent at vertices %d, %d\n", v1, v2)
	}
}

func printUsage() {
	fmt.Println(`meshc - mesh compilation pipeline driver

Usage:
  meshc <command> [flags] <args>

Commands:
  compile <file>              Compile an STL/OBJ/MSH/RSM mesh and print its inertial summary
  skin -catalog <db> <file>   Compile an SKN skin against a body/material catalog

Flags (compile):
  -hull        Force convex-hull graph construction
  -smooth      Smooth vertex normals instead of sharp-edge splitting
  -fit-aabb    Fit primitives from the AABB instead of the inertia box
  -density     Material density (kg/m^3)
  -grf         Read the mesh from inside this GRF archive

Flags (skin):
  -catalog     Path to the body/material sqlite catalog
  -material    Material name to resolve

Global flags:
  -config      Path to config file
  -debug       Enable debug logging

Examples:
  meshc compile part.stl
  meshc compile -hull -density 1200 part.obj
  meshc skin -catalog scene.db -material skin01 character.skn`)
}

// Command map2sdf converts a ROS occupancy-grid map into a Gazebo model:
// an extruded wall mesh plus the model.config/model.sdf descriptor files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"map2sdf/utils"
)

const (
	defaultWallHeight = "2.0"
	defaultVersion    = "1.0"
	defaultAuthor     = "Anonymous"
	defaultEmail      = "anon@todo.todo"
)

var errUsage = errors.New("missing arguments")

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: map2sdf [flags] <mesh_tool> <map_meta_file> <output_dir>")
	fmt.Fprintln(os.Stderr, "               [wall_height="+defaultWallHeight+"] [version="+defaultVersion+"]")
	fmt.Fprintln(os.Stderr, "               [author="+defaultAuthor+"] [email="+defaultEmail+"] [description]")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -f, --force        overwrite an existing model directory")
	fmt.Fprintln(os.Stderr, "  --format <f>       mesh format: dae (default), stl, glb")
	fmt.Fprintln(os.Stderr, "  --engine <e>       native (default) or exec, which runs <mesh_tool>")
	fmt.Fprintln(os.Stderr, "                     in batch mode to produce the mesh")
}

func parseArgs(args []string) (utils.Options, error) {
	o := utils.Options{}
	o.Meta.MeshExt = "dae"

	var pos []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		value := func() (string, error) {
			if eq := strings.IndexByte(a, '='); eq >= 0 {
				return a[eq+1:], nil
			}
			i++
			if i >= len(args) {
				return "", errors.Errorf("%s requires a value", a)
			}
			return args[i], nil
		}
		switch {
		case a == "-f" || a == "--force":
			o.Force = true
		case a == "--format" || strings.HasPrefix(a, "--format="):
			v, err := value()
			if err != nil {
				return o, err
			}
			if v != "dae" && v != "stl" && v != "glb" {
				return o, errors.Errorf("unsupported mesh format %q", v)
			}
			o.Meta.MeshExt = v
		case a == "--engine" || strings.HasPrefix(a, "--engine="):
			v, err := value()
			if err != nil {
				return o, err
			}
			switch v {
			case "native":
				o.UseExternal = false
			case "exec":
				o.UseExternal = true
			default:
				return o, errors.Errorf("unknown engine %q", v)
			}
		case strings.HasPrefix(a, "-") && a != "-" && !startsNumeric(a[1:]):
			return o, errors.Errorf("unknown flag %s", a)
		default:
			pos = append(pos, a)
		}
	}

	if len(pos) < 3 {
		return o, errUsage
	}
	o.ToolPath, o.MapMeta, o.OutputDir = pos[0], pos[1], pos[2]

	if fi, err := os.Stat(o.ToolPath); err != nil || fi.IsDir() || fi.Mode()&0o111 == 0 {
		return o, errors.Errorf("%q: not an executable", o.ToolPath)
	}
	if fi, err := os.Stat(o.MapMeta); err != nil || fi.IsDir() {
		return o, errors.Errorf("%q: not a valid file", o.MapMeta)
	}

	o.Meta.Name = strings.TrimSuffix(filepath.Base(o.MapMeta), filepath.Ext(o.MapMeta))
	height, err := strconv.ParseFloat(optional(pos, 3, defaultWallHeight), 64)
	if err != nil {
		return o, errors.Errorf("invalid wall height %q", pos[3])
	}
	o.WallHeight = height
	o.Meta.Version = optional(pos, 4, defaultVersion)
	o.Meta.Author = optional(pos, 5, defaultAuthor)
	o.Meta.Email = optional(pos, 6, defaultEmail)
	o.Meta.Description = optional(pos, 7, "")
	return o, nil
}

// startsNumeric reports whether s begins like a number, so that negative
// values (e.g. a wall height of -1) pass through as positionals instead of
// being rejected as unknown flags.
func startsNumeric(s string) bool {
	return s != "" && (s[0] == '.' || s[0] >= '0' && s[0] <= '9')
}

func optional(pos []string, i int, fallback string) string {
	if i < len(pos) {
		return pos[i]
	}
	return fallback
}

func main() {
	o, err := parseArgs(os.Args[1:])
	if err != nil {
		if err == errUsage {
			usage()
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
	if err := utils.RunGenerate(o); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(utils.ExitStatus(err))
	}
	fmt.Printf("model %q created in %s\n", o.Meta.Name, o.OutputDir)
}

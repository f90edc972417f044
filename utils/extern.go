package utils

import (
	"os"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// RunExternalMesh delegates mesh generation to an external batch tool. The
// tool is called as:
//
//	<tool> -i <map_meta_file> -o <mesh_path> --wall-height <h>
//
// and is expected to write the mesh itself. Its output goes straight to the
// terminal and its exit status is preserved for the caller (see ExitStatus).
func RunExternalMesh(tool, mapMeta, meshPath string, wallHeight float64) error {
	cmd := exec.Command(tool,
		"-i", mapMeta,
		"-o", meshPath,
		"--wall-height", strconv.FormatFloat(wallHeight, 'f', -1, 64),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "external mesh tool %s", tool)
	}
	return nil
}

// ExitStatus returns the exit code to report for a pipeline error: the
// external tool's own status when it exited non-zero, 1 otherwise.
func ExitStatus(err error) int {
	var exit *exec.ExitError
	if errors.As(err, &exit) && exit.ExitCode() > 0 {
		return exit.ExitCode()
	}
	return 1
}

package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Resolve returns the absolute path of command. Paths containing a separator
// are used as given. Bare names are looked up first in the sidecar locations
// next to the running executable ("<dir>/<name>" and "<dir>/bin/ffmpeg/<name>",
// the layout bundled releases ship with), then on PATH.
func Resolve(command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", fmt.Errorf("empty command")
	}
	if strings.ContainsRune(command, os.PathSeparator) {
		info, err := os.Stat(command)
		if err != nil {
			return "", err
		}
		if !isExecutable(info) {
			return "", fmt.Errorf("%s is not executable", command)
		}
		return command, nil
	}
	if exe, err := os.Executable(); err == nil {
		for _, candidate := range sidecarCandidates(exe, command) {
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				return candidate, nil
			}
		}
	}
	return exec.LookPath(command)
}

func sidecarCandidates(executable, name string) []string {
	if executable == "" {
		return nil
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		name += ".exe"
	}
	dir := filepath.Dir(executable)
	return []string{
		filepath.Join(dir, name),
		filepath.Join(dir, "bin", "ffmpeg", name),
	}
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

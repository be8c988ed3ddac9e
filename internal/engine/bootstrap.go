package engine

import (
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/joho/godotenv"

	"github.com/Saethox/irace-go/pkg/logger"
)

// Bootstrap is environment-variable based: IRACE_PYTHON selects the
// interpreter executable (default "python3") and IRACEPY_HOME, if set, is
// prepended to PYTHONPATH so the engine package is importable. A .env file
// in the working directory is honored. The bootstrap runs exactly once per
// process regardless of how many runs are started, and there is no
// teardown: the resolved interpreter configuration outlives all sessions.
var (
	bootstrapOnce sync.Once
	pythonExe     string
	bootstrapErr  error
)

// Environment variables consulted by Bootstrap.
const (
	// EnvPython selects the Python executable hosting the engine.
	EnvPython = "IRACE_PYTHON"
	// EnvHome points at the engine's installation location; it is
	// prepended to PYTHONPATH.
	EnvHome = "IRACEPY_HOME"
)

// Bootstrap resolves the embedded interpreter configuration, exactly once
// per process. It is safe to call from multiple goroutines; all callers
// observe the result of the single execution.
func Bootstrap() (string, error) {
	bootstrapOnce.Do(func() {
		_ = godotenv.Load()

		exe := os.Getenv(EnvPython)
		if exe == "" {
			exe = "python3"
		}

		resolved, err := exec.LookPath(exe)
		if err != nil {
			bootstrapErr = fmt.Errorf("failed to resolve python executable %s: %w", exe, err)
			return
		}
		pythonExe = resolved

		if home := os.Getenv(EnvHome); home != "" {
			path := home
			if existing := os.Getenv("PYTHONPATH"); existing != "" {
				path = home + string(os.PathListSeparator) + existing
			}
			if err := os.Setenv("PYTHONPATH", path); err != nil {
				bootstrapErr = fmt.Errorf("failed to extend PYTHONPATH: %w", err)
				return
			}
		}

		logger.Debug("interpreter bootstrap complete", "python", pythonExe)
	})

	return pythonExe, bootstrapErr
}

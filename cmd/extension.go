package cmd

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/etnz/taxbook/logger"
)

const (
	EnvBook    = "TB_BOOK"
	EnvVerbose = "TB_VERBOSE"
)

// RunExtension attempts to find and execute an external tb-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
// Failures are logged with the context logger.
func RunExtension(ctx context.Context, subcommand string, args []string) (bool, int) {
	log := logger.FromContext(ctx)
	externalCmdName := "tb-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug().Str("command", externalCmdName).Err(err).Msg("external command not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvBook+"="+*bookPath)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		log.Error().Str("command", externalCmdName).Err(err).Msg("could not execute external command")
		return true, 1
	}

	return true, 0
}

package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// Environment of an extension.
const (
	EnvSnapshot = "TELLER_SNAPSHOT"
	EnvStore    = "TELLER_STORE"
	EnvCurrency = "TELLER_CURRENCY"
	EnvVerbose  = "TELLER_VERBOSE"
)

// RunExtension attempts to find and execute an external tlr-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The extension receives the resolved configuration as environment variables.
// Credentials are not passed on.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "tlr-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logger := newLogger(*Verbose)
		logger.Debug().Err(err).Str("command", externalCmdName).Msg("external command not found in PATH")
		return false, 0
	}

	cfg, err := Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvSnapshot+"="+cfg.Snapshot)
	cmd.Env = append(cmd.Env, EnvStore+"="+cfg.Store)
	cmd.Env = append(cmd.Env, EnvCurrency+"="+cfg.Currency)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(cfg.Debug))

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jetup/pkg/config"
	"jetup/pkg/contenders"
	"jetup/pkg/executor"
	"jetup/pkg/lock"
	"jetup/pkg/log"
	"jetup/pkg/optional"
	"jetup/pkg/plan"
	"jetup/pkg/system"
)

// runCmd executes the full provisioning run. Extra positional arguments
// are forwarded verbatim to every optional step script.
var runCmd = &cobra.Command{
	Use:   "run [script-args...]",
	Short: "Provisions the workstation from the manifest",
	Long: `The run command reads the manifest, suspends the background services that
compete for the package database, executes every required action with
retries and lock reclaiming, runs the optional helper scripts, and resumes
the background services on every exit path. A required action that
exhausts its retry budget fails the whole run with a non-zero exit.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logFile, logPath, err := log.OpenRunLog(system.AppFs, logDir, clk.Now())
		if err != nil {
			return err
		}
		defer logFile.Close()

		// Every log entry goes to both the terminal and the run log file.
		runLogger := log.NewSlogLogger(parsedLevel, io.MultiWriter(cmd.ErrOrStderr(), logFile))
		runLogger.Info("Run log created", "path", logPath)

		manifest, err := config.LoadManifest(cfgFile, runLogger)
		if err != nil {
			return err
		}

		guard := contenders.Suspend(cmdRunner, runLogger)
		defer guard.Resume()
		resumeOnInterrupt(guard, runLogger)

		exec := &executor.Executor{
			Runner:       cmdRunner,
			Logger:       runLogger,
			Waiter:       lock.NewWaiter(cmdRunner, clk, runLogger, time.Duration(manifest.Retry.PollIntervalSeconds)*time.Second),
			Reclaimer:    lock.NewReclaimer(cmdRunner, system.AppFs, runLogger),
			Clock:        clk,
			MaxAttempts:  manifest.Retry.MaxAttempts,
			InitialDelay: time.Duration(manifest.Retry.InitialDelaySeconds) * time.Second,
		}

		for _, action := range plan.Build(manifest) {
			if _, err := exec.Run(action); err != nil {
				return err
			}
		}

		invoker := optional.NewInvoker(cmdRunner, system.AppFs, runLogger)
		for _, step := range manifest.OptionalSteps {
			scriptPath := filepath.Join(manifest.ScriptsDir, step.Script)
			invoker.RunIfPresent(step.Label, scriptPath, append(step.Args, args...))
		}

		runLogger.Info("Provisioning complete")
		maybePromptReboot(cmd, runLogger)
		return nil
	},
}

// resumeOnInterrupt restores the background services before dying on an
// external interrupt. Resume is idempotent, so the deferred call in the
// normal path stays safe.
func resumeOnInterrupt(guard *contenders.Guard, logger log.Logger) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ch
		logger.Warn("Interrupted, resuming background services", "signal", sig.String())
		guard.Resume()
		os.Exit(130)
	}()
}

// maybePromptReboot asks whether to reboot when an installed package
// dropped the reboot marker. This is the run's only interactive decision.
func maybePromptReboot(cmd *cobra.Command, logger log.Logger) {
	if !system.RebootRequired(system.AppFs) {
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), "A reboot is required to finish provisioning. Reboot now? [y/N] ")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	if answer != "y" && answer != "yes" {
		logger.Info("Reboot deferred")
		return
	}
	if _, err := cmdRunner.Run("", "systemctl reboot"); err != nil {
		logger.Warn("Reboot request failed", "error", err)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}

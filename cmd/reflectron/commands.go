package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/desertwitch/reflectron/internal/catalog"
	"github.com/desertwitch/reflectron/internal/machine"
	"github.com/desertwitch/reflectron/internal/probe"
	"github.com/desertwitch/reflectron/internal/schema"
	"github.com/spf13/cobra"
)

// passwordEnv is read when no password is given on the command line, so it
// does not have to appear in the process list.
const passwordEnv = "REFLECTRON_SSH_PASSWORD"

func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "reflectron",
		Short:         "Mirror the disks of remote machines as ZFS volumes",
		Version:       Version,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			return app.Setup()
		},
	}

	root.PersistentFlags().StringVarP(&app.configFile, "config", "c", app.configFile, "configuration file")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newNewCommand(app),
		newMachineCommand(app),
		newSettingsCommand(app),
	)

	return root
}

type newOptions struct {
	host     string
	port     int
	user     string
	password string
	keyPath  string
	insecure bool
}

func newNewCommand(app *App) *cobra.Command {
	opts := &newOptions{}

	cmd := &cobra.Command{
		Use:   "new <machine>",
		Short: "Probe a remote machine, record its disks and create a volume for each",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := opts.target(app)
			if err != nil {
				return err
			}

			prober := probe.NewSSHProber(target, &schema.OS{})

			m, err := app.machineHandler.New(cmd.Context(), args[0], prober)
			if err != nil {
				return err //nolint:wrapcheck
			}

			fmt.Fprintln(cmd.OutOrStdout(), machine.Render(*m))

			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.host, "ip", "i", "", "address of the remote machine, optionally with port")
	cmd.Flags().IntVar(&opts.port, "port", 0, "SSH port of the remote machine")
	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "SSH user")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "SSH password (default $"+passwordEnv+")")
	cmd.Flags().StringVarP(&opts.keyPath, "key", "k", "", "SSH private key file")
	cmd.Flags().BoolVar(&opts.insecure, "insecure", false, "do not verify the host key of the remote machine")
	_ = cmd.MarkFlagRequired("ip")

	return cmd
}

// target merges the command line with the configured SSH defaults.
func (o *newOptions) target(app *App) (probe.Target, error) {
	cfg := app.config

	target := probe.Target{
		Host:           o.host,
		Port:           cfg.SSHPort,
		User:           cfg.SSHUser,
		Password:       o.password,
		KeyPath:        o.keyPath,
		KnownHostsPath: cfg.SSHKnownHosts,
		Insecure:       cfg.SSHInsecure || o.insecure,
		Timeout:        cfg.SSHTimeout,
	}

	if host, port, err := net.SplitHostPort(o.host); err == nil {
		p, err := strconv.Atoi(port)
		if err != nil {
			return probe.Target{}, fmt.Errorf("invalid port in %q: %w", o.host, err)
		}
		target.Host = host
		target.Port = p
	}

	if o.port > 0 {
		target.Port = o.port
	}

	if o.user != "" {
		target.User = o.user
	}

	if target.Password == "" {
		target.Password = os.Getenv(passwordEnv)
	}

	if target.Timeout <= 0 {
		target.Timeout = 30 * time.Second
	}

	return target, nil
}

func newMachineCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "machine",
		Short: "Inspect and provision recorded machines",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recorded machines",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				names, err := app.machineHandler.List()
				if err != nil {
					return err //nolint:wrapcheck
				}

				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}

				return nil
			},
		},
		&cobra.Command{
			Use:   "show <machine>",
			Short: "Show the recorded disks of a machine",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := app.machineHandler.Show(args[0])
				if err != nil {
					return err //nolint:wrapcheck
				}

				fmt.Fprintln(cmd.OutOrStdout(), out)

				return nil
			},
		},
		&cobra.Command{
			Use:   "provision <machine>",
			Short: "Create any missing volumes of a recorded machine",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.machineHandler.Provision(cmd.Context(), args[0]) //nolint:wrapcheck
			},
		},
	)

	return cmd
}

func newSettingsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage catalog settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a setting",
			Args:  cobra.ExactArgs(2), //nolint:mnd
			RunE: func(_ *cobra.Command, args []string) error {
				key, err := catalog.ParseKey(args[0])
				if err != nil {
					return err //nolint:wrapcheck
				}

				if err := app.catalog.Settings().Set(key, args[1]); err != nil {
					return err //nolint:wrapcheck
				}

				slog.Info("Setting stored.", "key", key.String(), "value", args[1])

				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := catalog.ParseKey(args[0])
				if err != nil {
					return err //nolint:wrapcheck
				}

				value, err := app.catalog.Settings().Require(key)
				if err != nil {
					return err //nolint:wrapcheck
				}

				fmt.Fprintln(cmd.OutOrStdout(), value)

				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print all settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				settings, err := app.catalog.Settings().List()
				if err != nil {
					return err //nolint:wrapcheck
				}

				for _, s := range settings {
					fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", s.Key, s.Value)
				}

				return nil
			},
		},
	)

	return cmd
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"festive-foliage/client"
	"festive-foliage/config"
	"festive-foliage/core"
	"festive-foliage/moderation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	serverFlag string
	userFlag   string
	passFlag   string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session bundles what every admin command needs.
type session struct {
	cfg        *config.CLIConfig
	client     *client.Client
	controller *moderation.Controller
}

// newSession resolves the server and credential from the config file, the
// TREECTL_* environment and the flags, in that order of precedence.
func newSession() (*session, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultCLIPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.ReadCLIConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if serverFlag != "" {
		cfg.Server = serverFlag
	}
	if userFlag != "" {
		cfg.User = userFlag
	}
	if passFlag != "" {
		cfg.Pass = passFlag
	}

	c := client.New(cfg.Server, "")
	cred := moderation.Credential{User: cfg.User, Pass: cfg.Pass}
	return &session{
		cfg:        cfg,
		client:     c,
		controller: moderation.NewController(c, cred),
	}, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

var rootCmd = &cobra.Command{
	Use:           "treectl",
	Short:         "Moderate a festive tree server",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check the admin credential and remember it",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := s.controller.Login(ctx); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		path := configPath
		if path == "" {
			if path, err = config.DefaultCLIPath(); err != nil {
				return err
			}
		}
		if err := config.WriteCLIConfig(path, s.cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", s.cfg.Server, s.cfg.User)
		return nil
	},
}

// decorations command
var decorationsCmd = &cobra.Command{
	Use:     "decorations",
	Aliases: []string{"dec"},
	Short:   "Inspect and remove decorations",
}

var decorationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decorations with their authors",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		list, err := s.controller.Decorations(ctx)
		if err != nil {
			return err
		}
		printDecorations(cmd.OutOrStdout(), list)
		return nil
	},
}

var decorationsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a decoration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		remaining, err := s.controller.Remove(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s, %d decorations left\n", args[0], len(remaining))
		return nil
	},
}

var decorationsInspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Show a decoration and what can be done with it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		d, err := findDecoration(ctx, s.controller, args[0])
		if err != nil {
			return err
		}
		printInspection(cmd.OutOrStdout(), s.controller.Inspect(*d))
		return nil
	},
}

// blocks command
var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Manage moderation blocks",
}

var blocksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		list, err := s.controller.Blocks(ctx)
		if err != nil {
			return err
		}
		printBlocks(cmd.OutOrStdout(), list)
		return nil
	},
}

var (
	blockReason string
	blockTypes  []string
	blockBy     string
)

var blocksAddCmd = &cobra.Command{
	Use:   "add <ip-or-session>",
	Short: "Block an ip address or a session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := parseTypes(blockTypes)
		if err != nil {
			return err
		}
		s, err := newSession()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		block, err := s.controller.BlockInput(ctx, args[0], blockReason, types)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", block.ID)
		return nil
	},
}

var blocksRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		remaining, err := s.controller.Unblock(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s, %d blocks left\n", args[0], len(remaining))
		return nil
	},
}

var blockAuthorCmd = &cobra.Command{
	Use:   "block-author <decoration-id>",
	Short: "Block whoever created a decoration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if blockBy != "ip" && blockBy != "session" {
			return fmt.Errorf("--by must be ip or session, got %q", blockBy)
		}
		types, err := parseTypes(blockTypes)
		if err != nil {
			return err
		}
		s, err := newSession()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		d, err := findDecoration(ctx, s.controller, args[0])
		if err != nil {
			return err
		}
		block, err := s.controller.BlockAuthor(ctx, *d, blockBy == "ip", types)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", block.ID)
		return nil
	},
}

func findDecoration(ctx context.Context, c *moderation.Controller, id string) (*core.Decoration, error) {
	list, err := c.Decorations(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("decoration %s: %w", id, core.ErrNotFound)
}

func parseTypes(raw []string) ([]core.DecorationType, error) {
	var types []core.DecorationType
	for _, r := range raw {
		t := core.DecorationType(strings.TrimSpace(r))
		if !t.Valid() {
			return nil, fmt.Errorf("unknown decoration type %q", r)
		}
		types = append(types, t)
	}
	return types, nil
}

func printDecorations(w io.Writer, list []core.Decoration) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tNAME\tIP\tSESSION")
	for _, d := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Type, d.Name, d.IP, d.Session)
	}
	tw.Flush()
}

func printBlocks(w io.Writer, list []core.Block) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tIP\tSESSION\tTYPES\tREASON\tBLOCKED AT")
	for _, b := range list {
		types := "all"
		if len(b.Types) > 0 {
			parts := make([]string, len(b.Types))
			for i, t := range b.Types {
				parts[i] = string(t)
			}
			types = strings.Join(parts, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.IP, b.Session, types, b.Reason, b.BlockedAt.Format(time.RFC3339))
	}
	tw.Flush()
}

func printInspection(w io.Writer, in moderation.Inspection) {
	d := in.Decoration
	fmt.Fprintf(w, "ID:       %s\n", d.ID)
	fmt.Fprintf(w, "Type:     %s\n", d.Type)
	if d.Name != "" {
		fmt.Fprintf(w, "Name:     %s\n", d.Name)
	}
	if text, ok := d.Data["text"].(string); ok {
		fmt.Fprintf(w, "Text:     %s\n", text)
	}
	fmt.Fprintf(w, "IP:       %s\n", d.IP)
	fmt.Fprintf(w, "Session:  %s\n", d.Session)
	fmt.Fprintf(w, "Scale:    %.2f\n", d.Scale)
	fmt.Fprintf(w, "Rotation: %.1f\n", d.Rotation)

	actions := make([]string, len(in.Actions))
	for i, a := range in.Actions {
		actions[i] = string(a)
	}
	fmt.Fprintf(w, "Actions:  %s\n", strings.Join(actions, ", "))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/treectl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "tree server URL")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "admin user")
	rootCmd.PersistentFlags().StringVar(&passFlag, "pass", "", "admin password")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	blocksAddCmd.Flags().StringVar(&blockReason, "reason", "", "why the block exists")
	blocksAddCmd.Flags().StringSliceVar(&blockTypes, "types", nil, "only block these decoration types")
	blockAuthorCmd.Flags().StringVar(&blockBy, "by", "ip", "block by ip or session")
	blockAuthorCmd.Flags().StringSliceVar(&blockTypes, "types", nil, "only block these decoration types")

	decorationsCmd.AddCommand(decorationsListCmd, decorationsRmCmd, decorationsInspectCmd)
	blocksCmd.AddCommand(blocksListCmd, blocksAddCmd, blocksRmCmd)
	rootCmd.AddCommand(loginCmd, decorationsCmd, blocksCmd, blockAuthorCmd)
}

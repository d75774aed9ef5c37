package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shuymn/phantom/internal/config"
	"github.com/shuymn/phantom/internal/model"
	"github.com/shuymn/phantom/internal/multiplexer"
	"github.com/shuymn/phantom/internal/picker"
	"github.com/shuymn/phantom/internal/worktree"
)

// session bundles the per-invocation context every command needs:
// the invocation directory, the discovered repository, its configuration
// and the worktree manager built from both.
type session struct {
	cwd string
	cfg *config.Config
	mgr *worktree.Manager
}

// newSession discovers the repository containing the current directory,
// loads its configuration and constructs the worktree manager.
func newSession() (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	repo, err := worktree.Discover(cwd)
	if err != nil {
		return nil, err
	}
	log.Debug("repository discovered", "root", repo.Root)

	cfg, err := config.Load(repo.Root)
	if err != nil {
		return nil, err
	}

	mgr := worktree.NewManager(repo, worktree.Options{WorktreesDir: cfg.WorktreesDirectory})
	log.Debug("worktree directory", "dir", mgr.Dir())

	return &session{cwd: cwd, cfg: cfg, mgr: mgr}, nil
}

// pickName runs the interactive picker over the managed worktree names.
func (s *session) pickName(title string) (string, error) {
	names, err := s.mgr.Names()
	if err != nil {
		return "", err
	}
	return picker.Pick(names, title)
}

// placementFlags groups the multiplexer placement flags shared by the
// create, shell and exec commands.
type placementFlags struct {
	tmux, tmuxVertical, tmuxHorizontal    bool
	kitty, kittyVertical, kittyHorizontal bool
}

func (p *placementFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&p.tmux, "tmux", "t", false, "Open in a new tmux window")
	cmd.Flags().BoolVar(&p.tmuxVertical, "tmux-vertical", false, "Open in a vertical tmux split")
	cmd.Flags().BoolVar(&p.tmuxHorizontal, "tmux-horizontal", false, "Open in a horizontal tmux split")
	cmd.Flags().BoolVarP(&p.kitty, "kitty", "k", false, "Open in a new kitty window")
	cmd.Flags().BoolVar(&p.kittyVertical, "kitty-vertical", false, "Open in a vertical kitty split")
	cmd.Flags().BoolVar(&p.kittyHorizontal, "kitty-horizontal", false, "Open in a horizontal kitty split")
}

// placement describes the resolved multiplexer target, if any.
type placement struct {
	mux       string // "tmux" or "kitty"
	direction multiplexer.Direction
}

// resolve validates the placement flags against each other and against
// the environment: at most one flag may be set, and the matching
// multiplexer must actually be running. defaultDirection substitutes the
// configured direction for the bare --tmux/--kitty flags.
func (p *placementFlags) resolve(env []string, defaultDirection string) (*placement, error) {
	newDir := multiplexer.DirectionNew
	switch defaultDirection {
	case "vertical":
		newDir = multiplexer.DirectionVertical
	case "horizontal":
		newDir = multiplexer.DirectionHorizontal
	}

	var chosen *placement
	set := func(mux string, dir multiplexer.Direction) error {
		if chosen != nil {
			return model.NewCLIError(model.ExitValidationError,
				"only one multiplexer placement flag may be given")
		}
		chosen = &placement{mux: mux, direction: dir}
		return nil
	}

	for _, f := range []struct {
		on  bool
		mux string
		dir multiplexer.Direction
	}{
		{p.tmux, "tmux", newDir},
		{p.tmuxVertical, "tmux", multiplexer.DirectionVertical},
		{p.tmuxHorizontal, "tmux", multiplexer.DirectionHorizontal},
		{p.kitty, "kitty", newDir},
		{p.kittyVertical, "kitty", multiplexer.DirectionVertical},
		{p.kittyHorizontal, "kitty", multiplexer.DirectionHorizontal},
	} {
		if f.on {
			if err := set(f.mux, f.dir); err != nil {
				return nil, err
			}
		}
	}

	if chosen == nil {
		return nil, nil
	}
	if chosen.mux == "tmux" && !multiplexer.InsideTmux(env) {
		return nil, model.NewCLIError(model.ExitValidationError,
			"the --tmux option can only be used inside a tmux session")
	}
	if chosen.mux == "kitty" && !multiplexer.InsideKitty(env) {
		return nil, model.NewCLIError(model.ExitValidationError,
			"the --kitty option can only be used inside a kitty terminal")
	}
	return chosen, nil
}

// spawn places a command into the resolved multiplexer pane.
func (pl *placement) spawn(spec multiplexer.Spec) error {
	spec.Direction = pl.direction
	if pl.mux == "kitty" {
		return multiplexer.SpawnKitty(spec)
	}
	return multiplexer.SpawnTmux(spec)
}

// worktreeNameCompletion completes positional arguments with the names
// of the managed worktrees, via the Lister's names-only mode.
func worktreeNameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s, err := newSession()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names, err := s.mgr.Names()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

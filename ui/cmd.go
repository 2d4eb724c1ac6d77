package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"omweso/src"
	"omweso/src/base"
	"omweso/src/control"
	"omweso/src/engine"
	"omweso/src/engine/extern"
	"omweso/src/engine/human"
	"omweso/src/engine/players"
	"omweso/src/logic/history"
	"omweso/src/logx"
	"omweso/src/server"
	clic "omweso/ui/cli"
	"omweso/ui/gconf"
	"omweso/ui/gui"
	"omweso/ui/gui/gctx"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const logfile string = "omweso.log"

func GetLogger(w io.Writer, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		c.Bool("dev"),
		c.Bool("console"),
	)
	l.InitLogger(w)
	return l
}

// session is one configured match with everything that must be released
// afterwards.
type session struct {
	game    *src.Game
	ctrl    *control.Controller
	server  *server.Server
	events  chan server.Event
	logger  logx.Logger
	closers []func() error
}

func (s *session) Close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.closers[i]())
	}
	return err
}

// applyFlags lets command line flags override the config file
func applyFlags(cfg *gconf.Config, c *cli.Command) {
	if c.IsSet("size") {
		cfg.Size = int(c.Int("size"))
	}
	if c.IsSet("seeds") {
		cfg.Pool = int(c.Int("seeds"))
	}
	if c.IsSet("p0") {
		cfg.Player0 = c.String("p0")
	}
	if c.IsSet("p1") {
		cfg.Player1 = c.String("p1")
	}
	if c.IsSet("engine-level") {
		cfg.Level = int(c.Int("engine-level"))
	}
	if c.IsSet("delay") {
		cfg.MinDelayMs = int(c.Int("delay"))
	}
	if c.IsSet("extern") {
		cfg.ExternPath = c.String("extern")
	}
}

func newSession(cfg *gconf.Config, pos string, logger logx.Logger, allowHuman bool) (*session, error) {
	var (
		game *src.Game
		err  error
	)
	if pos != "" {
		game, err = src.NewGameFromPosition(pos, logger)
	} else {
		game, err = src.NewGame(cfg.Size, cfg.Pool, logger)
	}
	if err != nil {
		return nil, err
	}
	game.SetInfo(history.TagEvent, "omweso")
	game.SetInfo(history.TagDate, time.Now().Format("2006.01.02"))
	s := &session{
		game:   game,
		ctrl:   control.NewController(game, logger),
		events: make(chan server.Event, 64),
		logger: logger,
	}

	var ps [2]engine.Player
	for i, name := range []string{cfg.Player0, cfg.Player1} {
		p, err := s.newPlayer(cfg, name, uint64(time.Now().UnixNano())+uint64(i), allowHuman)
		if err != nil {
			return nil, multierr.Append(err, s.Close())
		}
		ps[i] = p
	}
	s.server = server.New(game, ps[0], ps[1], engine.DefaultTiming(), logger)
	unsubscribe := s.server.Subscribe(s.events)
	s.closers = append(s.closers, func() error { unsubscribe(); return nil })
	return s, nil
}

func (s *session) newPlayer(cfg *gconf.Config, name string, seed uint64, allowHuman bool) (engine.Player, error) {
	delay := time.Duration(cfg.MinDelayMs) * time.Millisecond
	switch name {
	case "human":
		if !allowHuman {
			return nil, errors.New("a match needs two automatic players")
		}
		return human.New("human", s.ctrl), nil
	case "extern":
		p := extern.New(s.logger, cfg.ExternPath)
		if err := p.Init(); err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() error { p.Close(); return nil })
		return engine.WithMinLatency(p, delay, delay), nil
	}
	p, err := players.New(name, seed, engine.LevelAnalyze(cfg.Level), engine.DefaultTiming())
	if err != nil {
		return nil, err
	}
	return engine.WithMinLatency(p, delay, delay), nil
}

func openLog(c *cli.Command) (*os.File, *logx.Logx, error) {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("error open logfile: %w", err)
	}
	return file, GetLogger(file, c), nil
}

func loadConfig(c *cli.Command) (*gconf.Config, error) {
	var (
		cfg *gconf.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = gconf.LoadFile(path)
	} else {
		cfg, err = gconf.Load()
	}
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, c)
	return cfg, nil
}

// RunGUI keeps ebiten on the calling goroutine and the server on an
// errgroup goroutine; closing the window stops the match.
func RunGUI(ctx context.Context, c *cli.Command) (err error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	file, logger, err := openLog(c)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Combine(err, logger.Sync(), file.Close()) }()

	s, err := newSession(cfg, c.String("pos"), logger, true)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.Close()) }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, runCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.server.Run(runCtx)
		return ignoreCanceled(err)
	})

	app := gui.NewGUI(gctx.NewGUIGameContext(s.game, s.ctrl, s.events, cfg, logger))
	guiErr := app.Run()
	cancel()
	return multierr.Append(guiErr, g.Wait())
}

func RunCLI(ctx context.Context, c *cli.Command) (err error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	file, logger, err := openLog(c)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Combine(err, logger.Sync(), file.Close()) }()

	s, err := newSession(cfg, c.String("pos"), logger, true)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, s.Close()) }()

	clic.EnableANSI()
	g, runCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.server.Run(runCtx)
		return ignoreCanceled(err)
	})
	g.Go(func() error {
		err := clic.NewCLI(s.game, s.ctrl, s.events).Run(runCtx)
		if errors.Is(err, clic.ErrQuit) {
			// stops the server through the group context
			return err
		}
		return ignoreCanceled(err)
	})
	err = g.Wait()
	fmt.Println()
	fmt.Println(s.game.Record())
	if errors.Is(err, clic.ErrQuit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// RunMatch plays automatic players against each other and prints one
// line per game.
func RunMatch(ctx context.Context, c *cli.Command) (err error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := GetLogger(os.Stderr, c)
	// syncing stderr fails on some terminals
	defer logger.Sync() //nolint:errcheck

	games := int(c.Int("games"))
	if games < 1 {
		games = 1
	}
	var wins [2]int
	draws := 0
	for i := 1; i <= games; i++ {
		s, err := newSession(cfg, c.String("pos"), logger, false)
		if err != nil {
			return err
		}
		status, runErr := s.server.Run(ctx)
		_, reason := s.server.Result()
		if err := multierr.Append(runErr, s.Close()); err != nil {
			return err
		}
		switch status {
		case base.PlayerZeroWon:
			wins[base.PlayerZero]++
		case base.PlayerOneWon:
			wins[base.PlayerOne]++
		default:
			draws++
		}
		line := fmt.Sprintf("game %d: %s after %d moves", i, status, s.game.CountMoves())
		if reason != server.NoForfeit {
			line += fmt.Sprintf(" (forfeit: %s)", reason)
		}
		fmt.Println(line)
		if c.Bool("record") {
			fmt.Println(s.game.Record())
		}
	}
	fmt.Printf("%s %d - %d %s, draws %d\n", cfg.Player0, wins[0], wins[1], cfg.Player1, draws)
	return nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func RunOmweso() error {
	logFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:    "dev",
			Aliases: []string{"d"},
			Usage:   "development logger",
		},
		&cli.StringFlag{
			Name:    "level",
			Aliases: []string{"l"},
			Value:   "info",
			Usage:   "logger level (debug, info, warn, error)",
		},
		&cli.BoolFlag{
			Name:  "console",
			Usage: "console logger encoding",
		},
	}
	gameFlags := []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "path to a config file"},
		&cli.StringFlag{Name: "p0", Usage: "player 0: human, extern, " + playerList()},
		&cli.StringFlag{Name: "p1", Usage: "player 1: human, extern, " + playerList()},
		&cli.IntFlag{Name: "size", Usage: "pits per row"},
		&cli.IntFlag{Name: "seeds", Usage: "seeds per player"},
		&cli.StringFlag{Name: "pos", Usage: "start from a position string"},
		&cli.IntFlag{Name: "engine-level", Usage: "greedy search level 1..5"},
		&cli.IntFlag{Name: "delay", Usage: "minimum think time of automatic players, ms"},
		&cli.StringFlag{Name: "extern", Usage: "path to an external player program"},
	}
	flags := append(append([]cli.Flag{}, gameFlags...), logFlags...)
	matchFlags := append(append([]cli.Flag{}, flags...),
		&cli.IntFlag{Name: "games", Value: 1, Usage: "number of games"},
		&cli.BoolFlag{Name: "record", Usage: "print the record of every game"},
	)

	return (&cli.Command{
		Name:  "omweso",
		Usage: "omweso board game",
		Flags: flags,
		Commands: []*cli.Command{
			{
				Name:   "gui",
				Usage:  "play in a window",
				Flags:  flags,
				Action: RunGUI,
			},
			{
				Name:   "cli",
				Usage:  "play in the terminal",
				Flags:  flags,
				Action: RunCLI,
			},
			{
				Name:   "match",
				Usage:  "let automatic players play each other",
				Flags:  matchFlags,
				Action: RunMatch,
			},
		},
		Action: RunGUI,
	}).Run(context.Background(), os.Args)
}

func playerList() string {
	out := ""
	for i, n := range players.Names() {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"tsumeshogi/internal/book"
	"tsumeshogi/internal/logx"
	httpserver "tsumeshogi/internal/server/http"
	"tsumeshogi/internal/shogi"
	"tsumeshogi/internal/tsume"
)

const logfile = "tsume.log"

func getLogger(file *os.File, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.LevelByString(c.String("level")),
		c.Bool("debug"),
		c.Bool("console"),
	)
	var w io.Writer
	if file != nil {
		w = file
	}
	l.InitLogger(w) // ログファイルが開けなければ標準出力に落ちる
	return l
}

func openLogfile() *os.File {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Printf("error open logfile: %v\n", err)
		return nil
	}
	return file
}

func searchOptions(c *cli.Command) tsume.Options {
	opts := tsume.Options{MaxDepth: int(c.Int("depth"))}
	if ms := c.Int("timeout-ms"); ms > 0 {
		opts.Timeout = time.Duration(ms) * time.Millisecond
	}
	return opts
}

func runSolve(c *cli.Command, log logx.Logger) error {
	sfen := c.String("sfen")
	if sfen == "" {
		return fmt.Errorf("--sfen is required")
	}
	pos, err := shogi.DecodeSFEN(sfen)
	if err != nil {
		return fmt.Errorf("invalid sfen: %w", err)
	}

	attacker := shogi.Black
	if c.Int("attacker") == 1 {
		attacker = shogi.White
	}
	res, err := tsume.Search(pos, attacker, searchOptions(c))
	if err != nil {
		return err
	}

	log.Infof("solve sfen=%q mate=%v nodes=%d elapsed=%s", sfen, res.IsMate, res.Nodes, res.Elapsed)
	if !res.IsMate {
		fmt.Printf("no mate (nodes=%d, %s)\n", res.Nodes, res.Elapsed)
		return nil
	}
	fmt.Printf("mate in %d:", len(res.Moves))
	for _, mv := range res.Moves {
		fmt.Printf(" %s", mv)
	}
	fmt.Printf("  (nodes=%d, %s)\n", res.Nodes, res.Elapsed)
	return nil
}

func runBench(c *cli.Command, log logx.Logger) error {
	path := c.String("book")
	if path == "" {
		return fmt.Errorf("--book is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	problems, err := book.ReadAll(f)
	if err != nil {
		return err
	}

	opts := searchOptions(c)
	var totalNodes int64
	var totalTime time.Duration
	solved := 0
	for i, pb := range problems {
		res, err := tsume.Search(pb.Pos, pb.Pos.SideToMove, opts)
		if err != nil {
			log.Warnf("problem %d skipped: %v", i+1, err)
			continue
		}
		totalNodes += res.Nodes
		totalTime += res.Elapsed
		mark := "x"
		if res.IsMate {
			solved++
			mark = "o"
		}
		want := ""
		if len(pb.Solution) > 0 {
			want = pb.Solution[0].USI()
		}
		fmt.Printf("%s #%d depth<=%d nodes=%d %s (book: %s)\n",
			mark, i+1, opts.MaxDepth, res.Nodes, res.Elapsed, want)
	}
	fmt.Printf("solved %d/%d, nodes=%d, time=%s\n", solved, len(problems), totalNodes, totalTime)
	log.Infof("bench book=%s solved=%d/%d nodes=%d time=%s", path, solved, len(problems), totalNodes, totalTime)
	return nil
}

func runServe(c *cli.Command, log logx.Logger) error {
	addr := c.String("addr")
	mux := http.NewServeMux()

	solver := tsume.NewService(searchOptions(c))
	h := httpserver.NewHandler(log, solver)
	mux.Handle("/api/", h)
	httpserver.RegisterStaticRoutes(mux, c.String("web"))

	log.Infof("listening on %s", addr)
	fmt.Printf("listening on %s\n", addr)
	return http.ListenAndServe(addr, mux)
}

func main() {
	logFlags := []cli.Flag{
		&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "logger level", Value: "info"},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "development encoder config"},
		&cli.BoolFlag{Name: "console", Aliases: []string{"c"}, Usage: "console logger encoding"},
	}
	searchFlags := []cli.Flag{
		&cli.IntFlag{Name: "depth", Usage: "max search depth in plies", Value: tsume.DefaultMaxDepth},
		&cli.IntFlag{Name: "timeout-ms", Usage: "time limit per search, 0 for none"},
	}

	withLogger := func(run func(*cli.Command, logx.Logger) error) cli.ActionFunc {
		return func(ctx context.Context, c *cli.Command) error {
			file := openLogfile()
			if file != nil {
				defer file.Close()
			}
			return run(c, getLogger(file, c))
		}
	}

	cmd := &cli.Command{
		Name:  "tsume",
		Usage: "forced checkmate search for shogi positions",
		Commands: []*cli.Command{
			{
				Name:  "solve",
				Usage: "search one position for a forced mate",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "sfen", Usage: "position in SFEN"},
					&cli.IntFlag{Name: "attacker", Usage: "0=black, 1=white"},
				}, append(searchFlags, logFlags...)...),
				Action: withLogger(runSolve),
			},
			{
				Name:  "bench",
				Usage: "run the searcher over a problem collection",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "book", Usage: "path to a problem file"},
				}, append(searchFlags, logFlags...)...),
				Action: withLogger(runBench),
			},
			{
				Name:  "serve",
				Usage: "start the local solver API and board UI",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address", Value: ":2889"},
					&cli.StringFlag{Name: "web", Usage: "directory with static assets", Value: "./web"},
				}, append(searchFlags, logFlags...)...),
				Action: withLogger(runServe),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Maze-Adventure/internal/levels"
	"github.com/Garsondee/Maze-Adventure/internal/term"
)

func main() {
	var level int
	var levelsPath string
	var sound bool

	flag.IntVar(&level, "level", 1, "level to start on")
	flag.StringVar(&levelsPath, "levels", "", "optional YAML level table")
	flag.BoolVar(&sound, "sound", false, "play sound cues")
	flag.Parse()

	src, err := levels.Source(levelsPath)
	if err != nil {
		log.Fatal(err)
	}

	var sounder *term.Sounder
	if sound {
		sounder, err = term.NewSounder()
		if err != nil {
			log.Printf("sound disabled: %v", err)
			sounder = nil
		}
		defer sounder.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	fe, err := term.New(screen, src, level, sounder)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := fe.Run(ctx)
	screen.Fini()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatal(runErr)
	}
	fmt.Print(fe.Reporter().Format())
}

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Maze-Adventure/internal/game"
	"github.com/Garsondee/Maze-Adventure/internal/levels"
)

func main() {
	var level int
	var levelsPath string

	flag.IntVar(&level, "level", 1, "level to start on")
	flag.StringVar(&levelsPath, "levels", "", "optional YAML level table")
	flag.Parse()

	src, err := levels.Source(levelsPath)
	if err != nil {
		log.Fatal(err)
	}
	g, err := game.New(src, level)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Maze Adventure")
	ebiten.SetWindowSize(g.Size())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	fmt.Print(g.Reporter().Format())
}

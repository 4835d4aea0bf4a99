package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/logger"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and logging")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	watch := flag.Bool("watch", false, "reload player tuning when prefabs/ changes")
	probe := flag.String("probe", "boxes", "probe geometry: boxes or physics")
	script := flag.String("script", "", "drive the player from a tengo script in prefabs/scripts instead of the keyboard")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	logger.Init(logger.Config{Level: level, Format: "console"})

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("platformer")
	ebiten.SetTPS(60)

	game, err := NewGame(context.Background(), options{
		Level:  *levelName,
		Probe:  *probe,
		Script: *script,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

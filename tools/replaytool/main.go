package main

import (
	"fmt"
	"os"
	"time"

	"github.com/HoriaMercan/PM-project/internal/engine"
	"github.com/HoriaMercan/PM-project/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "list":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replaytool list <dir>")
			return
		}
		svc := &storage.ReplayService{SaveDir: os.Args[2]}
		paths, err := svc.List()
		if err != nil {
			fmt.Printf("List failed: %v\n", err)
			os.Exit(1)
		}
		for _, p := range paths {
			fmt.Println(p)
		}
	case "info":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replaytool info <file.bbrp>")
			return
		}
		if err := info(os.Args[2]); err != nil {
			fmt.Printf("Invalid replay: %v\n", err)
			os.Exit(1)
		}
	default:
		printHelp()
	}
}

func info(path string) error {
	rec, err := (&storage.ReplayService{}).Load(path)
	if err != nil {
		return err
	}
	g, err := engine.Replay(rec)
	if err != nil {
		return err
	}
	bombs := g.Bombs()

	fmt.Printf("recorded: %s\n", time.Unix(rec.Timestamp, 0).UTC().Format(time.RFC3339))
	fmt.Printf("bombs:    %d (%d distinct)\n", len(rec.Bombs), bombs.Distinct())
	fmt.Printf("actions:  %d\n", len(rec.Actions))
	fmt.Printf("revealed: %d\n", g.RevealedCount())
	switch {
	case g.IsLost():
		fmt.Printf("result:   lost by player %d\n", g.Turn()+1)
	case g.Won(0):
		fmt.Println("result:   won by player 1")
	case g.Won(1):
		fmt.Println("result:   won by player 2")
	default:
		fmt.Println("result:   unfinished")
	}
	return nil
}

func printHelp() {
	fmt.Println(`Replay Tool - просмотр записей партий
Commands:
  list <dir>          - файлы записей в каталоге
  info <file.bbrp>    - заголовок и итог партии`)
}

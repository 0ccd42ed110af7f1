// Package main provides the entry point for the proto-annot application.
package main

import (
	"log"
	"os"
	"strings"

	fyneapp "fyne.io/fyne/v2/app"

	"github.com/terravidhal/proto-annot/internal/app"
	"github.com/terravidhal/proto-annot/internal/version"
	"github.com/terravidhal/proto-annot/ui/mainwindow"
	"github.com/terravidhal/proto-annot/ui/prefs"
)

const appTitle = "proto-annot"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s %s", appTitle, version.String())

	fa := fyneapp.New()
	state := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fa, state, appPrefs)

	// A document or image path on the command line opens immediately.
	if len(os.Args) > 1 {
		path := os.Args[1]
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			if err := state.OpenDocument(path); err != nil {
				log.Printf("Failed to open document %s: %v", path, err)
			}
		} else {
			state.LoadImage(path)
		}
	}

	win.Show()
	fa.Run()
}

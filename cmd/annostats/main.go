// Command annostats prints per-label statistics for a saved annotation
// document, and can optionally write a thumbnail of the annotated image.
//
// Usage:
//
//	annostats document.json [-thumb out.png] [-size 256]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/disintegration/imaging"

	"github.com/terravidhal/proto-annot/internal/document"
	"github.com/terravidhal/proto-annot/internal/export"
	"github.com/terravidhal/proto-annot/internal/imageio"
	"github.com/terravidhal/proto-annot/internal/version"
)

func main() {
	log.SetFlags(0)

	thumbOut := flag.String("thumb", "", "write a thumbnail of the annotated image to this path")
	thumbSize := flag.Int("size", 256, "thumbnail size (longer side, pixels)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] document.json\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	store := document.NewStore()
	if err := store.Load(flag.Arg(0)); err != nil {
		log.Fatalf("load document: %v", err)
	}

	set := store.All()
	fmt.Printf("%d annotations in %s\n\n", len(set), flag.Arg(0))
	fmt.Print(export.FormatSummary(export.Summarize(set)))

	if *thumbOut == "" {
		return
	}
	if store.ImagePath() == "" {
		log.Fatal("document has no image path, cannot write thumbnail")
	}
	asset, err := imageio.Load(store.ImagePath())
	if err != nil {
		log.Fatalf("load image: %v", err)
	}
	snap := export.Snapshot(asset.Image(), set, nil, true)
	thumb := imageio.Thumbnail(snap, *thumbSize)
	if err := imaging.Save(thumb, *thumbOut); err != nil {
		log.Fatalf("write thumbnail: %v", err)
	}
	fmt.Printf("\nthumbnail written to %s\n", *thumbOut)
}

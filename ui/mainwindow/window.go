// Package mainwindow assembles the application window: toolbar, canvas,
// and annotation list. Layout is deliberately minimal; the interesting
// work happens in the canvas and the engine behind it.
package mainwindow

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/terravidhal/proto-annot/internal/app"
	"github.com/terravidhal/proto-annot/internal/document"
	"github.com/terravidhal/proto-annot/internal/export"
	"github.com/terravidhal/proto-annot/internal/interaction"
	"github.com/terravidhal/proto-annot/ui/canvas"
	"github.com/terravidhal/proto-annot/ui/prefs"
)

var imageFilter = storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".webp"})
var documentFilter = storage.NewExtensionFileFilter([]string{".json"})

// MainWindow is the top-level application window.
type MainWindow struct {
	win    fyne.Window
	state  *app.State
	prefs  *prefs.Prefs
	canvas *canvas.AnnotationCanvas

	list       *widget.List
	labelEntry *widget.Entry
	zoomLabel  *widget.Label
	ids        []string
}

// New builds the main window.
func New(a fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	mw := &MainWindow{
		win:   a.NewWindow("proto-annot"),
		state: state,
		prefs: p,
	}

	state.SetTool(interaction.Tool(p.String(prefs.KeyLastTool, string(interaction.ToolSelect))))
	state.SetActiveLabel(p.String(prefs.KeyLastLabel, ""))
	state.SetShowLabels(p.Bool(prefs.KeyShowLabels, true))
	state.SetShowHandles(p.Bool(prefs.KeyShowHandles, true))

	mw.canvas = canvas.New(state)
	mw.canvas.SetZoom(p.Float(prefs.KeyZoom, 1.0))

	mw.buildUI()
	mw.bindShortcuts()

	state.Store.On(document.EventAnnotationsChanged, func(interface{}) { mw.refreshList() })
	state.Store.On(document.EventSelectionChanged, func(interface{}) { mw.refreshList() })
	state.Store.On(document.EventLoaded, func(interface{}) { mw.refreshList() })

	mw.win.Resize(fyne.NewSize(1100, 750))
	mw.win.SetOnClosed(func() {
		mw.canvas.Close()
		mw.savePrefs()
	})
	return mw
}

// Window returns the underlying fyne window.
func (mw *MainWindow) Window() fyne.Window {
	return mw.win
}

// Show displays the window.
func (mw *MainWindow) Show() {
	mw.win.Show()
}

func (mw *MainWindow) buildUI() {
	toolSelect := widget.NewButton("Select", func() { mw.setTool(interaction.ToolSelect) })
	toolRect := widget.NewButton("Rectangle", func() { mw.setTool(interaction.ToolRectangle) })
	toolCircle := widget.NewButton("Circle", func() { mw.setTool(interaction.ToolCircle) })

	openImage := widget.NewButton("Open Image", mw.openImageDialog)
	openDoc := widget.NewButton("Open", mw.openDocumentDialog)
	saveDoc := widget.NewButton("Save", mw.saveDocumentDialog)
	exportPNG := widget.NewButton("Export PNG", mw.exportPNGDialog)

	zoomIn := widget.NewButton("+", func() { mw.canvas.ZoomIn() })
	zoomOut := widget.NewButton("-", func() { mw.canvas.ZoomOut() })
	zoomFit := widget.NewButton("Fit", func() { mw.canvas.FitToWindow() })
	mw.zoomLabel = widget.NewLabel("100%")
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})

	toolbar := container.NewHBox(
		openImage, openDoc, saveDoc, exportPNG,
		widget.NewSeparator(),
		toolSelect, toolRect, toolCircle,
		widget.NewSeparator(),
		zoomOut, mw.zoomLabel, zoomIn, zoomFit,
	)

	mw.labelEntry = widget.NewEntry()
	mw.labelEntry.SetPlaceHolder("label for new shapes")
	mw.labelEntry.SetText(mw.state.ActiveLabel())
	mw.labelEntry.OnChanged = func(text string) {
		mw.state.SetActiveLabel(text)
		if id := mw.state.Store.Selection(); id != "" {
			if a, ok := mw.state.Store.Get(id); ok {
				a.SetLabel(text)
				mw.state.Store.Upsert(a)
			}
		}
	}

	mw.list = widget.NewList(
		func() int { return len(mw.ids) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i < 0 || i >= len(mw.ids) {
				return
			}
			a, ok := mw.state.Store.Get(mw.ids[i])
			if !ok {
				return
			}
			label := a.Label
			if label == "" {
				label = "(unlabeled)"
			}
			o.(*widget.Label).SetText(fmt.Sprintf("%s — %s", label, a.Kind))
		},
	)
	mw.list.OnSelected = func(i widget.ListItemID) {
		if i >= 0 && i < len(mw.ids) {
			mw.state.Store.SetSelection(mw.ids[i])
		}
	}

	side := container.NewBorder(
		container.NewVBox(widget.NewLabel("Annotations"), mw.labelEntry),
		nil, nil, nil,
		mw.list,
	)

	split := container.NewHSplit(mw.canvas.Container(), side)
	split.SetOffset(0.78)
	mw.win.SetContent(container.NewBorder(toolbar, nil, nil, nil, split))
}

func (mw *MainWindow) bindShortcuts() {
	mw.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			if id := mw.state.Store.Selection(); id != "" {
				mw.state.Store.Remove(id)
			}
		case fyne.KeyEscape:
			mw.state.Store.SetSelection("")
		case fyne.Key1, fyne.KeyV:
			mw.setTool(interaction.ToolSelect)
		case fyne.Key2, fyne.KeyR:
			mw.setTool(interaction.ToolRectangle)
		case fyne.Key3, fyne.KeyC:
			mw.setTool(interaction.ToolCircle)
		}
	})
}

func (mw *MainWindow) setTool(tool interaction.Tool) {
	mw.state.SetTool(tool)
	mw.prefs.SetString(prefs.KeyLastTool, string(tool))
}

func (mw *MainWindow) refreshList() {
	set := mw.state.Store.All()
	mw.ids = mw.ids[:0]
	for _, a := range set {
		mw.ids = append(mw.ids, a.ID)
	}
	mw.list.Refresh()
}

func (mw *MainWindow) openImageDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		mw.state.LoadImage(path)
		mw.prefs.SetString(prefs.KeyLastDir, path)
	}, mw.win)
	d.SetFilter(imageFilter)
	d.Show()
}

func (mw *MainWindow) openDocumentDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		if err := mw.state.OpenDocument(path); err != nil {
			log.Printf("open document: %v", err)
			dialog.ShowError(err, mw.win)
		}
	}, mw.win)
	d.SetFilter(documentFilter)
	d.Show()
}

func (mw *MainWindow) saveDocumentDialog() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		path := w.URI().Path()
		_ = w.Close()
		if err := mw.state.SaveDocument(path); err != nil {
			log.Printf("save document: %v", err)
			dialog.ShowError(err, mw.win)
		}
	}, mw.win)
	d.SetFileName("annotations.json")
	d.Show()
}

func (mw *MainWindow) exportPNGDialog() {
	asset := mw.state.Asset()
	if asset == nil || !asset.Ready() {
		dialog.ShowInformation("Export", "Image is still loading.", mw.win)
		return
	}
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		path := w.URI().Path()
		_ = w.Close()
		snap := export.Snapshot(asset.Image(), mw.state.Store.All(), mw.state.Store.Hidden(), mw.state.ShowLabels())
		if err := export.WritePNG(path, snap); err != nil {
			log.Printf("export png: %v", err)
			dialog.ShowError(err, mw.win)
		}
	}, mw.win)
	d.SetFileName("annotated.png")
	d.Show()
}

func (mw *MainWindow) savePrefs() {
	mw.prefs.SetString(prefs.KeyLastTool, string(mw.state.Tool()))
	mw.prefs.SetString(prefs.KeyLastLabel, mw.state.ActiveLabel())
	mw.prefs.SetBool(prefs.KeyShowLabels, mw.state.ShowLabels())
	mw.prefs.SetBool(prefs.KeyShowHandles, mw.state.ShowHandles())
	mw.prefs.SetFloat(prefs.KeyZoom, mw.canvas.Zoom())
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

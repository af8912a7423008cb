// Command ggview displays large raster images in a gogpu window.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/backend/canvas"
)

func main() {
	if err := newRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	size      string
	tileLimit int
	budgetMB  int64
	logLevel  string
	logFile   string
}

func newRoot() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "ggview <image>",
		Short: "a lean tiled image viewer",
		Long: `ggview displays a raster image, split into GPU-sized tiles, and
browses the images sharing its directory as an album.

Keys:
  Left/Up/PageUp        previous image
  Right/Down/PageDown   next image (Space too)
  R / Shift+R           rotate a quarter turn cw / ccw
  F or Enter            toggle fit / 100%
  + / -                 zoom about the center
  Ctrl+Arrows           pan
  I                     toggle the status line
  Q or Escape           quit`,
		Args:         cobra.ExactArgs(1),
		Version:      ggview.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.size, "size", "1200x800", "initial window size as WIDTHxHEIGHT")
	f.IntVar(&o.tileLimit, "tile-limit", ggview.DefaultTileLimit, "maximum tile dimension in pixels (clamped to the GPU limit)")
	f.Int64Var(&o.budgetMB, "texture-budget", 0, "texture memory budget in MiB, 0 for unlimited")
	f.StringVar(&o.logLevel, "log-level", "WARN", "log level (DEBUG, INFO, WARN, ERROR)")
	f.StringVar(&o.logFile, "log-file", "", "log to this rotated file instead of stderr")
	return cmd
}

func run(path string, o options) error {
	setupLogging(o.logLevel, o.logFile)

	width, height, err := parseSize(o.size)
	if err != nil {
		return err
	}

	r, err := backend.InitDefault()
	if err != nil {
		return fmt.Errorf("ggview: renderer: %w", err)
	}
	cr, ok := r.(*canvas.Renderer)
	if !ok {
		return fmt.Errorf("ggview: renderer %q cannot draw to a window", r.Name())
	}
	if o.budgetMB > 0 {
		if bs, ok := r.(backend.BudgetSetter); ok {
			bs.SetBudget(o.budgetMB << 20)
		}
	}
	if max := cr.MaxTextureDim(); max > 0 && o.tileLimit > max {
		ggview.Logger().Warn("tile limit clamped to GPU maximum", "requested", o.tileLimit, "max", max)
		o.tileLimit = max
	}

	viewer, err := ggview.NewViewer(path, r, o.tileLimit)
	if err != nil {
		return err
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("ggview - " + filepath.Base(path)).
		WithSize(width, height).
		WithContinuousRender(true))

	ctl := ggview.NewController(viewer, func() {
		viewer.Close()
		cr.Close()
		gg.CloseAccelerator()
		os.Exit(0)
	})

	var cv *ggcanvas.Canvas
	app.OnDraw(func(dc *gogpu.Context) {
		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}

		if cv == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var cerr error
			cv, cerr = ggcanvas.New(provider, w, h)
			if cerr != nil {
				ggview.Logger().Error("canvas creation failed", "error", cerr)
				return
			}
		}
		if cw, ch := cv.Size(); cw != w || ch != h {
			if err := cv.Resize(w, h); err != nil {
				ggview.Logger().Warn("canvas resize failed", "error", err)
			}
		}

		viewer.Poll()
		if err := cv.Draw(func(cc *gg.Context) {
			cc.SetRGB(0, 0, 0)
			cc.Clear()
			cr.Begin(cc)
			for _, q := range viewer.Frame(float64(w), float64(h)) {
				cr.DrawQuad(q.Tex, q.Center.X, q.Center.Y, q.W, q.H, q.Steps)
			}
			if hud := viewer.HUD(); hud.Visible {
				cr.DrawHUD(hud.Line())
			}
			cr.End()
		}); err != nil {
			ggview.Logger().Warn("frame draw failed", "error", err)
		}

		sv := dc.RenderTarget().SurfaceView()
		sw, sh := dc.SurfaceSize()
		if err := cv.RenderDirect(sv, sw, sh); err != nil {
			ggview.Logger().Warn("present failed", "error", err)
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		ctl.HandleKey(ggview.KeyEvent{Key: mapKey(key), Mods: mapMods(mods)})
	})

	app.OnClose(func() {
		viewer.Close()
		cr.Close()
		gg.CloseAccelerator()
	})

	return app.Run()
}

// setupLogging points the ggview logger at stderr or a rotated file.
// An unknown level falls back to WARN.
func setupLogging(level, file string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelWarn
	}

	var w io.Writer = os.Stderr
	if file != "" {
		w = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // MiB per file
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
	ggview.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
}

// parseSize parses "WIDTHxHEIGHT" into positive pixel dimensions.
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("ggview: size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("ggview: size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("ggview: size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("ggview: size %q: dimensions must be positive", s)
	}
	return w, h, nil
}

// mapKey translates window-system keys to viewer keys. Unmapped keys
// come back as KeyUnknown and are ignored by the controller.
func mapKey(k gpucontext.Key) ggview.Key {
	switch k {
	case gpucontext.KeyLeft:
		return ggview.KeyLeft
	case gpucontext.KeyRight:
		return ggview.KeyRight
	case gpucontext.KeyUp:
		return ggview.KeyUp
	case gpucontext.KeyDown:
		return ggview.KeyDown
	case gpucontext.KeyPageUp:
		return ggview.KeyPageUp
	case gpucontext.KeyPageDown:
		return ggview.KeyPageDown
	case gpucontext.KeySpace:
		return ggview.KeySpace
	case gpucontext.KeyEnter:
		return ggview.KeyEnter
	case gpucontext.KeyEscape:
		return ggview.KeyEscape
	case gpucontext.KeyR:
		return ggview.KeyR
	case gpucontext.KeyF:
		return ggview.KeyF
	case gpucontext.KeyI:
		return ggview.KeyI
	case gpucontext.KeyQ:
		return ggview.KeyQ
	case gpucontext.KeyEqual: // plus shares the equal key
		return ggview.KeyPlus
	case gpucontext.KeyMinus:
		return ggview.KeyMinus
	}
	return ggview.KeyUnknown
}

func mapMods(m gpucontext.Modifiers) ggview.Modifiers {
	var out ggview.Modifiers
	if m&gpucontext.ModShift != 0 {
		out |= ggview.ModShift
	}
	if m&gpucontext.ModControl != 0 {
		out |= ggview.ModCtrl
	}
	if m&gpucontext.ModAlt != 0 {
		out |= ggview.ModAlt
	}
	return out
}

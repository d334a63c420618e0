package display

import (
	"context"
	"encoding/json"
	"html/template"
	"image"
	"image/color"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/cors"
	goutils "go.viam.com/utils"
	"goji.io"
	"goji.io/pat"

	"go.viam.com/radialwarp/logging"
	"go.viam.com/radialwarp/rimage"
	"go.viam.com/radialwarp/utils"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="margin:0;background:#000">
<img id="frame" width="{{.Width}}" height="{{.Height}}" alt="{{.Title}}">
<script>
const frame = document.getElementById("frame");
function refresh() {
  fetch("/frame").then(r => r.ok ? r.blob() : Promise.reject(r.status)).then(b => {
    const old = frame.src;
    frame.src = URL.createObjectURL(b);
    if (old) URL.revokeObjectURL(old);
    setTimeout(refresh, {{.RefreshMillis}});
  }).catch(() => setTimeout(refresh, 1000));
}
window.addEventListener("beforeunload", () => navigator.sendBeacon("/close"));
refresh();
</script>
</body>
</html>
`))

// WebWindowConfig describes a WebWindow.
type WebWindowConfig struct {
	Title         string
	Size          image.Point
	Address       string
	Background    color.Color
	RefreshMillis int
}

// WebWindow is a Window rendered as a page served over HTTP. The browser polls /frame
// for the composed image and posts to /close when the user is done.
type WebWindow struct {
	cfg    WebWindowConfig
	logger logging.Logger

	mu      sync.Mutex
	frame   *image.NRGBA
	frames  int
	events  []Event
	open    bool
	addr    string
	server  *http.Server
	handler http.Handler
	workers *utils.StoppableWorkers
}

// NewWebWindow returns an open window that is not yet listening; see Start.
func NewWebWindow(cfg WebWindowConfig, logger logging.Logger) *WebWindow {
	if cfg.Background == nil {
		cfg.Background = color.Black
	}
	if cfg.RefreshMillis <= 0 {
		cfg.RefreshMillis = 33
	}
	w := &WebWindow{cfg: cfg, logger: logger, open: true}
	w.handler = w.initMux()
	return w
}

func (w *WebWindow) initMux() http.Handler {
	mux := goji.NewMux()
	mux.HandleFunc(pat.Get("/"), w.serveIndex)
	mux.HandleFunc(pat.Get("/frame"), w.serveFrame)
	mux.HandleFunc(pat.Get("/status"), w.serveStatus)
	mux.HandleFunc(pat.Post("/close"), w.serveClose)
	return cors.AllowAll().Handler(mux)
}

// Handler returns the HTTP handler backing the window.
func (w *WebWindow) Handler() http.Handler {
	return w.handler
}

// Start listens on the configured address and serves until ctx is done or Close is called.
func (w *WebWindow) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.server != nil {
		return errors.New("window already started")
	}
	if !w.open {
		return errors.New("window is closed")
	}
	listener, err := net.Listen("tcp", w.cfg.Address)
	if err != nil {
		return errors.Wrapf(err, "cannot listen on %q", w.cfg.Address)
	}
	server, err := goutils.NewPossiblySecureHTTPServer(w.handler, goutils.HTTPServerOptions{
		Addr: listener.Addr().String(),
	})
	if err != nil {
		goutils.UncheckedError(listener.Close())
		return err
	}
	w.server = server
	w.addr = listener.Addr().String()
	w.logger.Infow("serving window", "url", "http://"+w.addr, "title", w.cfg.Title)

	w.workers = utils.NewStoppableWorkers(context.Background(),
		func(context.Context) {
			err := server.Serve(listener)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				w.logger.Errorw("error serving http", "error", err)
			}
		},
		func(workersCtx context.Context) {
			select {
			case <-ctx.Done():
				goutils.UncheckedError(w.shutdown())
			case <-workersCtx.Done():
			}
		},
	)
	return nil
}

// Addr returns the address the window is listening on, or "" before Start.
func (w *WebWindow) Addr() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addr
}

// Display composes tex into the placements and makes it the current frame.
func (w *WebWindow) Display(tex image.Image, placements []image.Rectangle) error {
	frame := Compose(tex, w.cfg.Size, placements, w.cfg.Background)
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.open {
		return errors.New("window is closed")
	}
	w.frame = frame
	w.frames++
	return nil
}

// PollEvents implements Window.
func (w *WebWindow) PollEvents() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := w.events
	w.events = nil
	return events
}

// IsOpen implements Window.
func (w *WebWindow) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Close stops serving. It is safe to call more than once.
func (w *WebWindow) Close() error {
	err := w.shutdown()
	w.mu.Lock()
	workers := w.workers
	w.mu.Unlock()
	if workers != nil {
		workers.Stop()
	}
	return err
}

// shutdown marks the window closed and stops the http server.
func (w *WebWindow) shutdown() error {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return nil
	}
	w.open = false
	server := w.server
	w.mu.Unlock()

	if server == nil {
		return nil
	}
	if err := server.Shutdown(context.Background()); err != nil {
		return errors.Wrap(err, "error shutting down")
	}
	return nil
}

func (w *WebWindow) serveIndex(rw http.ResponseWriter, r *http.Request) {
	data := struct {
		Title         string
		Width, Height int
		RefreshMillis int
	}{w.cfg.Title, w.cfg.Size.X, w.cfg.Size.Y, w.cfg.RefreshMillis}
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(rw, data); err != nil {
		w.logger.Debugw("couldn't execute web page", "error", err)
	}
}

func frameMimeType(format string) (string, bool) {
	switch strings.ToLower(format) {
	case "", "png":
		return utils.MimeTypePNG, true
	case "jpeg", "jpg":
		return utils.MimeTypeJPEG, true
	case "qoi":
		return utils.MimeTypeQOI, true
	default:
		return "", false
	}
}

func (w *WebWindow) serveFrame(rw http.ResponseWriter, r *http.Request) {
	mimeType, ok := frameMimeType(r.URL.Query().Get("format"))
	if !ok {
		http.Error(rw, "unsupported format", http.StatusBadRequest)
		return
	}
	w.mu.Lock()
	frame := w.frame
	w.mu.Unlock()
	if frame == nil {
		http.Error(rw, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	data, err := rimage.EncodeImage(r.Context(), frame, mimeType)
	if err != nil {
		w.logger.Debugw("failed to encode frame", "error", err)
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", mimeType)
	rw.Header().Set("Cache-Control", "no-store")
	if _, err := rw.Write(data); err != nil {
		w.logger.Debugw("failed to write frame", "error", err)
	}
}

// Status is the body of GET /status.
type Status struct {
	Title  string `json:"title"`
	Open   bool   `json:"open"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Frames int    `json:"frames"`
}

func (w *WebWindow) serveStatus(rw http.ResponseWriter, r *http.Request) {
	w.mu.Lock()
	status := Status{
		Title:  w.cfg.Title,
		Open:   w.open,
		Width:  w.cfg.Size.X,
		Height: w.cfg.Size.Y,
		Frames: w.frames,
	}
	w.mu.Unlock()
	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(status); err != nil {
		w.logger.Debugw("failed to write status", "error", err)
	}
}

func (w *WebWindow) serveClose(rw http.ResponseWriter, r *http.Request) {
	w.mu.Lock()
	w.events = append(w.events, Event{Type: EventClosed})
	w.mu.Unlock()
	w.logger.Debug("close requested")
	rw.WriteHeader(http.StatusAccepted)
}

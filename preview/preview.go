package preview

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/masnyjimmy/reqgen/generator"
	"github.com/rs/cors"
)

//go:embed preview.html
var previewUIBase string

func buildPreviewUI(filesUrl, eventsUrl string) []byte {
	replacer := strings.NewReplacer(
		"%FILES_URL%", filesUrl,
		"%EVENTS_URL%", eventsUrl,
	)

	return []byte(replacer.Replace(previewUIBase))
}

type Options struct {
	DebounceTime   time.Duration
	BaseUrl        string
	AllowedOrigins []string
}

func DefaultOptions() Options {
	return Options{
		DebounceTime:   DEFAULT_DEBOUNCE_TIME,
		BaseUrl:        "/",
		AllowedOrigins: []string{"*"},
	}
}

type urls struct {
	UI     string
	Files  string
	Events string
}

func makeUrls(base string) urls {
	return urls{
		UI:     path.Clean("/" + base),
		Files:  path.Join("/", base, "files.json"),
		Events: path.Join("/", base, "events"),
	}
}

// Preview serves the generated sources and notifies open pages when
// they are regenerated.
type Preview struct {
	options Options

	broadcaster *broadcaster
	urls        urls
	mu          sync.RWMutex
	files       []byte
}

func encodeFiles(files generator.Files) ([]byte, error) {
	if files == nil {
		files = generator.Files{}
	}
	return json.Marshal(files)
}

func New(files generator.Files, opt Options) (*Preview, error) {

	encoded, err := encodeFiles(files)
	if err != nil {
		return nil, err
	}

	out := &Preview{
		options:     opt,
		broadcaster: NewBroadcaster(),
		urls:        makeUrls(opt.BaseUrl),
		files:       encoded,
	}

	return out, nil
}

func (s *Preview) Handler(h http.Handler) http.Handler {

	previewUI := buildPreviewUI(s.urls.Files, s.urls.Events)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		switch path {
		case s.urls.UI:
			w.Header().Set("Content-Type", "text/html")
			w.Write(previewUI)
		case s.urls.Files:
			w.Header().Set("Content-Type", "application/json")
			s.mu.RLock()
			defer s.mu.RUnlock()
			w.Write(s.files)
		case s.urls.Events:
			s.broadcaster.ServeHTTP(w, r)
		default:
			if h != nil {
				h.ServeHTTP(w, r)
			} else {
				http.NotFound(w, r)
			}
		}
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.options.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}).Handler(handler)
}

func (s *Preview) SetFiles(files generator.Files) error {
	encoded, err := encodeFiles(files)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.files = encoded
	s.mu.Unlock()

	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, file.Name)
	}
	s.broadcaster.Reload(names)
	return nil
}

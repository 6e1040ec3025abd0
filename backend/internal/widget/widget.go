// Package widget produces the scripts third-party pages load: the bootstrap
// snippet that mounts a feedback-widget element and the widget bundle itself.
package widget

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/template"

	"github.com/itchan-dev/feedback/shared/logger"
)

const TagName = "feedback-widget"

//go:embed assets/widget.js
var embeddedBundle []byte

//go:embed assets/live.js
var liveReload []byte

var bootstrapTemplate = template.Must(template.New("bootstrap").Funcs(template.FuncMap{"jsString": jsString}).Parse(`
(function() {
  const feedbackWidget = document.createElement({{jsString .Tag}});
  feedbackWidget.setAttribute('slug', {{jsString .Slug}});
  document.body.appendChild(feedbackWidget);

  const script = document.createElement('script');
  script.src = {{jsString .EmbedURL}};
  document.body.appendChild(script);
})();
`))

// jsString renders s as a JavaScript string literal. encoding/json escapes
// quotes, backslashes, <, >, & and U+2028/U+2029, so the value can't break
// out of the literal or an enclosing script element.
func jsString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type Widget struct {
	bundle []byte
}

// New loads the prebuilt bundle from bundlePath, falling back to the embedded one
// when the path is empty or the file doesn't exist.
func New(bundlePath string) (*Widget, error) {
	if bundlePath == "" {
		return &Widget{bundle: embeddedBundle}, nil
	}
	bundle, err := os.ReadFile(bundlePath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Log.Info("widget bundle not found, using embedded widget", "path", bundlePath)
		return &Widget{bundle: embeddedBundle}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read widget bundle: %w", err)
	}
	return &Widget{bundle: bundle}, nil
}

func (w *Widget) Bundle() []byte {
	return w.bundle
}

// Bootstrap renders the loader script for slug; baseURL is where this service is reachable.
func (w *Widget) Bootstrap(baseURL, slug string) ([]byte, error) {
	data := struct {
		Tag      string
		Slug     string
		EmbedURL string
	}{
		Tag:      TagName,
		Slug:     slug,
		EmbedURL: EmbedURL(baseURL, slug),
	}

	var buf bytes.Buffer
	if err := bootstrapTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render bootstrap script: %w", err)
	}
	return buf.Bytes(), nil
}

func LiveReload() []byte {
	return liveReload
}

// ScriptURL is the address a page includes to load the widget for slug.
func ScriptURL(baseURL, slug string) string {
	return baseURL + "/feedback/" + url.PathEscape(slug) + "/widget.js"
}

func EmbedURL(baseURL, slug string) string {
	return ScriptURL(baseURL, slug) + "?embed=true"
}

// BaseURL returns publicURL when configured. Otherwise it is derived from the
// request host: plain http for localhost, https for everything else.
func BaseURL(r *http.Request, publicURL string) string {
	if publicURL != "" {
		return strings.TrimRight(publicURL, "/")
	}
	scheme := "https://"
	if strings.Contains(r.Host, "localhost") {
		scheme = "http://"
	}
	return scheme + r.Host
}

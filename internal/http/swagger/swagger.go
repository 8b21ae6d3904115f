package swagger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

const (
	yamlPath = "/swagger/openapi.yml"
	jsonPath = "/swagger/openapi.json"
)

const uiTemplate = `<!DOCTYPE html>
<html lang="ru">
<head>
  <meta charset="UTF-8">
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({
        url: '%s',
        dom_id: '#swagger-ui',
        presets: [
          SwaggerUIBundle.presets.apis,
          SwaggerUIBundle.SwaggerUIStandalonePreset
        ],
        layout: "BaseLayout"
      });
    };
  </script>
</body>
</html>`

type document struct {
	Info struct {
		Title string `yaml:"title"`
	} `yaml:"info"`
}

// RegisterRoutes подключает Swagger UI и отдаёт OpenAPI-документ в YAML и JSON.
// Заголовок страницы берётся из info.title документа.
func RegisterRoutes(mux chi.Router, spec []byte) {
	title := "Gift Exchange Service"
	var asJSON []byte

	if len(spec) > 0 {
		var doc document
		var raw map[string]any
		if err := yaml.Unmarshal(spec, &doc); err == nil && doc.Info.Title != "" {
			title = doc.Info.Title
		}
		if err := yaml.Unmarshal(spec, &raw); err != nil {
			slog.Warn("openapi spec is not valid yaml, json view disabled", "error", err)
		} else if b, err := json.Marshal(raw); err == nil {
			asJSON = b
		}
	}

	page := []byte(fmt.Sprintf(uiTemplate, title+" · Swagger", yamlPath))

	mux.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
	mux.Get(yamlPath, func(w http.ResponseWriter, r *http.Request) {
		if len(spec) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec)
	})
	mux.Get(jsonPath, func(w http.ResponseWriter, r *http.Request) {
		if asJSON == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(asJSON)
	})
}

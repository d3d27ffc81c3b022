package api

import (
	"encoding/json"
	"html/template"
	"io/fs"

	"github.com/vytor/wordcards/internal/models"
)

func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	funcs := template.FuncMap{
		// deref renders an optional number, or "" when absent.
		"deref": func(p any) any {
			switch v := p.(type) {
			case *int:
				if v != nil {
					return *v
				}
			case *int64:
				if v != nil {
					return *v
				}
			}
			return ""
		},
		// isCourse reports whether an optional course equals c.
		"isCourse": func(p *int, c int) bool {
			return p != nil && *p == c
		},
		"isID": func(p *int64, id int64) bool {
			return p != nil && *p == id
		},
		"tabClass": func(active, tab models.Tab) string {
			if active == tab {
				return "tab active"
			}
			return "tab"
		},
		// json marshals a value to JSON string
		"json": func(v any) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		"templates/layouts/*.html",
		"templates/pages/*.html",
		"templates/partials/*.html",
	}
	for _, p := range patterns {
		if matches, _ := fs.Glob(fsys, p); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseFS(fsys, p); err != nil {
			return nil, err
		}
	}

	return t, nil
}

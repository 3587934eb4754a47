// Package views renders the HTML pages with gomponents.
package views

import (
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const appTitle = "Logos Scatter Plot"

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 0; display: flex; min-height: 100vh; color: #222; }
aside { width: 280px; padding: 1.25rem; background: #f3f4f6; box-sizing: border-box; }
aside img.brand { max-width: 100%; margin-bottom: 1rem; }
aside label { display: block; margin: .75rem 0 .25rem; font-weight: 600; }
aside select { width: 100%; }
main { flex: 1; padding: 1.5rem; overflow-x: auto; }
table { border-collapse: collapse; font-size: .85rem; margin: 1rem 0; }
th, td { border: 1px solid #ddd; padding: .25rem .5rem; text-align: left; }
.error { color: #b00020; }
.login { margin: 4rem auto; max-width: 320px; }
.login input { display: block; width: 100%; margin-bottom: .75rem; }
img.chart { max-width: 100%; border: 1px solid #eee; }
`

// Render writes node as an HTML response.
func Render(w http.ResponseWriter, status int, node Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func page(title string, body ...Node) Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(title)),
				StyleEl(Raw(stylesheet)),
			),
			Body(body...),
		),
	)
}

func errorLine(msg string) Node {
	return If(msg != "", P(Class("error"), Text(msg)))
}

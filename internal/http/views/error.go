package views

import (
	"net/http"
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ErrorPage is the generic failure page. The message is safe for display.
func ErrorPage(status int, message, requestID string) Node {
	return page(strconv.Itoa(status)+" "+http.StatusText(status),
		Main(
			H1(Text(http.StatusText(status))),
			P(Class("error"), Text(message)),
			If(requestID != "", P(Small(Text("Request ID: "+requestID)))),
			P(A(Href("/"), Text("Back"))),
		),
	)
}

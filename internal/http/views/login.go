package views

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// LoginPage is the access gate form. errMsg is shown above the form when set.
func LoginPage(errMsg string) Node {
	return page("Sign in | "+appTitle,
		Main(
			Class("login"),
			H1(Text(appTitle)),
			errorLine(errMsg),
			Form(
				Method("post"),
				Action("/login"),
				Label(For("username"), Text("Username")),
				Input(Type("text"), ID("username"), Name("username"), AutoComplete("username"), Required()),
				Label(For("password"), Text("Password")),
				Input(Type("password"), ID("password"), Name("password"), AutoComplete("current-password"), Required()),
				Button(Type("submit"), Text("Sign in")),
			),
		),
	)
}

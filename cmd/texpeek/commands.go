package main

import (
	"texpeek/cmd/texpeek/colorconfig"
	"texpeek/cmd/texpeek/history"
	"texpeek/cmd/texpeek/info"
	"texpeek/cmd/texpeek/render"
	"texpeek/cmd/texpeek/serve"
	"texpeek/cmd/texpeek/sheet"
	"texpeek/pkg/registry"
)

var Registry registry.CommandRegistry

func init() {
	Registry.FromGetter(info.GetCommand)
	Registry.FromGetter(render.GetCommand)
	Registry.FromGetter(colorconfig.GetCommand)
	Registry.FromGetter(serve.GetCommand)
	Registry.FromGetter(sheet.GetCommand)
	Registry.FromGetter(history.GetCommand)
}

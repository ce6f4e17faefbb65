package main

import (
	"go.uber.org/fx"

	"github.com/ibrohimkomilov001-web/kinobot/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}

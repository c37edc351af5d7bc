package main

import (
	appfx "github.com/Toston-App/lake-sub000/internal/fx"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		appfx.WorkerAppModule,
	).Run()
}

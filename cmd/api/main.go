package main

import (
	appfx "github.com/Toston-App/lake-sub000/internal/fx"

	"go.uber.org/fx"
)

// @title Lake Ledger API
// @version 1.0
// @BasePath /api
func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}

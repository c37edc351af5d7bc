package main

import "github.com/Toston-App/lake-sub000/cmd/ledgerctl/cmd"

func main() {
	cmd.Execute()
}

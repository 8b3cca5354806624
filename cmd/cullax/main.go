// CullaX - derive a desktop colour scheme from a wallpaper
//
// CullaX extracts a base colour from an image and renders a derived role
// palette into Plasma colour files, an Aurorae decoration and JSON.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/cullax/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

// Swatch - a perceptual colour palette generator
//
// Swatch builds a semantic design palette from a primary and an accent
// colour, or from an image, and writes it as CSS, SCSS, Tailwind or
// design-token files.
package main

import (
	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	cli.Execute()
}

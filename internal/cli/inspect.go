package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dinktools/chess/pkg/imgio"
	"github.com/dinktools/chess/pkg/shadow"
)

// inspectCommand creates the inspect command for examining image files.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print image dimensions and alpha statistics",
		Long: `Inspect an image file without converting it.

Prints the image dimensions, a breakdown of pixels by alpha class and the
number of pixels the converter would classify as checkerboard shadow.
Useful for checking whether a sprite still carries dithered shadows or has
already been converted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}
}

func (c *CLI) runInspect(input string) error {
	b, err := imgio.DecodeFile(input)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", input, err)
	}

	var opaque, transparent, translucent, shadows int
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			switch a := b.AlphaAt(x, y); {
			case a == 255:
				opaque++
			case a == 0:
				transparent++
			default:
				translucent++
			}
			if shadow.IsShadowPixel(b, x, y) {
				shadows++
			}
		}
	}

	printKeyValue("File", input)
	printKeyValue("Size", fmt.Sprintf("%dx%d", b.Width, b.Height))
	printKeyValue("Pixels", fmt.Sprintf("%d", b.Width*b.Height))
	printKeyValue("Opaque", fmt.Sprintf("%d", opaque))
	printKeyValue("Transparent", fmt.Sprintf("%d", transparent))
	printKeyValue("Translucent", fmt.Sprintf("%d", translucent))
	printKeyValue("Shadow", fmt.Sprintf("%d", shadows))
	return nil
}

// rasterdump - offline inspector for command buffers and texture banks
//
// A standalone tool in its own package main, independent of the root
// module's package (following the teacher repo's convention of shipping
// accessory tools this way rather than importing the engine package).

package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func main() {
	root := &cobra.Command{
		Use:   "rasterdump",
		Short: "Inspect rasterizer command buffers and texture dumps offline",
	}
	root.AddCommand(newCommandsCmd())
	root.AddCommand(newTexturesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommandsCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "Print every 32-bit word of a binary command buffer with its low 6 bits (payload words are not skipped)",
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			words := make([]uint32, len(buf)/4)
			for i := range words {
				words[i] = binary.LittleEndian.Uint32(buf[i*4:])
			}
			for i, w := range words {
				fmt.Printf("%04d: %#010x (opcode %#02x)\n", i, w, w&0x3F)
			}
			return nil
		},
	}
	flags := pflag.NewFlagSet("commands", pflag.ExitOnError)
	flags.StringVar(&path, "file", "", "command buffer path")
	cmd.Flags().AddFlagSet(flags)
	return cmd
}

// newTexturesCmd exports each of a texture dump's 4 banks to its own PNG,
// one goroutine per bank via errgroup.
func newTexturesCmd() *cobra.Command {
	var path, outDir string
	cmd := &cobra.Command{
		Use:   "textures",
		Short: "Export the 4 texture banks in a raw dump to PNG files",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if len(raw) < 4*8192*8 {
				return fmt.Errorf("textures: dump too short for 4 banks")
			}

			var g errgroup.Group
			for bank := 0; bank < 4; bank++ {
				bank := bank
				g.Go(func() error {
					return exportBankPNG(raw, bank, fmt.Sprintf("%s/bank%d.png", outDir, bank))
				})
			}
			return g.Wait()
		},
	}
	flags := pflag.NewFlagSet("textures", pflag.ExitOnError)
	flags.StringVar(&path, "file", "", "raw texture dump path")
	flags.StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().AddFlagSet(flags)
	return cmd
}

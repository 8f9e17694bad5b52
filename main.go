// main.go - Command-line entry point for the rasterizer simulator

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var width, height int
	var cmdFile string
	var outPNG string

	root := &cobra.Command{
		Use:   "zgpu",
		Short: "Software model of a fixed-function triangle rasterizer core",
	}

	render := &cobra.Command{
		Use:   "render",
		Short: "Run a command buffer to completion and dump the resulting framebuffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdFile == "" {
				return fmt.Errorf("render: --cmd is required")
			}
			buf, err := os.ReadFile(cmdFile)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			mem := NewSoftwareMemory(64 * 1024 * 1024)
			engine := NewEngine(width, height, mem, mem)
			if err := engine.SetBuffers(0, uint32(width*height*3+4096)); err != nil {
				return err
			}
			if err := engine.SubmitCommandBuffer(buf); err != nil {
				return fmt.Errorf("render: %w", err)
			}

			if outPNG != "" {
				return writeFrameBufferPNG(engine.FB, outPNG)
			}
			fmt.Printf("rendered %dx%d, idle=%v\n", width, height, engine.Idle())
			return nil
		},
	}
	render.Flags().IntVar(&width, "width", 256, "framebuffer width")
	render.Flags().IntVar(&height, "height", 256, "framebuffer height")
	render.Flags().StringVar(&cmdFile, "cmd", "", "path to a binary command buffer")
	render.Flags().StringVar(&outPNG, "out", "", "optional PNG output path")

	root.AddCommand(render)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

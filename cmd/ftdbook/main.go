package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/ftdbook/internal/book"
	"github.com/dgallion1/ftdbook/internal/config"
	"github.com/dgallion1/ftdbook/internal/preprocess"
	"github.com/dgallion1/ftdbook/internal/render"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	root := &cobra.Command{
		Use:           "ftdbook",
		Short:         "Compile a Markdown book into an FTD docsite",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCmd(log))

	if err := root.Execute(); err != nil {
		log.Error("build failed", "error", err)
		os.Exit(1)
	}
}

func newBuildCmd(log *slog.Logger) *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "build [book-root]",
		Short: "Build the book from its Markdown sources",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			bookRoot := "."
			if len(args) == 1 {
				bookRoot = args[0]
			}
			return build(log, bookRoot, destDir)
		},
	}

	cmd.Flags().StringVar(&destDir, "dest-dir", "", "output directory (overrides build.build-dir)")
	return cmd
}

func build(log *slog.Logger, bookRoot, destDir string) error {
	cfg, err := config.Load(bookRoot)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	srcDir := filepath.Join(bookRoot, cfg.Book.Src)
	b, err := book.Load(srcDir, cfg.Build.CreateMissing)
	if err != nil {
		return fmt.Errorf("loading book from %s: %w", srcDir, err)
	}

	pctx := &preprocess.Context{Root: bookRoot, SrcDir: srcDir, Log: log}
	for _, p := range preprocess.Default() {
		log.Debug("running preprocessor", "name", p.Name())
		if err := p.Run(pctx, b); err != nil {
			return fmt.Errorf("preprocessor %s failed: %w", p.Name(), err)
		}
	}

	if destDir == "" {
		destDir = filepath.Join(bookRoot, cfg.Build.BuildDir)
	}

	renderer := render.NewFTD(log)
	log.Info("running backend", "renderer", renderer.Name(), "dest", destDir)

	ctx := &render.Context{
		Root:        bookRoot,
		Book:        b,
		Config:      cfg,
		Destination: destDir,
	}
	if err := renderer.Render(ctx); err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	log.Info("build complete", "dest", destDir)
	return nil
}

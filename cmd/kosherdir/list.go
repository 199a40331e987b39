package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/KosherDir/internal/config"
	"github.com/JonMunkholm/KosherDir/internal/core"
	"github.com/JonMunkholm/KosherDir/internal/palette"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex("gray-500")))
	countStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Hex("blue-600")))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex("red-600")))
)

func listCmd(cfg *config.Config) *cobra.Command {
	var origin string
	var f core.Filters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the businesses of a directory file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if origin == "" {
				origin = cfg.Source.DefaultOrigin
			}
			v, err := loadView(cmd.Context(), cfg, origin, f)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render(core.FormatUserError(err)))
				return err
			}
			renderList(cmd.OutOrStdout(), v)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&origin, "origin", "", "file name, path or http(s) URL (default SOURCE_DEFAULT_ORIGIN)")
	flags.StringVar(&f.City, "city", "", "exact city")
	flags.StringVar(&f.Type, "type", "", "exact business type")
	flags.StringVar(&f.Activity, "activity", "", "substring of the activity text")
	flags.StringVar(&f.Search, "search", "", "case-insensitive substring of name or address")
	flags.StringVar(&f.Provider, "provider", "", "exact kashrut provider")
	flags.StringVar(&f.Region, "region", "", "region inferred from the city")
	flags.StringVar(&f.Category, "category", "", "kosher category text in the activity")
	return cmd
}

// loadView loads origin into a fresh directory and applies f.
func loadView(ctx context.Context, cfg *config.Config, origin string, f core.Filters) (core.View, error) {
	src, _ := newSource(cfg)
	dir := core.NewDirectory(src, core.DirectoryConfig{MaxFileSize: cfg.Source.MaxFileSize})
	if err := dir.Load(ctx, origin); err != nil {
		return core.View{}, err
	}
	return dir.SnapshotWith(f), nil
}

// renderList prints one block per business followed by the result count.
func renderList(w io.Writer, v core.View) {
	for _, b := range v.Filtered {
		category := core.DeriveKosherCategory(b.Activity)
		badge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(palette.Hex(category.BadgeColor())))

		fmt.Fprintf(w, "%s  %s\n", nameStyle.Render(b.Name), badge.Render(string(category)))
		if b.Address != "" || b.City != "" {
			fmt.Fprintf(w, "  %s\n", mutedStyle.Render(strings.TrimSpace(b.Address+" "+b.City)))
		}

		meta := make([]string, 0, 3)
		for _, part := range []string{b.Provider, b.Type, string(core.InferRegion(b.City))} {
			if part != "" {
				meta = append(meta, part)
			}
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(meta, " · "))

		tags := core.ActivityTags(b.Activity)
		if len(tags) > 0 {
			rendered := make([]string, len(tags))
			for i, t := range tags {
				rendered[i] = lipgloss.NewStyle().
					Foreground(lipgloss.Color(palette.Hex(core.ActivityColor(t)))).
					Render(t)
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(rendered, ", "))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "נמצאו %s עסקים מתוך %d סה\"כ\n", countStyle.Render(fmt.Sprint(len(v.Filtered))), v.Total())
}

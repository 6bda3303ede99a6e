package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/pokedex/internal/controller"
	"github.com/meur/pokedex/internal/i18n"
	"github.com/meur/pokedex/internal/termcard"
)

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Print a Pokémon card in the terminal",
		Example: `  pokedex show 25
  pokedex show pikachu --lang sv
  pokedex show 7 --json`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
	cmd.Flags().String("lang", "", "language for species text (en, sv)")
	cmd.Flags().Bool("json", false, "print the detail view as JSON")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	lang, _ := cmd.Flags().GetString("lang")
	loc := a.bundle.Localizer(a.bundle.Match(lang, ""))

	// Names go through search first so the detail page always loads by id
	id := args[0]
	if _, err := strconv.Atoi(id); err != nil {
		res, err := controller.NewSearchResolve(a.deps()).Run(ctx, id)
		if err != nil {
			return showError(loc, err)
		}
		id = strconv.Itoa(res.ID)
	}

	dv, err := controller.NewDetailPage(a.deps(), loc.Lang()).Load(ctx, id)
	if err != nil {
		return showError(loc, err)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dv)
	}
	fmt.Fprintln(out, termcard.RenderDetail(dv.Card, dv.Detail))
	return nil
}

func showError(loc *i18n.Localizer, err error) error {
	if f, ok := controller.AsFailure(err); ok {
		logger.Debug("Lookup failed",
			zap.String("kind", f.Kind.String()),
			zap.Error(f.Err))
		return errors.New(loc.T(f.Key))
	}
	return err
}

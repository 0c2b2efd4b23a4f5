package main

import (
	"strings"

	"github.com/spf13/cobra"

	"marketlens/internal/gateway/app"
	"marketlens/internal/types"
)

func (c *cli) listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage named keyword lists",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "Show every keyword list",
			Args:  cobra.NoArgs,
			RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
				return printJSON(cmd, a.Collections.KeywordLists(cmd.Context()))
			}),
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create an empty list",
			Args:  cobra.MinimumNArgs(1),
			RunE: c.run(func(cmd *cobra.Command, args []string, a *app.App) error {
				l, err := a.Collections.CreateList(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printJSON(cmd, l)
			}),
		},
		&cobra.Command{
			Use:   "add <list id> <keyword>",
			Short: "Append a keyword to a list",
			Args:  cobra.MinimumNArgs(2),
			RunE: c.run(func(cmd *cobra.Command, args []string, a *app.App) error {
				l, err := a.Collections.AddKeyword(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				return printJSON(cmd, l)
			}),
		},
		&cobra.Command{
			Use:   "rm <list id> <keyword>",
			Short: "Remove every occurrence of a keyword from a list",
			Args:  cobra.MinimumNArgs(2),
			RunE: c.run(func(cmd *cobra.Command, args []string, a *app.App) error {
				l, err := a.Collections.RemoveKeyword(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				return printJSON(cmd, l)
			}),
		},
		&cobra.Command{
			Use:   "delete <list id>",
			Short: "Delete a list",
			Args:  cobra.ExactArgs(1),
			RunE: c.run(func(cmd *cobra.Command, args []string, a *app.App) error {
				return a.Collections.DeleteList(cmd.Context(), args[0])
			}),
		},
	)
	return cmd
}

func (c *cli) favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Inspect saved favorites",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "ls [keywords|shops|products]",
		Short: "Show favorites, all kinds when none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string, a *app.App) error {
			kinds := []types.FavoriteKind{types.FavoriteKeywords, types.FavoriteShops, types.FavoriteProducts}
			if len(args) == 1 {
				k, err := types.ParseFavoriteKind(args[0])
				if err != nil {
					return err
				}
				kinds = []types.FavoriteKind{k}
			}
			out := make(map[types.FavoriteKind]any, len(kinds))
			for _, k := range kinds {
				favs, err := a.Collections.ListFavorites(cmd.Context(), k)
				if err != nil {
					return err
				}
				out[k] = favs
			}
			return printJSON(cmd, out)
		}),
	})
	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"cairolint/internal/diag"
	"cairolint/internal/diagfmt"
	"cairolint/internal/lexer"
	"cairolint/internal/parser"
	"cairolint/internal/source"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] <file.cairo>",
	Short: "Print the syntax tree of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := readDumpFormat(cmd)
		if err != nil {
			return err
		}
		fs, file, err := loadOne(args[0])
		if err != nil {
			return err
		}
		bag := diag.NewBag(0)
		res := parser.Parse(file, diag.BagReporter{Bag: bag})
		if bag.Len() > 0 {
			bag.Sort()
			diagfmt.Short(cmd.ErrOrStderr(), bag.Items(), fs, diagfmt.PathModeAuto)
		}
		if format == "json" {
			return diagfmt.FormatTreeJSON(cmd.OutOrStdout(), res.Tree)
		}
		return diagfmt.FormatTreePretty(cmd.OutOrStdout(), res.Tree, fs)
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] <file.cairo>",
	Short: "Print the token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := readDumpFormat(cmd)
		if err != nil {
			return err
		}
		fs, file, err := loadOne(args[0])
		if err != nil {
			return err
		}
		tokens := lexer.New(file, lexer.Options{}).All()
		if format == "json" {
			return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens, fs)
		}
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens, fs)
	},
}

func init() {
	treeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func readDumpFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return "", fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	return format, nil
}

func loadOne(path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	id, err := fs.LoadFrom(afero.NewOsFs(), path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fs, fs.Get(id), nil
}

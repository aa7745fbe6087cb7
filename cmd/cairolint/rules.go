package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"cairolint/internal/lint"
	"cairolint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [flags] [name]",
	Short: "List lint rules or describe one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().Bool("json", false, "print rules as JSON")
}

type ruleJSON struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Default  bool   `json:"enabled_by_default"`
	Enabled  bool   `json:"enabled"`
	Fixable  bool   `json:"fixable"`
	Message  string `json:"message"`
	Doc      string `json:"doc,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	reg := rules.Registry()
	cfg, err := loadConfig(cmd, ".", reg)
	if err != nil {
		return err
	}

	list := reg.Rules()
	if len(args) == 1 {
		r, ok := reg.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown rule %q (see `cairolint rules`)", args[0])
		}
		list = []lint.Rule{r}
	}
	infos := make([]ruleJSON, 0, len(list))
	for _, r := range list {
		infos = append(infos, ruleJSON{
			Code:     r.Code.ID(),
			Name:     r.Name,
			Severity: r.Severity.Label(),
			Default:  r.EnabledByDefault,
			Enabled:  cfg.Enabled(r.Name, r.EnabledByDefault),
			Fixable:  r.HasFixer(),
			Message:  r.Message,
			Doc:      r.Doc,
		})
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}
	if len(args) == 1 {
		describeRule(out, infos[0])
		return nil
	}
	renderRulesTable(out, infos)
	return nil
}

// rulesCellStyle: строка 0 у lipgloss/table это заголовок, данные с 1.
func rulesCellStyle(row, _ int) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	if row == 0 {
		return style.Bold(true)
	}
	return style
}

func renderRulesTable(w io.Writer, infos []ruleJSON) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CODE", "NAME", "LEVEL", "ON", "FIX").
		StyleFunc(rulesCellStyle)
	for _, r := range infos {
		t.Row(r.Code, r.Name, r.Severity, yesNo(r.Enabled), yesNo(r.Fixable))
	}
	fmt.Fprintln(w, t.Render())
}

func describeRule(w io.Writer, r ruleJSON) {
	fmt.Fprintf(w, "%s %s (%s)\n", r.Code, r.Name, r.Severity)
	fmt.Fprintf(w, "  message: %s\n", r.Message)
	fmt.Fprintf(w, "  enabled: %s (default %s)\n", yesNo(r.Enabled), yesNo(r.Default))
	fmt.Fprintf(w, "  fixable: %s\n", yesNo(r.Fixable))
	if r.Doc != "" {
		fmt.Fprintf(w, "\n%s\n", r.Doc)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sevigo/snapreview/internal/client"
	"github.com/sevigo/snapreview/internal/core"
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

var (
	reviewLanguage string
	copyFix        bool
	renderMarkdown bool
	hideFix        bool
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

var reviewCmd = &cobra.Command{
	Use:   "review [file|-]",
	Short: "Get an AI review for a code snippet",
	Long: `Get an AI review for a code snippet.

The code is read from the given file, or from stdin when the argument is "-"
or missing. The language is taken from --language, then from the file
extension, then from the catalog default.

Examples:
  snapreview review main.go
  cat snippet.py | snapreview review --language python
  snapreview review --copy --markdown app.ts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&reviewLanguage, "language", "l", "", "language of the snippet (see 'snapreview languages')")
	reviewCmd.Flags().BoolVarP(&copyFix, "copy", "c", false, "copy the suggested fix to the clipboard")
	reviewCmd.Flags().BoolVarP(&renderMarkdown, "markdown", "m", false, "render the review as markdown")
	reviewCmd.Flags().BoolVar(&hideFix, "no-fix", false, "do not print the suggested fix separately")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	code, err := readSource(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	catalog, err := core.DefaultCatalog()
	if err != nil {
		return err
	}
	language, err := resolveLanguage(reviewLanguage, path, catalog)
	if err != nil {
		return err
	}

	c, cfg, err := newClient()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	titleColor.Fprintf(out, "Reviewing %s code", language.Name)
	dimColor.Fprintf(out, " (%s)\n\n", cfg.Client.BackendURL)

	var state client.ViewState
	review, err := c.Review(cmd.Context(), code, language.ID)
	if err != nil {
		state.Fail(err)
		errorColor.Fprintln(cmd.ErrOrStderr(), state.Review)
		return fmt.Errorf("review failed: %w", err)
	}
	state.Complete(review)

	if err := printReview(out, &state, renderMarkdown); err != nil {
		return err
	}

	if state.HasFix && !hideFix {
		fmt.Fprintln(out)
		boldColor.Fprintln(out, "Suggested fix:")
		fmt.Fprintln(out, client.Highlight(state.Fix, language.ID, cfg.Client.HighlightStyle, catalog))
	}

	if copyFix {
		if !state.HasFix {
			dimColor.Fprintln(out, "No fix to copy.")
			return nil
		}
		if err := copyToClipboard(state.Fix.Code); err != nil {
			return fmt.Errorf("failed to copy fix: %w", err)
		}
		successColor.Fprintln(out, client.MsgCopied)
	}
	return nil
}

// readSource reads code from path, or from stdin when path is "-".
func readSource(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read code: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New(core.MsgEmptyCode)
	}
	return string(data), nil
}

// resolveLanguage picks the review language from the flag, the file
// extension or the catalog default, in that order.
func resolveLanguage(flag, path string, catalog *core.Catalog) (core.Language, error) {
	if flag != "" {
		lang, ok := catalog.Lookup(flag)
		if !ok {
			return core.Language{}, fmt.Errorf("unknown language %q, see 'snapreview languages'", flag)
		}
		return lang, nil
	}
	if path != "-" {
		if lang, ok := catalog.ForFile(path); ok {
			return lang, nil
		}
	}
	return catalog.Default(), nil
}

func printReview(w io.Writer, state *client.ViewState, markdown bool) error {
	if !markdown {
		fmt.Fprintln(w, state.Review)
		return nil
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := r.Render(state.Review)
	if err != nil {
		return fmt.Errorf("failed to render review: %w", err)
	}
	fmt.Fprint(w, rendered)
	return nil
}


// Command domtree parses an HTML file, optionally cleans it up with a TOML policy, and
// prints the rebuilt document.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dpotapov/go-domx"
	"github.com/dpotapov/go-domx/cleanup"
	"github.com/dpotapov/go-domx/dom"
)

var (
	policyPath string
	asXHTML    bool
	asOutline  bool
	htmlTags   bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "domtree <htmlfile>",
	Short: "Parse an HTML file and print the rebuilt document",
	Long: `Parses an HTML file into a DOM tree and prints it back with every element
closed. A cleanup policy can drop, unwrap or prune elements on the way.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runDomtree,
}

func init() {
	rootCmd.Flags().StringVarP(&policyPath, "policy", "p", "", "TOML cleanup policy to apply")
	rootCmd.Flags().BoolVar(&asXHTML, "xhtml", false, "write well-formed XHTML")
	rootCmd.Flags().BoolVar(&asOutline, "tree", false, "print the tree outline instead of HTML")
	rootCmd.Flags().BoolVar(&htmlTags, "html", false, "close li, p, td and similar elements the way HTML does")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log recovery decisions to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDomtree(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	c := &domx.Cleaner{}
	if policyPath != "" {
		var err error
		if c, err = newPolicyCleaner(policyPath); err != nil {
			return err
		}
	}
	c.Logger = logger
	if htmlTags && c.Options.ImpliedEndTags == nil {
		c.Options.ImpliedEndTags = dom.HTMLImpliedEndTags
	}

	input, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	doc := c.Document(input)

	out := cmd.OutOrStdout()
	switch {
	case asOutline:
		_, err = io.WriteString(out, doc.String())
	case asXHTML:
		err = dom.WriteXHTML(out, doc.Root())
	default:
		err = doc.Render(out)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}

func newPolicyCleaner(path string) (*domx.Cleaner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := cleanup.LoadPolicy(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return domx.NewCleanerFromPolicy(p)
}

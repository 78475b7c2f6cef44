package commands

import (
	"fmt"
	"net/url"
	"os"

	"ojtools/lib/judge/all"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Identify which judge a URL belongs to and print its canonical form.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rawurl := args[0]
		registry := all.Default()

		t := newTable()
		t.AppendHeader(table.Row{"kind", "canonical url", "service"})

		found := false
		if p := registry.Problem(rawurl); p != nil {
			t.AppendRow(table.Row{"problem", p.Url(), p.Service().Name()})
			found = true
		}
		if c := registry.Contest(rawurl); c != nil {
			t.AppendRow(table.Row{"contest", c.Url(), c.Service().Name()})
			found = true
		}
		if s := registry.Submission(rawurl); s != nil {
			t.AppendRow(table.Row{"submission", s.Url(), s.Service().Name()})
			found = true
		}
		if !found {
			if s := registry.Service(rawurl); s != nil {
				t.AppendRow(table.Row{"service", s.Url(), s.Name()})
				found = true
			}
		}

		if !found {
			fmt.Fprintf(os.Stderr, "no judge recognizes this url: %s\n", rawurl)
			if suggestion := suggestHost(rawurl); suggestion != "" {
				fmt.Fprintf(os.Stderr, "did you mean a url on %q?\n", suggestion)
			}
			os.Exit(1)
		}
		t.Render()
	},
}

// suggestHost finds the known judge hostname closest to the given
// URL's host, to catch typos like "atcodr.jp".
func suggestHost(rawurl string) string {
	parsed, err := url.Parse(rawurl)
	if err != nil || parsed.Host == "" {
		return ""
	}

	best := ""
	bestSimilarity := 0.0
	for _, host := range all.KnownHosts() {
		similarity := matchr.JaroWinkler(parsed.Host, host, false)
		if similarity > bestSimilarity {
			best = host
			bestSimilarity = similarity
		}
	}
	if bestSimilarity < 0.8 {
		return ""
	}
	return best
}

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ojtools/lib/configutil"
	"ojtools/lib/fetch"
	"ojtools/lib/judge"
	"ojtools/lib/judge/all"
	"ojtools/lib/restyutil"
	"ojtools/lib/samplestore"
	"ojtools/lib/serviceutil"

	"github.com/dgraph-io/badger/v4"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Config struct {
	// directory for the badger page cache; empty disables caching
	CacheDir string `json:"cache_dir"`
	// sqlite file downloaded samples are recorded in; empty disables
	StorePath string `json:"store_path"`
}

var (
	downloadOut       *string
	downloadNoCache   *bool
	downloadDebugHttp *bool
)

func init() {
	downloadOut = downloadCmd.Flags().String("out", "", "Directory to write sample files into.")
	downloadNoCache = downloadCmd.Flags().Bool("no-cache", false, "Fetch the statement page fresh, bypassing the page cache.")
	downloadDebugHttp = downloadCmd.Flags().Bool("debug-http", false, "Dump every HTTP exchange to .dev/resty/<run id>.")
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download <url>",
	Short: "Download the sample test cases of a problem.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadRecursively[Config]("oj.json5")
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			serviceutil.Fatal("failed to read config", err)
		}

		ctx := serviceutil.SignalContext()

		problem := all.Default().Problem(args[0])
		if problem == nil {
			fmt.Fprintf(os.Stderr, "no judge recognizes this problem url: %s\n", args[0])
			os.Exit(1)
		}

		var cache *badger.DB
		if cfg.CacheDir != "" && !*downloadNoCache {
			cache, err = badger.Open(badger.DefaultOptions(cfg.CacheDir))
			if err != nil {
				serviceutil.Fatal("failed to open page cache", err)
			}
			defer cache.Close()
		}

		session, err := fetch.NewSession(fetch.SessionOptions{Cache: cache})
		if err != nil {
			serviceutil.Fatal("failed to create session", err)
		}
		if *downloadDebugHttp {
			out, err := restyutil.NewRunOutput(filepath.Join(".dev", "resty"))
			if err != nil {
				serviceutil.Fatal("failed to create http dump directory", err)
			}
			session.SetInstrumentOutput(out)
		}

		cases, err := problem.DownloadSampleCases(ctx, session)
		if err != nil {
			serviceutil.Fatal("failed to download sample cases", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"name", "input", "output"})
		for _, c := range cases {
			t.AppendRow(table.Row{c.Name, string(c.Input), string(c.Output)})
		}
		t.Render()

		if *downloadOut != "" {
			err = writeSampleFiles(*downloadOut, cases)
			if err != nil {
				serviceutil.Fatal("failed to write sample files", err)
			}
		}
		if cfg.StorePath != "" {
			store, err := samplestore.Open(cfg.StorePath)
			if err != nil {
				serviceutil.Fatal("failed to open sample store", err)
			}
			defer store.Close()
			err = store.Put(ctx, problem.Url(), cases)
			if err != nil {
				serviceutil.Fatal("failed to record samples", err)
			}
		}
	},
}

func writeSampleFiles(dir string, cases []judge.TestCase) error {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return err
	}
	for _, c := range cases {
		name := sanitizeFilename(c.Name)
		err = os.WriteFile(filepath.Join(dir, name+".in"), c.Input, 0644)
		if err != nil {
			return err
		}
		err = os.WriteFile(filepath.Join(dir, name+".out"), c.Output, 0644)
		if err != nil {
			return err
		}
	}
	return nil
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	dash := true
	for _, c := range strings.ToLower(name) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
			dash = false
			continue
		}
		if !dash {
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

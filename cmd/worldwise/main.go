// Command worldwise profiles LLM responses along cultural dimensions, scores
// alignment against reference profiles, ranks baseline bias, and measures
// prompting-induced value shift.
package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	worldwise "github.com/kabiwabi/worldWiseAI"
	"github.com/kabiwabi/worldWiseAI/core"
	"github.com/kabiwabi/worldWiseAI/embedding"
	"github.com/kabiwabi/worldWiseAI/profiler"
	"github.com/kabiwabi/worldWiseAI/registry"
	"github.com/kabiwabi/worldWiseAI/results"
	"github.com/kabiwabi/worldWiseAI/shift"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "worldwise"})

func main() {
	_ = godotenv.Load()
	if err := rootCmd().Execute(); err != nil {
		logger.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "worldwise",
		Short:         "Semantic cultural profiling for LLM responses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(profileCmd(), alignCmd(), biasCmd(), shiftCmd(), serveCmd(), catalogCmd())
	return root
}

// newEmbedder picks the embedding backend from the environment:
// WORLDWISE_EMBEDDER=ollama uses a local Ollama server, anything else uses
// the OpenAI API with OPENAI_API_KEY.
func newEmbedder() (embedding.Embedder, error) {
	switch strings.ToLower(os.Getenv("WORLDWISE_EMBEDDER")) {
	case "ollama":
		return embedding.NewOllamaEmbedder(os.Getenv("OLLAMA_BASE_URL"), os.Getenv("OLLAMA_EMBED_MODEL")), nil
	default:
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set (or set WORLDWISE_EMBEDDER=ollama)")
		}
		return embedding.NewOpenAIEmbedder(key), nil
	}
}

func newEngine() (*worldwise.Engine, error) {
	embedder, err := newEmbedder()
	if err != nil {
		return nil, err
	}
	return worldwise.New(embedder)
}

func readRecords(path string) ([]core.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var recs []core.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return recs, nil
}

func parseDims(args []string) ([]core.Dimension, error) {
	if len(args) == 0 {
		return core.Dimensions(), nil
	}
	dims := make([]core.Dimension, 0, len(args))
	for _, a := range args {
		d, err := core.ParseDimension(a)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func profileCmd() *cobra.Command {
	var input string
	var concurrency int
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Infer dimension profiles for recorded responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			embedder, err := newEmbedder()
			if err != nil {
				return err
			}
			engine, err := worldwise.New(embedder, worldwise.WithConcurrency(concurrency))
			if err != nil {
				return err
			}
			recs, err := readRecords(input)
			if err != nil {
				return err
			}
			logger.Info("profiling", "records", len(recs))
			out, err := engine.ProfileAll(cmd.Context(), recs)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file with an array of records")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel embedding calls (0 = default)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func alignCmd() *cobra.Command {
	var input, reference string
	cmd := &cobra.Command{
		Use:   "align [dimension...]",
		Short: "Score aggregated profile alignment against a catalog reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			dims, err := parseDims(args)
			if err != nil {
				return err
			}
			recs, err := readRecords(input)
			if err != nil {
				return err
			}
			projected, err := engine.ProfileAll(cmd.Context(), recs)
			if err != nil {
				return err
			}
			profile, err := profiler.AggregateResults(projected)
			if err != nil {
				return err
			}
			res, err := engine.Align(profile, reference, dims)
			if err != nil {
				return err
			}
			logger.Info("aligned", "reference", reference, "score", fmt.Sprintf("%.2f", res.Score))
			return printJSON(res)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file with an array of records")
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "catalog reference name")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("reference")
	return cmd
}

func biasCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "bias [dimension...]",
		Short: "Rank catalog references by distance to the unprompted profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			dims, err := parseDims(args)
			if err != nil {
				return err
			}
			recs, err := readRecords(input)
			if err != nil {
				return err
			}
			projected, err := engine.ProfileAll(cmd.Context(), recs)
			if err != nil {
				return err
			}
			profile, err := profiler.AggregateResults(projected)
			if err != nil {
				return err
			}
			ranking, err := engine.Bias(profile, dims)
			if err != nil {
				return err
			}
			logger.Info("closest reference", "name", ranking.Closest().Name)
			return printJSON(ranking)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file with an array of baseline records")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func shiftCmd() *cobra.Command {
	var baseline, prompted string
	var top int
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Measure value citation shift between baseline and prompted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := readRecords(baseline)
			if err != nil {
				return err
			}
			prom, err := readRecords(prompted)
			if err != nil {
				return err
			}
			res, err := shift.Compare(base, prom)
			if err != nil {
				return err
			}
			logger.Info("shift", "magnitude", fmt.Sprintf("%.1f", res.Magnitude))
			if top > 0 {
				res.Shifts = res.Top(top)
			}
			return printJSON(res)
		},
	}
	cmd.Flags().StringVarP(&baseline, "baseline", "b", "", "JSON file with baseline records")
	cmd.Flags().StringVarP(&prompted, "prompted", "p", "", "JSON file with prompted records")
	cmd.Flags().IntVar(&top, "top", 0, "only print the n largest shifts")
	_ = cmd.MarkFlagRequired("baseline")
	_ = cmd.MarkFlagRequired("prompted")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the evaluation results HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newResultsStore()
			if err != nil {
				return err
			}
			logger.Info("serving results API", "addr", addr)
			return results.NewServer(store, addr).ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// newResultsStore picks the results backend from the environment:
// DATABASE_URL uses PostgreSQL, otherwise in-memory.
func newResultsStore() (results.Store, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		return results.NewPostgresStore(db, "")
	}
	logger.Warn("DATABASE_URL not set, using in-memory results store")
	return results.NewMemoryStore(0), nil
}

func catalogCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage cultural catalogs (file registry)",
	}
	cmd.PersistentFlags().StringVar(&dir, "registry", ".worldwise", "registry directory")

	newReg := func() (*registry.FileRegistry, error) {
		return registry.NewFileRegistry(dir)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newReg()
			if err != nil {
				return err
			}
			catalogs, err := reg.List(cmd.Context(), registry.Filter{Limit: 500})
			if err != nil {
				return err
			}
			for _, c := range catalogs {
				fmt.Printf("%s\t%s\t%s\n", c.ID, c.Version, c.Name)
			}
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <id> [version]",
		Short: "Print a catalog (active version when omitted)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newReg()
			if err != nil {
				return err
			}
			var c *core.Catalog
			if len(args) == 2 {
				c, err = reg.Get(cmd.Context(), args[0], args[1])
			} else {
				c, err = reg.GetActive(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(c)
		},
	}

	store := &cobra.Command{
		Use:   "store [file]",
		Short: "Store a catalog from a JSON file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newReg()
			if err != nil {
				return err
			}
			var c core.Catalog
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				err = json.Unmarshal(data, &c)
				if err != nil {
					return err
				}
			} else if err := json.NewDecoder(os.Stdin).Decode(&c); err != nil {
				return err
			}
			if err := reg.Store(cmd.Context(), &c); err != nil {
				return err
			}
			logger.Info("stored", "id", c.ID, "version", c.Version)
			return nil
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Store and activate the built-in Hofstede catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newReg()
			if err != nil {
				return err
			}
			c := core.DefaultCatalog()
			if err := reg.Store(cmd.Context(), c); err != nil {
				return err
			}
			if err := reg.Activate(cmd.Context(), c.ID, c.Version); err != nil {
				return err
			}
			logger.Info("seeded", "id", c.ID, "version", c.Version)
			return nil
		},
	}

	activate := &cobra.Command{
		Use:   "activate <id> <version>",
		Short: "Mark a catalog version as active",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newReg()
			if err != nil {
				return err
			}
			return reg.Activate(cmd.Context(), args[0], args[1])
		},
	}

	versions := &cobra.Command{
		Use:   "versions <id>",
		Short: "List versions for a catalog id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newReg()
			if err != nil {
				return err
			}
			infos, err := reg.ListVersions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, vi := range infos {
				marker := ""
				if vi.Active {
					marker = "\tactive"
				}
				fmt.Printf("%s\t%s%s\n", vi.ID, vi.Version, marker)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id> <version>",
		Short: "Delete a catalog version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newReg()
			if err != nil {
				return err
			}
			return reg.Delete(cmd.Context(), args[0], args[1])
		},
	}

	cmd.AddCommand(list, get, store, seed, activate, versions, del)
	return cmd
}

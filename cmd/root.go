package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/papapumpkin/dexline/internal/catalog"
	"github.com/papapumpkin/dexline/internal/config"
	"github.com/papapumpkin/dexline/internal/evolution"
	"github.com/papapumpkin/dexline/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "dexline",
	Short: "Evolution line resolver for a species catalog",
	Long: "Dexline loads a species catalog and resolves forward and backward " +
		"evolution lines, display names and export names for its entries.",
	SilenceUsage: true,
}

// logger is built in PersistentPreRunE and synced after every command.
var logger = zap.NewNop()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .dexline.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("catalog", "", "catalog TOML file (default data/catalog.toml)")
	rootCmd.PersistentFlags().Bool("from-store", false, "read the catalog from the SQLite snapshot instead of TOML")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("catalog_path", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		l, err := logging.New(cfg.LogLevel, cfg.Verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	}
	rootCmd.PersistentPostRun = func(*cobra.Command, []string) {
		_ = logger.Sync()
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".dexline")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("DEXLINE")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// loadCatalog reads the catalog named by the config, or the SQLite snapshot
// when --from-store is set.
func loadCatalog(cmd *cobra.Command, cfg config.Config) (*catalog.Catalog, error) {
	fromStore, _ := cmd.Flags().GetBool("from-store")
	if !fromStore {
		c, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("catalog loaded", zap.String("path", cfg.CatalogPath), zap.Int("species", c.Len()))
		return c, nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := catalog.OpenStore(ctx, cfg.StorePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	c, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded from store", zap.String("path", cfg.StorePath), zap.Int("species", c.Len()))
	return c, nil
}

// rulesFromConfig converts configured tables into resolver rules.
func rulesFromConfig(rc config.RulesConfig) evolution.Rules {
	rules := evolution.Rules{
		ExtraFormMarkers:  rc.ExtraFormMarkers,
		BaselineForms:     rc.BaselineForms,
		IgnoreFormSpecies: rc.IgnoreFormSpecies,
		DualStyle:         make(map[string]evolution.DualStyle, len(rc.DualStyle)),
		MaxDepth:          rc.MaxDepth,
	}
	for _, ds := range rc.DualStyle {
		rules.DualStyle[ds.Species] = evolution.DualStyle{Base: ds.Base, Boost: ds.Boost}
	}
	return rules
}

// findSpecies resolves a species by catalog number or name and, when form is
// non-empty, one of its forms.
func findSpecies(c *catalog.Catalog, arg, form string) (*catalog.Species, *catalog.Form, error) {
	var (
		s  *catalog.Species
		ok bool
	)
	if n, err := strconv.Atoi(arg); err == nil {
		s, ok = c.Species(n)
	} else {
		s, ok = c.ByName(arg)
	}
	if !ok {
		return nil, nil, fmt.Errorf("no species %q in catalog", arg)
	}
	if form == "" {
		return s, nil, nil
	}
	f := s.Form(form)
	if f == nil {
		names := make([]string, len(s.Forms))
		for i, sf := range s.Forms {
			names[i] = sf.Name
		}
		return nil, nil, fmt.Errorf("%s has no form %q (forms: %v)", s.Name, form, names)
	}
	return s, f, nil
}

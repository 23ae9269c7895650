package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/somnath11som/webeF/internal/catalog"
	"github.com/somnath11som/webeF/internal/domain"
	"github.com/spf13/cobra"
)

var (
	catalogCategory string
	catalogJSON     bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the packages, add-ons and services on sale",
	Long: `Open the catalog database, apply pending migrations and print what the
storefront sells.

Examples:
  storefront catalog
  storefront catalog --category design
  storefront catalog --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		repo, err := catalog.NewRepository(cfg.CatalogDBPath)
		if err != nil {
			return err
		}
		defer repo.Close()
		if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
			return err
		}

		ctx := cmd.Context()
		packages, err := repo.ListPackages(ctx)
		if err != nil {
			return err
		}
		addOns, err := repo.ListAddOns(ctx)
		if err != nil {
			return err
		}
		services, err := repo.ListServices(ctx, catalogCategory)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if catalogJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"packages": packages,
				"addons":   addOns,
				"services": services,
			})
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PACKAGE\tMONTHLY\tANNUAL\tSAVE")
		for _, p := range packages {
			_, pct := catalog.Savings(p.Monthly, p.Annual)
			fmt.Fprintf(w, "%s\t$%.0f\t$%.0f\t%d%%\n", p.ID, p.Monthly, p.Annual, pct)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "ADD-ON\tMONTHLY\tANNUAL\t")
		for _, a := range addOns {
			fmt.Fprintf(w, "%s\t$%.0f\t$%.0f\t\n", a.ID, a.Monthly, a.Annual)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "SERVICE\tCATEGORY\tBASIC\tBUSINESS\tCORPORATE")
		for _, s := range services {
			fmt.Fprintf(w, "%s\t%s\t$%.0f\t$%.0f\t$%.0f\n", s.ID, s.Category,
				s.Pricing[domain.TierBasic], s.Pricing[domain.TierBusiness], s.Pricing[domain.TierCorporate])
		}
		return w.Flush()
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", catalog.CategoryAll, "only list services of this category")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(catalogCmd)
}

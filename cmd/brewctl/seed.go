package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/brewlogic/BrewLogic/app/repository"
	"github.com/brewlogic/BrewLogic/internal/pkg/brewing"
	"github.com/brewlogic/BrewLogic/internal/pkg/database"
	"github.com/brewlogic/BrewLogic/internal/pkg/seed"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if p := cmd.Root().PersistentPreRun; p != nil {
				p(cmd, args)
			}
			database.SetupDatabase()
		},
	}

	hardware := func() error {
		repos := repository.NewRepositories(database.GetDB())
		g, d, err := seed.Hardware(brewing.DefaultCatalog(), repos.Grinder, repos.Dripper)
		if err != nil {
			return err
		}
		log.Printf("Seeded %d grinders and %d drippers", g, d)
		return nil
	}
	vouchers := func() error {
		n, err := seed.Vouchers(repository.NewRepositories(database.GetDB()).Voucher)
		if err != nil {
			return err
		}
		log.Printf("Seeded %d vouchers", n)
		return nil
	}
	products := func() error {
		n, err := seed.Products(repository.NewRepositories(database.GetDB()).Product)
		if err != nil {
			return err
		}
		log.Printf("Seeded %d products", n)
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "hardware",
			Short: "Replace grinder and dripper listings with the built-in catalog",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return hardware() },
		},
		&cobra.Command{
			Use:   "vouchers",
			Short: "Create the default vouchers",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return vouchers() },
		},
		&cobra.Command{
			Use:   "products",
			Short: "Upsert the default membership packages",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return products() },
		},
		&cobra.Command{
			Use:   "all",
			Short: "Run every seeder",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				for _, step := range []func() error{hardware, vouchers, products} {
					if err := step(); err != nil {
						return err
					}
				}
				return nil
			},
		},
	)
	return cmd
}

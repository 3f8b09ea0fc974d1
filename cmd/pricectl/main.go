// pricectl prices a single product from the command line: normalize an
// identity, read competitor observations from a JSON file, and print the
// full pricing evidence. Useful for tuning profiles and for support
// investigations without a running server.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/crosslist/pricer/internal/comps"
	"github.com/crosslist/pricer/internal/identity"
	"github.com/crosslist/pricer/internal/pricing"
	"github.com/crosslist/pricer/internal/profiles"
)

func main() {
	app := &cli.App{
		Name:  "pricectl",
		Usage: "one-shot resale pricing decisions",
		Commands: []*cli.Command{
			identityCommand(),
			priceCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func identityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "brand", Usage: "raw brand string"},
		&cli.StringFlag{Name: "title", Usage: "raw product title", Required: true},
		&cli.StringFlag{Name: "upc", Usage: "UPC passthrough identifier"},
		&cli.StringFlag{Name: "mpn", Usage: "MPN passthrough identifier"},
		&cli.StringFlag{Name: "condition", Usage: "freeform condition text"},
		&cli.IntFlag{Name: "pack", Usage: "override pack count"},
		&cli.StringFlag{Name: "variant", Usage: "variant passthrough"},
	}
}

func identityFromFlags(c *cli.Context) identity.Canonical {
	return identity.Normalize(c.String("brand"), c.String("title"), identity.Options{
		UPC:       c.String("upc"),
		MPN:       c.String("mpn"),
		Condition: c.String("condition"),
		PackCount: c.Int("pack"),
		Variant:   c.String("variant"),
	})
}

func identityCommand() *cli.Command {
	return &cli.Command{
		Name:  "identity",
		Usage: "normalize a brand and title into a canonical identity",
		Flags: identityFlags(),
		Action: func(c *cli.Context) error {
			return printJSON(identityFromFlags(c))
		},
	}
}

func priceCommand() *cli.Command {
	flags := append(identityFlags(),
		&cli.StringFlag{Name: "observations", Usage: "JSON file of competitor observations"},
		&cli.StringFlag{Name: "profiles", Value: "./profiles.yaml", Usage: "strategy profiles file"},
		&cli.StringFlag{Name: "profile", Usage: "profile name (default profile when empty)"},
		&cli.Int64Flag{Name: "sold-median", Usage: "sold comparable median in cents"},
		&cli.IntFlag{Name: "sold-count", Usage: "sold comparable sample count"},
		&cli.Int64Flag{Name: "amazon", Usage: "Amazon retail reference in cents"},
		&cli.Int64Flag{Name: "walmart", Usage: "Walmart retail reference in cents"},
		&cli.Int64Flag{Name: "cost", Usage: "cost of goods in cents, enables the profit audit"},
	)

	return &cli.Command{
		Name:  "price",
		Usage: "run the full pricing pipeline for one product",
		Flags: flags,
		Action: func(c *cli.Context) error {
			profileSet, err := profiles.Load(c.String("profiles"))
			if err != nil {
				return err
			}
			profile, err := profileSet.Get(c.String("profile"))
			if err != nil {
				return err
			}

			var observations []comps.Observation
			if path := c.String("observations"); path != "" {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read observations file: %w", err)
				}
				if err := json.Unmarshal(raw, &observations); err != nil {
					return fmt.Errorf("parse observations file: %w", err)
				}
			}

			id := identityFromFlags(c)
			ev, err := pricing.Decide(pricing.DecisionInputs{
				IdentityHash:     id.Hash,
				Stats:            comps.Aggregate(observations),
				SoldMedianCents:  optionalInt64(c, "sold-median"),
				SoldCount:        c.Int("sold-count"),
				AmazonCents:      optionalInt64(c, "amazon"),
				WalmartCents:     optionalInt64(c, "walmart"),
				CostOfGoodsCents: optionalInt64(c, "cost"),
				Settings:         profile.Settings,
				Floor:            profile.Floor,
			})
			if err != nil {
				return err
			}

			return printJSON(struct {
				Identity identity.Canonical `json:"identity"`
				Evidence pricing.Evidence   `json:"evidence"`
			}{id, ev})
		},
	}
}

// optionalInt64 distinguishes "flag not passed" from an explicit zero: absent
// signals stay nil so the core treats them as missing data, not free goods.
func optionalInt64(c *cli.Context, name string) *int64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int64(name)
	return &v
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

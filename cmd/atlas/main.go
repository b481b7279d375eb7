package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/joefazee/atlas/app/countries"
	"github.com/joefazee/atlas/app/explorer"
	"github.com/joefazee/atlas/app/restcountries"
	"github.com/joefazee/atlas/internal/formatter"
	"github.com/joefazee/atlas/internal/validator"
	"github.com/joefazee/atlas/models"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitDataError    = 3
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "atlas",
		Usage:     "Browse the countries of the world from the terminal",
		Version:   "1.0.0",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Value:   restcountries.DefaultBaseURL,
				Usage:   "REST Countries API base URL",
				EnvVars: []string{"RESTCOUNTRIES_BASE_URL"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   restcountries.DefaultTimeout,
				Usage:   "HTTP timeout for upstream calls",
				EnvVars: []string{"RESTCOUNTRIES_TIMEOUT"},
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print JSON instead of a table",
			},
		},
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List countries, optionally filtered",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "term", Aliases: []string{"t"}, Usage: "Match the common or official name"},
					&cli.StringFlag{Name: "region", Aliases: []string{"r"}, Usage: "Only this region (\"all\" for every region)"},
					&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "Only countries speaking this language"},
				},
				Action: listCountries,
			},
			{
				Name:      "show",
				Usage:     "Show the details of one country",
				ArgsUsage: "<code>",
				Action:    showCountry,
			},
			{
				Name:      "search",
				Usage:     "Search countries by name",
				ArgsUsage: "<name>",
				Action:    searchCountries,
			},
			{
				Name:   "facets",
				Usage:  "List the available regions and languages",
				Action: listFacets,
			},
			{
				Name:      "region",
				Usage:     "List the countries of a region",
				ArgsUsage: "<region>",
				Action:    regionCountries,
			},
		},
	}
}

func exitCode(err error) int {
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if errors.Is(err, models.ErrRecordNotFound) {
		return ExitDataError
	}
	return ExitGeneralError
}

func newService(c *cli.Context) (countries.Service, error) {
	cfg := restcountries.DefaultConfig()
	cfg.BaseURL = c.String("base-url")
	cfg.Timeout = c.Duration("timeout")
	if err := cfg.Validate(); err != nil {
		return nil, cli.Exit(err.Error(), ExitUsageError)
	}
	client, err := restcountries.NewClient(cfg, nil, nil)
	if err != nil {
		return nil, cli.Exit(err.Error(), ExitUsageError)
	}
	return countries.NewService(client, nil), nil
}

func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printCountries(c *cli.Context, list []models.Country) error {
	summaries := explorer.NewCountrySummaries(list)
	if c.Bool("json") {
		return outputJSON(c.App.Writer, summaries)
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tREGION\tCAPITAL\tPOPULATION")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Code, s.Name, s.Region, s.Capital, formatter.Population(s.Population))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d countries\n", len(summaries))
	return nil
}

func listCountries(c *cli.Context) error {
	service, err := newService(c)
	if err != nil {
		return err
	}
	list, err := service.List(c.Context, explorer.Filter{
		Term:     c.String("term"),
		Region:   c.String("region"),
		Language: c.String("language"),
	})
	if err != nil {
		return fmt.Errorf("list countries: %w", err)
	}
	return printCountries(c, list)
}

func showCountry(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Usage: atlas show <code>", ExitUsageError)
	}
	code := strings.TrimSpace(c.Args().First())
	if !validator.IsCountryCode(code) {
		return cli.Exit(fmt.Sprintf("%q is not a 2 or 3 letter country code", code), ExitUsageError)
	}

	service, err := newService(c)
	if err != nil {
		return err
	}
	detail, err := service.Detail(c.Context, code)
	if errors.Is(err, models.ErrRecordNotFound) {
		return cli.Exit(fmt.Sprintf("no country with code %s", strings.ToUpper(code)), ExitDataError)
	}
	if err != nil {
		return fmt.Errorf("show country: %w", err)
	}

	if c.Bool("json") {
		return outputJSON(c.App.Writer, detail)
	}
	return printDetail(c.App.Writer, detail)
}

func printDetail(w io.Writer, d *countries.CountryDetail) error {
	borders := make([]string, 0, len(d.Borders))
	for _, b := range d.Borders {
		borders = append(borders, b.Name)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Name", strings.TrimSpace(d.Flag + " " + d.Name)},
		{"Official name", d.OfficialName},
		{"Code", d.Code},
		{"Region", joinNonEmpty(" / ", d.Region, d.Subregion)},
		{"Capital", strings.Join(d.Capitals, ", ")},
		{"Population", d.PopulationLabel},
		{"Area", d.AreaLabel},
		{"Density", d.Density + " per km²"},
		{"Calling code", d.CallingCode},
		{"Languages", strings.Join(d.Languages, ", ")},
		{"Currencies", strings.Join(d.Currencies, ", ")},
		{"Borders", strings.Join(borders, ", ")},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func searchCountries(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: atlas search <name>", ExitUsageError)
	}
	service, err := newService(c)
	if err != nil {
		return err
	}
	list, err := service.Search(c.Context, strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return fmt.Errorf("search countries: %w", err)
	}
	return printCountries(c, list)
}

func regionCountries(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Usage: atlas region <region>", ExitUsageError)
	}
	service, err := newService(c)
	if err != nil {
		return err
	}
	list, err := service.ByRegion(c.Context, c.Args().First())
	if err != nil {
		return fmt.Errorf("list region: %w", err)
	}
	return printCountries(c, list)
}

func listFacets(c *cli.Context) error {
	service, err := newService(c)
	if err != nil {
		return err
	}
	facets, err := service.Facets(c.Context)
	if err != nil {
		return fmt.Errorf("list facets: %w", err)
	}

	if c.Bool("json") {
		return outputJSON(c.App.Writer, facets)
	}
	fmt.Fprintf(c.App.Writer, "Regions (%d):\n", len(facets.Regions))
	for _, r := range facets.Regions {
		fmt.Fprintf(c.App.Writer, "  %s\n", r)
	}
	fmt.Fprintf(c.App.Writer, "Languages (%d):\n", len(facets.Languages))
	for _, l := range facets.Languages {
		fmt.Fprintf(c.App.Writer, "  %s\n", l)
	}
	return nil
}

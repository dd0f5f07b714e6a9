package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/eggmonitor/internal/analytics"
	"github.com/mamadbah2/eggmonitor/internal/config"
	"github.com/mamadbah2/eggmonitor/internal/domain/models"
	"github.com/mamadbah2/eggmonitor/internal/ingest"
	"github.com/mamadbah2/eggmonitor/internal/service/reporting"
	"github.com/mamadbah2/eggmonitor/pkg/logger"
)

type criteriaFlags struct {
	from, to                                   string
	farm, shed, age, breed, client, metaqualix string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Start date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&f.to, "to", "", "End date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&f.farm, "farm", "", "Farm (Granja)")
	cmd.Flags().StringVar(&f.shed, "shed", "", "Shed (Caseta)")
	cmd.Flags().StringVar(&f.age, "age", "", "Flock age (Edad)")
	cmd.Flags().StringVar(&f.breed, "breed", "", "Breed (Estirpe)")
	cmd.Flags().StringVar(&f.client, "client", "", "Client (Cliente)")
	cmd.Flags().StringVar(&f.metaqualix, "metaqualix", "", "Metaqualix id")
}

func (f *criteriaFlags) criteria() (models.FilterCriteria, error) {
	c := models.FilterCriteria{Match: map[models.Attribute]string{
		models.AttrFarm:       f.farm,
		models.AttrShed:       f.shed,
		models.AttrAge:        f.age,
		models.AttrBreed:      f.breed,
		models.AttrClient:     f.client,
		models.AttrMetaqualix: f.metaqualix,
	}}
	var err error
	if f.from != "" {
		if c.Start, err = time.Parse(models.DateLayout, f.from); err != nil {
			return c, fmt.Errorf("invalid --from: %w", err)
		}
	}
	if f.to != "" {
		if c.End, err = time.Parse(models.DateLayout, f.to); err != nil {
			return c, fmt.Errorf("invalid --to: %w", err)
		}
	}
	return c, nil
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "eggctl",
		Short: "Egg quality analytics over CSV or XLSX exports",
		Long: `eggctl loads an exported quality sheet (.csv, .tsv, .txt or .xlsx),
filters it and prints statistics or writes the PDF quality report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log ingestion details to stderr")

	newLogger := func() *zap.Logger {
		if !verbose {
			return zap.NewNop()
		}
		l, err := logger.New("debug")
		if err != nil {
			return zap.NewNop()
		}
		return l
	}

	root.AddCommand(newSummaryCmd(newLogger), newHistogramCmd(), newReportCmd(newLogger))
	return root
}

func loadFile(path string, log *zap.Logger) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	result, err := ingest.ParseUpload(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, skipped := range result.Skipped {
		log.Debug("row skipped", zap.Int("row", skipped.Row), zap.String("reason", skipped.Reason))
	}
	log.Info("file loaded", zap.String("path", path), zap.Int("records", len(result.Records)), zap.Int("skipped", len(result.Skipped)))
	return result.Records, nil
}

func newSummaryCmd(newLogger func() *zap.Logger) *cobra.Command {
	var flags criteriaFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "summary FILE",
		Short: "Print per-metric statistics and monthly averages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := flags.criteria()
			if err != nil {
				return err
			}
			records, err := loadFile(args[0], newLogger())
			if err != nil {
				return err
			}
			filtered := analytics.Filter(records, criteria)
			stats := analytics.AllStats(filtered, models.Metrics)
			monthly := analytics.MonthlyAverages(filtered, models.Metrics)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"recordCount": len(filtered), "stats": stats, "monthly": monthly})
			}

			fmt.Fprintf(out, "Registros: %d\n\n", len(filtered))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Métrica\tPromedio\tDesv. Est.\tMínimo\tMáximo")
			for _, metric := range models.Metrics {
				s := stats[metric]
				info := metric.Info()
				fmt.Fprintf(tw, "%s (%s)\t%.2f\t%.2f\t%.2f\t%.2f\n", info.Name, info.Unit, s.Mean, s.Std, s.Min, s.Max)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(monthly) > 0 {
				fmt.Fprintln(out)
				tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprint(tw, "Mes")
				for _, metric := range models.Metrics {
					fmt.Fprintf(tw, "\t%s", metric.Info().Name)
				}
				fmt.Fprintln(tw)
				for _, m := range monthly {
					fmt.Fprint(tw, m.Label)
					for _, metric := range models.Metrics {
						fmt.Fprintf(tw, "\t%.2f", m.Values[metric])
					}
					fmt.Fprintln(tw)
				}
				return tw.Flush()
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newHistogramCmd() *cobra.Command {
	var flags criteriaFlags
	var bins int
	cmd := &cobra.Command{
		Use:   "histogram FILE METRIC",
		Short: "Print the distribution of one metric",
		Long:  "METRIC is one of weight, breakingStrength, shellThickness, yolkColor, haughUnits.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, ok := models.ParseMetric(args[1])
			if !ok {
				return fmt.Errorf("unknown metric %q", args[1])
			}
			criteria, err := flags.criteria()
			if err != nil {
				return err
			}
			records, err := loadFile(args[0], zap.NewNop())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Rango\tPiezas")
			for _, b := range analytics.Histogram(analytics.Filter(records, criteria), metric, bins) {
				fmt.Fprintf(tw, "%s\t%d\n", b.RangeLabel, b.Count)
			}
			return tw.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&bins, "bins", analytics.DefaultBins, "Number of equal-width bins")
	return cmd
}

func newReportCmd(newLogger func() *zap.Logger) *cobra.Command {
	var flags criteriaFlags
	var out, standardsFile string
	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Write the PDF quality report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := flags.criteria()
			if err != nil {
				return err
			}
			standards, err := config.LoadQualityStandards(standardsFile)
			if err != nil {
				return err
			}
			log := newLogger()
			records, err := loadFile(args[0], log)
			if err != nil {
				return err
			}

			svc := reporting.NewService(standards, log.Named("svc.reporting"))
			report := svc.Build(analytics.Filter(records, criteria), criteria)
			if out == "" {
				out = reporting.FileName(report.GeneratedAt)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := svc.WritePDF(f, report); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d muestras)\n", out, report.RecordCount)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default Reporte_Calidad_Huevo_YYYY-MM-DD.pdf)")
	cmd.Flags().StringVar(&standardsFile, "standards", "", "YAML file overriding quality standards")
	return cmd
}

package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/luca-drf/ensembl-metadata/internal/ioanalysis"
	"github.com/luca-drf/ensembl-metadata/internal/iodb"
	"github.com/luca-drf/ensembl-metadata/internal/ioprocess"
	"github.com/luca-drf/ensembl-metadata/internal/iostore"
	"github.com/luca-drf/ensembl-metadata/pkg/config"
	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/spf13/cobra"
)

var (
	flagRelease   string
	flagEGRelease string
	flagDatabases []string
	flagSequences bool
	flagJobs      int
)

func getProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Scan genome databases and store unified metadata",
		Long: `Scan the genome databases of an Ensembl data release and store
one unified metadata record per species in the warehouse.

This command:
  1. Connects to the metadata warehouse and the genome-database server
  2. Discovers candidate databases (or uses the --databases list)
  3. Classifies databases by species and kind
  4. Builds one record per species, core databases first
  5. Resolves comparative analyses across species
  6. Persists all records under the given data release

Examples:
  ensmeta process --release 99
  ensmeta process --release 99 --eg-release 46
  ensmeta process --release 99 --databases homo_sapiens_core_99_38
  ensmeta process --release 99 --sequences`,
		RunE: runProcess,
	}

	cmd.Flags().StringVarP(&flagRelease, "release", "r", "",
		"Ensembl release version of the scanned databases (required)")
	cmd.Flags().StringVar(&flagEGRelease, "eg-release", "",
		"Ensembl Genomes release layered over the baseline release")
	cmd.Flags().StringSliceVarP(&flagDatabases, "databases", "d", nil,
		"restrict processing to the named databases")
	cmd.Flags().BoolVar(&flagSequences, "sequences", false,
		"retrieve the assembly sequence inventory for each genome")
	cmd.Flags().IntVarP(&flagJobs, "jobs", "j", 0,
		"number of concurrent connection workers")
	_ = cmd.MarkFlagRequired("release")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	opts := []config.Option{
		config.OptProcessReleaseVersion(flagRelease),
		config.OptProcessEGReleaseVersion(flagEGRelease),
		config.OptProcessDatabases(flagDatabases),
		config.OptProcessRetrieveSequences(flagSequences),
	}
	if flagJobs > 0 {
		opts = append(opts, config.OptJobsNumber(flagJobs))
	}
	cfg.Update(opts)

	// Warehouse connection
	var op db.Operator = iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Warehouse); err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer op.Close()

	store := iostore.New(cfg, op)
	release, err := store.EnsureRelease(ctx)
	if err != nil {
		return err
	}

	label := release.Version
	if release.EGVersion != "" {
		label += "/" + release.EGVersion
	}
	gn.Info("Processing Ensembl release <em>%s</em>", label)

	// Genome-database server connection
	connector := iodb.NewConnector(cfg)
	defer connector.Close()

	names := cfg.Process.Databases
	if len(names) == 0 {
		names, err = connector.Discover(ctx)
		if err != nil {
			return err
		}
	}
	if len(names) == 0 {
		gn.Warn("No candidate databases found on <em>%s</em>",
			cfg.Server.Host)
		return nil
	}

	handles, err := connector.Handles(ctx, names)
	if err != nil {
		return err
	}
	fmt.Printf("Opened %d database handles from %d databases\n",
		len(handles), len(names))

	analyzer := ioanalysis.New(cfg)
	processor := ioprocess.New(cfg, store, analyzer)

	genomes, err := processor.ProcessDatabases(ctx, handles)
	if err != nil {
		return err
	}

	if err = store.SaveGenomes(ctx, genomes); err != nil {
		return err
	}

	var basePairs int64
	for _, g := range genomes {
		basePairs += g.BasePairs
	}
	successMsg := gnlib.FormatMessage(fmt.Sprintf(`
<em>✓ Stored %d genome records under release %s.</em>
Total assembly size: %s base pairs.
`,
		len(genomes),
		label,
		humanize.Comma(basePairs),
	), nil)
	fmt.Println(successMsg)

	return nil
}

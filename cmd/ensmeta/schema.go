package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/luca-drf/ensembl-metadata/internal/iodb"
	"github.com/luca-drf/ensembl-metadata/internal/ioschema"
	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/ensmeta"
	"github.com/spf13/cobra"
)

var (
	forceCreate bool
)

func getSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the warehouse schema",
	}

	cmd.AddCommand(getSchemaCreateCmd())
	cmd.AddCommand(getSchemaMigrateCmd())
	return cmd
}

func getSchemaCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the warehouse schema",
		Long: `Create the metadata warehouse schema from scratch.

This command:
  1. Connects to the warehouse using configuration settings
  2. Checks for existing tables and prompts for confirmation if found
  3. Creates all tables using GORM AutoMigrate

Use --force to skip confirmation and drop existing tables automatically.

Examples:
  ensmeta schema create
  ensmeta schema create --force
  ensmeta schema create --config custom.yaml`,
		RunE: runSchemaCreate,
	}

	cmd.Flags().BoolVar(&forceCreate, "force", false,
		"drop existing tables before creating schema (destructive)")

	return cmd
}

func getSchemaMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the warehouse schema",
		Long: `Update an existing metadata warehouse schema to the latest
version using GORM AutoMigrate. Existing data is preserved.`,
		RunE: runSchemaMigrate,
	}
}

func runSchemaCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var op db.Operator = iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Warehouse); err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer op.Close()

	fmt.Printf("Connected to warehouse: %s@%s:%d/%s\n",
		cfg.Warehouse.User, cfg.Warehouse.Host,
		cfg.Warehouse.Port, cfg.Warehouse.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing tables: %w", err)
	}

	if hasTables {
		if !forceCreate {
			fmt.Println("\nWarning: the warehouse contains existing tables.")
			fmt.Println("Creating the schema will drop ALL existing tables and data.")
			fmt.Print("\nDo you want to continue? (yes/no): ")

			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read user input: %w", err)
			}

			response = strings.TrimSpace(strings.ToLower(response))
			if response != "yes" && response != "y" {
				fmt.Println("Aborted. No changes made to the warehouse.")
				return nil
			}
		}

		fmt.Println("Dropping all existing tables...")
		if err := op.DropAllTables(ctx); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}

	var sm ensmeta.SchemaManager = ioschema.NewManager(op)

	fmt.Println("Creating schema using GORM AutoMigrate...")
	if err := sm.Create(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	fmt.Println("\nWarehouse schema creation complete.")
	fmt.Println("\nNext steps:")
	fmt.Println("  - Run 'ensmeta process --release <version>' to scan genome databases")

	return nil
}

func runSchemaMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var op db.Operator = iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Warehouse); err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer op.Close()

	var sm ensmeta.SchemaManager = ioschema.NewManager(op)

	fmt.Println("Migrating schema using GORM AutoMigrate...")
	if err := sm.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	fmt.Println("Warehouse schema migration complete.")
	return nil
}

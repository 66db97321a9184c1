package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/flexgraphdb/flexql"
	"github.com/flexgraphdb/flexql/ir"
)

func compileCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "compile <fixture.json>",
		Short: "Compile a fixture ir.Node tree and print the compound query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cq, err := compileFixture(cmd.Context(), fs, schemaPath, args[0])
			if err != nil {
				return err
			}
			return printCompound(cq)
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "schema.json", "path to the fixture schema file")
	return cmd
}

func compileFixture(ctx context.Context, fsys afero.Fs, schemaPath, fixturePath string) (flexql.CompoundQuery, error) {
	schema, err := loadSchema(fsys, schemaPath)
	if err != nil {
		return flexql.CompoundQuery{}, err
	}
	data, err := afero.ReadFile(fsys, fixturePath)
	if err != nil {
		return flexql.CompoundQuery{}, fmt.Errorf("read fixture: %w", err)
	}
	root, err := ir.DecodeNode(data)
	if err != nil {
		return flexql.CompoundQuery{}, fmt.Errorf("decode fixture: %w", err)
	}

	compiler, err := flexql.NewCompiler(schema, flexql.Config{}, flexql.WithLogger(log.Desugar()))
	if err != nil {
		return flexql.CompoundQuery{}, fmt.Errorf("new compiler: %w", err)
	}
	return compiler.Compile(ctx, root)
}

func printCompound(cq flexql.CompoundQuery) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cq)
}

package main

import (
	"fmt"
	"os"

	"github.com/elcoosp/linkgen/linkgen"
	"github.com/spf13/cobra"
)

func main() {
	var (
		outputFile    string
		tsClient      bool
		tsOutput      string
		openapiOutput string
	)

	rootCmd := &cobra.Command{
		Use:   "linkgen [path]",
		Short: "linkgen generates a typed route registry and client from controller files.",
		Long: `linkgen scans a project's controller source files for route declarations
and generates a strongly-typed Rust route enum plus, optionally, a typed
TypeScript client with data-fetching hooks. Both outputs are derived from the
same route model, so paths, methods and parameters always match across the
stack. Options are read from a .linkgen.yaml file at the project root; flags
override the file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath := args[0]

			cfg, err := linkgen.LoadConfig(projectPath)
			if err != nil {
				return fmt.Errorf("loading %s: %w", projectPath, err)
			}
			if cmd.Flags().Changed("output") {
				cfg.OutputFile = outputFile
			}
			if cmd.Flags().Changed("ts") {
				cfg.TypeScript.GenerateClient = tsClient
			}
			if cmd.Flags().Changed("ts-output") {
				cfg.TypeScript.OutputPath = tsOutput
				cfg.TypeScript.GenerateClient = true
			}
			if cmd.Flags().Changed("openapi-output") {
				cfg.OpenAPIOutput = openapiOutput
			}

			result, err := linkgen.Generate(projectPath, cfg)
			if result != nil {
				for _, d := range result.Diagnostics {
					fmt.Println(d)
				}
			}
			if err != nil {
				return err
			}

			fmt.Printf("Generated %d routes across %d files\n", len(result.Routes), len(result.WrittenFiles))
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "links.rs", "Output file for the generated route enum")
	rootCmd.Flags().BoolVar(&tsClient, "ts", false, "Generate the TypeScript client")
	rootCmd.Flags().StringVar(&tsOutput, "ts-output", "client.ts", "Output file for the TypeScript client (implies --ts)")
	rootCmd.Flags().StringVar(&openapiOutput, "openapi-output", "", "Optional output file for an OpenAPI description of the routes")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

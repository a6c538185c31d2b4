package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shandysiswandi/mailadapter/internal/app"
	"github.com/spf13/cobra"
)

var (
	configPath string
	inputFile  string
)

var rootCmd = &cobra.Command{
	Use:           "mailadapter",
	Short:         "Adapts email-send requests to the configured provider format",
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and enabled consumers",
	RunE:  runServe,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured provider has a registered transform",
	RunE:  runCheck,
}

var adaptCmd = &cobra.Command{
	Use:   "adapt",
	Short: "Adapt one JSON request from --file or stdin and print the payload",
	RunE:  runAdapt,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $CONFIG_PATH or ./config/config.yaml)")
	adaptCmd.Flags().StringVarP(&inputFile, "file", "f", "", "request JSON file, stdin when empty")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(adaptCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(*cobra.Command, []string) error {
	application := app.New(configPath) // Initialize the application
	wait := application.Start()        // Start the application and wait for the termination signal
	<-wait                             // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully

	return nil
}

func runCheck(cmd *cobra.Command, _ []string) error {
	return app.Check(configPath, cmd.OutOrStdout())
}

func runAdapt(cmd *cobra.Command, _ []string) error {
	var in io.Reader = cmd.InOrStdin()
	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	return app.Adapt(cmd.Context(), configPath, in, cmd.OutOrStdout())
}

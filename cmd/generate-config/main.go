// Command generate-config writes the default configuration as YAML.
package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/debemdeboas/the-gallery/internal/config"
)

const header = "# BabaGallery configuration example\n" +
	"# Copy this file to config.yaml and customize as needed.\n" +
	"# S3 credentials are read from S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY.\n\n"

func main() {
	outputFile := "config.example.yaml"
	if len(os.Args) > 1 {
		outputFile = os.Args[1]
	}

	if outputFile == "-" {
		if err := write(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating YAML: %v\n", err)
			os.Exit(1)
		}
		return
	}

	f, err := os.Create(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, config.ErrWriteConfigContentFmt+"\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated example config: %s\n", outputFile)
}

func write(w io.Writer) error {
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(config.Default()); err != nil {
		return err
	}
	return enc.Close()
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edge-node/edge-launcher/internal/app"
	"github.com/edge-node/edge-launcher/internal/errors"
	"github.com/edge-node/edge-launcher/internal/indexapi"
	"github.com/edge-node/edge-launcher/internal/keypath"
	"github.com/edge-node/edge-launcher/internal/logging"
)

var (
	lookupFile   string
	lookupKind   string
	lookupID     string
	lookupCached bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <path>",
	Short: "Resolve a colon-delimited key path in a JSON document",
	Long: `Resolve a colon-delimited key path such as "node:stake" in a JSON document
and print the string found there.

The document is read from a file (--file, "-" for stdin) or fetched from
the XE index API (--kind session|stake|snapshots|transactions --id <id>).
With --cached the last document fetched for --kind is used instead.
Objects stored as JSON strings along the path are unwrapped.`,
	Example: `  edge-launcher lookup node:stake --kind session --id xe_...
  edge-launcher lookup wallet --file stake.json
  edge-launcher lookup wallet --kind stake --cached`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupFile, "file", "f", "", "Read the document from a file (- for stdin)")
	lookupCmd.Flags().StringVar(&lookupKind, "kind", "", "Index API document kind")
	lookupCmd.Flags().StringVar(&lookupID, "id", "", "Index API document id (address or stake)")
	lookupCmd.Flags().BoolVar(&lookupCached, "cached", false, "Use the last fetched document of --kind")
	lookupCmd.MarkFlagsMutuallyExclusive("file", "kind")
	lookupCmd.MarkFlagsMutuallyExclusive("id", "cached")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	path := args[0]

	if lookupFile != "" {
		doc, err := readDocument(cmd, lookupFile)
		if err != nil {
			return err
		}
		value, err := keypath.ResolveJSON(doc, path)
		if err != nil {
			return errors.LookupFailed(path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}

	if lookupKind == "" {
		return errors.ValidationError("either --file or --kind and --id is required")
	}
	kind, err := indexapi.ParseKind(lookupKind)
	if err != nil {
		return errors.ValidationError(err.Error())
	}
	if lookupID == "" && !lookupCached {
		return errors.ValidationError("--kind requires --id or --cached")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	net, err := selectedNetwork(cfg)
	if err != nil {
		return err
	}
	client, err := indexClient(net)
	if err != nil {
		return err
	}

	var doc indexapi.Document
	if lookupCached {
		doc, err = client.CachedDocument(kind)
	} else {
		ctx, cancel := commandContext()
		defer cancel()
		doc, err = client.Fetch(ctx, kind, lookupID)
	}
	if err != nil {
		return lookupError(string(kind), path, err)
	}
	value, err := doc.Lookup(path)
	if err != nil {
		return errors.LookupFailed(path, err)
	}

	logging.Debug("lookup resolved", "kind", kind, "id", lookupID, "path", path)
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func readDocument(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrap(errors.ExitGeneralError, "failed to read stdin", err)
		}
		return data, nil
	}
	data, err := app.Default.FS.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to read %s", name), err)
	}
	return data, nil
}

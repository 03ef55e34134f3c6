package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foliohq/folio/internal/store"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Back up and restore portfolio content",
		Long:  "Export the portfolio content (projects, skills, certificates, education) to a YAML snapshot, or import a snapshot into the database.",
	}

	cmd.AddCommand(newContentExportCmd())
	cmd.AddCommand(newContentImportCmd())

	return cmd
}

func newContentExportCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export portfolio content to a YAML snapshot",
		Example: `  folio content export -o backup.yaml
  folio content export             # writes folio-content.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentExport(outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "folio-content.yaml", "Snapshot file to write")

	return cmd
}

func runContentExport(outputFile string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	snap, err := st.ExportContent(context.Background())
	if err != nil {
		return fmt.Errorf("export content: %w", err)
	}
	if err := store.WriteSnapshot(outputFile, snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	fmt.Printf("Exported %d projects, %d skills, %d certificates, %d education entries to %s\n",
		len(snap.Projects), len(snap.Skills), len(snap.Certificates), len(snap.Education), outputFile)
	return nil
}

func newContentImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <snapshot.yaml>",
		Short: "Import a YAML content snapshot",
		Long:  "Import portfolio content from a snapshot file. Records are inserted alongside existing content; the import never deletes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentImport(args[0])
		},
	}
	return cmd
}

func runContentImport(path string) error {
	snap, err := store.ReadSnapshot(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.ImportContent(context.Background(), snap); err != nil {
		return fmt.Errorf("import content: %w", err)
	}

	fmt.Printf("Imported %d projects, %d skills, %d certificates, %d education entries from %s\n",
		len(snap.Projects), len(snap.Skills), len(snap.Certificates), len(snap.Education), path)
	return nil
}

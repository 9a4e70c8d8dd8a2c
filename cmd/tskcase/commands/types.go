package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List registered artifact and attribute types",
	Long: `List every artifact and attribute type registered in the case:
the built-in catalog plus any custom types modules have added.`,
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	artifactTypes, err := store.ListArtifactTypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list artifact types: %w", err)
	}
	sort.Slice(artifactTypes, func(i, j int) bool { return artifactTypes[i].Name < artifactTypes[j].Name })

	attributeTypes, err := store.ListAttributeTypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list attribute types: %w", err)
	}
	sort.Slice(attributeTypes, func(i, j int) bool { return attributeTypes[i].Name < attributeTypes[j].Name })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "ARTIFACT TYPE\tDISPLAY NAME\n")
	for _, t := range artifactTypes {
		fmt.Fprintf(w, "%s\t%s\n", t.Name, t.DisplayName)
	}

	fmt.Fprintf(w, "\nATTRIBUTE TYPE\tVALUE\tDISPLAY NAME\n")
	for _, t := range attributeTypes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, t.ValueType, t.DisplayName)
	}

	return w.Flush()
}

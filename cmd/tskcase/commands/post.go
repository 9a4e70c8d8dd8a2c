package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/codacy-badger/sleuthkit/internal/printer"
	"github.com/codacy-badger/sleuthkit/pkg/blackboard"
)

var (
	postModuleName string
	postTypeName   string
	postFile       string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post artifacts to the case blackboard",
	Long: `Read artifacts as line-delimited JSON and post them to the case
blackboard. Each artifact is saved to the case store, its timeline events
are derived and persisted, and a single notification covering the batch is
broadcast to subscribers.

Artifacts missing an ID or creation timestamp get them assigned. The
declared artifact type is registered if it does not exist yet.

Input lines look like:
  {"source_id":"file-42","type":"TSK_WEB_HISTORY","attributes":[{"type":"TSK_URL","value_type":"string","value_string":"https://example.com"}]}

Examples:
  # Post artifacts from a file
  tskcase post --module RecentActivity --type TSK_WEB_HISTORY --file artifacts.jsonl

  # Post from stdin
  cat artifacts.jsonl | tskcase post --module RecentActivity --type TSK_WEB_HISTORY`,
	RunE: runPost,
}

func init() {
	postCmd.Flags().StringVarP(&postModuleName, "module", "m", "", "Name of the posting module (required)")
	postCmd.Flags().StringVarP(&postTypeName, "type", "t", "", "Artifact type for the batch (required)")
	postCmd.Flags().StringVarP(&postFile, "file", "f", "-", "Input file of JSONL artifacts (- for stdin)")
	postCmd.MarkFlagRequired("module")
	postCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, cfg, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	moduleLabel := postModuleName
	if m, ok := cfg.Modules[postModuleName]; ok {
		moduleLabel = m.DisplayName
	}

	artifacts, err := readArtifacts(postFile, postTypeName)
	if err != nil {
		return err
	}
	if len(artifacts) == 0 {
		printer.Warning("no artifacts to post\n")
		return nil
	}

	bb := blackboard.New(store)
	defer bb.Close()

	// The declared type travels with the notification, so make sure it is
	// registered before anything is announced under it.
	if _, err := bb.GetOrAddArtifactType(ctx, postTypeName, postTypeName); err != nil {
		return fmt.Errorf("failed to register artifact type: %w", err)
	}

	for _, artifact := range artifacts {
		if err := store.SaveArtifact(ctx, artifact); err != nil {
			return printer.Error(
				"failed to save artifact",
				fmt.Sprintf("Artifact %s could not be stored: %v", artifact.ID, err),
				nil,
			)
		}
	}

	if err := bb.PostArtifacts(ctx, postModuleName, postTypeName, artifacts); err != nil {
		return printer.Error(
			"failed to post artifacts",
			fmt.Sprintf("Error: %v", err),
			[]string{"Artifacts are saved; re-run the post once the store is healthy"},
		)
	}

	printer.Success("Posted %d artifact(s) of type %s as module %s\n", len(artifacts), postTypeName, moduleLabel)
	return nil
}

// readArtifacts parses JSONL artifacts from a file or stdin, filling in
// generated IDs, the declared type, and creation timestamps where absent.
func readArtifacts(path, declaredType string) ([]*blackboard.Artifact, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var artifacts []*blackboard.Artifact
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var artifact blackboard.Artifact
		if err := json.Unmarshal(line, &artifact); err != nil {
			return nil, fmt.Errorf("invalid artifact on line %d: %w", lineNo, err)
		}

		if artifact.ID == "" {
			artifact.ID = uuid.New().String()
		}
		if artifact.Type == "" {
			artifact.Type = declaredType
		}
		if artifact.CreatedAtMs == 0 {
			artifact.CreatedAtMs = time.Now().UnixMilli()
		}

		if err := artifact.Validate(); err != nil {
			return nil, fmt.Errorf("invalid artifact on line %d: %w", lineNo, err)
		}

		artifacts = append(artifacts, &artifact)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return artifacts, nil
}

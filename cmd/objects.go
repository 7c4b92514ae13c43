package cmd

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"bucket-manager/core/storage"

	"github.com/spf13/cobra"
)

// objectsCmd groups the repository operations
var objectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "Work with objects in the default bucket",
}

// withRepository runs fn against a repository once storage passed its startup check.
func withRepository(cmd *cobra.Command, fn func(ctx context.Context, repo *storage.Repository) error) error {
	ctx := cmd.Context()
	rt, err := setup(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	return fn(ctx, rt.reg.Repository())
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file> [path]",
	Short: "Upload a local file; path defaults to the file name",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat file: %w", err)
		}

		path := filepath.Base(args[0])
		if len(args) == 2 {
			path = args[1]
		}

		contentType, _ := cmd.Flags().GetString("content-type")
		if contentType == "" {
			contentType = detectContentType(args[0])
		}

		return withRepository(cmd, func(ctx context.Context, repo *storage.Repository) error {
			if err := repo.Upload(ctx, f, path, info.Size(), contentType); err != nil {
				return err
			}
			fmt.Println(repo.FullPath(path))
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <uri> <path>",
	Short: "Stream a remote HTTP resource into the bucket",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(cmd, func(ctx context.Context, repo *storage.Repository) error {
			if err := repo.UploadFromURI(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println(repo.FullPath(args[1]))
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ignoreMissing, _ := cmd.Flags().GetBool("ignore-missing")
		return withRepository(cmd, func(ctx context.Context, repo *storage.Repository) error {
			err := repo.Delete(ctx, args[0])
			if ignoreMissing && errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			return err
		})
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists <path>",
	Short: "Report whether an object exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(cmd, func(ctx context.Context, repo *storage.Repository) error {
			exists, err := repo.Exists(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(exists)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List objects under a prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		return withRepository(cmd, func(ctx context.Context, repo *storage.Repository) error {
			items, err := repo.List(ctx, prefix)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tSIZE\tLAST MODIFIED\tETAG")
			for _, item := range items {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", item.Key, item.Size, item.LastModified.Format(time.RFC3339), item.ETag)
			}
			return w.Flush()
		})
	},
}

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List buckets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(cmd, func(ctx context.Context, repo *storage.Repository) error {
			buckets, err := repo.ListBuckets(ctx)
			if err != nil {
				return err
			}
			for _, b := range buckets {
				fmt.Printf("%s\t%s\n", b.Name, b.CreationDate.Format(time.RFC3339))
			}
			return nil
		})
	},
}

var bucketExistsCmd = &cobra.Command{
	Use:   "bucket-exists <name>",
	Short: "Report whether a bucket exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(cmd, func(ctx context.Context, repo *storage.Repository) error {
			exists, err := repo.BucketExists(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(exists)
			return nil
		})
	},
}

var urlCmd = &cobra.Command{
	Use:   "url <path>",
	Short: "Print the full path of an object without contacting storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		fmt.Println(rt.reg.Repository().FullPath(args[0]))
		return nil
	},
}

func detectContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func init() {
	RootCmd.AddCommand(objectsCmd)
	objectsCmd.AddCommand(uploadCmd, importCmd, deleteCmd, existsCmd, listCmd, bucketsCmd, bucketExistsCmd, urlCmd)

	uploadCmd.Flags().String("content-type", "", "Content type (detected from the extension when empty)")
	deleteCmd.Flags().Bool("ignore-missing", false, "Succeed when the object does not exist")
}
